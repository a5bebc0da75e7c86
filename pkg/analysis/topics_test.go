package analysis

import (
	"strconv"
	"strings"
	"testing"
)

func TestParseTopics(t *testing.T) {
	answer := `Topic: Algebra
Students: 5 students
Difficulty: medium
Priority: high
Description: Students are struggling with solving linear equations.

Topic: Earth Science
Students: 3
Difficulty: hard
Priority: medium
Description: Students need help understanding rock cycles.

Some stray commentary the model added anyway.

Topic: Unknown Topic
Students: 4
Difficulty: easy
Priority: low
Description: Should be dropped.

Topic: Civics
Students: none yet
Difficulty: easy
Priority: low
Description: Zero count, dropped.`

	got := ParseTopics(answer)
	if len(got) != 2 {
		t.Fatalf("got %d topics, want 2", len(got))
	}
	if got[0].Topic != "Algebra" || got[0].Students != 5 {
		t.Errorf("first topic: got %s/%d, want Algebra/5", got[0].Topic, got[0].Students)
	}
	if got[1].Topic != "Earth Science" || got[1].Students != 3 {
		t.Errorf("second topic: got %s/%d, want Earth Science/3", got[1].Topic, got[1].Students)
	}
	if got[0].Priority != "high" || got[1].Difficulty != "hard" {
		t.Errorf("metadata not parsed: %+v", got)
	}
}

func TestParseTopicsTieBreaksOnPriority(t *testing.T) {
	answer := `Topic: Geometry
Students: 2
Difficulty: medium
Priority: low
Description: Lines and angles.

Topic: Physics
Students: 2
Difficulty: medium
Priority: high
Description: Speed and distance.`

	got := ParseTopics(answer)
	if len(got) != 2 {
		t.Fatalf("got %d topics, want 2", len(got))
	}
	if got[0].Topic != "Physics" {
		t.Errorf("equal counts should rank by priority, got %s first", got[0].Topic)
	}
}

func TestParseTopicsCapsAtFive(t *testing.T) {
	var sb strings.Builder
	topics := []string{"Algebra", "Geometry", "Physics", "Civics", "History", "Economics", "Biology"}
	for i, topic := range topics {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("Topic: " + topic + "\nStudents: " + strconv.Itoa(10-i) + "\nDifficulty: medium\nPriority: medium\nDescription: d")
	}

	got := ParseTopics(sb.String())
	if len(got) != 5 {
		t.Fatalf("got %d topics, want 5", len(got))
	}
}

func TestParseTopicsDefaultsMissingFields(t *testing.T) {
	answer := "Topic: Algebra\nStudents: 2"
	got := ParseTopics(answer)
	if len(got) != 1 {
		t.Fatalf("got %d topics, want 1", len(got))
	}
	if got[0].Difficulty != "medium" || got[0].Priority != "medium" {
		t.Errorf("missing fields should default to medium, got %+v", got[0])
	}
	if got[0].Description != "No description available" {
		t.Errorf("missing description should use placeholder, got %q", got[0].Description)
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited("Error: 429 quota exceeded") {
		t.Error("quota rejection not detected")
	}
	if IsRateLimited("Algebra is about equations") {
		t.Error("normal answer flagged as rate limited")
	}
}

func TestClassifyTopic(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"What does the constitution say about rights?", "Constitution and Government"},
		{"ಸಂವಿಧಾನ ಎಂದರೇನು?", "Constitution and Government"},
		{"Solve the equation 2x + 3 = 7", "Algebra"},
		{"What shape has five sides?", "Geometry"},
		{"Explain the rock cycle", "Earth Science"},
		{"What is globalization?", "Economics"},
		{"How does parliament work?", "Civics"},
		{"Tell me about the Chola dynasty", "History"},
		{"Where is the epicenter of an earthquake?", "Natural Disasters"},
		{"How do I multiply fractions?", "Numbers and Operations"},
		{"Find the speed given distance and time", "Physics"},
		{"Why is the sky blue?", "General Questions"},
	}
	for _, tt := range tests {
		if got := ClassifyTopic(tt.content); got != tt.want {
			t.Errorf("ClassifyTopic(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestClassifyTopicOrderMatters(t *testing.T) {
	// "government" alone maps to Civics, but the constitution rule
	// runs first when both appear.
	if got := ClassifyTopic("constitution and government"); got != "Constitution and Government" {
		t.Errorf("got %q, want Constitution and Government", got)
	}
}

func TestFallback(t *testing.T) {
	messages := []Message{
		{Content: "Solve the equation x + 1 = 2"},
		{Content: "algebra homework help"},
		{Content: "more algebra please"},
		{Content: "what is an equation"},
		{Content: "explain the rock cycle"},
	}

	got := Fallback(messages)
	if len(got) != 2 {
		t.Fatalf("got %d topics, want 2", len(got))
	}
	if got[0].Topic != "Algebra" || got[0].Students != 4 {
		t.Fatalf("first topic: got %s/%d, want Algebra/4", got[0].Topic, got[0].Students)
	}
	if got[0].Difficulty != "hard" {
		t.Errorf("count 4 should be hard, got %s", got[0].Difficulty)
	}
	if got[0].Priority != "high" {
		t.Errorf("count 4 should be high priority, got %s", got[0].Priority)
	}
	if got[1].Topic != "Earth Science" || got[1].Difficulty != "medium" || got[1].Priority != "medium" {
		t.Errorf("second topic: got %+v", got[1])
	}
	wantDesc := "4 students have questions about algebra. Common questions include: Solve the equation x + 1 = 2, algebra homework help"
	if got[0].Description != wantDesc {
		t.Errorf("description:\ngot  %q\nwant %q", got[0].Description, wantDesc)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]Message{
		{StudentName: "", Content: "what is algebra", Timestamp: "2026-01-01T10:00:00Z"},
	})
	if !strings.Contains(prompt, "top 5 topics") {
		t.Error("prompt missing instructions")
	}
	if !strings.Contains(prompt, "[2026-01-01T10:00:00Z] Student Student: what is algebra") {
		t.Errorf("prompt missing formatted message line:\n%s", prompt)
	}
}
