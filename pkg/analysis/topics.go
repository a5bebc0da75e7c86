// Package analysis turns raw student doubt messages into ranked topic
// insights for the teacher dashboard. The model is asked for a rigid
// line-keyed format; when it misbehaves or the provider rate-limits,
// a deterministic keyword classifier takes over.
package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"shiksha-saathi-be/internal/constant"
	"shiksha-saathi-be/internal/entity"
)

// Message is one student doubt fed into the analyzer.
type Message struct {
	StudentName string
	Content     string
	Timestamp   string
}

// BuildPrompt assembles the analyzer prompt with one formatted line per
// message appended after the instructions.
func BuildPrompt(messages []Message) string {
	var sb strings.Builder
	sb.WriteString(constant.TopicAnalysisPrompt)
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		name := msg.StudentName
		if name == "" {
			name = "Student"
		}
		fmt.Fprintf(&sb, "[%s] Student %s: %s", msg.Timestamp, name, msg.Content)
	}
	return sb.String()
}

// IsRateLimited reports whether an analyzer answer is really an
// upstream quota rejection surfaced as text.
func IsRateLimited(answer string) bool {
	return strings.Contains(answer, constant.RateLimitMarker)
}

var priorityOrder = map[string]int{"high": 3, "medium": 2, "low": 1}

// ParseTopics extracts topic insights from the model's answer.
// Sections are blank-line separated and must start with "Topic:";
// anything else is skipped. Entries with an unknown topic or a zero
// student count are dropped. Results are sorted by count descending,
// ties broken by priority, and capped at the dashboard limit.
func ParseTopics(answer string) []entity.TopicInsight {
	var insights []entity.TopicInsight

	for _, section := range strings.Split(answer, "\n\n") {
		if !strings.HasPrefix(strings.TrimSpace(section), "Topic:") {
			continue
		}

		var topic, difficulty, priority, description string
		var count int
		for _, line := range strings.Split(section, "\n") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			switch key {
			case "Topic":
				topic = value
			case "Students":
				count = parseLeadingInt(value)
			case "Difficulty":
				difficulty = strings.ToLower(value)
			case "Priority":
				priority = strings.ToLower(value)
			case "Description":
				description = value
			}
		}

		if topic == "" {
			topic = "Unknown Topic"
		}
		if difficulty == "" {
			difficulty = "medium"
		}
		if priority == "" {
			priority = "medium"
		}
		if description == "" {
			description = "No description available"
		}
		if topic == "Unknown Topic" || count == 0 {
			continue
		}

		insights = append(insights, entity.TopicInsight{
			Topic:       topic,
			Students:    count,
			Difficulty:  difficulty,
			Priority:    priority,
			Description: description,
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Students != insights[j].Students {
			return insights[i].Students > insights[j].Students
		}
		return priorityOrder[insights[i].Priority] > priorityOrder[insights[j].Priority]
	})

	if len(insights) > constant.TopicLimit {
		insights = insights[:constant.TopicLimit]
	}
	return insights
}

// parseLeadingInt reads the first run of digits in s, so "5 students"
// parses as 5. Missing digits yield 0.
func parseLeadingInt(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}

type keywordRule struct {
	topic    string
	keywords []string
}

// Rules are checked in order; the first hit wins.
var keywordRules = []keywordRule{
	{"Constitution and Government", []string{"constitution", "ಸಂವಿಧಾನ"}},
	{"Algebra", []string{"algebra", "equation", "x <"}},
	{"Geometry", []string{"geometry", "shape"}},
	{"Earth Science", []string{"rock", "cycle", "sediment"}},
	{"Economics", []string{"globalization", "privatization"}},
	{"Civics", []string{"parliament", "government", "ಸರ್ಕಾರ"}},
	{"History", []string{"history", "kingdom", "dynasty"}},
	{"Natural Disasters", []string{"epicenter", "earthquake"}},
	{"Numbers and Operations", []string{"fraction", "decimal", "multiply"}},
	{"Physics", []string{"speed", "distance", "time"}},
}

// ClassifyTopic maps a single message to its fallback topic bucket.
func ClassifyTopic(content string) string {
	lower := strings.ToLower(content)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.topic
			}
		}
	}
	return "General Questions"
}

// Fallback buckets messages by keyword, then derives difficulty and
// priority from bucket size. Output ordering matches ParseTopics:
// count descending, capped at the dashboard limit. Buckets keep
// first-seen order so equal counts rank deterministically.
func Fallback(messages []Message) []entity.TopicInsight {
	type bucket struct {
		count    int
		contents []string
	}
	buckets := map[string]*bucket{}
	var order []string

	for _, msg := range messages {
		topic := ClassifyTopic(msg.Content)
		b, ok := buckets[topic]
		if !ok {
			b = &bucket{}
			buckets[topic] = b
			order = append(order, topic)
		}
		b.count++
		b.contents = append(b.contents, msg.Content)
	}

	insights := make([]entity.TopicInsight, 0, len(order))
	for _, topic := range order {
		b := buckets[topic]
		difficulty := "medium"
		if b.count > 3 {
			difficulty = "hard"
		}
		priority := "medium"
		if b.count > 2 {
			priority = "high"
		}
		sample := b.contents
		if len(sample) > 2 {
			sample = sample[:2]
		}
		insights = append(insights, entity.TopicInsight{
			Topic:      topic,
			Students:   b.count,
			Difficulty: difficulty,
			Priority:   priority,
			Description: fmt.Sprintf("%d students have questions about %s. Common questions include: %s",
				b.count, strings.ToLower(topic), strings.Join(sample, ", ")),
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Students > insights[j].Students
	})

	if len(insights) > constant.TopicLimit {
		insights = insights[:constant.TopicLimit]
	}
	return insights
}
