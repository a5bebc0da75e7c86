package constant

import "shiksha-saathi-be/internal/entity"

// DefaultGrade is used when a student has no grade on record.
const DefaultGrade = "7th"

// QuizWindowSize caps how many recent messages feed quiz generation.
const QuizWindowSize = 50

// TopicLimit caps how many doubt clusters the dashboard shows.
const TopicLimit = 5

// RateLimitMarker is the substring an upstream analysis error carries
// when the provider rejected the call for quota reasons.
const RateLimitMarker = "Error: 429"

// TopicAnalysisPrompt asks the model for doubt clusters in the exact
// line-keyed layout ParseTopics expects. The formatted message lines
// are appended after it.
const TopicAnalysisPrompt = `You are a topic analyzer. Your task is to identify the top 5 topics that students are struggling with from the given messages.

IMPORTANT: Group similar questions into broader topics. For example:
- Questions about "constitution", "parliament", "government" should be grouped under "Civics"
- Questions about "algebra", "equations", "inequalities" should be grouped under "Algebra"
- Questions about "rocks", "sediments", "earth layers" should be grouped under "Earth Science"

REQUIRED FORMAT - You must follow this exact format for each topic:
Topic: [broad topic name]
Students: [total number of students with questions in this topic]
Difficulty: [easy/medium/hard]
Priority: [low/medium/high]
Description: [brief description of the topic and common questions]

Example response:
Topic: Algebra
Students: 5 students
Difficulty: medium
Priority: high
Description: Students are struggling with solving linear equations and inequalities.

Topic: Earth Science
Students: 3 students
Difficulty: hard
Priority: medium
Description: Students need help understanding rock cycles and sedimentation.

DO NOT include any other text, explanations, or formatting. Only list the topics in the exact format above.

Here are the messages to analyze:
`

// TopDoubtsPrompt asks the model for the canonical list of commonly
// misunderstood topics shown as dashboard suggestions.
const TopDoubtsPrompt = `Based on common student questions and difficulties, provide the top 5 topics or concepts where students typically have doubts.
Format each suggestion as a concise question or topic.
Focus on fundamental concepts that are often misunderstood.

Provide the response in this format:
1. [First topic/question]
2. [Second topic/question]
3. [Third topic/question]
4. [Fourth topic/question]
5. [Fifth topic/question]`

// SampleQuizzes are served when quiz generation fails or there is no
// usable chat history.
var SampleQuizzes = []entity.QuizItem{
	{
		Question:      "What is the capital of France?",
		Options:       []string{"London", "Berlin", "Paris", "Madrid"},
		CorrectAnswer: 2,
	},
	{
		Question:      "Which planet is closest to the Sun?",
		Options:       []string{"Venus", "Mercury", "Mars", "Earth"},
		CorrectAnswer: 1,
	},
}
