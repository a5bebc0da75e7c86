package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOUBT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent embeds the common implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the bus.
const (
	TypeUserRegistered = "USER_REGISTERED"
	TypeUserLogin      = "USER_LOGIN"
	TypeDoubtCreated   = "DOUBT_CREATED"
	TypeDoubtResolved  = "DOUBT_RESOLVED"
	TypeQuizCompleted  = "QUIZ_COMPLETED"
)

// NewDoubtCreated builds the event raised when a student asks a new
// question that should surface on the teacher dashboard.
func NewDoubtCreated(userId, messageId, content string) BaseEvent {
	return BaseEvent{
		Type: TypeDoubtCreated,
		Data: map[string]interface{}{
			"user_id":    userId,
			"message_id": messageId,
			"content":    content,
		},
		OccurredAt: time.Now(),
	}
}

// NewQuizCompleted builds the event raised once per completed attempt.
func NewQuizCompleted(userId, quizId string, score, total int) BaseEvent {
	return BaseEvent{
		Type: TypeQuizCompleted,
		Data: map[string]interface{}{
			"user_id":         userId,
			"quiz_id":         quizId,
			"score":           score,
			"total_questions": total,
		},
		OccurredAt: time.Now(),
	}
}
