package entity

import (
	"time"

	"github.com/google/uuid"
)

// SavedQuestion is a completed question block snapshotted when the
// student starts a new question. Title comes from the block's first
// message.
type SavedQuestion struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Messages  []ChatMessage
	CreatedAt time.Time
}
