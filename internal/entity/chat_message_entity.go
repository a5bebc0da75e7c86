package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chat roles. A separator is a structural marker closing a question
// block; it never carries attachments or tutor metadata.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSeparator = "separator"
)

// SeparatorContent is the content every separator message carries.
const SeparatorContent = "New Question"

// DoubtStatus values for user messages surfaced on the teacher dashboard.
const (
	DoubtStatusPending  = "pending"
	DoubtStatusResolved = "resolved"
	DoubtStatusRejected = "rejected"
)

// FileInfo is attachment metadata only; the file body itself is never
// stored server-side.
type FileInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type VideoRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type ChatMessage struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Role           string
	Content        string
	Timestamp      time.Time
	IsVoiceSession bool
	File           *FileInfo
	ResponseType   string
	Image          string
	Videos         []VideoRef
	DoubtStatus    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUserMessage builds a user turn. file may be nil.
func NewUserMessage(userId uuid.UUID, content string, isVoice bool, file *FileInfo) ChatMessage {
	return ChatMessage{
		UserId:         userId,
		Role:           RoleUser,
		Content:        content,
		Timestamp:      time.Now(),
		IsVoiceSession: isVoice,
		File:           file,
		DoubtStatus:    DoubtStatusPending,
	}
}

// NewAssistantMessage builds an assistant turn carrying the tutor's
// answer plus any media it attached.
func NewAssistantMessage(userId uuid.UUID, content string, isVoice bool, responseType, image string, videos []VideoRef) ChatMessage {
	return ChatMessage{
		UserId:         userId,
		Role:           RoleAssistant,
		Content:        content,
		Timestamp:      time.Now(),
		IsVoiceSession: isVoice,
		ResponseType:   responseType,
		Image:          image,
		Videos:         videos,
	}
}

// NewSeparator builds a block boundary marker.
func NewSeparator(userId uuid.UUID, isVoice bool) ChatMessage {
	return ChatMessage{
		UserId:         userId,
		Role:           RoleSeparator,
		Content:        SeparatorContent,
		Timestamp:      time.Now(),
		IsVoiceSession: isVoice,
	}
}

// IsSeparator reports whether the message is a block boundary.
func (m ChatMessage) IsSeparator() bool {
	return m.Role == RoleSeparator
}
