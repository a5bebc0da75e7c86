package specification

import "gorm.io/gorm"

// ByVoiceSession partitions chat history into voice and text sessions.
type ByVoiceSession struct {
	IsVoice bool
}

func (s ByVoiceSession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_voice_session = ?", s.IsVoice)
}

// ByRole filters messages by chat role.
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// ExcludeRole drops one role from the result set.
type ExcludeRole struct {
	Role string
}

func (s ExcludeRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role <> ?", s.Role)
}

// ByDoubtStatus filters user messages by dashboard status.
type ByDoubtStatus struct {
	Status string
}

func (s ByDoubtStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doubt_status = ?", s.Status)
}
