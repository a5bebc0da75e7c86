package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	Timestamp      time.Time `gorm:"not null;index"`
	IsVoiceSession bool      `gorm:"not null;default:false;index"`
	FileData       datatypes.JSON
	ResponseType   string `gorm:"type:varchar(50)"`
	Image          string `gorm:"type:text"`
	Videos         datatypes.JSON
	DoubtStatus    string `gorm:"type:varchar(20)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	User *User `gorm:"foreignKey:UserId"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
