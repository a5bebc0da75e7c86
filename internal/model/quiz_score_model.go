package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizScore struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	QuizId         string    `gorm:"type:varchar(100);not null"`
	Score          int       `gorm:"not null"`
	TotalQuestions int       `gorm:"not null"`
	Topic          string    `gorm:"type:varchar(255);not null;default:'General'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	User *User `gorm:"foreignKey:UserId"`
}

func (QuizScore) TableName() string {
	return "quiz_scores"
}
