package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id                     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName               string    `gorm:"type:varchar(255);not null"`
	Email                  string    `gorm:"type:varchar(255);unique;not null"`
	Password               string    `gorm:"type:varchar(255);not null"`
	Role                   string    `gorm:"type:varchar(50);not null;default:'student'"`
	Grade                  string    `gorm:"type:varchar(20);not null;default:'7th'"`
	IsEmailVerified        bool      `gorm:"default:false"`
	EmailVerificationToken string    `gorm:"type:varchar(255)"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
