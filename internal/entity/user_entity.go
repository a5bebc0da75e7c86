package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	Id                     uuid.UUID
	FullName               string
	Email                  string
	Password               string
	Role                   string
	Grade                  string
	IsEmailVerified        bool
	EmailVerificationToken string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
