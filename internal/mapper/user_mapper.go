package mapper

import (
	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/model"
)

func UserToEntity(m *model.User) *entity.User {
	return &entity.User{
		Id:                     m.Id,
		FullName:               m.FullName,
		Email:                  m.Email,
		Password:               m.Password,
		Role:                   m.Role,
		Grade:                  m.Grade,
		IsEmailVerified:        m.IsEmailVerified,
		EmailVerificationToken: m.EmailVerificationToken,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func UserToModel(e *entity.User) *model.User {
	return &model.User{
		Id:                     e.Id,
		FullName:               e.FullName,
		Email:                  e.Email,
		Password:               e.Password,
		Role:                   e.Role,
		Grade:                  e.Grade,
		IsEmailVerified:        e.IsEmailVerified,
		EmailVerificationToken: e.EmailVerificationToken,
	}
}
