package mapper

import (
	"testing"

	"shiksha-saathi-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserMappingCarriesVerificationState(t *testing.T) {
	m := &model.User{
		Id:                     uuid.New(),
		FullName:               "Ravi",
		Email:                  "ravi@example.com",
		Role:                   "student",
		Grade:                  "7th",
		IsEmailVerified:        false,
		EmailVerificationToken: "482913",
	}

	e := UserToEntity(m)
	assert.Equal(t, "482913", e.EmailVerificationToken)
	assert.False(t, e.IsEmailVerified)

	back := UserToModel(e)
	assert.Equal(t, m.Email, back.Email)
	assert.Equal(t, "482913", back.EmailVerificationToken)
}
