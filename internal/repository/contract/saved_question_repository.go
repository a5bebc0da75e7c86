package contract

import (
	"context"

	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SavedQuestionRepository interface {
	Create(ctx context.Context, question *entity.SavedQuestion) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SavedQuestion, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SavedQuestion, error)
}
