package contract

import (
	"context"

	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuizScoreRepository interface {
	Create(ctx context.Context, score *entity.QuizScore) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizScore, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizScore, error)
	ExistsForQuiz(ctx context.Context, userId uuid.UUID, quizId string) (bool, error)
}
