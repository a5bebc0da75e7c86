package unitofwork

import (
	"context"

	"shiksha-saathi-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatMessageRepository() contract.ChatMessageRepository
	SavedQuestionRepository() contract.SavedQuestionRepository
	QuizScoreRepository() contract.QuizScoreRepository
}
