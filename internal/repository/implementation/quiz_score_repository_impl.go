package implementation

import (
	"context"
	"errors"

	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/mapper"
	"shiksha-saathi-be/internal/model"
	"shiksha-saathi-be/internal/repository/contract"
	"shiksha-saathi-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizScoreRepositoryImpl struct {
	db *gorm.DB
}

func NewQuizScoreRepository(db *gorm.DB) contract.QuizScoreRepository {
	return &QuizScoreRepositoryImpl{db: db}
}

func (r *QuizScoreRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuizScoreRepositoryImpl) Create(ctx context.Context, score *entity.QuizScore) error {
	m := mapper.QuizScoreToModel(score)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*score = *mapper.QuizScoreToEntity(m)
	return nil
}

func (r *QuizScoreRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizScore, error) {
	var models []*model.QuizScore
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.QuizScore, len(models))
	for i, m := range models {
		entities[i] = mapper.QuizScoreToEntity(m)
	}
	return entities, nil
}

func (r *QuizScoreRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizScore, error) {
	var m model.QuizScore
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.QuizScoreToEntity(&m), nil
}

func (r *QuizScoreRepositoryImpl) ExistsForQuiz(ctx context.Context, userId uuid.UUID, quizId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuizScore{}).
		Where("user_id = ? AND quiz_id = ?", userId, quizId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
