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

type SavedQuestionRepositoryImpl struct {
	db *gorm.DB
}

func NewSavedQuestionRepository(db *gorm.DB) contract.SavedQuestionRepository {
	return &SavedQuestionRepositoryImpl{db: db}
}

func (r *SavedQuestionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SavedQuestionRepositoryImpl) Create(ctx context.Context, question *entity.SavedQuestion) error {
	m := mapper.SavedQuestionToModel(question)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*question = *mapper.SavedQuestionToEntity(m)
	return nil
}

func (r *SavedQuestionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SavedQuestion{}, id).Error
}

func (r *SavedQuestionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SavedQuestion, error) {
	var m model.SavedQuestion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.SavedQuestionToEntity(&m), nil
}

func (r *SavedQuestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SavedQuestion, error) {
	var models []*model.SavedQuestion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SavedQuestion, len(models))
	for i, m := range models {
		entities[i] = mapper.SavedQuestionToEntity(m)
	}
	return entities, nil
}
