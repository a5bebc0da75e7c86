package mapper

import (
	"encoding/json"

	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/model"

	"gorm.io/datatypes"
)

func QuizScoreToEntity(m *model.QuizScore) *entity.QuizScore {
	return &entity.QuizScore{
		Id:             m.Id,
		UserId:         m.UserId,
		QuizId:         m.QuizId,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		Topic:          m.Topic,
		CreatedAt:      m.CreatedAt,
	}
}

func QuizScoresToEntities(models []model.QuizScore) []entity.QuizScore {
	entities := make([]entity.QuizScore, 0, len(models))
	for i := range models {
		entities = append(entities, *QuizScoreToEntity(&models[i]))
	}
	return entities
}

func QuizScoreToModel(e *entity.QuizScore) *model.QuizScore {
	return &model.QuizScore{
		Id:             e.Id,
		UserId:         e.UserId,
		QuizId:         e.QuizId,
		Score:          e.Score,
		TotalQuestions: e.TotalQuestions,
		Topic:          e.Topic,
	}
}

func SavedQuestionToEntity(m *model.SavedQuestion) *entity.SavedQuestion {
	e := &entity.SavedQuestion{
		Id:        m.Id,
		UserId:    m.UserId,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Messages) > 0 {
		var msgs []entity.ChatMessage
		if err := json.Unmarshal(m.Messages, &msgs); err == nil {
			e.Messages = msgs
		}
	}
	return e
}

func SavedQuestionsToEntities(models []model.SavedQuestion) []entity.SavedQuestion {
	entities := make([]entity.SavedQuestion, 0, len(models))
	for i := range models {
		entities = append(entities, *SavedQuestionToEntity(&models[i]))
	}
	return entities
}

func SavedQuestionToModel(e *entity.SavedQuestion) *model.SavedQuestion {
	m := &model.SavedQuestion{
		Id:     e.Id,
		UserId: e.UserId,
		Title:  e.Title,
	}
	if len(e.Messages) > 0 {
		if b, err := json.Marshal(e.Messages); err == nil {
			m.Messages = datatypes.JSON(b)
		}
	}
	return m
}
