package mapper

import (
	"encoding/json"

	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/model"

	"gorm.io/datatypes"
)

func ChatMessageToEntity(m *model.ChatMessage) *entity.ChatMessage {
	e := &entity.ChatMessage{
		Id:             m.Id,
		UserId:         m.UserId,
		Role:           m.Role,
		Content:        m.Content,
		Timestamp:      m.Timestamp,
		IsVoiceSession: m.IsVoiceSession,
		ResponseType:   m.ResponseType,
		Image:          m.Image,
		DoubtStatus:    m.DoubtStatus,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if len(m.FileData) > 0 {
		var f entity.FileInfo
		if err := json.Unmarshal(m.FileData, &f); err == nil {
			e.File = &f
		}
	}
	if len(m.Videos) > 0 {
		var v []entity.VideoRef
		if err := json.Unmarshal(m.Videos, &v); err == nil {
			e.Videos = v
		}
	}
	return e
}

func ChatMessagesToEntities(models []model.ChatMessage) []entity.ChatMessage {
	entities := make([]entity.ChatMessage, 0, len(models))
	for i := range models {
		entities = append(entities, *ChatMessageToEntity(&models[i]))
	}
	return entities
}

func ChatMessageToModel(e *entity.ChatMessage) *model.ChatMessage {
	m := &model.ChatMessage{
		Id:             e.Id,
		UserId:         e.UserId,
		Role:           e.Role,
		Content:        e.Content,
		Timestamp:      e.Timestamp,
		IsVoiceSession: e.IsVoiceSession,
		ResponseType:   e.ResponseType,
		Image:          e.Image,
		DoubtStatus:    e.DoubtStatus,
	}
	if e.File != nil {
		if b, err := json.Marshal(e.File); err == nil {
			m.FileData = datatypes.JSON(b)
		}
	}
	if len(e.Videos) > 0 {
		if b, err := json.Marshal(e.Videos); err == nil {
			m.Videos = datatypes.JSON(b)
		}
	}
	return m
}
