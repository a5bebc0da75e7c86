package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shiksha-saathi-be/internal/dto"
	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/pkg/tutor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedMessage(uow *fakeUnitOfWork, userId uuid.UUID, role, content string, isVoice bool, at time.Time) {
	msg := &entity.ChatMessage{
		Id:             uuid.New(),
		UserId:         userId,
		Role:           role,
		Content:        content,
		Timestamp:      at,
		IsVoiceSession: isVoice,
	}
	if role == entity.RoleUser {
		msg.DoubtStatus = entity.DoubtStatusPending
	}
	uow.store.messages = append(uow.store.messages, msg)
}

func TestSendMessageBlockContext(t *testing.T) {
	userId := uuid.New()
	base := time.Now().Add(-time.Hour)

	tests := []struct {
		name         string
		seed         func(uow *fakeUnitOfWork)
		wantNewBlock bool
		wantFollowup bool
		wantPrevious []string
	}{
		{
			name:         "first message ever",
			seed:         func(uow *fakeUnitOfWork) {},
			wantNewBlock: false,
			wantFollowup: false,
			wantPrevious: []string{},
		},
		{
			name: "follow-up inside an open block",
			seed: func(uow *fakeUnitOfWork) {
				seedMessage(uow, userId, entity.RoleUser, "what is gravity", false, base)
				seedMessage(uow, userId, entity.RoleAssistant, "a force", false, base.Add(time.Minute))
			},
			wantNewBlock: false,
			wantFollowup: true,
			wantPrevious: []string{"what is gravity"},
		},
		{
			name: "fresh block right after a separator",
			seed: func(uow *fakeUnitOfWork) {
				seedMessage(uow, userId, entity.RoleUser, "what is gravity", false, base)
				seedMessage(uow, userId, entity.RoleAssistant, "a force", false, base.Add(time.Minute))
				seedMessage(uow, userId, entity.RoleSeparator, entity.SeparatorContent, false, base.Add(2*time.Minute))
			},
			wantNewBlock: true,
			wantFollowup: false,
			wantPrevious: []string{},
		},
		{
			name: "voice history does not leak into text sessions",
			seed: func(uow *fakeUnitOfWork) {
				seedMessage(uow, userId, entity.RoleUser, "voice question", true, base)
			},
			wantNewBlock: false,
			wantFollowup: false,
			wantPrevious: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := newFakeUow()
			tt.seed(uow)
			tutorFake := &fakeTutor{}
			svc := NewChatService(uow, tutorFake, nil, nil, nopLogger{})

			resp, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
				Content: "next question",
			})
			assert.NoError(t, err)
			assert.NotNil(t, resp)

			assert.NotNil(t, tutorFake.lastQuery)
			assert.Equal(t, tt.wantNewBlock, tutorFake.lastQuery.IsNewBlock)
			assert.Equal(t, tt.wantFollowup, tutorFake.lastQuery.IsFollowup)
			if len(tt.wantPrevious) == 0 {
				// The wire client normalizes a nil slice to [] on encode.
				assert.Empty(t, tutorFake.lastQuery.PreviousQuestions)
			} else {
				assert.Equal(t, tt.wantPrevious, tutorFake.lastQuery.PreviousQuestions)
			}
		})
	}
}

func TestSendMessagePersistsBothTurns(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	tutorFake := &fakeTutor{}
	svc := NewChatService(uow, tutorFake, nil, nil, nopLogger{})

	resp, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{
		Content:      "explain fractions",
		ResponseType: "summarize",
		File:         &entity.FileInfo{Name: "diagram.png", Type: "image/png", Size: 2048},
	})
	assert.NoError(t, err)

	assert.Len(t, uow.store.messages, 2)
	assert.Equal(t, entity.RoleUser, uow.store.messages[0].Role)
	assert.Equal(t, entity.DoubtStatusPending, uow.store.messages[0].DoubtStatus)
	// Attachment metadata travels with the user turn.
	assert.Equal(t, int64(2048), uow.store.messages[0].File.Size)
	assert.Equal(t, entity.RoleAssistant, uow.store.messages[1].Role)
	assert.Equal(t, "stub answer", resp.AssistantMessage.Content)
	assert.Equal(t, "summarize", tutorFake.lastQuery.ResponseType)
}

func TestSendMessageDefaultsGradeAndResponseType(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	tutorFake := &fakeTutor{}
	svc := NewChatService(uow, tutorFake, nil, nil, nopLogger{})

	_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "7th", tutorFake.lastQuery.SystemId)
	assert.Equal(t, "explain", tutorFake.lastQuery.ResponseType)

	uow.store.users = append(uow.store.users, &entity.User{Id: userId, Grade: "9th"})
	_, err = svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "hi again"})
	assert.NoError(t, err)
	assert.Equal(t, "9th", tutorFake.lastQuery.SystemId)
}

func TestSendMessageTutorFailure(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	tutorFake := &fakeTutor{
		queryFn: func(ctx context.Context, req tutor.QueryRequest) (*tutor.QueryResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewChatService(uow, tutorFake, nil, nil, nopLogger{})

	_, err := svc.SendMessage(context.Background(), userId, &dto.SendMessageRequest{Content: "hi"})
	assert.Error(t, err)
	// The student's question is still stored so the doubt reaches the
	// teacher dashboard.
	assert.Len(t, uow.store.messages, 1)
	assert.Equal(t, entity.RoleUser, uow.store.messages[0].Role)
}

func TestSendMessageVoiceSynthesis(t *testing.T) {
	t.Run("audio url attached", func(t *testing.T) {
		uow := newFakeUow()
		synth := &fakeSynthesizer{enabled: true, url: "http://speech/audio/1.mp3"}
		svc := NewChatService(uow, &fakeTutor{}, synth, nil, nopLogger{})

		resp, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
			Content:        "hello",
			IsVoiceSession: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, "http://speech/audio/1.mp3", resp.AssistantMessage.AudioURL)
	})

	t.Run("synthesis failure never fails the message", func(t *testing.T) {
		uow := newFakeUow()
		synth := &fakeSynthesizer{enabled: true, err: errors.New("speech down")}
		svc := NewChatService(uow, &fakeTutor{}, synth, nil, nopLogger{})

		resp, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
			Content:        "hello",
			IsVoiceSession: true,
		})
		assert.NoError(t, err)
		assert.Empty(t, resp.AssistantMessage.AudioURL)
	})

	t.Run("text sessions skip synthesis", func(t *testing.T) {
		uow := newFakeUow()
		synth := &fakeSynthesizer{enabled: true, url: "http://speech/audio/1.mp3"}
		svc := NewChatService(uow, &fakeTutor{}, synth, nil, nopLogger{})

		resp, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
			Content: "hello",
		})
		assert.NoError(t, err)
		assert.Empty(t, resp.AssistantMessage.AudioURL)
		assert.Zero(t, synth.calls)
	})
}

func TestAddSeparatorClosesBlockWithoutSaving(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	base := time.Now().Add(-time.Hour)
	seedMessage(uow, userId, entity.RoleUser, "what is gravity", false, base)
	seedMessage(uow, userId, entity.RoleAssistant, "a force", false, base.Add(time.Minute))

	svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})
	resp, err := svc.AddSeparator(context.Background(), userId, false)
	assert.NoError(t, err)

	assert.NotNil(t, resp)
	assert.Equal(t, entity.RoleSeparator, resp.Role)
	assert.Len(t, uow.store.messages, 3)
	assert.Equal(t, entity.SeparatorContent, uow.store.messages[2].Content)
	// Abandoning a question never snapshots it.
	assert.Empty(t, uow.store.questions)
}

func TestAddSeparatorNoopWhenBlockEmpty(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	base := time.Now().Add(-time.Hour)
	seedMessage(uow, userId, entity.RoleUser, "q", false, base)
	seedMessage(uow, userId, entity.RoleSeparator, entity.SeparatorContent, false, base.Add(time.Minute))

	svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})
	resp, err := svc.AddSeparator(context.Background(), userId, false)
	assert.NoError(t, err)
	assert.Nil(t, resp)
	// No second separator stacked on the first.
	assert.Len(t, uow.store.messages, 2)
}

func TestSaveCurrentBlock(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	base := time.Now().Add(-time.Hour)
	seedMessage(uow, userId, entity.RoleUser, "what is gravity", false, base)
	seedMessage(uow, userId, entity.RoleAssistant, "a force", false, base.Add(time.Minute))

	svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})
	resp, err := svc.SaveCurrentBlock(context.Background(), userId, false)
	assert.NoError(t, err)

	assert.NotNil(t, resp.Saved)
	assert.Equal(t, "what is gravity", resp.Saved.Title)
	assert.Len(t, resp.SavedQuestions, 1)

	// A separator now closes the block.
	assert.Len(t, uow.store.messages, 3)
	last := uow.store.messages[2]
	assert.Equal(t, entity.RoleSeparator, last.Role)
	assert.Equal(t, entity.SeparatorContent, last.Content)
}

func TestSaveCurrentBlockNoopWhenBlockEmpty(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})

		resp, err := svc.SaveCurrentBlock(context.Background(), uuid.New(), false)
		assert.NoError(t, err)
		assert.Nil(t, resp.Saved)
		assert.Empty(t, resp.SavedQuestions)
		assert.Empty(t, uow.store.messages)
	})

	t.Run("already after a separator", func(t *testing.T) {
		uow := newFakeUow()
		userId := uuid.New()
		base := time.Now().Add(-time.Hour)
		seedMessage(uow, userId, entity.RoleUser, "q", false, base)
		seedMessage(uow, userId, entity.RoleSeparator, entity.SeparatorContent, false, base.Add(time.Minute))

		svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})
		resp, err := svc.SaveCurrentBlock(context.Background(), userId, false)
		assert.NoError(t, err)
		assert.Nil(t, resp.Saved)
		// No second separator stacked on the first.
		assert.Len(t, uow.store.messages, 2)
		assert.Empty(t, uow.store.questions)
	})
}

func TestSaveCurrentBlockTitleRules(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	long := strings.Repeat("a", 80)
	seedMessage(uow, userId, entity.RoleUser, long, false, time.Now().Add(-time.Minute))

	svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})
	resp, err := svc.SaveCurrentBlock(context.Background(), userId, false)
	assert.NoError(t, err)
	assert.NotNil(t, resp.Saved)
	assert.Equal(t, strings.Repeat("a", 50), resp.Saved.Title)
}

func TestGetSavedQuestionsNewestFirst(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	base := time.Now().Add(-time.Hour)
	uow.store.questions = append(uow.store.questions,
		&entity.SavedQuestion{Id: uuid.New(), UserId: userId, Title: "older", CreatedAt: base},
		&entity.SavedQuestion{Id: uuid.New(), UserId: userId, Title: "newer", CreatedAt: base.Add(time.Minute)},
		&entity.SavedQuestion{Id: uuid.New(), UserId: uuid.New(), Title: "someone else", CreatedAt: base},
	)

	svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})
	saved, err := svc.GetSavedQuestions(context.Background(), userId)
	assert.NoError(t, err)
	assert.Len(t, saved, 2)
	assert.Equal(t, "newer", saved[0].Title)
	assert.Equal(t, "older", saved[1].Title)
}

func TestGetHistoryDerivedBlockState(t *testing.T) {
	uow := newFakeUow()
	userId := uuid.New()
	base := time.Now().Add(-time.Hour)
	seedMessage(uow, userId, entity.RoleUser, "q1", false, base)
	seedMessage(uow, userId, entity.RoleAssistant, "a1", false, base.Add(time.Minute))
	seedMessage(uow, userId, entity.RoleSeparator, entity.SeparatorContent, false, base.Add(2*time.Minute))
	seedMessage(uow, userId, entity.RoleUser, "q2", false, base.Add(3*time.Minute))

	svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})
	resp, err := svc.GetHistory(context.Background(), userId, false)
	assert.NoError(t, err)

	assert.Len(t, resp.Messages, 4)
	assert.False(t, resp.IsNewBlock)
	assert.Len(t, resp.CurrentBlock, 1)
	assert.Equal(t, "q2", resp.CurrentBlock[0].Content)
}

func TestDeleteSavedQuestion(t *testing.T) {
	uow := newFakeUow()
	owner := uuid.New()
	questionId := uuid.New()
	uow.store.questions = append(uow.store.questions, &entity.SavedQuestion{
		Id:     questionId,
		UserId: owner,
		Title:  "gravity",
	})

	svc := NewChatService(uow, &fakeTutor{}, nil, nil, nopLogger{})

	// Someone else's question looks like it does not exist.
	err := svc.DeleteSavedQuestion(context.Background(), uuid.New(), questionId)
	assert.ErrorIs(t, err, ErrSavedQuestionNotFound)
	assert.Len(t, uow.store.questions, 1)

	err = svc.DeleteSavedQuestion(context.Background(), owner, questionId)
	assert.NoError(t, err)
	assert.Empty(t, uow.store.questions)

	err = svc.DeleteSavedQuestion(context.Background(), owner, questionId)
	assert.ErrorIs(t, err, ErrSavedQuestionNotFound)
}
