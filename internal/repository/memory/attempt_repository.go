package memory

import (
	"time"

	"shiksha-saathi-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// AttemptRepository keeps in-flight quiz attempts in memory. Attempts
// are short lived; only the final score goes to the database.
type AttemptRepository struct {
	cache *cache.Cache
}

func NewAttemptRepository() *AttemptRepository {
	// Attempts expire after an hour of inactivity, purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &AttemptRepository{
		cache: c,
	}
}

func (r *AttemptRepository) Save(attempt *entity.QuizAttempt) {
	r.cache.Set(attempt.Id, attempt, cache.DefaultExpiration)
}

func (r *AttemptRepository) Get(attemptId string) (*entity.QuizAttempt, bool) {
	if x, found := r.cache.Get(attemptId); found {
		return x.(*entity.QuizAttempt), true
	}
	return nil, false
}

func (r *AttemptRepository) Delete(attemptId string) {
	r.cache.Delete(attemptId)
}
