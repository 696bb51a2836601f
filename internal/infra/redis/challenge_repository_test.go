package redis

import (
	"context"
	"testing"
	"time"

	"quizroom/internal/domain"
	"quizroom/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestChallengeRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{
		inner: memory.NewStaticChallengeLoader(map[string]domain.Challenge{
			"vocational": sampleChallenge(),
		}),
	}
	repo := NewChallengeRepository(client, loader, time.Minute)

	challenge, err := repo.GetChallenge(context.Background(), "vocational")
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if len(challenge.Questions) != 1 || challenge.Questions[0].CorrectOptionID != "o2" {
		t.Fatalf("unexpected challenge payload: %+v", challenge)
	}
	if !mr.Exists("challenge:vocational:doc") {
		t.Fatalf("expected challenge cached in redis")
	}

	// Second call should come from redis, loader not incremented.
	if _, err := repo.GetChallenge(context.Background(), "vocational"); err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	inner memory.ChallengeLoader
	calls int
}

func (l *countingLoader) LoadChallenge(ctx context.Context, challengeID string) (domain.Challenge, error) {
	l.calls++
	return l.inner.LoadChallenge(ctx, challengeID)
}

func sampleChallenge() domain.Challenge {
	return domain.Challenge{
		ID:   "vocational",
		Name: "Vocational",
		Questions: []domain.Question{
			{
				ID:     "q1",
				Prompt: "What is 2 + 2?",
				Options: []domain.Option{
					{ID: "o1", Text: "3"},
					{ID: "o2", Text: "4"},
				},
				CorrectOptionID: "o2",
				SkillArea:       "Basic Statistics",
				Difficulty:      "easy",
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
