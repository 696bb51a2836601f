package game

import (
	"testing"
	"time"

	"quizroom/internal/domain"
)

func TestScoreFormula(t *testing.T) {
	limit := 20 * time.Second
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 150},
		{10 * time.Second, 125},
		{20 * time.Second, 100},
		{25 * time.Second, 100},
		{-1 * time.Second, 150},
	}
	for _, c := range cases {
		if got := score(limit, c.elapsed); got != c.want {
			t.Fatalf("score(%v, %v) = %d, want %d", limit, c.elapsed, got, c.want)
		}
	}
}

func TestRankingStableOnTies(t *testing.T) {
	r := newRoom("AB1CD", testChallenge(1), "h", "Host", time.Minute, time.Second, 10, time.Now)
	r.join("p1", "Alice")
	r.join("p2", "Bob")
	r.join("p3", "Carol")

	r.mu.Lock()
	r.players["h"].Score = 50
	r.players["p1"].Score = 150
	r.players["p2"].Score = 150
	r.players["p3"].Score = 0
	ranked := r.rankedPlayersLocked()
	r.mu.Unlock()

	want := []string{"Alice", "Bob", "Host", "Carol"}
	for i, nick := range want {
		if ranked[i].Nickname != nick {
			t.Fatalf("rank %d: got %s, want %s", i, ranked[i].Nickname, nick)
		}
	}
}

func TestSessionInvariant(t *testing.T) {
	r := newRoom("AB1CD", testChallenge(2), "h", "Host", time.Hour, time.Second, 10, time.Now)
	check := func(stage string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		inRange := r.sess.idx >= 0 && r.sess.idx < len(r.challenge.Questions)
		if r.sess.active != inRange {
			t.Fatalf("%s: active=%v but idx=%d of %d", stage, r.sess.active, r.sess.idx, len(r.challenge.Questions))
		}
	}

	check("idle")
	if err := r.start("h"); err != nil {
		t.Fatalf("start: %v", err)
	}
	check("active")

	for i := 1; i <= 2; i++ {
		if _, err := r.submit("h", r.challenge.Questions[i-1].ID, "a"); err != nil {
			t.Fatalf("submit q%d: %v", i, err)
		}
		check("after answer")
	}

	r.mu.Lock()
	if r.sess.active || r.sess.idx != len(r.challenge.Questions) {
		t.Fatalf("expected ended session, got active=%v idx=%d", r.sess.active, r.sess.idx)
	}
	r.mu.Unlock()
}

func TestSubmitRejections(t *testing.T) {
	r := newRoom("AB1CD", testChallenge(2), "h", "Host", time.Hour, time.Second, 10, time.Now)

	if _, err := r.submit("h", "q1", "a"); err != domain.ErrQuizNotActive {
		t.Fatalf("expected quiz-not-active, got %v", err)
	}
	if err := r.start("h"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := r.submit("ghost", "q1", "a"); err != domain.ErrPlayerNotFound {
		t.Fatalf("expected player-not-found, got %v", err)
	}
	if _, err := r.submit("h", "q2", "a"); err != domain.ErrWrongQuestion {
		t.Fatalf("expected wrong-question, got %v", err)
	}

	r.join("p1", "Alice") // keeps the room from advancing on h's answer
	if _, err := r.submit("h", "q1", "a"); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	r.mu.Lock()
	before := r.players["h"].Score
	r.mu.Unlock()
	if _, err := r.submit("h", "q1", "b"); err != domain.ErrAlreadyAnswered {
		t.Fatalf("expected already-answered, got %v", err)
	}
	r.mu.Lock()
	after := r.players["h"].Score
	r.mu.Unlock()
	if after != before {
		t.Fatalf("duplicate answer changed score: %d -> %d", before, after)
	}
}

func TestStartRequiresHostAndIdleSession(t *testing.T) {
	r := newRoom("AB1CD", testChallenge(1), "h", "Host", time.Hour, time.Second, 10, time.Now)
	r.join("p1", "Alice")

	if err := r.start("p1"); err != domain.ErrNotHost {
		t.Fatalf("expected not-host, got %v", err)
	}
	if err := r.start("h"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.start("h"); err != domain.ErrQuizActive {
		t.Fatalf("expected quiz-active, got %v", err)
	}
}

func TestRestartResetsPlayers(t *testing.T) {
	r := newRoom("AB1CD", testChallenge(1), "h", "Host", time.Hour, time.Second, 10, time.Now)
	if err := r.start("h"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := r.submit("h", "q1", "a"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := r.start("h"); err != nil {
		t.Fatalf("restart: %v", err)
	}
	r.mu.Lock()
	p := r.players["h"]
	if p.Score != 0 || len(p.Answers) != 0 || p.Answered {
		t.Fatalf("restart did not reset player: %+v", p)
	}
	r.mu.Unlock()
}

func TestStaleTimerDoesNotDoubleAdvance(t *testing.T) {
	r := newRoom("AB1CD", testChallenge(2), "h", "Host", 40*time.Millisecond, 5*time.Millisecond, 10, time.Now)
	events, cancel := r.subscribe("h")
	defer cancel()

	if err := r.start("h"); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Answer q1 well before its deadline; the q1 timer must then no-op.
	if _, err := r.submit("h", "q1", "a"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	deadline := time.After(300 * time.Millisecond)
	secondQuestion := 0
	timeUpQ1 := 0
	for {
		select {
		case ev := <-events:
			switch ev.Type {
			case EventNewQuestion:
				if ev.Payload.(QuestionPayload).QuestionNumber == 2 {
					secondQuestion++
				}
			case EventTimeUp:
				if ev.Payload.(TimeUpPayload).QuestionID == "q1" {
					timeUpQ1++
				}
			}
		case <-deadline:
			if secondQuestion != 1 {
				t.Fatalf("expected exactly one advance to question 2, got %d", secondQuestion)
			}
			if timeUpQ1 != 0 {
				t.Fatalf("stale timer fired time_up for q1 %d times", timeUpQ1)
			}
			return
		}
	}
}

func TestTimerExpiryEndsSingleQuestionQuiz(t *testing.T) {
	r := newRoom("AB1CD", testChallenge(1), "h", "Host", 40*time.Millisecond, 5*time.Millisecond, 10, time.Now)
	r.join("p1", "Alice")
	events, cancel := r.subscribe("p1")
	defer cancel()

	if err := r.start("h"); err != nil {
		t.Fatalf("start: %v", err)
	}

	sawTimeUp := false
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			switch ev.Type {
			case EventTimeUp:
				sawTimeUp = true
			case EventQuizEnded:
				if !sawTimeUp {
					t.Fatalf("quiz ended without time_up")
				}
				results := ev.Payload.(QuizEndedPayload).Results
				if len(results) != 2 {
					t.Fatalf("expected 2 results, got %d", len(results))
				}
				for _, res := range results {
					if res.Score != 0 {
						t.Fatalf("expected zero scores, got %+v", res)
					}
				}
				return
			}
		case <-deadline:
			t.Fatalf("quiz did not end after timer expiry")
		}
	}
}

// testChallenge builds n questions q1..qn with correct option "a".
func testChallenge(n int) domain.Challenge {
	skills := []string{"Programming Logic", "Geometry", "Thermodynamics"}
	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = domain.Question{
			ID:     "q" + string(rune('1'+i)),
			Prompt: "pick a",
			Options: []domain.Option{
				{ID: "a", Text: "right"},
				{ID: "b", Text: "wrong"},
			},
			CorrectOptionID: "a",
			SkillArea:       skills[i%len(skills)],
			Difficulty:      "easy",
		}
	}
	return domain.Challenge{ID: "test", Name: "Test", Questions: questions}
}
