package game

import (
	"sort"
	"time"

	"quizroom/internal/domain"
)

const (
	basePoints = 100
	maxBonus   = 50
)

// start begins a quiz run. Only the host may start, the room needs at
// least one player, and a run must not already be active. Every player's
// score and history is reset before question zero goes out.
func (r *Room) start(connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if connID != r.hostConnID {
		return domain.ErrNotHost
	}
	if r.sess.active {
		return domain.ErrQuizActive
	}
	if len(r.players) == 0 {
		return domain.ErrNoPlayers
	}

	r.sess.active = true
	r.sess.idx = -1
	r.sess.run++
	for _, p := range r.players {
		p.Score = 0
		p.Answers = make(map[string]domain.Answer)
		p.Answered = false
	}
	r.broadcastLocked(Event{Type: EventQuizStarted, Payload: QuizStartedPayload{Message: "The quiz is starting!"}})
	r.advanceLocked()
	return nil
}

// advanceLocked moves to the next question or, past the last one, ends the
// run. Exactly one of {unanimous answers, timer expiry} triggers it per
// index; the loser of that race re-checks the index and no-ops.
func (r *Room) advanceLocked() {
	if !r.sess.active {
		return
	}
	r.sess.idx++
	idx := r.sess.idx
	if idx >= len(r.challenge.Questions) {
		r.endLocked()
		return
	}

	q := r.challenge.Questions[idx]
	for _, p := range r.players {
		p.Answered = false
	}
	r.sess.deadline = r.now().Add(r.duration)
	r.broadcastLocked(Event{Type: EventNewQuestion, Payload: QuestionPayload{
		Question:       q.View(),
		QuestionNumber: idx + 1,
		TotalQuestions: len(r.challenge.Questions),
		TimeLimit:      int(r.duration.Seconds()),
	}})
	go r.questionTimer(r.sess.run, idx)
}

// questionTimer sleeps past the question deadline and forces progression
// if no unanimous-answer advance got there first. It never holds the room
// lock while sleeping, and it self-cancels when the run or index moved on.
func (r *Room) questionTimer(run, idx int) {
	time.Sleep(r.duration + r.grace)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sess.active || r.sess.run != run || r.sess.idx != idx {
		return
	}
	r.broadcastLocked(Event{Type: EventTimeUp, Payload: TimeUpPayload{QuestionID: r.challenge.Questions[idx].ID}})
	r.advanceLocked()
}

// submit records an answer for the current question. Correct answers earn
// base points plus a bonus that decays linearly to zero over the time
// limit. When every present player has answered, the session advances
// immediately instead of waiting for the timer.
func (r *Room) submit(connID, questionID, optionID string) (AnswerFeedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sess.active {
		return AnswerFeedback{}, domain.ErrQuizNotActive
	}
	p, ok := r.players[connID]
	if !ok {
		return AnswerFeedback{}, domain.ErrPlayerNotFound
	}
	q := r.challenge.Questions[r.sess.idx]
	if q.ID != questionID {
		return AnswerFeedback{}, domain.ErrWrongQuestion
	}
	if p.Answered {
		return AnswerFeedback{}, domain.ErrAlreadyAnswered
	}

	correct := optionID == q.CorrectOptionID
	points := 0
	if correct {
		elapsed := r.duration - r.sess.deadline.Sub(r.now())
		points = score(r.duration, elapsed)
		p.Score += points
	}
	p.Answers[q.ID] = domain.Answer{
		OptionID:  optionID,
		Correct:   correct,
		SkillArea: q.SkillArea,
		Points:    points,
	}
	p.Answered = true

	r.broadcastLocked(Event{Type: EventScoresUpdate, Payload: ScoresPayload{Scores: r.scoreboardLocked()}})

	if r.allAnsweredLocked() {
		r.advanceLocked()
	}

	return AnswerFeedback{
		QuestionID:       q.ID,
		SelectedOptionID: optionID,
		CorrectOptionID:  q.CorrectOptionID,
		IsCorrect:        correct,
		PointsEarned:     points,
		CurrentScore:     p.Score,
	}, nil
}

// score computes the points for a correct answer: a flat base plus a bonus
// shrinking linearly as elapsed approaches the limit, floored at zero.
func score(limit, elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := limit - elapsed
	if remaining < 0 {
		remaining = 0
	}
	bonus := int(float64(maxBonus) * (remaining.Seconds() / limit.Seconds()))
	return basePoints + bonus
}

func (r *Room) allAnsweredLocked() bool {
	for _, p := range r.players {
		if !p.Answered {
			return false
		}
	}
	return len(r.players) > 0
}

func (r *Room) scoreboardLocked() []domain.ScoreEntry {
	ordered := r.rankedPlayersLocked()
	n := len(ordered)
	if r.topN > 0 && n > r.topN {
		n = r.topN
	}
	entries := make([]domain.ScoreEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = domain.ScoreEntry{Nickname: ordered[i].Nickname, Score: ordered[i].Score}
	}
	return entries
}

// rankedPlayersLocked sorts players by score descending, ties broken by
// join order.
func (r *Room) rankedPlayersLocked() []*domain.Player {
	ordered := make([]*domain.Player, 0, len(r.players))
	for _, p := range r.players {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].JoinSeq < ordered[j].JoinSeq })
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Score > ordered[j].Score })
	return ordered
}

// endLocked closes the run and broadcasts the final standings. It runs
// exactly once per quiz run, from the advance that steps past the last
// question.
func (r *Room) endLocked() {
	r.sess.active = false
	r.sess.idx = len(r.challenge.Questions)

	results := make([]domain.PlayerResult, 0, len(r.players))
	for _, p := range r.rankedPlayersLocked() {
		results = append(results, domain.PlayerResult{
			Nickname:       p.Nickname,
			Score:          p.Score,
			Recommendation: recommendationFor(p.Answers, r.challenge.Questions),
		})
	}
	r.broadcastLocked(Event{Type: EventQuizEnded, Payload: QuizEndedPayload{Results: results}})
}
