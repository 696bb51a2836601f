package domain

// Option represents one selectable answer for a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question models an MCQ question with exactly one correct option.
// Questions are immutable once loaded.
type Question struct {
	ID              string   `json:"id"`
	Prompt          string   `json:"prompt"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
	SkillArea       string   `json:"skillArea"`
	Difficulty      string   `json:"difficulty"`
}

// QuestionView is the client-facing shape of a question. It omits the
// correct option; that is only revealed in answer feedback.
type QuestionView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// View returns the broadcast-safe projection of the question.
func (q Question) View() QuestionView {
	return QuestionView{ID: q.ID, Prompt: q.Prompt, Options: q.Options}
}

// Challenge is a named, ordered question set. A room binds to exactly one
// challenge at creation time.
type Challenge struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Answer is the immutable record of one submission by one player.
// SkillArea is denormalized from the question for result aggregation.
type Answer struct {
	OptionID  string `json:"optionId"`
	Correct   bool   `json:"correct"`
	SkillArea string `json:"skillArea"`
	Points    int    `json:"points"`
}

// Player is the per-connection participant state inside a room.
type Player struct {
	ConnID   string
	Nickname string
	Score    int
	Answers  map[string]Answer
	// Answered marks whether the player already answered the current
	// question; cleared on every question advance.
	Answered bool
	// JoinSeq orders players by arrival for stable scoreboard ties.
	JoinSeq int
}

// ScoreEntry is one scoreboard row.
type ScoreEntry struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

// PlayerResult is one row of the final ranked standings.
type PlayerResult struct {
	Nickname       string `json:"nickname"`
	Score          int    `json:"score"`
	Recommendation string `json:"recommendation"`
}
