package game

import "quizroom/internal/domain"

// Event is one outbound notification delivered to a room's subscribers.
// Per-room ordering is guaranteed because every event is produced while
// holding the room lock.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Outbound event types.
const (
	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
	EventHostLeft     = "host_left"
	EventQuizStarted  = "quiz_started"
	EventNewQuestion  = "new_question"
	EventTimeUp       = "time_up"
	EventScoresUpdate = "scores_update"
	EventQuizEnded    = "quiz_ended"
)

// PlayerListPayload carries the room's membership after a join or leave.
type PlayerListPayload struct {
	Players []string `json:"players"`
}

// HostLeftPayload notifies remaining players that the host slot is vacant.
type HostLeftPayload struct {
	Message string `json:"message"`
}

// QuizStartedPayload announces the start of a quiz run.
type QuizStartedPayload struct {
	Message string `json:"message"`
}

// QuestionPayload delivers the current question to the room.
type QuestionPayload struct {
	Question       domain.QuestionView `json:"question"`
	QuestionNumber int                 `json:"questionNumber"`
	TotalQuestions int                 `json:"totalQuestions"`
	TimeLimit      int                 `json:"timeLimit"`
}

// TimeUpPayload marks the expiry of a question's deadline.
type TimeUpPayload struct {
	QuestionID string `json:"questionId"`
}

// ScoresPayload carries the top scoreboard rows after a submission.
type ScoresPayload struct {
	Scores []domain.ScoreEntry `json:"scores"`
}

// QuizEndedPayload carries the final ranked standings.
type QuizEndedPayload struct {
	Results []domain.PlayerResult `json:"results"`
}

// AnswerFeedback is returned to the submitting connection only.
type AnswerFeedback struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
	CorrectOptionID  string `json:"correctOptionId"`
	IsCorrect        bool   `json:"isCorrect"`
	PointsEarned     int    `json:"pointsEarned"`
	CurrentScore     int    `json:"currentScore"`
}

// JoinResult echoes room state back to a connection that entered a room.
type JoinResult struct {
	Pin        string   `json:"pin"`
	Players    []string `json:"players"`
	IsHost     bool     `json:"isHost"`
	QuizActive bool     `json:"quizActive"`
	// Current is set when a connection enters a room mid-quiz, so the
	// transport can deliver the in-flight question to it alone.
	Current *QuestionPayload `json:"-"`
}
