package domain

import "errors"

var (
	// ErrRoomNotFound is returned when a PIN does not resolve to a live room.
	ErrRoomNotFound = errors.New("room not found")
	// ErrChallengeNotFound indicates the challenge content could not be loaded.
	ErrChallengeNotFound = errors.New("challenge not found")
	// ErrPlayerNotFound is returned when a connection acts before joining a room.
	ErrPlayerNotFound = errors.New("player not found in room")
	// ErrNotHost is returned when a non-host connection requests a host action.
	ErrNotHost = errors.New("only the host can do that")
	// ErrQuizActive is returned when start is requested mid-quiz.
	ErrQuizActive = errors.New("quiz already in progress")
	// ErrQuizNotActive is returned when an answer arrives outside a quiz run.
	ErrQuizNotActive = errors.New("quiz is not active")
	// ErrNoPlayers is returned when start is requested on an empty room.
	ErrNoPlayers = errors.New("no players to start the quiz")
	// ErrWrongQuestion indicates the submitted question is not the current one.
	ErrWrongQuestion = errors.New("answer is not for the current question")
	// ErrAlreadyAnswered indicates a duplicate submission for the current question.
	ErrAlreadyAnswered = errors.New("already answered this question")
)
