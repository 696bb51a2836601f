package game

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"quizroom/internal/domain"
)

// ChallengeRepository loads challenge content (from cache/backing store).
type ChallengeRepository interface {
	GetChallenge(ctx context.Context, challengeID string) (domain.Challenge, error)
}

// RoomListener observes room lifecycle; used to mirror liveness into Redis.
type RoomListener interface {
	RoomOpened(pin string)
	RoomClosed(pin string)
}

// Config tunes a Registry. Zero values fall back to the defaults below.
type Config struct {
	QuestionDuration    time.Duration
	TimerGrace          time.Duration
	FallbackChallengeID string
	TopScores           int
	Now                 func() time.Time
}

const (
	defaultQuestionDuration = 20 * time.Second
	defaultTimerGrace       = 500 * time.Millisecond
	defaultTopScores        = 10
	pinLength               = 5
	pinAlphabet             = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxNicknameLen          = 25
)

// Registry owns the PIN → Room table and the connection → room presence
// map. It is the single injected entry point for all inbound events.
// Lock order: the registry mutex is always acquired before any room mutex.
type Registry struct {
	challenges ChallengeRepository
	listener   RoomListener
	cfg        Config

	mu    sync.RWMutex
	rooms map[string]*Room
	conns map[string]string
	rnd   *rand.Rand
}

// NewRegistry builds a Registry backed by the given challenge repository.
// The listener may be nil.
func NewRegistry(challenges ChallengeRepository, listener RoomListener, cfg Config) *Registry {
	if cfg.QuestionDuration <= 0 {
		cfg.QuestionDuration = defaultQuestionDuration
	}
	if cfg.TimerGrace <= 0 {
		cfg.TimerGrace = defaultTimerGrace
	}
	if cfg.TopScores <= 0 {
		cfg.TopScores = defaultTopScores
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Registry{
		challenges: challenges,
		listener:   listener,
		cfg:        cfg,
		rooms:      make(map[string]*Room),
		conns:      make(map[string]string),
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom opens a room on a fresh PIN with connID as host. An unknown
// challenge id falls back to the configured default challenge.
func (g *Registry) CreateRoom(ctx context.Context, connID, nickname, challengeID string) (JoinResult, error) {
	challenge, err := g.challenges.GetChallenge(ctx, challengeID)
	if err != nil {
		if g.cfg.FallbackChallengeID == "" || challengeID == g.cfg.FallbackChallengeID {
			return JoinResult{}, err
		}
		log.Printf("challenge %q not found, falling back to %q", challengeID, g.cfg.FallbackChallengeID)
		challenge, err = g.challenges.GetChallenge(ctx, g.cfg.FallbackChallengeID)
		if err != nil {
			return JoinResult{}, err
		}
	}

	nickname = cleanNickname(nickname, connID)

	g.mu.Lock()
	defer g.mu.Unlock()
	pin := g.newPinLocked()
	room := newRoom(pin, challenge, connID, nickname, g.cfg.QuestionDuration, g.cfg.TimerGrace, g.cfg.TopScores, g.cfg.Now)
	g.rooms[pin] = room
	g.conns[connID] = pin
	if g.listener != nil {
		g.listener.RoomOpened(pin)
	}
	log.Printf("room %s created by %q on challenge %q", pin, nickname, challenge.ID)

	room.mu.Lock()
	res := room.joinResultLocked(connID)
	room.mu.Unlock()
	return res, nil
}

// Join adds a fresh participant to the room behind pin. The connection
// always starts with a clean slate, even if it was in the room before.
func (g *Registry) Join(connID, nickname, pin string) (JoinResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[pin]
	if !ok {
		return JoinResult{}, domain.ErrRoomNotFound
	}
	g.conns[connID] = pin
	return room.join(connID, cleanNickname(nickname, connID)), nil
}

// Rejoin re-attaches a connection that believes it was in the room,
// promoting it to host when the host slot is vacant and the nickname
// matches the recorded host.
func (g *Registry) Rejoin(connID, nickname, pin string) (JoinResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[pin]
	if !ok {
		return JoinResult{}, domain.ErrRoomNotFound
	}
	g.conns[connID] = pin
	return room.rejoin(connID, cleanNickname(nickname, connID)), nil
}

// StartQuiz begins the quiz in the room behind pin on behalf of connID.
func (g *Registry) StartQuiz(pin, connID string) error {
	room, ok := g.GetRoom(pin)
	if !ok {
		return domain.ErrRoomNotFound
	}
	return room.start(connID)
}

// SubmitAnswer records connID's answer for the current question.
func (g *Registry) SubmitAnswer(pin, connID, questionID, optionID string) (AnswerFeedback, error) {
	room, ok := g.GetRoom(pin)
	if !ok {
		return AnswerFeedback{}, domain.ErrRoomNotFound
	}
	return room.submit(connID, questionID, optionID)
}

// Subscribe attaches an outbound event channel to the room behind pin.
func (g *Registry) Subscribe(pin, connID string) (<-chan Event, func(), error) {
	room, ok := g.GetRoom(pin)
	if !ok {
		return nil, nil, domain.ErrRoomNotFound
	}
	ch, cancel := room.subscribe(connID)
	return ch, cancel, nil
}

// Disconnect drops a connection from whatever room it was in, removing the
// room once its player map is empty and its host slot is empty.
func (g *Registry) Disconnect(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pin, ok := g.conns[connID]
	if !ok {
		return
	}
	delete(g.conns, connID)
	room, ok := g.rooms[pin]
	if !ok {
		return
	}
	if room.leave(connID) {
		delete(g.rooms, pin)
		if g.listener != nil {
			g.listener.RoomClosed(pin)
		}
		log.Printf("room %s deleted (no players, no host)", pin)
	}
}

// GetRoom is a read-only lookup; callers mutate only through Room methods.
func (g *Registry) GetRoom(pin string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[pin]
	return room, ok
}

// newPinLocked draws PINs until one is unused. Five alphanumeric
// characters give ~60M codes, so collisions stay negligible at any
// realistic room count.
func (g *Registry) newPinLocked() string {
	for {
		b := make([]byte, pinLength)
		for i := range b {
			b[i] = pinAlphabet[g.rnd.Intn(len(pinAlphabet))]
		}
		pin := string(b)
		if _, taken := g.rooms[pin]; !taken {
			return pin
		}
	}
}

// cleanNickname trims and caps a self-reported nickname, substituting a
// name derived from the connection id when blank.
func cleanNickname(nickname, connID string) string {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		suffix := connID
		if len(suffix) > 4 {
			suffix = suffix[:4]
		}
		return "Player_" + suffix
	}
	runes := []rune(nickname)
	if len(runes) > maxNicknameLen {
		return string(runes[:maxNicknameLen])
	}
	return nickname
}
