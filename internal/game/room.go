package game

import (
	"sort"
	"sync"
	"time"

	"quizroom/internal/domain"
)

// Room is the aggregate for one PIN: its players, its challenge, and the
// quiz session driving question progression. All mutation goes through the
// single room mutex; helpers with the Locked suffix expect it held.
type Room struct {
	pin       string
	challenge domain.Challenge

	mu sync.Mutex
	// hostConnID is empty while the host is disconnected; hostNickname is
	// kept so a reconnecting host can reclaim the role.
	hostConnID   string
	hostNickname string
	// pendingHost holds the host's player record between a host disconnect
	// and a reclaim, so the same connection identity can recover its score.
	pendingHost *domain.Player
	players     map[string]*domain.Player
	joinSeq     int
	subscribers map[string]chan Event

	sess     session
	duration time.Duration
	grace    time.Duration
	topN     int
	now      func() time.Time
}

// session holds the per-run state machine fields.
type session struct {
	active   bool
	idx      int
	deadline time.Time
	// run increments on every quiz (re)start so timers from a previous
	// run can never advance the current one.
	run int
}

func newRoom(pin string, challenge domain.Challenge, hostConnID, hostNickname string, duration, grace time.Duration, topN int, now func() time.Time) *Room {
	r := &Room{
		pin:          pin,
		challenge:    challenge,
		hostConnID:   hostConnID,
		hostNickname: hostNickname,
		players:      make(map[string]*domain.Player),
		subscribers:  make(map[string]chan Event),
		sess:         session{idx: -1},
		duration:     duration,
		grace:        grace,
		topN:         topN,
		now:          now,
	}
	r.addPlayerLocked(hostConnID, hostNickname)
	return r
}

// Pin returns the room's PIN.
func (r *Room) Pin() string { return r.pin }

// Players returns the current nicknames in join order.
func (r *Room) Players() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playersLocked()
}

func (r *Room) addPlayerLocked(connID, nickname string) *domain.Player {
	p := &domain.Player{
		ConnID:   connID,
		Nickname: nickname,
		Answers:  make(map[string]domain.Answer),
		JoinSeq:  r.joinSeq,
	}
	r.joinSeq++
	r.players[connID] = p
	return p
}

// join adds or resets the player entry for connID. Entering a room always
// starts that connection with a clean slate.
func (r *Room) join(connID, nickname string) JoinResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.addPlayerLocked(connID, nickname)
	r.broadcastLocked(Event{Type: EventPlayerJoined, Payload: PlayerListPayload{Players: r.playersLocked()}})
	return r.joinResultLocked(connID)
}

// rejoin refreshes the player entry for connID, promoting it to host when
// the host slot is vacant and the nickname matches the recorded host.
// Score and answer history survive only for an unchanged connection
// identity; a new identity starts fresh.
func (r *Room) rejoin(connID, nickname string) JoinResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hostConnID == "" && nickname == r.hostNickname {
		// Host reclaim. Score and answers carry over only when the exact
		// connection identity is back; a new identity starts fresh.
		r.hostConnID = connID
		if r.pendingHost != nil && r.pendingHost.ConnID == connID {
			r.players[connID] = r.pendingHost
		}
		r.pendingHost = nil
	}

	if p, ok := r.players[connID]; ok {
		p.Nickname = nickname
	} else {
		r.addPlayerLocked(connID, nickname)
	}
	r.broadcastLocked(Event{Type: EventPlayerJoined, Payload: PlayerListPayload{Players: r.playersLocked()}})
	return r.joinResultLocked(connID)
}

// leave handles a disconnect. The host's player record is parked in
// pendingHost so a rejoin can reclaim the role; everyone else is removed
// outright. The room is deletable once the player map is empty and the
// host slot is empty.
func (r *Room) leave(connID string) (deletable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if connID == r.hostConnID {
		r.hostConnID = ""
		r.pendingHost = r.players[connID]
		delete(r.players, connID)
		r.broadcastLocked(Event{Type: EventHostLeft, Payload: HostLeftPayload{Message: "The host has disconnected."}})
		r.broadcastLocked(Event{Type: EventPlayerLeft, Payload: PlayerListPayload{Players: r.playersLocked()}})
	} else if _, ok := r.players[connID]; ok {
		delete(r.players, connID)
		r.broadcastLocked(Event{Type: EventPlayerLeft, Payload: PlayerListPayload{Players: r.playersLocked()}})
	}
	return len(r.players) == 0 && r.hostConnID == ""
}

func (r *Room) joinResultLocked(connID string) JoinResult {
	res := JoinResult{
		Pin:        r.pin,
		Players:    r.playersLocked(),
		IsHost:     connID == r.hostConnID,
		QuizActive: r.sess.active,
	}
	if r.sess.active {
		q := r.challenge.Questions[r.sess.idx]
		remaining := int(r.sess.deadline.Sub(r.now()).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		res.Current = &QuestionPayload{
			Question:       q.View(),
			QuestionNumber: r.sess.idx + 1,
			TotalQuestions: len(r.challenge.Questions),
			TimeLimit:      remaining,
		}
	}
	return res
}

func (r *Room) playersLocked() []string {
	ordered := make([]*domain.Player, 0, len(r.players))
	for _, p := range r.players {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].JoinSeq < ordered[j].JoinSeq })
	names := make([]string, len(ordered))
	for i, p := range ordered {
		names[i] = p.Nickname
	}
	return names
}

// subscribe registers an outbound event channel for one connection.
// The caller must invoke the returned cancel function to avoid leaks.
func (r *Room) subscribe(connID string) (<-chan Event, func()) {
	ch := make(chan Event, 16)
	r.mu.Lock()
	r.subscribers[connID] = ch
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		if cur, ok := r.subscribers[connID]; ok && cur == ch {
			delete(r.subscribers, connID)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, cancel
}

func (r *Room) broadcastLocked(e Event) {
	for _, ch := range r.subscribers {
		select {
		case ch <- e:
		default:
			// Drop the oldest event rather than block the room lock on a
			// slow consumer.
			select {
			case <-ch:
			default:
			}
			ch <- e
		}
	}
}
