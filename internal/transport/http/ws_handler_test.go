package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizroom/internal/domain"
	"quizroom/internal/game"
	"quizroom/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func TestWebSocketRoomFlow(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	host := dial(t, server)
	defer host.Close()

	// Host creates a room.
	send(t, host, "create_room", map[string]any{"nickname": "Host", "challengeId": "test"})
	created := readUntil(t, host, "room_created")
	pin, _ := created["pin"].(string)
	if pin == "" {
		t.Fatalf("expected pin in room_created, got %v", created)
	}
	if isHost, _ := created["isHost"].(bool); !isHost {
		t.Fatalf("creator must be host, got %v", created)
	}

	// A player joins by PIN.
	player := dial(t, server)
	defer player.Close()
	send(t, player, "join_room", map[string]any{"nickname": "Alice", "pin": pin})
	joined := readUntil(t, player, "room_joined")
	if active, _ := joined["quizActive"].(bool); active {
		t.Fatalf("quiz must not be active before start")
	}

	// Host starts the quiz; both sides receive question 1.
	send(t, host, "start_quiz", map[string]any{"pin": pin})
	for _, conn := range []*websocket.Conn{host, player} {
		q := readUntil(t, conn, "new_question")
		if num, _ := q["questionNumber"].(float64); num != 1 {
			t.Fatalf("expected question 1, got %v", q)
		}
	}

	// Host answers correctly and gets ack plus feedback.
	send(t, host, "submit_answer", map[string]any{"pin": pin, "questionId": "q1", "selectedOptionId": "a"})
	ack := readUntil(t, host, "answer_ack")
	if accepted, _ := ack["accepted"].(bool); !accepted {
		t.Fatalf("expected accepted answer, got %v", ack)
	}
	feedback := readUntil(t, host, "answer_feedback")
	if correct, _ := feedback["isCorrect"].(bool); !correct {
		t.Fatalf("expected correct feedback, got %v", feedback)
	}

	// Everyone sees the scoreboard move.
	scores := readUntil(t, player, "scores_update")
	if scores["scores"] == nil {
		t.Fatalf("expected scores in update, got %v", scores)
	}

	// A duplicate answer is rejected without changing anything.
	send(t, host, "submit_answer", map[string]any{"pin": pin, "questionId": "q1", "selectedOptionId": "b"})
	dup := readUntil(t, host, "answer_ack")
	if accepted, _ := dup["accepted"].(bool); accepted {
		t.Fatalf("duplicate answer must be rejected, got %v", dup)
	}
}

func TestWebSocketJoinUnknownPin(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()

	send(t, conn, "join_room", map[string]any{"nickname": "Alice", "pin": "ZZZZZ"})
	payload := readUntil(t, conn, "room_join_error")
	if payload["reason"] == "" {
		t.Fatalf("expected reason in join error, got %v", payload)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	catalog := memory.NewCatalog(memory.NewStaticChallengeLoader(map[string]domain.Challenge{
		"test": {
			ID:   "test",
			Name: "Test",
			Questions: []domain.Question{
				{
					ID:     "q1",
					Prompt: "pick a",
					Options: []domain.Option{
						{ID: "a", Text: "right"},
						{ID: "b", Text: "wrong"},
					},
					CorrectOptionID: "a",
					SkillArea:       "Programming Logic",
					Difficulty:      "easy",
				},
				{
					ID:     "q2",
					Prompt: "pick a again",
					Options: []domain.Option{
						{ID: "a", Text: "right"},
						{ID: "b", Text: "wrong"},
					},
					CorrectOptionID: "a",
					SkillArea:       "Geometry",
					Difficulty:      "easy",
				},
			},
		},
	}), time.Minute)
	registry := game.NewRegistry(catalog, nil, game.Config{
		QuestionDuration:    time.Hour,
		FallbackChallengeID: "test",
	})

	mux := http.NewServeMux()
	RegisterPages(mux)
	mux.HandleFunc("/ws", NewWSHandler(registry).ServeWS)
	return httptest.NewServer(mux)
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, eventType string, payload map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": eventType, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", eventType, err)
	}
}

// readUntil reads events, skipping unrelated broadcasts, until one of the
// wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, eventType string) map[string]any {
	t.Helper()
	for i := 0; i < 20; i++ {
		var msg struct {
			Type    string         `json:"type"`
			Payload map[string]any `json:"payload"`
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read while waiting for %s: %v", eventType, err)
		}
		if msg.Type == eventType {
			return msg.Payload
		}
	}
	t.Fatalf("gave up waiting for %s", eventType)
	return nil
}
