package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"quizroom/internal/game"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades HTTP requests to websockets and wires each connection
// into the room registry.
type WSHandler struct {
	registry *game.Registry
	upgrader websocket.Upgrader
}

func NewWSHandler(registry *game.Registry) *WSHandler {
	return &WSHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type createRoomPayload struct {
	Nickname    string `json:"nickname"`
	ChallengeID string `json:"challengeId"`
}

type joinRoomPayload struct {
	Nickname string `json:"nickname"`
	Pin      string `json:"pin"`
}

type startQuizPayload struct {
	Pin string `json:"pin"`
}

type submitAnswerPayload struct {
	Pin              string `json:"pin"`
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

type answerAckPayload struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

type joinErrorPayload struct {
	Reason string `json:"reason"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS runs the read loop for one websocket connection. Each connection
// gets a server-side identity that doubles as its player key.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	c := &client{
		ctx:          r.Context(),
		conn:         conn,
		registry:     h.registry,
		connID:       uuid.NewString(),
		send:         make(chan outboundMessage, 16),
		closeSignals: make(chan struct{}),
	}
	c.run()
}

// client tracks one websocket connection's room membership and pumps.
type client struct {
	ctx      context.Context
	conn     *websocket.Conn
	registry *game.Registry
	connID   string

	send         chan outboundMessage
	closeSignals chan struct{}
	writerDone   chan struct{}

	// pin and the subscription fields change only from the read loop.
	pin         string
	cancelSub   func()
	forwardDone chan struct{}
}

func (c *client) run() {
	c.writerDone = make(chan struct{})
	go func() {
		defer close(c.writerDone)
		for msg := range c.send {
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := c.conn.ReadJSON(&inbound); err != nil {
			break
		}
		c.handle(inbound)
	}

	// Unblock the forwarder before waiting on it; it may be stuck on a
	// full send buffer if the writer died first.
	close(c.closeSignals)
	c.detach()
	c.registry.Disconnect(c.connID)
	close(c.send)
	<-c.writerDone
}

func (c *client) handle(inbound inboundMessage) {
	switch inbound.Type {
	case "create_room":
		var payload createRoomPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.reply("error_message", errorPayload{Message: "invalid create_room payload"})
			return
		}
		c.leaveCurrentRoom()
		res, err := c.registry.CreateRoom(c.ctx, c.connID, payload.Nickname, payload.ChallengeID)
		if err != nil {
			c.reply("error_message", errorPayload{Message: err.Error()})
			return
		}
		c.attach(res.Pin)
		c.reply("room_created", res)

	case "join_room", "rejoin_room":
		var payload joinRoomPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.reply("room_join_error", joinErrorPayload{Reason: "invalid payload"})
			return
		}
		if payload.Pin != c.pin {
			c.leaveCurrentRoom()
		}
		var (
			res game.JoinResult
			err error
		)
		if inbound.Type == "rejoin_room" {
			res, err = c.registry.Rejoin(c.connID, payload.Nickname, payload.Pin)
		} else {
			res, err = c.registry.Join(c.connID, payload.Nickname, payload.Pin)
		}
		if err != nil {
			c.reply("room_join_error", joinErrorPayload{Reason: err.Error()})
			return
		}
		c.attach(res.Pin)
		c.reply("room_joined", res)
		if res.Current != nil {
			// Only the late joiner gets the in-flight question again.
			c.reply(game.EventNewQuestion, *res.Current)
		}

	case "start_quiz":
		var payload startQuizPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.reply("error_message", errorPayload{Message: "invalid start_quiz payload"})
			return
		}
		if err := c.registry.StartQuiz(payload.Pin, c.connID); err != nil {
			c.reply("error_message", errorPayload{Message: err.Error()})
		}

	case "submit_answer":
		var payload submitAnswerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.reply("answer_ack", answerAckPayload{Accepted: false, Reason: "invalid submit_answer payload"})
			return
		}
		feedback, err := c.registry.SubmitAnswer(payload.Pin, c.connID, payload.QuestionID, payload.SelectedOptionID)
		if err != nil {
			c.reply("answer_ack", answerAckPayload{Accepted: false, Reason: err.Error()})
			return
		}
		c.reply("answer_ack", answerAckPayload{Accepted: true})
		c.reply("answer_feedback", feedback)

	default:
		c.reply("error_message", errorPayload{Message: "unsupported message type"})
	}
}

// attach subscribes the connection to a room's events and forwards them
// into the writer.
func (c *client) attach(pin string) {
	if c.pin == pin && c.cancelSub != nil {
		return
	}
	c.detach()

	updates, cancel, err := c.registry.Subscribe(pin, c.connID)
	if err != nil {
		c.reply("error_message", errorPayload{Message: err.Error()})
		return
	}
	c.pin = pin
	c.cancelSub = cancel
	c.forwardDone = make(chan struct{})

	go func(updates <-chan game.Event, done chan struct{}) {
		defer close(done)
		for {
			select {
			case ev, ok := <-updates:
				if !ok {
					return
				}
				select {
				case c.send <- outboundMessage{Type: ev.Type, Payload: ev.Payload}:
				case <-c.closeSignals:
					return
				}
			case <-c.closeSignals:
				return
			}
		}
	}(updates, c.forwardDone)
}

// detach tears down the current room subscription, if any.
func (c *client) detach() {
	if c.cancelSub != nil {
		c.cancelSub()
		<-c.forwardDone
		c.cancelSub = nil
	}
	c.pin = ""
}

// leaveCurrentRoom drops membership in the previous room before entering
// another one; a connection belongs to at most one room.
func (c *client) leaveCurrentRoom() {
	if c.pin == "" {
		return
	}
	c.detach()
	c.registry.Disconnect(c.connID)
}

func (c *client) reply(eventType string, payload any) {
	select {
	case c.send <- outboundMessage{Type: eventType, Payload: payload}:
	case <-c.closeSignals:
	}
}
