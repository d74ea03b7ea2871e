package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	sendBufferSize = 256

	// Inbound frames may carry a full-length message body, which the
	// router truncates to the storage ceiling of 16777215 bytes. JSON
	// string escaping can expand a body byte to a six-byte \uXXXX
	// sequence, so size the read limit for a fully escaped body plus
	// envelope overhead.
	maxFrameSize = 6*16777215 + 4096
)

// Session is one live client connection. It is tracked only in memory and
// destroyed on disconnect with no effect on stored records.
type Session struct {
	ID       string
	JoinedAt time.Time
	Conn     *websocket.Conn
	Send     chan []byte

	hub *Hub

	closeOnce sync.Once
	done      chan struct{}
}

func newSession(conn *websocket.Conn, hub *Hub, id string) *Session {
	return &Session{
		ID:       id,
		JoinedAt: time.Now(),
		Conn:     conn,
		Send:     make(chan []byte, sendBufferSize),
		hub:      hub,
		done:     make(chan struct{}),
	}
}

// SendFrame marshals and queues a frame to be sent.
func (s *Session) SendFrame(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		slog.Error("marshal error", "session", s.ID, "error", err)
		return
	}
	select {
	case s.Send <- data:
	default:
		slog.Warn("send buffer full, dropping frame", "session", s.ID, "event", f.Event)
	}
}

// SendEvent marshals data and queues it under the given event name.
func (s *Session) SendEvent(event string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Error("marshal event error", "event", event, "error", err)
		return
	}
	s.SendFrame(Frame{Event: event, Data: raw})
}

// Close terminates the connection.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.Conn.Close()
	})
}

// readPump reads frames from the WebSocket and hands them to the hub.
func (s *Session) readPump() {
	defer func() {
		s.hub.unregister(s)
		s.Close()
	}()

	s.Conn.SetReadLimit(maxFrameSize)
	_ = s.Conn.SetReadDeadline(time.Now().Add(pongWait))
	s.Conn.SetPongHandler(func(string) error {
		_ = s.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := s.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("read error", "session", s.ID, "error", err)
			}
			return
		}
		s.handleFrame(message)
	}
}

// writePump writes queued frames to the WebSocket and pings on a timer.
// The ping tick also refreshes this session's presence key.
func (s *Session) writePump() {
	pingTicker := time.NewTicker(pingInterval)
	defer func() {
		pingTicker.Stop()
		s.Close()
	}()

	for {
		select {
		case message, ok := <-s.Send:
			_ = s.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.Conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := s.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-pingTicker.C:
			_ = s.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			s.hub.refreshPresence(s.ID)

		case <-s.done:
			return
		}
	}
}

// handleFrame processes one inbound frame from the client.
func (s *Session) handleFrame(data []byte) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		slog.Error("invalid frame", "session", s.ID, "error", err)
		return
	}

	switch frame.Event {
	case EventChatMessage:
		var msg ChatMessageData
		if err := json.Unmarshal(frame.Data, &msg); err != nil {
			slog.Error("invalid chat message data", "session", s.ID, "error", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.hub.submitChatMessage(ctx, msg.Username, msg.Message); err != nil {
			slog.Error("chat message rejected", "session", s.ID, "error", err)
			s.SendEvent("error", map[string]string{"message": "failed to store message"})
		}
	}
}
