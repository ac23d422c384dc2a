package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mirsal/support-chat/backend/internal/model/chat"
)

const (
	readDeadline  = 60 * time.Second
	pingInterval  = 54 * time.Second
	writeDeadline = 10 * time.Second
	sendBuffer    = 32
)

// wsConnection adapts one websocket session to the distribution service's
// Connection contract. Outbound events flow through a buffered channel so a
// slow reader never blocks the broadcast path; the channel preserves delivery
// order per connection.
type wsConnection struct {
	id   string
	conn *websocket.Conn
	send chan chat.OutEvent
	done chan struct{}
	log  zerolog.Logger
}

func newWSConnection(conn *websocket.Conn, log zerolog.Logger) *wsConnection {
	return &wsConnection{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan chat.OutEvent, sendBuffer),
		done: make(chan struct{}),
		log:  log,
	}
}

// ID implements chatservice.Connection.
func (c *wsConnection) ID() string { return c.id }

// Deliver implements chatservice.Connection. It enqueues without blocking and
// reports a connection whose buffer is full as undeliverable.
func (c *wsConnection) Deliver(event chat.OutEvent) error {
	select {
	case <-c.done:
		return errors.New("connection closed")
	case c.send <- event:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

func (c *wsConnection) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteJSON(event); err != nil {
				c.log.Warn().Err(err).Str("connection", c.id).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleWebSocket runs one connection's lifecycle: upgrade, join with
// transcript replay, read loop, and unregistration on disconnect.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		conversationID = h.defaultConversation
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ws := newWSConnection(conn, h.log)
	defer close(ws.done)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go ws.writePump(ctx)

	if err := h.chatSvc.Join(ctx, conversationID, ws); err != nil {
		h.log.Warn().Err(err).Str("conversation", conversationID).Msg("transcript replay failed")
		h.chatSvc.Leave(conversationID, ws)
		return
	}
	defer h.chatSvc.Leave(conversationID, ws)

	h.log.Info().
		Str("conversation", conversationID).
		Str("connection", ws.ID()).
		Msg("websocket connected")

	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	for {
		var envelope chat.Envelope
		if err := conn.ReadJSON(&envelope); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Str("connection", ws.ID()).Msg("websocket read failed")
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(readDeadline))
		h.handleEnvelope(ctx, conversationID, ws, envelope)
	}
}

func (h *Handler) handleEnvelope(ctx context.Context, conversationID string, ws *wsConnection, envelope chat.Envelope) {
	switch envelope.Event {
	case chat.EventSendMessage:
		var payload chat.SendMessagePayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			h.reject(ws, "invalid send-message payload")
			return
		}
		if _, err := h.chatSvc.Publish(ctx, conversationID, payload.Text, payload.Sender); err != nil {
			h.reject(ws, err.Error())
		}
	default:
		h.reject(ws, "unsupported event: "+envelope.Event)
	}
}

// reject sends an explicit error event to the submitting connection only.
func (h *Handler) reject(ws *wsConnection, message string) {
	err := ws.Deliver(chat.OutEvent{
		Event: chat.EventError,
		Data:  chat.ErrorPayload{Message: message},
	})
	if err != nil {
		h.log.Warn().Err(err).Str("connection", ws.ID()).Msg("rejection delivery failed")
	}
}
