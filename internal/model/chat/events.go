package chat

import "encoding/json"

// Event names of the websocket protocol.
const (
	EventSendMessage      = "send-message"
	EventPreviousMessages = "previous-messages"
	EventNewMessage       = "new-message"
	EventError            = "error"
)

// Envelope frames every inbound websocket payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutEvent is the service→party frame.
type OutEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// SendMessagePayload is the party→service submission.
type SendMessagePayload struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// ErrorPayload carries an explicit rejection back to the submitter.
type ErrorPayload struct {
	Message string `json:"message"`
}
