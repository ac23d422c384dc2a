package chat

import "time"

// Sender role tags accepted on the wire. The conversation is a closed
// two-party exchange; anything else is rejected at the boundary.
const (
	SenderClient = "client"
	SenderAdmin  = "admin"
)

// Sentiment labels emitted by the classifier.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Sentiment is the coarse verdict attached to client-authored messages.
type Sentiment struct {
	Score  float64 `json:"score"`
	Label  string  `json:"label"`
	Reason string  `json:"reason"`
}

// Message is one immutable transcript entry. Sentiment stays null for
// admin-authored messages, so the field must not be omitted when empty.
type Message struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	Sender    string     `json:"sender"`
	Timestamp time.Time  `json:"timestamp"`
	Sentiment *Sentiment `json:"sentiment"`
}

// ValidSender reports whether the role tag is part of the protocol.
func ValidSender(sender string) bool {
	return sender == SenderClient || sender == SenderAdmin
}
