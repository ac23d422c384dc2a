package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/mirsal/support-chat/backend/internal/model/chat"
)

// ErrTranscriptFull signals append failure once the capacity limit is hit.
var ErrTranscriptFull = errors.New("transcript is full")

// Transcript is the append-only in-memory log for one conversation. Messages
// are never mutated or removed after Append; the log lives for the process
// lifetime only.
type Transcript struct {
	mu       sync.RWMutex
	messages []chat.Message
	lastID   int64
	limit    int
}

// NewTranscript creates an empty transcript. limit <= 0 means unbounded.
func NewTranscript(limit int) *Transcript {
	return &Transcript{
		messages: make([]chat.Message, 0, 16),
		limit:    limit,
	}
}

// Append assigns id and timestamp and stores the finished message. IDs derive
// from the creation instant and stay strictly increasing even when appends
// land in the same millisecond.
func (t *Transcript) Append(text, sender string, sentiment *chat.Sentiment) (chat.Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.limit > 0 && len(t.messages) >= t.limit {
		return chat.Message{}, ErrTranscriptFull
	}

	now := time.Now().UTC()
	id := now.UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id

	msg := chat.Message{
		ID:        id,
		Text:      text,
		Sender:    sender,
		Timestamp: now,
		Sentiment: sentiment,
	}
	t.messages = append(t.messages, msg)
	return msg, nil
}

// Snapshot returns a copy of all messages in append order. Callers must treat
// the result as read-only.
func (t *Transcript) Snapshot() []chat.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copied := make([]chat.Message, len(t.messages))
	copy(copied, t.messages)
	return copied
}

// Len reports the number of stored messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
