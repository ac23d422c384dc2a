package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mirsal/support-chat/backend/internal/model/chat"
)

var (
	ErrEmptyText     = errors.New("message text is required")
	ErrUnknownSender = errors.New("unknown sender role")
)

// Classifier produces a sentiment verdict for client-authored text. It must
// not fail; transient analyzer trouble is absorbed behind this boundary.
type Classifier interface {
	Classify(ctx context.Context, text string) chat.Sentiment
}

// Service is the distribution core. It owns every conversation's transcript
// and registry and serializes classify→append→broadcast per conversation, so
// broadcast order always matches append order.
type Service struct {
	classifier Classifier
	limit      int
	log        zerolog.Logger

	mu            sync.Mutex
	conversations map[string]*conversation
}

type conversation struct {
	mu         sync.Mutex
	transcript *Transcript
	registry   *Registry
}

// NewService bootstraps the in-memory distribution service. transcriptLimit
// caps each conversation's transcript; <= 0 means unbounded.
func NewService(classifier Classifier, transcriptLimit int, log zerolog.Logger) *Service {
	return &Service{
		classifier:    classifier,
		limit:         transcriptLimit,
		log:           log,
		conversations: make(map[string]*conversation),
	}
}

func (s *Service) conversation(id string) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		conv = &conversation{
			transcript: NewTranscript(s.limit),
			registry:   NewRegistry(),
		}
		s.conversations[id] = conv
	}
	return conv
}

// Join registers the connection and replays the full transcript to it alone
// as one previous-messages event. Registration and replay happen atomically
// relative to Publish, so the replayed snapshot and the subsequent
// new-message stream have no gap and no overlap.
func (s *Service) Join(_ context.Context, conversationID string, conn Connection) error {
	conv := s.conversation(conversationID)

	conv.mu.Lock()
	conv.registry.Register(conn)
	snapshot := conv.transcript.Snapshot()
	err := conn.Deliver(chat.OutEvent{Event: chat.EventPreviousMessages, Data: snapshot})
	conv.mu.Unlock()

	if err != nil {
		return fmt.Errorf("replay transcript: %w", err)
	}

	s.log.Info().
		Str("conversation", conversationID).
		Str("connection", conn.ID()).
		Int("replayed", len(snapshot)).
		Msg("party joined")
	return nil
}

// Leave drops the connection from the conversation. Leaving twice is safe,
// and leaving never cancels processing of messages the party already
// submitted.
func (s *Service) Leave(conversationID string, conn Connection) {
	conv := s.conversation(conversationID)

	conv.mu.Lock()
	conv.registry.Unregister(conn.ID())
	conv.mu.Unlock()

	s.log.Info().
		Str("conversation", conversationID).
		Str("connection", conn.ID()).
		Msg("party left")
}

// Publish accepts one inbound message: classify when client-authored, append,
// then broadcast to every registered connection, the sender included. The
// three steps form one atomic unit per conversation. Append failure prevents
// broadcast and is returned to the submitter; classification cannot fail.
func (s *Service) Publish(ctx context.Context, conversationID, text, sender string) (chat.Message, error) {
	if text == "" {
		return chat.Message{}, ErrEmptyText
	}
	if !chat.ValidSender(sender) {
		return chat.Message{}, ErrUnknownSender
	}

	conv := s.conversation(conversationID)

	conv.mu.Lock()
	defer conv.mu.Unlock()

	var sentiment *chat.Sentiment
	if sender == chat.SenderClient {
		verdict := s.classifier.Classify(ctx, text)
		sentiment = &verdict
	}

	msg, err := conv.transcript.Append(text, sender, sentiment)
	if err != nil {
		// Never broadcast a message the transcript did not record.
		return chat.Message{}, fmt.Errorf("append message: %w", err)
	}

	event := chat.OutEvent{Event: chat.EventNewMessage, Data: msg}
	conv.registry.ForEach(func(c Connection) {
		if deliverErr := c.Deliver(event); deliverErr != nil {
			s.log.Warn().
				Str("conversation", conversationID).
				Str("connection", c.ID()).
				Err(deliverErr).
				Msg("broadcast delivery failed")
		}
	})

	return msg, nil
}

// Snapshot exposes a conversation's transcript for read-only surfaces.
func (s *Service) Snapshot(conversationID string) []chat.Message {
	return s.conversation(conversationID).transcript.Snapshot()
}
