package sentiment

import (
	"context"

	analysis "github.com/mirsal/support-chat/backend/internal/analysis/sentiment"
	"github.com/mirsal/support-chat/backend/internal/model/chat"
)

// Local adapts the lexicon classifier to the distribution service contract.
type Local struct {
	classifier *analysis.Classifier
}

// NewLocal wraps the given lexicon classifier.
func NewLocal(classifier *analysis.Classifier) *Local {
	return &Local{classifier: classifier}
}

// Classify implements the distribution service's Classifier contract.
func (l *Local) Classify(_ context.Context, text string) chat.Sentiment {
	return l.classifier.Classify(text)
}
