package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	analysis "github.com/mirsal/support-chat/backend/internal/analysis/sentiment"
	"github.com/mirsal/support-chat/backend/internal/model/chat"
)

// Remote asks an external analyzer endpoint for the verdict. The endpoint is
// the authority when it answers; any transport or payload failure falls back
// to the local lexicon classifier and is never surfaced to the user.
type Remote struct {
	url      string
	client   *http.Client
	fallback *analysis.Classifier
	log      zerolog.Logger
}

// NewRemote builds a remote analyzer client with a lexicon fallback.
func NewRemote(url string, timeout time.Duration, fallback *analysis.Classifier, log zerolog.Logger) *Remote {
	return &Remote{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		fallback: fallback,
		log:      log,
	}
}

type analyzeRequest struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// The analyzer reports its score under either field name depending on the
// deployment; response carries the human-readable justification.
type analyzeResponse struct {
	Score          *float64 `json:"score"`
	SentimentScore *float64 `json:"sentiment_score"`
	Response       string   `json:"response"`
}

// Classify implements the distribution service's Classifier contract.
func (r *Remote) Classify(ctx context.Context, text string) chat.Sentiment {
	verdict, err := r.analyze(ctx, text)
	if err != nil {
		r.log.Warn().Err(err).Msg("remote sentiment analysis failed, using lexicon fallback")
		return r.fallback.Classify(text)
	}
	return verdict
}

func (r *Remote) analyze(ctx context.Context, text string) (chat.Sentiment, error) {
	body, err := json.Marshal(analyzeRequest{
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return chat.Sentiment{}, fmt.Errorf("encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return chat.Sentiment{}, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return chat.Sentiment{}, fmt.Errorf("call analyzer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return chat.Sentiment{}, fmt.Errorf("analyzer returned status %d", resp.StatusCode)
	}

	var payload analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return chat.Sentiment{}, fmt.Errorf("decode analyzer response: %w", err)
	}

	score := payload.Score
	if score == nil {
		score = payload.SentimentScore
	}
	if score == nil {
		return chat.Sentiment{}, errors.New("analyzer response carries no score")
	}

	return band(*score, payload.Response), nil
}

// band applies the same ±20 labeling rule the lexicon classifier uses, so
// both classification sources share one vocabulary.
func band(score float64, reason string) chat.Sentiment {
	if reason == "" {
		reason = "remote analyzer verdict"
	}
	switch {
	case score > 20:
		return chat.Sentiment{Score: math.Min(math.Abs(score), 100), Label: chat.LabelPositive, Reason: reason}
	case score < -20:
		return chat.Sentiment{Score: math.Min(math.Abs(score), 100), Label: chat.LabelNegative, Reason: reason}
	default:
		return chat.Sentiment{Score: 0, Label: chat.LabelNeutral, Reason: reason}
	}
}
