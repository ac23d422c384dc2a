package sentiment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	analysis "github.com/mirsal/support-chat/backend/internal/analysis/sentiment"
	"github.com/mirsal/support-chat/backend/internal/model/chat"
	sentiment "github.com/mirsal/support-chat/backend/internal/service/sentiment"
)

func newFallback() *analysis.Classifier {
	return analysis.New(analysis.DefaultArabicLexicon())
}

func TestLocalClassifierDelegates(t *testing.T) {
	local := sentiment.NewLocal(newFallback())

	got := local.Classify(context.Background(), "شكرا جزيلا")
	if got.Label != chat.LabelPositive || got.Score != 100 {
		t.Fatalf("unexpected verdict: %+v", got)
	}
}

func TestRemoteUsesAnalyzerVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sentiment_score": 75,
			"response":        "clearly satisfied customer",
		})
	}))
	defer server.Close()

	remote := sentiment.NewRemote(server.URL, time.Second, newFallback(), zerolog.Nop())

	got := remote.Classify(context.Background(), "أي نص")
	if got.Label != chat.LabelPositive {
		t.Fatalf("expected positive label, got %s", got.Label)
	}
	if got.Score != 75 {
		t.Fatalf("expected score 75, got %v", got.Score)
	}
	if got.Reason != "clearly satisfied customer" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}
}

func TestRemoteNegativeBand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"score": -90})
	}))
	defer server.Close()

	remote := sentiment.NewRemote(server.URL, time.Second, newFallback(), zerolog.Nop())

	got := remote.Classify(context.Background(), "أي نص")
	if got.Label != chat.LabelNegative || got.Score != 90 {
		t.Fatalf("unexpected verdict: %+v", got)
	}
}

func TestRemoteNeutralBandZeroesScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"score": 10})
	}))
	defer server.Close()

	remote := sentiment.NewRemote(server.URL, time.Second, newFallback(), zerolog.Nop())

	got := remote.Classify(context.Background(), "أي نص")
	if got.Label != chat.LabelNeutral || got.Score != 0 {
		t.Fatalf("unexpected verdict: %+v", got)
	}
}

func TestRemoteSendsTextAndTimestamp(t *testing.T) {
	var received struct {
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"score": 0})
	}))
	defer server.Close()

	remote := sentiment.NewRemote(server.URL, time.Second, newFallback(), zerolog.Nop())
	remote.Classify(context.Background(), "طلبي لم يصل")

	if received.Text != "طلبي لم يصل" {
		t.Fatalf("unexpected text: %q", received.Text)
	}
	if _, err := time.Parse(time.RFC3339, received.Timestamp); err != nil {
		t.Fatalf("timestamp not ISO-8601: %q", received.Timestamp)
	}
}

func TestRemoteFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	remote := sentiment.NewRemote(server.URL, time.Second, newFallback(), zerolog.Nop())

	got := remote.Classify(context.Background(), "شكرا جزيلا")
	if got.Label != chat.LabelPositive || got.Score != 100 {
		t.Fatalf("expected lexicon fallback verdict, got %+v", got)
	}
}

func TestRemoteFallsBackOnUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	remote := sentiment.NewRemote(server.URL, 200*time.Millisecond, newFallback(), zerolog.Nop())

	got := remote.Classify(context.Background(), "سيء مزعج")
	if got.Label != chat.LabelNegative || got.Score != 100 {
		t.Fatalf("expected lexicon fallback verdict, got %+v", got)
	}
}

func TestRemoteFallsBackOnMissingScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"response": "no verdict here"})
	}))
	defer server.Close()

	remote := sentiment.NewRemote(server.URL, time.Second, newFallback(), zerolog.Nop())

	got := remote.Classify(context.Background(), "طلبي لم يصل")
	if got.Label != chat.LabelNeutral || got.Score != 0 {
		t.Fatalf("expected neutral fallback, got %+v", got)
	}
	if got.Reason != "no sentiment indicators found" {
		t.Fatalf("expected lexicon reason, got %q", got.Reason)
	}
}
