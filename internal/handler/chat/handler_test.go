package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	analysis "github.com/mirsal/support-chat/backend/internal/analysis/sentiment"
	"github.com/mirsal/support-chat/backend/internal/model/chat"
	chatservice "github.com/mirsal/support-chat/backend/internal/service/chat"
	sentimentservice "github.com/mirsal/support-chat/backend/internal/service/sentiment"
)

func setupRouter() (*chi.Mux, *chatservice.Service) {
	classifier := sentimentservice.NewLocal(analysis.New(analysis.DefaultArabicLexicon()))
	chatSvc := chatservice.NewService(classifier, 0, zerolog.Nop())
	handler := New(chatSvc, classifier, "support", nil, zerolog.Nop())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, chatSvc
}

func TestListMessagesEmptyConversation(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/conversations/support/messages", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var messages []chat.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty transcript, got %d messages", len(messages))
	}
}

func TestListMessagesReturnsTranscript(t *testing.T) {
	r, chatSvc := setupRouter()

	if _, err := chatSvc.Publish(context.Background(), "support", "شكرا جزيلا", chat.SenderClient); err != nil {
		t.Fatalf("Publish err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/conversations/support/messages", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var messages []chat.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Sentiment == nil || messages[0].Sentiment.Label != chat.LabelPositive {
		t.Fatalf("expected positive sentiment, got %+v", messages[0].Sentiment)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	r, _ := setupRouter()

	payload, _ := json.Marshal(map[string]string{"text": "سيء مزعج"})
	req := httptest.NewRequest(http.MethodPost, "/sentiment", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var verdict chat.Sentiment
	if err := json.Unmarshal(resp.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if verdict.Label != chat.LabelNegative || verdict.Score != 100 {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
}

func TestAnalyzeMissingText(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/sentiment", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:8080"})

	allowed := httptest.NewRequest(http.MethodGet, "/ws", nil)
	allowed.Header.Set("Origin", "http://localhost:8080")
	if !check(allowed) {
		t.Fatal("expected configured origin to pass")
	}

	denied := httptest.NewRequest(http.MethodGet, "/ws", nil)
	denied.Header.Set("Origin", "http://evil.example")
	if check(denied) {
		t.Fatal("expected unknown origin to be rejected")
	}

	open := originChecker(nil)
	if !open(denied) {
		t.Fatal("expected empty allowlist to accept any origin")
	}
}
