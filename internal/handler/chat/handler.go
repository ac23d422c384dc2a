package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	chatservice "github.com/mirsal/support-chat/backend/internal/service/chat"
	"github.com/mirsal/support-chat/backend/pkg/utils"
)

// Handler serves the chat transport and its companion REST endpoints.
type Handler struct {
	chatSvc             *chatservice.Service
	classifier          chatservice.Classifier
	defaultConversation string
	upgrader            websocket.Upgrader
	log                 zerolog.Logger
}

// New creates the chat handler. An empty allowedOrigins list accepts any
// origin, matching the development posture of the reference deployment.
func New(chatSvc *chatservice.Service, classifier chatservice.Classifier, defaultConversation string, allowedOrigins []string, log zerolog.Logger) *Handler {
	return &Handler{
		chatSvc:             chatSvc,
		classifier:          classifier,
		defaultConversation: defaultConversation,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log,
	}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
	r.Get("/ws/{conversationID}", h.handleWebSocket)
	r.Get("/conversations/{conversationID}/messages", h.handleListMessages)
	r.Post("/sentiment", h.handleAnalyze)
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}

	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// handleListMessages returns the conversation transcript for read-only
// surfaces such as the admin dashboard.
func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		utils.RespondError(w, http.StatusBadRequest, "conversationID is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.chatSvc.Snapshot(conversationID))
}

// handleAnalyze classifies a text on demand without touching any transcript.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.classifier.Classify(r.Context(), payload.Text))
}
