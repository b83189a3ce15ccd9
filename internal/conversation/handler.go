package conversation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/saathi/internal/crisis"
	"github.com/wolfman30/saathi/internal/observability/metrics"
	"github.com/wolfman30/saathi/internal/session"
	"github.com/wolfman30/saathi/pkg/logging"
)

const (
	msgSessionStarted  = "Session started successfully"
	msgEmptyMessage    = "Message cannot be empty"
	msgInvalidBody     = "Invalid request body"
	msgBodyTooLarge    = "Request entity too large"
	msgSessionNotFound = "Session not found"
	msgInternalError   = "Internal server error"
)

// Handler wires HTTP requests to the orchestrator and session store.
type Handler struct {
	orchestrator *Orchestrator
	store        *session.Store
	metrics      *metrics.ChatMetrics
	logger       *logging.Logger
	diagnostics  bool
}

// NewHandler creates a chat handler.
func NewHandler(orchestrator *Orchestrator, store *session.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		orchestrator: orchestrator,
		store:        store,
		logger:       logger,
	}
}

// WithDiagnostics includes error details in 500 responses. Development only.
func (h *Handler) WithDiagnostics(enabled bool) *Handler {
	h.diagnostics = enabled
	return h
}

// WithMetrics counts explicitly started sessions.
func (h *Handler) WithMetrics(m *metrics.ChatMetrics) *Handler {
	h.metrics = m
	return h
}

type chatRequest struct {
	Message string `json:"message"`
}

type startResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	Crisis       *crisis.Result `json:"crisis"`
	SessionID    string         `json:"sessionId"`
	MessageCount int            `json:"messageCount"`
}

type historyResponse struct {
	Success     bool        `json:"success"`
	Messages    []turnView  `json:"messages"`
	SessionInfo sessionInfo `json:"sessionInfo"`
}

type sessionInfo struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"createdAt"`
	LastActivity string `json:"lastActivity"`
	MessageCount int    `json:"messageCount"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// turnView renders a stored turn. Assistant turns always carry a crisis key
// (object or null); user turns omit it.
type turnView struct {
	Role      string
	Content   string
	Timestamp string
	Crisis    *crisis.Result
}

func (v turnView) MarshalJSON() ([]byte, error) {
	if v.Role == string(session.RoleAssistant) {
		return json.Marshal(struct {
			Role      string         `json:"role"`
			Content   string         `json:"content"`
			Timestamp string         `json:"timestamp"`
			Crisis    *crisis.Result `json:"crisis"`
		}{v.Role, v.Content, v.Timestamp, v.Crisis})
	}
	return json.Marshal(struct {
		Role      string `json:"role"`
		Content   string `json:"content"`
		Timestamp string `json:"timestamp"`
	}{v.Role, v.Content, v.Timestamp})
}

// FormatTimestamp renders t as UTC ISO-8601 with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// StartSession handles POST /api/session/start.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	s := h.store.Create()
	h.metrics.ObserveSessionCreated("explicit", h.store.Len())
	h.logger.Info("session started", "session_id", s.ID)

	h.writeJSON(w, http.StatusOK, startResponse{
		Success:   true,
		SessionID: s.ID,
		Message:   msgSessionStarted,
	})
}

// Chat handles POST /api/chat/{sessionId}.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge, nil)
			return
		}
		h.logger.Warn("failed to decode chat request", "session_id", sessionID, "error", err)
		h.writeError(w, http.StatusBadRequest, msgInvalidBody, nil)
		return
	}

	reply, err := h.orchestrator.HandleMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		var perr *ProviderError
		switch {
		case errors.Is(err, ErrInvalidInput):
			h.writeError(w, http.StatusBadRequest, msgEmptyMessage, nil)
		case errors.As(err, &perr):
			h.writeError(w, http.StatusInternalServerError, ProviderFallbackMessage(), perr.Unwrap())
		default:
			h.writeError(w, http.StatusInternalServerError, msgInternalError, err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, chatResponse{
		Success:      true,
		Message:      reply.Message,
		Crisis:       reply.Crisis,
		SessionID:    reply.SessionID,
		MessageCount: reply.MessageCount,
	})
}

// History handles GET /api/session/{sessionId}/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	s, err := h.store.Get(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			h.writeError(w, http.StatusNotFound, msgSessionNotFound, nil)
			return
		}
		h.logger.Error("failed to load session history", "session_id", sessionID, "error", err)
		h.writeError(w, http.StatusInternalServerError, msgInternalError, err)
		return
	}

	messages := make([]turnView, 0, len(s.Messages))
	for _, turn := range s.Messages {
		messages = append(messages, turnView{
			Role:      string(turn.Role),
			Content:   turn.Content,
			Timestamp: FormatTimestamp(turn.Timestamp),
			Crisis:    turn.Crisis,
		})
	}

	h.writeJSON(w, http.StatusOK, historyResponse{
		Success:  true,
		Messages: messages,
		SessionInfo: sessionInfo{
			ID:           s.ID,
			CreatedAt:    FormatTimestamp(s.CreatedAt),
			LastActivity: FormatTimestamp(s.LastActivity),
			MessageCount: s.MessageCount(),
		},
	})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, cause error) {
	resp := errorResponse{Success: false, Error: message}
	if h.diagnostics && cause != nil {
		resp.Details = cause.Error()
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
