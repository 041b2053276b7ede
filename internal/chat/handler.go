package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightlinelabs/leadchat/pkg/logging"
)

// Responder produces a reply for one conversation turn.
type Responder interface {
	Respond(ctx context.Context, history []Message) (string, error)
}

// Handler handles HTTP requests for the chat endpoint.
type Handler struct {
	responder Responder
	logger    *logging.Logger
}

// NewHandler creates a new chat handler.
func NewHandler(responder Responder, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		responder: responder,
		logger:    logger,
	}
}

type chatRequest struct {
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// HandleChat handles POST /chat requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode chat request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "messages are required", http.StatusBadRequest)
		return
	}

	reply, err := h.responder.Respond(r.Context(), req.Messages)
	if err != nil {
		h.logger.Error("chat turn failed", "error", err)
		switch {
		case errors.Is(err, ErrNoMessages):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrCompletion), errors.Is(err, ErrBadToolPayload):
			http.Error(w, "upstream completion failure", http.StatusBadGateway)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(chatResponse{Response: reply})
}
