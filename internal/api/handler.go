package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TickerBrief/internal/events"
	"TickerBrief/internal/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

type Handler struct {
	Bus        EventPublisher
	SigningKey string
	Log        *zap.Logger
}

// ScheduleNewsletter accepts a newsletter-schedule event payload, verifies
// its signature when signing is configured, and enqueues it. The assigned
// event id becomes the run id.
func (h *Handler) ScheduleNewsletter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !events.Verify(h.SigningKey, body, r.Header.Get("X-Signature")) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var req models.NewsletterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	ev := events.Event{
		ID:   uuid.NewString(),
		Name: events.NewsletterSchedule,
		Data: req,
	}

	if err := h.Bus.Publish(r.Context(), ev); err != nil {
		h.Log.Error("failed to enqueue event", zap.Error(err))
		http.Error(w, "failed to enqueue event", http.StatusInternalServerError)
		return
	}

	h.Log.Info("newsletter event enqueued",
		zap.String("event_id", ev.ID),
		zap.String("email", req.Email),
		zap.Strings("symbols", req.Symbols()),
	)

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"runId": ev.ID,
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}
