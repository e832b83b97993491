package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bus-ticketing/pkg/events"

	"go.uber.org/zap"
)

// EventsHandler streams seat and incident events to clients over
// server-sent events, so seat maps can refresh without polling.
type EventsHandler struct {
	hub *events.Hub
	log *zap.Logger
}

func NewEventsHandler(hub *events.Hub, log *zap.Logger) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		log: log.With(zap.String("handler", "events")),
	}
}

// Stream handles GET /api/events (public)
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := h.hub.Subscribe()
	defer cancel()

	h.log.Info("Event stream opened", zap.String("remote", r.RemoteAddr))

	for {
		select {
		case <-r.Context().Done():
			h.log.Info("Event stream closed", zap.String("remote", r.RemoteAddr))
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}
