package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/services/ledger"
	"github.com/gorilla/mux"
)

// pingPeriod is the interval between keepalive comments
const pingPeriod = 30 * time.Second

// Stream handles GET /api/v1/sessions/{id}/events. It sends the current
// session, then the session again every time it is saved.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, fmt.Errorf("streaming unsupported"))
		return
	}

	sessionID := mux.Vars(r)["id"]

	current, err := h.ledgerService.GetSession(r.Context(), &ledger.GetSessionInput{SessionID: sessionID})
	if err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.ledgerService.Subscribe(r.Context(), &ledger.SubscribeInput{SessionID: sessionID})
	if err != nil {
		writeError(w, err)
		return
	}
	defer func() {
		_ = sub.Close()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "session", current.Session); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case doc, ok := <-sub.Updates:
			if !ok {
				return
			}
			if err := writeEvent(w, "session", doc); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
