package api

import (
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/pokerledger/internal/services/ledger"
	"github.com/gorilla/mux"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	LedgerService ledger.Service
}

// NewRouter creates the API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()
	h := NewHandler(cfg.LedgerService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Recovery(logger))
	api.Use(Logging(logger))
	api.Use(Identity)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Sessions
	api.HandleFunc("/sessions", h.StartSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions", h.ListSessions).Methods(http.MethodGet)

	sessions := api.PathPrefix("/sessions/{id}").Subrouter()
	sessions.HandleFunc("", h.GetSession).Methods(http.MethodGet)
	sessions.HandleFunc("/events", h.Stream).Methods(http.MethodGet)
	sessions.HandleFunc("/players", h.AddPlayer).Methods(http.MethodPost)
	sessions.HandleFunc("/join", h.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/buyins", h.BuyIn).Methods(http.MethodPost)
	sessions.HandleFunc("/cashouts", h.CashOut).Methods(http.MethodPost)
	sessions.HandleFunc("/end", h.EndGame).Methods(http.MethodPost)
	sessions.HandleFunc("/counts", h.SubmitCounts).Methods(http.MethodPost)
	sessions.HandleFunc("/resume", h.Resume).Methods(http.MethodPost)
	sessions.HandleFunc("/chip-value", h.SetChipValue).Methods(http.MethodPut)
	sessions.HandleFunc("/players/{playerId}/payment-id", h.UpdatePaymentID).Methods(http.MethodPut)
	sessions.HandleFunc("/players/{playerId}/history", h.PlayerHistory).Methods(http.MethodGet)

	// Profiles and stats
	api.HandleFunc("/quick-add", h.ListQuickAdd).Methods(http.MethodGet)
	api.HandleFunc("/quick-add/{name}/toggle", h.ToggleQuickAdd).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", h.Leaderboard).Methods(http.MethodGet)

	return r
}
