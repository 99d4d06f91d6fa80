package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/KirkDiggler/pokerledger/internal/services/ledger"
	"github.com/gorilla/mux"
)

// Handler serves the ledger service over JSON
type Handler struct {
	ledgerService ledger.Service
}

// NewHandler creates a new handler
func NewHandler(ledgerService ledger.Service) *Handler {
	return &Handler{ledgerService: ledgerService}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decode reads a JSON body. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return newInvalidRequestError("Invalid request body")
	}
	return nil
}

func queryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, newInvalidRequestError(name + " must be a non-negative integer")
	}
	return v, nil
}

// StartSession handles POST /api/v1/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.StartSession(r.Context(), &ledger.StartSessionInput{
		Actor:     actorFromContext(r.Context()),
		ChipValue: req.ChipValue,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &SessionResponse{Session: out.Session})
}

// ListSessions handles GET /api/v1/sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.ListRecentSessions(r.Context(), &ledger.ListRecentSessionsInput{
		Days:  int(days),
		Limit: limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &SessionListResponse{SessionIDs: out.SessionIDs})
}

// GetSession handles GET /api/v1/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledgerService.GetSession(r.Context(), &ledger.GetSessionInput{
		SessionID: mux.Vars(r)["id"],
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &SessionResponse{Session: out.Session, InPlay: out.Totals.InPlay()})
}

// AddPlayer handles POST /api/v1/sessions/{id}/players
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req AddPlayerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.AddPlayer(r.Context(), &ledger.AddPlayerInput{
		SessionID: mux.Vars(r)["id"],
		Name:      req.Name,
		BuyIn:     req.BuyIn,
		Actor:     actorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, out.Player)
}

// Join handles POST /api/v1/sessions/{id}/join
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, newUnauthorizedError())
		return
	}

	var req JoinRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.JoinGame(r.Context(), &ledger.JoinGameInput{
		SessionID: mux.Vars(r)["id"],
		Identity:  identity,
		PlayerID:  req.PlayerID,
		BuyIn:     req.BuyIn,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Player)
}

// BuyIn handles POST /api/v1/sessions/{id}/buyins
func (h *Handler) BuyIn(w http.ResponseWriter, r *http.Request) {
	var req BuyInRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.BuyIn(r.Context(), &ledger.BuyInInput{
		SessionID: mux.Vars(r)["id"],
		BuyerID:   req.BuyerID,
		Amount:    req.Amount,
		SellerID:  req.SellerID,
		Actor:     actorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &EntryResponse{Entry: out.Entry})
}

// CashOut handles POST /api/v1/sessions/{id}/cashouts
func (h *Handler) CashOut(w http.ResponseWriter, r *http.Request) {
	var req CashOutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.CashOut(r.Context(), &ledger.CashOutInput{
		SessionID: mux.Vars(r)["id"],
		PlayerID:  req.PlayerID,
		Amount:    req.Amount,
		Actor:     actorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &EntryResponse{Entry: out.Entry})
}

// EndGame handles POST /api/v1/sessions/{id}/end
func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledgerService.EndGame(r.Context(), &ledger.EndGameInput{
		SessionID: mux.Vars(r)["id"],
		Actor:     actorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &SessionResponse{Session: out.Session})
}

// SubmitCounts handles POST /api/v1/sessions/{id}/counts
func (h *Handler) SubmitCounts(w http.ResponseWriter, r *http.Request) {
	var req FinalCountsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.SubmitFinalCounts(r.Context(), &ledger.SubmitFinalCountsInput{
		SessionID: mux.Vars(r)["id"],
		Counts:    req.Counts,
		Actor:     actorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Settlement)
}

// Resume handles POST /api/v1/sessions/{id}/resume
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledgerService.ResumeGame(r.Context(), &ledger.ResumeGameInput{
		SessionID: mux.Vars(r)["id"],
		Actor:     actorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &SessionResponse{Session: out.Session})
}

// SetChipValue handles PUT /api/v1/sessions/{id}/chip-value
func (h *Handler) SetChipValue(w http.ResponseWriter, r *http.Request) {
	var req ChipValueRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.SetChipValue(r.Context(), &ledger.SetChipValueInput{
		SessionID: mux.Vars(r)["id"],
		Chips:     req.Chips,
		Currency:  req.Currency,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &ChipValueResponse{ChipValue: out.ChipValue})
}

// UpdatePaymentID handles PUT /api/v1/sessions/{id}/players/{playerId}/payment-id
func (h *Handler) UpdatePaymentID(w http.ResponseWriter, r *http.Request) {
	var req PaymentIDRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	out, err := h.ledgerService.UpdatePaymentID(r.Context(), &ledger.UpdatePaymentIDInput{
		SessionID: vars["id"],
		PlayerID:  vars["playerId"],
		PaymentID: req.PaymentID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Player)
}

// PlayerHistory handles GET /api/v1/sessions/{id}/players/{playerId}/history
func (h *Handler) PlayerHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := h.ledgerService.GetPlayerHistory(r.Context(), &ledger.GetPlayerHistoryInput{
		SessionID: vars["id"],
		PlayerID:  vars["playerId"],
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &HistoryResponse{Player: out.Player, Entries: out.Entries})
}

// ListQuickAdd handles GET /api/v1/quick-add
func (h *Handler) ListQuickAdd(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledgerService.ListQuickAdd(r.Context(), &ledger.ListQuickAddInput{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &QuickAddResponse{Names: out.Names})
}

// ToggleQuickAdd handles POST /api/v1/quick-add/{name}/toggle
func (h *Handler) ToggleQuickAdd(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	out, err := h.ledgerService.ToggleQuickAdd(r.Context(), &ledger.ToggleQuickAddInput{Name: name})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &QuickAddToggleResponse{Name: name, QuickAdd: out.QuickAdd})
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.ledgerService.GetLeaderboard(r.Context(), &ledger.GetLeaderboardInput{Limit: limit})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Leaderboard)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
