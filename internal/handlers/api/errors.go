package api

import (
	"encoding/json"
	"errors"
	"net/http"

	ledgerCore "github.com/KirkDiggler/pokerledger/internal/ledger"
	"github.com/KirkDiggler/pokerledger/internal/services/ledger"
	"github.com/KirkDiggler/pokerledger/internal/settlement"
)

// APIError is the body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
	CodeInvalidGameState = "INVALID_GAME_STATE"
	CodeStateConflict    = "STATE_CONFLICT"
	CodeBalanceMismatch  = "BALANCE_MISMATCH"
	CodeUnavailable      = "UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// mismatchDetails carries both totals so the organizer can find the bad count
type mismatchDetails struct {
	TotalFinalChips int64 `json:"totalFinalChips"`
	TotalBuyIn      int64 `json:"totalBuyIn"`
	Difference      int64 `json:"difference"`
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

func newInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

func newUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "X-User-ID header is required"}}
}

// writeError writes an error response to the response writer
func writeError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var mismatch *settlement.BalanceMismatchError
	if errors.As(err, &mismatch) {
		return &httpError{http.StatusUnprocessableEntity, APIError{
			Code:    CodeBalanceMismatch,
			Message: err.Error(),
			Details: mismatchDetails{
				TotalFinalChips: mismatch.TotalFinalChips,
				TotalBuyIn:      mismatch.TotalBuyIn,
				Difference:      mismatch.Difference(),
			},
		}}
	}

	switch {
	case errors.Is(err, ledgerCore.ErrValidation), errors.Is(err, ledger.ErrEmptySessionID):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: err.Error()}}
	case errors.Is(err, ledger.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeSessionNotFound, Message: "Session not found"}}
	case errors.Is(err, ledgerCore.ErrInvalidGameState):
		return &httpError{http.StatusConflict, APIError{Code: CodeInvalidGameState, Message: err.Error()}}
	case errors.Is(err, ledger.ErrStateConflict):
		return &httpError{http.StatusConflict, APIError{Code: CodeStateConflict, Message: "Session was changed by someone else, reload and try again"}}
	case errors.Is(err, ledger.ErrClosed):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeUnavailable, Message: "Service is shutting down"}}
	}

	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
