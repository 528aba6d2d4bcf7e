package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"log/slog"

	"charity-ledger/internal/core/port"
)

// headerCaller carries the caller identity for state-mutating requests.
// The ledger treats it as an opaque address supplied by the presentation
// layer; authentication lives outside this service.
const headerCaller = "X-Caller-Address"

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the ledger use case to execute business logic and a
// logger for structured logging. Routes are registered on a chi.Router.
type Handler struct {
	svc    port.LedgerUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.LedgerUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/count", h.handleCampaignCount)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Get("/campaigns/{id}/remaining", h.handleRemainingAmount)
		r.Get("/campaigns/{id}/progress", h.handleProgress)
		r.Post("/campaigns/{id}/donations", h.handleDonate)
		r.Post("/campaigns/{id}/withdrawals", h.handleWithdraw)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// campaignID extracts and parses the {id} path parameter. It writes a
// 400 response and returns false when the parameter is not an integer.
func campaignID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// caller extracts the caller identity header. It writes a 400 response
// and returns false when the header is missing.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	addr := r.Header.Get(headerCaller)
	if addr == "" {
		http.Error(w, "missing "+headerCaller+" header", http.StatusBadRequest)
		return "", false
	}
	return addr, true
}

// writeJSON encodes v with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; log and move on
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps ledger errors onto HTTP status codes: validation to
// 400, authorization to 401, unknown campaigns to 404, lifecycle
// conflicts to 409 and everything else to 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrInvalidTarget),
		errors.Is(err, port.ErrInvalidDeadline),
		errors.Is(err, port.ErrDonationTooSmall):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, port.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, port.ErrCampaignNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, port.ErrCampaignEnded),
		errors.Is(err, port.ErrCampaignStillActive),
		errors.Is(err, port.ErrNoFundsAvailable):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("ledger error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
