package httpadapter

import (
	"encoding/json"
	"net/http"
)

// handleDonate accepts a contribution from the caller to the campaign
// bound by the {id} path parameter. The body carries the transferred
// amount. On success it returns HTTP 204; the caller can query the
// campaign for its updated state. Donations below the minimum or
// malformed input produce HTTP 400, unknown campaigns 404 and closed
// campaigns 409.
func (h *Handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	donor, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := campaignID(w, r)
	if !ok {
		return
	}

	var body struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if _, err := h.svc.Donate(r.Context(), donor, id, body.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
