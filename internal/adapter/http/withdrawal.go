package httpadapter

import "net/http"

// handleWithdraw releases the campaign's current balance to its owner.
// Only the owner may call it (401 otherwise), only after the deadline
// and only while a positive balance exists (409 otherwise). On success
// it returns the released amount.
func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := campaignID(w, r)
	if !ok {
		return
	}

	amount, err := h.svc.Withdraw(r.Context(), owner, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"amount": amount})
}
