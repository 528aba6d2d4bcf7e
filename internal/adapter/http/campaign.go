package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"charity-ledger/internal/core/domain"
	"charity-ledger/internal/core/port"
)

// campaignResponse is the JSON representation of a campaign record.
type campaignResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TargetAmount   int64     `json:"target_amount"`
	RaisedAmount   int64     `json:"raised_amount"`
	Owner          string    `json:"owner"`
	Deadline       time.Time `json:"deadline"`
	IsCompleted    bool      `json:"is_completed"`
	NumberOfDonors int64     `json:"number_of_donors"`
	CreatedAt      time.Time `json:"created_at"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		TargetAmount:   c.TargetAmount,
		RaisedAmount:   c.RaisedAmount,
		Owner:          c.Owner,
		Deadline:       c.Deadline,
		IsCompleted:    c.IsCompleted,
		NumberOfDonors: c.NumberOfDonors,
		CreatedAt:      c.CreatedAt,
	}
}

// handleCreateCampaign creates a new campaign owned by the caller. The
// request body carries title, description, target amount and the
// donation window length in seconds. On success it returns HTTP 201
// with the stored campaign. Validation failures produce HTTP 400.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	var body struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		TargetAmount int64  `json:"target_amount"`
		Duration     int64  `json:"duration_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	c, err := h.svc.CreateCampaign(r.Context(), owner, port.CreateCampaignReq{
		Title:        body.Title,
		Description:  body.Description,
		TargetAmount: body.TargetAmount,
		Duration:     time.Duration(body.Duration) * time.Second,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(c))
}

// handleGetCampaign returns a single campaign by id.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

// handleListCampaigns returns all campaigns ordered by id.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]campaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, toCampaignResponse(&campaigns[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// handleCampaignCount returns the total number of campaigns created.
func (h *Handler) handleCampaignCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.CampaignCount(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// handleRemainingAmount returns how much the campaign still needs to
// reach its target.
func (h *Handler) handleRemainingAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(w, r)
	if !ok {
		return
	}
	remaining, err := h.svc.RemainingAmount(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"remaining_amount": remaining})
}

// handleProgress returns the integer percentage of the target raised.
func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(w, r)
	if !ok {
		return
	}
	progress, err := h.svc.Progress(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"progress_percent": progress})
}
