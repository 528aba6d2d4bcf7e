package memory

import (
	"context"
	"sync"
	"time"

	"charity-ledger/internal/core/domain"
	"charity-ledger/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository on in-process
// maps. One mutex guards the whole ledger and is held across each
// operation body, so every check-then-act runs against a single
// snapshot. It backs the unit tests and the storage=memory mode.
type CampaignRepository struct {
	mu          sync.Mutex
	nextID      int64
	campaigns   map[int64]*domain.Campaign
	donors      map[int64]map[string]struct{}
	donations   []domain.Donation
	withdrawals []domain.Withdrawal
}

// NewCampaignRepository returns an empty in-memory ledger store.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		campaigns: make(map[int64]*domain.Campaign),
		donors:    make(map[int64]map[string]struct{}),
	}
}

// Create assigns the next sequential id and stores the campaign. Ids
// are 1-based and dense; nothing ever deletes a campaign.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	c.ID = r.nextID
	c.CreatedAt = now
	c.UpdatedAt = now

	stored := *c
	r.campaigns[c.ID] = &stored
	r.donors[c.ID] = make(map[string]struct{})
	return nil
}

// Donate validates the campaign window and applies the donation under
// the ledger lock.
func (r *CampaignRepository) Donate(ctx context.Context, cmd port.DonateCmd) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.campaigns[cmd.CampaignID]
	if !ok {
		return nil, port.ErrCampaignNotFound
	}
	if c.Ended(cmd.Now) {
		return nil, port.ErrCampaignEnded
	}

	c.RaisedAmount += cmd.Amount
	if _, seen := r.donors[cmd.CampaignID][cmd.Donor]; !seen {
		r.donors[cmd.CampaignID][cmd.Donor] = struct{}{}
		c.NumberOfDonors++
	}
	if !c.IsCompleted && c.RaisedAmount >= c.TargetAmount {
		c.IsCompleted = true
	}
	c.UpdatedAt = time.Now().UTC()

	r.donations = append(r.donations, domain.Donation{
		ID:         int64(len(r.donations) + 1),
		Token:      cmd.Token,
		CampaignID: cmd.CampaignID,
		Donor:      cmd.Donor,
		Amount:     cmd.Amount,
		CreatedAt:  c.UpdatedAt,
	})

	snapshot := *c
	return &snapshot, nil
}

// Withdraw zeroes the balance under the lock, then performs the release
// outside it so a concurrent withdrawal attempt observes a zero balance
// rather than blocking on the transfer. If the release fails the
// captured amount is put back and the journal stays untouched.
func (r *CampaignRepository) Withdraw(ctx context.Context, cmd port.WithdrawCmd, release port.ReleaseFunc) (int64, error) {
	r.mu.Lock()
	c, ok := r.campaigns[cmd.CampaignID]
	if !ok {
		r.mu.Unlock()
		return 0, port.ErrCampaignNotFound
	}
	if c.Owner != cmd.Caller {
		r.mu.Unlock()
		return 0, port.ErrUnauthorized
	}
	if !c.Ended(cmd.Now) {
		r.mu.Unlock()
		return 0, port.ErrCampaignStillActive
	}
	if c.RaisedAmount == 0 {
		r.mu.Unlock()
		return 0, port.ErrNoFundsAvailable
	}

	amount := c.RaisedAmount
	c.RaisedAmount = 0
	c.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()

	if err := release(ctx, c.Owner, amount); err != nil {
		r.mu.Lock()
		c.RaisedAmount += amount
		r.mu.Unlock()
		return 0, err
	}

	r.mu.Lock()
	r.withdrawals = append(r.withdrawals, domain.Withdrawal{
		ID:         int64(len(r.withdrawals) + 1),
		Reference:  cmd.Reference,
		CampaignID: cmd.CampaignID,
		Owner:      c.Owner,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	})
	r.mu.Unlock()
	return amount, nil
}

// Get returns a snapshot of a campaign by id.
func (r *CampaignRepository) Get(ctx context.Context, campaignID int64) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.campaigns[campaignID]
	if !ok {
		return nil, port.ErrCampaignNotFound
	}
	snapshot := *c
	return &snapshot, nil
}

// List returns snapshots of all campaigns ordered by id.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Campaign, 0, len(r.campaigns))
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.campaigns[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

// Count returns the total number of campaigns created.
func (r *CampaignRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextID, nil
}

// Donations returns a snapshot of the donation journal for a campaign.
func (r *CampaignRepository) Donations(campaignID int64) []domain.Donation {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Donation
	for _, d := range r.donations {
		if d.CampaignID == campaignID {
			out = append(out, d)
		}
	}
	return out
}

// Withdrawals returns a snapshot of the withdrawal journal for a campaign.
func (r *CampaignRepository) Withdrawals(campaignID int64) []domain.Withdrawal {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Withdrawal
	for _, w := range r.withdrawals {
		if w.CampaignID == campaignID {
			out = append(out, w)
		}
	}
	return out
}
