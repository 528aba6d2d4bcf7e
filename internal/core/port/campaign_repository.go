package port

import (
	"context"
	"time"

	"charity-ledger/internal/core/domain"
)

// ReleaseFunc hands an amount over to the owner's external account. The
// repository invokes it inside the withdrawal's atomic scope, after the
// balance has been zeroed and before the change is committed, so a
// failed release leaves the balance untouched.
type ReleaseFunc func(ctx context.Context, owner string, amount int64) error

// CampaignRepository defines the persistence layer backing the ledger.
// It is an outbound port; implementations must execute each mutating
// call as a single atomic unit per campaign so a precondition is never
// checked against a stale snapshot of the record it guards.
type CampaignRepository interface {
	// Create stores a new campaign and assigns the next sequential id,
	// filling ID, CreatedAt and UpdatedAt on the passed record.
	Create(ctx context.Context, c *domain.Campaign) error

	// Donate atomically validates the campaign window, adds the amount
	// to the raised balance, registers the donor and updates the
	// completion flag. It returns the updated campaign.
	Donate(ctx context.Context, cmd DonateCmd) (*domain.Campaign, error)

	// Withdraw atomically validates ownership, deadline and balance,
	// zeroes the raised amount, journals the withdrawal and invokes
	// release before making the reset durable. It returns the amount
	// released.
	Withdraw(ctx context.Context, cmd WithdrawCmd, release ReleaseFunc) (int64, error)

	// Get returns a campaign by id, or ErrCampaignNotFound.
	Get(ctx context.Context, campaignID int64) (*domain.Campaign, error)

	// List returns all campaigns ordered by id.
	List(ctx context.Context) ([]domain.Campaign, error)

	// Count returns the total number of campaigns created.
	Count(ctx context.Context) (int64, error)
}

// DonateCmd carries one donation through the repository. Now is the
// ledger clock at submission time; the deadline check uses it inside
// the same transaction as the balance update.
type DonateCmd struct {
	CampaignID int64
	Donor      string
	Amount     int64
	Token      string
	Now        time.Time
}

// WithdrawCmd carries one withdrawal request through the repository.
type WithdrawCmd struct {
	CampaignID int64
	Caller     string
	Reference  string
	Now        time.Time
}
