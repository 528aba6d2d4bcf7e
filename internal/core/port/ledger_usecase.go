package port

import (
	"context"
	"time"

	"charity-ledger/internal/core/domain"
)

// LedgerUseCase defines the business operations exposed by the campaign
// ledger. This interface represents the primary port into the
// application domain; the HTTP adapter and any future transports speak
// to the ledger only through it.
type LedgerUseCase interface {
	// CreateCampaign validates the request, allocates the next
	// sequential campaign id and stores a fresh record owned by the
	// caller. It returns the stored campaign.
	CreateCampaign(ctx context.Context, caller string, req CreateCampaignReq) (*domain.Campaign, error)

	// Donate adds the amount to the campaign's raised balance, tracks
	// the caller as a donor and flips the completion flag the first time
	// the target is reached. It returns the updated campaign.
	Donate(ctx context.Context, caller string, campaignID, amount int64) (*domain.Campaign, error)

	// Withdraw releases the campaign's current balance to its owner.
	// Only the owner may call it, only after the deadline, and only
	// while a positive balance exists. It returns the amount released.
	Withdraw(ctx context.Context, caller string, campaignID int64) (int64, error)

	// GetCampaign returns a single campaign by id.
	GetCampaign(ctx context.Context, campaignID int64) (*domain.Campaign, error)

	// ListCampaigns returns all campaigns ordered by id.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)

	// CampaignCount returns the total number of campaigns ever created.
	CampaignCount(ctx context.Context) (int64, error)

	// RemainingAmount returns how much the campaign still needs to
	// reach its target, floored at zero.
	RemainingAmount(ctx context.Context, campaignID int64) (int64, error)

	// Progress returns the integer percentage of the target raised.
	Progress(ctx context.Context, campaignID int64) (int64, error)
}

// CreateCampaignReq carries the caller-supplied campaign parameters.
// Duration is the length of the donation window from creation time.
type CreateCampaignReq struct {
	Title        string
	Description  string
	TargetAmount int64
	Duration     time.Duration
}
