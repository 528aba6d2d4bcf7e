package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"charity-ledger/internal/core/domain"
	"charity-ledger/internal/core/port"
)

// LedgerService provides the business logic for the campaign ledger. It
// orchestrates the repository, the fund gateway and the event bus to
// implement the LedgerUseCase interface.
type LedgerService struct {
	repo   port.CampaignRepository
	funds  port.FundGateway
	bus    port.EventBus
	logger *slog.Logger

	// minDonation is the smallest accepted contribution in integer
	// currency units.
	minDonation int64

	// now supplies the ledger clock; overridable in tests.
	now func() time.Time
}

// NewLedgerService creates a new service with the provided adapters. A
// non-positive minDonation falls back to domain.DefaultMinDonation.
func NewLedgerService(repo port.CampaignRepository, funds port.FundGateway, bus port.EventBus, logger *slog.Logger, minDonation int64) *LedgerService {
	if minDonation <= 0 {
		minDonation = domain.DefaultMinDonation
	}
	return &LedgerService{
		repo:        repo,
		funds:       funds,
		bus:         bus,
		logger:      logger,
		minDonation: minDonation,
		now:         time.Now,
	}
}

// CreateCampaign validates the request and stores a new campaign owned
// by the caller. The deadline is fixed at creation time plus the
// requested duration and never changes afterwards.
func (s *LedgerService) CreateCampaign(ctx context.Context, caller string, req port.CreateCampaignReq) (*domain.Campaign, error) {
	if req.TargetAmount <= 0 {
		return nil, port.ErrInvalidTarget
	}
	if req.Duration <= 0 {
		return nil, port.ErrInvalidDeadline
	}

	now := s.now()
	c := &domain.Campaign{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		Owner:        caller,
		Deadline:     now.Add(req.Duration),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.TopicCampaignCreated, domain.CampaignCreatedEvent{
		CampaignID: c.ID,
		Owner:      c.Owner,
	})
	return c, nil
}

// Donate accepts a contribution from the caller. The amount check is
// pure input validation and happens before the store is touched; the
// deadline check and the balance update run atomically in the
// repository.
func (s *LedgerService) Donate(ctx context.Context, caller string, campaignID, amount int64) (*domain.Campaign, error) {
	if amount < s.minDonation {
		return nil, port.ErrDonationTooSmall
	}

	token := uuid.NewString()
	c, err := s.repo.Donate(ctx, port.DonateCmd{
		CampaignID: campaignID,
		Donor:      caller,
		Amount:     amount,
		Token:      token,
		Now:        s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.TopicDonationReceived, domain.DonationReceivedEvent{
		CampaignID:   c.ID,
		Donor:        caller,
		Amount:       amount,
		RaisedAmount: c.RaisedAmount,
		Token:        token,
	})
	return c, nil
}

// Withdraw releases the campaign's current balance to its owner. The
// repository zeroes the balance and invokes the fund gateway within one
// atomic unit, so a failed release leaves the balance observable as it
// was.
func (s *LedgerService) Withdraw(ctx context.Context, caller string, campaignID int64) (int64, error) {
	reference := uuid.NewString()
	amount, err := s.repo.Withdraw(ctx, port.WithdrawCmd{
		CampaignID: campaignID,
		Caller:     caller,
		Reference:  reference,
		Now:        s.now(),
	}, s.funds.Release)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, domain.TopicFundsWithdrawn, domain.FundsWithdrawnEvent{
		CampaignID: campaignID,
		Owner:      caller,
		Amount:     amount,
		Reference:  reference,
	})
	return amount, nil
}

// GetCampaign returns a single campaign by id.
func (s *LedgerService) GetCampaign(ctx context.Context, campaignID int64) (*domain.Campaign, error) {
	return s.repo.Get(ctx, campaignID)
}

// ListCampaigns returns all campaigns ordered by id.
func (s *LedgerService) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.repo.List(ctx)
}

// CampaignCount returns the total number of campaigns ever created.
func (s *LedgerService) CampaignCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// RemainingAmount returns how much the campaign still needs to reach
// its target, floored at zero.
func (s *LedgerService) RemainingAmount(ctx context.Context, campaignID int64) (int64, error) {
	c, err := s.repo.Get(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	return c.RemainingAmount(), nil
}

// Progress returns the integer percentage of the target raised so far.
func (s *LedgerService) Progress(ctx context.Context, campaignID int64) (int64, error) {
	c, err := s.repo.Get(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	return c.Progress(), nil
}

// publish sends a notification to observers. Publish failures are
// logged and swallowed; events are not required for ledger correctness.
func (s *LedgerService) publish(ctx context.Context, topic string, event any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("event publish failed", slog.String("topic", topic), slog.Any("error", err))
	}
}
