package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"charity-ledger/internal/core/domain"
	"charity-ledger/internal/core/port"
)

func newCampaign(t *testing.T, r *CampaignRepository, owner string, target int64, deadline time.Time) *domain.Campaign {
	t.Helper()
	c := &domain.Campaign{
		Title:        "test",
		TargetAmount: target,
		Owner:        owner,
		Deadline:     deadline,
	}
	require.NoError(t, r.Create(context.Background(), c))
	return c
}

func TestCreateAssignsDenseIDs(t *testing.T) {
	r := NewCampaignRepository()
	deadline := time.Now().Add(time.Hour)

	for i := int64(1); i <= 5; i++ {
		c := newCampaign(t, r, "owner", 1000, deadline)
		require.Equal(t, i, c.ID)
	}
	count, err := r.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 5, count)
}

// TestConcurrentDonations hammers one campaign from many goroutines and
// checks that the raised total and the distinct donor count survive the
// interleaving.
func TestConcurrentDonations(t *testing.T) {
	r := NewCampaignRepository()
	now := time.Now()
	newCampaign(t, r, "owner", 1_000_000, now.Add(time.Hour))

	const donors = 8
	const perDonor = 25

	var wg sync.WaitGroup
	wg.Add(donors * perDonor)
	for d := 0; d < donors; d++ {
		donor := fmt.Sprintf("donor-%d", d)
		for i := 0; i < perDonor; i++ {
			go func() {
				defer wg.Done()
				_, err := r.Donate(context.Background(), port.DonateCmd{
					CampaignID: 1,
					Donor:      donor,
					Amount:     10,
					Now:        now,
				})
				if err != nil {
					t.Errorf("donate: %v", err)
				}
			}()
		}
	}
	wg.Wait()

	c, err := r.Get(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, donors*perDonor*10, c.RaisedAmount)
	require.EqualValues(t, donors, c.NumberOfDonors)
	require.Len(t, r.Donations(1), donors*perDonor)
}

// TestConcurrentWithdrawals checks that racing withdrawals release the
// balance exactly once.
func TestConcurrentWithdrawals(t *testing.T) {
	r := NewCampaignRepository()
	now := time.Now()
	newCampaign(t, r, "owner", 1000, now.Add(-time.Hour))

	// fund it directly through the store, pre-deadline
	r.mu.Lock()
	r.campaigns[1].RaisedAmount = 500
	r.mu.Unlock()

	var mu sync.Mutex
	var released int64
	release := func(ctx context.Context, owner string, amount int64) error {
		mu.Lock()
		defer mu.Unlock()
		released += amount
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(4)
	for i := 0; i < 4; i++ {
		i := i
		go func() {
			defer wg.Done()
			_, _ = r.Withdraw(context.Background(), port.WithdrawCmd{
				CampaignID: 1,
				Caller:     "owner",
				Reference:  fmt.Sprintf("ref-%d", i),
				Now:        now,
			}, release)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 500, released, "exactly one withdrawal must win")
	c, err := r.Get(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, 0, c.RaisedAmount)
	require.Len(t, r.Withdrawals(1), 1)
}

func TestWithdrawRestoresBalanceOnReleaseFailure(t *testing.T) {
	r := NewCampaignRepository()
	now := time.Now()
	newCampaign(t, r, "owner", 1000, now.Add(-time.Hour))

	r.mu.Lock()
	r.campaigns[1].RaisedAmount = 300
	r.mu.Unlock()

	_, err := r.Withdraw(context.Background(), port.WithdrawCmd{
		CampaignID: 1,
		Caller:     "owner",
		Reference:  "ref",
		Now:        now,
	}, func(ctx context.Context, owner string, amount int64) error {
		return context.DeadlineExceeded
	})
	require.Error(t, err)

	c, err := r.Get(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, 300, c.RaisedAmount)
	require.Empty(t, r.Withdrawals(1))
}

func TestGetReturnsSnapshot(t *testing.T) {
	r := NewCampaignRepository()
	now := time.Now()
	newCampaign(t, r, "owner", 1000, now.Add(time.Hour))

	c, err := r.Get(context.Background(), 1)
	require.NoError(t, err)
	c.RaisedAmount = 999

	fresh, err := r.Get(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, 0, fresh.RaisedAmount, "mutating a snapshot must not touch the store")
}
