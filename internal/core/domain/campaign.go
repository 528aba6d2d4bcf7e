package domain

import "time"

// DefaultMinDonation is the minimum accepted contribution when no
// threshold is configured. Amounts are stored in integer units (e.g. cents).
const DefaultMinDonation int64 = 100

// Campaign represents a single fundraising effort. Monetary amounts are
// stored in integer units (e.g. cents). RaisedAmount is the balance
// currently held in custody and drops back to zero on withdrawal, while
// IsCompleted records whether the target was ever reached and is never
// cleared afterwards.
type Campaign struct {
	ID             int64
	Title          string
	Description    string
	TargetAmount   int64
	RaisedAmount   int64
	Owner          string
	Deadline       time.Time
	IsCompleted    bool
	NumberOfDonors int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Ended reports whether the donation window has closed at the given
// instant. Donations are rejected and withdrawal becomes permitted from
// the deadline onwards.
func (c *Campaign) Ended(now time.Time) bool {
	return !now.Before(c.Deadline)
}

// RemainingAmount returns how much is still missing to reach the target,
// floored at zero once the target has been exceeded.
func (c *Campaign) RemainingAmount() int64 {
	if c.RaisedAmount >= c.TargetAmount {
		return 0
	}
	return c.TargetAmount - c.RaisedAmount
}

// Progress returns the integer percentage of the target raised so far,
// rounded down. TargetAmount is guaranteed positive at creation, so the
// division is always defined.
func (c *Campaign) Progress() int64 {
	return c.RaisedAmount * 100 / c.TargetAmount
}
