package domain

import "time"

// Donation is a journal record of an accepted contribution. The token is
// a unique reference assigned when the donation is accepted.
type Donation struct {
	ID         int64
	Token      string
	CampaignID int64
	Donor      string
	Amount     int64
	CreatedAt  time.Time
}
