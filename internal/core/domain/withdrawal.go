package domain

import "time"

// Withdrawal is a journal record of a fund release to a campaign owner.
// The reference identifies the release towards the external account
// system.
type Withdrawal struct {
	ID         int64
	Reference  string
	CampaignID int64
	Owner      string
	Amount     int64
	CreatedAt  time.Time
}
