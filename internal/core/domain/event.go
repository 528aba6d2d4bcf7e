package domain

// Topics for ledger notifications. Events inform external observers
// (UI, indexers) and are not required for ledger correctness.
const (
	TopicCampaignCreated  = "campaign.created"
	TopicDonationReceived = "campaign.donated"
	TopicFundsWithdrawn   = "campaign.withdrawn"
)

// CampaignCreatedEvent is published after a campaign record is stored.
type CampaignCreatedEvent struct {
	CampaignID int64  `json:"campaign_id"`
	Owner      string `json:"owner"`
}

// DonationReceivedEvent is published after a donation is accepted.
// RaisedAmount carries the new running total.
type DonationReceivedEvent struct {
	CampaignID   int64  `json:"campaign_id"`
	Donor        string `json:"donor"`
	Amount       int64  `json:"amount"`
	RaisedAmount int64  `json:"raised_amount"`
	Token        string `json:"token"`
}

// FundsWithdrawnEvent is published after a successful fund release.
type FundsWithdrawnEvent struct {
	CampaignID int64  `json:"campaign_id"`
	Owner      string `json:"owner"`
	Amount     int64  `json:"amount"`
	Reference  string `json:"reference"`
}
