package port

import "errors"

// Ledger error taxonomy. Every rejected operation leaves all campaign
// state unchanged; all of these are caller errors the caller may retry
// with corrected input or timing.
var (
	// Validation errors, checked before any mutation.
	ErrInvalidTarget    = errors.New("target amount must be greater than 0")
	ErrInvalidDeadline  = errors.New("deadline must be in the future")
	ErrDonationTooSmall = errors.New("donation below minimum amount")

	// State errors, checked against the campaign lifecycle under the
	// same transaction as the effect.
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrCampaignEnded       = errors.New("campaign has ended")
	ErrCampaignStillActive = errors.New("campaign is still active")
	ErrNoFundsAvailable    = errors.New("no funds available to withdraw")

	// Authorization errors.
	ErrUnauthorized = errors.New("only the campaign owner can withdraw")
)
