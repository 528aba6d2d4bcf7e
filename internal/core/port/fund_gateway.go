package port

import "context"

// FundGateway releases custody funds to an owner's external account. It
// is an outbound port; the ledger only requires that a returned error
// means no value moved.
type FundGateway interface {
	Release(ctx context.Context, owner string, amount int64) error
}
