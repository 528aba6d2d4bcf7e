package memory

import (
	"context"
	"sync"
)

// Treasury implements port.FundGateway by crediting owner balances in
// process. It stands in for the external account system the ledger
// releases funds to.
type Treasury struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewTreasury returns an empty treasury.
func NewTreasury() *Treasury {
	return &Treasury{balances: make(map[string]int64)}
}

// Release credits the amount to the owner's account.
func (t *Treasury) Release(ctx context.Context, owner string, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[owner] += amount
	return nil
}

// Balance returns the amount credited to an owner so far.
func (t *Treasury) Balance(owner string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[owner]
}
