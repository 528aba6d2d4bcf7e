package configs

// Ledger configures the campaign ledger. Storage selects the backing
// store: "postgres" (default) or "memory" for an in-process ledger
// without a database, useful for demos and local development.
type Ledger struct {
	// MinDonation is the smallest accepted contribution in integer
	// currency units.
	MinDonation int64 `env:"MIN_DONATION" envDefault:"100"`
	// Storage selects the repository implementation.
	Storage string `env:"STORAGE" envDefault:"postgres"`
}
