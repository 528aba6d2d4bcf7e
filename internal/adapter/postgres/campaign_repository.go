package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"charity-ledger/internal/core/domain"
	"charity-ledger/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool
// for PostgreSQL. Mutating operations run as serializable transactions
// holding a row lock on the campaign, so the deadline/balance checks and
// the updates they guard always see one snapshot.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, title, description, target_amount, raised_amount, owner, deadline, is_completed, number_of_donors, created_at, updated_at`

func scanCampaign(row pgx.Row, c *domain.Campaign) error {
	return row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.TargetAmount,
		&c.RaisedAmount,
		&c.Owner,
		&c.Deadline,
		&c.IsCompleted,
		&c.NumberOfDonors,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// Create stores a new campaign. Ids come from the campaigns sequence,
// which is 1-based and dense because campaigns are never deleted.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	now := time.Now().UTC()
	return r.pool.QueryRow(ctx, `INSERT INTO campaigns
    (title, description, target_amount, raised_amount, owner, deadline, is_completed, number_of_donors, created_at, updated_at)
VALUES ($1,$2,$3,0,$4,$5,false,0,$6,$6)
RETURNING id, created_at, updated_at`,
		c.Title, c.Description, c.TargetAmount, c.Owner, c.Deadline, now).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Donate applies a donation inside one serializable transaction: lock
// the campaign row, check the deadline against the submitted clock, add
// the amount, register the donor and flip the completion flag the first
// time the target is reached.
func (r *CampaignRepository) Donate(ctx context.Context, cmd port.DonateCmd) (_ *domain.Campaign, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var c domain.Campaign
	err = scanCampaign(tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, cmd.CampaignID), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		err = port.ErrCampaignNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if c.Ended(cmd.Now) {
		err = port.ErrCampaignEnded
		return nil, err
	}

	// first donation from this identity increments the donor count
	tag, execErr := tx.Exec(ctx, `INSERT INTO campaign_donors (campaign_id, donor, first_donated_at)
VALUES ($1,$2,$3) ON CONFLICT DO NOTHING`, cmd.CampaignID, cmd.Donor, cmd.Now)
	if execErr != nil {
		err = execErr
		return nil, err
	}
	if tag.RowsAffected() == 1 {
		c.NumberOfDonors++
	}

	c.RaisedAmount += cmd.Amount
	if !c.IsCompleted && c.RaisedAmount >= c.TargetAmount {
		c.IsCompleted = true
	}
	c.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx, `UPDATE campaigns
SET raised_amount = $1, number_of_donors = $2, is_completed = $3, updated_at = $4
WHERE id = $5`, c.RaisedAmount, c.NumberOfDonors, c.IsCompleted, c.UpdatedAt, cmd.CampaignID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `INSERT INTO donations (token, campaign_id, donor, amount, created_at)
VALUES ($1,$2,$3,$4,$5)`, cmd.Token, cmd.CampaignID, cmd.Donor, cmd.Amount, c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Withdraw zeroes the balance, journals the release and invokes the
// fund gateway before committing. A failed release rolls the whole
// transaction back, so the balance reset is never observable without
// the funds having moved.
func (r *CampaignRepository) Withdraw(ctx context.Context, cmd port.WithdrawCmd, release port.ReleaseFunc) (_ int64, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var c domain.Campaign
	err = scanCampaign(tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, cmd.CampaignID), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		err = port.ErrCampaignNotFound
		return 0, err
	}
	if err != nil {
		return 0, err
	}
	if c.Owner != cmd.Caller {
		err = port.ErrUnauthorized
		return 0, err
	}
	if !c.Ended(cmd.Now) {
		err = port.ErrCampaignStillActive
		return 0, err
	}
	if c.RaisedAmount == 0 {
		err = port.ErrNoFundsAvailable
		return 0, err
	}

	amount := c.RaisedAmount
	_, err = tx.Exec(ctx, `UPDATE campaigns SET raised_amount = 0, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), cmd.CampaignID)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `INSERT INTO withdrawals (reference, campaign_id, owner, amount, created_at)
VALUES ($1,$2,$3,$4,$5)`, cmd.Reference, cmd.CampaignID, c.Owner, amount, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = release(ctx, c.Owner, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// Get returns a campaign by id.
func (r *CampaignRepository) Get(ctx context.Context, campaignID int64) (*domain.Campaign, error) {
	var c domain.Campaign
	err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, campaignID), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all campaigns ordered by id.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := scanCampaign(row, &c)
		return c, err
	})
}

// Count returns the total number of campaigns created. Nothing deletes
// campaigns, so the count equals the highest assigned id.
func (r *CampaignRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(COUNT(*), 0) FROM campaigns`).Scan(&count)
	return count, err
}
