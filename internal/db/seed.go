package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns and donations into the ledger database.
// It is a no-op when campaigns already exist.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	var existing int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM campaigns`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	owners := []string{
		"0xA1b2C3d4E5f60718293a4B5C6d7E8F9012345678",
		"0xB2c3D4e5F60718293A4b5C6D7e8F901234567890",
	}

	for i := 1; i <= 4; i++ {
		title := fmt.Sprintf("Demo Campaign %d", i)
		description := fmt.Sprintf("Seeded fundraising campaign %d", i)
		target := int64(1000000) // 10000.00 units
		deadline := time.Now().AddDate(0, 0, 7*i)
		owner := owners[i%len(owners)]
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, title, description, target_amount, raised_amount, owner, deadline, is_completed, number_of_donors, created_at, updated_at)
VALUES ($1,$2,$3,$4,0,$5,$6,false,0,now(),now()) ON CONFLICT DO NOTHING`,
			i, title, description, target, owner, deadline)
		if err != nil {
			return err
		}

		// a couple of donations per campaign, from random identities
		for j := 0; j < 2; j++ {
			donor := "0x" + uuid.NewString()
			amount := int64(2500 * (j + 1))
			_, err = db.Exec(ctx, `INSERT INTO campaign_donors (campaign_id, donor, first_donated_at)
VALUES ($1,$2,now()) ON CONFLICT DO NOTHING`, i, donor)
			if err != nil {
				return err
			}
			_, err = db.Exec(ctx, `INSERT INTO donations (token, campaign_id, donor, amount, created_at)
VALUES ($1,$2,$3,$4,now()) ON CONFLICT DO NOTHING`, uuid.NewString(), i, donor, amount)
			if err != nil {
				return err
			}
			_, err = db.Exec(ctx, `UPDATE campaigns
SET raised_amount = raised_amount + $1, number_of_donors = number_of_donors + 1, updated_at = now()
WHERE id = $2`, amount, i)
			if err != nil {
				return err
			}
		}
	}

	// keep the sequence ahead of the seeded ids
	_, err := db.Exec(ctx, `SELECT setval('campaigns_id_seq', (SELECT MAX(id) FROM campaigns))`)
	return err
}
