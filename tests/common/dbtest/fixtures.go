//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestCampaign inserts a campaign whose issuance window is open around
// now and returns its id and code.
func CreateTestCampaign(t *testing.T, db DBLike, name string, quantity int32) (uuid.UUID, string) {
	t.Helper()

	campaignID := uuid.New()
	code := "TEST-" + campaignID.String()[:8]
	now := time.Now().UTC()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO campaigns (id, code, name, total_quantity, remaining_quantity,
			expiration_date, issue_start_time, issue_end_time)
		VALUES ($1, $2, $3, $4, $4, $5, $6, $7)`,
		campaignID, code, name, quantity,
		now.AddDate(0, 0, 30), now.Add(-time.Hour), now.Add(time.Hour),
	)
	require.NoError(t, err)

	return campaignID, code
}

// CreateClosedCampaign inserts a campaign whose issuance window already ended.
func CreateClosedCampaign(t *testing.T, db DBLike, name string, quantity int32) (uuid.UUID, string) {
	t.Helper()

	campaignID := uuid.New()
	code := "PAST-" + campaignID.String()[:8]
	now := time.Now().UTC()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO campaigns (id, code, name, total_quantity, remaining_quantity,
			expiration_date, issue_start_time, issue_end_time)
		VALUES ($1, $2, $3, $4, $4, $5, $6, $7)`,
		campaignID, code, name, quantity,
		now.AddDate(0, 0, 30), now.Add(-2*time.Hour), now.Add(-time.Hour),
	)
	require.NoError(t, err)

	return campaignID, code
}

// ResetDB truncates all mutable tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE TABLE grants, campaigns CASCADE")
	return err
}
