//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"coupon-service/internal/domain/grant"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGrant(t *testing.T, ledger *memLedger, campaignID uuid.UUID, requester string, now time.Time) {
	t.Helper()
	repo := &memGrantRepo{ledger: ledger}
	inserted, err := repo.Insert(context.Background(), &memTx{}, grant.Issue(requester, campaignID, now))
	require.NoError(t, err)
	require.True(t, inserted)
}

func TestUse_MarksGrantUsedAndPublishes(t *testing.T) {
	ledger := newMemLedger()
	now := time.Now().UTC()
	row := ledger.addCampaign("USE1-AAAA-0001", 5, now.Add(-time.Hour), now.Add(time.Hour))
	seedGrant(t, ledger, row.ID, "alice", now)
	publisher := &memPublisher{}

	uc := commands.NewUsageUseCase(
		&memGrantRepo{ledger: ledger},
		&memCampaignRepo{ledger: ledger},
		publisher,
		clock.NewMockClock(now),
	)

	require.NoError(t, uc.Use(context.Background(), "alice"))

	stored := ledger.grants[row.ID]["alice"]
	assert.Equal(t, string(grant.StatusUsed), stored.Status)
	require.NotNil(t, stored.UsedAt)
	assert.Equal(t, now, *stored.UsedAt)

	require.Len(t, publisher.usages, 1)
	assert.Equal(t, "alice", publisher.usages[0].Requester)
	assert.Equal(t, row.Name, publisher.usages[0].CampaignName)

	// second use is rejected without another event
	err := uc.Use(context.Background(), "alice")
	assert.ErrorIs(t, err, errs.ErrAlreadyUsed)
	assert.Len(t, publisher.usages, 1)
}

func TestUse_NoGrant(t *testing.T) {
	uc := commands.NewUsageUseCase(
		&memGrantRepo{ledger: newMemLedger()},
		&memCampaignRepo{ledger: newMemLedger()},
		&memPublisher{},
		clock.NewRealClock(),
	)

	err := uc.Use(context.Background(), "nobody")
	assert.ErrorIs(t, err, errs.ErrGrantNotFound)
}

func TestUse_ExpiredCampaignFlipsStatusLazily(t *testing.T) {
	ledger := newMemLedger()
	now := time.Now().UTC()
	row := ledger.addCampaign("USE2-BBBB-0002", 5, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	row.ExpirationDate = now.AddDate(0, 0, -1)
	seedGrant(t, ledger, row.ID, "bob", now.Add(-48*time.Hour))
	publisher := &memPublisher{}

	uc := commands.NewUsageUseCase(
		&memGrantRepo{ledger: ledger},
		&memCampaignRepo{ledger: ledger},
		publisher,
		clock.NewMockClock(now),
	)

	err := uc.Use(context.Background(), "bob")
	assert.ErrorIs(t, err, errs.ErrExpired)

	// the expiry transition is persisted on the use attempt itself
	assert.Equal(t, string(grant.StatusExpired), ledger.grants[row.ID]["bob"].Status)
	assert.Empty(t, publisher.usages)

	// subsequent attempts keep reporting expired
	err = uc.Use(context.Background(), "bob")
	assert.ErrorIs(t, err, errs.ErrExpired)
}

func TestUse_ConcurrentUseSucceedsExactlyOnce(t *testing.T) {
	ledger := newMemLedger()
	now := time.Now().UTC()
	row := ledger.addCampaign("USE4-DDDD-0004", 5, now.Add(-time.Hour), now.Add(time.Hour))
	seedGrant(t, ledger, row.ID, "dave", now)
	publisher := &memPublisher{}

	uc := commands.NewUsageUseCase(
		&memGrantRepo{ledger: ledger},
		&memCampaignRepo{ledger: ledger},
		publisher,
		clock.NewMockClock(now),
	)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = uc.Use(context.Background(), "dave")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrAlreadyUsed)
	}
	assert.Equal(t, 1, succeeded, "the guarded transition admits exactly one use")
	assert.Len(t, publisher.usages, 1)
}

func TestUse_PublishFailureDoesNotFailUse(t *testing.T) {
	ledger := newMemLedger()
	now := time.Now().UTC()
	row := ledger.addCampaign("USE3-CCCC-0003", 5, now.Add(-time.Hour), now.Add(time.Hour))
	seedGrant(t, ledger, row.ID, "carol", now)

	uc := commands.NewUsageUseCase(
		&memGrantRepo{ledger: ledger},
		&memCampaignRepo{ledger: ledger},
		&memPublisher{publishErr: context.DeadlineExceeded},
		clock.NewMockClock(now),
	)

	require.NoError(t, uc.Use(context.Background(), "carol"))
	assert.Equal(t, string(grant.StatusUsed), ledger.grants[row.ID]["carol"].Status)
}
