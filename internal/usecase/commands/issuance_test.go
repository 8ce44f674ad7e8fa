//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coupon-service/internal/infra/repository"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	calls int
	err   error
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) Admit(_ context.Context, _ *repository.CampaignRow, _ string, _ time.Time) error {
	s.calls++
	return s.err
}

func TestIssue_RejectsBeforeStrategyRuns(t *testing.T) {
	ledger := newMemLedger()
	now := time.Now().UTC()
	ledger.addCampaign("OPEN-AAAA-0001", 5, now.Add(-time.Hour), now.Add(time.Hour))
	ledger.addCampaign("LATE-BBBB-0002", 5, now.Add(-2*time.Hour), now.Add(-time.Hour))

	strategy := &stubStrategy{}
	uc := commands.NewIssuanceUseCase(
		&memCampaignRepo{ledger: ledger},
		strategy,
		newMemReserver(),
		&memPublisher{},
		clock.NewMockClock(now),
	)

	err := uc.Issue(context.Background(), "NOPE-XXXX-0000", "alice")
	assert.ErrorIs(t, err, errs.ErrInvalidCode)

	err = uc.Issue(context.Background(), "LATE-BBBB-0002", "alice")
	assert.ErrorIs(t, err, errs.ErrNotIssuableTime)

	// neither rejection may reach the admission strategy
	assert.Equal(t, 0, strategy.calls)

	require.NoError(t, uc.Issue(context.Background(), "OPEN-AAAA-0001", "alice"))
	assert.Equal(t, 1, strategy.calls)
}

func TestSubmit_PublishesAcceptedRequest(t *testing.T) {
	ledger := newMemLedger()
	now := time.Now().UTC()
	row := ledger.addCampaign("SUBM-AAAA-0001", 2, now.Add(-time.Hour), now.Add(time.Hour))
	reserver := newMemReserver()
	publisher := &memPublisher{}

	uc := commands.NewIssuanceUseCase(
		&memCampaignRepo{ledger: ledger},
		&stubStrategy{},
		reserver,
		publisher,
		clock.NewMockClock(now),
	)

	require.NoError(t, uc.Submit(context.Background(), row.Code, "alice"))
	require.Len(t, publisher.issuances, 1)
	assert.Equal(t, "alice", publisher.issuances[0].Requester)
	assert.Equal(t, row.Code, publisher.issuances[0].CampaignCode)
	assert.Equal(t, row.ID, publisher.issuances[0].CampaignID)

	err := uc.Submit(context.Background(), row.Code, "alice")
	assert.ErrorIs(t, err, errs.ErrAlreadyIssued)

	require.NoError(t, uc.Submit(context.Background(), row.Code, "bob"))
	err = uc.Submit(context.Background(), row.Code, "carol")
	assert.ErrorIs(t, err, errs.ErrSoldOut)

	// nothing touched the ledger on the submit path
	assert.Equal(t, 0, ledger.grantCount(row.ID))
}

func TestSubmit_ReleasesReservationOnPublishFailure(t *testing.T) {
	ledger := newMemLedger()
	now := time.Now().UTC()
	row := ledger.addCampaign("SUBM-BBBB-0002", 2, now.Add(-time.Hour), now.Add(time.Hour))
	reserver := newMemReserver()
	publisher := &memPublisher{publishErr: errors.New("broker unavailable")}

	uc := commands.NewIssuanceUseCase(
		&memCampaignRepo{ledger: ledger},
		&stubStrategy{},
		reserver,
		publisher,
		clock.NewMockClock(now),
	)

	err := uc.Submit(context.Background(), row.Code, "alice")
	require.Error(t, err)

	assert.Equal(t, []string{row.Code + ":alice"}, reserver.released)
	assert.Equal(t, int32(0), reserver.counters[row.Code])

	publisher.publishErr = nil
	require.NoError(t, uc.Submit(context.Background(), row.Code, "alice"))
}
