//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStrategy(t *testing.T, name string, ledger *memLedger, reserver commands.Reserver) commands.AdmissionStrategy {
	t.Helper()
	strategy, err := commands.NewAdmissionStrategy(
		config.AdmissionConfig{Strategy: name},
		&memCampaignRepo{ledger: ledger},
		&memGrantRepo{ledger: ledger},
		reserver,
		newMemLocker(),
		memTxBeginner{},
	)
	require.NoError(t, err)
	return strategy
}

func TestNewAdmissionStrategy_Unknown(t *testing.T) {
	_, err := commands.NewAdmissionStrategy(
		config.AdmissionConfig{Strategy: "bogus"},
		nil, nil, nil, nil, memTxBeginner{},
	)
	assert.Error(t, err)
}

func TestAdmissionStrategies_CheckOrder(t *testing.T) {
	names := []string{
		commands.StrategyExclusiveRegion,
		commands.StrategyRowLock,
		commands.StrategyRedisScript,
		commands.StrategyRedisLock,
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			ledger := newMemLedger()
			now := time.Now().UTC()
			row := ledger.addCampaign("CPN1-AAAA-0001", 2, now.Add(-time.Hour), now.Add(time.Hour))
			strategy := buildStrategy(t, name, ledger, newMemReserver())

			require.NoError(t, strategy.Admit(context.Background(), row, "alice", now))

			// duplicate wins over quota: alice is rejected as duplicate even
			// though a slot is still free
			err := strategy.Admit(context.Background(), row, "alice", now)
			assert.ErrorIs(t, err, errs.ErrAlreadyIssued)
			assert.Equal(t, int32(1), ledger.remaining(row.ID))

			require.NoError(t, strategy.Admit(context.Background(), row, "bob", now))

			err = strategy.Admit(context.Background(), row, "carol", now)
			assert.ErrorIs(t, err, errs.ErrSoldOut)

			// a sold-out rejection must not leave a phantom grant behind
			assert.Equal(t, 2, ledger.grantCount(row.ID))
			assert.Equal(t, int32(0), ledger.remaining(row.ID))
		})
	}
}

func TestAdmissionStrategies_ConcurrentNeverOverissues(t *testing.T) {
	const (
		quota      = 50
		requesters = 300
	)

	names := []string{
		commands.StrategyExclusiveRegion,
		commands.StrategyRowLock,
		commands.StrategyRedisScript,
		commands.StrategyRedisLock,
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			ledger := newMemLedger()
			now := time.Now().UTC()
			row := ledger.addCampaign("CPN2-BBBB-0002", quota, now.Add(-time.Hour), now.Add(time.Hour))
			strategy := buildStrategy(t, name, ledger, newMemReserver())

			var wg sync.WaitGroup
			results := make([]error, requesters)
			for i := range requesters {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = strategy.Admit(context.Background(), row, fmt.Sprintf("user-%d", i), now)
				}(i)
			}
			wg.Wait()

			issued := 0
			soldOut := 0
			for _, err := range results {
				switch {
				case err == nil:
					issued++
				case errors.Is(err, errs.ErrSoldOut):
					soldOut++
				default:
					t.Fatalf("unexpected admission error: %v", err)
				}
			}

			assert.Equal(t, quota, issued)
			assert.Equal(t, requesters-quota, soldOut)
			assert.Equal(t, quota, ledger.grantCount(row.ID))
			assert.Equal(t, int32(0), ledger.remaining(row.ID))
		})
	}
}

func TestRedisScriptStrategy_CompensatesOnPersistFailure(t *testing.T) {
	ledger := newMemLedger()
	now := time.Now().UTC()
	row := ledger.addCampaign("CPN3-CCCC-0003", 10, now.Add(-time.Hour), now.Add(time.Hour))
	reserver := newMemReserver()
	strategy := buildStrategy(t, commands.StrategyRedisScript, ledger, reserver)

	ledger.insertErr = errors.New("connection reset")
	err := strategy.Admit(context.Background(), row, "dave", now)
	require.Error(t, err)

	// the fast-path slot must be handed back so dave can retry
	assert.Equal(t, []string{row.Code + ":dave"}, reserver.released)
	assert.Equal(t, int32(0), reserver.counters[row.Code])

	ledger.insertErr = nil
	require.NoError(t, strategy.Admit(context.Background(), row, "dave", now))
}
