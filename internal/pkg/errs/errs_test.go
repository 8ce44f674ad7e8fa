//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"coupon-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	t.Run("sees sentinels attached with Mark", func(t *testing.T) {
		cause := errors.New("redsync: failed to acquire lock")
		marked := errs.Mark(cause, errs.ErrLockFailed)

		assert.True(t, errs.Is(marked, errs.ErrLockFailed))
		assert.True(t, errs.Is(marked, cause))
	})

	t.Run("sees marks through further wrapping", func(t *testing.T) {
		marked := errs.Mark(errors.New("bad input"), errs.ErrCampaignValidation)

		assert.True(t, errs.Is(errs.Wrap(marked, "create campaign"), errs.ErrCampaignValidation))
		assert.True(t, errs.Is(fmt.Errorf("outer: %w", marked), errs.ErrCampaignValidation))
	})

	t.Run("matches plain sentinel chains like the standard library", func(t *testing.T) {
		assert.True(t, errs.Is(errs.ErrSoldOut, errs.ErrSoldOut))
		assert.True(t, errs.Is(fmt.Errorf("wrapped: %w", errs.ErrSoldOut), errs.ErrSoldOut))
		assert.False(t, errs.Is(errors.New("unrelated"), errs.ErrSoldOut))
	})

	t.Run("nil never matches", func(t *testing.T) {
		assert.False(t, errs.Is(nil, errs.ErrSoldOut))
	})
}
