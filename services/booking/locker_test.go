package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProviderLocker(t *testing.T) {
	locker := NewLocalProviderLocker(20 * time.Millisecond)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "worker-1")
	require.NoError(t, err)

	t.Run("other providers are not blocked", func(t *testing.T) {
		unlockOther, err := locker.Lock(ctx, "worker-2")
		require.NoError(t, err)
		unlockOther()
	})

	t.Run("same provider waits then times out", func(t *testing.T) {
		_, err := locker.Lock(ctx, "worker-1")
		assert.ErrorIs(t, err, ErrLockTimeout)
	})

	t.Run("cancelled context gives up", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := locker.Lock(cctx, "worker-1")
		assert.ErrorIs(t, err, context.Canceled)
	})

	unlock()
	unlock()

	again, err := locker.Lock(ctx, "worker-1")
	require.NoError(t, err)
	again()
}
