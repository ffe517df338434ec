package cachemanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadThroughCache_LoadsOnce(t *testing.T) {
	ctx := context.Background()
	calls := 0
	rt := NewReadThroughCache[patternKey, *compiled, string](
		NewInMemoryCacheManager[patternKey, *compiled]("patterns", DefaultExpiration, DefaultCleanupInterval),
		func(_ context.Context, expr string) (*compiled, error) {
			calls++
			return &compiled{Expr: expr}, nil
		},
		DefaultExpiration,
	)

	first, err := rt.Get(ctx, "x", "x")
	require.NoError(t, err)
	second, err := rt.Get(ctx, "x", "x")
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Same(t, first, second)
}

func TestReadThroughCache_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("bad pattern")
	calls := 0
	rt := NewReadThroughCache[patternKey, int, string](
		NewInMemoryCacheManager[patternKey, int]("patterns", DefaultExpiration, DefaultCleanupInterval),
		func(_ context.Context, _ string) (int, error) {
			calls++
			return 0, boom
		},
		DefaultExpiration,
	)

	_, err := rt.Get(ctx, "(", "(")
	require.ErrorIs(t, err, boom)
	_, err = rt.Get(ctx, "(", "(")
	require.ErrorIs(t, err, boom)

	require.Equal(t, 2, calls)
	require.Equal(t, 0, rt.Cache().Stats().Items)
}
