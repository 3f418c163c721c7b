package tafiti_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob" // in-memory bucket driver for tests

	"github.com/pitabwire/tafiti"
	"github.com/pitabwire/tafiti/locale"
)

// newMemoryStore builds a bundle store over an in-memory bucket seeded with
// the given files, keyed by bundle-relative path.
func newMemoryStore(ctx context.Context, t *testing.T, files map[string]string) *tafiti.Store {
	t.Helper()

	bucket, err := blob.OpenBucket(ctx, "mem://")
	require.NoError(t, err)

	for key, content := range files {
		require.NoError(t, bucket.WriteAll(ctx, key, []byte(content), nil))
	}

	store := tafiti.NewStore(bucket)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func mustKey(t *testing.T, s string) locale.Key {
	t.Helper()

	key, err := locale.Parse(s)
	require.NoError(t, err)

	return key
}
