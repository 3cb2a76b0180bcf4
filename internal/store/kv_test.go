package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKV runs the KV contract against one implementation.
func testKV(t *testing.T, kv KV) {
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "a", "1"))
	require.NoError(t, kv.Set(ctx, "b", `{"json": true}`))
	got, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	require.NoError(t, kv.Set(ctx, "a", "2"), "overwrite")
	got, err = kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	require.NoError(t, kv.Delete(ctx, "a", "b", "never-set"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = kv.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Delete(ctx))
}

func TestSQLiteKV(t *testing.T) {
	testKV(t, openTestStore(t).KV())
}

func TestMemoryKV(t *testing.T) {
	testKV(t, NewMemoryKV())
}

func TestRedisKV(t *testing.T) {
	url := os.Getenv("QUIZO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("QUIZO_TEST_REDIS_URL not set")
	}
	kv, err := OpenRedis(context.Background(), url, fmt.Sprintf("quizo-test:%s:", uuid.NewString()))
	require.NoError(t, err)
	defer kv.Close()
	testKV(t, kv)
}

func TestOpenRedis_BadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not a url", DefaultRedisPrefix)
	assert.Error(t, err)
}
