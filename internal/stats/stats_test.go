package stats

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRecorder(t *testing.T) (*Recorder, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(rdb), rdb
}

func TestRecord_IncrementsCounters(t *testing.T) {
	rec, rdb := setupRecorder(t)
	ctx := context.Background()

	rec.Record("BUY AAPL 5 10 1", true, 3*time.Millisecond)
	rec.Record("SELL AAPL 99 10 1", false, 2*time.Millisecond)

	total, err := rdb.Get(ctx, KeyCmdTotal).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	errs, err := rdb.Get(ctx, KeyCmdErrors).Int()
	require.NoError(t, err)
	assert.Equal(t, 1, errs)

	count, err := rdb.Get(ctx, KeyCmdCount).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	last, err := rdb.Get(ctx, KeyLastCmd).Result()
	require.NoError(t, err)
	assert.Contains(t, last, "SELL AAPL 99 10 1")
}

func TestRecord_NilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.Record("BALANCE", true, time.Millisecond)
	})
	assert.Nil(t, New(nil))
}
