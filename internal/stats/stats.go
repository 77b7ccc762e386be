package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys for command traffic counters, read back by the admin
// health endpoint.
const (
	KeyCmdTotal  = "broker:stats:cmd_total"
	KeyCmdErrors = "broker:stats:cmd_errors"
	KeyCmdTime   = "broker:stats:cmd_time_total"
	KeyCmdCount  = "broker:stats:cmd_count"
	KeyStartTime = "broker:stats:start_time"
	KeyLastCmd   = "broker:stats:last_command"
)

// Recorder tracks per-command traffic in Redis, best-effort: a nil
// Recorder or an unreachable Redis never affects command handling.
type Recorder struct {
	Rdb *redis.Client
}

func New(rdb *redis.Client) *Recorder {
	if rdb == nil {
		return nil
	}
	return &Recorder{Rdb: rdb}
}

// Record notes one handled command with its wire status and duration.
func (r *Recorder) Record(command string, ok bool, elapsed time.Duration) {
	if r == nil || r.Rdb == nil {
		return
	}
	ctx := context.Background()
	lastCmd := map[string]interface{}{
		"time":    time.Now(),
		"command": command,
		"ok":      ok,
	}
	b, _ := json.Marshal(lastCmd)
	_, _ = r.Rdb.Set(ctx, KeyLastCmd, b, 0).Result()
	_, _ = r.Rdb.Incr(ctx, KeyCmdTotal).Result()
	_, _ = r.Rdb.Incr(ctx, KeyCmdCount).Result()
	_, _ = r.Rdb.IncrByFloat(ctx, KeyCmdTime, float64(elapsed.Milliseconds())).Result()
	if !ok {
		_, _ = r.Rdb.Incr(ctx, KeyCmdErrors).Result()
	}
}
