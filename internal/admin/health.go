package admin

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"brokerd/internal/stats"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// CollectResult is the payload for /health/json.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalCommands  int         `json:"totalCommands"`
	SuccessCount   int         `json:"successCount"`
	FailedCount    int         `json:"failedCount"`
	SuccessRate    string      `json:"successRate"`
	AvgCommandTime interface{} `json:"avgCommandTime"`
	LastCommand    interface{} `json:"lastCommand"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// CollectHealth gathers health data from Redis counters and an
// optional DB ping.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger) CollectResult {
	result := CollectResult{
		Dependencies: make(map[string]DepStatus),
	}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	traffic := TrafficInfo{AvgCommandTime: 0, SuccessRate: "100"}
	startTimeMs := time.Now().UnixMilli()

	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"

			total, _ := rdb.Get(ctx, stats.KeyCmdTotal).Result()
			totalErr, _ := rdb.Get(ctx, stats.KeyCmdErrors).Result()
			totalTime, _ := rdb.Get(ctx, stats.KeyCmdTime).Result()
			cmdCount, _ := rdb.Get(ctx, stats.KeyCmdCount).Result()
			startTimeStr, _ := rdb.Get(ctx, stats.KeyStartTime).Result()
			lastCmdStr, _ := rdb.Get(ctx, stats.KeyLastCmd).Result()

			if startTimeStr != "" {
				if t, err := strconv.ParseInt(startTimeStr, 10, 64); err == nil {
					startTimeMs = t
				}
			} else {
				rdb.Set(ctx, stats.KeyStartTime, startTimeMs, 0)
			}

			traffic.TotalCommands, _ = strconv.Atoi(total)
			traffic.FailedCount, _ = strconv.Atoi(totalErr)
			traffic.SuccessCount = traffic.TotalCommands - traffic.FailedCount
			if traffic.TotalCommands > 0 {
				traffic.SuccessRate = strconv.FormatFloat(float64(traffic.SuccessCount)/float64(traffic.TotalCommands)*100, 'f', 1, 64)
			}
			timeSum, _ := strconv.ParseFloat(totalTime, 64)
			countSum, _ := strconv.Atoi(cmdCount)
			if countSum > 0 {
				traffic.AvgCommandTime = strconv.FormatFloat(timeSum/float64(countSum), 'f', 2, 64)
			}
			if lastCmdStr != "" {
				var lastCmd map[string]interface{}
				_ = json.Unmarshal([]byte(lastCmdStr), &lastCmd)
				traffic.LastCommand = lastCmd
			}
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptimeSec := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptimeSec < 0 {
		uptimeSec = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptimeSec,
		Memory:        MemoryInfo{Alloc: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}
	result.Traffic = traffic

	if dbStatus == "connected" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}
