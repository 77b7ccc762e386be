package main

import (
	"context"
	"fmt"
	"net"

	"brokerd/internal/admin"
	"brokerd/internal/config"
	"brokerd/internal/database"
	"brokerd/internal/engine"
	"brokerd/internal/ledger"
	"brokerd/internal/server"
	"brokerd/internal/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		panic("database open: " + err.Error())
	}
	if err := database.AutoMigrate(db); err != nil {
		panic("database migrate: " + err.Error())
	}
	if err := database.SeedDefaultUser(db, cfg.DefaultUserID, cfg.SeedUserName, cfg.SeedUserBalance); err != nil {
		panic("seed default user: " + err.Error())
	}

	// Verify connections before printing (startup banner)
	sqlDB, err := db.DB()
	if err != nil {
		panic("get DB: " + err.Error())
	}
	if err := sqlDB.Ping(); err != nil {
		panic("database connection failed: " + err.Error())
	}
	fmt.Println("Database connected")

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			panic("redis url: " + err.Error())
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			panic("redis connection failed: " + err.Error())
		}
		fmt.Println("Redis connected")
	}

	var adminApp *fiber.App
	if cfg.AdminAddr != "" {
		adminApp = admin.NewApp(&admin.Handlers{Rdb: rdb, DB: db})
		go func() {
			if err := adminApp.Listen(cfg.AdminAddr); err != nil {
				log.Error().Err(err).Msg("admin listener stopped")
			}
		}()
		fmt.Printf("Admin endpoint: http://localhost%s/health/json\n", cfg.AdminAddr)
	}

	eng := engine.New(ledger.NewGormStore(db), cfg.DefaultUserID)
	srv := server.New(eng, stats.New(rdb))

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		panic("listen: " + err.Error())
	}
	fmt.Printf("Server listening on %s\n", cfg.ListenAddr)
	fmt.Println("---")

	if err := srv.Serve(context.Background(), ln); err != nil {
		log.Error().Err(err).Msg("serve failed")
	}
	_ = ln.Close()
	if adminApp != nil {
		_ = adminApp.Shutdown()
	}
	fmt.Println("Server shutdown complete")
}
