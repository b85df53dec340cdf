package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/config"
	"aeroclub/logbook/internal/db"
	"aeroclub/logbook/internal/logging"
	"aeroclub/logbook/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Logbook starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	dsn := cfg.PostgresDSN()

	// Connect to DB with sqlx
	if err := db.InitPostgres(dsn); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	if _, err := db.InitPostgresORM(dsn); err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	// Reference-data cache: in-process by default, Redis when configured.
	var cache common.CacheInterface
	if cfg.UseRedisCache {
		redisCache, err := common.NewRedisCacheService(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		if err != nil {
			logging.Error("Failed to connect to Redis", "error", err.Error())
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		cache = redisCache
		logging.Info("Using Redis cache backend")
	} else {
		cache = common.NewCacheService(300, 600)
		logging.Info("Using in-memory cache backend")
	}
	defer cache.Close()

	deps := routes.InitDependencies(cfg, cache)

	// Periodic settlement sweep
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go deps.SweepJob.Start(sweepCtx)
	logging.Info("Settlement sweep scheduled", "interval", cfg.SettlementInterval.String())

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Metrics endpoint lives outside the Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	addr := ":" + cfg.Port
	logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)

	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
