package main

import (
	"log"
	"net/http"
	"time"

	"haaangry-client/config"
	"haaangry-client/internal/devserver"
)

func main() {
	cfg := config.Load()

	var store devserver.OrderStore
	if cfg.PostgresDSN != "" {
		pg := devserver.NewPostgresStore(config.MustInitPostgres(cfg.PostgresDSN))
		if err := pg.EnsureSchema(); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		store = pg
	} else {
		store = devserver.NewMemoryStore()
	}

	var cache devserver.RecommendCache
	if cfg.RedisAddr != "" {
		cache = devserver.NewRedisCache(config.MustInitRedis(cfg.RedisAddr), 15*time.Minute)
	}

	var publisher devserver.OrderPublisher
	if cfg.KafkaBroker != "" {
		publisher = devserver.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaBroker, "orders"))
	}

	handler := devserver.NewHandler(store, cache, publisher)

	log.Printf("Haaangry dev server starting on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, devserver.NewRouter(handler)))
}
