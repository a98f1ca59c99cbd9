package main

import (
	"context"
	"log"
	"time"

	"nightpay/config"

	httpapi "nightpay/checkout-svc/internal/api/http"
	"nightpay/checkout-svc/internal/service"
	"nightpay/checkout-svc/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(config.PaymentsTopic)
	defer kafkaWriter.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	vault := storage.NewRedisVault(rdb, 15*time.Minute, 30*time.Second)

	catalog := service.NewCatalogService(repo)
	if err := catalog.Refresh(context.Background()); err != nil {
		log.Fatal("Failed to load pricing catalog:", err)
	}
	go refreshCatalog(catalog, time.Minute)

	tokenizer := service.NewTokenizer(vault)
	processor := service.NewPaymentProcessor(
		catalog,
		repo,
		vault,
		vault,
		service.NewSandboxGateway(150*time.Millisecond),
		storage.NewKafkaPublisher(kafkaWriter),
		service.DefaultPassGenerator{BaseURL: config.GetEnv("PASS_BASE_URL", "http://localhost")},
	)

	handler := httpapi.NewHandler(tokenizer, catalog, processor)
	httpapi.StartServer(":"+config.GetEnv("PORT", "8081"), httpapi.NewRouter(handler))
}

func refreshCatalog(catalog *service.CatalogService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if err := catalog.Refresh(context.Background()); err != nil {
			log.Printf("Warning: catalog refresh failed: %v", err)
		}
	}
}
