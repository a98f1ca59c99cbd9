package main

import (
	"context"
	"log"

	"nightpay/config"

	httpapi "nightpay/ledger-svc/internal/api/http"
	"nightpay/ledger-svc/internal/service"
	"nightpay/ledger-svc/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(config.PaymentsTopic, "ledger-svc-consumer")
	defer reader.Close()

	store := storage.NewStore(db, rdb)
	if err := store.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	consumer := service.NewConsumer(reader, store)
	go consumer.Start(context.Background())

	handler := httpapi.NewHandler(store)
	httpapi.StartServer(":"+config.GetEnv("PORT", "8082"), httpapi.NewRouter(handler))
}
