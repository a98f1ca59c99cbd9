package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"nightpay/ledger-svc/internal/domain"
)

type Consumer struct {
	Reader *kafka.Reader
	Store  StoreInterface
}

func NewConsumer(reader *kafka.Reader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Ledger Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.PaymentEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if event.Type == domain.EventPaymentSettled {
			c.ProcessPayment(event)
		}
	}
}

// ProcessPayment folds a settled payment into the revenue aggregates.
// Declined and pending attempts carry no revenue and are skipped.
func (c *Consumer) ProcessPayment(event domain.PaymentEvent) {
	if event.Type != domain.EventPaymentSettled {
		return
	}
	if event.Status != domain.StatusSucceeded {
		log.Printf("Skipping non-revenue payment event: order=%s status=%s", event.OrderID, event.Status)
		return
	}

	log.Printf("Processing payment: OrderID=%s, VenueID=%s, Amount=%d %s",
		event.OrderID, event.VenueID, event.AmountMinorUnits, event.Currency)

	if err := c.Store.UpdateVenueRevenue(event); err != nil {
		log.Printf("Error updating venue revenue: %v", err)
		return
	}

	if err := c.Store.UpdateLeaderboards(event); err != nil {
		log.Printf("Error updating leaderboards: %v", err)
		return
	}

	log.Printf("Successfully processed payment for order %s", event.OrderID)
}
