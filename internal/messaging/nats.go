// internal/messaging/nats.go
package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/rewear/rewear-backend/internal/config"
)

// Publisher mirrors domain events onto NATS subjects so other systems
// (search indexers, analytics) can follow marketplace activity. A nil
// Publisher is valid and drops every event, so callers never branch on
// whether messaging is configured.
type Publisher struct {
	nc *nats.Conn
}

// Initialize connects to NATS when a URL is configured. Returns a nil
// publisher (messaging disabled) when cfg.NATS.URL is empty.
func Initialize(cfg *config.Config) (*Publisher, error) {
	if cfg.NATS.URL == "" {
		logrus.Info("NATS not configured, event publishing disabled")
		return nil, nil
	}

	nc, err := nats.Connect(cfg.NATS.URL,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logrus.Info("NATS connected successfully")
	return &Publisher{nc: nc}, nil
}

// Event structures

type ItemEvent struct {
	ItemID    string `json:"item_id"`
	OwnerID   string `json:"owner_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type SwapEvent struct {
	SwapID      string `json:"swap_id"`
	RequesterID string `json:"requester_id"`
	OwnerID     string `json:"owner_id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

type PointsEvent struct {
	UserID    string `json:"user_id"`
	Amount    int    `json:"amount"`
	Type      string `json:"type"`
	Balance   int    `json:"balance"`
	Timestamp string `json:"timestamp"`
}

// Publish marshals event and publishes it on subject. Delivery is
// best-effort; failures are logged, never surfaced to the caller.
func (p *Publisher) Publish(subject string, event interface{}) {
	if p == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).WithField("subject", subject).Error("Failed to marshal event")
		return
	}

	if err := p.nc.Publish(subject, data); err != nil {
		logrus.WithError(err).WithField("subject", subject).Error("Failed to publish event")
	}
}

// Subscribe registers handler for every message on subject.
func (p *Publisher) Subscribe(subject string, handler func([]byte)) (*nats.Subscription, error) {
	if p == nil {
		return nil, fmt.Errorf("messaging is not configured")
	}
	return p.nc.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.nc.Drain()
}
