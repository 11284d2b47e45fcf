package messaging

import (
	"context"

	"github.com/issuance-vault/ledger/internal/domain"
)

// Publisher defines the interface for publishing ledger events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishLedgerEvent publishes a ledger event; msgID lets the broker drop redeliveries of the same event
	PublishLedgerEvent(ctx context.Context, event *domain.LedgerEvent, msgID string) error
	// Close closes the connection
	Close()
}
