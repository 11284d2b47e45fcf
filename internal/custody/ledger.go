package custody

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/issuance-vault/ledger/internal/adapter"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/metrics"
	"github.com/issuance-vault/ledger/internal/settlement"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// TransferInput is a holder transition to append to an asset's custody chain
type TransferInput struct {
	AssetID   uint64
	FromLabel string
	ToLabel   string
	// OccurredAt defaults to now
	OccurredAt time.Time
}

// TransferResult is the appended custody event and the settlement it caused
type TransferResult struct {
	Event           *schema.CustodyEvent
	SettlementEvent *schema.SettlementEvent
	Asset           *schema.Asset
	// Settled is true when the transfer moved the asset to SETTLED
	Settled bool
}

//go:generate mockgen -source=ledger.go -destination=../mocks/custody.go -package=mocks -mock_names=Ledger=MockCustodyLedger

// Ledger is the append-only custody chain of every asset
type Ledger interface {
	// RecordTransfer appends a custody event continuing the chain and a TRANSFER settlement event, atomically
	RecordTransfer(ctx context.Context, input TransferInput) (*TransferResult, error)
	// Chain returns the custody chain ascending by occurrence
	Chain(ctx context.Context, assetID uint64) ([]schema.CustodyEvent, error)
	// CurrentHolder returns the holder at the end of the chain, the original holder when empty
	CurrentHolder(ctx context.Context, assetID uint64) (string, error)
	// Verify audits the stored chain and returns domain.ErrProvenanceBreak on a discontinuity
	Verify(ctx context.Context, assetID uint64) error
}

type ledger struct {
	store      store.Store
	settlement settlement.Engine
	clock      adapter.Clock
	metrics    *metrics.LedgerMetrics
}

// NewLedger creates a new custody ledger
func NewLedger(st store.Store, engine settlement.Engine, clock adapter.Clock, m *metrics.LedgerMetrics) Ledger {
	return &ledger{
		store:      st,
		settlement: engine,
		clock:      clock,
		metrics:    m,
	}
}

func normalizeLabel(field, label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("%w: %s holder label is required", domain.ErrValidation, field)
	}
	if len(label) > domain.MAX_LABEL_LENGTH {
		return "", fmt.Errorf("%w: %s holder label exceeds %d characters", domain.ErrValidation, field, domain.MAX_LABEL_LENGTH)
	}
	return label, nil
}

// RecordTransfer appends a custody event continuing the chain.
// The custody insert, the TRANSFER settlement event and the rule evaluation commit together or not at all.
func (l *ledger) RecordTransfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	from, err := normalizeLabel("from", input.FromLabel)
	if err != nil {
		return nil, err
	}
	to, err := normalizeLabel("to", input.ToLabel)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: transfer from %q to itself", domain.ErrValidation, from)
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = l.clock.Now()
	}

	var result *TransferResult
	err = l.store.WithAssetLock(ctx, input.AssetID, func(tx store.Store, asset *schema.Asset) error {
		latest, err := tx.GetLatestCustodyEvent(ctx, asset.ID)
		if err != nil {
			return err
		}

		expected := asset.OriginalHolderLabel
		if latest != nil {
			expected = latest.ToHolderLabel
			if occurredAt.Before(latest.OccurredAt) {
				return fmt.Errorf("%w: transfer at %s precedes the latest custody event at %s",
					domain.ErrValidation, occurredAt.Format(time.RFC3339), latest.OccurredAt.Format(time.RFC3339))
			}
		}
		if from != expected {
			return fmt.Errorf("%w: asset %d is held by %q, transfer claims %q", domain.ErrProvenanceBreak, asset.ID, expected, from)
		}

		event, err := tx.AppendCustodyEvent(ctx, store.CreateCustodyEventInput{
			AssetID:    asset.ID,
			From:       from,
			To:         to,
			OccurredAt: occurredAt,
		})
		if err != nil {
			return err
		}

		recorded, err := l.settlement.RecordEventTx(ctx, tx, asset, domain.SettlementKindTransfer, occurredAt)
		if err != nil {
			return err
		}

		result = &TransferResult{
			Event:           event,
			SettlementEvent: recorded.Event,
			Asset:           recorded.Asset,
			Settled:         recorded.Settled,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrProvenanceBreak) {
			l.metrics.ObserveProvenanceBreak()
			logger.Critical(ctx, err,
				zap.Uint64("asset_id", input.AssetID),
				zap.String("from", from),
				zap.String("to", to),
			)
		}
		return nil, err
	}

	l.metrics.ObserveCustodyTransfer()
	logger.InfoCtx(ctx, "Custody transferred",
		zap.Uint64("asset_id", input.AssetID),
		zap.String("from", from),
		zap.String("to", to),
		zap.Bool("settled", result.Settled),
	)

	return result, nil
}

// Chain returns the custody chain ascending by occurrence
func (l *ledger) Chain(ctx context.Context, assetID uint64) ([]schema.CustodyEvent, error) {
	if _, err := l.store.GetAsset(ctx, assetID); err != nil {
		return nil, err
	}
	return l.store.GetCustodyEvents(ctx, assetID)
}

// CurrentHolder returns the holder at the end of the chain
func (l *ledger) CurrentHolder(ctx context.Context, assetID uint64) (string, error) {
	asset, err := l.store.GetAsset(ctx, assetID)
	if err != nil {
		return "", err
	}

	latest, err := l.store.GetLatestCustodyEvent(ctx, assetID)
	if err != nil {
		return "", err
	}
	if latest == nil {
		return asset.OriginalHolderLabel, nil
	}

	return latest.ToHolderLabel, nil
}

// Verify audits the stored chain. A break is never repaired, only reported.
func (l *ledger) Verify(ctx context.Context, assetID uint64) error {
	asset, err := l.store.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}

	events, err := l.store.GetCustodyEvents(ctx, assetID)
	if err != nil {
		return err
	}

	expected := asset.OriginalHolderLabel
	for i, event := range events {
		if event.FromHolderLabel != expected {
			err := fmt.Errorf("%w: custody event %d (position %d) of asset %d starts at %q, chain ends at %q",
				domain.ErrProvenanceBreak, event.ID, i, assetID, event.FromHolderLabel, expected)
			l.metrics.ObserveProvenanceBreak()
			logger.Critical(ctx, err, zap.Uint64("asset_id", assetID), zap.Uint64("custody_event_id", event.ID))
			return err
		}
		expected = event.ToHolderLabel
	}

	return nil
}
