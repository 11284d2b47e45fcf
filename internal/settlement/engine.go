package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/issuance-vault/ledger/internal/adapter"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/metrics"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// RecordResult is the outcome of recording a settlement event
type RecordResult struct {
	// Event is the appended settlement event, nil when settling on clearance
	Event *schema.SettlementEvent
	// Asset is the asset after the call
	Asset *schema.Asset
	// Settled is true only when this call moved the asset to SETTLED
	Settled bool
}

//go:generate mockgen -source=engine.go -destination=../mocks/settlement.go -package=mocks -mock_names=Engine=MockSettlementEngine

// Engine decides when an asset moves from ISSUED to SETTLED
type Engine interface {
	// RecordEvent appends a settlement event and applies the asset's settlement rule
	RecordEvent(ctx context.Context, assetID uint64, kind domain.SettlementKind, occurredAt time.Time) (*RecordResult, error)
	// RecordEventTx is RecordEvent for callers already holding the asset lock
	RecordEventTx(ctx context.Context, tx store.Store, asset *schema.Asset, kind domain.SettlementKind, occurredAt time.Time) (*RecordResult, error)
	// OnClearance settles a freshly cleared IMMEDIATE asset inside the clearance transaction
	OnClearance(ctx context.Context, tx store.Store, asset *schema.Asset) (*RecordResult, error)
	// Settle settles a CLEARED asset explicitly, appending a settlement event of kind
	Settle(ctx context.Context, assetID uint64, kind domain.SettlementKind, occurredAt time.Time) (*RecordResult, error)
}

type engine struct {
	store   store.Store
	clock   adapter.Clock
	metrics *metrics.LedgerMetrics
}

// priorTriggerEvents counts the events of kind recorded before this one.
// The store is only asked when the event could fire the asset's first-event rule.
func (e *engine) priorTriggerEvents(ctx context.Context, tx store.Store, asset *schema.Asset, kind domain.SettlementKind) (int64, error) {
	if asset.Settled() || !asset.Cleared() || TriggerKind(asset.SettlementRule) != kind {
		return 0, nil
	}
	return tx.CountSettlementEvents(ctx, asset.ID, kind)
}

// NewEngine creates a new settlement engine
func NewEngine(st store.Store, clock adapter.Clock, m *metrics.LedgerMetrics) Engine {
	return &engine{
		store:   st,
		clock:   clock,
		metrics: m,
	}
}

// RecordEvent appends a settlement event and applies the asset's settlement rule.
// The event is recorded whatever the rule, clearance or status.
func (e *engine) RecordEvent(ctx context.Context, assetID uint64, kind domain.SettlementKind, occurredAt time.Time) (*RecordResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown settlement kind %q", domain.ErrValidation, kind)
	}

	var result *RecordResult
	err := e.store.WithAssetLock(ctx, assetID, func(tx store.Store, asset *schema.Asset) error {
		var err error
		result, err = e.RecordEventTx(ctx, tx, asset, kind, occurredAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RecordEventTx is RecordEvent for callers already holding the asset lock
func (e *engine) RecordEventTx(ctx context.Context, tx store.Store, asset *schema.Asset, kind domain.SettlementKind, occurredAt time.Time) (*RecordResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown settlement kind %q", domain.ErrValidation, kind)
	}
	if occurredAt.IsZero() {
		occurredAt = e.clock.Now()
	}

	prior, err := e.priorTriggerEvents(ctx, tx, asset, kind)
	if err != nil {
		return nil, err
	}

	event, err := tx.AppendSettlementEvent(ctx, store.CreateSettlementEventInput{
		AssetID:    asset.ID,
		Kind:       kind,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return nil, err
	}

	result := &RecordResult{Event: event, Asset: asset}
	if !ShouldSettle(asset.SettlementRule, asset.ClearanceStatus, asset.Status, kind, prior) {
		logger.DebugCtx(ctx, "Settlement event recorded without transition",
			zap.Uint64("asset_id", asset.ID),
			zap.String("kind", string(kind)),
			zap.String("status", string(asset.Status)),
			zap.String("clearance_status", string(asset.ClearanceStatus)),
			zap.Int64("prior_events", prior),
		)
		return result, nil
	}

	result.Asset, result.Settled, err = e.settle(ctx, tx, asset, metrics.TriggerEvent)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// OnClearance settles a freshly cleared IMMEDIATE asset inside the clearance transaction
func (e *engine) OnClearance(ctx context.Context, tx store.Store, asset *schema.Asset) (*RecordResult, error) {
	result := &RecordResult{Asset: asset}
	if !SettlesOnClearance(asset.SettlementRule, asset.ClearanceStatus, asset.Status) {
		return result, nil
	}

	var err error
	result.Asset, result.Settled, err = e.settle(ctx, tx, asset, metrics.TriggerClearance)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Settle settles a CLEARED asset explicitly. It is the only way a CUSTOM asset settles.
func (e *engine) Settle(ctx context.Context, assetID uint64, kind domain.SettlementKind, occurredAt time.Time) (*RecordResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown settlement kind %q", domain.ErrValidation, kind)
	}
	if occurredAt.IsZero() {
		occurredAt = e.clock.Now()
	}

	var result *RecordResult
	err := e.store.WithAssetLock(ctx, assetID, func(tx store.Store, asset *schema.Asset) error {
		if asset.Settled() {
			return fmt.Errorf("%w: asset %d", domain.ErrAlreadySettled, asset.ID)
		}
		if !asset.Cleared() {
			return fmt.Errorf("%w: asset %d is %s", domain.ErrNotCleared, asset.ID, asset.ClearanceStatus)
		}

		event, err := tx.AppendSettlementEvent(ctx, store.CreateSettlementEventInput{
			AssetID:    asset.ID,
			Kind:       kind,
			OccurredAt: occurredAt,
		})
		if err != nil {
			return err
		}

		updated, err := tx.UpdateAssetStatus(ctx, asset.ID, domain.AssetStatusSettled)
		if err != nil {
			return err
		}

		e.metrics.ObserveSettlement(string(asset.SettlementRule), metrics.TriggerManual)
		logger.InfoCtx(ctx, "Asset settled manually",
			zap.Uint64("asset_id", asset.ID),
			zap.String("settlement_rule", string(asset.SettlementRule)),
		)

		result = &RecordResult{Event: event, Asset: updated, Settled: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// settle moves the locked asset to SETTLED. An asset that is already settled is not an error:
// the call reports that nothing newly settled.
func (e *engine) settle(ctx context.Context, tx store.Store, asset *schema.Asset, trigger string) (*schema.Asset, bool, error) {
	updated, err := tx.UpdateAssetStatus(ctx, asset.ID, domain.AssetStatusSettled)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySettled) {
			logger.DebugCtx(ctx, "Asset already settled", zap.Uint64("asset_id", asset.ID))
			return asset, false, nil
		}
		if errors.Is(err, domain.ErrInvariantViolation) {
			e.metrics.ObserveInvariantViolation(metrics.InvariantSettlementEvidence)
			logger.Critical(ctx, err, zap.Uint64("asset_id", asset.ID))
		}
		return nil, false, err
	}

	e.metrics.ObserveSettlement(string(asset.SettlementRule), trigger)
	logger.InfoCtx(ctx, "Asset settled",
		zap.Uint64("asset_id", asset.ID),
		zap.String("settlement_rule", string(asset.SettlementRule)),
		zap.String("trigger", trigger),
	)

	return updated, true, nil
}
