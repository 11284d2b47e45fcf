package ledger

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/issuance-vault/ledger/internal/adapter"
	"github.com/issuance-vault/ledger/internal/clearance"
	"github.com/issuance-vault/ledger/internal/config"
	"github.com/issuance-vault/ledger/internal/custody"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/fraction"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/metrics"
	"github.com/issuance-vault/ledger/internal/settlement"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// Ledger wires the clearance, settlement, custody and fraction engines over one store
type Ledger struct {
	Store      store.Store
	Clearance  clearance.Evaluator
	Settlement settlement.Engine
	Custody    custody.Ledger
	Fractions  fraction.Engine

	editionCap          int
	defaultVerification string
}

// New creates a ledger from its store and limits
func New(st store.Store, cfg config.LedgerConfig, clock adapter.Clock, m *metrics.LedgerMetrics) *Ledger {
	engine := settlement.NewEngine(st, clock, m)

	verification := cfg.DefaultVerification
	if verification == "" {
		verification = domain.DEFAULT_VERIFICATION
	}

	return &Ledger{
		Store:               st,
		Clearance:           clearance.NewEvaluator(st, engine, cfg.FlagThreshold, m),
		Settlement:          engine,
		Custody:             custody.NewLedger(st, engine, clock, m),
		Fractions:           fraction.NewEngine(st, cfg.FractionCap, m),
		editionCap:          cfg.EditionCap,
		defaultVerification: verification,
	}
}

// Issue registers a recording as a new asset. The settlement rule defaults to IMMEDIATE.
func (l *Ledger) Issue(ctx context.Context, input store.CreateAssetInput) (*schema.Asset, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.ArtistDisplay = strings.TrimSpace(input.ArtistDisplay)
	input.OriginalHolderLabel = strings.TrimSpace(input.OriginalHolderLabel)
	if input.SettlementRule == "" {
		input.SettlementRule = domain.SettlementRuleImmediate
	}
	if strings.TrimSpace(input.Verification) == "" {
		input.Verification = l.defaultVerification
	}

	if err := input.Validate(l.editionCap); err != nil {
		return nil, err
	}

	asset, err := l.Store.CreateAsset(ctx, input)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Asset issued",
		zap.Uint64("asset_id", asset.ID),
		zap.String("settlement_rule", string(asset.SettlementRule)),
		zap.Int("edition_total", asset.EditionTotal),
	)

	return asset, nil
}
