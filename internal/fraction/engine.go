package fraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/metrics"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// HolderShare is a holder and, for distributions, the fractions it receives
type HolderShare struct {
	Address string
	Label   *string
	Amount  int64
}

// FractionalizeInput is the request to split an asset into a fixed supply of fractions
type FractionalizeInput struct {
	AssetID       uint64
	FractionCount int64
	// InitialHolder receives every fraction when Distribution is empty
	InitialHolder HolderShare
	// Distribution optionally splits the supply across several holders at once
	Distribution []HolderShare
}

// TransferInput moves fractions between two holders of the same asset
type TransferInput struct {
	AssetID     uint64
	FromAddress string
	ToAddress   string
	Amount      int64
	// ToLabel labels the destination when it is a new holder
	ToLabel *string
}

// HoldingView is a holding with its share of the asset derived at read time
type HoldingView struct {
	schema.FractionHolding
	FractionCount int64
	Percentage    float64
}

//go:generate mockgen -source=engine.go -destination=../mocks/fraction.go -package=mocks -mock_names=Engine=MockFractionEngine

// Engine fractionalizes assets and keeps the fraction ledger conserved under transfer
type Engine interface {
	// Fractionalize converts a CLEARED asset into fraction_count fractions, once
	Fractionalize(ctx context.Context, input FractionalizeInput) ([]schema.FractionHolding, error)
	// TransferFraction moves amount fractions from one holder to another
	TransferFraction(ctx context.Context, input TransferInput) ([]schema.FractionHolding, error)
	// Holdings returns the holdings of an asset with derived percentages
	Holdings(ctx context.Context, assetID uint64) ([]HoldingView, error)
}

type engine struct {
	store       store.Store
	fractionCap int64
	metrics     *metrics.LedgerMetrics
}

// NewEngine creates a new fractionalization engine
func NewEngine(st store.Store, fractionCap int64, m *metrics.LedgerMetrics) Engine {
	return &engine{
		store:       st,
		fractionCap: fractionCap,
		metrics:     m,
	}
}

func normalizeHolderLabel(label *string) (*string, error) {
	if label == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*label)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MAX_LABEL_LENGTH {
		return nil, fmt.Errorf("%w: holder label exceeds %d characters", domain.ErrValidation, domain.MAX_LABEL_LENGTH)
	}
	return &trimmed, nil
}

func normalizeAddress(address string) (string, error) {
	normalized := domain.NormalizeHolderAddress(address)
	if normalized == "" {
		return "", fmt.Errorf("%w: holder address is required", domain.ErrValidation)
	}
	if len(normalized) > domain.MAX_LABEL_LENGTH {
		return "", fmt.Errorf("%w: holder address exceeds %d characters", domain.ErrValidation, domain.MAX_LABEL_LENGTH)
	}
	return normalized, nil
}

// buildInitialHoldings validates the request and returns the holdings the asset starts with
func (e *engine) buildInitialHoldings(input FractionalizeInput) ([]store.FractionHoldingInput, error) {
	if input.FractionCount < domain.MIN_FRACTION_COUNT || input.FractionCount > e.fractionCap {
		return nil, fmt.Errorf("%w: fraction count must be within [%d, %d], got %d",
			domain.ErrValidation, domain.MIN_FRACTION_COUNT, e.fractionCap, input.FractionCount)
	}

	shares := input.Distribution
	if len(shares) == 0 {
		shares = []HolderShare{{
			Address: input.InitialHolder.Address,
			Label:   input.InitialHolder.Label,
			Amount:  input.FractionCount,
		}}
	}

	holdings := make([]store.FractionHoldingInput, 0, len(shares))
	seen := make(map[string]struct{}, len(shares))
	var sum int64
	for _, share := range shares {
		address, err := normalizeAddress(share.Address)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[address]; ok {
			return nil, fmt.Errorf("%w: duplicate holder %s", domain.ErrValidation, address)
		}
		seen[address] = struct{}{}

		if share.Amount <= 0 {
			return nil, fmt.Errorf("%w: fraction amount must be positive for %s", domain.ErrValidation, address)
		}
		label, err := normalizeHolderLabel(share.Label)
		if err != nil {
			return nil, err
		}

		sum += share.Amount
		holdings = append(holdings, store.FractionHoldingInput{
			HolderAddress:  address,
			HolderLabel:    label,
			FractionAmount: share.Amount,
		})
	}

	if sum != input.FractionCount {
		return nil, fmt.Errorf("%w: distribution sums to %d, fraction count is %d", domain.ErrValidation, sum, input.FractionCount)
	}

	return holdings, nil
}

// Fractionalize converts a CLEARED asset into fraction_count fractions, once
func (e *engine) Fractionalize(ctx context.Context, input FractionalizeInput) ([]schema.FractionHolding, error) {
	holdings, err := e.buildInitialHoldings(input)
	if err != nil {
		return nil, err
	}

	result, err := e.store.FractionalizeAsset(ctx, store.FractionalizeAssetInput{
		AssetID:       input.AssetID,
		FractionCount: input.FractionCount,
		Holdings:      holdings,
	})
	if err != nil {
		e.escalate(ctx, input.AssetID, err)
		return nil, err
	}

	logger.InfoCtx(ctx, "Asset fractionalized",
		zap.Uint64("asset_id", input.AssetID),
		zap.Int64("fraction_count", input.FractionCount),
		zap.Int("holders", len(result)),
	)

	return result, nil
}

// ApplyTransfer returns the holding set after moving amount fractions from one holder to another.
// Holders reaching zero are dropped. The input is not modified.
func ApplyTransfer(holdings []schema.FractionHolding, from, to string, amount int64, toLabel *string) ([]store.FractionHoldingInput, error) {
	var balance int64
	for _, h := range holdings {
		if h.HolderAddress == from {
			balance = h.FractionAmount
			break
		}
	}
	if amount > balance {
		return nil, fmt.Errorf("%w: %s holds %d, transfer needs %d", domain.ErrInsufficientBalance, from, balance, amount)
	}

	next := make([]store.FractionHoldingInput, 0, len(holdings)+1)
	received := false
	for _, h := range holdings {
		amt := h.FractionAmount
		label := h.HolderLabel
		switch h.HolderAddress {
		case from:
			amt -= amount
		case to:
			amt += amount
			received = true
			if label == nil {
				label = toLabel
			}
		}
		if amt == 0 {
			continue
		}
		next = append(next, store.FractionHoldingInput{
			HolderAddress:  h.HolderAddress,
			HolderLabel:    label,
			FractionAmount: amt,
		})
	}
	if !received {
		next = append(next, store.FractionHoldingInput{
			HolderAddress:  to,
			HolderLabel:    toLabel,
			FractionAmount: amount,
		})
	}

	return next, nil
}

func sumHoldings(holdings []schema.FractionHolding) int64 {
	var sum int64
	for _, h := range holdings {
		sum += h.FractionAmount
	}
	return sum
}

func sumInputs(holdings []store.FractionHoldingInput) int64 {
	var sum int64
	for _, h := range holdings {
		sum += h.FractionAmount
	}
	return sum
}

// TransferFraction moves amount fractions from one holder to another.
// The read, the conservation checks and the write share the asset lock.
func (e *engine) TransferFraction(ctx context.Context, input TransferInput) ([]schema.FractionHolding, error) {
	from, err := normalizeAddress(input.FromAddress)
	if err != nil {
		return nil, err
	}
	to, err := normalizeAddress(input.ToAddress)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: transfer from %s to itself", domain.ErrValidation, from)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: transfer amount must be positive", domain.ErrValidation)
	}
	toLabel, err := normalizeHolderLabel(input.ToLabel)
	if err != nil {
		return nil, err
	}

	var result []schema.FractionHolding
	err = e.store.WithAssetLock(ctx, input.AssetID, func(tx store.Store, asset *schema.Asset) error {
		if !asset.IsFractionalized || asset.FractionCount == nil {
			return fmt.Errorf("%w: asset %d is not fractionalized", domain.ErrInvalidTransition, asset.ID)
		}

		current, err := tx.GetFractionHoldings(ctx, asset.ID)
		if err != nil {
			return err
		}

		before := sumHoldings(current)
		if before != *asset.FractionCount {
			return fmt.Errorf("%w: holdings of asset %d sum to %d before transfer, fraction count is %d",
				domain.ErrInvariantViolation, asset.ID, before, *asset.FractionCount)
		}

		next, err := ApplyTransfer(current, from, to, input.Amount, toLabel)
		if err != nil {
			return err
		}
		if after := sumInputs(next); after != before {
			return fmt.Errorf("%w: transfer on asset %d changes the supply from %d to %d",
				domain.ErrInvariantViolation, asset.ID, before, after)
		}

		result, err = tx.UpsertFractionHoldings(ctx, asset.ID, next)
		return err
	})
	if err != nil {
		e.escalate(ctx, input.AssetID, err)
		return nil, err
	}

	e.metrics.ObserveFractionTransfer()
	logger.InfoCtx(ctx, "Fractions transferred",
		zap.Uint64("asset_id", input.AssetID),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int64("amount", input.Amount),
	)

	return result, nil
}

// Holdings returns the holdings of an asset with derived percentages.
// An asset that is not fractionalized has no holdings.
func (e *engine) Holdings(ctx context.Context, assetID uint64) ([]HoldingView, error) {
	asset, err := e.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if !asset.IsFractionalized || asset.FractionCount == nil {
		return []HoldingView{}, nil
	}

	holdings, err := e.store.GetFractionHoldings(ctx, assetID)
	if err != nil {
		return nil, err
	}

	count := *asset.FractionCount
	views := make([]HoldingView, 0, len(holdings))
	for _, h := range holdings {
		views = append(views, HoldingView{
			FractionHolding: h,
			FractionCount:   count,
			Percentage:      h.Percentage(count),
		})
	}

	return views, nil
}

// escalate reports invariant violations as critical events
func (e *engine) escalate(ctx context.Context, assetID uint64, err error) {
	if !errors.Is(err, domain.ErrInvariantViolation) {
		return
	}
	e.metrics.ObserveInvariantViolation(metrics.InvariantFractionSum)
	logger.Critical(ctx, err, zap.Uint64("asset_id", assetID))
}
