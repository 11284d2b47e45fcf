package clearance

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/metrics"
	"github.com/issuance-vault/ledger/internal/settlement"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// EvaluateInput is the fingerprinting result for one asset
type EvaluateInput struct {
	AssetID         uint64
	FingerprintHash string
	DurationSeconds float64
	RiskScore       float64
}

// Validate checks the fingerprinting result before anything is written
func (i EvaluateInput) Validate() error {
	hash := strings.TrimSpace(i.FingerprintHash)
	if hash == "" {
		return fmt.Errorf("%w: fingerprint hash is required", domain.ErrValidation)
	}
	if len(hash) > domain.MAX_FINGERPRINT_LENGTH {
		return fmt.Errorf("%w: fingerprint hash exceeds %d characters", domain.ErrValidation, domain.MAX_FINGERPRINT_LENGTH)
	}
	if math.IsNaN(i.DurationSeconds) || math.IsInf(i.DurationSeconds, 0) || i.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration must be a non-negative number", domain.ErrValidation)
	}
	if math.IsNaN(i.RiskScore) || i.RiskScore < 0 || i.RiskScore > 1 {
		return fmt.Errorf("%w: risk score must be within [0, 1], got %v", domain.ErrValidation, i.RiskScore)
	}
	return nil
}

// Result is the clearance verdict and its consequences
type Result struct {
	Status domain.ClearanceStatus
	Asset  *schema.Asset
	// Settled is true when clearance settled an IMMEDIATE asset
	Settled bool
}

//go:generate mockgen -source=evaluator.go -destination=../mocks/clearance.go -package=mocks -mock_names=Evaluator=MockClearanceEvaluator

// Evaluator decides and persists the clearance verdict of an asset
type Evaluator interface {
	// Evaluate consumes the fingerprinting result of an asset. It may succeed at most once per asset.
	Evaluate(ctx context.Context, input EvaluateInput) (*Result, error)
}

type evaluator struct {
	store         store.Store
	settlement    settlement.Engine
	flagThreshold float64
	metrics       *metrics.LedgerMetrics
}

// NewEvaluator creates a new clearance evaluator
func NewEvaluator(st store.Store, engine settlement.Engine, flagThreshold float64, m *metrics.LedgerMetrics) Evaluator {
	return &evaluator{
		store:         st,
		settlement:    engine,
		flagThreshold: flagThreshold,
		metrics:       m,
	}
}

// Evaluate consumes the fingerprinting result of an asset.
// The clearance write and the IMMEDIATE settlement check share the asset lock.
func (e *evaluator) Evaluate(ctx context.Context, input EvaluateInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	status := domain.ClearanceVerdict(input.RiskScore, e.flagThreshold)

	var result *Result
	err := e.store.WithAssetLock(ctx, input.AssetID, func(tx store.Store, asset *schema.Asset) error {
		if asset.ClearanceStatus != domain.ClearanceStatusUnchecked {
			return fmt.Errorf("%w: clearance already %s for asset %d", domain.ErrInvalidTransition, asset.ClearanceStatus, asset.ID)
		}

		updated, err := tx.UpdateAssetClearance(ctx, store.UpdateAssetClearanceInput{
			AssetID:         asset.ID,
			ClearanceStatus: status,
			RiskScore:       input.RiskScore,
			FingerprintHash: strings.TrimSpace(input.FingerprintHash),
			DurationSeconds: input.DurationSeconds,
		})
		if err != nil {
			return err
		}

		settled, err := e.settlement.OnClearance(ctx, tx, updated)
		if err != nil {
			return err
		}

		result = &Result{
			Status:  status,
			Asset:   settled.Asset,
			Settled: settled.Settled,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveClearanceVerdict(string(status))
	logger.InfoCtx(ctx, "Clearance evaluated",
		zap.Uint64("asset_id", input.AssetID),
		zap.String("clearance_status", string(status)),
		zap.Float64("risk_score", input.RiskScore),
		zap.Bool("settled", result.Settled),
	)

	return result, nil
}
