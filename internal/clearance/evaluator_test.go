package clearance_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuance-vault/ledger/internal/clearance"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/metrics"
	"github.com/issuance-vault/ledger/internal/mocks"
	"github.com/issuance-vault/ledger/internal/settlement"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	os.Exit(m.Run())
}

type testEvaluatorMocks struct {
	ctrl       *gomock.Controller
	store      *mocks.MockStore
	tx         *mocks.MockStore
	settlement *mocks.MockSettlementEngine
	evaluator  clearance.Evaluator
}

func setupTestEvaluator(t *testing.T) *testEvaluatorMocks {
	ctrl := gomock.NewController(t)
	tm := &testEvaluatorMocks{
		ctrl:       ctrl,
		store:      mocks.NewMockStore(ctrl),
		tx:         mocks.NewMockStore(ctrl),
		settlement: mocks.NewMockSettlementEngine(ctrl),
	}
	tm.evaluator = clearance.NewEvaluator(tm.store, tm.settlement, domain.DEFAULT_FLAG_THRESHOLD, metrics.NewLedgerMetrics(prometheus.NewRegistry()))
	return tm
}

func (tm *testEvaluatorMocks) expectLock(asset *schema.Asset) {
	tm.store.EXPECT().
		WithAssetLock(gomock.Any(), asset.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, fn store.AssetLockFunc) error {
			return fn(tm.tx, asset)
		})
}

func uncheckedAsset(rule domain.SettlementRule) *schema.Asset {
	return &schema.Asset{
		ID:              3,
		Title:           "Harbour Lights",
		ArtistDisplay:   "Ona Reyes",
		SettlementRule:  rule,
		Status:          domain.AssetStatusIssued,
		ClearanceStatus: domain.ClearanceStatusUnchecked,
	}
}

func withClearance(asset *schema.Asset, status domain.ClearanceStatus, risk float64) *schema.Asset {
	c := *asset
	c.ClearanceStatus = status
	c.RiskScore = &risk
	return &c
}

func TestEvaluate_ClearedImmediateSettles(t *testing.T) {
	tm := setupTestEvaluator(t)
	defer tm.ctrl.Finish()

	asset := uncheckedAsset(domain.SettlementRuleImmediate)
	cleared := withClearance(asset, domain.ClearanceStatusCleared, 0.1)
	settledAsset := *cleared
	settledAsset.Status = domain.AssetStatusSettled

	tm.expectLock(asset)
	tm.tx.EXPECT().
		UpdateAssetClearance(gomock.Any(), store.UpdateAssetClearanceInput{
			AssetID:         asset.ID,
			ClearanceStatus: domain.ClearanceStatusCleared,
			RiskScore:       0.1,
			FingerprintHash: "fp-abc",
			DurationSeconds: 215.5,
		}).
		Return(cleared, nil)
	tm.settlement.EXPECT().
		OnClearance(gomock.Any(), tm.tx, cleared).
		Return(&settlement.RecordResult{Asset: &settledAsset, Settled: true}, nil)

	result, err := tm.evaluator.Evaluate(context.Background(), clearance.EvaluateInput{
		AssetID:         asset.ID,
		FingerprintHash: "  fp-abc ",
		DurationSeconds: 215.5,
		RiskScore:       0.1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ClearanceStatusCleared, result.Status)
	assert.True(t, result.Settled)
	assert.Equal(t, domain.AssetStatusSettled, result.Asset.Status)
}

func TestEvaluate_HighRiskFlagged(t *testing.T) {
	tm := setupTestEvaluator(t)
	defer tm.ctrl.Finish()

	asset := uncheckedAsset(domain.SettlementRuleOnFirstPlay)
	flagged := withClearance(asset, domain.ClearanceStatusFlagged, 0.8)

	tm.expectLock(asset)
	tm.tx.EXPECT().
		UpdateAssetClearance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.UpdateAssetClearanceInput) (*schema.Asset, error) {
			assert.Equal(t, domain.ClearanceStatusFlagged, input.ClearanceStatus)
			return flagged, nil
		})
	tm.settlement.EXPECT().
		OnClearance(gomock.Any(), tm.tx, flagged).
		Return(&settlement.RecordResult{Asset: flagged}, nil)

	result, err := tm.evaluator.Evaluate(context.Background(), clearance.EvaluateInput{
		AssetID:         asset.ID,
		FingerprintHash: "fp-xyz",
		DurationSeconds: 180,
		RiskScore:       0.8,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ClearanceStatusFlagged, result.Status)
	assert.False(t, result.Settled)
	assert.Equal(t, domain.AssetStatusIssued, result.Asset.Status)
}

func TestEvaluate_SecondCallRejected(t *testing.T) {
	tm := setupTestEvaluator(t)
	defer tm.ctrl.Finish()

	asset := withClearance(uncheckedAsset(domain.SettlementRuleOnFirstPlay), domain.ClearanceStatusFlagged, 0.8)
	tm.expectLock(asset)
	// No store write happens

	_, err := tm.evaluator.Evaluate(context.Background(), clearance.EvaluateInput{
		AssetID:         asset.ID,
		FingerprintHash: "fp-retry",
		DurationSeconds: 180,
		RiskScore:       0.2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEvaluate_SettlementFailureRollsBack(t *testing.T) {
	tm := setupTestEvaluator(t)
	defer tm.ctrl.Finish()

	asset := uncheckedAsset(domain.SettlementRuleImmediate)
	cleared := withClearance(asset, domain.ClearanceStatusCleared, 0.3)

	tm.expectLock(asset)
	tm.tx.EXPECT().UpdateAssetClearance(gomock.Any(), gomock.Any()).Return(cleared, nil)
	tm.settlement.EXPECT().OnClearance(gomock.Any(), tm.tx, cleared).Return(nil, errors.New("deadlock detected"))

	_, err := tm.evaluator.Evaluate(context.Background(), clearance.EvaluateInput{
		AssetID:         asset.ID,
		FingerprintHash: "fp",
		RiskScore:       0.3,
	})
	assert.EqualError(t, err, "deadlock detected")
}

func TestEvaluate_AssetNotFound(t *testing.T) {
	tm := setupTestEvaluator(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().WithAssetLock(gomock.Any(), uint64(404), gomock.Any()).
		Return(fmt.Errorf("%w: %d", domain.ErrAssetNotFound, 404))

	_, err := tm.evaluator.Evaluate(context.Background(), clearance.EvaluateInput{
		AssetID:         404,
		FingerprintHash: "fp",
		RiskScore:       0.1,
	})
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestEvaluateInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   clearance.EvaluateInput
		wantErr bool
	}{
		{"valid", clearance.EvaluateInput{FingerprintHash: "fp", DurationSeconds: 10, RiskScore: 0.5}, false},
		{"zero duration and bounds", clearance.EvaluateInput{FingerprintHash: "fp", DurationSeconds: 0, RiskScore: 1}, false},
		{"empty hash", clearance.EvaluateInput{FingerprintHash: "   ", RiskScore: 0.1}, true},
		{"long hash", clearance.EvaluateInput{FingerprintHash: strings.Repeat("a", domain.MAX_FINGERPRINT_LENGTH+1), RiskScore: 0.1}, true},
		{"negative duration", clearance.EvaluateInput{FingerprintHash: "fp", DurationSeconds: -1, RiskScore: 0.1}, true},
		{"infinite duration", clearance.EvaluateInput{FingerprintHash: "fp", DurationSeconds: math.Inf(1), RiskScore: 0.1}, true},
		{"risk above one", clearance.EvaluateInput{FingerprintHash: "fp", RiskScore: 1.01}, true},
		{"negative risk", clearance.EvaluateInput{FingerprintHash: "fp", RiskScore: -0.01}, true},
		{"nan risk", clearance.EvaluateInput{FingerprintHash: "fp", RiskScore: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEvaluate_InvalidInputTouchesNothing(t *testing.T) {
	tm := setupTestEvaluator(t)
	defer tm.ctrl.Finish()

	_, err := tm.evaluator.Evaluate(context.Background(), clearance.EvaluateInput{AssetID: 1, RiskScore: 0.1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
