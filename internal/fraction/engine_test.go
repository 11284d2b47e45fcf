package fraction_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/fraction"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/metrics"
	"github.com/issuance-vault/ledger/internal/mocks"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

const (
	walletA = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	walletB = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	os.Exit(m.Run())
}

type testEngineMocks struct {
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	tx     *mocks.MockStore
	engine fraction.Engine
}

func setupTestEngine(t *testing.T) *testEngineMocks {
	ctrl := gomock.NewController(t)
	tm := &testEngineMocks{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
		tx:    mocks.NewMockStore(ctrl),
	}
	tm.engine = fraction.NewEngine(tm.store, domain.DEFAULT_FRACTION_CAP, metrics.NewLedgerMetrics(prometheus.NewRegistry()))
	return tm
}

func (tm *testEngineMocks) expectLock(asset *schema.Asset) {
	tm.store.EXPECT().
		WithAssetLock(gomock.Any(), asset.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, fn store.AssetLockFunc) error {
			return fn(tm.tx, asset)
		})
}

func stringPtr(s string) *string {
	return &s
}

func fractionalizedAsset(count int64) *schema.Asset {
	return &schema.Asset{
		ID:               21,
		Title:            "Tidewater",
		SettlementRule:   domain.SettlementRuleCustom,
		Status:           domain.AssetStatusIssued,
		ClearanceStatus:  domain.ClearanceStatusCleared,
		IsFractionalized: true,
		FractionCount:    &count,
	}
}

func TestFractionalize_SingleInitialHolder(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	expected := []schema.FractionHolding{{ID: 1, AssetID: 21, HolderAddress: walletA, FractionAmount: 100}}
	tm.store.EXPECT().
		FractionalizeAsset(gomock.Any(), store.FractionalizeAssetInput{
			AssetID:       21,
			FractionCount: 100,
			Holdings: []store.FractionHoldingInput{
				{HolderAddress: walletA, HolderLabel: stringPtr("Label A"), FractionAmount: 100},
			},
		}).
		Return(expected, nil)

	holdings, err := tm.engine.Fractionalize(context.Background(), fraction.FractionalizeInput{
		AssetID:       21,
		FractionCount: 100,
		InitialHolder: fraction.HolderShare{
			Address: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			Label:   stringPtr(" Label A "),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, expected, holdings)
}

func TestFractionalize_Distribution(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().
		FractionalizeAsset(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.FractionalizeAssetInput) ([]schema.FractionHolding, error) {
			require.Len(t, input.Holdings, 2)
			assert.Equal(t, int64(70), input.Holdings[0].FractionAmount)
			assert.Equal(t, "vault:treasury", input.Holdings[1].HolderAddress)
			assert.Nil(t, input.Holdings[1].HolderLabel)
			return []schema.FractionHolding{
				{HolderAddress: walletA, FractionAmount: 70},
				{HolderAddress: "vault:treasury", FractionAmount: 30},
			}, nil
		})

	holdings, err := tm.engine.Fractionalize(context.Background(), fraction.FractionalizeInput{
		AssetID:       21,
		FractionCount: 100,
		Distribution: []fraction.HolderShare{
			{Address: walletA, Amount: 70},
			{Address: " vault:treasury ", Label: stringPtr("  "), Amount: 30},
		},
	})
	require.NoError(t, err)
	assert.Len(t, holdings, 2)
}

func TestFractionalize_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input fraction.FractionalizeInput
	}{
		{"count below minimum", fraction.FractionalizeInput{AssetID: 1, FractionCount: 1, InitialHolder: fraction.HolderShare{Address: walletA}}},
		{"count above cap", fraction.FractionalizeInput{AssetID: 1, FractionCount: domain.DEFAULT_FRACTION_CAP + 1, InitialHolder: fraction.HolderShare{Address: walletA}}},
		{"missing holder", fraction.FractionalizeInput{AssetID: 1, FractionCount: 100, InitialHolder: fraction.HolderShare{Address: "  "}}},
		{"distribution short", fraction.FractionalizeInput{AssetID: 1, FractionCount: 100, Distribution: []fraction.HolderShare{
			{Address: walletA, Amount: 60}, {Address: walletB, Amount: 30},
		}}},
		{"distribution duplicate after normalization", fraction.FractionalizeInput{AssetID: 1, FractionCount: 100, Distribution: []fraction.HolderShare{
			{Address: walletA, Amount: 50}, {Address: "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", Amount: 50},
		}}},
		{"distribution zero amount", fraction.FractionalizeInput{AssetID: 1, FractionCount: 100, Distribution: []fraction.HolderShare{
			{Address: walletA, Amount: 100}, {Address: walletB, Amount: 0},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestEngine(t)
			defer tm.ctrl.Finish()

			_, err := tm.engine.Fractionalize(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestFractionalize_StoreGuards(t *testing.T) {
	for _, guard := range []error{domain.ErrNotCleared, domain.ErrAlreadyFractionalized} {
		t.Run(guard.Error(), func(t *testing.T) {
			tm := setupTestEngine(t)
			defer tm.ctrl.Finish()

			tm.store.EXPECT().FractionalizeAsset(gomock.Any(), gomock.Any()).
				Return(nil, fmt.Errorf("%w: asset 21", guard))

			_, err := tm.engine.Fractionalize(context.Background(), fraction.FractionalizeInput{
				AssetID:       21,
				FractionCount: 100,
				InitialHolder: fraction.HolderShare{Address: walletA},
			})
			assert.ErrorIs(t, err, guard)
		})
	}
}

func TestTransferFraction(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	asset := fractionalizedAsset(100)
	current := []schema.FractionHolding{
		{ID: 1, AssetID: asset.ID, HolderAddress: walletA, HolderLabel: stringPtr("A"), FractionAmount: 100},
	}
	after := []schema.FractionHolding{
		{ID: 1, AssetID: asset.ID, HolderAddress: walletA, HolderLabel: stringPtr("A"), FractionAmount: 60},
		{ID: 2, AssetID: asset.ID, HolderAddress: walletB, HolderLabel: stringPtr("B"), FractionAmount: 40},
	}

	tm.expectLock(asset)
	tm.tx.EXPECT().GetFractionHoldings(gomock.Any(), asset.ID).Return(current, nil)
	tm.tx.EXPECT().
		UpsertFractionHoldings(gomock.Any(), asset.ID, []store.FractionHoldingInput{
			{HolderAddress: walletA, HolderLabel: stringPtr("A"), FractionAmount: 60},
			{HolderAddress: walletB, HolderLabel: stringPtr("B"), FractionAmount: 40},
		}).
		Return(after, nil)

	holdings, err := tm.engine.TransferFraction(context.Background(), fraction.TransferInput{
		AssetID:     asset.ID,
		FromAddress: walletA,
		ToAddress:   "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359",
		Amount:      40,
		ToLabel:     stringPtr("B"),
	})
	require.NoError(t, err)
	assert.Equal(t, after, holdings)
}

func TestTransferFraction_InsufficientBalance(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	asset := fractionalizedAsset(100)
	tm.expectLock(asset)
	tm.tx.EXPECT().GetFractionHoldings(gomock.Any(), asset.ID).Return([]schema.FractionHolding{
		{HolderAddress: walletA, FractionAmount: 60},
		{HolderAddress: walletB, FractionAmount: 40},
	}, nil)
	// No write happens

	_, err := tm.engine.TransferFraction(context.Background(), fraction.TransferInput{
		AssetID:     asset.ID,
		FromAddress: walletA,
		ToAddress:   walletB,
		Amount:      100,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestTransferFraction_NotFractionalized(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	asset := fractionalizedAsset(100)
	asset.IsFractionalized = false
	asset.FractionCount = nil
	tm.expectLock(asset)

	_, err := tm.engine.TransferFraction(context.Background(), fraction.TransferInput{
		AssetID:     asset.ID,
		FromAddress: walletA,
		ToAddress:   walletB,
		Amount:      1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransferFraction_DriftIsInvariantViolation(t *testing.T) {
	tm := setupTestEngine(t)
	defer tm.ctrl.Finish()

	asset := fractionalizedAsset(100)
	tm.expectLock(asset)
	tm.tx.EXPECT().GetFractionHoldings(gomock.Any(), asset.ID).Return([]schema.FractionHolding{
		{HolderAddress: walletA, FractionAmount: 90},
	}, nil)

	_, err := tm.engine.TransferFraction(context.Background(), fraction.TransferInput{
		AssetID:     asset.ID,
		FromAddress: walletA,
		ToAddress:   walletB,
		Amount:      10,
	})
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestTransferFraction_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input fraction.TransferInput
	}{
		{"missing from", fraction.TransferInput{AssetID: 1, ToAddress: walletB, Amount: 1}},
		{"missing to", fraction.TransferInput{AssetID: 1, FromAddress: walletA, Amount: 1}},
		{"same holder", fraction.TransferInput{AssetID: 1, FromAddress: walletA, ToAddress: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", Amount: 1}},
		{"zero amount", fraction.TransferInput{AssetID: 1, FromAddress: walletA, ToAddress: walletB, Amount: 0}},
		{"negative amount", fraction.TransferInput{AssetID: 1, FromAddress: walletA, ToAddress: walletB, Amount: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestEngine(t)
			defer tm.ctrl.Finish()

			_, err := tm.engine.TransferFraction(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestApplyTransfer(t *testing.T) {
	current := []schema.FractionHolding{
		{HolderAddress: "a", FractionAmount: 60},
		{HolderAddress: "b", HolderLabel: stringPtr("Bee"), FractionAmount: 40},
	}

	t.Run("partial to existing holder keeps label", func(t *testing.T) {
		next, err := fraction.ApplyTransfer(current, "a", "b", 10, stringPtr("ignored"))
		require.NoError(t, err)
		assert.Equal(t, []store.FractionHoldingInput{
			{HolderAddress: "a", FractionAmount: 50},
			{HolderAddress: "b", HolderLabel: stringPtr("Bee"), FractionAmount: 50},
		}, next)
	})

	t.Run("full balance removes the source", func(t *testing.T) {
		next, err := fraction.ApplyTransfer(current, "a", "c", 60, nil)
		require.NoError(t, err)
		assert.Equal(t, []store.FractionHoldingInput{
			{HolderAddress: "b", HolderLabel: stringPtr("Bee"), FractionAmount: 40},
			{HolderAddress: "c", FractionAmount: 60},
		}, next)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := fraction.ApplyTransfer(current, "z", "a", 1, nil)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("input untouched", func(t *testing.T) {
		_, err := fraction.ApplyTransfer(current, "a", "b", 5, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(60), current[0].FractionAmount)
		assert.Equal(t, int64(40), current[1].FractionAmount)
	})
}

func TestHoldings(t *testing.T) {
	t.Run("percentages derived from count", func(t *testing.T) {
		tm := setupTestEngine(t)
		defer tm.ctrl.Finish()

		asset := fractionalizedAsset(100)
		tm.store.EXPECT().GetAsset(gomock.Any(), asset.ID).Return(asset, nil)
		tm.store.EXPECT().GetFractionHoldings(gomock.Any(), asset.ID).Return([]schema.FractionHolding{
			{HolderAddress: walletA, FractionAmount: 60},
			{HolderAddress: walletB, FractionAmount: 40},
		}, nil)

		views, err := tm.engine.Holdings(context.Background(), asset.ID)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.InDelta(t, 60.0, views[0].Percentage, 1e-9)
		assert.InDelta(t, 40.0, views[1].Percentage, 1e-9)
		assert.Equal(t, int64(100), views[1].FractionCount)
	})

	t.Run("not fractionalized", func(t *testing.T) {
		tm := setupTestEngine(t)
		defer tm.ctrl.Finish()

		asset := fractionalizedAsset(100)
		asset.IsFractionalized = false
		asset.FractionCount = nil
		tm.store.EXPECT().GetAsset(gomock.Any(), asset.ID).Return(asset, nil)

		views, err := tm.engine.Holdings(context.Background(), asset.ID)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
