package custody_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuance-vault/ledger/internal/custody"
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

type testLedgerMocks struct {
	ctrl       *gomock.Controller
	store      *mocks.MockStore
	tx         *mocks.MockStore
	settlement *mocks.MockSettlementEngine
	clock      *mocks.MockClock
	ledger     custody.Ledger
}

func setupTestLedger(t *testing.T) *testLedgerMocks {
	ctrl := gomock.NewController(t)
	tm := &testLedgerMocks{
		ctrl:       ctrl,
		store:      mocks.NewMockStore(ctrl),
		tx:         mocks.NewMockStore(ctrl),
		settlement: mocks.NewMockSettlementEngine(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}
	tm.ledger = custody.NewLedger(tm.store, tm.settlement, tm.clock, metrics.NewLedgerMetrics(prometheus.NewRegistry()))
	return tm
}

func (tm *testLedgerMocks) expectLock(asset *schema.Asset) {
	tm.store.EXPECT().
		WithAssetLock(gomock.Any(), asset.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, fn store.AssetLockFunc) error {
			return fn(tm.tx, asset)
		})
}

func testAsset() *schema.Asset {
	return &schema.Asset{
		ID:                  11,
		Title:               "Salt Flats",
		ArtistDisplay:       "Kei Oduya",
		OriginalHolderLabel: "Kei Oduya",
		SettlementRule:      domain.SettlementRuleOnTransfer,
		Status:              domain.AssetStatusIssued,
		ClearanceStatus:     domain.ClearanceStatusCleared,
	}
}

func TestRecordTransfer_FirstTransferFromOriginalHolder(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	asset := testAsset()
	event := &schema.CustodyEvent{ID: 1, AssetID: asset.ID, FromHolderLabel: "Kei Oduya", ToHolderLabel: "Archive North", OccurredAt: now}
	settledAsset := *asset
	settledAsset.Status = domain.AssetStatusSettled
	settlementEvent := &schema.SettlementEvent{ID: 1, AssetID: asset.ID, Kind: domain.SettlementKindTransfer, OccurredAt: now}

	tm.clock.EXPECT().Now().Return(now)
	tm.expectLock(asset)
	gomock.InOrder(
		tm.tx.EXPECT().GetLatestCustodyEvent(gomock.Any(), asset.ID).Return(nil, nil),
		tm.tx.EXPECT().AppendCustodyEvent(gomock.Any(), store.CreateCustodyEventInput{
			AssetID:    asset.ID,
			From:       "Kei Oduya",
			To:         "Archive North",
			OccurredAt: now,
		}).Return(event, nil),
		tm.settlement.EXPECT().
			RecordEventTx(gomock.Any(), tm.tx, asset, domain.SettlementKindTransfer, now).
			Return(&settlement.RecordResult{Event: settlementEvent, Asset: &settledAsset, Settled: true}, nil),
	)

	result, err := tm.ledger.RecordTransfer(ctx, custody.TransferInput{
		AssetID:   asset.ID,
		FromLabel: " Kei Oduya ",
		ToLabel:   "Archive North",
	})
	require.NoError(t, err)
	assert.Equal(t, event, result.Event)
	assert.Equal(t, settlementEvent, result.SettlementEvent)
	assert.True(t, result.Settled)
	assert.Equal(t, domain.AssetStatusSettled, result.Asset.Status)
}

func TestRecordTransfer_ContinuesChain(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	earlier := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)
	asset := testAsset()
	asset.Status = domain.AssetStatusSettled

	tm.expectLock(asset)
	tm.tx.EXPECT().GetLatestCustodyEvent(gomock.Any(), asset.ID).
		Return(&schema.CustodyEvent{ID: 1, FromHolderLabel: "Kei Oduya", ToHolderLabel: "Archive North", OccurredAt: earlier}, nil)
	tm.tx.EXPECT().AppendCustodyEvent(gomock.Any(), gomock.Any()).
		Return(&schema.CustodyEvent{ID: 2, FromHolderLabel: "Archive North", ToHolderLabel: "Collector B", OccurredAt: later}, nil)
	tm.settlement.EXPECT().
		RecordEventTx(gomock.Any(), tm.tx, asset, domain.SettlementKindTransfer, later).
		Return(&settlement.RecordResult{Event: &schema.SettlementEvent{ID: 2}, Asset: asset}, nil)

	result, err := tm.ledger.RecordTransfer(ctx, custody.TransferInput{
		AssetID:    asset.ID,
		FromLabel:  "Archive North",
		ToLabel:    "Collector B",
		OccurredAt: later,
	})
	require.NoError(t, err)
	assert.False(t, result.Settled)
	assert.Equal(t, uint64(2), result.Event.ID)
}

func TestRecordTransfer_ProvenanceBreak(t *testing.T) {
	t.Run("empty chain expects original holder", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()

		asset := testAsset()
		tm.expectLock(asset)
		tm.tx.EXPECT().GetLatestCustodyEvent(gomock.Any(), asset.ID).Return(nil, nil)
		// Neither a custody event nor a settlement event is written

		_, err := tm.ledger.RecordTransfer(context.Background(), custody.TransferInput{
			AssetID:    asset.ID,
			FromLabel:  "Somebody Else",
			ToLabel:    "Archive North",
			OccurredAt: time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrProvenanceBreak)
	})

	t.Run("from must match last to", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()

		asset := testAsset()
		occurred := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
		tm.expectLock(asset)
		tm.tx.EXPECT().GetLatestCustodyEvent(gomock.Any(), asset.ID).
			Return(&schema.CustodyEvent{ID: 1, FromHolderLabel: "Kei Oduya", ToHolderLabel: "Archive North", OccurredAt: occurred}, nil)

		_, err := tm.ledger.RecordTransfer(context.Background(), custody.TransferInput{
			AssetID:    asset.ID,
			FromLabel:  "Kei Oduya",
			ToLabel:    "Collector B",
			OccurredAt: occurred.Add(time.Minute),
		})
		assert.ErrorIs(t, err, domain.ErrProvenanceBreak)
	})
}

func TestRecordTransfer_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input custody.TransferInput
	}{
		{"empty from", custody.TransferInput{AssetID: 1, FromLabel: " ", ToLabel: "B", OccurredAt: time.Now()}},
		{"empty to", custody.TransferInput{AssetID: 1, FromLabel: "A", ToLabel: "", OccurredAt: time.Now()}},
		{"same holder", custody.TransferInput{AssetID: 1, FromLabel: "A", ToLabel: " A", OccurredAt: time.Now()}},
		{"label too long", custody.TransferInput{AssetID: 1, FromLabel: "A", ToLabel: strings.Repeat("b", domain.MAX_LABEL_LENGTH+1), OccurredAt: time.Now()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tm.ctrl.Finish()

			_, err := tm.ledger.RecordTransfer(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRecordTransfer_OutOfOrder(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()

	asset := testAsset()
	latestAt := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	tm.expectLock(asset)
	tm.tx.EXPECT().GetLatestCustodyEvent(gomock.Any(), asset.ID).
		Return(&schema.CustodyEvent{ID: 1, FromHolderLabel: "Kei Oduya", ToHolderLabel: "Archive North", OccurredAt: latestAt}, nil)

	_, err := tm.ledger.RecordTransfer(context.Background(), custody.TransferInput{
		AssetID:    asset.ID,
		FromLabel:  "Archive North",
		ToLabel:    "Collector B",
		OccurredAt: latestAt.Add(-time.Second),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestChain(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()

	asset := testAsset()
	events := []schema.CustodyEvent{
		{ID: 1, FromHolderLabel: "Kei Oduya", ToHolderLabel: "Archive North"},
		{ID: 2, FromHolderLabel: "Archive North", ToHolderLabel: "Collector B"},
	}
	tm.store.EXPECT().GetAsset(gomock.Any(), asset.ID).Return(asset, nil)
	tm.store.EXPECT().GetCustodyEvents(gomock.Any(), asset.ID).Return(events, nil)

	chain, err := tm.ledger.Chain(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, events, chain)
}

func TestChain_UnknownAsset(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().GetAsset(gomock.Any(), uint64(5)).Return(nil, fmt.Errorf("%w: 5", domain.ErrAssetNotFound))

	_, err := tm.ledger.Chain(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestCurrentHolder(t *testing.T) {
	t.Run("original holder", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()

		asset := testAsset()
		tm.store.EXPECT().GetAsset(gomock.Any(), asset.ID).Return(asset, nil)
		tm.store.EXPECT().GetLatestCustodyEvent(gomock.Any(), asset.ID).Return(nil, nil)

		holder, err := tm.ledger.CurrentHolder(context.Background(), asset.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kei Oduya", holder)
	})

	t.Run("last recipient", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()

		asset := testAsset()
		tm.store.EXPECT().GetAsset(gomock.Any(), asset.ID).Return(asset, nil)
		tm.store.EXPECT().GetLatestCustodyEvent(gomock.Any(), asset.ID).
			Return(&schema.CustodyEvent{FromHolderLabel: "Kei Oduya", ToHolderLabel: "Archive North"}, nil)

		holder, err := tm.ledger.CurrentHolder(context.Background(), asset.ID)
		require.NoError(t, err)
		assert.Equal(t, "Archive North", holder)
	})
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		events  []schema.CustodyEvent
		wantErr error
	}{
		{name: "empty chain", events: nil},
		{
			name: "linked chain",
			events: []schema.CustodyEvent{
				{ID: 1, FromHolderLabel: "Kei Oduya", ToHolderLabel: "A"},
				{ID: 2, FromHolderLabel: "A", ToHolderLabel: "B"},
				{ID: 3, FromHolderLabel: "B", ToHolderLabel: "Kei Oduya"},
			},
		},
		{
			name: "first event not from original holder",
			events: []schema.CustodyEvent{
				{ID: 1, FromHolderLabel: "A", ToHolderLabel: "B"},
			},
			wantErr: domain.ErrProvenanceBreak,
		},
		{
			name: "gap in the middle",
			events: []schema.CustodyEvent{
				{ID: 1, FromHolderLabel: "Kei Oduya", ToHolderLabel: "A"},
				{ID: 2, FromHolderLabel: "C", ToHolderLabel: "B"},
			},
			wantErr: domain.ErrProvenanceBreak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tm.ctrl.Finish()

			asset := testAsset()
			tm.store.EXPECT().GetAsset(gomock.Any(), asset.ID).Return(asset, nil)
			tm.store.EXPECT().GetCustodyEvents(gomock.Any(), asset.ID).Return(tt.events, nil)

			err := tm.ledger.Verify(context.Background(), asset.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
