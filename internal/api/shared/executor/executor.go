package executor

import (
	"context"
	"time"

	"github.com/issuance-vault/ledger/internal/api/shared/constants"
	"github.com/issuance-vault/ledger/internal/api/shared/dto"
	"github.com/issuance-vault/ledger/internal/clearance"
	"github.com/issuance-vault/ledger/internal/custody"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/fraction"
	"github.com/issuance-vault/ledger/internal/ledger"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// Executor is the interface for the API executor.
// Mutations take the authenticated principal so the changes journal can attribute them.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// IssueAsset issues a new asset
	IssueAsset(ctx context.Context, principal domain.Principal, req *dto.IssueAssetRequest) (*dto.AssetResponse, error)

	// GetAsset retrieves an asset by id
	GetAsset(ctx context.Context, assetID uint64) (*dto.AssetResponse, error)

	// ListAssets retrieves assets newest first with optional filters
	ListAssets(ctx context.Context, filter store.AssetQueryFilter) (*dto.AssetListResponse, error)

	// SubmitClearance consumes the fingerprinting result of an asset
	SubmitClearance(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.ClearanceRequest) (*dto.ClearanceResponse, error)

	// RecordChainTx records the issuance transaction hash
	RecordChainTx(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.TxHashRequest) (*dto.AssetResponse, error)

	// RecordFractionsTx records the fractionalization transaction hash
	RecordFractionsTx(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.TxHashRequest) (*dto.AssetResponse, error)

	// GetCustodyChain retrieves the custody chain and current holder of an asset
	GetCustodyChain(ctx context.Context, assetID uint64) (*dto.CustodyChainResponse, error)

	// RecordCustodyTransfer appends a custody transfer
	RecordCustodyTransfer(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.CustodyTransferRequest) (*dto.CustodyTransferResponse, error)

	// RecordSettlementEvent appends a settlement event and applies the settlement rule
	RecordSettlementEvent(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.SettlementEventRequest) (*dto.SettlementResponse, error)

	// ListSettlementEvents retrieves settlement events newest first
	ListSettlementEvents(ctx context.Context, assetID uint64, limit int, offset uint64) (*dto.SettlementEventListResponse, error)

	// Settle settles a cleared asset explicitly
	Settle(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.SettlementEventRequest) (*dto.SettlementResponse, error)

	// Fractionalize fractionalizes a cleared asset
	Fractionalize(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.FractionalizeRequest) (*dto.FractionHoldingListResponse, error)

	// GetFractionHoldings retrieves the fraction ledger of an asset
	GetFractionHoldings(ctx context.Context, assetID uint64) (*dto.FractionHoldingListResponse, error)

	// TransferFractions moves fractions between holders
	TransferFractions(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.FractionTransferRequest) (*dto.FractionHoldingListResponse, error)

	// GetChanges retrieves the changes journal after anchor
	GetChanges(ctx context.Context, anchor *uint64, limit int) (*dto.ChangeListResponse, error)
}

type executor struct {
	ledger *ledger.Ledger
}

func NewExecutor(l *ledger.Ledger) Executor {
	return &executor{ledger: l}
}

func (e *executor) IssueAsset(ctx context.Context, principal domain.Principal, req *dto.IssueAssetRequest) (*dto.AssetResponse, error) {
	ctx = domain.WithPrincipal(ctx, principal)

	asset, err := e.ledger.Issue(ctx, store.CreateAssetInput{
		Title:               req.Title,
		ArtistDisplay:       req.ArtistDisplay,
		Year:                req.Year,
		EditionTotal:        req.EditionTotal,
		ProvenanceText:      req.ProvenanceText,
		OriginalHolderLabel: req.OriginalHolderLabel,
		AudioRef:            req.AudioRef,
		Verification:        req.Verification,
		SettlementRule:      req.SettlementRule,
	})
	if err != nil {
		return nil, err
	}

	return dto.MapAssetToDTO(asset), nil
}

func (e *executor) GetAsset(ctx context.Context, assetID uint64) (*dto.AssetResponse, error) {
	asset, err := e.ledger.Store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return dto.MapAssetToDTO(asset), nil
}

func (e *executor) ListAssets(ctx context.Context, filter store.AssetQueryFilter) (*dto.AssetListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = constants.DEFAULT_ASSETS_LIMIT
	}

	assets, total, err := e.ledger.Store.ListAssets(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AssetResponse, len(assets))
	for i := range assets {
		items[i] = *dto.MapAssetToDTO(&assets[i])
	}

	return &dto.AssetListResponse{
		Assets: items,
		Offset: nextOffset(filter.Offset, len(assets), total),
		Total:  total,
	}, nil
}

func (e *executor) SubmitClearance(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.ClearanceRequest) (*dto.ClearanceResponse, error) {
	ctx = domain.WithPrincipal(ctx, principal)

	result, err := e.ledger.Clearance.Evaluate(ctx, clearance.EvaluateInput{
		AssetID:         assetID,
		FingerprintHash: req.FingerprintHash,
		DurationSeconds: *req.DurationSeconds,
		RiskScore:       *req.RiskScore,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ClearanceResponse{
		ClearanceStatus: result.Status,
		Settled:         result.Settled,
		Asset:           *dto.MapAssetToDTO(result.Asset),
	}, nil
}

func (e *executor) RecordChainTx(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.TxHashRequest) (*dto.AssetResponse, error) {
	hash, err := domain.NormalizeTxHash(req.TxHash)
	if err != nil {
		return nil, err
	}

	asset, err := e.ledger.Store.SetChainTxHash(domain.WithPrincipal(ctx, principal), assetID, hash)
	if err != nil {
		return nil, err
	}
	return dto.MapAssetToDTO(asset), nil
}

func (e *executor) RecordFractionsTx(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.TxHashRequest) (*dto.AssetResponse, error) {
	hash, err := domain.NormalizeTxHash(req.TxHash)
	if err != nil {
		return nil, err
	}

	asset, err := e.ledger.Store.SetFractionsTxHash(domain.WithPrincipal(ctx, principal), assetID, hash)
	if err != nil {
		return nil, err
	}
	return dto.MapAssetToDTO(asset), nil
}

func (e *executor) GetCustodyChain(ctx context.Context, assetID uint64) (*dto.CustodyChainResponse, error) {
	events, err := e.ledger.Custody.Chain(ctx, assetID)
	if err != nil {
		return nil, err
	}

	holder, err := e.ledger.Custody.CurrentHolder(ctx, assetID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CustodyEventResponse, len(events))
	for i := range events {
		items[i] = *dto.MapCustodyEventToDTO(&events[i])
	}

	return &dto.CustodyChainResponse{
		Events:        items,
		CurrentHolder: holder,
	}, nil
}

func (e *executor) RecordCustodyTransfer(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.CustodyTransferRequest) (*dto.CustodyTransferResponse, error) {
	ctx = domain.WithPrincipal(ctx, principal)

	result, err := e.ledger.Custody.RecordTransfer(ctx, custody.TransferInput{
		AssetID:    assetID,
		FromLabel:  req.FromHolderLabel,
		ToLabel:    req.ToHolderLabel,
		OccurredAt: timeOrZero(req.OccurredAt),
	})
	if err != nil {
		return nil, err
	}

	return &dto.CustodyTransferResponse{
		Event:           *dto.MapCustodyEventToDTO(result.Event),
		SettlementEvent: dto.MapSettlementEventToDTO(result.SettlementEvent),
		Settled:         result.Settled,
		Asset:           *dto.MapAssetToDTO(result.Asset),
	}, nil
}

func (e *executor) RecordSettlementEvent(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.SettlementEventRequest) (*dto.SettlementResponse, error) {
	ctx = domain.WithPrincipal(ctx, principal)

	result, err := e.ledger.Settlement.RecordEvent(ctx, assetID, req.Kind, timeOrZero(req.OccurredAt))
	if err != nil {
		return nil, err
	}
	return mapSettlementResult(result.Event, result.Asset, result.Settled), nil
}

func (e *executor) ListSettlementEvents(ctx context.Context, assetID uint64, limit int, offset uint64) (*dto.SettlementEventListResponse, error) {
	if limit <= 0 {
		limit = constants.DEFAULT_SETTLEMENTS_LIMIT
	}

	// Unknown assets are not found rather than an empty list
	if _, err := e.ledger.Store.GetAsset(ctx, assetID); err != nil {
		return nil, err
	}

	events, total, err := e.ledger.Store.GetSettlementEvents(ctx, assetID, limit, offset, true)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SettlementEventResponse, len(events))
	for i := range events {
		items[i] = *dto.MapSettlementEventToDTO(&events[i])
	}

	return &dto.SettlementEventListResponse{
		Events: items,
		Offset: nextOffset(offset, len(events), total),
		Total:  total,
	}, nil
}

func (e *executor) Settle(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.SettlementEventRequest) (*dto.SettlementResponse, error) {
	ctx = domain.WithPrincipal(ctx, principal)

	result, err := e.ledger.Settlement.Settle(ctx, assetID, req.Kind, timeOrZero(req.OccurredAt))
	if err != nil {
		return nil, err
	}
	return mapSettlementResult(result.Event, result.Asset, result.Settled), nil
}

func (e *executor) Fractionalize(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.FractionalizeRequest) (*dto.FractionHoldingListResponse, error) {
	ctx = domain.WithPrincipal(ctx, principal)

	input := fraction.FractionalizeInput{
		AssetID:       assetID,
		FractionCount: req.FractionCount,
		InitialHolder: fraction.HolderShare{
			Address: req.InitialHolderAddress,
			Label:   req.InitialHolderLabel,
		},
	}
	for _, share := range req.Distribution {
		input.Distribution = append(input.Distribution, fraction.HolderShare{
			Address: share.HolderAddress,
			Label:   share.HolderLabel,
			Amount:  share.FractionAmount,
		})
	}

	holdings, err := e.ledger.Fractions.Fractionalize(ctx, input)
	if err != nil {
		return nil, err
	}

	return dto.MapFractionHoldingsToDTO(assetID, req.FractionCount, holdings), nil
}

func (e *executor) GetFractionHoldings(ctx context.Context, assetID uint64) (*dto.FractionHoldingListResponse, error) {
	views, err := e.ledger.Fractions.Holdings(ctx, assetID)
	if err != nil {
		return nil, err
	}

	resp := &dto.FractionHoldingListResponse{
		AssetID:  assetID,
		Holdings: make([]dto.FractionHoldingResponse, len(views)),
	}
	for i, v := range views {
		resp.FractionCount = v.FractionCount
		resp.Holdings[i] = dto.FractionHoldingResponse{
			HolderAddress:  v.HolderAddress,
			HolderLabel:    v.HolderLabel,
			FractionAmount: v.FractionAmount,
			Percentage:     v.Percentage,
			UpdatedAt:      v.UpdatedAt,
		}
	}

	return resp, nil
}

func (e *executor) TransferFractions(ctx context.Context, principal domain.Principal, assetID uint64, req *dto.FractionTransferRequest) (*dto.FractionHoldingListResponse, error) {
	ctx = domain.WithPrincipal(ctx, principal)

	holdings, err := e.ledger.Fractions.TransferFraction(ctx, fraction.TransferInput{
		AssetID:     assetID,
		FromAddress: req.FromAddress,
		ToAddress:   req.ToAddress,
		Amount:      req.Amount,
		ToLabel:     req.ToLabel,
	})
	if err != nil {
		return nil, err
	}

	// fraction_count never changes once set
	asset, err := e.ledger.Store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	var count int64
	if asset.FractionCount != nil {
		count = *asset.FractionCount
	}

	return dto.MapFractionHoldingsToDTO(assetID, count, holdings), nil
}

func (e *executor) GetChanges(ctx context.Context, anchor *uint64, limit int) (*dto.ChangeListResponse, error) {
	if limit <= 0 {
		limit = constants.DEFAULT_CHANGES_LIMIT
	}

	changes, total, err := e.ledger.Store.GetChanges(ctx, store.ChangesQueryFilter{
		Anchor: anchor,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChangeResponse, len(changes))
	for i, change := range changes {
		items[i] = *dto.MapChangeToDTO(change)
	}

	var nextAnchor *uint64
	if len(changes) > 0 && uint64(len(changes)) < total {
		last := changes[len(changes)-1].Cursor
		nextAnchor = &last
	}

	return &dto.ChangeListResponse{
		Changes:    items,
		NextAnchor: nextAnchor,
		Total:      total,
	}, nil
}

func mapSettlementResult(event *schema.SettlementEvent, asset *schema.Asset, settled bool) *dto.SettlementResponse {
	return &dto.SettlementResponse{
		Event:   dto.MapSettlementEventToDTO(event),
		Settled: settled,
		Asset:   *dto.MapAssetToDTO(asset),
	}
}

func nextOffset(offset uint64, n int, total uint64) *uint64 {
	if offset+uint64(n) >= total { //nolint:gosec,G115
		return nil
	}
	next := offset + uint64(n) //nolint:gosec,G115
	return &next
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
