package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// lockAsset loads the asset row with FOR UPDATE inside tx
func lockAsset(tx *gorm.DB, assetID uint64) (*schema.Asset, error) {
	var asset schema.Asset
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", assetID).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrAssetNotFound, assetID)
		}
		return nil, fmt.Errorf("failed to lock asset: %w", err)
	}
	return &asset, nil
}

// reloadAsset re-reads the asset after an update inside tx
func reloadAsset(tx *gorm.DB, asset *schema.Asset) error {
	if err := tx.Where("id = ?", asset.ID).First(asset).Error; err != nil {
		return fmt.Errorf("failed to reload asset: %w", err)
	}
	return nil
}

// journalLockKey is the advisory lock taken by every journal writer until its transaction ends
const journalLockKey int64 = 0x6c6a726e6c // "ljrnl"

// writeJournal appends a changes journal entry for an asset inside tx.
// Writers hold journalLockKey until commit, so cursors become visible in cursor order and a
// reader that has seen cursor N never sees a smaller cursor appear later.
func writeJournal(ctx context.Context, tx *gorm.DB, subjectType schema.SubjectType, assetID uint64, changedAt time.Time, meta any) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal change journal meta: %w", err)
	}

	if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", journalLockKey).Error; err != nil {
		return fmt.Errorf("failed to lock change journal: %w", err)
	}

	entry := schema.ChangesJournal{
		SubjectType: subjectType,
		SubjectID:   strconv.FormatUint(assetID, 10),
		ChangedAt:   changedAt,
		Meta:        metaJSON,
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to create change journal: %w", err)
	}

	return nil
}

func actor(ctx context.Context) string {
	return domain.PrincipalFromContext(ctx).Actor()
}

// CreateAsset issues a new asset with status ISSUED and clearance UNCHECKED
func (s *pgStore) CreateAsset(ctx context.Context, input CreateAssetInput) (*schema.Asset, error) {
	if err := input.Validate(0); err != nil {
		return nil, err
	}

	originalHolder := input.OriginalHolderLabel
	if originalHolder == "" {
		originalHolder = input.ArtistDisplay
	}
	verification := input.Verification
	if verification == "" {
		verification = domain.DEFAULT_VERIFICATION
	}

	asset := schema.Asset{
		Title:               input.Title,
		ArtistDisplay:       input.ArtistDisplay,
		Year:                input.Year,
		EditionTotal:        input.EditionTotal,
		ProvenanceText:      input.ProvenanceText,
		OriginalHolderLabel: originalHolder,
		AudioRef:            input.AudioRef,
		Verification:        verification,
		SettlementRule:      input.SettlementRule,
		Status:              domain.AssetStatusIssued,
		ClearanceStatus:     domain.ClearanceStatusUnchecked,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&asset).Error; err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}

		meta := schema.AssetChangeMeta{
			Actor:           actor(ctx),
			Action:          schema.JournalActionIssued,
			Status:          asset.Status,
			SettlementRule:  asset.SettlementRule,
			ClearanceStatus: asset.ClearanceStatus,
		}
		return writeJournal(ctx, tx, schema.SubjectTypeAsset, asset.ID, asset.CreatedAt, meta)
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// GetAsset retrieves an asset by id
func (s *pgStore) GetAsset(ctx context.Context, assetID uint64) (*schema.Asset, error) {
	var asset schema.Asset
	err := s.db.WithContext(ctx).Where("id = ?", assetID).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrAssetNotFound, assetID)
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

// ListAssets retrieves assets newest first with the total count of matching rows
func (s *pgStore) ListAssets(ctx context.Context, filter AssetQueryFilter) ([]schema.Asset, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Asset{})

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.ClearanceStatuses) > 0 {
		query = query.Where("clearance_status IN ?", filter.ClearanceStatuses)
	}
	if len(filter.SettlementRules) > 0 {
		query = query.Where("settlement_rule IN ?", filter.SettlementRules)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	query = query.Order("created_at DESC, id DESC")
	if filter.Offset > 0 {
		query = query.Offset(int(filter.Offset)) //nolint:gosec,G115
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var assets []schema.Asset
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}

	return assets, uint64(total), nil //nolint:gosec,G115
}

// UpdateAssetClearance records the clearance verdict; only valid from UNCHECKED
func (s *pgStore) UpdateAssetClearance(ctx context.Context, input UpdateAssetClearanceInput) (*schema.Asset, error) {
	if !input.ClearanceStatus.Final() {
		return nil, fmt.Errorf("%w: clearance status must be CLEARED or FLAGGED, got %q", domain.ErrValidation, input.ClearanceStatus)
	}

	var asset *schema.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		asset, err = lockAsset(tx, input.AssetID)
		if err != nil {
			return err
		}

		if asset.ClearanceStatus != domain.ClearanceStatusUnchecked {
			return fmt.Errorf("%w: clearance already %s for asset %d", domain.ErrInvalidTransition, asset.ClearanceStatus, asset.ID)
		}

		now := time.Now()
		if err := tx.Model(asset).Updates(map[string]any{
			"clearance_status": input.ClearanceStatus,
			"risk_score":       input.RiskScore,
			"fingerprint_hash": input.FingerprintHash,
			"duration_seconds": input.DurationSeconds,
			"updated_at":       now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update asset clearance: %w", err)
		}

		meta := schema.ClearanceChangeMeta{
			Actor:           actor(ctx),
			ClearanceStatus: input.ClearanceStatus,
			RiskScore:       input.RiskScore,
			FingerprintHash: input.FingerprintHash,
			DurationSeconds: input.DurationSeconds,
		}
		if err := writeJournal(ctx, tx, schema.SubjectTypeClearance, asset.ID, now, meta); err != nil {
			return err
		}

		return reloadAsset(tx, asset)
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// UpdateAssetStatus moves an asset to SETTLED; only valid from ISSUED.
// The clearance gate and the settlement evidence invariant are re-checked under the lock.
func (s *pgStore) UpdateAssetStatus(ctx context.Context, assetID uint64, status domain.AssetStatus) (*schema.Asset, error) {
	if status != domain.AssetStatusSettled {
		return nil, fmt.Errorf("%w: status can only move to %s", domain.ErrInvalidTransition, domain.AssetStatusSettled)
	}

	var asset *schema.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		asset, err = lockAsset(tx, assetID)
		if err != nil {
			return err
		}

		if asset.Settled() {
			return fmt.Errorf("%w: asset %d", domain.ErrAlreadySettled, asset.ID)
		}
		if !asset.Cleared() {
			return fmt.Errorf("%w: asset %d is %s", domain.ErrNotCleared, asset.ID, asset.ClearanceStatus)
		}

		if asset.SettlementRule != domain.SettlementRuleImmediate {
			var events int64
			if err := tx.Model(&schema.SettlementEvent{}).Where("asset_id = ?", asset.ID).Count(&events).Error; err != nil {
				return fmt.Errorf("failed to count settlement events: %w", err)
			}
			if events == 0 {
				return fmt.Errorf("%w: asset %d has rule %s and no settlement event", domain.ErrInvariantViolation, asset.ID, asset.SettlementRule)
			}
		}

		now := time.Now()
		if err := tx.Model(asset).Updates(map[string]any{
			"status":     status,
			"updated_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update asset status: %w", err)
		}

		meta := schema.AssetChangeMeta{
			Actor:          actor(ctx),
			Action:         schema.JournalActionSettled,
			Status:         status,
			SettlementRule: asset.SettlementRule,
		}
		if err := writeJournal(ctx, tx, schema.SubjectTypeAsset, asset.ID, now, meta); err != nil {
			return err
		}

		return reloadAsset(tx, asset)
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// SetChainTxHash records the issuance transaction hash once. Only cleared assets are registered on chain.
func (s *pgStore) SetChainTxHash(ctx context.Context, assetID uint64, txHash string) (*schema.Asset, error) {
	return s.setTxHash(ctx, assetID, txHash, schema.JournalActionChainTxHash)
}

// SetFractionsTxHash records the fractionalization transaction hash once
func (s *pgStore) SetFractionsTxHash(ctx context.Context, assetID uint64, txHash string) (*schema.Asset, error) {
	return s.setTxHash(ctx, assetID, txHash, schema.JournalActionFractionsTxHash)
}

func (s *pgStore) setTxHash(ctx context.Context, assetID uint64, txHash string, action string) (*schema.Asset, error) {
	if txHash == "" {
		return nil, fmt.Errorf("%w: tx hash is required", domain.ErrValidation)
	}

	var asset *schema.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		asset, err = lockAsset(tx, assetID)
		if err != nil {
			return err
		}

		meta := schema.AssetChangeMeta{
			Actor:  actor(ctx),
			Action: action,
		}

		var column string
		switch action {
		case schema.JournalActionChainTxHash:
			if !asset.Cleared() {
				return fmt.Errorf("%w: asset %d is %s", domain.ErrNotCleared, asset.ID, asset.ClearanceStatus)
			}
			if asset.ChainTxHash != nil {
				return fmt.Errorf("%w: chain tx hash already recorded for asset %d", domain.ErrInvalidTransition, asset.ID)
			}
			column = "chain_tx_hash"
			meta.ChainTxHash = txHash
		case schema.JournalActionFractionsTxHash:
			if !asset.IsFractionalized {
				return fmt.Errorf("%w: asset %d is not fractionalized", domain.ErrInvalidTransition, asset.ID)
			}
			if asset.FractionsTxHash != nil {
				return fmt.Errorf("%w: fractions tx hash already recorded for asset %d", domain.ErrInvalidTransition, asset.ID)
			}
			column = "fractions_tx_hash"
			meta.FractionsTxHash = txHash
		default:
			return fmt.Errorf("unknown tx hash action: %s", action)
		}

		now := time.Now()
		if err := tx.Model(asset).Updates(map[string]any{
			column:       txHash,
			"updated_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update %s: %w", column, err)
		}

		if err := writeJournal(ctx, tx, schema.SubjectTypeAsset, asset.ID, now, meta); err != nil {
			return err
		}

		return reloadAsset(tx, asset)
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// AppendCustodyEvent appends a custody event
func (s *pgStore) AppendCustodyEvent(ctx context.Context, input CreateCustodyEventInput) (*schema.CustodyEvent, error) {
	if input.From == "" || input.To == "" {
		return nil, fmt.Errorf("%w: custody holders are required", domain.ErrValidation)
	}
	if input.From == input.To {
		return nil, fmt.Errorf("%w: custody transfer to the same holder", domain.ErrValidation)
	}

	event := schema.CustodyEvent{
		AssetID:         input.AssetID,
		FromHolderLabel: input.From,
		ToHolderLabel:   input.To,
		OccurredAt:      input.OccurredAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockAsset(tx, input.AssetID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create custody event: %w", err)
		}

		meta := schema.CustodyChangeMeta{
			Actor:          actor(ctx),
			CustodyEventID: event.ID,
			From:           event.FromHolderLabel,
			To:             event.ToHolderLabel,
			OccurredAt:     event.OccurredAt,
		}
		return writeJournal(ctx, tx, schema.SubjectTypeCustody, input.AssetID, event.OccurredAt, meta)
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// GetLatestCustodyEvent retrieves the last custody event by (occurred_at, id)
func (s *pgStore) GetLatestCustodyEvent(ctx context.Context, assetID uint64) (*schema.CustodyEvent, error) {
	var event schema.CustodyEvent
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("occurred_at DESC, id DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest custody event: %w", err)
	}
	return &event, nil
}

// GetCustodyEvents retrieves the custody chain ascending by (occurred_at, id)
func (s *pgStore) GetCustodyEvents(ctx context.Context, assetID uint64) ([]schema.CustodyEvent, error) {
	var events []schema.CustodyEvent
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("occurred_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get custody events: %w", err)
	}
	return events, nil
}

// AppendSettlementEvent appends a settlement event
func (s *pgStore) AppendSettlementEvent(ctx context.Context, input CreateSettlementEventInput) (*schema.SettlementEvent, error) {
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown settlement kind %q", domain.ErrValidation, input.Kind)
	}

	event := schema.SettlementEvent{
		AssetID:    input.AssetID,
		Kind:       input.Kind,
		OccurredAt: input.OccurredAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockAsset(tx, input.AssetID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create settlement event: %w", err)
		}

		meta := schema.SettlementChangeMeta{
			Actor:             actor(ctx),
			SettlementEventID: event.ID,
			Kind:              event.Kind,
			OccurredAt:        event.OccurredAt,
		}
		return writeJournal(ctx, tx, schema.SubjectTypeSettlement, input.AssetID, event.OccurredAt, meta)
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// GetSettlementEvents retrieves settlement events of an asset with pagination and the total count
func (s *pgStore) GetSettlementEvents(ctx context.Context, assetID uint64, limit int, offset uint64, orderDesc bool) ([]schema.SettlementEvent, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.SettlementEvent{}).Where("asset_id = ?", assetID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count settlement events: %w", err)
	}

	if orderDesc {
		query = query.Order("occurred_at DESC, id DESC")
	} else {
		query = query.Order("occurred_at ASC, id ASC")
	}
	if offset > 0 {
		query = query.Offset(int(offset)) //nolint:gosec,G115
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var events []schema.SettlementEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get settlement events: %w", err)
	}

	return events, uint64(total), nil //nolint:gosec,G115
}

// CountSettlementEvents counts settlement events of an asset, of every kind when kind is empty
func (s *pgStore) CountSettlementEvents(ctx context.Context, assetID uint64, kind domain.SettlementKind) (int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.SettlementEvent{}).Where("asset_id = ?", assetID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count settlement events: %w", err)
	}
	return count, nil
}

// validateHoldings checks amounts and holder uniqueness and returns the sum
func validateHoldings(holdings []FractionHoldingInput) (int64, error) {
	seen := make(map[string]struct{}, len(holdings))
	var sum int64
	for _, h := range holdings {
		if h.HolderAddress == "" {
			return 0, fmt.Errorf("%w: holder address is required", domain.ErrValidation)
		}
		if h.FractionAmount <= 0 {
			return 0, fmt.Errorf("%w: fraction amount must be positive for %s", domain.ErrValidation, h.HolderAddress)
		}
		if _, ok := seen[h.HolderAddress]; ok {
			return 0, fmt.Errorf("%w: duplicate holder %s", domain.ErrValidation, h.HolderAddress)
		}
		seen[h.HolderAddress] = struct{}{}
		sum += h.FractionAmount
	}
	return sum, nil
}

// FractionalizeAsset fractionalizes a CLEARED asset once and writes its initial holdings
func (s *pgStore) FractionalizeAsset(ctx context.Context, input FractionalizeAssetInput) ([]schema.FractionHolding, error) {
	if input.FractionCount < domain.MIN_FRACTION_COUNT {
		return nil, fmt.Errorf("%w: fraction count must be at least %d", domain.ErrValidation, domain.MIN_FRACTION_COUNT)
	}
	if len(input.Holdings) == 0 {
		return nil, fmt.Errorf("%w: at least one holding is required", domain.ErrValidation)
	}
	sum, err := validateHoldings(input.Holdings)
	if err != nil {
		return nil, err
	}
	if sum != input.FractionCount {
		return nil, fmt.Errorf("%w: holdings sum to %d, fraction count is %d", domain.ErrValidation, sum, input.FractionCount)
	}

	var holdings []schema.FractionHolding
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := lockAsset(tx, input.AssetID)
		if err != nil {
			return err
		}

		if asset.IsFractionalized {
			return fmt.Errorf("%w: asset %d", domain.ErrAlreadyFractionalized, asset.ID)
		}
		if !asset.Cleared() {
			return fmt.Errorf("%w: asset %d is %s", domain.ErrNotCleared, asset.ID, asset.ClearanceStatus)
		}

		now := time.Now()
		if err := tx.Model(asset).Updates(map[string]any{
			"is_fractionalized": true,
			"fraction_count":    input.FractionCount,
			"updated_at":        now,
		}).Error; err != nil {
			return fmt.Errorf("failed to fractionalize asset: %w", err)
		}

		rows := make([]schema.FractionHolding, 0, len(input.Holdings))
		for _, h := range input.Holdings {
			rows = append(rows, schema.FractionHolding{
				AssetID:        asset.ID,
				HolderAddress:  h.HolderAddress,
				HolderLabel:    h.HolderLabel,
				FractionAmount: h.FractionAmount,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create fraction holdings: %w", err)
		}

		if err := checkFractionSum(tx, asset.ID, input.FractionCount); err != nil {
			return err
		}

		meta := schema.FractionChangeMeta{
			Actor:         actor(ctx),
			Action:        schema.JournalActionFractionalized,
			FractionCount: input.FractionCount,
			Holdings:      holdingsMap(rows),
		}
		if err := writeJournal(ctx, tx, schema.SubjectTypeFraction, asset.ID, now, meta); err != nil {
			return err
		}

		holdings, err = getFractionHoldings(tx, asset.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return holdings, nil
}

// UpsertFractionHoldings replaces the full holding set of a fractionalized asset
func (s *pgStore) UpsertFractionHoldings(ctx context.Context, assetID uint64, holdings []FractionHoldingInput) ([]schema.FractionHolding, error) {
	if _, err := validateHoldings(holdings); err != nil {
		return nil, err
	}

	var result []schema.FractionHolding
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := lockAsset(tx, assetID)
		if err != nil {
			return err
		}

		if !asset.IsFractionalized || asset.FractionCount == nil {
			return fmt.Errorf("%w: asset %d is not fractionalized", domain.ErrInvalidTransition, asset.ID)
		}

		addresses := make([]string, 0, len(holdings))
		for _, h := range holdings {
			addresses = append(addresses, h.HolderAddress)
		}

		// Remove holders absent from the new set
		deleteQuery := tx.Where("asset_id = ?", asset.ID)
		if len(addresses) > 0 {
			deleteQuery = deleteQuery.Where("holder_address NOT IN ?", addresses)
		}
		if err := deleteQuery.Delete(&schema.FractionHolding{}).Error; err != nil {
			return fmt.Errorf("failed to delete fraction holdings: %w", err)
		}

		if len(holdings) > 0 {
			rows := make([]schema.FractionHolding, 0, len(holdings))
			for _, h := range holdings {
				rows = append(rows, schema.FractionHolding{
					AssetID:        asset.ID,
					HolderAddress:  h.HolderAddress,
					HolderLabel:    h.HolderLabel,
					FractionAmount: h.FractionAmount,
				})
			}

			if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "asset_id"}, {Name: "holder_address"}},
				DoUpdates: clause.Assignments(map[string]any{
					"fraction_amount": gorm.Expr("EXCLUDED.fraction_amount"),
					"holder_label":    gorm.Expr("COALESCE(EXCLUDED.holder_label, fraction_holdings.holder_label)"),
					"updated_at":      gorm.Expr("now()"),
				}),
			}).Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to upsert fraction holdings: %w", err)
			}
		}

		if err := checkFractionSum(tx, asset.ID, *asset.FractionCount); err != nil {
			return err
		}

		result, err = getFractionHoldings(tx, asset.ID)
		if err != nil {
			return err
		}

		meta := schema.FractionChangeMeta{
			Actor:         actor(ctx),
			Action:        schema.JournalActionHoldingsChanged,
			FractionCount: *asset.FractionCount,
			Holdings:      holdingsMap(result),
		}
		return writeJournal(ctx, tx, schema.SubjectTypeFraction, asset.ID, time.Now(), meta)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			logger.WarnCtx(ctx, "Fraction holdings write rolled back", zap.Uint64("asset_id", assetID), zap.Error(err))
		}
		return nil, err
	}

	return result, nil
}

// checkFractionSum re-reads the holding sum inside tx and compares it to the fraction count
func checkFractionSum(tx *gorm.DB, assetID uint64, fractionCount int64) error {
	var sum int64
	if err := tx.Model(&schema.FractionHolding{}).
		Where("asset_id = ?", assetID).
		Select("COALESCE(SUM(fraction_amount), 0)").
		Scan(&sum).Error; err != nil {
		return fmt.Errorf("failed to sum fraction holdings: %w", err)
	}
	if sum != fractionCount {
		return fmt.Errorf("%w: holdings of asset %d sum to %d, fraction count is %d", domain.ErrInvariantViolation, assetID, sum, fractionCount)
	}
	return nil
}

func holdingsMap(rows []schema.FractionHolding) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.HolderAddress] = r.FractionAmount
	}
	return m
}

func getFractionHoldings(db *gorm.DB, assetID uint64) ([]schema.FractionHolding, error) {
	var holdings []schema.FractionHolding
	err := db.Where("asset_id = ?", assetID).
		Order("fraction_amount DESC, holder_address ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get fraction holdings: %w", err)
	}
	return holdings, nil
}

// GetFractionHoldings retrieves the holdings of an asset, largest first
func (s *pgStore) GetFractionHoldings(ctx context.Context, assetID uint64) ([]schema.FractionHolding, error) {
	return getFractionHoldings(s.db.WithContext(ctx), assetID)
}

// WithAssetLock runs fn in one transaction holding SELECT ... FOR UPDATE on the asset row.
// Store calls made through tx join the transaction as savepoints.
func (s *pgStore) WithAssetLock(ctx context.Context, assetID uint64, fn AssetLockFunc) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := lockAsset(tx, assetID)
		if err != nil {
			return err
		}
		return fn(&pgStore{db: tx}, asset)
	})
}

// GetChanges retrieves changes journal entries ascending by cursor with the total count
func (s *pgStore) GetChanges(ctx context.Context, filter ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.ChangesJournal{})

	if filter.Anchor != nil {
		query = query.Where("\"cursor\" > ?", *filter.Anchor)
	}
	if len(filter.SubjectTypes) > 0 {
		query = query.Where("subject_type IN ?", filter.SubjectTypes)
	}
	if len(filter.SubjectIDs) > 0 {
		query = query.Where("subject_id IN ?", filter.SubjectIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count changes: %w", err)
	}

	query = query.Order("\"cursor\" ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var changes []schema.ChangesJournal
	if err := query.Find(&changes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query changes: %w", err)
	}

	results := make([]*schema.ChangesJournal, 0, len(changes))
	for i := range changes {
		results = append(results, &changes[i])
	}

	return results, uint64(total), nil //nolint:gosec,G115
}
