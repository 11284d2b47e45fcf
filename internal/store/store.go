package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// CreateAssetInput represents the data needed to issue an asset
type CreateAssetInput struct {
	Title          string
	ArtistDisplay  string
	Year           int
	EditionTotal   int
	ProvenanceText *string
	// OriginalHolderLabel defaults to ArtistDisplay when empty
	OriginalHolderLabel string
	AudioRef            *string
	// Verification defaults to domain.DEFAULT_VERIFICATION when empty
	Verification   string
	SettlementRule domain.SettlementRule
}

// Validate checks the issuance fields. An editionCap of 0 leaves edition_total unbounded above.
func (i CreateAssetInput) Validate(editionCap int) error {
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(i.ArtistDisplay) == "" {
		return fmt.Errorf("%w: artist_display is required", domain.ErrValidation)
	}
	if len(i.Title) > domain.MAX_LABEL_LENGTH || len(i.ArtistDisplay) > domain.MAX_LABEL_LENGTH || len(i.OriginalHolderLabel) > domain.MAX_LABEL_LENGTH {
		return fmt.Errorf("%w: text fields are limited to %d characters", domain.ErrValidation, domain.MAX_LABEL_LENGTH)
	}
	if i.Year <= 0 {
		return fmt.Errorf("%w: year must be positive, got %d", domain.ErrValidation, i.Year)
	}
	if i.EditionTotal < 1 || (editionCap > 0 && i.EditionTotal > editionCap) {
		return fmt.Errorf("%w: edition_total must be within [1, %d], got %d", domain.ErrValidation, editionCap, i.EditionTotal)
	}
	if !i.SettlementRule.Valid() {
		return fmt.Errorf("%w: unknown settlement rule %q", domain.ErrValidation, i.SettlementRule)
	}
	if i.AudioRef != nil && !validAudioExtension(*i.AudioRef) {
		return fmt.Errorf("%w: audio reference must end with one of %s", domain.ErrValidation, strings.Join(domain.AudioExtensions, ", "))
	}
	return nil
}

func validAudioExtension(ref string) bool {
	ext := strings.ToLower(filepath.Ext(ref))
	for _, allowed := range domain.AudioExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// UpdateAssetClearanceInput represents the fingerprinting result and the verdict derived from it
type UpdateAssetClearanceInput struct {
	AssetID         uint64
	ClearanceStatus domain.ClearanceStatus
	RiskScore       float64
	FingerprintHash string
	DurationSeconds float64
}

// CreateCustodyEventInput represents a custody transition to append
type CreateCustodyEventInput struct {
	AssetID    uint64
	From       string
	To         string
	OccurredAt time.Time
}

// CreateSettlementEventInput represents a settlement-triggering occurrence to append
type CreateSettlementEventInput struct {
	AssetID    uint64
	Kind       domain.SettlementKind
	OccurredAt time.Time
}

// FractionHoldingInput represents one holder's stake in a fraction ledger write
type FractionHoldingInput struct {
	HolderAddress  string
	HolderLabel    *string
	FractionAmount int64
}

// FractionalizeAssetInput represents the initial fraction ledger of an asset
type FractionalizeAssetInput struct {
	AssetID       uint64
	FractionCount int64
	Holdings      []FractionHoldingInput
}

// AssetQueryFilter represents filters for listing assets
type AssetQueryFilter struct {
	Statuses          []domain.AssetStatus
	ClearanceStatuses []domain.ClearanceStatus
	SettlementRules   []domain.SettlementRule
	Limit             int
	Offset            uint64
}

// ChangesQueryFilter represents filters for reading the changes journal
type ChangesQueryFilter struct {
	// Anchor returns entries with a cursor strictly greater than it
	Anchor       *uint64
	SubjectTypes []schema.SubjectType
	SubjectIDs   []string
	Limit        int
}

// AssetLockFunc runs inside the transaction that holds the asset row lock.
// tx must be used for every read and write belonging to the locked unit of work.
type AssetLockFunc func(tx Store, asset *schema.Asset) error

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for ledger database operations.
// Every mutation runs in one transaction holding the asset row lock and writes a changes journal entry.
type Store interface {
	// CreateAsset issues a new asset with status ISSUED and clearance UNCHECKED
	CreateAsset(ctx context.Context, input CreateAssetInput) (*schema.Asset, error)
	// GetAsset retrieves an asset by id, returning domain.ErrAssetNotFound when unknown
	GetAsset(ctx context.Context, assetID uint64) (*schema.Asset, error)
	// ListAssets retrieves assets newest first with the total count of matching rows
	ListAssets(ctx context.Context, filter AssetQueryFilter) ([]schema.Asset, uint64, error)

	// UpdateAssetClearance records the clearance verdict; only valid from UNCHECKED
	UpdateAssetClearance(ctx context.Context, input UpdateAssetClearanceInput) (*schema.Asset, error)
	// UpdateAssetStatus moves an asset to SETTLED; only valid from ISSUED
	UpdateAssetStatus(ctx context.Context, assetID uint64, status domain.AssetStatus) (*schema.Asset, error)
	// SetChainTxHash records the issuance transaction hash once; the asset must be CLEARED
	SetChainTxHash(ctx context.Context, assetID uint64, txHash string) (*schema.Asset, error)
	// SetFractionsTxHash records the fractionalization transaction hash once
	SetFractionsTxHash(ctx context.Context, assetID uint64, txHash string) (*schema.Asset, error)

	// AppendCustodyEvent appends a custody event
	AppendCustodyEvent(ctx context.Context, input CreateCustodyEventInput) (*schema.CustodyEvent, error)
	// GetLatestCustodyEvent retrieves the last custody event by (occurred_at, id), nil when the chain is empty
	GetLatestCustodyEvent(ctx context.Context, assetID uint64) (*schema.CustodyEvent, error)
	// GetCustodyEvents retrieves the custody chain ascending by (occurred_at, id)
	GetCustodyEvents(ctx context.Context, assetID uint64) ([]schema.CustodyEvent, error)

	// AppendSettlementEvent appends a settlement event
	AppendSettlementEvent(ctx context.Context, input CreateSettlementEventInput) (*schema.SettlementEvent, error)
	// GetSettlementEvents retrieves settlement events of an asset with pagination and the total count
	GetSettlementEvents(ctx context.Context, assetID uint64, limit int, offset uint64, orderDesc bool) ([]schema.SettlementEvent, uint64, error)
	// CountSettlementEvents counts settlement events of an asset, of every kind when kind is empty
	CountSettlementEvents(ctx context.Context, assetID uint64, kind domain.SettlementKind) (int64, error)

	// FractionalizeAsset fractionalizes a CLEARED asset once and writes its initial holdings
	FractionalizeAsset(ctx context.Context, input FractionalizeAssetInput) ([]schema.FractionHolding, error)
	// UpsertFractionHoldings replaces the full holding set of a fractionalized asset.
	// Holders absent from holdings are removed. The sum must equal fraction_count.
	UpsertFractionHoldings(ctx context.Context, assetID uint64, holdings []FractionHoldingInput) ([]schema.FractionHolding, error)
	// GetFractionHoldings retrieves the holdings of an asset, largest first
	GetFractionHoldings(ctx context.Context, assetID uint64) ([]schema.FractionHolding, error)

	// WithAssetLock runs fn in one transaction holding SELECT ... FOR UPDATE on the asset row
	WithAssetLock(ctx context.Context, assetID uint64, fn AssetLockFunc) error

	// GetChanges retrieves changes journal entries ascending by cursor with the total count
	GetChanges(ctx context.Context, filter ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error)
}
