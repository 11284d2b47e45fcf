package schema

import (
	"time"

	"github.com/issuance-vault/ledger/internal/domain"
)

// Asset represents the assets table - one issued sound recording edition
type Asset struct {
	// ID is the internal database primary key, immutable once issued
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Title is the recording title
	Title string `gorm:"column:title;not null;type:varchar(255)"`
	// ArtistDisplay is the artist display name
	ArtistDisplay string `gorm:"column:artist_display;not null;type:varchar(255)"`
	// Year is the recording year
	Year int `gorm:"column:year;not null"`
	// EditionTotal is the number of editions issued (1..edition cap)
	EditionTotal int `gorm:"column:edition_total;not null;default:1"`
	// DurationSeconds is supplied by fingerprinting (nil until clearance)
	DurationSeconds *float64 `gorm:"column:duration_seconds"`
	// ProvenanceText is free text describing the recording's provenance
	ProvenanceText *string `gorm:"column:provenance_text;type:text"`
	// OriginalHolderLabel is the holder of record at issuance; the custody chain starts here
	OriginalHolderLabel string `gorm:"column:original_holder_label;not null;type:varchar(255)"`
	// AudioRef is an opaque reference to the stored audio file
	AudioRef *string `gorm:"column:audio_ref;type:text"`
	// Verification is the recorded verification status of the issuer
	Verification string `gorm:"column:verification;not null;type:varchar(100)"`
	// SettlementRule declares when the asset settles
	SettlementRule domain.SettlementRule `gorm:"column:settlement_rule;not null;type:varchar(50)"`
	// Status is ISSUED or SETTLED (terminal)
	Status domain.AssetStatus `gorm:"column:status;not null;type:varchar(50);index:idx_assets_status"`
	// ClearanceStatus is UNCHECKED until the clearance evaluator runs once
	ClearanceStatus domain.ClearanceStatus `gorm:"column:clearance_status;not null;type:varchar(50);index:idx_assets_clearance_status"`
	// RiskScore is the externally computed rights risk in [0,1]
	RiskScore *float64 `gorm:"column:risk_score"`
	// FingerprintHash is set at most once
	FingerprintHash *string `gorm:"column:fingerprint_hash;type:varchar(128)"`
	// ChainTxHash is the issuance transaction hash, set at most once
	ChainTxHash *string `gorm:"column:chain_tx_hash;type:varchar(128)"`
	// FractionsTxHash is the fractionalization transaction hash, set at most once
	FractionsTxHash *string `gorm:"column:fractions_tx_hash;type:varchar(128)"`
	// IsFractionalized flips false -> true exactly once
	IsFractionalized bool `gorm:"column:is_fractionalized;not null;default:false"`
	// FractionCount is the fixed total supply of fractions once fractionalized
	FractionCount *int64 `gorm:"column:fraction_count"`
	// CreatedAt is the issuance timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last state change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}

// Settled reports whether the asset reached its terminal status
func (a *Asset) Settled() bool {
	return a.Status == domain.AssetStatusSettled
}

// Cleared reports whether the asset passed clearance
func (a *Asset) Cleared() bool {
	return a.ClearanceStatus == domain.ClearanceStatusCleared
}
