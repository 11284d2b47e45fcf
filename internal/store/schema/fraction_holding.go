package schema

import (
	"time"

	"github.com/issuance-vault/ledger/internal/domain"
)

// FractionHolding represents the fraction_holdings table - one holder's stake in a fractionalized asset.
// The percentage is not stored; see Percentage.
type FractionHolding struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the fractionalized asset
	AssetID uint64 `gorm:"column:asset_id;not null;uniqueIndex:idx_fraction_holdings_asset_holder,priority:1"`
	// HolderAddress is the opaque holder identifier, unique per asset
	HolderAddress string `gorm:"column:holder_address;not null;type:text;uniqueIndex:idx_fraction_holdings_asset_holder,priority:2"`
	// HolderLabel is an optional display name
	HolderLabel *string `gorm:"column:holder_label;type:varchar(255)"`
	// FractionAmount is the number of fractions held, always > 0
	FractionAmount int64 `gorm:"column:fraction_amount;not null"`
	// CreatedAt is the timestamp when this holding was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this holding was last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Asset Asset `gorm:"foreignKey:AssetID"`
}

// TableName specifies the table name for the FractionHolding model
func (FractionHolding) TableName() string {
	return "fraction_holdings"
}

// Percentage derives the holder's share from the asset's fraction count
func (h *FractionHolding) Percentage(fractionCount int64) float64 {
	return domain.Percentage(h.FractionAmount, fractionCount)
}
