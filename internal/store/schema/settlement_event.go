package schema

import (
	"time"

	"github.com/issuance-vault/ledger/internal/domain"
)

// SettlementEvent represents the settlement_events table - one settlement-triggering occurrence
type SettlementEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the asset the occurrence relates to
	AssetID uint64 `gorm:"column:asset_id;not null;index:idx_settlement_events_asset_kind,priority:1"`
	// Kind is PLAY or TRANSFER
	Kind domain.SettlementKind `gorm:"column:kind;not null;type:varchar(50);index:idx_settlement_events_asset_kind,priority:2"`
	// OccurredAt is when the occurrence happened
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this record was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Asset Asset `gorm:"foreignKey:AssetID"`
}

// TableName specifies the table name for the SettlementEvent model
func (SettlementEvent) TableName() string {
	return "settlement_events"
}
