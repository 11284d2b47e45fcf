package schema

import "time"

// CustodyEvent represents the custody_events table - one holder-to-holder transition of an asset
type CustodyEvent struct {
	// ID is the internal database primary key; breaks ties between equal occurred_at values
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the asset being transferred
	AssetID uint64 `gorm:"column:asset_id;not null;index:idx_custody_events_asset_occurred,priority:1"`
	// FromHolderLabel is the holder releasing custody
	FromHolderLabel string `gorm:"column:from_holder_label;not null;type:varchar(255)"`
	// ToHolderLabel is the holder receiving custody
	ToHolderLabel string `gorm:"column:to_holder_label;not null;type:varchar(255)"`
	// OccurredAt is when the transfer happened
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz;index:idx_custody_events_asset_occurred,priority:2"`
	// CreatedAt is the timestamp when this record was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Asset Asset `gorm:"foreignKey:AssetID"`
}

// TableName specifies the table name for the CustodyEvent model
func (CustodyEvent) TableName() string {
	return "custody_events"
}
