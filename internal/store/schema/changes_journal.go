package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/issuance-vault/ledger/internal/domain"
)

// SubjectType represents the type of entity that was changed
type SubjectType string

const (
	// SubjectTypeAsset indicates an asset was issued or its status / tx hashes changed
	SubjectTypeAsset SubjectType = "asset"
	// SubjectTypeClearance indicates a clearance verdict was recorded
	SubjectTypeClearance SubjectType = "clearance"
	// SubjectTypeSettlement indicates a settlement event was appended
	SubjectTypeSettlement SubjectType = "settlement"
	// SubjectTypeCustody indicates a custody event was appended
	SubjectTypeCustody SubjectType = "custody"
	// SubjectTypeFraction indicates the fraction ledger of an asset changed
	SubjectTypeFraction SubjectType = "fraction"
)

// Valid reports whether the subject type is known
func (s SubjectType) Valid() bool {
	switch s {
	case SubjectTypeAsset, SubjectTypeClearance, SubjectTypeSettlement, SubjectTypeCustody, SubjectTypeFraction:
		return true
	}
	return false
}

// ChangesJournal represents the changes_journal table - audit log of every ledger mutation
type ChangesJournal struct {
	// Cursor is an auto-incrementing sequence number for efficient pagination and ordering
	Cursor uint64 `gorm:"column:\"cursor\";primaryKey;autoIncrement"`
	// SubjectType identifies what kind of entity changed
	SubjectType SubjectType `gorm:"column:subject_type;not null;type:text"`
	// SubjectID is the identifier of the changed entity (always the asset id)
	SubjectID string `gorm:"column:subject_id;not null;type:text"`
	// ChangedAt is the timestamp when the change occurred
	ChangedAt time.Time `gorm:"column:changed_at;not null;default:now();type:timestamptz"`
	// Meta contains additional context about the change as JSON
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
}

// TableName specifies the table name for the ChangesJournal model
func (ChangesJournal) TableName() string {
	return "changes_journal"
}

// AssetChangeMeta is the journal meta for issuance, status and tx hash changes
type AssetChangeMeta struct {
	Actor           string                 `json:"actor,omitempty"`
	Action          string                 `json:"action"`
	Status          domain.AssetStatus     `json:"status,omitempty"`
	SettlementRule  domain.SettlementRule  `json:"settlement_rule,omitempty"`
	ChainTxHash     string                 `json:"chain_tx_hash,omitempty"`
	FractionsTxHash string                 `json:"fractions_tx_hash,omitempty"`
	ClearanceStatus domain.ClearanceStatus `json:"clearance_status,omitempty"`
}

// ClearanceChangeMeta is the journal meta for a clearance verdict
type ClearanceChangeMeta struct {
	Actor           string                 `json:"actor,omitempty"`
	ClearanceStatus domain.ClearanceStatus `json:"clearance_status"`
	RiskScore       float64                `json:"risk_score"`
	FingerprintHash string                 `json:"fingerprint_hash"`
	DurationSeconds float64                `json:"duration_seconds"`
}

// SettlementChangeMeta is the journal meta for an appended settlement event
type SettlementChangeMeta struct {
	Actor             string                `json:"actor,omitempty"`
	SettlementEventID uint64                `json:"settlement_event_id"`
	Kind              domain.SettlementKind `json:"kind"`
	OccurredAt        time.Time             `json:"occurred_at"`
}

// CustodyChangeMeta is the journal meta for an appended custody event
type CustodyChangeMeta struct {
	Actor          string    `json:"actor,omitempty"`
	CustodyEventID uint64    `json:"custody_event_id"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// FractionChangeMeta is the journal meta for fractionalization and fraction transfers
type FractionChangeMeta struct {
	Actor         string           `json:"actor,omitempty"`
	Action        string           `json:"action"`
	FractionCount int64            `json:"fraction_count"`
	Holdings      map[string]int64 `json:"holdings"`
}

// Journal actions recorded in meta
const (
	JournalActionIssued          = "issued"
	JournalActionSettled         = "settled"
	JournalActionChainTxHash     = "chain_tx_hash"
	JournalActionFractionsTxHash = "fractions_tx_hash"
	JournalActionFractionalized  = "fractionalized"
	JournalActionHoldingsChanged = "holdings_changed"
)
