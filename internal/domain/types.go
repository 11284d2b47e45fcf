package domain

import (
	"context"
	"time"
)

// SettlementRule declares when an issued asset becomes economically settled
type SettlementRule string

const (
	// SettlementRuleImmediate settles as soon as clearance is granted
	SettlementRuleImmediate SettlementRule = "IMMEDIATE"
	// SettlementRuleOnFirstPlay settles on the first completed play after clearance
	SettlementRuleOnFirstPlay SettlementRule = "ON_FIRST_PLAY"
	// SettlementRuleOnTransfer settles on the first transfer after clearance
	SettlementRuleOnTransfer SettlementRule = "ON_TRANSFER"
	// SettlementRuleCustom never settles automatically, only through an explicit settlement call
	SettlementRuleCustom SettlementRule = "CUSTOM"
)

// Valid reports whether the rule is one of the known settlement rules
func (r SettlementRule) Valid() bool {
	switch r {
	case SettlementRuleImmediate, SettlementRuleOnFirstPlay, SettlementRuleOnTransfer, SettlementRuleCustom:
		return true
	}
	return false
}

// AssetStatus is the settlement state of an asset
type AssetStatus string

const (
	// AssetStatusIssued is the initial status of every asset
	AssetStatusIssued AssetStatus = "ISSUED"
	// AssetStatusSettled is terminal
	AssetStatusSettled AssetStatus = "SETTLED"
)

// Valid reports whether the status is known
func (s AssetStatus) Valid() bool {
	return s == AssetStatusIssued || s == AssetStatusSettled
}

// ClearanceStatus is the rights-clearance verdict for an asset
type ClearanceStatus string

const (
	// ClearanceStatusUnchecked means no fingerprinting result has been consumed yet
	ClearanceStatusUnchecked ClearanceStatus = "UNCHECKED"
	// ClearanceStatusCleared means the recording may settle and be fractionalized
	ClearanceStatusCleared ClearanceStatus = "CLEARED"
	// ClearanceStatusFlagged means the recording matched a rights risk and is blocked
	ClearanceStatusFlagged ClearanceStatus = "FLAGGED"
)

// Valid reports whether the clearance status is known
func (s ClearanceStatus) Valid() bool {
	switch s {
	case ClearanceStatusUnchecked, ClearanceStatusCleared, ClearanceStatusFlagged:
		return true
	}
	return false
}

// Final reports whether the clearance status can no longer change
func (s ClearanceStatus) Final() bool {
	return s == ClearanceStatusCleared || s == ClearanceStatusFlagged
}

// SettlementKind is the kind of occurrence recorded as a settlement event
type SettlementKind string

const (
	// SettlementKindPlay is a completed playback
	SettlementKindPlay SettlementKind = "PLAY"
	// SettlementKindTransfer is a custody transfer or manual transfer trigger
	SettlementKindTransfer SettlementKind = "TRANSFER"
)

// Valid reports whether the kind is known
func (k SettlementKind) Valid() bool {
	return k == SettlementKindPlay || k == SettlementKindTransfer
}

// ClearanceVerdict decides clearance from an externally computed risk score.
// Scores strictly below the threshold are cleared.
func ClearanceVerdict(riskScore, flagThreshold float64) ClearanceStatus {
	if riskScore < flagThreshold {
		return ClearanceStatusCleared
	}
	return ClearanceStatusFlagged
}

// Percentage derives a holder's share of a fractionalized asset.
// It is never persisted.
func Percentage(fractionAmount, fractionCount int64) float64 {
	if fractionCount <= 0 {
		return 0
	}
	return float64(fractionAmount) / float64(fractionCount) * 100
}

// Principal identifies the authenticated caller of a ledger operation
type Principal struct {
	// AuthType is "jwt" or "apikey"
	AuthType string
	// Subject is the JWT subject, empty for API keys
	Subject string
}

// Actor returns the label recorded in the changes journal for this principal
func (p Principal) Actor() string {
	if p.Subject != "" {
		return p.Subject
	}
	if p.AuthType != "" {
		return p.AuthType
	}
	return "anonymous"
}

type principalKey struct{}

// WithPrincipal returns a context carrying the principal for journal attribution
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal carried by ctx, or the zero principal
func PrincipalFromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok {
		return p
	}
	return Principal{}
}

// LedgerEvent is the envelope published for every changes journal entry
type LedgerEvent struct {
	EventID     string         `json:"event_id"`
	Cursor      uint64         `json:"cursor"`
	SubjectType string         `json:"subject_type"`
	SubjectID   string         `json:"subject_id"`
	ChangedAt   time.Time      `json:"changed_at"`
	Meta        map[string]any `json:"meta,omitempty"`
}
