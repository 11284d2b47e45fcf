package settlement

import "github.com/issuance-vault/ledger/internal/domain"

// TriggerKind returns the event kind a first-event rule reacts to.
// IMMEDIATE and CUSTOM react to no particular kind and return "".
func TriggerKind(rule domain.SettlementRule) domain.SettlementKind {
	switch rule {
	case domain.SettlementRuleOnFirstPlay:
		return domain.SettlementKindPlay
	case domain.SettlementRuleOnTransfer:
		return domain.SettlementKindTransfer
	default:
		return ""
	}
}

// ShouldSettle reports whether recording an event of kind moves an asset to SETTLED.
// priorKindCount is the number of events of kind the asset already had before this one.
// Clearance gating is absolute: nothing settles unless the asset is CLEARED and still ISSUED.
// A first-event rule fires only on the very first event of its kind, so an event recorded
// before clearance uses up the trigger.
func ShouldSettle(rule domain.SettlementRule, clearance domain.ClearanceStatus, status domain.AssetStatus, kind domain.SettlementKind, priorKindCount int64) bool {
	if status != domain.AssetStatusIssued || clearance != domain.ClearanceStatusCleared {
		return false
	}

	switch rule {
	case domain.SettlementRuleImmediate:
		// Cleared IMMEDIATE assets settle on clearance; any later event only catches up
		return true
	case domain.SettlementRuleOnFirstPlay, domain.SettlementRuleOnTransfer:
		return kind == TriggerKind(rule) && priorKindCount == 0
	default:
		// CUSTOM settles only through an explicit call
		return false
	}
}

// SettlesOnClearance reports whether granting clearance settles an asset by itself
func SettlesOnClearance(rule domain.SettlementRule, clearance domain.ClearanceStatus, status domain.AssetStatus) bool {
	return rule == domain.SettlementRuleImmediate &&
		clearance == domain.ClearanceStatusCleared &&
		status == domain.AssetStatusIssued
}
