package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/issuance-vault/ledger/internal/api/shared/constants"
	apierrors "github.com/issuance-vault/ledger/internal/api/shared/errors"
	"github.com/issuance-vault/ledger/internal/domain"
)

// IssueAssetRequest represents the request body for issuing an asset.
// Field limits are enforced by the ledger so the rules live in one place.
type IssueAssetRequest struct {
	Title               string                `json:"title"`
	ArtistDisplay       string                `json:"artist_display"`
	Year                int                   `json:"year"`
	EditionTotal        int                   `json:"edition_total"`
	ProvenanceText      *string               `json:"provenance_text,omitempty"`
	OriginalHolderLabel string                `json:"original_holder_label,omitempty"`
	AudioRef            *string               `json:"audio_ref,omitempty"`
	Verification        string                `json:"verification,omitempty"`
	SettlementRule      domain.SettlementRule `json:"settlement_rule,omitempty"`
}

// Validate validates the request body
func (r *IssueAssetRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return apierrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(r.ArtistDisplay) == "" {
		return apierrors.NewValidationError("artist_display is required")
	}
	if r.SettlementRule != "" && !r.SettlementRule.Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("invalid settlement_rule: %s", r.SettlementRule))
	}
	return nil
}

// ClearanceRequest carries the fingerprinting result of an asset
type ClearanceRequest struct {
	FingerprintHash string   `json:"fingerprint_hash"`
	DurationSeconds *float64 `json:"duration_seconds"`
	RiskScore       *float64 `json:"risk_score"`
}

// Validate validates the request body
func (r *ClearanceRequest) Validate() error {
	if strings.TrimSpace(r.FingerprintHash) == "" {
		return apierrors.NewValidationError("fingerprint_hash is required")
	}
	if r.DurationSeconds == nil {
		return apierrors.NewValidationError("duration_seconds is required")
	}
	if r.RiskScore == nil {
		return apierrors.NewValidationError("risk_score is required")
	}
	return nil
}

// TxHashRequest records a blockchain transaction hash
type TxHashRequest struct {
	TxHash string `json:"tx_hash"`
}

// Validate validates the request body
func (r *TxHashRequest) Validate() error {
	if strings.TrimSpace(r.TxHash) == "" {
		return apierrors.NewValidationError("tx_hash is required")
	}
	return nil
}

// CustodyTransferRequest represents the request body for recording a custody transfer
type CustodyTransferRequest struct {
	FromHolderLabel string     `json:"from_holder_label"`
	ToHolderLabel   string     `json:"to_holder_label"`
	OccurredAt      *time.Time `json:"occurred_at,omitempty"` // Defaults to now
}

// Validate validates the request body
func (r *CustodyTransferRequest) Validate() error {
	if strings.TrimSpace(r.FromHolderLabel) == "" {
		return apierrors.NewValidationError("from_holder_label is required")
	}
	if strings.TrimSpace(r.ToHolderLabel) == "" {
		return apierrors.NewValidationError("to_holder_label is required")
	}
	return nil
}

// SettlementEventRequest represents the request body for recording a settlement event or settling manually
type SettlementEventRequest struct {
	Kind       domain.SettlementKind `json:"kind"`
	OccurredAt *time.Time            `json:"occurred_at,omitempty"` // Defaults to now
}

// Validate validates the request body
func (r *SettlementEventRequest) Validate() error {
	if !r.Kind.Valid() {
		return apierrors.NewValidationError("kind must be PLAY or TRANSFER")
	}
	return nil
}

// HolderShareRequest is one holder's initial allocation
type HolderShareRequest struct {
	HolderAddress  string  `json:"holder_address"`
	HolderLabel    *string `json:"holder_label,omitempty"`
	FractionAmount int64   `json:"fraction_amount"`
}

// FractionalizeRequest represents the request body for fractionalizing an asset.
// Either the initial holder receives every fraction or distribution splits them.
type FractionalizeRequest struct {
	FractionCount        int64                `json:"fraction_count"`
	InitialHolderAddress string               `json:"initial_holder_address,omitempty"`
	InitialHolderLabel   *string              `json:"initial_holder_label,omitempty"`
	Distribution         []HolderShareRequest `json:"distribution,omitempty"`
}

// Validate validates the request body
func (r *FractionalizeRequest) Validate() error {
	if r.FractionCount <= 0 {
		return apierrors.NewValidationError("fraction_count is required")
	}
	if len(r.Distribution) == 0 && strings.TrimSpace(r.InitialHolderAddress) == "" {
		return apierrors.NewValidationError("initial_holder_address or distribution is required")
	}
	if len(r.Distribution) > 0 && r.InitialHolderAddress != "" {
		return apierrors.NewValidationError("initial_holder_address and distribution are mutually exclusive")
	}
	if len(r.Distribution) > constants.MAX_DISTRIBUTION_HOLDERS {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d holders allowed in distribution", constants.MAX_DISTRIBUTION_HOLDERS))
	}
	return nil
}

// FractionTransferRequest represents the request body for transferring fractions
type FractionTransferRequest struct {
	FromAddress string  `json:"from_address"`
	ToAddress   string  `json:"to_address"`
	Amount      int64   `json:"amount"`
	ToLabel     *string `json:"to_label,omitempty"`
}

// Validate validates the request body
func (r *FractionTransferRequest) Validate() error {
	if strings.TrimSpace(r.FromAddress) == "" {
		return apierrors.NewValidationError("from_address is required")
	}
	if strings.TrimSpace(r.ToAddress) == "" {
		return apierrors.NewValidationError("to_address is required")
	}
	if r.Amount <= 0 {
		return apierrors.NewValidationError("amount must be positive")
	}
	return nil
}
