package dto

import (
	"time"

	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// AssetResponse represents an issued asset
type AssetResponse struct {
	ID                  uint64                 `json:"id"`
	Title               string                 `json:"title"`
	ArtistDisplay       string                 `json:"artist_display"`
	Year                int                    `json:"year"`
	EditionTotal        int                    `json:"edition_total"`
	DurationSeconds     *float64               `json:"duration_seconds,omitempty"`
	ProvenanceText      *string                `json:"provenance_text,omitempty"`
	OriginalHolderLabel string                 `json:"original_holder_label"`
	AudioRef            *string                `json:"audio_ref,omitempty"`
	Verification        string                 `json:"verification"`
	SettlementRule      domain.SettlementRule  `json:"settlement_rule"`
	Status              domain.AssetStatus     `json:"status"`
	ClearanceStatus     domain.ClearanceStatus `json:"clearance_status"`
	RiskScore           *float64               `json:"risk_score,omitempty"`
	FingerprintHash     *string                `json:"fingerprint_hash,omitempty"`
	ChainTxHash         *string                `json:"chain_tx_hash,omitempty"`
	FractionsTxHash     *string                `json:"fractions_tx_hash,omitempty"`
	IsFractionalized    bool                   `json:"is_fractionalized"`
	FractionCount       *int64                 `json:"fraction_count,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// AssetListResponse represents a paginated list of assets
type AssetListResponse struct {
	Assets []AssetResponse `json:"items"`
	Offset *uint64         `json:"offset,omitempty"` // Offset for the next page
	Total  uint64          `json:"total"`
}

// ClearanceResponse represents the outcome of a clearance evaluation
type ClearanceResponse struct {
	ClearanceStatus domain.ClearanceStatus `json:"clearance_status"`
	Settled         bool                   `json:"settled"` // The evaluation settled the asset
	Asset           AssetResponse          `json:"asset"`
}

// MapAssetToDTO maps a schema.Asset to AssetResponse
func MapAssetToDTO(asset *schema.Asset) *AssetResponse {
	return &AssetResponse{
		ID:                  asset.ID,
		Title:               asset.Title,
		ArtistDisplay:       asset.ArtistDisplay,
		Year:                asset.Year,
		EditionTotal:        asset.EditionTotal,
		DurationSeconds:     asset.DurationSeconds,
		ProvenanceText:      asset.ProvenanceText,
		OriginalHolderLabel: asset.OriginalHolderLabel,
		AudioRef:            asset.AudioRef,
		Verification:        asset.Verification,
		SettlementRule:      asset.SettlementRule,
		Status:              asset.Status,
		ClearanceStatus:     asset.ClearanceStatus,
		RiskScore:           asset.RiskScore,
		FingerprintHash:     asset.FingerprintHash,
		ChainTxHash:         asset.ChainTxHash,
		FractionsTxHash:     asset.FractionsTxHash,
		IsFractionalized:    asset.IsFractionalized,
		FractionCount:       asset.FractionCount,
		CreatedAt:           asset.CreatedAt,
		UpdatedAt:           asset.UpdatedAt,
	}
}
