package dto

import (
	"time"

	"github.com/issuance-vault/ledger/internal/store/schema"
)

// FractionHoldingResponse represents one holder's stake with its derived percentage
type FractionHoldingResponse struct {
	HolderAddress  string    `json:"holder_address"`
	HolderLabel    *string   `json:"holder_label,omitempty"`
	FractionAmount int64     `json:"fraction_amount"`
	Percentage     float64   `json:"percentage"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FractionHoldingListResponse represents the fraction ledger of an asset
type FractionHoldingListResponse struct {
	AssetID       uint64                    `json:"asset_id"`
	FractionCount int64                     `json:"fraction_count"`
	Holdings      []FractionHoldingResponse `json:"items"`
}

// MapFractionHoldingsToDTO maps holdings to the fraction ledger response
func MapFractionHoldingsToDTO(assetID uint64, fractionCount int64, holdings []schema.FractionHolding) *FractionHoldingListResponse {
	resp := &FractionHoldingListResponse{
		AssetID:       assetID,
		FractionCount: fractionCount,
		Holdings:      make([]FractionHoldingResponse, len(holdings)),
	}
	for i := range holdings {
		h := &holdings[i]
		resp.Holdings[i] = FractionHoldingResponse{
			HolderAddress:  h.HolderAddress,
			HolderLabel:    h.HolderLabel,
			FractionAmount: h.FractionAmount,
			Percentage:     h.Percentage(fractionCount),
			UpdatedAt:      h.UpdatedAt,
		}
	}
	return resp
}
