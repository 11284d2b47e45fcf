package dto

import (
	"time"

	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// CustodyEventResponse represents one custody transition
type CustodyEventResponse struct {
	ID              uint64    `json:"id"`
	AssetID         uint64    `json:"asset_id"`
	FromHolderLabel string    `json:"from_holder_label"`
	ToHolderLabel   string    `json:"to_holder_label"`
	OccurredAt      time.Time `json:"occurred_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// CustodyChainResponse represents the custody chain of an asset
type CustodyChainResponse struct {
	Events        []CustodyEventResponse `json:"items"`
	CurrentHolder string                 `json:"current_holder"`
}

// CustodyTransferResponse represents a recorded custody transfer
type CustodyTransferResponse struct {
	Event           CustodyEventResponse     `json:"event"`
	SettlementEvent *SettlementEventResponse `json:"settlement_event,omitempty"`
	Settled         bool                     `json:"settled"` // The transfer settled the asset
	Asset           AssetResponse            `json:"asset"`
}

// SettlementEventResponse represents one settlement-triggering occurrence
type SettlementEventResponse struct {
	ID         uint64                `json:"id"`
	AssetID    uint64                `json:"asset_id"`
	Kind       domain.SettlementKind `json:"kind"`
	OccurredAt time.Time             `json:"occurred_at"`
	CreatedAt  time.Time             `json:"created_at"`
}

// SettlementEventListResponse represents a paginated list of settlement events
type SettlementEventListResponse struct {
	Events []SettlementEventResponse `json:"items"`
	Offset *uint64                   `json:"offset,omitempty"` // Offset for the next page
	Total  uint64                    `json:"total"`
}

// SettlementResponse represents a recorded settlement event and the asset after the rule ran
type SettlementResponse struct {
	Event   *SettlementEventResponse `json:"event,omitempty"`
	Settled bool                     `json:"settled"` // This call moved the asset to SETTLED
	Asset   AssetResponse            `json:"asset"`
}

// MapCustodyEventToDTO maps a schema.CustodyEvent to CustodyEventResponse
func MapCustodyEventToDTO(event *schema.CustodyEvent) *CustodyEventResponse {
	return &CustodyEventResponse{
		ID:              event.ID,
		AssetID:         event.AssetID,
		FromHolderLabel: event.FromHolderLabel,
		ToHolderLabel:   event.ToHolderLabel,
		OccurredAt:      event.OccurredAt,
		CreatedAt:       event.CreatedAt,
	}
}

// MapSettlementEventToDTO maps a schema.SettlementEvent to SettlementEventResponse
func MapSettlementEventToDTO(event *schema.SettlementEvent) *SettlementEventResponse {
	if event == nil {
		return nil
	}
	return &SettlementEventResponse{
		ID:         event.ID,
		AssetID:    event.AssetID,
		Kind:       event.Kind,
		OccurredAt: event.OccurredAt,
		CreatedAt:  event.CreatedAt,
	}
}
