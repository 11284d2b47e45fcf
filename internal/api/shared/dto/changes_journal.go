package dto

import (
	"encoding/json"
	"time"

	"github.com/issuance-vault/ledger/internal/store/schema"
)

// ChangeResponse represents a change journal entry
type ChangeResponse struct {
	Cursor      uint64             `json:"cursor"`
	SubjectType schema.SubjectType `json:"subject_type"`
	SubjectID   string             `json:"subject_id"`
	ChangedAt   time.Time          `json:"changed_at"`
	Meta        json.RawMessage    `json:"meta,omitempty"`
}

// ChangeListResponse represents a page of the changes journal
type ChangeListResponse struct {
	Changes    []ChangeResponse `json:"items"`
	NextAnchor *uint64          `json:"next_anchor,omitempty"` // Cursor to pass as anchor for the next page
	Total      uint64           `json:"total"`                 // Entries after the anchor, including this page
}

// MapChangeToDTO maps a schema.ChangesJournal to ChangeResponse
func MapChangeToDTO(change *schema.ChangesJournal) *ChangeResponse {
	dto := &ChangeResponse{
		Cursor:      change.Cursor,
		SubjectType: change.SubjectType,
		SubjectID:   change.SubjectID,
		ChangedAt:   change.ChangedAt,
	}

	if change.Meta != nil {
		dto.Meta = json.RawMessage(change.Meta)
	}

	return dto
}
