package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/issuance-vault/ledger/internal/store/schema"
)

//go:generate mockgen -source=cursor_store.go -destination=../mocks/cursor_store.go -package=mocks -mock_names=CursorStore=MockCursorStore

// CursorStore defines the interface for storing and retrieving changes journal cursors
type CursorStore interface {
	// GetJournalCursor retrieves the last relayed journal cursor for a consumer
	GetJournalCursor(ctx context.Context, consumer string) (uint64, error)
	// SetJournalCursor stores the last relayed journal cursor for a consumer
	SetJournalCursor(ctx context.Context, consumer string, cursor uint64) error
}

type cursorStore struct {
	db *gorm.DB
}

// NewCursorStore creates a new cursor store
func NewCursorStore(db *gorm.DB) CursorStore {
	return &cursorStore{db: db}
}

func journalCursorKey(consumer string) string {
	return fmt.Sprintf("journal_cursor:%s", consumer)
}

// GetJournalCursor retrieves the last relayed journal cursor for a consumer
func (s *cursorStore) GetJournalCursor(ctx context.Context, consumer string) (uint64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", journalCursorKey(consumer)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Nothing relayed yet
		}
		return 0, fmt.Errorf("failed to get journal cursor: %w", err)
	}

	cursor, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse journal cursor: %w", err)
	}

	return cursor, nil
}

// SetJournalCursor stores the last relayed journal cursor for a consumer
func (s *cursorStore) SetJournalCursor(ctx context.Context, consumer string, cursor uint64) error {
	kv := schema.KeyValueStore{
		Key:   journalCursorKey(consumer),
		Value: strconv.FormatUint(cursor, 10),
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set journal cursor: %w", err)
	}

	return nil
}
