package relay

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/issuance-vault/ledger/internal/adapter"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/messaging"
	"github.com/issuance-vault/ledger/internal/metrics"
	"github.com/issuance-vault/ledger/internal/store"
	"github.com/issuance-vault/ledger/internal/store/schema"
)

// Config holds the journal relay configuration
type Config struct {
	Consumer        string        // Cursor name in the key value store
	BatchSize       int           // Journal entries read per poll
	PollInterval    time.Duration // Sleep between polls when the journal is drained
	WorkerPoolSize  int           // Concurrent publishes per batch
	MaxElapsedTime  time.Duration // Retry budget of one publish
	InitialInterval time.Duration // First retry delay, 500ms when zero
}

// Relay forwards changes journal entries to the message broker
type Relay interface {
	// Start polls the journal until the context is canceled or Stop is called
	Start(ctx context.Context) error
	// Stop waits for the in-flight batch to finish
	Stop(ctx context.Context) error
	// Name returns the relay's name for logging
	Name() string
	// RelayBatch publishes the next batch after the cursor and returns how many entries were relayed
	RelayBatch(ctx context.Context) (int, error)
}

type journalRelay struct {
	config    Config
	store     store.Store
	cursors   store.CursorStore
	publisher messaging.Publisher
	json      adapter.JSON
	clock     adapter.Clock
	metrics   *metrics.LedgerMetrics
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewRelay creates a journal relay
func NewRelay(
	config Config,
	st store.Store,
	cursors store.CursorStore,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
	m *metrics.LedgerMetrics,
) Relay {
	return &journalRelay{
		config:    config,
		store:     st,
		cursors:   cursors,
		publisher: publisher,
		json:      jsonAdapter,
		clock:     clock,
		metrics:   m,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (r *journalRelay) Name() string {
	return "journal-relay"
}

func (r *journalRelay) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("relay already running")
	}
	defer func() {
		r.running.Store(false)
		close(r.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting journal relay",
		zap.String("consumer", r.config.Consumer),
		zap.Int("batch_size", r.config.BatchSize),
		zap.Int("worker_pool_size", r.config.WorkerPoolSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Journal relay stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Journal relay stop requested")
			return nil
		default:
		}

		relayed, err := r.RelayBatch(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		// Drain a backlog without sleeping
		if err == nil && relayed == r.config.BatchSize {
			continue
		}
		if !r.sleep(ctx, r.config.PollInterval) {
			return nil
		}
	}
}

func (r *journalRelay) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping journal relay")
	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Journal relay stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Journal relay stop interrupted by context timeout")
		return ctx.Err()
	}
}

// sleep returns false when interrupted
func (r *journalRelay) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-r.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-r.stopChan:
		return false
	}
}

func (r *journalRelay) RelayBatch(ctx context.Context) (int, error) {
	cursor, err := r.cursors.GetJournalCursor(ctx, r.config.Consumer)
	if err != nil {
		return 0, err
	}

	// Journal writers commit in cursor order, so advancing past the last visible cursor skips nothing
	changes, _, err := r.store.GetChanges(ctx, store.ChangesQueryFilter{
		Anchor: &cursor,
		Limit:  r.config.BatchSize,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read changes journal: %w", err)
	}
	if len(changes) == 0 {
		return 0, nil
	}

	pool := pond.NewPool(
		r.config.WorkerPoolSize,
		pond.WithQueueSize(len(changes)),
		pond.WithContext(ctx),
	)
	defer pool.StopAndWait()

	tasks := make([]pond.Task, 0, len(changes))
	for _, change := range changes {
		event := r.buildEvent(ctx, change)
		tasks = append(tasks, pool.SubmitErr(func() error {
			return r.publishWithRetry(ctx, event)
		}))
	}

	var failed int
	var firstErr error
	for _, task := range tasks {
		if err := task.Wait(); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		r.metrics.ObserveRelayFailure()
		return 0, fmt.Errorf("failed to relay %d of %d journal entries after cursor %d: %w", failed, len(changes), cursor, firstErr)
	}

	last := changes[len(changes)-1].Cursor
	if err := r.cursors.SetJournalCursor(ctx, r.config.Consumer, last); err != nil {
		return 0, err
	}

	published := make(map[schema.SubjectType]int)
	for _, change := range changes {
		published[change.SubjectType]++
	}
	for subjectType, n := range published {
		r.metrics.AddRelayPublished(string(subjectType), n)
	}

	logger.InfoCtx(ctx, "Relayed journal batch",
		zap.Int("count", len(changes)),
		zap.Uint64("from_cursor", cursor),
		zap.Uint64("to_cursor", last),
	)

	return len(changes), nil
}

// buildEvent wraps a journal entry in its published envelope
func (r *journalRelay) buildEvent(ctx context.Context, change *schema.ChangesJournal) *domain.LedgerEvent {
	event := &domain.LedgerEvent{
		EventID:     EventID(change.Cursor, change.ChangedAt),
		Cursor:      change.Cursor,
		SubjectType: string(change.SubjectType),
		SubjectID:   change.SubjectID,
		ChangedAt:   change.ChangedAt,
	}

	if len(change.Meta) > 0 {
		var meta map[string]any
		if err := r.json.Unmarshal(change.Meta, &meta); err != nil {
			// The entry is still relayed so one bad row cannot stall the journal
			logger.WarnCtx(ctx, "Failed to decode journal meta",
				zap.Uint64("cursor", change.Cursor),
				zap.Error(err),
			)
		} else {
			event.Meta = meta
		}
	}

	return event
}

func (r *journalRelay) publishWithRetry(ctx context.Context, event *domain.LedgerEvent) error {
	b := backoff.NewExponentialBackOff()
	if r.config.InitialInterval > 0 {
		b.InitialInterval = r.config.InitialInterval
	}
	b.MaxElapsedTime = r.config.MaxElapsedTime

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Publish failed, retrying",
			zap.Uint64("cursor", event.Cursor),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	operation := func() error {
		return r.publisher.PublishLedgerEvent(ctx, event, MessageID(event.Cursor))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("cursor %d: %w", event.Cursor, err)
	}
	return nil
}

// MessageID is the broker deduplication id of a journal entry
func MessageID(cursor uint64) string {
	return "journal-" + strconv.FormatUint(cursor, 10)
}

// EventID derives a ULID from the journal entry so republishing a batch reuses the same id
func EventID(cursor uint64, changedAt time.Time) string {
	entropy := make([]byte, 10)
	binary.BigEndian.PutUint64(entropy[2:], cursor)
	id, err := ulid.New(ulid.Timestamp(changedAt), bytes.NewReader(entropy))
	if err != nil {
		// Only reachable for timestamps past the year 10889
		return ulid.Make().String()
	}
	return id.String()
}
