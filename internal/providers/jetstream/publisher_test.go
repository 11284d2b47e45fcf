package jetstream_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuance-vault/ledger/internal/adapter"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/mocks"
	"github.com/issuance-vault/ledger/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type publisherMocks struct {
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func newPublisherMocks(t *testing.T) *publisherMocks {
	ctrl := gomock.NewController(t)
	return &publisherMocks{
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func testConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "LEDGER_EVENTS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "test",
	}
}

func TestNewPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("connects and ensures stream", func(t *testing.T) {
		m := newPublisherMocks(t)
		m.natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, cfg natsjs.StreamConfig) error {
			assert.Equal(t, "LEDGER_EVENTS", cfg.Name)
			assert.Equal(t, []string{"ledger.>"}, cfg.Subjects)
			assert.Equal(t, jetstream.DuplicateWindow, cfg.Duplicates)
			return nil
		})

		p, err := jetstream.NewPublisher(ctx, testConfig(), m.natsJS, adapter.NewJSON(), adapter.NewJCS())
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("connect failure", func(t *testing.T) {
		m := newPublisherMocks(t)
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("no servers"))

		p, err := jetstream.NewPublisher(ctx, testConfig(), m.natsJS, adapter.NewJSON(), adapter.NewJCS())
		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("stream failure closes connection", func(t *testing.T) {
		m := newPublisherMocks(t)
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(errors.New("not authorized"))
		m.conn.EXPECT().Close()

		p, err := jetstream.NewPublisher(ctx, testConfig(), m.natsJS, adapter.NewJSON(), adapter.NewJCS())
		assert.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestPublisher_PublishLedgerEvent(t *testing.T) {
	ctx := context.Background()
	event := &domain.LedgerEvent{
		EventID:     "01J9Z3K4W3M7Q2V8X6N5R1T0YB",
		Cursor:      42,
		SubjectType: "custody",
		SubjectID:   "7",
		ChangedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Meta:        map[string]any{"to": "Vault", "from": "Artist"},
	}

	t.Run("publishes canonical payload with headers", func(t *testing.T) {
		m := newPublisherMocks(t)
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(nil)

		var published *nats.Msg
		m.js.EXPECT().PublishMsg(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg *nats.Msg, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			published = msg
			return &natsjs.PubAck{Stream: "LEDGER_EVENTS", Sequence: 1}, nil
		})

		p, err := jetstream.NewPublisher(ctx, testConfig(), m.natsJS, adapter.NewJSON(), adapter.NewJCS())
		require.NoError(t, err)

		err = p.PublishLedgerEvent(ctx, event, "journal-42")
		require.NoError(t, err)

		require.NotNil(t, published)
		assert.Equal(t, "ledger.custody", published.Subject)
		assert.Equal(t, "journal-42", published.Header.Get(nats.MsgIdHdr))

		digest := sha256.Sum256(published.Data)
		assert.Equal(t, hex.EncodeToString(digest[:]), published.Header.Get(jetstream.DigestHeader))

		var decoded domain.LedgerEvent
		require.NoError(t, json.Unmarshal(published.Data, &decoded))
		assert.Equal(t, event.EventID, decoded.EventID)
		assert.Equal(t, uint64(42), decoded.Cursor)
		// Canonical form sorts keys
		assert.Contains(t, string(published.Data), `"meta":{"from":"Artist","to":"Vault"}`)
	})

	t.Run("marshal failure publishes nothing", func(t *testing.T) {
		m := newPublisherMocks(t)
		jsonAdapter := mocks.NewMockJSON(gomock.NewController(t))
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(nil)
		jsonAdapter.EXPECT().Marshal(event).Return(nil, errors.New("unsupported value"))

		p, err := jetstream.NewPublisher(ctx, testConfig(), m.natsJS, jsonAdapter, adapter.NewJCS())
		require.NoError(t, err)

		err = p.PublishLedgerEvent(ctx, event, "journal-42")
		assert.ErrorContains(t, err, "failed to marshal event")
	})

	t.Run("canonicalization failure publishes nothing", func(t *testing.T) {
		m := newPublisherMocks(t)
		jcs := mocks.NewMockJCS(gomock.NewController(t))
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(nil)
		jcs.EXPECT().Transform(gomock.Any()).Return(nil, errors.New("invalid number"))

		p, err := jetstream.NewPublisher(ctx, testConfig(), m.natsJS, adapter.NewJSON(), jcs)
		require.NoError(t, err)

		err = p.PublishLedgerEvent(ctx, event, "journal-42")
		assert.ErrorContains(t, err, "failed to canonicalize event")
	})

	t.Run("publish failure", func(t *testing.T) {
		m := newPublisherMocks(t)
		m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
		m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(nil)
		m.js.EXPECT().PublishMsg(ctx, gomock.Any()).Return(nil, errors.New("timeout"))

		p, err := jetstream.NewPublisher(ctx, testConfig(), m.natsJS, adapter.NewJSON(), adapter.NewJCS())
		require.NoError(t, err)

		err = p.PublishLedgerEvent(ctx, event, "journal-42")
		assert.ErrorContains(t, err, "failed to publish event")
	})
}

func TestPublisher_Close(t *testing.T) {
	ctx := context.Background()
	m := newPublisherMocks(t)
	m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)
	m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(nil)
	m.conn.EXPECT().Drain().Return(errors.New("already closed"))
	m.conn.EXPECT().Close()

	p, err := jetstream.NewPublisher(ctx, testConfig(), m.natsJS, adapter.NewJSON(), adapter.NewJCS())
	require.NoError(t, err)
	p.Close()
}

func TestBuildSubject(t *testing.T) {
	assert.Equal(t, "ledger.settlement", jetstream.BuildSubject("settlement"))
}
