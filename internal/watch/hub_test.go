package watch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/onetrick/internal/sim"
)

var _ sim.Sink = (*Hub)(nil)

func newTestHub(t *testing.T, originPatterns ...string) (*Hub, string) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	hub := NewHub(logger, originPatterns...)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func TestHubStreamsEvents(t *testing.T) {
	hub, url := newTestHub(t)
	a := dial(t, url)
	b := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)

	runID := uuid.New()
	events := []sim.Event{
		{Seq: 1, Type: sim.EventFlip, Flip: &sim.FlipPayload{CardID: "Jester"}},
		{Seq: 2, Type: sim.EventResolve, Resolve: &sim.ResolvePayload{Winner: 1}},
	}
	for _, ev := range events {
		require.NoError(t, hub.Record(context.Background(), runID, ev))
	}

	for _, conn := range []*websocket.Conn{a, b} {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		for _, want := range events {
			var got Message
			require.NoError(t, wsjson.Read(ctx, conn, &got))
			assert.Equal(t, runID, got.RunID)
			assert.Equal(t, want, got.Event)
		}
		cancel()
	}
}

func TestHubForgetsClosedSpectators(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubCloseDisconnects(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		var msg Message
		errc <- wsjson.Read(ctx, conn, &msg)
	}()

	hub.Close()
	assert.Equal(t, 0, hub.Clients())

	err := <-errc
	require.Error(t, err)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))

	// Recording after close is a no-op.
	assert.NoError(t, hub.Record(context.Background(), uuid.New(), sim.Event{Seq: 1}))
}

func dialFrom(url, origin string) (*websocket.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{origin}},
	})
	return conn, err
}

func TestHubRejectsForeignOrigins(t *testing.T) {
	hub, url := newTestHub(t)
	conn, err := dialFrom(url, "http://evil.example")
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Equal(t, 0, hub.Clients())
}

func TestHubAllowsListedOrigins(t *testing.T) {
	hub, url := newTestHub(t, "*.trusted.example")
	conn, err := dialFrom(url, "https://viewer.trusted.example")
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err = dialFrom(url, "https://viewer.other.example")
	assert.Error(t, err)
}
