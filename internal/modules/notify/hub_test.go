package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialOperator connects a real websocket client to the hub and returns
// the client side of the connection.
func dialOperator(t *testing.T, hub *Hub, operatorID, agencyID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		go hub.ServeOperator(operatorID, agencyID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func readEvent(t *testing.T, client *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt Event
	require.NoError(t, client.ReadJSON(&evt))
	return evt
}

func waitOnline(t *testing.T, hub *Hub, want int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.OnlineCount() == want },
		2*time.Second, 10*time.Millisecond)
}

func TestBroadcastReachesAgencyOperators(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	c1 := dialOperator(t, hub, "op-1", "agency-1")
	c2 := dialOperator(t, hub, "op-2", "agency-1")
	other := dialOperator(t, hub, "op-3", "agency-2")
	waitOnline(t, hub, 3)

	sent := hub.Broadcast("agency-1", Event{Type: TypeStatusChanged, BookingID: "b1", Status: "accepted"})
	assert.Equal(t, 2, sent)

	for _, client := range []*websocket.Conn{c1, c2} {
		evt := readEvent(t, client)
		assert.Equal(t, TypeStatusChanged, evt.Type)
		assert.Equal(t, "b1", evt.BookingID)
	}

	// the other agency's operator got nothing
	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var evt Event
	assert.Error(t, other.ReadJSON(&evt))
}

func TestBroadcastUnknownAgencyReachesNobody(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	dialOperator(t, hub, "op-1", "agency-1")
	waitOnline(t, hub, 1)

	sent := hub.Broadcast("agency-9", Event{Type: TypeRosterChanged, GuideID: "g1"})
	assert.Equal(t, 0, sent)
}

func TestReconnectReplacesConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	old := dialOperator(t, hub, "op-1", "agency-1")
	waitOnline(t, hub, 1)

	fresh := dialOperator(t, hub, "op-1", "agency-1")

	// the replaced connection is closed by the hub
	require.NoError(t, old.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := old.ReadMessage()
	require.Error(t, err)

	assert.Equal(t, 1, hub.OnlineCount())

	sent := hub.Broadcast("agency-1", Event{Type: TypeAssignmentChanged, BookingID: "b1"})
	assert.Equal(t, 1, sent)
	evt := readEvent(t, fresh)
	assert.Equal(t, TypeAssignmentChanged, evt.Type)
}

// Notifications fire from whichever request goroutine triggered them;
// the write pump must serialize them onto the single connection.
func TestConcurrentBroadcastsAreSerialized(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialOperator(t, hub, "op-1", "agency-1")
	waitOnline(t, hub, 1)

	var wg sync.WaitGroup
	var enqueued int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				n := hub.Broadcast("agency-1", Event{Type: TypeOperationFailed, Code: "NETWORK_ERROR", BookingID: "b1"})
				atomic.AddInt64(&enqueued, int64(n))
			}
		}()
	}

	// drain while the writers run so the send buffer never caps deliveries
	received := 0
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	for {
		require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
		var evt Event
		if err := client.ReadJSON(&evt); err != nil {
			break
		}
		require.Equal(t, TypeOperationFailed, evt.Type)
		received++

		select {
		case <-done:
			if int64(received) == atomic.LoadInt64(&enqueued) {
				assert.Equal(t, atomic.LoadInt64(&enqueued), int64(received))
				return
			}
		default:
		}
	}
	t.Fatalf("read failed after %d of %d events", received, atomic.LoadInt64(&enqueued))
}

func TestDisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialOperator(t, hub, "op-1", "agency-1")
	waitOnline(t, hub, 1)

	require.NoError(t, client.Close())
	waitOnline(t, hub, 0)

	sent := hub.Broadcast("agency-1", Event{Type: TypeStatusChanged, BookingID: "b1"})
	assert.Equal(t, 0, sent)
}
