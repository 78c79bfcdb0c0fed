package realtime

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(io.Discard, "", 0)
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		userID  int
		want    string
		wantErr bool
	}{
		{
			name:    "http swaps to ws",
			baseURL: "http://localhost:8000",
			userID:  7,
			want:    "ws://localhost:8000/ws/7",
		},
		{
			name:    "https swaps to wss",
			baseURL: "https://api.school.example",
			userID:  12,
			want:    "wss://api.school.example/ws/12",
		},
		{
			name:    "path prefix is preserved",
			baseURL: "https://school.example/api/v1",
			userID:  3,
			want:    "wss://school.example/api/v1/ws/3",
		},
		{
			name:    "trailing slash is dropped",
			baseURL: "http://localhost:8000/",
			userID:  7,
			want:    "ws://localhost:8000/ws/7",
		},
		{
			name:    "unsupported scheme",
			baseURL: "ftp://school.example",
			userID:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EndpointURL(tt.baseURL, tt.userID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// serveFrames runs a websocket endpoint that writes the given text
// frames on connect and then holds the connection open until either
// side hangs up. The returned func drops the connection from the
// server side; CloseClientConnections does not reach hijacked
// websocket connections, so the handler has to close its own socket.
func serveFrames(t *testing.T, frames []string) (*httptest.Server, <-chan string, func()) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	paths := make(chan string, 1)
	dropCh := make(chan struct{})
	var dropOnce sync.Once

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		for _, f := range frames {
			if err := ws.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}

		clientGone := make(chan struct{})
		go func() {
			for {
				if _, _, err := ws.ReadMessage(); err != nil {
					close(clientGone)
					return
				}
			}
		}()

		select {
		case <-dropCh:
		case <-clientGone:
		}
	}))
	t.Cleanup(srv.Close)

	drop := func() { dropOnce.Do(func() { close(dropCh) }) }
	return srv, paths, drop
}

func TestConnDeliversNotificationsInArrivalOrder(t *testing.T) {
	srv, paths, _ := serveFrames(t, []string{
		`{"type": "mission_assigned", "title": "first", "message": "a"}`,
		`{"type": "pong"}`,
		`{"type": "clan_invite", "title": "second", "message": "b"}`,
		`not valid json`,
		`{"type": "new_achievement", "title": "third", "message": "c"}`,
	})

	conn, err := Dial(srv.URL, 7, testLogger(t))
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "/ws/7", <-paths)
	assert.True(t, conn.Connected())

	// Pong and malformed frames are dropped; the three notifications
	// arrive in the order they were sent.
	wantTitles := []string{"first", "second", "third"}
	for _, want := range wantTitles {
		msg := waitForMsg(t, conn)
		notif, ok := msg.(NotificationMsg)
		require.True(t, ok, "expected NotificationMsg, got %T", msg)
		assert.Equal(t, want, notif.Notification.Title)
	}
}

func TestConnCloseIsIdempotent(t *testing.T) {
	srv, _, _ := serveFrames(t, nil)

	conn, err := Dial(srv.URL, 1, testLogger(t))
	require.NoError(t, err)

	conn.Close()
	conn.Close()

	assert.False(t, conn.Connected())

	// After teardown the event wait unblocks with nil instead of
	// delivering anything.
	assert.Nil(t, conn.WaitForEvent()())
}

func TestConnEmitsClosedWhenServerDrops(t *testing.T) {
	srv, _, drop := serveFrames(t, nil)

	conn, err := Dial(srv.URL, 1, testLogger(t))
	require.NoError(t, err)
	defer conn.Close()

	drop()

	msg := waitForMsg(t, conn)
	_, ok := msg.(ClosedMsg)
	require.True(t, ok, "expected ClosedMsg, got %T", msg)
	assert.False(t, conn.Connected())
}

func TestConnRemoteCloseCancelsHeartbeat(t *testing.T) {
	srv, _, drop := serveFrames(t, nil)

	conn, err := Dial(srv.URL, 4, testLogger(t))
	require.NoError(t, err)
	defer conn.Close()

	drop()

	msg := waitForMsg(t, conn)
	_, ok := msg.(ClosedMsg)
	require.True(t, ok, "expected ClosedMsg, got %T", msg)

	// The heartbeat goroutine selects on the stop channel, so it must
	// be closed even though the client never called Close itself.
	select {
	case <-conn.stopCh:
	case <-time.After(2 * time.Second):
		t.Fatal("stop channel still open after the server closed the connection")
	}
	assert.False(t, conn.Connected())
}

// waitForMsg runs the conn's event command with a timeout so a broken
// pipeline fails the test instead of hanging it.
func waitForMsg(t *testing.T, conn *Conn) interface{} {
	t.Helper()

	done := make(chan interface{}, 1)
	go func() {
		done <- conn.WaitForEvent()()
	}()

	select {
	case msg := <-done:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for connection event")
		return nil
	}
}
