package realtime

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/schoolquest/tui/internal/model"
)

// heartbeatInterval is how often the liveness token is sent while the
// connection is open.
const heartbeatInterval = 30 * time.Second

// heartbeatMessage is the literal text frame the server answers with a
// pong.
const heartbeatMessage = "ping"

// NotificationMsg is a tea.Msg carrying one decoded notification.
type NotificationMsg struct {
	Notification model.Notification
}

// ClosedMsg is a tea.Msg sent once when the connection ends, whether
// by error or by an orderly close.
type ClosedMsg struct {
	Err error
}

// Conn owns the single realtime connection of an authenticated
// session. It reads frames, drops heartbeat acknowledgements, and
// forwards decoded notifications to the UI loop. There is no reconnect
// policy: once closed, a new session must dial a new Conn.
type Conn struct {
	ws     *websocket.Conn
	events chan tea.Msg
	stopCh chan struct{}
	logger *log.Logger

	closeOnce sync.Once
	writeMu   sync.Mutex

	mu        sync.Mutex
	connected bool
}

// EndpointURL derives the realtime endpoint from the HTTP API base
// URL: the scheme swaps to ws/wss, host and path are preserved, and
// the user id is embedded in the path.
func EndpointURL(apiBaseURL string, userID int) (string, error) {
	u, err := url.Parse(apiBaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing api url %q: %w", apiBaseURL, err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q in api url", u.Scheme)
	}

	u.Path = fmt.Sprintf("%s/ws/%d", strings.TrimRight(u.Path, "/"), userID)
	return u.String(), nil
}

// Dial opens the session's realtime connection and starts the read
// loop and the heartbeat. The caller owns the Conn and must Close it
// on every teardown path.
func Dial(apiBaseURL string, userID int, logger *log.Logger) (*Conn, error) {
	endpoint, err := EndpointURL(apiBaseURL, userID)
	if err != nil {
		return nil, err
	}

	ws, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", endpoint, err)
	}

	if logger == nil {
		logger = log.Default()
	}

	c := &Conn{
		ws:        ws,
		events:    make(chan tea.Msg, 16),
		stopCh:    make(chan struct{}),
		logger:    logger,
		connected: true,
	}

	go c.readLoop()
	go c.heartbeat()

	return c, nil
}

// Connected reports whether the connection is currently open.
func (c *Conn) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close tears the connection down. It is safe to call from any
// teardown path; the socket is closed and the heartbeat cancelled
// exactly once.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.stopCh)
		c.ws.Close()
		c.setConnected(false)
	})
}

// WaitForEvent returns a tea.Cmd that delivers the next connection
// event to the Bubble Tea runtime. After handling the message the
// caller should invoke WaitForEvent again to keep listening. Once the
// connection is torn down only the close event is still delivered;
// buffered notifications are discarded so nothing lands after
// teardown.
func (c *Conn) WaitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-c.events:
			return msg
		case <-c.stopCh:
			for {
				select {
				case msg := <-c.events:
					if closed, ok := msg.(ClosedMsg); ok {
						return closed
					}
				default:
					return nil
				}
			}
		}
	}
}

// readLoop receives frames until the connection dies. Malformed frames
// and heartbeat acknowledgements are dropped without affecting
// connection liveness.
func (c *Conn) readLoop() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			// The heartbeat dies with the connection no matter which
			// side closed first. A local teardown already in flight wins
			// and the close event is suppressed.
			select {
			case <-c.stopCh:
			default:
				c.setConnected(false)
				select {
				case c.events <- ClosedMsg{Err: err}:
				default:
				}
				c.Close()
			}
			return
		}

		n, err := Decode(data)
		if err != nil {
			c.logger.Printf("realtime: dropping malformed frame: %v", err)
			continue
		}
		if n == nil {
			// Heartbeat acknowledgement.
			continue
		}

		c.emit(NotificationMsg{Notification: *n})
	}
}

// heartbeat sends the liveness token every heartbeatInterval until the
// connection closes.
func (c *Conn) heartbeat() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.ws.WriteMessage(websocket.TextMessage, []byte(heartbeatMessage))
			c.writeMu.Unlock()
			if err != nil {
				c.logger.Printf("realtime: heartbeat failed: %v", err)
				return
			}
		}
	}
}

// emit forwards an event to the UI loop, giving up if the connection
// is torn down first so no messages land after teardown.
func (c *Conn) emit(msg tea.Msg) {
	select {
	case c.events <- msg:
	case <-c.stopCh:
	}
}

func (c *Conn) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}
