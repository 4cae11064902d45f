package websocket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
)

// ErrBridgeStopped is returned by Send after Run has returned.
var ErrBridgeStopped = errors.New("websocket bridge stopped")

const (
	sendBufferSize = 16
	writeTimeout   = 10 * time.Second
)

// Client is one connected WebSocket. Clients are grouped by key; for the
// sign-up board the key is the board ID, so every tab showing a board
// receives that board's updates.
type Client struct {
	Key    string
	conn   *websocket.Conn
	send   chan []byte
	bridge *Bridge
}

type directMessage struct {
	key     string
	payload []byte
}

// KeyResolver extracts the client key from an upgrade request. Returning an
// error rejects the connection; an *echo.HTTPError keeps its status.
type KeyResolver func(c echo.Context) (string, error)

// Bridge owns all WebSocket connections and routes payloads to them by key.
type Bridge struct {
	clients map[string][]*Client
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	direct     chan directMessage
	done       chan struct{}
}

// NewBridge creates a bridge. Call Run to start routing.
func NewBridge() *Bridge {
	return &Bridge{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan directMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run routes registrations and messages until ctx is canceled.
func (b *Bridge) Run(ctx context.Context) {
	slog.Info("WebSocket bridge started")
	defer func() {
		close(b.done)
		b.closeAll()
		slog.Info("WebSocket bridge stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-b.register:
			b.mu.Lock()
			b.clients[client.Key] = append(b.clients[client.Key], client)
			b.mu.Unlock()
			slog.Debug("WebSocket client registered", "key", client.Key)

		case client := <-b.unregister:
			b.remove(client)

		case msg := <-b.direct:
			b.mu.RLock()
			for _, client := range b.clients[msg.key] {
				select {
				case client.send <- msg.payload:
				default:
					slog.Warn("Client send channel full, dropping message", "key", client.Key)
				}
			}
			b.mu.RUnlock()
		}
	}
}

func (b *Bridge) remove(client *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clients := b.clients[client.Key]
	for i, c := range clients {
		if c == client {
			b.clients[client.Key] = append(clients[:i], clients[i+1:]...)
			close(client.send)
			slog.Debug("WebSocket client unregistered", "key", client.Key)
			break
		}
	}
	if len(b.clients[client.Key]) == 0 {
		delete(b.clients, client.Key)
	}
}

func (b *Bridge) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, clients := range b.clients {
		for _, c := range clients {
			close(c.send)
		}
		delete(b.clients, key)
	}
}

// Send queues payload for every client registered under key. Clients that are
// not connected simply miss the message.
func (b *Bridge) Send(ctx context.Context, key string, payload []byte) error {
	select {
	case b.direct <- directMessage{key: key, payload: payload}:
		return nil
	case <-b.done:
		return ErrBridgeStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClientCount returns the number of connections registered under key.
func (b *Bridge) ClientCount(key string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients[key])
}

// Handler upgrades requests to WebSocket connections keyed by resolve.
func (b *Bridge) Handler(resolve KeyResolver) echo.HandlerFunc {
	return func(c echo.Context) error {
		key, err := resolve(c)
		if err != nil {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return httpErr
			}
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}

		conn, err := websocket.Accept(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("Failed to upgrade connection to WebSocket", "key", key, "error", err)
			return nil
		}

		client := &Client{
			Key:    key,
			conn:   conn,
			send:   make(chan []byte, sendBufferSize),
			bridge: b,
		}

		select {
		case b.register <- client:
		case <-b.done:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return nil
		}

		go client.writePump()
		client.readPump()
		return nil
	}
}

// readPump blocks until the peer goes away. Pages only listen, so incoming
// frames are discarded.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.bridge.unregister <- c:
		case <-c.bridge.done:
		}
	}()

	for {
		_, _, err := c.conn.Read(context.Background())
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				slog.Debug("WebSocket closed by client", "key", c.Key)
			} else if !errors.Is(err, io.EOF) {
				slog.Debug("WebSocket read ended", "key", c.Key, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	for message := range c.send {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := c.conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			slog.Error("WebSocket write error", "key", c.Key, "error", err)
			return
		}
	}
}
