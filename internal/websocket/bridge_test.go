package websocket_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ws "github.com/nfrund/signupboard/internal/websocket"
)

// testFixture holds the components needed to exercise the bridge over a real
// HTTP server.
type testFixture struct {
	bridge *ws.Bridge
	server *httptest.Server
	ctx    context.Context
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	bridge := ws.NewBridge()
	ctx, cancel := context.WithCancel(context.Background())
	go bridge.Run(ctx)

	known := map[string]bool{"board-1": true, "board-2": true}

	e := echo.New()
	e.GET("/ws/boards/:id", bridge.Handler(func(c echo.Context) (string, error) {
		id := c.Param("id")
		if !known[id] {
			return "", errors.New("unknown board")
		}
		return id, nil
	}))
	server := httptest.NewServer(e)

	t.Cleanup(func() {
		server.Close()
		cancel()
	})

	return &testFixture{bridge: bridge, server: server, ctx: ctx}
}

func connectTestClient(t *testing.T, server *httptest.Server, boardID string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/boards/" + boardID
	conn, resp, err := websocket.Dial(context.Background(), wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() {
		conn.Close(websocket.StatusNormalClosure, "test complete")
	})
	return conn
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)
	return string(data)
}

func TestBridge_SendRoutesByKey(t *testing.T) {
	fixture := setupTestFixture(t)

	first := connectTestClient(t, fixture.server, "board-1")
	second := connectTestClient(t, fixture.server, "board-1")
	other := connectTestClient(t, fixture.server, "board-2")

	require.Eventually(t, func() bool {
		return fixture.bridge.ClientCount("board-1") == 2 && fixture.bridge.ClientCount("board-2") == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, fixture.bridge.Send(fixture.ctx, "board-1", []byte(`<div id="message">hi</div>`)))

	assert.Equal(t, `<div id="message">hi</div>`, readText(t, first))
	assert.Equal(t, `<div id="message">hi</div>`, readText(t, second))

	// The other board must not see board-1's message; its next frame is its own.
	require.NoError(t, fixture.bridge.Send(fixture.ctx, "board-2", []byte("mine")))
	assert.Equal(t, "mine", readText(t, other))
}

func TestBridge_UnknownKeyIsRejected(t *testing.T) {
	fixture := setupTestFixture(t)

	wsURL := "ws" + strings.TrimPrefix(fixture.server.URL, "http") + "/ws/boards/nope"
	_, resp, err := websocket.Dial(context.Background(), wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBridge_UnregistersOnClose(t *testing.T) {
	fixture := setupTestFixture(t)

	conn := connectTestClient(t, fixture.server, "board-1")
	require.Eventually(t, func() bool {
		return fixture.bridge.ClientCount("board-1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, "bye"))

	assert.Eventually(t, func() bool {
		return fixture.bridge.ClientCount("board-1") == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBridge_SendWithoutClientsIsNoop(t *testing.T) {
	fixture := setupTestFixture(t)
	assert.NoError(t, fixture.bridge.Send(fixture.ctx, "board-1", []byte("nobody listening")))
}

func TestBridge_SendAfterStop(t *testing.T) {
	bridge := ws.NewBridge()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		bridge.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	// Fill the queue so the select can only pick the stopped case.
	var err error
	for i := 0; i < 100 && err == nil; i++ {
		err = bridge.Send(context.Background(), "board-1", []byte("late"))
	}
	assert.ErrorIs(t, err, ws.ErrBridgeStopped)
}
