package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	tokens map[string]ports.Claims
}

func (v stubVerifier) Verify(token string) (ports.Claims, error) {
	claims, ok := v.tokens[token]
	if !ok {
		return ports.Claims{}, errors.New("invalid token")
	}
	return claims, nil
}

type recordedLocation struct {
	driverID kernel.ID
	body     []byte
}

type stubSink struct {
	records chan recordedLocation
}

func (s *stubSink) Record(_ context.Context, driverID kernel.ID, body []byte) error {
	s.records <- recordedLocation{driverID: driverID, body: body}
	return nil
}

type gatewayFixture struct {
	hub    *ws.Hub
	sink   *stubSink
	server *httptest.Server
	wsURL  string
}

func newGatewayFixture(t *testing.T, driverID kernel.ID) *gatewayFixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := ws.NewHub(log)
	sink := &stubSink{records: make(chan recordedLocation, 8)}
	verifier := stubVerifier{tokens: map[string]ports.Claims{
		"valid-token": {SubjectID: driverID},
	}}

	e := echo.New()
	e.GET("/ws", ws.NewGateway(hub, verifier, sink, log).Handle)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return &gatewayFixture{
		hub:    hub,
		sink:   sink,
		server: server,
		wsURL:  "ws" + strings.TrimPrefix(server.URL, "http") + "/ws",
	}
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// emitUntilStopped re-emits the event periodically so the client is
// guaranteed to observe it regardless of when the server finishes
// registering the connection.
func emitUntilStopped(fixture *gatewayFixture, groupKey, event string, payload any) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fixture.hub.Emit(groupKey, event, payload)
			}
		}
	}()
	return func() { close(done) }
}

func TestGateway_Handle(t *testing.T) {
	driverID, err := kernel.NewID(7)
	require.NoError(t, err)

	t.Run("should reject connection with invalid token", func(t *testing.T) {
		fixture := newGatewayFixture(t, driverID)

		_, resp, err := websocket.DefaultDialer.Dial(fixture.wsURL+"?token=wrong", nil)

		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should reject connection without token", func(t *testing.T) {
		fixture := newGatewayFixture(t, driverID)

		_, resp, err := websocket.DefaultDialer.Dial(fixture.wsURL, nil)

		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should deliver events emitted to the user's group", func(t *testing.T) {
		fixture := newGatewayFixture(t, driverID)
		conn := dialWS(t, fixture.wsURL+"?token=valid-token")

		stop := emitUntilStopped(fixture,
			ports.GroupForUser(driverID), ports.EventDeliveryCreated, map[string]any{"status": 200})
		defer stop()

		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var env struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, ports.EventDeliveryCreated, env.Event)
		assert.JSONEq(t, `{"status": 200}`, string(env.Data))
	})

	t.Run("should not deliver events emitted to other groups", func(t *testing.T) {
		fixture := newGatewayFixture(t, driverID)
		conn := dialWS(t, fixture.wsURL+"?token=valid-token")

		otherID, err := kernel.NewID(9999)
		require.NoError(t, err)
		stop := emitUntilStopped(fixture,
			ports.GroupForUser(otherID), ports.EventDeliveryCreated, map[string]any{"status": 200})
		defer stop()

		conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
		_, _, err = conn.ReadMessage()
		require.Error(t, err, "No message should arrive for a foreign group")
	})

	t.Run("should forward location reports to the sink", func(t *testing.T) {
		fixture := newGatewayFixture(t, driverID)
		conn := dialWS(t, fixture.wsURL+"?token=valid-token")

		report := `{"event":"SEND_DRIVER_LOCATION","data":{"lat":52.1,"lng":4.3}}`
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(report)))

		select {
		case recorded := <-fixture.sink.records:
			assert.True(t, recorded.driverID.IsEqual(driverID))
			assert.JSONEq(t, `{"lat":52.1,"lng":4.3}`, string(recorded.body))
		case <-time.After(5 * time.Second):
			t.Fatal("location report was not recorded")
		}
	})

	t.Run("should survive malformed and unknown inbound messages", func(t *testing.T) {
		fixture := newGatewayFixture(t, driverID)
		conn := dialWS(t, fixture.wsURL+"?token=valid-token")

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"UNKNOWN","data":{}}`)))

		// The connection still works afterwards.
		report := `{"event":"SEND_DRIVER_LOCATION","data":{"lat":1,"lng":2}}`
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(report)))

		select {
		case recorded := <-fixture.sink.records:
			assert.True(t, recorded.driverID.IsEqual(driverID))
		case <-time.After(5 * time.Second):
			t.Fatal("location report was not recorded")
		}
	})
}
