package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"dispatch/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Gateway accepts websocket connections, verifies the presented token once at
// connection time, and joins the connection to its user's broadcast group.
//
// Authentication is fail-closed: a connection whose token does not verify is
// rejected before it joins any group or registers any handler.
type Gateway struct {
	hub       *Hub
	verifier  ports.TokenVerifier
	locations ports.LocationSink
	upgrader  websocket.Upgrader
	log       *slog.Logger
}

// NewGateway creates a connection gateway over the given hub.
func NewGateway(hub *Hub, verifier ports.TokenVerifier, locations ports.LocationSink, log *slog.Logger) *Gateway {
	return &Gateway{
		hub:       hub,
		verifier:  verifier,
		locations: locations,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the app origin; the token is the
			// actual authentication.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Handle upgrades the request to a websocket connection and serves it until
// the peer disconnects. Registered as an echo route.
func (g *Gateway) Handle(c echo.Context) error {
	claims, err := g.verifier.Verify(tokenFromRequest(c))
	if err != nil {
		g.log.Warn("rejected realtime connection", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	sock, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	conn := newConn(g.hub, sock, g.log)
	conn.On(ports.EventDriverLocation, func(ctx context.Context, data json.RawMessage) {
		if err := g.locations.Record(ctx, claims.SubjectID, data); err != nil {
			g.log.Error("failed to record driver location", "driver", claims.SubjectID, "error", err)
		}
	})

	g.hub.Register(ports.GroupForUser(claims.SubjectID), conn)
	g.log.Info("realtime connection established", "user", claims.SubjectID)

	conn.run(c.Request().Context())
	return nil
}

// tokenFromRequest extracts the connection token from the token query
// parameter or, failing that, a bearer Authorization header.
func tokenFromRequest(c echo.Context) string {
	if token := c.QueryParam("token"); token != "" {
		return token
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
