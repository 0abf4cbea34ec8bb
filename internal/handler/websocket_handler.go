package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/portfolio-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// JWTValidator resolves a socket token to the workspace whose events it may receive
type JWTValidator interface {
	ValidateToken(ctx context.Context, token string) (workspaceID int32, err error)
}

// WebSocketHandler upgrades dashboard clients to the event stream of their
// workspace (settings.updated, banner.*, workspace.synced).
type WebSocketHandler struct {
	hub            *websocket.Hub
	validator      JWTValidator
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

func NewWebSocketHandler(hub *websocket.Hub, validator JWTValidator, allowedOrigins []string) *WebSocketHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if o := normalizeOrigin(origin); o != "" {
			origins[o] = true
		}
	}

	h := &WebSocketHandler{hub: hub, validator: validator, allowedOrigins: origins}
	// Clients only read; inbound frames are pings and close frames
	h.upgrader = ws.Upgrader{
		ReadBufferSize:  512,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// checkOrigin admits the CORS origins of the web dashboard. Requests without
// an Origin header come from native clients and pass.
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigins[normalizeOrigin(origin)] {
		return true
	}
	log.Warn().Str("origin", origin).Msg("Rejected dashboard socket from unknown origin")
	return false
}

// socketToken reads the token query parameter. Non-browser clients may send
// a bearer header instead.
func socketToken(c echo.Context) string {
	if token := c.QueryParam("token"); token != "" {
		return token
	}
	if token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// HandleWS godoc
// @Summary Open a websocket
// @Description Upgrade to a websocket that receives settings, banner and sync events of the token's workspace
// @Tags websocket
// @Param token query string true "Auth0 access token"
// @Success 101
// @Failure 401 {object} ProblemDetails
// @Router /ws [get]
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	token := socketToken(c)
	if token == "" {
		return NewUnauthorizedError(c, "missing token")
	}

	workspaceID, err := h.validator.ValidateToken(c.Request().Context(), token)
	if errors.Is(err, websocket.ErrWorkspaceNotFound) {
		log.Debug().Err(err).Msg("Dashboard socket has no workspace")
		return NewUnauthorizedError(c, "workspace not found")
	}
	if err != nil {
		log.Debug().Err(err).Msg("Dashboard socket token rejected")
		return NewUnauthorizedError(c, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader already wrote the HTTP error
		log.Debug().Err(err).Int32("workspace_id", workspaceID).Msg("Dashboard socket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, workspaceID, h.hub)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()

	log.Info().
		Int32("workspace_id", workspaceID).
		Str("client_id", client.ID()).
		Int("workspace_clients", h.hub.ClientCount(workspaceID)).
		Msg("Dashboard socket connected")
	return nil
}
