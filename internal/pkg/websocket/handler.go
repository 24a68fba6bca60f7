package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/models/dto"
)

// IdentityFunc reads the authenticated identity from the request context
type IdentityFunc func(c *gin.Context) (models.Identity, bool)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	identity IdentityFunc
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, identity IdentityFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		identity: identity,
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to student record changes
// @Description Upgrades the connection to a WebSocket that receives an event every time a student record is created, updated or deleted. Staff only.
// @Tags events, websocket
// @Produce json
// @Security BearerAuth
// @Param token query string false "Access token, for clients that cannot set headers"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Directory not available for this role"
// @Router /events [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))
		return
	}

	if !appAuth.CanView(identity.Role, appAuth.SectionDirectory) {
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied"),
		))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("userID", identity.UserID.String()).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: identity.UserID,
		role:   identity.Role,
		logger: h.logger,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", identity.UserID.String()).
		Str("role", string(identity.Role)).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
