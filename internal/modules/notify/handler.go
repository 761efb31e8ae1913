package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"tourdesk/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS middleware on the rest of the API;
	// the token check below gates the socket itself.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub *Hub
	jwt *jwt.Service
	log *logrus.Logger
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service, log *logrus.Logger) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwtService, log: log}
}

func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.HandleWebSocket)
}

// HandleWebSocket upgrades GET /ws?token=JWT into the notification feed.
// Auth rides a query parameter because browsers cannot set headers on
// websocket dials.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter is required"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	h.log.WithFields(logrus.Fields{
		"operator_id": claims.OperatorID,
		"agency_id":   claims.AgencyID,
	}).Info("operator connected to notification feed")

	h.hub.ServeOperator(claims.OperatorID, claims.AgencyID, conn)

	h.log.WithField("operator_id", claims.OperatorID).Info("operator disconnected")
}
