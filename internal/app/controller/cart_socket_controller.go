package controller

import (
	"net/http"

	apperrors "github.com/amanabooks/bookstore-backend/internal/errors"
	"github.com/amanabooks/bookstore-backend/internal/middleware"
	ws "github.com/amanabooks/bookstore-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type CartSocketController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewCartSocketController(hub *ws.Hub, allowedOrigins []string) *CartSocketController {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[origin] = true
	}

	return &CartSocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originSet[r.Header.Get("Origin")]
			},
		},
	}
}

// Subscribe upgrades the connection and streams badge updates for one cart.
// GET /ws/cart?cartId=
func (ctrl *CartSocketController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID := c.Query("cartId")
	if cartID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "cartId is required")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return
	}

	client := &ws.Client{
		Hub:    ctrl.hub,
		Conn:   &ws.Conn{Conn: conn},
		CartID: cartID,
		Send:   make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("WebSocket connection established", map[string]interface{}{
		"cart_id": cartID,
	})
}
