package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/zaqqye/evaluasi_backend/internal/middleware"
)

var upgrader = websocket.Upgrader{
	// Allow all origins; the session token is checked before upgrading.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades an authenticated request and subscribes it to hub.
// Admin connections also receive the notices of their subject.
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "realtime not available"})
			return
		}
		identity, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.log.Debug().Err(err).Msg("Websocket upgrade failed")
			return
		}
		cl := newClient(hub, conn, identity.Subject, middleware.CurrentSessionID(c))
		if !hub.join(cl) {
			conn.Close()
			return
		}

		go cl.writePump()
		cl.readPump()
	}
}
