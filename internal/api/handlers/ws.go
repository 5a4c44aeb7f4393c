package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleettrack/pkg/ws"
)

// HandleWebSocket 升级连接并交给 Hub 管理
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
