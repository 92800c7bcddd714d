package handlers

import (
	"net/http"
	"time"

	"lexdesk/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by CORS and the SameSite session cookie.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Watch handles GET /api/chat/ws/:conversationId. Membership is checked
// before the upgrade so that strangers get a plain 403.
func (h *ChatHandler) Watch(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	convID := c.Param("conversationId")

	events, cancel, err := h.Svc.Subscribe(c.Request.Context(), caller.UID, convID)
	if err != nil {
		respondError(c, h.Logger, "Watch", err)
		return
	}
	defer cancel()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("Watch: upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	// The reader only services control frames and notices the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		ws.SetReadLimit(512)
		_ = ws.SetReadDeadline(time.Now().Add(wsPongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	h.Logger.Debug("Watch: subscribed", zap.String("uid", caller.UID), zap.String("conversationId", convID))
	for {
		select {
		case <-closed:
			return
		case ev, ok := <-events:
			if !ok {
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(wsWriteWait))
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
