package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"docchat/pkg/chat/controller"
	"docchat/pkg/session"
)

type ChatCtrl struct {
	mgr      *session.Manager
	upgrader websocket.Upgrader
}

var _ controller.ChatController = (*ChatCtrl)(nil)

func New(mgr *session.Manager) *ChatCtrl {
	return &ChatCtrl{
		mgr: mgr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The chat page is served from this process; same-origin is
			// the only caller we expect, but the page works when opened
			// via localhost aliases too.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Page renders the chat page for one document, with the websocket URL and
// document id substituted into the embedded script.
func (h *ChatCtrl) Page(c echo.Context) error {
	id := c.Param("id")
	if _, err := strconv.ParseUint(id, 10, 32); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid document id"})
	}
	page := strings.ReplaceAll(chatHTML, "{DOC_ID}", id)
	return c.HTML(http.StatusOK, page)
}

// WS upgrades the connection and hands it to the session manager. An
// unparseable id is reported over the socket so the client sees the same
// message as for an unknown document.
func (h *ChatCtrl) WS(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	conn := &wsConn{ws: ws}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		_ = conn.SendText("Error: Document not found")
		_ = conn.Close()
		return nil
	}

	h.mgr.Serve(c.Request().Context(), conn, uint(id))
	return nil
}

// wsConn adapts a gorilla connection to the session transport.
type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) ReadQuestion() (session.Question, error) {
	var q session.Question
	if err := c.ws.ReadJSON(&q); err != nil {
		return session.Question{}, err
	}
	return q, nil
}

func (c *wsConn) SendText(text string) error {
	return c.ws.WriteMessage(websocket.TextMessage, []byte(text))
}

func (c *wsConn) Close() error { return c.ws.Close() }
