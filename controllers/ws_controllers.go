package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/foodtruck-app/utils"
	"github.com/yeremiapane/foodtruck-app/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct {
	Hub *ws.Hub
}

func NewWSController(hub *ws.Hub) *WSController {
	return &WSController{Hub: hub}
}

// Connect upgrades an authenticated request and parks the connection
// in the hub. The read loop only exists to detect disconnects; clients
// are not expected to send anything.
func (wc *WSController) Connect(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed for user %d: %v", user.ID, err)
		return
	}

	wc.Hub.Register(conn, user.ID)
	utils.InfoLogger.Printf("Websocket connected: user %d", user.ID)

	go func() {
		defer wc.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
