package controllers

import (
	"github.com/Nikk8744/F-T-T-sub000/middleware"
	"github.com/Nikk8744/F-T-T-sub000/response"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"
	"github.com/Nikk8744/F-T-T-sub000/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

const sessionUserKey = "userID"

// WebSocketController keeps the presence directory in sync with melody sessions
type WebSocketController struct {
	melody    *melody.Melody
	directory *notification.Directory
	logger    logger.Logger
}

func NewWebSocketController(m *melody.Melody, dir *notification.Directory, l logger.Logger) *WebSocketController {
	ctrl := &WebSocketController{melody: m, directory: dir, logger: l}

	m.HandleConnect(ctrl.onConnect)
	m.HandleDisconnect(ctrl.onDisconnect)
	m.HandleMessage(ctrl.onMessage)

	return ctrl
}

// Connect upgrades an authenticated request to a websocket
func (ctrl *WebSocketController) Connect(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	keys := map[string]interface{}{sessionUserKey: userID}
	if err := ctrl.melody.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		ctrl.logger.Warn("websocket upgrade for user %d failed: %v", userID, err)
	}
}

func (ctrl *WebSocketController) onConnect(s *melody.Session) {
	userID, ok := sessionUser(s)
	if !ok {
		_ = s.Close()
		return
	}
	ctrl.directory.Register(userID, s)
	ctrl.logger.Info("Live session opened for user %d", userID)
}

func (ctrl *WebSocketController) onDisconnect(s *melody.Session) {
	userID, ok := sessionUser(s)
	if !ok {
		return
	}
	ctrl.directory.Unregister(userID, s)
	ctrl.logger.Info("Live session closed for user %d", userID)
}

func (ctrl *WebSocketController) onMessage(s *melody.Session, msg []byte) {
	if string(msg) == "ping" {
		_ = s.Write([]byte("pong"))
	}
}

func sessionUser(s *melody.Session) (uint, bool) {
	v, exists := s.Get(sessionUserKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
