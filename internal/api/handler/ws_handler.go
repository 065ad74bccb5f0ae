package handler

import (
	"Journaly/internal/pkg/redis"
	"Journaly/internal/pkg/response"
	"Journaly/internal/pkg/security"
	"Journaly/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	goredis "github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WsHandler 把用户频道上的新通知实时推给浏览器
type WsHandler struct {
	subscribe func(ctx context.Context, channels ...string) *goredis.PubSub
}

func NewWsHandler() *WsHandler {
	return &WsHandler{subscribe: redis.Subscribe}
}

func (s *WsHandler) Connect(c *gin.Context) {
	// 浏览器无法携带 Authorization 头，token 放在 query 中
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.ErrAuthRequired)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.WarnContext(c.Request.Context(), "WS 鉴权失败", "err", err)
		response.Error(c, service.ErrAuthRequired)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := s.subscribe(ctx, redis.ChannelKey(userID))
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("用户通知 WS 连接已建立", "userID", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	redisCh := pubsub.Channel()
	for {
		select {
		case msg, ok := <-redisCh:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户通知 WS 连接已断开", "userID", userID)
			return
		}
	}
}
