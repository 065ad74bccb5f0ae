package api

import "Journaly/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ThreadHandler       *handler.ThreadHandler
	CommentHandler      *handler.CommentHandler
	PostCommentHandler  *handler.PostCommentHandler
	NotificationHandler *handler.NotificationHandler
	WSHandler           *handler.WsHandler
}
