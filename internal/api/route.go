package api

import (
	"Journaly/internal/api/config"
	"Journaly/internal/api/middleware"
	"Journaly/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	logger.SetupGin(r, cfg.Logstash)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		threadGroup := apiGroup.Group("/threads")
		{
			threadGroup.GET("/:thread_id", group.ThreadHandler.GetThread)

			authGroup := threadGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ThreadHandler.CreateThread)
				authGroup.DELETE("/:thread_id", group.ThreadHandler.DeleteThread)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		commentGroup.Use(middleware.AuthMiddleware())
		{
			commentGroup.POST("", group.CommentHandler.CreateComment)
			commentGroup.PUT("/:comment_id", group.CommentHandler.UpdateComment)
			commentGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
			commentGroup.POST("/:comment_id/thanks", group.CommentHandler.ThankComment)
		}

		postCommentGroup := apiGroup.Group("/post-comments")
		postCommentGroup.Use(middleware.AuthMiddleware())
		{
			postCommentGroup.POST("", group.PostCommentHandler.CreatePostComment)
			postCommentGroup.PUT("/:post_comment_id", group.PostCommentHandler.UpdatePostComment)
			postCommentGroup.DELETE("/:post_comment_id", group.PostCommentHandler.DeletePostComment)
		}

		notificationGroup := apiGroup.Group("/notifications")
		{
			// WebSocket 自带 token 鉴权
			notificationGroup.GET("/live", group.WSHandler.Connect)

			authGroup := notificationGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("", group.NotificationHandler.ListNotifications)
				authGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
				authGroup.GET("/:notification_id", group.NotificationHandler.GetNotificationDetail)
				authGroup.POST("/read", group.NotificationHandler.MarkRead)
				authGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
				authGroup.DELETE("", group.NotificationHandler.Delete)
			}
		}
	}

	return r
}
