package middleware

import (
	"Journaly/internal/pkg/consts"
	"Journaly/internal/pkg/redis"
	"Journaly/internal/pkg/response"
	"Journaly/internal/pkg/security"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	msgTokenMissing = "Token 缺失或格式错误"
	msgTokenInvalid = "Token 无效或已过期"
)

// AuthMiddleware 校验 Bearer Token，并把 user_id 写入 gin.Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abort(c, response.Unauthorized, msgTokenMissing)
			return
		}
		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			abort(c, response.Unauthorized, msgTokenMissing)
			return
		}

		// 已登出的 Token 签名由账号服务写入黑名单
		revoked, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
		if err != nil {
			log.ErrorContext(c.Request.Context(), "查询 Token 黑名单失败", "err", err)
			abort(c, response.InternalServerError, "未知错误")
			return
		}
		if revoked != "" {
			abort(c, response.Unauthorized, msgTokenInvalid)
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			abort(c, response.Unauthorized, msgTokenInvalid)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	return strings.TrimSpace(token), found && strings.TrimSpace(token) != ""
}

func abort(c *gin.Context, code int, msg string) {
	response.Fail(c, code, msg)
	c.Abort()
}
