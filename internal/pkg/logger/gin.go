package logger

import (
	"Journaly/internal/api/config"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 访问日志与 panic 恢复
func SetupGin(r *gin.Engine, cfg config.LogstashConfig) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output: LogWriter,
		Formatter: func(p gin.LogFormatterParams) string {
			return formatAccess(p, cfg)
		},
		SkipPaths: []string{"/api/ping"},
	}))

	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams, cfg config.LogstashConfig) string {
	var traceID string
	var userID uint64
	if p.Keys != nil {
		if id, ok := p.Keys[TraceIDKey].(string); ok {
			traceID = id
		}
		if uid, ok := p.Keys["user_id"].(uint64); ok {
			userID = uid
		}
	}
	if traceID == "" && p.Request != nil {
		if id, ok := p.Request.Context().Value(TraceIDKey).(string); ok {
			traceID = id
		}
	}

	return fmt.Sprintf(
		`{"time":"%s","level":"INFO","msg":"GIN_ACCESS","trace_id":"%s","log_token":"%s","target_index":"%s","method":"%s","path":"%s","status":%d,"latency":"%v","client_ip":"%s","user_id":%d}`+"\n",
		p.TimeStamp.Format(time.RFC3339),
		traceID,
		cfg.Token,
		cfg.Index,
		p.Method,
		p.Path,
		p.StatusCode,
		p.Latency,
		p.ClientIP,
		userID,
	)
}
