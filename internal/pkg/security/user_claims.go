package security

import (
	"Journaly/internal/api/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultExpiration = 24 * time.Hour

var (
	jwtSecret     []byte
	jwtIssuer     = "Journaly"
	jwtExpiration = defaultExpiration
)

// UserClaims Token 中携带的业务信息
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Init 加载签名密钥，启动时调用一次
func Init(cfg config.JWTConfig) {
	jwtSecret = []byte(cfg.Secret)
	if cfg.Issuer != "" {
		jwtIssuer = cfg.Issuer
	}
	if cfg.ExpirationHours > 0 {
		jwtExpiration = time.Duration(cfg.ExpirationHours) * time.Hour
	}
}
