package consts

const (
	NotificationUnreadKey        = "notification:unread:"
	NotificationUnreadVersionKey = "notification:unread_ver:"
	NotificationChannelKey       = "notification:user:"
)

const (
	DeliveryRetryLock = "lock:delivery:retry"
)

// TokenBlacklistKey 登出后的 Token 签名，由账号服务写入
const TokenBlacklistKey = "token:blacklist:"
