package redis

import (
	"Journaly/internal/model"
	"Journaly/internal/pkg/consts"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	defaultUnreadTTL = 10 * time.Minute
	versionTTL       = 24 * time.Hour
)

// 版本号未变才写入，否则说明计数期间有新的失效
const setUnreadScript = `
local v = redis.call('get', KEYS[2]) or '0'
if v == ARGV[2] then
	return redis.call('set', KEYS[1], ARGV[1], 'PX', ARGV[3])
end
return 0`

// LivePayload 推送给在线客户端的消息
type LivePayload struct {
	Event          string `json:"event"`
	NotificationID uint64 `json:"notification_id"`
	Type           string `json:"type"`
	PostID         uint64 `json:"post_id,omitempty"`
	BumpedAt       string `json:"bumped_at"`
}

// NotificationCache 未读数缓存 + 实时推送
type NotificationCache struct {
	ttl time.Duration
}

func NewNotificationCache(ttl time.Duration) *NotificationCache {
	if ttl <= 0 {
		ttl = defaultUnreadTTL
	}
	return &NotificationCache{ttl: ttl}
}

func UnreadKey(userID uint64) string {
	return consts.NotificationUnreadKey + strconv.FormatUint(userID, 10)
}

func UnreadVersionKey(userID uint64) string {
	return consts.NotificationUnreadVersionKey + strconv.FormatUint(userID, 10)
}

func ChannelKey(userID uint64) string {
	return consts.NotificationChannelKey + strconv.FormatUint(userID, 10)
}

func (s *NotificationCache) GetUnread(ctx context.Context, userID uint64) (int64, bool, error) {
	value, err := GetValue(ctx, UnreadKey(userID))
	if err != nil || value == "" {
		return 0, false, err
	}
	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return count, true, nil
}

// UnreadVersion 回源计数前读取，回填时交给 SetUnread 比对
func (s *NotificationCache) UnreadVersion(ctx context.Context, userID uint64) (int64, error) {
	value, err := GetValue(ctx, UnreadVersionKey(userID))
	if err != nil || value == "" {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

func (s *NotificationCache) SetUnread(ctx context.Context, userID uint64, count int64, version int64) error {
	err := Rdb.Eval(ctx, setUnreadScript,
		[]string{UnreadKey(userID), UnreadVersionKey(userID)},
		count, strconv.FormatInt(version, 10), s.ttl.Milliseconds()).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// InvalidateUnread 先递增版本号再删除，进行中的回填不会写回旧值
func (s *NotificationCache) InvalidateUnread(ctx context.Context, userID uint64) error {
	_, err := Rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, UnreadVersionKey(userID))
		pipe.Expire(ctx, UnreadVersionKey(userID), versionTTL)
		pipe.Del(ctx, UnreadKey(userID))
		return nil
	})
	return err
}

// Push 失效未读数并发布到用户频道
func (s *NotificationCache) Push(ctx context.Context, n *model.InAppNotification) error {
	if err := s.InvalidateUnread(ctx, n.UserID); err != nil {
		return err
	}
	payload, err := EncodeLivePayload(n)
	if err != nil {
		return err
	}
	return Publish(ctx, ChannelKey(n.UserID), payload)
}

func EncodeLivePayload(n *model.InAppNotification) ([]byte, error) {
	p := LivePayload{
		Event:          "notification",
		NotificationID: n.ID,
		Type:           string(n.Type),
		BumpedAt:       n.BumpedAt.UTC().Format(time.RFC3339),
	}
	if n.PostID != nil {
		p.PostID = *n.PostID
	}
	return json.Marshal(p)
}
