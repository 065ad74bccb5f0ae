package redis

import (
	"Journaly/internal/model"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "notification:unread:42", UnreadKey(42))
	assert.Equal(t, "notification:user:42", ChannelKey(42))
	assert.Equal(t, "notification:unread_ver:42", UnreadVersionKey(42))
}

func TestEncodeLivePayload(t *testing.T) {
	postID := uint64(7)
	n := &model.InAppNotification{
		ID:       3,
		UserID:   42,
		Type:     model.NotificationThreadComment,
		PostID:   &postID,
		BumpedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	raw, err := EncodeLivePayload(n)
	require.NoError(t, err)

	var got LivePayload
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "notification", got.Event)
	assert.Equal(t, uint64(3), got.NotificationID)
	assert.Equal(t, "THREAD_COMMENT", got.Type)
	assert.Equal(t, uint64(7), got.PostID)
	assert.Equal(t, "2026-03-01T08:00:00Z", got.BumpedAt)
}

func TestNewNotificationCache_DefaultTTL(t *testing.T) {
	assert.Equal(t, defaultUnreadTTL, NewNotificationCache(0).ttl)
	assert.Equal(t, time.Minute, NewNotificationCache(time.Minute).ttl)
}
