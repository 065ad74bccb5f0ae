// Package feed 将站内通知原始记录聚合为列表项 (Level One) 与详情 (Level Two)。
// 纯函数，不访问存储；缺失的关联数据只会让对应元素被省略。
package feed

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/model"
	"fmt"
	"time"
)

// ImageURLFunc 将对象存储 key 解析为可访问的 URL
type ImageURLFunc func(objectKey string) string

type Options struct {
	ImageURL ImageURLFunc
}

func (o Options) imageURL(key string) string {
	if key == "" {
		return ""
	}
	if o.ImageURL == nil {
		return key
	}
	return o.ImageURL(key)
}

// bucketKey Level One 合并键：类型 + key + 已读状态
type bucketKey struct {
	typ     model.NotificationType
	postID  uint64
	trigger uint64
	status  model.NotificationReadStatus
}

func keyOf(n *model.InAppNotification) bucketKey {
	k := bucketKey{typ: n.Type, status: n.ReadStatus}
	if n.PostID != nil {
		k.postID = *n.PostID
	}
	if n.TriggeringUserID != nil {
		k.trigger = *n.TriggeringUserID
	}
	return k
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func userBrief(u *model.User) *dto.UserBriefDTO {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &dto.UserBriefDTO{
		ID:         u.ID,
		Handle:     u.Handle,
		Name:       u.Name,
		Identifier: u.Identifier(),
	}
}

// PostLink 等链接站内通知与邮件共用
func PostLink(postID uint64) string {
	return fmt.Sprintf("/post/%d", postID)
}

func ThreadLink(postID, threadID uint64) string {
	return fmt.Sprintf("/post/%d?thread=%d", postID, threadID)
}

func PostCommentLink(postID, commentID uint64) string {
	return fmt.Sprintf("/post/%d#pc-%d", postID, commentID)
}

func UserLink(userID uint64) string {
	return fmt.Sprintf("/user/%d", userID)
}

func postPreview(p *model.Post, opts Options) *dto.PostPreviewDTO {
	if p == nil || p.ID == 0 {
		return nil
	}
	return &dto.PostPreviewDTO{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: opts.imageURL(p.HeadlineImage),
		AuthorID: p.AuthorID,
		Author:   userBrief(&p.Author),
		Link:     PostLink(p.ID),
	}
}

// appendUser 按首次出现顺序去重
func appendUser(users []*dto.UserBriefDTO, seen map[uint64]bool, u *model.User) []*dto.UserBriefDTO {
	b := userBrief(u)
	if b == nil || seen[b.ID] {
		return users
	}
	seen[b.ID] = true
	return append(users, b)
}
