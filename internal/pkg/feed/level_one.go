package feed

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/model"
	"sort"
)

const (
	KeyThreadComments           = "levelOne.threadComments"
	KeyThreadCommentsSubscribed = "levelOne.threadCommentsSubscribed"
	KeyPostComments             = "levelOne.postComments"
	KeyPostCommentsSubscribed   = "levelOne.postCommentsSubscribed"
	KeyThreadCommentThanks      = "levelOne.threadCommentThanks"
	KeyPostClaps                = "levelOne.postClaps"
	KeyNewPosts                 = "levelOne.newPosts"
	KeyNewFollowers             = "levelOne.newFollowers"
)

type bucket struct {
	key  bucketKey
	rows []*model.InAppNotification
}

func (b *bucket) latest() *model.InAppNotification {
	latest := b.rows[0]
	for _, r := range b.rows[1:] {
		if r.BumpedAt.After(latest.BumpedAt) || (r.BumpedAt.Equal(latest.BumpedAt) && r.ID > latest.ID) {
			latest = r
		}
	}
	return latest
}

// Group 按 Level One 合并键对父记录分组，组内按 id 升序
func Group(rows []*model.InAppNotification) [][]*model.InAppNotification {
	index := make(map[bucketKey]*bucket)
	order := make([]*bucket, 0)
	for _, r := range rows {
		if r == nil {
			continue
		}
		k := keyOf(r)
		b, ok := index[k]
		if !ok {
			b = &bucket{key: k}
			index[k] = b
			order = append(order, b)
		}
		b.rows = append(b.rows, r)
	}

	sort.SliceStable(order, func(i, j int) bool {
		li, lj := order[i].latest(), order[j].latest()
		if !li.BumpedAt.Equal(lj.BumpedAt) {
			return li.BumpedAt.After(lj.BumpedAt)
		}
		return li.ID > lj.ID
	})

	groups := make([][]*model.InAppNotification, 0, len(order))
	for _, b := range order {
		sort.SliceStable(b.rows, func(i, j int) bool { return b.rows[i].ID < b.rows[j].ID })
		groups = append(groups, b.rows)
	}
	return groups
}

// BuildFeed 生成通知列表，最近活跃的在前。关联缺失只省略对应元素，不会丢弃条目
func BuildFeed(rows []*model.InAppNotification, viewerID uint64, opts Options) []*dto.LevelOneDTO {
	groups := Group(rows)
	res := make([]*dto.LevelOneDTO, 0, len(groups))
	for _, g := range groups {
		item := buildLevelOne(g, viewerID, opts)
		if item == nil {
			continue
		}
		res = append(res, item)
	}
	return res
}

func buildLevelOne(group []*model.InAppNotification, viewerID uint64, opts Options) *dto.LevelOneDTO {
	b := &bucket{rows: group}
	head := b.latest()
	sub := collect(group)

	item := &dto.LevelOneDTO{
		ID:              head.ID,
		IDs:             idsOf(group),
		Type:            string(head.Type),
		ReadStatus:      string(head.ReadStatus),
		TranslationArgs: map[string]any{},
		Users:           make([]*dto.UserBriefDTO, 0),
		BumpedAt:        formatTime(head.BumpedAt),
	}
	post := firstPost(group)
	seen := make(map[uint64]bool)

	// 评论被删除后通知不撤回，计数按已投递的子事件算
	item.Count = sub.delivered

	switch head.Type {
	case model.NotificationThreadComment:
		item.TranslationKey = KeyThreadCommentsSubscribed
		if post != nil && post.AuthorID == viewerID {
			item.TranslationKey = KeyThreadComments
		}
		item.Post = postPreview(post, opts)
	case model.NotificationPostComment:
		item.TranslationKey = KeyPostCommentsSubscribed
		if post != nil && post.AuthorID == viewerID {
			item.TranslationKey = KeyPostComments
		}
		item.Post = postPreview(post, opts)
	case model.NotificationThreadCommentThanks:
		item.TranslationKey = KeyThreadCommentThanks
		if len(sub.thanks) > 0 {
			item.Users = appendUser(item.Users, seen, &sub.thanks[0].Thanks.Author)
		}
		item.Post = postPreview(post, opts)
	case model.NotificationPostClap:
		item.TranslationKey = KeyPostClaps
		for _, c := range sub.claps {
			item.Users = appendUser(item.Users, seen, &c.PostClap.Author)
		}
		item.Post = postPreview(post, opts)
	case model.NotificationNewPost:
		item.TranslationKey = KeyNewPosts
		for _, p := range sub.newPosts {
			item.Users = appendUser(item.Users, seen, &p.Post.Author)
		}
		if len(sub.newPosts) > 0 {
			item.Post = postPreview(sub.newPosts[len(sub.newPosts)-1].Post, opts)
		}
	case model.NotificationNewFollower:
		item.TranslationKey = KeyNewFollowers
		for _, f := range sub.followers {
			item.Users = appendUser(item.Users, seen, f.FollowingUser)
		}
	default:
		return nil
	}

	item.TranslationArgs["count"] = item.Count
	if len(item.Users) > 0 {
		item.TranslationArgs["userIdentifier"] = item.Users[0].Identifier
	}
	if item.Post != nil {
		item.TranslationArgs["postTitle"] = item.Post.Title
	}
	return item
}

func idsOf(group []*model.InAppNotification) []uint64 {
	ids := make([]uint64, 0, len(group))
	for _, r := range group {
		ids = append(ids, r.ID)
	}
	return ids
}

func firstPost(group []*model.InAppNotification) *model.Post {
	for _, r := range group {
		if r.Post != nil && r.Post.ID != 0 {
			return r.Post
		}
	}
	return nil
}
