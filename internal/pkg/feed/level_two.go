package feed

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/model"
)

const (
	KeyDetailThreadCommentThanks = "levelTwo.threadCommentThanks"
	KeyDetailPostClaps           = "levelTwo.postClaps"
	KeyDetailNewPosts            = "levelTwo.newPosts"
	KeyDetailNewFollowers        = "levelTwo.newFollowers"
)

// BuildDetail 展开同一合并键下的父记录。rows 为空时返回 nil
func BuildDetail(rows []*model.InAppNotification, opts Options) *dto.LevelTwoDTO {
	if len(rows) == 0 {
		return nil
	}
	b := &bucket{rows: rows}
	head := b.latest()
	sub := collect(rows)
	post := firstPost(rows)

	detail := &dto.LevelTwoDTO{
		IDs:             idsOf(rows),
		Type:            string(head.Type),
		ReadStatus:      string(head.ReadStatus),
		TranslationArgs: map[string]any{},
	}

	switch head.Type {
	case model.NotificationThreadComment:
		detail.Post = postPreview(post, opts)
		detail.Threads = groupThreadComments(sub.threadComments)
	case model.NotificationThreadCommentThanks:
		detail.Post = postPreview(post, opts)
		detail.TranslationKey = KeyDetailThreadCommentThanks
		detail.Threads = groupThanks(sub.thanks)
		if len(sub.thanks) > 0 {
			detail.TranslationArgs["userIdentifier"] = sub.thanks[0].Thanks.Author.Identifier()
		}
	case model.NotificationPostComment:
		detail.Post = postPreview(post, opts)
		detail.Comments = make([]*dto.NotificationCommentDTO, 0, len(sub.postComments))
		for _, c := range sub.postComments {
			pc := c.PostComment
			detail.Comments = append(detail.Comments, &dto.NotificationCommentDTO{
				ID:        pc.ID,
				Body:      pc.Body,
				Author:    userBrief(&pc.Author),
				CreatedAt: formatTime(pc.CreatedAt),
				Link:      PostCommentLink(pc.PostID, pc.ID),
			})
		}
	case model.NotificationPostClap:
		detail.Post = postPreview(post, opts)
		detail.TranslationKey = KeyDetailPostClaps
		seen := make(map[uint64]bool)
		for _, c := range sub.claps {
			detail.Users = appendUser(detail.Users, seen, &c.PostClap.Author)
		}
	case model.NotificationNewPost:
		detail.TranslationKey = KeyDetailNewPosts
		for _, p := range sub.newPosts {
			if preview := postPreview(p.Post, opts); preview != nil {
				detail.Posts = append(detail.Posts, preview)
			}
		}
		if len(sub.newPosts) > 0 {
			detail.TranslationArgs["userIdentifier"] = sub.newPosts[0].Post.Author.Identifier()
		}
	case model.NotificationNewFollower:
		detail.TranslationKey = KeyDetailNewFollowers
		seen := make(map[uint64]bool)
		for _, f := range sub.followers {
			detail.Users = appendUser(detail.Users, seen, f.FollowingUser)
		}
	}

	if detail.Post != nil {
		detail.TranslationArgs["postTitle"] = detail.Post.Title
	}
	return detail
}

// groupThreadComments 按讨论分组，分组顺序与组内顺序均为到达顺序
func groupThreadComments(rows []model.ThreadCommentNotification) []*dto.ThreadGroupDTO {
	index := make(map[uint64]*dto.ThreadGroupDTO)
	groups := make([]*dto.ThreadGroupDTO, 0)
	for _, r := range rows {
		c := r.Comment
		g, ok := index[c.ThreadID]
		if !ok {
			g = newThreadGroup(c.ThreadID, &c.Thread)
			index[c.ThreadID] = g
			groups = append(groups, g)
		}
		link := ""
		if c.Thread.PostID != 0 {
			link = ThreadLink(c.Thread.PostID, c.ThreadID)
		}
		g.Comments = append(g.Comments, &dto.NotificationCommentDTO{
			ID:        c.ID,
			Body:      c.Body,
			Author:    userBrief(&c.Author),
			CreatedAt: formatTime(c.CreatedAt),
			Link:      link,
		})
	}
	return groups
}

func groupThanks(rows []model.ThreadCommentThanksNotification) []*dto.ThreadGroupDTO {
	index := make(map[uint64]*dto.ThreadGroupDTO)
	groups := make([]*dto.ThreadGroupDTO, 0)
	for _, r := range rows {
		t := r.Thanks
		c := &t.Comment
		g, ok := index[c.ThreadID]
		if !ok {
			g = newThreadGroup(c.ThreadID, &c.Thread)
			index[c.ThreadID] = g
			groups = append(groups, g)
		}
		g.Thanks = append(g.Thanks, &dto.NotificationThanksDTO{
			ID:          t.ID,
			CommentID:   c.ID,
			CommentBody: c.Body,
			Author:      userBrief(&t.Author),
			CreatedAt:   formatTime(t.CreatedAt),
			Link:        g.Link,
		})
	}
	return groups
}

func newThreadGroup(threadID uint64, thread *model.Thread) *dto.ThreadGroupDTO {
	g := &dto.ThreadGroupDTO{ThreadID: threadID}
	if thread != nil && thread.ID != 0 {
		g.HighlightedContent = thread.HighlightedContent
		g.Link = ThreadLink(thread.PostID, threadID)
	}
	return g
}
