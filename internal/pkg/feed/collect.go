package feed

import (
	"Journaly/internal/model"
	"sort"
	"time"
)

// subRows 一个分组内关联仍然存在的子事件，均按到达顺序排列。
// delivered 是已投递的子事件总数，关联被删除的也算在内
type subRows struct {
	delivered      int
	threadComments []model.ThreadCommentNotification
	postComments   []model.PostCommentNotification
	thanks         []model.ThreadCommentThanksNotification
	claps          []model.PostClapNotification
	newPosts       []model.NewPostNotification
	followers      []model.NewFollowerNotification
}

func collect(group []*model.InAppNotification) *subRows {
	s := &subRows{}
	for _, n := range group {
		s.delivered += len(n.ThreadComments) + len(n.PostComments) + len(n.ThreadCommentThanks) +
			len(n.PostClaps) + len(n.NewPosts) + len(n.NewFollowers)
		for _, c := range n.ThreadComments {
			if c.Comment != nil {
				s.threadComments = append(s.threadComments, c)
			}
		}
		for _, c := range n.PostComments {
			if c.PostComment != nil {
				s.postComments = append(s.postComments, c)
			}
		}
		for _, t := range n.ThreadCommentThanks {
			if t.Thanks != nil && t.Thanks.Comment.ID != 0 {
				s.thanks = append(s.thanks, t)
			}
		}
		for _, c := range n.PostClaps {
			if c.PostClap != nil {
				s.claps = append(s.claps, c)
			}
		}
		for _, p := range n.NewPosts {
			if p.Post != nil {
				s.newPosts = append(s.newPosts, p)
			}
		}
		for _, f := range n.NewFollowers {
			if f.FollowingUser != nil {
				s.followers = append(s.followers, f)
			}
		}
	}

	byArrival(s.threadComments, func(c model.ThreadCommentNotification) (time.Time, uint64) { return c.CreatedAt, c.ID })
	byArrival(s.postComments, func(c model.PostCommentNotification) (time.Time, uint64) { return c.CreatedAt, c.ID })
	byArrival(s.thanks, func(t model.ThreadCommentThanksNotification) (time.Time, uint64) { return t.CreatedAt, t.ID })
	byArrival(s.claps, func(c model.PostClapNotification) (time.Time, uint64) { return c.CreatedAt, c.ID })
	byArrival(s.newPosts, func(p model.NewPostNotification) (time.Time, uint64) { return p.CreatedAt, p.ID })
	byArrival(s.followers, func(f model.NewFollowerNotification) (time.Time, uint64) { return f.CreatedAt, f.ID })
	return s
}

func byArrival[T any](rows []T, key func(T) (time.Time, uint64)) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, ii := key(rows[i])
		tj, ij := key(rows[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return ii < ij
	})
}
