package service

import (
	"Journaly/internal/model"
	"Journaly/internal/pkg/mail"
	"Journaly/internal/pkg/notify"
	"Journaly/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
)

type pair struct{ a, b uint64 }

// memStore 内存版仓储，实现 repository 下的全部接口
type memStore struct {
	mu sync.Mutex

	nextID        uint64
	users         map[uint64]*model.User
	posts         map[uint64]*model.Post
	claps         map[uint64]*model.PostClap
	threads       map[uint64]*model.Thread
	comments      map[uint64]*model.Comment
	thanks        map[uint64]*model.CommentThanks
	postComments  map[uint64]*model.PostComment
	follows       []pair
	threadSubs    map[pair]bool
	postSubs      map[pair]bool
	badges        map[uint64][]model.BadgeType
	notifications map[uint64]*model.InAppNotification
}

func newMemStore() *memStore {
	return &memStore{
		nextID:        1000,
		users:         map[uint64]*model.User{},
		posts:         map[uint64]*model.Post{},
		claps:         map[uint64]*model.PostClap{},
		threads:       map[uint64]*model.Thread{},
		comments:      map[uint64]*model.Comment{},
		thanks:        map[uint64]*model.CommentThanks{},
		postComments:  map[uint64]*model.PostComment{},
		threadSubs:    map[pair]bool{},
		postSubs:      map[pair]bool{},
		badges:        map[uint64][]model.BadgeType{},
		notifications: map[uint64]*model.InAppNotification{},
	}
}

func (m *memStore) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(id uint64, name string, langs ...model.UserLanguage) *model.User {
	u := &model.User{ID: id, Handle: name, Email: name + "@journaly.test", EmailNotification: model.EmailNotificationImmediate, Languages: langs}
	m.users[id] = u
	return u
}

func (m *memStore) addPost(id, authorID uint64, createdAt time.Time) *model.Post {
	p := &model.Post{ID: id, AuthorID: authorID, LanguageID: 1, Title: "Mi día", Status: model.PostStatusPublished, CreatedAt: createdAt}
	m.posts[id] = p
	return p
}

func (m *memStore) userCopy(id uint64) model.User {
	if u, ok := m.users[id]; ok {
		return *u
	}
	return model.User{}
}

func (m *memStore) postCopy(id uint64) model.Post {
	p, ok := m.posts[id]
	if !ok {
		return model.Post{}
	}
	cp := *p
	cp.Author = m.userCopy(p.AuthorID)
	return cp
}

// UserRepo

func (m *memStore) GetUserByID(_ context.Context, userID uint64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.Languages = nil
	return &cp, nil
}

func (m *memStore) GetUserWithLanguages(_ context.Context, userID uint64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// UserFollowRepo

func (m *memStore) GetFollowers(_ context.Context, userID uint64) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []*model.User
	for _, f := range m.follows {
		if f.b == userID {
			u := m.userCopy(f.a)
			res = append(res, &u)
		}
	}
	return res, nil
}

func (m *memStore) IsFollowing(_ context.Context, followerID, followingID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.follows {
		if f.a == followerID && f.b == followingID {
			return true, nil
		}
	}
	return false, nil
}

// PostRepo

func (m *memStore) GetPostByID(_ context.Context, postID uint64) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[postID]; !ok {
		return nil, nil
	}
	p := m.postCopy(postID)
	return &p, nil
}

func (m *memStore) GetPostClapByID(_ context.Context, clapID uint64) (*model.PostClap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claps[clapID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Author = m.userCopy(c.AuthorID)
	cp.Post = m.postCopy(c.PostID)
	return &cp, nil
}

// SubscriptionRepo

func (m *memStore) UpsertThreadSubscription(_ context.Context, userID, threadID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threadSubs[pair{userID, threadID}] = true
	return nil
}

func (m *memStore) UpsertPostCommentSubscription(_ context.Context, userID, postID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postSubs[pair{userID, postID}] = true
	return nil
}

func (m *memStore) subscribers(subs map[pair]bool, target uint64) []*model.User {
	var ids []uint64
	for k := range subs {
		if k.b == target {
			ids = append(ids, k.a)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	res := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		u := m.userCopy(id)
		res = append(res, &u)
	}
	return res
}

func (m *memStore) GetThreadSubscribers(_ context.Context, threadID uint64) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribers(m.threadSubs, threadID), nil
}

func (m *memStore) GetPostCommentSubscribers(_ context.Context, postID uint64) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribers(m.postSubs, postID), nil
}

// BadgeRepo

func (m *memStore) AssignBadge(_ context.Context, userID uint64, badge model.BadgeType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.badges[userID] {
		if b == badge {
			return nil
		}
	}
	m.badges[userID] = append(m.badges[userID], badge)
	return nil
}

// ThreadRepo

func (m *memStore) GetThreadByID(_ context.Context, threadID uint64) (*model.Thread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.threads[threadID]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Post = m.postCopy(t.PostID)
	return &cp, nil
}

func (m *memStore) GetThreadWithComments(ctx context.Context, threadID uint64) (*model.Thread, error) {
	t, err := m.GetThreadByID(ctx, threadID)
	if err != nil || t == nil {
		return t, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.ThreadID == threadID {
			cp := *c
			cp.Author = m.userCopy(c.AuthorID)
			t.Comments = append(t.Comments, cp)
		}
	}
	sort.Slice(t.Comments, func(i, j int) bool { return t.Comments[i].ID < t.Comments[j].ID })
	return t, nil
}

func (m *memStore) CreateThread(_ context.Context, thread *model.Thread, subscriberIDs []uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	thread.ID = m.id()
	thread.CreatedAt = time.Now()
	cp := *thread
	m.threads[thread.ID] = &cp
	for _, uid := range subscriberIDs {
		m.threadSubs[pair{uid, thread.ID}] = true
	}
	return nil
}

func (m *memStore) DeleteThread(_ context.Context, threadID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.threads[threadID]; !ok {
		return errors.New("record not found")
	}
	for _, c := range m.comments {
		if c.ThreadID == threadID {
			return repository.ErrThreadHasComments
		}
	}
	for k := range m.threadSubs {
		if k.b == threadID {
			delete(m.threadSubs, k)
		}
	}
	delete(m.threads, threadID)
	return nil
}

// CommentRepo

func (m *memStore) GetCommentByID(_ context.Context, commentID uint64) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[commentID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Author = m.userCopy(c.AuthorID)
	return &cp, nil
}

func (m *memStore) CreateComment(_ context.Context, comment *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = m.id()
	comment.CreatedAt = time.Now()
	cp := *comment
	m.comments[comment.ID] = &cp
	m.threadSubs[pair{comment.AuthorID, comment.ThreadID}] = true
	return nil
}

func (m *memStore) UpdateCommentBody(_ context.Context, commentID uint64, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[commentID].Body = body
	return nil
}

func (m *memStore) DeleteComment(_ context.Context, commentID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.thanks {
		if t.CommentID == commentID {
			delete(m.thanks, id)
		}
	}
	delete(m.comments, commentID)
	return nil
}

func (m *memStore) CreateThanks(_ context.Context, thanks *model.CommentThanks) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.thanks {
		if t.CommentID == thanks.CommentID && t.AuthorID == thanks.AuthorID {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}
	thanks.ID = m.id()
	thanks.CreatedAt = time.Now()
	cp := *thanks
	m.thanks[thanks.ID] = &cp
	return nil
}

func (m *memStore) GetThanksByID(_ context.Context, thanksID uint64) (*model.CommentThanks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.thanks[thanksID]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Author = m.userCopy(t.AuthorID)
	if c, ok := m.comments[t.CommentID]; ok {
		cp.Comment = *c
		cp.Comment.Author = m.userCopy(c.AuthorID)
		if th, ok := m.threads[c.ThreadID]; ok {
			cp.Comment.Thread = *th
			cp.Comment.Thread.Post = m.postCopy(th.PostID)
		}
	}
	return &cp, nil
}

// PostCommentRepo

func (m *memStore) GetPostCommentByID(_ context.Context, id uint64) (*model.PostComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc, ok := m.postComments[id]
	if !ok {
		return nil, nil
	}
	cp := *pc
	cp.Author = m.userCopy(pc.AuthorID)
	return &cp, nil
}

func (m *memStore) CreatePostComment(_ context.Context, pc *model.PostComment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc.ID = m.id()
	pc.CreatedAt = time.Now()
	cp := *pc
	m.postComments[pc.ID] = &cp
	m.postSubs[pair{pc.AuthorID, pc.PostID}] = true
	return nil
}

func (m *memStore) UpdatePostCommentBody(_ context.Context, id uint64, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postComments[id].Body = body
	return nil
}

func (m *memStore) DeletePostComment(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.postComments, id)
	return nil
}

// NotificationRepo

func sameKey(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *memStore) AttachInApp(_ context.Context, n *model.InAppNotification, sub model.SubNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var parent *model.InAppNotification
	for _, p := range m.notifications {
		if p.UserID == n.UserID && p.Type == n.Type && p.ReadStatus == model.ReadStatusUnread &&
			sameKey(p.PostID, n.PostID) && sameKey(p.TriggeringUserID, n.TriggeringUserID) {
			parent = p
			break
		}
	}
	now := time.Now()
	if parent == nil {
		parent = &model.InAppNotification{
			ID:               m.id(),
			UserID:           n.UserID,
			Type:             n.Type,
			ReadStatus:       model.ReadStatusUnread,
			PostID:           n.PostID,
			TriggeringUserID: n.TriggeringUserID,
			CreatedAt:        now,
		}
		if n.PostID != nil {
			p := m.postCopy(*n.PostID)
			parent.Post = &p
		}
		m.notifications[parent.ID] = parent
	}
	parent.BumpedAt = now
	n.ID = parent.ID
	n.ReadStatus = parent.ReadStatus
	n.BumpedAt = now

	sub.SetNotificationID(parent.ID)
	switch s := sub.(type) {
	case *model.ThreadCommentNotification:
		s.ID, s.CreatedAt = m.id(), now
		parent.ThreadComments = append(parent.ThreadComments, *s)
	case *model.PostCommentNotification:
		s.ID, s.CreatedAt = m.id(), now
		parent.PostComments = append(parent.PostComments, *s)
	case *model.ThreadCommentThanksNotification:
		s.ID, s.CreatedAt = m.id(), now
		parent.ThreadCommentThanks = append(parent.ThreadCommentThanks, *s)
	case *model.PostClapNotification:
		s.ID, s.CreatedAt = m.id(), now
		parent.PostClaps = append(parent.PostClaps, *s)
	case *model.NewPostNotification:
		s.ID, s.CreatedAt = m.id(), now
		parent.NewPosts = append(parent.NewPosts, *s)
	case *model.NewFollowerNotification:
		s.ID, s.CreatedAt = m.id(), now
		u := m.userCopy(s.FollowingUserID)
		s.FollowingUser = &u
		parent.NewFollowers = append(parent.NewFollowers, *s)
	}
	return nil
}

// racyCount 计数返回后、回填之前触发 after，模拟并发到达的新通知
type racyCount struct {
	*memStore
	after func()
}

func (r racyCount) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	count, err := r.memStore.CountUnread(ctx, userID)
	r.after()
	return count, err
}

// preload 读取时按当前数据解析子事件关联，已删除的关联为 nil，与 gorm Preload 一致
func (m *memStore) preload(n *model.InAppNotification) *model.InAppNotification {
	cp := *n
	cp.ThreadComments = make([]model.ThreadCommentNotification, len(n.ThreadComments))
	for i, s := range n.ThreadComments {
		s.Comment = nil
		if c, ok := m.comments[s.CommentID]; ok {
			cc := *c
			cc.Author = m.userCopy(c.AuthorID)
			if th, ok := m.threads[c.ThreadID]; ok {
				cc.Thread = *th
			}
			s.Comment = &cc
		}
		cp.ThreadComments[i] = s
	}
	cp.PostComments = make([]model.PostCommentNotification, len(n.PostComments))
	for i, s := range n.PostComments {
		s.PostComment = nil
		if pc, ok := m.postComments[s.PostCommentID]; ok {
			pcc := *pc
			pcc.Author = m.userCopy(pc.AuthorID)
			s.PostComment = &pcc
		}
		cp.PostComments[i] = s
	}
	cp.ThreadCommentThanks = make([]model.ThreadCommentThanksNotification, len(n.ThreadCommentThanks))
	for i, s := range n.ThreadCommentThanks {
		s.Thanks = nil
		if t, ok := m.thanks[s.ThanksID]; ok {
			tc := *t
			tc.Author = m.userCopy(t.AuthorID)
			if c, ok := m.comments[t.CommentID]; ok {
				tc.Comment = *c
				if th, ok := m.threads[c.ThreadID]; ok {
					tc.Comment.Thread = *th
				}
			}
			s.Thanks = &tc
		}
		cp.ThreadCommentThanks[i] = s
	}
	return &cp
}

func (m *memStore) ofUser(userID uint64) []*model.InAppNotification {
	var res []*model.InAppNotification
	for _, n := range m.notifications {
		if n.UserID == userID {
			res = append(res, n)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res
}

func (m *memStore) ListByUser(_ context.Context, userID uint64, limit int) ([]*model.InAppNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.ofUser(userID)
	if len(all) > limit {
		all = all[:limit]
	}
	res := make([]*model.InAppNotification, 0, len(all))
	for _, n := range all {
		res = append(res, m.preload(n))
	}
	return res, nil
}

func (m *memStore) GetByIDs(_ context.Context, ids []uint64) ([]*model.InAppNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []*model.InAppNotification
	for _, id := range ids {
		if n, ok := m.notifications[id]; ok {
			res = append(res, m.preload(n))
		}
	}
	return res, nil
}

func (m *memStore) GetOwners(_ context.Context, ids []uint64) (map[uint64]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := map[uint64]uint64{}
	for _, id := range ids {
		if n, ok := m.notifications[id]; ok {
			res[id] = n.UserID
		}
	}
	return res, nil
}

func (m *memStore) MarkRead(_ context.Context, userID uint64, ids []uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var affected int64
	for _, id := range ids {
		if n, ok := m.notifications[id]; ok && n.UserID == userID && n.ReadStatus == model.ReadStatusUnread {
			n.ReadStatus = model.ReadStatusRead
			affected++
		}
	}
	return affected, nil
}

func (m *memStore) MarkAllRead(_ context.Context, userID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var affected int64
	for _, n := range m.ofUser(userID) {
		if n.ReadStatus == model.ReadStatusUnread {
			n.ReadStatus = model.ReadStatusRead
			affected++
		}
	}
	return affected, nil
}

func (m *memStore) Delete(_ context.Context, userID uint64, ids []uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if n, ok := m.notifications[id]; ok && n.UserID == userID {
			delete(m.notifications, id)
		}
	}
	return nil
}

func (m *memStore) CountUnread(_ context.Context, userID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.ofUser(userID) {
		if n.ReadStatus == model.ReadStatusUnread {
			count++
		}
	}
	return count, nil
}

// memQueue 记录入队的邮件任务
type memQueue struct {
	mu   sync.Mutex
	jobs []*mail.Job
	err  error
}

func (q *memQueue) Enqueue(_ context.Context, job *mail.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memQueue) recipients() []uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]uint64, 0, len(q.jobs))
	for _, j := range q.jobs {
		ids = append(ids, j.UserID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// memCounter 未读数缓存，版本号语义与 redis 实现一致
type memCounter struct {
	mu          sync.Mutex
	counts      map[uint64]int64
	versions    map[uint64]int64
	invalidated []uint64
}

func newMemCounter() *memCounter {
	return &memCounter{counts: map[uint64]int64{}, versions: map[uint64]int64{}}
}

func (c *memCounter) GetUnread(_ context.Context, userID uint64) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.counts[userID]
	return v, ok, nil
}

func (c *memCounter) UnreadVersion(_ context.Context, userID uint64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[userID], nil
}

func (c *memCounter) SetUnread(_ context.Context, userID uint64, count int64, version int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[userID] == version {
		c.counts[userID] = count
	}
	return nil
}

func (c *memCounter) InvalidateUnread(_ context.Context, userID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[userID]++
	delete(c.counts, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

// harness 组装全部服务
type harness struct {
	store         *memStore
	queue         *memQueue
	counter       *memCounter
	notifications NotificationService
	threads       ThreadService
	comments      CommentService
	postComments  PostCommentService
}

func newHarness() *harness {
	store := newMemStore()
	queue := &memQueue{}
	counter := newMemCounter()
	dispatcher := notify.NewDispatcher(queue, store, nil, nil, 4)
	ns := NewNotificationService(store, store, store, store, store, store, dispatcher, counter,
		func(key string) string { return "https://cdn.journaly.test/" + key }, 50)
	return &harness{
		store:         store,
		queue:         queue,
		counter:       counter,
		notifications: ns,
		threads:       NewThreadService(store, store),
		comments:      NewCommentService(store, store, store, store, store, ns),
		postComments:  NewPostCommentService(store, store, store, store, ns),
	}
}

func (h *harness) inbox(userID uint64) []*model.InAppNotification {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return h.store.ofUser(userID)
}
