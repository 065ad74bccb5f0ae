package notify

import (
	"Journaly/internal/model"
	"Journaly/internal/pkg/mail"
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	mu   sync.Mutex
	jobs []*mail.Job
	fail map[uint64]bool
}

func (f *fakeQueue) Enqueue(_ context.Context, job *mail.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[job.UserID] {
		return errors.New("broker unavailable")
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeStore struct {
	mu       sync.Mutex
	nextID   uint64
	created  []*model.InAppNotification
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	delay    time.Duration
}

func (f *fakeStore) AttachInApp(_ context.Context, n *model.InAppNotification, _ model.SubNotification) error {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxSeen.Load()
		if cur <= prev || f.maxSeen.CompareAndSwap(prev, cur) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	n.ID = f.nextID
	f.created = append(f.created, n)
	return nil
}

type fakeLive struct {
	mu     sync.Mutex
	pushed []uint64
}

func (f *fakeLive) Push(_ context.Context, n *model.InAppNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, n.UserID)
	return nil
}

type fakeRecorder struct {
	reports []*Report
}

func (f *fakeRecorder) RecordReport(_ context.Context, r *Report) error {
	f.reports = append(f.reports, r)
	return nil
}

func recipient(id uint64, setting model.EmailNotificationSetting) *model.User {
	return &model.User{ID: id, Handle: "u", Email: "u@journaly.test", EmailNotification: setting}
}

func commentEvent(actor uint64, users ...*model.User) Event {
	postID := uint64(7)
	return Event{
		Type:       model.NotificationThreadComment,
		ActorID:    actor,
		Recipients: users,
		Build: func(u *model.User) Delivery {
			return Delivery{
				Email: &mail.Job{Kind: mail.KindThreadComment},
				InApp: &InApp{
					Notification: &model.InAppNotification{Type: model.NotificationThreadComment, PostID: &postID},
					Sub:          &model.ThreadCommentNotification{CommentID: 1},
				},
			}
		},
	}
}

func sorted(ids []uint64) []uint64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestRecipients_ExcludesActorAndDuplicates(t *testing.T) {
	a := recipient(1, model.EmailNotificationImmediate)
	b := recipient(2, model.EmailNotificationImmediate)
	c := recipient(3, model.EmailNotificationImmediate)

	got := Recipients(3, []*model.User{a, b, a, nil, c, b})

	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, uint64(2), got[1].ID)
}

func TestDispatch_DeliversToEverySubscriberButActor(t *testing.T) {
	queue := &fakeQueue{}
	store := &fakeStore{}
	live := &fakeLive{}
	rec := &fakeRecorder{}
	d := NewDispatcher(queue, store, live, rec, 4)

	report := d.Dispatch(context.Background(), commentEvent(3,
		recipient(1, model.EmailNotificationImmediate),
		recipient(2, model.EmailNotificationImmediate),
		recipient(3, model.EmailNotificationImmediate),
	))

	assert.Equal(t, []uint64{1, 2}, sorted(report.Recipients()))
	assert.Equal(t, []uint64{1, 2}, sorted(report.Delivered()))
	assert.Empty(t, report.Failed())
	assert.Len(t, queue.jobs, 2)
	assert.Len(t, store.created, 2)
	assert.Equal(t, []uint64{1, 2}, sorted(live.pushed))
	require.Len(t, rec.reports, 1)
	assert.Same(t, report, rec.reports[0])

	for _, job := range queue.jobs {
		assert.Equal(t, uint64(3), job.ActorID)
		assert.Equal(t, "u@journaly.test", job.To)
		assert.Contains(t, job.ID, report.EventID)
	}
	for _, n := range store.created {
		assert.NotEqual(t, uint64(3), n.UserID)
	}
}

func TestDispatch_EmailOffIsSkipped(t *testing.T) {
	queue := &fakeQueue{}
	store := &fakeStore{}
	d := NewDispatcher(queue, store, nil, nil, 2)

	report := d.Dispatch(context.Background(), commentEvent(9, recipient(1, model.EmailNotificationOff)))

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusSkipped, report.Results[0].Email.Status)
	assert.Equal(t, StatusCreated, report.Results[0].InApp.Status)
	assert.Nil(t, report.Results[0].Job)
	assert.Empty(t, queue.jobs)
	assert.Len(t, store.created, 1)
}

func TestDispatch_FailureIsReportedNotSwallowed(t *testing.T) {
	queue := &fakeQueue{fail: map[uint64]bool{2: true}}
	store := &fakeStore{}
	d := NewDispatcher(queue, store, nil, nil, 2)

	report := d.Dispatch(context.Background(), commentEvent(9,
		recipient(1, model.EmailNotificationImmediate),
		recipient(2, model.EmailNotificationImmediate),
	))

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, uint64(2), failed[0].UserID)
	assert.Equal(t, StatusFailed, failed[0].Email.Status)
	assert.EqualError(t, failed[0].Email.Err, "broker unavailable")
	assert.NotNil(t, failed[0].Job)
	assert.Equal(t, StatusCreated, failed[0].InApp.Status)
	assert.Equal(t, []uint64{1}, report.Delivered())
	assert.Len(t, store.created, 2)
}

func TestDispatch_RespectsConcurrencyLimit(t *testing.T) {
	store := &fakeStore{delay: 5 * time.Millisecond}
	d := NewDispatcher(&fakeQueue{}, store, nil, nil, 2)

	users := make([]*model.User, 0, 10)
	for i := uint64(1); i <= 10; i++ {
		users = append(users, recipient(i, model.EmailNotificationImmediate))
	}
	report := d.Dispatch(context.Background(), commentEvent(99, users...))

	assert.Len(t, report.Delivered(), 10)
	assert.LessOrEqual(t, store.maxSeen.Load(), int32(2))
}

func TestDispatch_NoRecipients(t *testing.T) {
	rec := &fakeRecorder{}
	d := NewDispatcher(&fakeQueue{}, &fakeStore{}, nil, rec, 2)

	report := d.Dispatch(context.Background(), commentEvent(1, recipient(1, model.EmailNotificationImmediate)))

	assert.Empty(t, report.Results)
	assert.Empty(t, rec.reports)
}

func TestReport_NilSafe(t *testing.T) {
	var r *Report
	assert.Nil(t, r.Recipients())
	assert.Nil(t, r.Delivered())
	assert.Nil(t, r.Failed())
}
