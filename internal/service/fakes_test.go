package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"forum-live-be/internal/model"
	"forum-live-be/internal/repository"
	"forum-live-be/pkg/events"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Id == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByName(ctx context.Context, name string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Name == name {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByNames(ctx context.Context, names []string) ([]model.User, error) {
	var out []model.User
	for _, name := range names {
		if u, err := f.FindByName(ctx, name); err == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	created    []model.Notification
	failCreate bool
	read       map[uuid.UUID]bool
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	if f.failCreate {
		return errors.New("db down")
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !f.read[n.ID] {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	if f.read == nil {
		f.read = make(map[uuid.UUID]bool)
	}
	f.read[id] = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if f.read == nil {
		f.read = make(map[uuid.UUID]bool)
	}
	for _, n := range f.created {
		if n.UserID == userID {
			f.read[n.ID] = true
		}
	}
	return nil
}

type fakeDelivery struct {
	online map[uuid.UUID]bool
	inRoom map[uuid.UUID]string
	sent   []model.Notification
}

func (f *fakeDelivery) Send(userID uuid.UUID, n model.Notification) {
	f.sent = append(f.sent, n)
}

func (f *fakeDelivery) IsUserOnline(userID uuid.UUID) bool {
	return f.online[userID]
}

func (f *fakeDelivery) IsUserInRoom(userID uuid.UUID, threadID string) bool {
	return f.inRoom[userID] == threadID
}

type fakeMailer struct {
	sentTo []string
}

func (f *fakeMailer) SendNotification(toEmail, actorName, message, threadTitle string) error {
	f.sentTo = append(f.sentTo, toEmail)
	return nil
}

type fakeThreadRepo struct {
	mu      sync.Mutex
	threads map[uuid.UUID]*model.Thread
	views   map[uuid.UUID]int64
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{
		threads: make(map[uuid.UUID]*model.Thread),
		views:   make(map[uuid.UUID]int64),
	}
}

func (f *fakeThreadRepo) Create(ctx context.Context, thread *model.Thread) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *thread
	f.threads[thread.ID] = &copied
	return nil
}

func (f *fakeThreadRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.threads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeThreadRepo) List(ctx context.Context, category string, limit, offset int) ([]model.Thread, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Thread
	for _, t := range f.threads {
		if category == "" || t.Category == category {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (f *fakeThreadRepo) Trending(ctx context.Context, limit int) ([]model.Thread, error) {
	out, _, _ := f.List(ctx, "", limit, 0)
	return out, nil
}

func (f *fakeThreadRepo) Update(ctx context.Context, thread *model.Thread) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *thread
	f.threads[thread.ID] = &copied
	return nil
}

func (f *fakeThreadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.threads, id)
	return nil
}

func (f *fakeThreadRepo) IncrementViews(ctx context.Context, id uuid.UUID, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.threads[id]; !ok {
		return repository.ErrNotFound
	}
	f.views[id] += delta
	return nil
}

type fakeReplyRepo struct {
	replies map[uuid.UUID]*model.Reply
	likes   map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{
		replies: make(map[uuid.UUID]*model.Reply),
		likes:   make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeReplyRepo) Create(ctx context.Context, reply *model.Reply) error {
	copied := *reply
	f.replies[reply.ID] = &copied
	return nil
}

func (f *fakeReplyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reply, error) {
	r, ok := f.replies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReplyRepo) ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]model.Reply, int64, error) {
	var out []model.Reply
	for _, r := range f.replies {
		if r.ThreadID == threadID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (f *fakeReplyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.replies, id)
	return nil
}

func (f *fakeReplyRepo) Like(ctx context.Context, replyID, userID uuid.UUID) (bool, int64, error) {
	r, ok := f.replies[replyID]
	if !ok {
		return false, 0, repository.ErrNotFound
	}
	set, ok := f.likes[replyID]
	if !ok {
		set = make(map[uuid.UUID]bool)
		f.likes[replyID] = set
	}
	if set[userID] {
		return false, r.Likes, nil
	}
	set[userID] = true
	r.Likes++
	return true, r.Likes, nil
}

type fakeBroadcaster struct {
	published []struct {
		ThreadID string
		Reply    model.Reply
	}
}

func (f *fakeBroadcaster) PublishMessage(threadID string, reply model.Reply) {
	f.published = append(f.published, struct {
		ThreadID string
		Reply    model.Reply
	}{threadID, reply})
}

type fakeEventPublisher struct {
	events  []events.Event
	failing bool
}

func (f *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	if f.failing {
		return errors.New("nats down")
	}
	f.events = append(f.events, event)
	return nil
}

func seedUser(repo *fakeUserRepo, name string) model.User {
	u := model.User{
		Id:                 uuid.New(),
		Name:               name,
		Email:              name + "@example.com",
		EmailNotifications: true,
		CreatedAt:          time.Now(),
	}
	repo.users = append(repo.users, u)
	return u
}

func (f *fakeThreadRepo) viewsOf(id uuid.UUID) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.views[id]
}
