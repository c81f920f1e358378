package service

import (
	"context"
	"testing"
	"time"

	"forum-live-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadCRUDAndOwnership(t *testing.T) {
	threads := newFakeThreadRepo()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewThreadService(threads, NewPublisherService("views-test", pubSub), testLogger{})
	ctx := context.Background()

	owner := uuid.New()
	thread, err := svc.Create(ctx, owner, "alice", dto.CreateThreadRequest{
		Title:    "First thread",
		Content:  "hello world",
		Category: "general",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", thread.AuthorName)

	updated, err := svc.Update(ctx, thread.ID, owner, dto.UpdateThreadRequest{
		Title:   "Edited title",
		Content: "edited body",
	})
	require.NoError(t, err)
	assert.Equal(t, "Edited title", updated.Title)

	_, err = svc.Update(ctx, thread.ID, uuid.New(), dto.UpdateThreadRequest{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, thread.ID, uuid.New()), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, thread.ID, owner))
	_, err = svc.GetByID(ctx, thread.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThreadListClampsPaging(t *testing.T) {
	threads := newFakeThreadRepo()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewThreadService(threads, NewPublisherService("views-test", pubSub), testLogger{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, uuid.New(), "alice", dto.CreateThreadRequest{
			Title:    "Thread",
			Content:  "body",
			Category: "general",
		})
		require.NoError(t, err)
	}

	list, total, err := svc.List(ctx, dto.ThreadListQuery{Limit: -5, Offset: -1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 3)

	list, _, err = svc.List(ctx, dto.ThreadListQuery{Category: "nope"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestViewEventsFlowThroughTheBus(t *testing.T) {
	threads := newFakeThreadRepo()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	topic := "views-test"
	svc := NewThreadService(threads, NewPublisherService(topic, pubSub), testLogger{})
	consumer := NewViewConsumerService(pubSub, topic, threads)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	thread, err := svc.Create(ctx, uuid.New(), "alice", dto.CreateThreadRequest{
		Title:    "Counted thread",
		Content:  "body",
		Category: "general",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.GetByID(ctx, thread.ID)
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return threads.viewsOf(thread.ID) == 3
	}, 2*time.Second, 10*time.Millisecond, "each detail read adds one view")
}
