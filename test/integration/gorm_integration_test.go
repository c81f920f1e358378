package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"forum-live-be/internal/model"
	"forum-live-be/internal/repository/implementation"
	"forum-live-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepositories(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	require.NoError(t, gormDB.AutoMigrate(
		&model.User{}, &model.Thread{}, &model.Reply{}, &model.ReplyLike{}, &model.Notification{},
	))

	ctx := context.Background()
	users := implementation.NewUserRepository(gormDB)
	threads := implementation.NewThreadRepository(gormDB)
	replies := implementation.NewReplyRepository(gormDB)
	notifications := implementation.NewNotificationRepository(gormDB)

	suffix := uuid.NewString()[:8]
	author := &model.User{
		Id:           uuid.New(),
		Name:         "it_author_" + suffix,
		Email:        "it-author-" + suffix + "@example.com",
		PasswordHash: "x",
	}
	liker := &model.User{
		Id:           uuid.New(),
		Name:         "it_liker_" + suffix,
		Email:        "it-liker-" + suffix + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, users.Create(ctx, author))
	require.NoError(t, users.Create(ctx, liker))

	t.Run("user lookups", func(t *testing.T) {
		found, err := users.FindByName(ctx, author.Name)
		require.NoError(t, err)
		assert.Equal(t, author.Id, found.Id)

		batch, err := users.FindByNames(ctx, []string{author.Name, "no_such_user_" + suffix})
		require.NoError(t, err)
		assert.Len(t, batch, 1, "unknown names are silently absent")
	})

	thread := &model.Thread{
		ID:         uuid.New(),
		Title:      "Integration thread " + suffix,
		Content:    "body",
		Category:   "it",
		AuthorID:   author.Id,
		AuthorName: author.Name,
	}
	require.NoError(t, threads.Create(ctx, thread))

	t.Run("view counter folds increments", func(t *testing.T) {
		require.NoError(t, threads.IncrementViews(ctx, thread.ID, 1))
		require.NoError(t, threads.IncrementViews(ctx, thread.ID, 2))

		got, err := threads.FindByID(ctx, thread.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Views)
	})

	reply := &model.Reply{
		ID:         uuid.New(),
		ThreadID:   thread.ID,
		AuthorID:   author.Id,
		AuthorName: author.Name,
		Content:    "first reply",
	}
	require.NoError(t, replies.Create(ctx, reply))

	t.Run("like is once per user", func(t *testing.T) {
		liked, likes, err := replies.Like(ctx, reply.ID, liker.Id)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, int64(1), likes)

		liked, likes, err = replies.Like(ctx, reply.ID, liker.Id)
		require.NoError(t, err)
		assert.False(t, liked, "repeat like is a no-op")
		assert.Equal(t, int64(1), likes)
	})

	t.Run("notification read transition is idempotent", func(t *testing.T) {
		notif := &model.Notification{
			ID:          uuid.New(),
			UserID:      author.Id,
			ActorID:     liker.Id,
			ActorName:   liker.Name,
			Kind:        model.NotificationKindLike,
			Message:     "liked your message",
			ThreadID:    thread.ID,
			ThreadTitle: thread.Title,
		}
		require.NoError(t, notifications.Create(ctx, notif))

		count, err := notifications.UnreadCount(ctx, author.Id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(1))

		require.NoError(t, notifications.MarkAsRead(ctx, notif.ID))
		require.NoError(t, notifications.MarkAsRead(ctx, notif.ID))
		require.NoError(t, notifications.MarkAsRead(ctx, uuid.New()), "missing id is not an error")

		listed, _, err := notifications.ListByUserID(ctx, author.Id, 10, 0)
		require.NoError(t, err)
		require.NotEmpty(t, listed)
		assert.True(t, listed[0].IsRead)
		assert.NotNil(t, listed[0].ReadAt)
	})

	// Cleanup
	gormDB.Exec("DELETE FROM notifications WHERE user_id = ?", author.Id)
	gormDB.Exec("DELETE FROM reply_likes WHERE reply_id = ?", reply.ID)
	gormDB.Exec("DELETE FROM replies WHERE id = ?", reply.ID)
	gormDB.Exec("DELETE FROM threads WHERE id = ?", thread.ID)
	gormDB.Exec("DELETE FROM users WHERE id IN ?", []uuid.UUID{author.Id, liker.Id})
}
