package repository

import (
	"context"

	"forum-live-be/internal/model"

	"github.com/google/uuid"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *model.Reply) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reply, error)
	ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]model.Reply, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Like records one like per user per reply. It reports whether the like
	// was newly created (false means the user had already liked it) and the
	// resulting like count.
	Like(ctx context.Context, replyID, userID uuid.UUID) (liked bool, likes int64, err error)
}
