package repository

import (
	"context"

	"forum-live-be/internal/model"

	"github.com/google/uuid"
)

type ThreadRepository interface {
	Create(ctx context.Context, thread *model.Thread) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Thread, error)
	List(ctx context.Context, category string, limit, offset int) ([]model.Thread, int64, error)
	Trending(ctx context.Context, limit int) ([]model.Thread, error)
	Update(ctx context.Context, thread *model.Thread) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementViews folds view-counter batches into the row.
	IncrementViews(ctx context.Context, id uuid.UUID, delta int64) error
}
