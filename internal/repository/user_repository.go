package repository

import (
	"context"

	"forum-live-be/internal/model"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByName(ctx context.Context, name string) (*model.User, error)
	// FindByNames resolves a batch of names; unknown names are simply absent
	// from the result. Used by mention parsing.
	FindByNames(ctx context.Context, names []string) ([]model.User, error)
}
