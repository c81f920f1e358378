package implementation

import (
	"context"
	"errors"

	"forum-live-be/internal/model"
	"forum-live-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ThreadRepositoryImpl struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) repository.ThreadRepository {
	return &ThreadRepositoryImpl{db: db}
}

func (r *ThreadRepositoryImpl) Create(ctx context.Context, thread *model.Thread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *ThreadRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Thread, error) {
	var thread model.Thread
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&thread).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *ThreadRepositoryImpl) List(ctx context.Context, category string, limit, offset int) ([]model.Thread, int64, error) {
	var threads []model.Thread
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Thread{})
	if category != "" {
		db = db.Where("category = ?", category)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&threads).Error

	return threads, total, err
}

func (r *ThreadRepositoryImpl) Trending(ctx context.Context, limit int) ([]model.Thread, error) {
	var threads []model.Thread
	err := r.db.WithContext(ctx).
		Order("views DESC, likes DESC").
		Limit(limit).
		Find(&threads).Error
	return threads, err
}

func (r *ThreadRepositoryImpl) Update(ctx context.Context, thread *model.Thread) error {
	return r.db.WithContext(ctx).Save(thread).Error
}

func (r *ThreadRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Thread{}, "id = ?", id).Error
}

func (r *ThreadRepositoryImpl) IncrementViews(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Thread{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
}
