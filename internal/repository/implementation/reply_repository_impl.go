package implementation

import (
	"context"
	"errors"

	"forum-live-be/internal/model"
	"forum-live-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReplyRepositoryImpl struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) repository.ReplyRepository {
	return &ReplyRepositoryImpl{db: db}
}

func (r *ReplyRepositoryImpl) Create(ctx context.Context, reply *model.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *ReplyRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Reply, error) {
	var reply model.Reply
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reply).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *ReplyRepositoryImpl) ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]model.Reply, int64, error) {
	var replies []model.Reply
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Reply{}).Where("thread_id = ?", threadID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&replies).Error

	return replies, total, err
}

func (r *ReplyRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Reply{}, "id = ?", id).Error
}

func (r *ReplyRepositoryImpl) Like(ctx context.Context, replyID, userID uuid.UUID) (bool, int64, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.ReplyLike{ReplyID: replyID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		liked = res.RowsAffected > 0
		if !liked {
			return nil
		}
		return tx.Model(&model.Reply{}).
			Where("id = ?", replyID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		return false, 0, err
	}

	var likes int64
	err = r.db.WithContext(ctx).
		Model(&model.Reply{}).
		Select("likes").
		Where("id = ?", replyID).
		Scan(&likes).Error
	return liked, likes, err
}
