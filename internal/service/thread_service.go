package service

import (
	"context"
	"encoding/json"
	"errors"

	"forum-live-be/internal/dto"
	"forum-live-be/internal/model"
	"forum-live-be/internal/pkg/logger"
	"forum-live-be/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	trendingListSize = 5
)

type IThreadService interface {
	Create(ctx context.Context, authorID uuid.UUID, authorName string, req dto.CreateThreadRequest) (*model.Thread, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Thread, error)
	List(ctx context.Context, q dto.ThreadListQuery) ([]model.Thread, int64, error)
	Trending(ctx context.Context) ([]model.Thread, error)
	Update(ctx context.Context, id, userID uuid.UUID, req dto.UpdateThreadRequest) (*model.Thread, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type threadService struct {
	threadRepo       repository.ThreadRepository
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewThreadService(
	threadRepo repository.ThreadRepository,
	publisherService IPublisherService,
	log logger.ILogger,
) IThreadService {
	return &threadService{
		threadRepo:       threadRepo,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *threadService) Create(ctx context.Context, authorID uuid.UUID, authorName string, req dto.CreateThreadRequest) (*model.Thread, error) {
	thread := &model.Thread{
		ID:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		AuthorID:   authorID,
		AuthorName: authorName,
		Image:      req.Image,
	}

	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return nil, err
	}

	s.logger.Info("ThreadService", "Thread created", map[string]interface{}{
		"thread_id": thread.ID, "author_id": authorID,
	})
	return thread, nil
}

// GetByID loads one thread and queues a view increment. Counting happens
// asynchronously so a slow write never delays the read path.
func (s *threadService) GetByID(ctx context.Context, id uuid.UUID) (*model.Thread, error) {
	thread, err := s.threadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishThreadViewedMessage{ThreadId: thread.ID})
	if err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Warn("ThreadService", "Failed to queue view event", map[string]interface{}{
				"thread_id": thread.ID, "error": err.Error(),
			})
		}
	}

	return thread, nil
}

func (s *threadService) List(ctx context.Context, q dto.ThreadListQuery) ([]model.Thread, int64, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return s.threadRepo.List(ctx, q.Category, limit, offset)
}

func (s *threadService) Trending(ctx context.Context) ([]model.Thread, error) {
	return s.threadRepo.Trending(ctx, trendingListSize)
}

func (s *threadService) Update(ctx context.Context, id, userID uuid.UUID, req dto.UpdateThreadRequest) (*model.Thread, error) {
	thread, err := s.threadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if thread.AuthorID != userID {
		return nil, ErrForbidden
	}

	thread.Title = req.Title
	thread.Content = req.Content
	if err := s.threadRepo.Update(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *threadService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	thread, err := s.threadRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if thread.AuthorID != userID {
		return ErrForbidden
	}
	return s.threadRepo.Delete(ctx, id)
}
