package service

import (
	"context"
	"errors"
	"time"

	"forum-live-be/internal/dto"
	"forum-live-be/internal/model"
	"forum-live-be/internal/pkg/logger"
	"forum-live-be/internal/repository"
	"forum-live-be/pkg/events"

	"github.com/google/uuid"
)

// MessageBroadcaster fans a persisted reply out to the thread room.
// Implemented by the realtime Hub.
type MessageBroadcaster interface {
	PublishMessage(threadID string, reply model.Reply)
}

// EventPublisher pushes domain events onto the bus for the
// notification dispatcher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IReplyService interface {
	Create(ctx context.Context, threadID, authorID uuid.UUID, authorName string, req dto.CreateReplyRequest) (*model.Reply, error)
	ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]model.Reply, int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Like(ctx context.Context, replyID, userID uuid.UUID, actorName string) (*dto.LikeReplyResponse, error)
}

type replyService struct {
	replyRepo      repository.ReplyRepository
	threadRepo     repository.ThreadRepository
	broadcaster    MessageBroadcaster
	eventPublisher EventPublisher
	logger         logger.ILogger
}

func NewReplyService(
	replyRepo repository.ReplyRepository,
	threadRepo repository.ThreadRepository,
	broadcaster MessageBroadcaster,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IReplyService {
	return &replyService{
		replyRepo:      replyRepo,
		threadRepo:     threadRepo,
		broadcaster:    broadcaster,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Create persists the reply, then fans it out to the thread room and
// emits REPLY_POSTED for the notification dispatcher. Nothing is
// broadcast if the write fails.
func (s *replyService) Create(ctx context.Context, threadID, authorID uuid.UUID, authorName string, req dto.CreateReplyRequest) (*model.Reply, error) {
	thread, err := s.threadRepo.FindByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reply := &model.Reply{
		ID:         uuid.New(),
		ThreadID:   threadID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    req.Content,
		Image:      req.Image,
		CreatedAt:  time.Now(),
	}
	if req.ReplyingTo != nil {
		reply.ReplyingTo = &model.ReplySnapshot{
			Name:    req.ReplyingTo.Name,
			Content: req.ReplyingTo.Content,
		}
	}

	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.PublishMessage(threadID.String(), *reply)
	}

	if s.eventPublisher != nil {
		payload := map[string]interface{}{
			"thread_id":        threadID.String(),
			"thread_title":     thread.Title,
			"thread_author_id": thread.AuthorID.String(),
			"reply_id":         reply.ID.String(),
			"actor_id":         authorID.String(),
			"actor_name":       authorName,
			"content":          req.Content,
		}
		if req.ReplyingTo != nil {
			payload["replying_to_name"] = req.ReplyingTo.Name
		}
		event := events.BaseEvent{
			Type:       events.TypeReplyPosted,
			Data:       payload,
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("ReplyService", "Failed to publish REPLY_POSTED", map[string]interface{}{
				"reply_id": reply.ID, "error": err.Error(),
			})
		}
	}

	return reply, nil
}

func (s *replyService) ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]model.Reply, int64, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.replyRepo.ListByThread(ctx, threadID, limit, offset)
}

func (s *replyService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	reply, err := s.replyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if reply.AuthorID != userID {
		return ErrForbidden
	}
	return s.replyRepo.Delete(ctx, id)
}

// Like records one like per user per reply. Repeat likes are no-ops
// and do not emit another event.
func (s *replyService) Like(ctx context.Context, replyID, userID uuid.UUID, actorName string) (*dto.LikeReplyResponse, error) {
	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liked, likes, err := s.replyRepo.Like(ctx, replyID, userID)
	if err != nil {
		return nil, err
	}

	if liked && reply.AuthorID != userID && s.eventPublisher != nil {
		thread, err := s.threadRepo.FindByID(ctx, reply.ThreadID)
		threadTitle := ""
		if err == nil {
			threadTitle = thread.Title
		}
		event := events.BaseEvent{
			Type: events.TypeReplyLiked,
			Data: map[string]interface{}{
				"thread_id":       reply.ThreadID.String(),
				"thread_title":    threadTitle,
				"reply_id":        replyID.String(),
				"reply_author_id": reply.AuthorID.String(),
				"actor_id":        userID.String(),
				"actor_name":      actorName,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("ReplyService", "Failed to publish REPLY_LIKED", map[string]interface{}{
				"reply_id": replyID, "error": err.Error(),
			})
		}
	}

	return &dto.LikeReplyResponse{Likes: likes, Liked: liked}, nil
}
