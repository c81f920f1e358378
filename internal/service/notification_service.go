package service

import (
	"context"
	"encoding/json"
	"fmt"

	"forum-live-be/internal/model"
	"forum-live-be/internal/pkg/logger"
	"forum-live-be/internal/pkg/mailer"
	"forum-live-be/internal/repository"
	"forum-live-be/pkg/events"
	pktNats "forum-live-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how real-time pushes reach recipients.
// Implemented by the realtime Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	IsUserOnline(userID uuid.UUID) bool
	IsUserInRoom(userID uuid.UUID, threadID string) bool
}

type NotificationService struct {
	repo       repository.NotificationRepository
	users      repository.UserRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	users repository.UserRepository,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	emailService mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		repo:       repo,
		users:      users,
		subscriber: sub,
		delivery:   delivery,
		mailer:     emailService,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-dispatcher", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Dispatcher started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.TypeReplyPosted:
		return s.handleReplyPosted(ctx, event.Payload())
	case events.TypeReplyLiked:
		return s.handleReplyLiked(ctx, event.Payload())
	default:
		s.logger.Debug("NotificationService", "Ignoring event", map[string]interface{}{"type": event.EventType()})
		return nil
	}
}

// handleReplyPosted resolves reply and mention recipients for a new
// message. A user is notified at most once per message, reply kind winning
// over mention; the author and anyone currently viewing the thread room are
// excluded.
func (s *NotificationService) handleReplyPosted(ctx context.Context, payload map[string]interface{}) error {
	threadID, err := parseUUID(payload, "thread_id")
	if err != nil {
		s.logger.Warn("NotificationService", "REPLY_POSTED missing thread_id", map[string]interface{}{"error": err.Error()})
		return nil
	}
	actorID, err := parseUUID(payload, "actor_id")
	if err != nil {
		s.logger.Warn("NotificationService", "REPLY_POSTED missing actor_id", map[string]interface{}{"error": err.Error()})
		return nil
	}
	actorName := getString(payload, "actor_name")
	threadTitle := getString(payload, "thread_title")
	content := getString(payload, "content")

	type target struct {
		user *model.User
		kind string
	}
	targets := make([]target, 0, 4)
	queued := make(map[uuid.UUID]struct{})

	add := func(u *model.User, kind string) {
		if u == nil || u.Id == actorID {
			return
		}
		if _, dup := queued[u.Id]; dup {
			return
		}
		queued[u.Id] = struct{}{}
		targets = append(targets, target{user: u, kind: kind})
	}

	// Thread author and the quoted user are "replied-to".
	if authorID, err := parseUUID(payload, "thread_author_id"); err == nil {
		if u, err := s.users.FindByID(ctx, authorID); err == nil {
			add(u, model.NotificationKindReply)
		}
	}
	if quotedName := getString(payload, "replying_to_name"); quotedName != "" {
		if u, err := s.users.FindByName(ctx, quotedName); err == nil {
			add(u, model.NotificationKindReply)
		}
	}

	// @name tokens, deduplicated per message, resolved against the user store.
	if names := ExtractMentions(content); len(names) > 0 {
		mentioned, err := s.users.FindByNames(ctx, names)
		if err != nil {
			return err
		}
		for i := range mentioned {
			add(&mentioned[i], model.NotificationKindMention)
		}
	}

	for _, t := range targets {
		// Active room members already saw the message.
		if s.delivery != nil && s.delivery.IsUserInRoom(t.user.Id, threadID.String()) {
			continue
		}

		notif := s.buildNotification(t.user.Id, actorID, actorName, t.kind, threadID, threadTitle)
		s.dispatch(ctx, t.user, notif)
	}

	return nil
}

func (s *NotificationService) handleReplyLiked(ctx context.Context, payload map[string]interface{}) error {
	threadID, err := parseUUID(payload, "thread_id")
	if err != nil {
		return nil
	}
	actorID, err := parseUUID(payload, "actor_id")
	if err != nil {
		return nil
	}
	recipientID, err := parseUUID(payload, "reply_author_id")
	if err != nil {
		return nil
	}
	if recipientID == actorID {
		return nil
	}

	recipient, err := s.users.FindByID(ctx, recipientID)
	if err != nil {
		return nil
	}

	notif := s.buildNotification(
		recipientID, actorID,
		getString(payload, "actor_name"),
		model.NotificationKindLike,
		threadID, getString(payload, "thread_title"),
	)
	s.dispatch(ctx, recipient, notif)
	return nil
}

// dispatch persists the notification, then pushes it to a live connection
// or falls back to email for offline recipients. Nothing is pushed when the
// durable write fails.
func (s *NotificationService) dispatch(ctx context.Context, recipient *model.User, notif model.Notification) {
	if err := s.repo.Create(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Failed to save notification", map[string]interface{}{
			"user_id": notif.UserID, "error": err.Error(),
		})
		return
	}

	if s.delivery != nil && s.delivery.IsUserOnline(notif.UserID) {
		s.delivery.Send(notif.UserID, notif)
		return
	}

	if s.mailer != nil && recipient.EmailNotifications {
		if err := s.mailer.SendNotification(recipient.Email, notif.ActorName, notif.Message, notif.ThreadTitle); err != nil {
			s.logger.Warn("NotificationService", "Email delivery failed", map[string]interface{}{
				"user_id": notif.UserID, "error": err.Error(),
			})
		}
	}
}

func (s *NotificationService) buildNotification(userID, actorID uuid.UUID, actorName, kind string, threadID uuid.UUID, threadTitle string) model.Notification {
	var msg string
	switch kind {
	case model.NotificationKindMention:
		msg = fmt.Sprintf("%s mentioned you in \"%s\"", actorName, threadTitle)
	case model.NotificationKindLike:
		msg = fmt.Sprintf("%s liked your message in \"%s\"", actorName, threadTitle)
	default:
		msg = fmt.Sprintf("%s replied in \"%s\"", actorName, threadTitle)
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"action_url": fmt.Sprintf("/thread/%s", threadID),
	})

	return model.Notification{
		ID:          uuid.New(),
		UserID:      userID,
		ActorID:     actorID,
		ActorName:   actorName,
		Kind:        kind,
		Message:     msg,
		ThreadID:    threadID,
		ThreadTitle: threadTitle,
		Metadata:    datatypes.JSON(meta),
	}
}

// List fetches a user's notification history, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.ListByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func getString(payload map[string]interface{}, key string) string {
	v, _ := payload[key].(string)
	return v
}

func parseUUID(payload map[string]interface{}, key string) (uuid.UUID, error) {
	v, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("payload field %q missing or not a string", key)
	}
	return uuid.Parse(v)
}
