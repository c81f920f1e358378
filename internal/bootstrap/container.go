package bootstrap

import (
	"context"
	"log"

	"forum-live-be/internal/config"
	"forum-live-be/internal/handler"
	"forum-live-be/internal/pkg/logger"
	"forum-live-be/internal/pkg/mailer"
	"forum-live-be/internal/realtime"
	"forum-live-be/internal/repository/implementation"
	"forum-live-be/internal/service"

	pktNats "forum-live-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Handlers
	AuthHandler         handler.IAuthHandler
	ThreadHandler       handler.IThreadHandler
	ReplyHandler        handler.IReplyHandler
	NotificationHandler *handler.NotificationHandler

	// Background services (exposed for main.go to run)
	ViewConsumerService service.IViewConsumerService

	// Realtime
	Hub *realtime.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Realtime hub
	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	hub := realtime.NewHub(rdb, wsLogger, realtime.Options{
		TypingTTL:   cfg.Realtime.TypingTTL,
		TypingSweep: cfg.Realtime.TypingSweep,
		SendBuffer:  cfg.Realtime.SendBuffer,
	})
	go hub.Run(context.Background())

	// 3. Repositories
	userRepo := implementation.NewUserRepository(db)
	threadRepo := implementation.NewThreadRepository(db)
	replyRepo := implementation.NewReplyRepository(db)
	notifRepo := implementation.NewNotificationRepository(db)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Realtime.View.Topic, pubSub)
	viewConsumerService := service.NewViewConsumerService(pubSub, cfg.Realtime.View.Topic, threadRepo)

	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	authService := service.NewAuthService(userRepo, cfg.App.JWTSecret)
	threadService := service.NewThreadService(threadRepo, publisherService, sysLogger)
	replyService := service.NewReplyService(replyRepo, threadRepo, hub, eventPublisher, sysLogger)

	notifService := service.NewNotificationService(notifRepo, userRepo, natsSub, hub, emailService, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	// 5. Handlers
	return &Container{
		AuthHandler:         handler.NewAuthHandler(authService),
		ThreadHandler:       handler.NewThreadHandler(threadService),
		ReplyHandler:        handler.NewReplyHandler(replyService),
		NotificationHandler: handler.NewNotificationHandler(notifService, hub, wsLogger),

		ViewConsumerService: viewConsumerService,

		Hub: hub,
	}
}
