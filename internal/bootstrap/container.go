package bootstrap

import (
	"context"
	"log"

	"reflecto-be/internal/config"
	"reflecto-be/internal/controller"
	"reflecto-be/internal/handler"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/pkg/mailer"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/repository/implementation"
	"reflecto-be/internal/repository/unitofwork"
	"reflecto-be/internal/service"
	"reflecto-be/internal/websocket"
	"reflecto-be/pkg/assistant"
	"reflecto-be/pkg/embedding"
	"reflecto-be/pkg/queue"

	pktNats "reflecto-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController           controller.IAuthController
	OAuthController          controller.IOAuthController
	UserController           controller.IUserController
	NotebookController       controller.INotebookController
	PublicNotebookController controller.IPublicNotebookController
	EntryController          controller.IEntryController
	TagController            controller.ITagController
	ChatController           controller.IChatController
	SubmissionController     controller.ISubmissionController
	SystemController         controller.ISystemController

	// Background services, run from main
	ConsumerService service.IConsumerService

	// WebSockets & notifications
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	authMiddleware := serverutils.NewAuthMiddleware(cfg.Auth.JWTSecret)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// In-process bus for embedding jobs.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	queueMetrics := queue.NewMetrics()

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewLocalProvider(768)
		log.Printf("[INFO] Using Embedding Provider: LOCAL")
	}

	var assistantProvider assistant.Provider
	if cfg.Ai.AssistantProvider == "ollama" {
		assistantProvider = assistant.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.AssistantModel)
		log.Printf("[INFO] Using Assistant Provider: OLLAMA (%s)", cfg.Ai.AssistantModel)
	} else {
		assistantProvider = assistant.NewTemplateProvider(cfg.Ai.AssistantName)
		log.Printf("[INFO] Using Assistant Provider: TEMPLATE")
	}

	// NATS event bus. Degrades to nil when unreachable: every publish
	// site handles the nil publisher.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis for websocket fan-out across instances.
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(cfg.App.EmbedEntryTopic, pubSub, queueMetrics)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedEntryTopic,
		uowFactory,
		embeddingProvider,
		queueMetrics,
		natsPub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.Auth, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, cfg.Auth, sysLogger)
	userService := service.NewUserService(uowFactory)

	publicNotebookService := service.NewPublicNotebookService(uowFactory)
	notebookService := service.NewNotebookService(uowFactory, publicNotebookService)
	entryService := service.NewEntryService(uowFactory, publisherService, sysLogger)
	tagService := service.NewTagService(uowFactory)

	chatService := service.NewChatService(uowFactory, assistantProvider, cfg.Ai.AssistantName, natsPub, sysLogger)
	submissionService := service.NewSubmissionService(uowFactory, natsPub, sysLogger)
	systemService := service.NewSystemService(uowFactory, queueMetrics)

	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go func() {
			if err := notifService.Start(); err != nil {
				sysLogger.Error("Bootstrap", "Failed to start notification consumers", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	notifHandler := handler.NewNotificationHandler(notifService, authMiddleware, wsHub, wsLogger)

	return &Container{
		AuthController:           controller.NewAuthController(authService),
		OAuthController:          controller.NewOAuthController(oauthService, cfg.App.ClientURL),
		UserController:           controller.NewUserController(userService, authMiddleware),
		NotebookController:       controller.NewNotebookController(notebookService, authMiddleware),
		PublicNotebookController: controller.NewPublicNotebookController(publicNotebookService),
		EntryController:          controller.NewEntryController(entryService, authMiddleware),
		TagController:            controller.NewTagController(tagService, authMiddleware),
		ChatController:           controller.NewChatController(chatService, authMiddleware),
		SubmissionController:     controller.NewSubmissionController(submissionService, authMiddleware),
		SystemController:         controller.NewSystemController(systemService, authMiddleware),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		Logger: sysLogger,
	}
}
