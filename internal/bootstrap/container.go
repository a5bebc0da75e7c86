package bootstrap

import (
	"context"
	"log"

	"shiksha-saathi-be/internal/config"
	"shiksha-saathi-be/internal/controller"
	"shiksha-saathi-be/internal/handler"
	"shiksha-saathi-be/internal/pkg/logger"
	"shiksha-saathi-be/internal/pkg/mailer"
	"shiksha-saathi-be/internal/repository/memory"
	"shiksha-saathi-be/internal/repository/unitofwork"
	"shiksha-saathi-be/internal/service"
	"shiksha-saathi-be/internal/websocket"
	"shiksha-saathi-be/pkg/llm/factory"
	"shiksha-saathi-be/pkg/speech"
	"shiksha-saathi-be/pkg/tutor"

	pktNats "shiksha-saathi-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ChatController    controller.IChatController
	QuizController    controller.IQuizController
	TeacherController controller.ITeacherController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	DoubtHandler *handler.DoubtHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. External AI Services
	llmProvider, err := factory.NewLLMProvider(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	tutorClient := tutor.NewClient(cfg.Tutor.BaseURL)
	synthesizer := speech.NewSynthesizer(cfg.Speech.BaseURL, cfg.Speech.Language)
	if synthesizer.Enabled() {
		log.Printf("[INFO] Voice synthesis enabled (%s)", cfg.Speech.BaseURL)
	}

	// In-memory storage for in-flight quiz attempts
	attemptRepo := memory.NewAttemptRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/dashboard.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EventsTopic,
		wsHub,
		natsPub,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	chatService := service.NewChatService(
		uowFactory,
		tutorClient,
		synthesizer,
		publisherService,
		sysLogger,
	)
	quizService := service.NewQuizService(
		uowFactory,
		tutorClient,
		attemptRepo,
		publisherService,
		sysLogger,
	)
	teacherService := service.NewTeacherService(
		uowFactory,
		tutorClient,
		llmProvider,
		publisherService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		DoubtHandler: handler.NewDoubtHandler(wsHub, wsLogger),
		WebSocketHub: wsHub,

		AuthController:    controller.NewAuthController(authService),
		ChatController:    controller.NewChatController(chatService),
		QuizController:    controller.NewQuizController(quizService),
		TeacherController: controller.NewTeacherController(teacherService),

		ConsumerService: consumerService,
	}
}
