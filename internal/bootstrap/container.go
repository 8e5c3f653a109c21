package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/sanjay123-Ad/AI-Backend/internal/config"
	"github.com/sanjay123-Ad/AI-Backend/internal/controller"
	"github.com/sanjay123-Ad/AI-Backend/internal/pkg/logger"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/unitofwork"
	"github.com/sanjay123-Ad/AI-Backend/internal/service"
	"github.com/sanjay123-Ad/AI-Backend/pkg/llm/factory"

	pktNats "github.com/sanjay123-Ad/AI-Backend/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	ImageController controller.IImageController

	// Background Services (Exposed for main.go to run)
	UsageService service.IUsageService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Completion Providers
	providers := factory.NewRegistry(factory.Credentials{
		Gemini:     cfg.Keys.GoogleGemini,
		GitHub:     cfg.Keys.GitHubToken,
		OpenRouter: cfg.Keys.OpenRouter,
	}, time.Duration(cfg.Ai.ProviderTimeoutSeconds)*time.Second)

	// 3.5 Infrastructure
	// NATS is optional; the app runs fine with the in-process bus only.
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
		rdb = nil
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Ai.CompletionTopic, pubSub, natsPub)
	usageService := service.NewUsageService(
		pubSub,
		cfg.Ai.CompletionTopic,
		uowFactory,
		rdb,
	)

	chatService := service.NewChatService(
		uowFactory,
		providers,
		publisherService,
		sysLogger,
	)
	imageService := service.NewImageService(cfg.Keys.Pexels)

	// 5. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService),
		ImageController: controller.NewImageController(imageService),

		UsageService: usageService,
	}
}
