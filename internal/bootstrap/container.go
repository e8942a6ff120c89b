package bootstrap

import (
	"log"

	"notes-api/internal/config"
	"notes-api/internal/controller"
	"notes-api/internal/pkg/logger"
	"notes-api/internal/pkg/serverutils"
	"notes-api/internal/pkg/validation"
	"notes-api/internal/repository/memory"
	"notes-api/internal/repository/unitofwork"
	"notes-api/internal/service"
	pktNats "notes-api/pkg/nats"
	"notes-api/pkg/redisstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	NoteController controller.INoteController
	TagController  controller.ITagController

	// Middleware
	AuthMiddleware fiber.Handler
	LoginLimiter   fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	activityLogger := logger.NewIsolatedLogger(cfg.App.ActivityLogPath)
	validator := validation.New()
	c.Logger = sysLogger

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Optional Infrastructure
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var limiterStorage fiber.Storage
	if cfg.App.RedisURL != "" {
		store, err := redisstore.NewFromURL(cfg.App.RedisURL, "notes-api:limiter:")
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis, login limiter stays in memory: %v", err)
		} else {
			limiterStorage = store
			c.closers = append(c.closers, func() { store.Close() })
		}
	}

	var tokenCache *memory.TokenCache
	if cfg.Auth.TokenCacheTTL > 0 {
		tokenCache = memory.NewTokenCache(cfg.Auth.TokenCacheTTL)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.App.ActivityTopic,
		activityLogger,
		forwarder,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, validator, tokenCache, publisherService, sysLogger, cfg.Auth.BcryptCost)
	noteService := service.NewNoteService(uowFactory, validator, publisherService, sysLogger)
	tagService := service.NewTagService(uowFactory, validator, publisherService, sysLogger)

	// 5. Middleware
	c.AuthMiddleware = serverutils.AuthMiddleware(authService)
	c.LoginLimiter = serverutils.LoginRateLimiter(cfg.App.LoginRateLimit, cfg.App.LoginRateWindow, limiterStorage)

	// 6. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.NoteController = controller.NewNoteController(noteService)
	c.TagController = controller.NewTagController(tagService)

	return c
}

// Close releases the bus and any external connections, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
