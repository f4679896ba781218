package bootstrap

import (
	"context"
	"time"

	"gymkaana-be/internal/config"
	"gymkaana-be/internal/controller"
	"gymkaana-be/internal/handler"
	"gymkaana-be/internal/pkg/logger"
	"gymkaana-be/internal/pkg/mailer"
	"gymkaana-be/internal/pkg/qrcode"
	"gymkaana-be/internal/pkg/serverutils"
	"gymkaana-be/internal/repository/memory"
	"gymkaana-be/internal/repository/unitofwork"
	"gymkaana-be/internal/service"
	"gymkaana-be/internal/websocket"
	"gymkaana-be/pkg/booking"
	bookingEvents "gymkaana-be/pkg/booking/events"

	pktNats "gymkaana-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	BookingController  controller.IBookingController
	GymController      controller.IGymController
	PlanController     controller.PlanController
	ActivityController controller.IActivityController

	// Middleware
	JwtMiddleware         fiber.Handler
	OptionalJwtMiddleware fiber.Handler

	// Background Services (started by Start)
	ConsumerService service.IConsumerService
	FeedService     *service.FeedService

	// WebSockets & Feed
	FeedHandler  *handler.FeedHandler
	WebSocketHub *websocket.Hub

	Logger logger.ILogger

	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	rdb     *redis.Client
	pubSub  *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		sysLogger,
	)
	qrRenderer := qrcode.NewRenderer(cfg.Booking.QRCodeSize)

	// 2. Side-effect queue. Start subscribes the worker before the server
	// accepts requests.
	pubSub := newSideEffectQueue(watermill.NewStdLogger(false, false))

	// 3. Infrastructure
	// NATS
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.Messaging.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.Messaging.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		}
		natsSub, err = pktNats.NewSubscriber(cfg.Messaging.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		}
	} else {
		sysLogger.Warn("BOOTSTRAP", "NATS_URL not set, domain events disabled", nil)
	}

	// Redis
	rdb := newRedisClient(cfg.Messaging.RedisURL, sysLogger)

	// WebSocket Hub
	feedLogger := logger.NewIsolatedLogger(cfg.App.FeedLogFilePath)
	wsHub := websocket.NewHub(rdb, feedLogger)

	// 4. Booking domain components
	ownerCache := memory.NewGymOwnerCache(cfg.Booking.OwnerCacheTTL)
	gate := booking.NewGate(sysLogger, ownerCache)
	resolver := booking.NewResolver(cfg.Booking.ShortReferenceLength)
	lifecycle := booking.NewLifecycle(cfg.Booking.CancellationGrace)
	eventPublisher := bookingEvents.NewNatsPublisher(natsPub, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Messaging.SideEffectTopic, pubSub)
	dispatcher := service.NewSideEffectDispatcher(publisherService, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Messaging.SideEffectTopic,
		uowFactory,
		eventPublisher,
		emailService,
		qrRenderer,
		sysLogger,
	)

	bookingService := service.NewBookingService(
		uowFactory,
		resolver,
		gate,
		lifecycle,
		dispatcher,
		sysLogger,
		service.BookingServiceConfig{
			ShortReferenceLength:  cfg.Booking.ShortReferenceLength,
			RestrictMemberListing: cfg.Booking.RestrictMemberListing,
		},
		time.Now,
	)
	gymService := service.NewGymService(uowFactory, gate, dispatcher, time.Now)
	planService := service.NewPlanService(uowFactory, gate, time.Now)
	activityService := service.NewActivityService(uowFactory)

	// Feed Domain
	feedService := service.NewFeedService(natsSub, wsHub, feedLogger)
	feedHandler := handler.NewFeedHandler(wsHub, cfg.Auth.JWTSecret, feedLogger)

	// 6. Controllers
	return &Container{
		BookingController:  controller.NewBookingController(bookingService),
		GymController:      controller.NewGymController(gymService),
		PlanController:     controller.NewPlanController(planService),
		ActivityController: controller.NewActivityController(activityService),

		JwtMiddleware:         serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret),
		OptionalJwtMiddleware: serverutils.NewOptionalJwtMiddleware(cfg.Auth.JWTSecret),

		ConsumerService: consumerService,
		FeedService:     feedService,

		FeedHandler:  feedHandler,
		WebSocketHub: wsHub,

		Logger: sysLogger,

		natsPub: natsPub,
		natsSub: natsSub,
		rdb:     rdb,
		pubSub:  pubSub,
	}
}

// Start runs the background workers until ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	go c.FeedService.Start(ctx)

	c.Logger.Info("BOOTSTRAP", "Starting side-effect consumer", nil)
	return c.ConsumerService.Consume(ctx)
}

// Close releases broker connections. Call after Start's context is done.
func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.pubSub.Close()
	_ = c.Logger.Sync()
}

// newSideEffectQueue keeps no history: consumed messages are released.
func newSideEffectQueue(log watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 256,
		},
		log,
	)
}

func newRedisClient(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		log.Warn("BOOTSTRAP", "REDIS_URL not set, live feed runs on this instance only", nil)
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to Redis, live feed runs on this instance only", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
