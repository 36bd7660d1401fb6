package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/adapter/ai/anthropic"
	"github.com/seu-repo/concierge-ai/internal/adapter/ai/openai"
	"github.com/seu-repo/concierge-ai/internal/adapter/cache"
	"github.com/seu-repo/concierge-ai/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/concierge-ai/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/concierge-ai/internal/adapter/queue"
	"github.com/seu-repo/concierge-ai/internal/adapter/sessionstore"
	"github.com/seu-repo/concierge-ai/internal/adapter/storage/postgres"
	wsAdapter "github.com/seu-repo/concierge-ai/internal/adapter/websocket"
	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/observability/telemetry"
	"github.com/seu-repo/concierge-ai/internal/ports"
	"github.com/seu-repo/concierge-ai/internal/service/booking"
	"github.com/seu-repo/concierge-ai/internal/service/dialogue"
	"github.com/seu-repo/concierge-ai/internal/service/email"
	"github.com/seu-repo/concierge-ai/internal/service/entity"
	"github.com/seu-repo/concierge-ai/internal/service/intent"
	"github.com/seu-repo/concierge-ai/internal/service/language"
	"github.com/seu-repo/concierge-ai/internal/service/room"
	"github.com/seu-repo/concierge-ai/pkg/config"
)

const (
	serviceName    = "concierge-ai"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Concierge AI",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(
		cfg.Database.URL,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 5. Initialize Cache (Redis, with an in-process fallback for dev)
	kv, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache", zap.Error(err))
		kv = cache.NewLocalCache(time.Minute, logger)
	}
	defer kv.Close()

	sessionStore := sessionstore.NewStore(kv, cfg.Redis.SessionTTL, logger)

	// 6. Initialize Message Queue and Turn Publisher
	var turnLogger ports.TurnLogger
	messageQueue, err := connectQueue(cfg, logger)
	if err != nil {
		logger.Warn("Message queue unavailable, turn analytics disabled", zap.Error(err))
		turnLogger = noopTurnLogger{}
	} else {
		defer messageQueue.Close()
		turnLogger = queue.NewTurnPublisher(messageQueue, cfg.NATS.TurnSubject, logger)
	}

	// 7. Initialize Repositories
	bookingRepo := postgres.NewBookingRepository(db, logger)
	roomRepo := postgres.NewRoomRepository(db, logger)
	guestRepo := postgres.NewGuestRepository(db, logger)
	reservationRepo := postgres.NewReservationRepository(db, logger)

	// 8. Initialize NLU Pipeline (detector, classifier, extractor)
	detector := language.NewDetector(language.Config{
		DefaultLanguage: cfg.Dialogue.DefaultLanguage,
		Supported:       cfg.Dialogue.SupportedLanguages,
		MinConfidence:   cfg.Dialogue.MinLanguageConfidence,
	}, logger)

	classifier, err := intent.NewClassifier(
		domain.DefaultIntentSpecs(),
		classificationProvider(cfg, logger),
		intent.Config{
			ProviderTimeout: cfg.Classifier.Timeout,
			Breaker: gobreaker.Settings{
				Name:        "intent-provider",
				MaxRequests: cfg.CircuitBreaker.MaxRequests,
				Interval:    cfg.CircuitBreaker.Interval,
				Timeout:     cfg.CircuitBreaker.Timeout,
			},
		},
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to build intent classifier", zap.Error(err))
	}

	extractor := entity.NewExtractor(entity.Config{
		DefaultRegion: cfg.Hotel.DefaultRegion,
		MinConfidence: cfg.Dialogue.MinEntityConfidence,
	}, logger)

	// 9. Initialize Email Service
	emailService, err := email.NewService(emailConfig(cfg), logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// 10. Initialize Business Services
	roomTypes := roomCatalog(cfg)

	bookingService := booking.NewService(
		bookingRepo, roomRepo, guestRepo, reservationRepo,
		emailService,
		booking.Config{
			TaxRate:            cfg.Hotel.TaxRate,
			RoomTypes:          roomTypes,
			ConfirmationEmails: cfg.Hotel.ConfirmationEmails,
		},
		logger,
	)
	roomService := room.NewService(roomRepo, bookingRepo, roomTypes, logger)

	// 11. Initialize Dialogue Engine
	composer := dialogue.NewComposer(
		cfg.Dialogue.DefaultLanguage,
		cfg.Hotel.Name,
		cfg.Hotel.CheckInTime,
		cfg.Hotel.CheckOutTime,
		roomTypes,
	)
	engine := dialogue.NewEngine(
		detector, classifier, extractor, composer,
		sessionStore, bookingService, turnLogger,
		dialogue.Config{
			DefaultLanguage:         cfg.Dialogue.DefaultLanguage,
			IntentOverrideThreshold: cfg.Dialogue.IntentOverrideThreshold,
			MaxIntentStackDepth:     cfg.Dialogue.MaxIntentStackDepth,
			MaxTurns:                cfg.Dialogue.MaxTurns,
			IdleTimeout:             cfg.Dialogue.IdleTimeout,
		},
		logger,
	)

	// 12. Initialize WebSocket Hub (live chat and monitoring)
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()
	chatStream := wsAdapter.NewChatStreamHandler(engine, wsHub, logger)

	// 13. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}
	if cfg.RateLimiting.Enabled {
		app.Use(middleware.NewRateLimiter(cfg.RateLimiting))
	}
	app.Use(middleware.CircuitBreaker(cfg.CircuitBreaker, logger))

	// Health Check Endpoints
	healthHandler := handlers.NewHealthHandler(db, kv)
	app.Get("/health/live", healthHandler.Live)
	app.Get("/health/ready", healthHandler.Ready)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		metricsPath := cfg.Prometheus.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		promHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(metricsPath, func(c *fiber.Ctx) error {
			promHandler(c.Context())
			return nil
		})
	}

	// API v1 Routes
	v1 := app.Group("/api/v1")

	// Guest-facing chat routes (public)
	chatHandler := handlers.NewChatHandler(engine, logger)
	v1.Post("/chat", chatHandler.ProcessMessage)
	v1.Delete("/sessions/:id", chatHandler.CloseSession)

	// Room catalog and availability (public)
	roomHandler := handlers.NewRoomHandler(roomService, logger)
	v1.Get("/rooms/availability", roomHandler.Availability)
	v1.Get("/rooms/types", roomHandler.Types)

	// Staff-only booking back office
	staff := v1.Group("", middleware.StaffOnly(cfg.JWT.Secret, cfg.JWT.Issuer))
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	staff.Get("/bookings", bookingHandler.List)
	staff.Get("/bookings/:reference", bookingHandler.Get)
	staff.Post("/bookings/:reference/cancel", bookingHandler.Cancel)

	// WebSocket routes (chat streaming + booking monitor)
	wsAdapter.SetupChatRoutes(app, chatStream, wsHub)

	// 14. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 15. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// connectQueue prefers NATS; RabbitMQ is the alternative for deployments
// that already run one.
func connectQueue(cfg *config.Config, logger *zap.Logger) (queue.MessageQueue, error) {
	if cfg.RabbitMQ.URL != "" {
		return queue.NewRabbitMQQueue(cfg.RabbitMQ.URL, logger)
	}
	return queue.NewNATSQueue(cfg.NATS.URL, logger)
}

// classificationProvider selects the assisted fallback tier. Returning nil
// disables tier 2; the classifier degrades to rules plus default.
func classificationProvider(cfg *config.Config, logger *zap.Logger) ports.ClassificationProvider {
	switch cfg.Classifier.Provider {
	case "anthropic":
		return anthropic.NewClassifier(cfg.Classifier.APIKey, cfg.Classifier.Model, logger)
	case "openai":
		return openai.NewClassifier(cfg.Classifier.APIKey, cfg.Classifier.Model, logger)
	default:
		logger.Info("No classification provider configured, assisted tier disabled")
		return nil
	}
}

func emailConfig(cfg *config.Config) *email.Config {
	ec := email.DefaultConfig()
	if cfg.Email.Provider != "" {
		ec.Provider = cfg.Email.Provider
	}
	ec.SendGridAPIKey = cfg.Email.APIKey
	if cfg.Email.From != "" {
		ec.FromEmail = cfg.Email.From
	}
	if cfg.Email.FromName != "" {
		ec.FromName = cfg.Email.FromName
	}
	if cfg.Hotel.Name != "" {
		ec.HotelName = cfg.Hotel.Name
	}
	if cfg.Email.SMTPHost != "" {
		ec.SMTPHost = cfg.Email.SMTPHost
	}
	if cfg.Email.SMTPPort != 0 {
		ec.SMTPPort = cfg.Email.SMTPPort
	}
	ec.SMTPUsername = cfg.Email.SMTPUsername
	ec.SMTPPassword = cfg.Email.SMTPPassword
	return ec
}

func roomCatalog(cfg *config.Config) map[string]ports.RoomTypeInfo {
	out := make(map[string]ports.RoomTypeInfo, len(cfg.Hotel.RoomTypes))
	for key, rt := range cfg.Hotel.RoomTypes {
		out[key] = ports.RoomTypeInfo{
			Name:      rt.Name,
			Price:     rt.Price,
			Capacity:  rt.Capacity,
			Amenities: rt.Amenities,
		}
	}
	return out
}

// noopTurnLogger drops turn events when no queue is reachable
type noopTurnLogger struct{}

func (noopTurnLogger) LogTurn(ports.TurnEvent) {}
