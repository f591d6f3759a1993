package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/metroticket/api"
	"github.com/Domenick1991/metroticket/config"
	"github.com/Domenick1991/metroticket/internal/auth"
	"github.com/Domenick1991/metroticket/internal/bootstrap"
	"github.com/Domenick1991/metroticket/internal/cache"
	"github.com/Domenick1991/metroticket/internal/catalog"
	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/Domenick1991/metroticket/internal/fare"
	"github.com/Domenick1991/metroticket/internal/kafka"
	"github.com/Domenick1991/metroticket/internal/live"
	"github.com/Domenick1991/metroticket/internal/logging"
	"github.com/Domenick1991/metroticket/internal/repository"
	"github.com/Domenick1991/metroticket/internal/service/booking"
	"github.com/Domenick1991/metroticket/internal/service/stations"
	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.NewLogger(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	line := catalog.LucknowRedLine()
	engine := fare.NewEngine(line, cfg.Ticket.QRPrefix)

	user := domain.User{ID: cfg.Auth.DemoUserID, Name: cfg.Auth.DemoUserName, Phone: cfg.Auth.DemoUserPhone}
	var seed []domain.Booking
	if cfg.Ticket.SeedDemoBookings {
		seed = repository.DemoBookings(time.Now(), user.ID, line, engine)
	}
	bookingRepo := repository.NewBookingRepository(seed...)

	var (
		bookingCache booking.Cache
		producer     booking.Producer
		loginStore   limiter.Store = memory.NewStore()
	)

	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Ticket.HistoryCacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Fatal("connect redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		bookingCache = redisCache

		loginStore, err = redisstore.NewStoreWithOptions(redisCache.Client(), limiter.StoreOptions{
			Prefix:   "rate_limiter:login",
			MaxRetry: 3,
		})
		if err != nil {
			logger.Fatal("create login rate limit store", zap.Error(err))
		}
	}

	if cfg.Kafka.Enabled() {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer kafkaProducer.Close()
		if err := kafkaProducer.CheckConnection(ctx); err != nil {
			logger.Warn("kafka not reachable, ticket events may be lost", zap.Error(err))
		}
		producer = kafkaProducer
	}

	bookingService := booking.NewBookingService(
		bookingRepo,
		line,
		engine,
		bookingCache,
		producer,
		logger.Named("booking"),
		booking.Settings{
			ValidFor:        time.Duration(cfg.Ticket.ValidityHours) * time.Hour,
			MaxPassengers:   cfg.Ticket.MaxPassengers,
			PaymentProvider: cfg.Ticket.PaymentProvider,
			ConfirmLockTTL:  time.Duration(cfg.Ticket.ConfirmLockSeconds) * time.Second,
			EventsTopic:     cfg.Kafka.TicketEventsTopic,
		},
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	stationService := stations.NewStationService(line)

	tokens, err := auth.NewTokenService(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	if err != nil {
		logger.Fatal("init token service, set auth.secret or AUTH_SECRET", zap.Error(err))
	}
	authenticator, err := auth.NewAuthenticator(user, cfg.Auth.DemoPassword, tokens)
	if err != nil {
		logger.Fatal("init authenticator", zap.Error(err))
	}

	loginLimiter, err := api.NewRateLimiter(cfg.Auth.LoginRate, loginStore)
	if err != nil {
		logger.Fatal("init login rate limiter", zap.Error(err))
	}

	hub := live.NewHub(logger.Named("live"), cfg.HTTP.AllowedOrigins)
	train := live.NewTracker(line, cfg.Map.StartPosition)

	router := api.NewRouter(api.RouterDeps{
		Stations:       stationService,
		Bookings:       bookingService,
		Auth:           authenticator,
		Tokens:         tokens,
		Line:           line,
		Train:          train,
		Stream:         hub,
		LoginLimiter:   loginLimiter,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SwaggerDir:     cfg.HTTP.SwaggerDir,
		Log:            logger.Named("http"),
	})

	jobs := bootstrap.Jobs{Hub: hub, Tracker: train, Bookings: bookingService}
	if err := bootstrap.Run(ctx, cfg, router, jobs, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
