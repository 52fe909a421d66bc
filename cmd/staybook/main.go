package main

import (
	"context"
	"net/http"

	bookinghandler "staybook/internal/bookings/handler"
	bookingrepo "staybook/internal/bookings/repository"
	bookingservice "staybook/internal/bookings/service"
	bookingvalidator "staybook/internal/bookings/validator"
	mediahandler "staybook/internal/media/handler"
	mediaservice "staybook/internal/media/service"
	"staybook/internal/media/storage"
	placehandler "staybook/internal/places/handler"
	placerepo "staybook/internal/places/repository"
	placeservice "staybook/internal/places/service"
	placevalidator "staybook/internal/places/validator"
	userhandler "staybook/internal/users/handler"
	userrepo "staybook/internal/users/repository"
	userservice "staybook/internal/users/service"
	uservalidator "staybook/internal/users/validator"
	"staybook/pkg/app"
	"staybook/pkg/auth"
	"staybook/pkg/config"
	"staybook/pkg/kafka"
)

const ServiceName = "staybook"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting staybook service")

	publisher := initPublisher(cfg)
	events := kafka.NewEventEmitter(publisher, ServiceName, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(publisher.Close)
	serverApp.SetApp(initHandlers(cfg, events)...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) kafka.Publisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka brokers not configured, domain events disabled")
		return kafka.NoopPublisher{}
	}

	producer, err := kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers, cfg.KafkaTopic), cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	return producer
}

func initHandlers(cfg *config.Config, events kafka.Emitter) []app.Handler {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.SessionTokenTTL)
	resolver := auth.NewResolver(tokens, config.SessionCookieName, cfg.Log)
	cookies := auth.NewCookieIssuer(config.SessionCookieName, cfg.CookieSecure)

	userService := userservice.NewUserService(
		userrepo.NewMongoUserRepository(cfg),
		uservalidator.NewUserValidator(cfg.Log),
		auth.NewPasswordHasher(cfg.BcryptCost),
		tokens,
		events,
		cfg,
	)

	places := placerepo.NewMongoPlaceRepository(cfg)
	placeService := placeservice.NewPlaceService(
		places,
		placevalidator.NewPlaceValidator(cfg.Log),
		events,
		cfg,
	)

	bookingService := bookingservice.NewBookingService(
		bookingrepo.NewMongoBookingRepository(cfg),
		places,
		bookingvalidator.NewBookingValidator(cfg.Log),
		events,
		cfg,
	)

	store := initMediaStore(cfg)
	fetcher := &http.Client{Timeout: cfg.MediaFetchTimeout}
	mediaService := mediaservice.NewMediaService(store, fetcher, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName, "media_backend", cfg.MediaBackend)

	return []app.Handler{
		userhandler.NewUserHandler(userService, resolver, cookies, cfg.Log),
		placehandler.NewPlaceHandler(placeService, resolver, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, resolver, cfg.Log),
		mediahandler.NewMediaHandler(mediaService, store, cfg),
	}
}

func initMediaStore(cfg *config.Config) storage.Store {
	if cfg.MediaBackend == config.MediaBackendS3 {
		store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PresignExpiry:   cfg.S3PresignExpiry,
		})
		if err != nil {
			cfg.Log.Fatal("Failed to initialize S3 media store", "error", err, "bucket", cfg.S3Bucket)
		}
		return store
	}

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize upload directory", "error", err, "dir", cfg.UploadDir)
	}
	return store
}
