package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/config"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/cart"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/catalog"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/checkout"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/consumer"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/handler"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/repository"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/service"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/storage"
	"github.com/Eursukkul/booking-microservice/storefront-service/pkg/database"
	"github.com/Eursukkul/booking-microservice/storefront-service/pkg/logger"
	"github.com/Eursukkul/booking-microservice/storefront-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.DefaultJWTSecret() {
		log.Warn("JWT_SECRET is not set, tokens are verified with the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := database.NewPostgresDB(cfg.DSN(), log)

	// Repositories
	packageRepo := repository.NewPackageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cartSlotRepo := repository.NewCartSlotRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// RabbitMQ: catalog sync in, booking events out. The storefront keeps
	// serving from its own tables when the broker is down.
	var publisher service.Publisher
	if mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, log); err != nil {
		log.Warn("booking events disabled", zap.Error(err))
	} else {
		defer mqPublisher.Close()
		publisher = mqPublisher
	}

	if mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, log); err != nil {
		log.Warn("catalog sync disabled", zap.Error(err))
	} else {
		defer mqConsumer.Close()
		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal("failed to start consuming", zap.Error(err))
		}
		consumer.NewCatalogConsumer(packageRepo, log).Start(msgs)
	}

	// Services
	packages := catalog.New(packageRepo, log)
	carts := cart.NewRegistry(cartSlotRepo, cart.WithLogger(log))
	go carts.RunJanitor(ctx, 5*time.Minute, 30*time.Minute)
	bookingSvc := service.NewBookingService(bookingRepo, publisher, log)
	checkouts := checkout.NewManager(carts, bookingSvc, checkout.WithLogger(log))
	profileSvc := service.NewProfileService(profileRepo)

	objects, err := storage.New(cfg, log)
	if err != nil {
		log.Fatal("failed to open document store", zap.Error(err))
	}
	documentSvc := service.NewDocumentService(documentRepo, objects, cfg.MaxUploadBytes, log)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(log)
	e.Validator = middleware.NewRequestValidator(checkout.NewValidator())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "storefront-service"})
	})

	api := e.Group("/api/v1")
	handler.NewCatalogHandler(packages).RegisterRoutes(api)

	authed := api.Group("", middleware.RequireUser([]byte(cfg.JWTSecret), cfg.SignInPath))
	handler.NewCartHandler(carts, packages).RegisterRoutes(authed)
	handler.NewCheckoutHandler(checkouts, cfg.CartViewPath).RegisterRoutes(authed)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(authed)
	handler.NewProfileHandler(profileSvc).RegisterRoutes(authed)
	handler.NewDocumentHandler(documentSvc).RegisterRoutes(authed)

	go func() {
		log.Info("storefront service starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
