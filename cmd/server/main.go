package main

import (
	"context"
	"os"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/gateway"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("Starting storefront API...")

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURL)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			logger.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	database := client.Database(cfg.MongoDatabase)
	logger.Info("Database connection established.")

	paymentGateway, err := gateway.NewBraintreeGateway(
		cfg.BraintreeEnv,
		cfg.BraintreeMerchantID,
		cfg.BraintreePublicKey,
		cfg.BraintreePrivateKey,
		logger,
	)
	if err != nil {
		logger.Fatalf("Failed to initialize payment gateway: %v", err)
	}
	logger.Infof("Payment gateway initialized (%s).", cfg.BraintreeEnv)

	orderRepo := repository.NewMongoOrderRepository(database, logger)
	productRepo := repository.NewMongoProductRepository(database, logger)
	userRepo := repository.NewMongoUserRepository(database, logger)
	logger.Info("Repositories initialized.")

	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, userRepo, paymentGateway, logger)
	catalogUseCase := usecase.NewCatalogUseCase(productRepo, logger)
	logger.Info("Use cases initialized.")

	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	catalogHandler := delivery.NewCatalogHandler(catalogUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	signedIn := middleware.RequireSignIn(cfg.JWTSecret, logger)
	admin := middleware.RequireAdmin(userRepo, logger)

	api := router.Group("/api/v1")
	orderHandler.RegisterRoutes(api, signedIn, admin)
	catalogHandler.RegisterRoutes(api)
	logger.Info("Routes registered.")

	logger.Infof("Starting server on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}
