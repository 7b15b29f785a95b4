package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vicmar/server/config"
	"vicmar/server/internal/api"
	"vicmar/server/internal/catalog"
	"vicmar/server/internal/database"
	"vicmar/server/internal/inquiry"
	"vicmar/server/internal/listing"
	"vicmar/server/internal/models"
	"vicmar/server/internal/queue"
	"vicmar/server/internal/session"
	"vicmar/server/internal/telegram"
	"vicmar/server/internal/vicinity"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	logger.SetLevel(cfg.LogLevel())

	logger.Infof("Using database at: %s", cfg.Storage.DBPath)
	db, err := database.NewDatabase(cfg.Storage.DBPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	engine, err := listing.NewEngine(cfg.Listing.CacheSize, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create listing engine")
	}

	catalogService := catalog.NewService(catalog.NewPropertyStore(db, logger), engine, logger)
	if cfg.Storage.SeedCatalog {
		if err := catalogService.Seed(context.Background()); err != nil {
			logger.WithError(err).Fatal("Failed to seed property catalog")
		}
	}

	// Inquiry notifications go through the queue so a slow Telegram API never
	// holds up a form submission
	notifier := telegram.NewService(logger)
	notifier.UpdateConfig(models.TelegramConfig{
		IsEnabled: cfg.Notifications.TelegramEnabled,
		BotToken:  cfg.Notifications.TelegramBotToken,
		ChatID:    cfg.Notifications.TelegramChatID,
	})
	inquiryQueue := queue.NewInquiryQueue(cfg.Notifications.QueueSize, logger)
	inquiryQueue.Subscribe(notifier.Handler())
	inquiryQueue.Start()

	inquiries := inquiry.NewService(inquiry.NewInquiryStore(db, logger), inquiryQueue, logger)

	lots, palette, err := loadVicinity(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load vicinity map")
	}
	logger.WithField("lots", lots.Len()).Info("Loaded vicinity map")

	opts := vicinity.DefaultOptions()
	opts.ClampPan = cfg.Map.ClampPan
	opts.PanMargin = cfg.Map.PanMargin

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	api.SetupRoutes(router,
		api.NewHandler(catalogService, inquiries, session.NewManager(db, cfg.Auth.AdminEmails), cfg.Auth.SecureCookie, logger),
		api.NewVicinityHandler(lots, palette, opts, logger))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if err := inquiryQueue.Close(); err != nil {
		logger.WithError(err).Error("Failed to drain notification queue")
	}
}

func loadVicinity(cfg *config.Config) (*vicinity.Catalog, *vicinity.Palette, error) {
	data, err := config.ReadLotData(cfg.Map.LotDataPath)
	if err != nil {
		return nil, nil, err
	}
	lots, err := vicinity.ParseCatalog(data)
	if err != nil {
		return nil, nil, err
	}

	paletteData, err := config.ReadPalette(cfg.Map.PalettePath)
	if err != nil {
		return nil, nil, err
	}
	if paletteData == nil {
		return lots, vicinity.DefaultPalette(), nil
	}
	palette, err := vicinity.LoadPalette(paletteData)
	if err != nil {
		return nil, nil, err
	}
	return lots, palette, nil
}
