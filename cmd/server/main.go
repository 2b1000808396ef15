package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/recyconnect/backend/internal/config"
	"github.com/recyconnect/backend/internal/db"
	httpHandlers "github.com/recyconnect/backend/internal/http/handlers"
	httpRouter "github.com/recyconnect/backend/internal/http/router"
	"github.com/recyconnect/backend/internal/logger"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/service"
	"github.com/recyconnect/backend/internal/storage"
	"github.com/recyconnect/backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	itemRepo := repository.NewItemRepository(dbConn)
	donatedRepo := repository.NewDonatedItemRepository(dbConn)
	reportedRepo := repository.NewReportedItemRepository(dbConn)
	concernRepo := repository.NewConcernRepository(dbConn)
	flagRepo := repository.NewFlagRepository(dbConn)
	messageRepo := repository.NewMessageRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	dashboardRepo := repository.NewDashboardRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()

	// Сервисы.
	notificationService := service.NewNotificationService(notificationRepo, hub)
	authService := service.NewAuthService(userRepo, tokenManager, cfg.AllowedEmailDomain)
	userService := service.NewUserService(userRepo, notificationService)
	itemService := service.NewItemService(itemRepo)
	donationService := service.NewDonationService(donatedRepo, notificationService)
	lostFoundService := service.NewLostFoundService(reportedRepo, notificationService)
	concernService := service.NewConcernService(concernRepo, notificationService)
	flagService := service.NewFlagService(flagRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, notificationService)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// HTTP хэндлеры.
	userHandler := httpHandlers.NewUserHandler(authService, userService)
	itemHandler := httpHandlers.NewItemHandler(itemService)
	mediaHandler := httpHandlers.NewMediaHandler(itemService, photoStorage)
	donatedItemHandler := httpHandlers.NewDonatedItemHandler(donationService)
	reportedItemHandler := httpHandlers.NewReportedItemHandler(lostFoundService)
	concernHandler := httpHandlers.NewConcernHandler(concernService)
	flagHandler := httpHandlers.NewFlagHandler(flagService)
	messageHandler := httpHandlers.NewMessageHandler(messageService)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	dashboardHandler := httpHandlers.NewDashboardHandler(dashboardService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		userHandler,
		itemHandler,
		mediaHandler,
		donatedItemHandler,
		reportedItemHandler,
		concernHandler,
		flagHandler,
		messageHandler,
		notificationHandler,
		dashboardHandler,
		healthHandler,
		wsHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
