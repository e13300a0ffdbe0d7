package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/application/service"
	"github.com/stocktrail/po-approval/internal/auth"
	"github.com/stocktrail/po-approval/internal/config"
	"github.com/stocktrail/po-approval/internal/infrastructure/persistence/repository"
	httpserver "github.com/stocktrail/po-approval/internal/interfaces/http"
	"github.com/stocktrail/po-approval/internal/notification"
	"github.com/stocktrail/po-approval/pkg/database"
	"github.com/stocktrail/po-approval/pkg/utils"
)

func main() {
	// Local development reads secrets from .env; absent in production
	_ = gotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting purchase order approval service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Repositories
	orderRepo := repository.NewOrderRepository(db.DB, logger)
	historyRepo := repository.NewHistoryRepository(db.DB, logger)
	auditRepo := repository.NewAuditLogRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)
	supplierRepo := repository.NewSupplierRepository(db.DB, logger)
	txManager := repository.NewTxManager(db.DB, logger)

	// Notifications are optional; a nil notifier means SMTP is unconfigured
	var notifier port.Notifier
	if n := notification.NewEmailNotifier(notification.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		UseTLS:   cfg.SMTP.UseTLS,
	}, userRepo, supplierRepo, logger); n != nil {
		notifier = n
	}

	sugar := kvLogger{logger.Sugar()}

	// Auth
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := auth.NewService(userRepo, tokens, sugar)

	// Application services
	approvalService := service.NewApprovalService(orderRepo, historyRepo, auditRepo, txManager, notifier, sugar)
	orderService := service.NewOrderService(orderRepo, supplierRepo, auditRepo, txManager, sugar)
	reportService := service.NewReportService(orderRepo, historyRepo, sugar)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, authService, tokens, orderService, approvalService, reportService, sugar)

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "configs/config.yaml"
}

// kvLogger adapts zap's sugared logger to the service Logger interface
type kvLogger struct {
	s *zap.SugaredLogger
}

func (l kvLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l kvLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}
