package main

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/delivery"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		logger.Log.WithError(err).Fatal("Homework status bot stopped with an error")
	}
}

// run wires the application and blocks until ctx is cancelled.
// Everything it opens is closed before it returns.
func run(ctx context.Context) error {
	// Configuration is checked before anything touches the network.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logCloser, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logCloser.Close()

	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"chat_id":      cfg.TelegramChatID,
		"retry_period": cfg.RetryPeriod.String(),
	}).Info("Configuration loaded")

	// Optional delivery journal
	var journal delivery.Repository
	if cfg.DatabaseURL != "" {
		db, err := openJournalDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		journal = idb.NewPostgresDeliveryRepository(db)
		mainLogger.Info("Delivery journal enabled.")
	} else {
		mainLogger.Info("DATABASE_URL not set, delivery journal disabled.")
	}

	// Initialize Telegram Bot; NewBot checks the token with getMe.
	bot, err := telebot.NewBot(telebot.Settings{
		Token: cfg.TelegramToken,
		OnError: func(err error, c telebot.Context) { // Global error handler
			logger.Component("telebot").WithError(err).Error("Telegram bot error")
		},
	})
	if err != nil {
		return fmt.Errorf("create Telegram bot: %w", err)
	}

	apiClient := practicum.NewClient(practicum.ClientConfig{
		Endpoint: cfg.Endpoint,
		Token:    cfg.PracticumToken,
		Timeout:  cfg.RequestTimeout,
	}, logger.Component("practicum"))

	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, logger.Component("notifier"))
	poller := app.NewStatusPoller(apiClient, notifier, journal, logger.Component("poller"), time.Now)
	pollScheduler := scheduler.NewPollScheduler(poller, cfg.RetryPeriod, logger.Component("scheduler"))

	mainLogger.Info("Application setup complete. Poller is starting...")
	go pollScheduler.Start(ctx)

	<-ctx.Done() // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	pollScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
	return nil
}

func openJournalDB(ctx context.Context, dsn string) (*sql.DB, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := idb.NewPostgresConnection(dbCtx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := idb.EnsureSchema(dbCtx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare database schema: %w", err)
	}
	return db, nil
}
