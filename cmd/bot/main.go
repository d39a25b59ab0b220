package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"korean-learning-bot/internal/application/usecases"
	"korean-learning-bot/internal/config"
	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/infrastructure/filesystem"
	"korean-learning-bot/internal/infrastructure/logging"
	"korean-learning-bot/internal/infrastructure/persistence"
	"korean-learning-bot/internal/infrastructure/telegram"
	"korean-learning-bot/internal/interfaces/telegram/handlers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.AppEnv, cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := learning.SystemClock{Location: loc}

	// Initialize database
	db, err := persistence.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	store := persistence.NewKVStore(db)
	learningRepo := persistence.NewLearningRepository(store)
	notesRepo := persistence.NewNotesRepository(store)
	activityRepo := persistence.NewActivityRepository(store)
	preferencesRepo := persistence.NewPreferencesRepository(store)
	vocabularyRepo := persistence.NewVocabularyRepository(db)
	grammarRepo := persistence.NewGrammarRepository(db)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load deck content and build one study controller per deck
	catalog := usecases.NewCatalogUseCase(
		vocabularyRepo,
		grammarRepo,
		filesystem.NewVocabularyLoader(),
		filesystem.NewGrammarLoader(),
		logger,
	)
	if err := catalog.Import(ctx, cfg.Decks); err != nil {
		return fmt.Errorf("failed to populate decks: %w", err)
	}
	library, err := catalog.BuildLibrary(ctx, cfg.Decks, usecases.StudyDependencies{
		Progress: learningRepo,
		Notes:    notesRepo,
		Activity: activityRepo,
		Clock:    clock,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	backup := usecases.NewBackupUseCase(store, logger)

	// Initialize Telegram bot
	bot, err := telegram.NewBot(cfg.TelegramToken, logger)
	if err != nil {
		return err
	}
	if err := bot.SetupCommands(); err != nil {
		logger.Warn("failed to setup bot commands, they won't show in Telegram's menu", "error", err)
	}

	// Initialize reminder service
	reminderConfig := usecases.DefaultReminderConfig()
	reminderConfig.CheckInterval = cfg.Reminder.Interval
	reminderConfig.QuietHoursStart = cfg.Reminder.QuietHoursStart
	reminderConfig.QuietHoursEnd = cfg.Reminder.QuietHoursEnd
	reminderConfig.MaxRemindersPerDay = cfg.Reminder.MaxPerDay

	reminders := usecases.NewReminderUseCase(bot, library, preferencesRepo, cfg.OwnerChatID, reminderConfig, clock, logger)
	if err := reminders.Start(ctx); err != nil {
		return err
	}
	defer reminders.Stop()

	handler := handlers.NewBotHandler(bot, library, backup, preferencesRepo, cfg.OwnerChatID, logger)

	logger.Info("starting Korean flashcards bot", "decks", len(cfg.Decks), "driver", cfg.DBDriver)

	updates := bot.GetUpdatesChan()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		bot.StopReceivingUpdates()
	}()

	return handler.Start(ctx, updates)
}
