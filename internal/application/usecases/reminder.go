package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/domain/preferences"
)

// ReminderConfig holds configuration for the reminder system
type ReminderConfig struct {
	// How often to check for due cards
	CheckInterval time.Duration
	// Minimum time between two reminders
	MinReminderInterval time.Duration
	// Hours of day (24-hour format) without reminders
	QuietHoursStart    int
	QuietHoursEnd      int
	MaxRemindersPerDay int
}

// DefaultReminderConfig returns the defaults used when nothing is configured
func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		CheckInterval:       time.Hour,
		MinReminderInterval: 4 * time.Hour,
		QuietHoursStart:     22,
		QuietHoursEnd:       8,
		MaxRemindersPerDay:  3,
	}
}

// Notifier delivers a text message to a chat
type Notifier interface {
	SendMessageWithMarkdown(chatID int64, text string) error
}

// DueCounter reports how many cards are waiting today
type DueCounter interface {
	DueCount(ctx context.Context) (int, error)
}

// ReminderUseCase reminds the owner to study when cards are waiting
type ReminderUseCase struct {
	notifier        Notifier
	due             DueCounter
	preferencesRepo preferences.Repository
	ownerChatID     int64
	config          ReminderConfig
	clock           learning.Clock
	logger          *slog.Logger

	scheduler *gocron.Scheduler

	mu            sync.Mutex
	lastSent      time.Time
	sentToday     int
	lastCheckDate string
}

// NewReminderUseCase creates a new reminder use case
func NewReminderUseCase(
	notifier Notifier,
	due DueCounter,
	preferencesRepo preferences.Repository,
	ownerChatID int64,
	config ReminderConfig,
	clock learning.Clock,
	logger *slog.Logger,
) *ReminderUseCase {
	return &ReminderUseCase{
		notifier:        notifier,
		due:             due,
		preferencesRepo: preferencesRepo,
		ownerChatID:     ownerChatID,
		config:          config,
		clock:           clock,
		logger:          logger,
	}
}

// Start schedules the periodic check in the background
func (uc *ReminderUseCase) Start(ctx context.Context) error {
	minutes := max(1, int(uc.config.CheckInterval/time.Minute))

	s := gocron.NewScheduler(uc.clock.Now().Location())
	s.SingletonModeAll()
	if _, err := s.Every(minutes).Minutes().WaitForSchedule().Do(uc.runCheck, ctx); err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}
	s.StartAsync()
	uc.scheduler = s

	uc.logger.Info("reminder service started", "interval_minutes", minutes)
	return nil
}

// Stop ends the periodic check
func (uc *ReminderUseCase) Stop() {
	if uc.scheduler != nil {
		uc.scheduler.Stop()
		uc.logger.Info("reminder service stopped")
	}
}

func (uc *ReminderUseCase) runCheck(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := uc.CheckAndSend(ctx); err != nil {
		uc.logger.Error("reminder check failed", "error", err)
	}
}

// CheckAndSend sends a reminder when one is allowed and cards are waiting.
// It reports whether a reminder was sent.
func (uc *ReminderUseCase) CheckAndSend(ctx context.Context) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.clock.Now()

	if uc.isQuietTime(now) {
		return false, nil
	}

	today := learning.DateString(now)
	if uc.lastCheckDate != today {
		uc.sentToday = 0
		uc.lastCheckDate = today
	}
	if uc.sentToday >= uc.config.MaxRemindersPerDay {
		return false, nil
	}
	if !uc.lastSent.IsZero() && now.Sub(uc.lastSent) < uc.config.MinReminderInterval {
		return false, nil
	}

	prefs, err := uc.preferencesRepo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load preferences: %w", err)
	}
	if !prefs.RemindersEnabled() {
		return false, nil
	}

	count, err := uc.due.DueCount(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count due cards: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	if err := uc.notifier.SendMessageWithMarkdown(uc.ownerChatID, reminderMessage(now, count)); err != nil {
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}

	uc.lastSent = now
	uc.sentToday++
	uc.logger.Info("reminder sent", "due", count, "sent_today", uc.sentToday)
	return true, nil
}

// isQuietTime checks if t falls within quiet hours, which may wrap past midnight
func (uc *ReminderUseCase) isQuietTime(t time.Time) bool {
	hour := t.Hour()
	start := uc.config.QuietHoursStart
	end := uc.config.QuietHoursEnd

	switch {
	case start == end:
		return false
	case start < end:
		return hour >= start && hour < end
	default:
		return hour >= start || hour < end
	}
}

func reminderMessage(now time.Time, due int) string {
	var greeting string
	switch hour := now.Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 17:
		greeting = "Good afternoon"
	default:
		greeting = "Good evening"
	}

	if due == 1 {
		return fmt.Sprintf("🇰🇷 %s!\n\n*1 card* is waiting for review.\n\nUse /study to practice, or /menu for options.", greeting)
	}
	return fmt.Sprintf("🇰🇷 %s!\n\n*%d cards* are waiting for review.\n\nUse /study to practice, or /menu for options.", greeting, due)
}
