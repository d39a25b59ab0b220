package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleToggle flips one of the boolean settings and shows the settings again
func (h *BotHandler) handleToggle(ctx context.Context, callback *tgbotapi.CallbackQuery, setting string) {
	prefs, err := h.preferencesRepo.Load(ctx)
	if err != nil {
		h.failCallback(callback, err, "Sorry, there was an error loading your settings. Please try again.")
		return
	}

	switch setting {
	case "reminders":
		prefs.ToggleReminders()
	case "examples":
		prefs.ToggleExamples()
	default:
		h.logger.Warn("unknown setting", "setting", setting)
		return
	}

	if err := h.preferencesRepo.Save(ctx, prefs); err != nil {
		h.failCallback(callback, err, "Sorry, there was an error updating your settings. Please try again.")
		return
	}

	// Show updated settings
	if err := h.handleSettingsFlow(ctx, callback.Message.Chat.ID, callback.Message.MessageID, true); err != nil {
		h.failCallback(callback, err, "Sorry, there was an error loading your settings. Please try again.")
	}
}
