package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"korean-learning-bot/internal/interfaces/telegram/handlers/shared"
)

// handleMenuSelection processes menu button selections
func (h *BotHandler) handleMenuSelection(ctx context.Context, callback *tgbotapi.CallbackQuery, selection string) {
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	var err error
	switch selection {
	case "menu_study":
		err = h.handleStudyFlow(ctx, chatID, messageID, true)
	case "menu_decks":
		err = h.handleDecksFlow(ctx, chatID, messageID, true)
	case "menu_stats":
		err = h.handleStatsFlow(ctx, chatID, messageID, true)
	case "menu_hard":
		err = h.handleDifficultFlow(ctx, chatID, messageID, true)
	case "menu_settings":
		err = h.handleSettingsFlow(ctx, chatID, messageID, true)
	case "menu_help":
		err = h.bot.EditMessageWithKeyboard(chatID, messageID, shared.GetHelpText(), shared.CreateBackKeyboard())
	default:
		h.logger.Warn("unknown menu selection", "selection", selection)
		return
	}

	if err != nil {
		h.failCallback(callback, err, "Sorry, something went wrong. Please try again.")
	}
}

// handleBackToMenu returns to the main menu
func (h *BotHandler) handleBackToMenu(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	keyboard := shared.CreateMainMenuKeyboard()
	h.edit(callback.Message.Chat.ID, callback.Message.MessageID, mainMenuText, &keyboard)
}

// handleSelectDeck makes a deck the active one and starts studying it
func (h *BotHandler) handleSelectDeck(ctx context.Context, callback *tgbotapi.CallbackQuery, deckKey string) {
	if h.library.Get(deckKey) == nil {
		h.edit(callback.Message.Chat.ID, callback.Message.MessageID, "That deck is no longer available. Use /decks to pick one.", nil)
		return
	}

	prefs, err := h.preferencesRepo.Load(ctx)
	if err != nil {
		h.failCallback(callback, err, "Sorry, there was an error loading your settings. Please try again.")
		return
	}
	prefs.SetActiveDeck(deckKey)
	if err := h.preferencesRepo.Save(ctx, prefs); err != nil {
		h.failCallback(callback, err, "Sorry, there was an error saving your settings. Please try again.")
		return
	}

	if err := h.handleStudyFlow(ctx, callback.Message.Chat.ID, callback.Message.MessageID, true); err != nil {
		h.failCallback(callback, err, "Sorry, something went wrong. Please try again with /study")
	}
}
