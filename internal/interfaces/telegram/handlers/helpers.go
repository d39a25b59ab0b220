package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"korean-learning-bot/internal/application/usecases"
	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/interfaces/telegram/handlers/shared"
)

const mainMenuText = "🇰🇷 *Korean Flashcards - Main Menu*\n\nChoose an option:"

// maxHideButtons bounds the keyboard of the difficult list
const maxHideButtons = 8

// send sends a plain message, logging failures
func (h *BotHandler) send(chatID int64, text string) {
	if err := h.bot.SendMessage(chatID, text); err != nil {
		h.logger.Error("failed to send message", "error", err)
	}
}

// edit replaces a message's text and keyboard, logging failures
func (h *BotHandler) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	var err error
	if keyboard == nil {
		err = h.bot.EditMessage(chatID, messageID, text)
	} else {
		err = h.bot.EditMessageWithKeyboard(chatID, messageID, text, *keyboard)
	}
	if err != nil {
		h.logger.Error("failed to edit message", "error", err)
	}
}

// respond edits the message a button belongs to, or sends a new one for commands
func (h *BotHandler) respond(chatID int64, messageID int, isCallback bool, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	if isCallback {
		return h.bot.EditMessageWithKeyboard(chatID, messageID, text, keyboard)
	}
	return h.bot.SendMessageWithKeyboard(chatID, text, keyboard)
}

// handleStudyFlow shows the next card of the active deck for both commands and callbacks
func (h *BotHandler) handleStudyFlow(ctx context.Context, chatID int64, messageID int, isCallback bool) error {
	study, _, err := h.activeDeck(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active deck: %w", err)
	}

	card, err := study.NextCard(ctx)
	if err != nil {
		return fmt.Errorf("failed to get next card: %w", err)
	}
	stats, err := study.TodayStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get today stats: %w", err)
	}

	if card == nil {
		return h.respond(chatID, messageID, isCallback, doneText(study.Deck().Title, stats.CompletedToday), shared.CreateDoneKeyboard())
	}
	return h.showFront(chatID, messageID, isCallback, study, card, "", stats)
}

// showFront shows the question side of card. feedback is a line about the previous answer.
func (h *BotHandler) showFront(chatID int64, messageID int, isCallback bool, study *usecases.StudyUseCase, card *usecases.StudyCard, feedback string, stats learning.TodayStats) error {
	d := study.Deck()
	h.setLastCard(d.Key, card.Card.ID)

	text := shared.FormatCardFront(d.Title, stats, card)
	if feedback != "" {
		text = feedback + "\n\n" + text
	}
	return h.respond(chatID, messageID, isCallback, text, shared.CreateRevealKeyboard(d.Key, card.Card.ID))
}

func doneText(title string, completed int) string {
	return fmt.Sprintf("🎉 *%s* is done for today!\n\nCards answered today: %d\nCome back tomorrow or pick another deck.",
		shared.EscapeMarkdown(title), completed)
}

// handleStatsFlow shows the active deck's statistics for both commands and callbacks
func (h *BotHandler) handleStatsFlow(ctx context.Context, chatID int64, messageID int, isCallback bool) error {
	study, _, err := h.activeDeck(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active deck: %w", err)
	}

	today, err := study.TodayStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get today stats: %w", err)
	}
	overview, err := study.Overview(ctx)
	if err != nil {
		return fmt.Errorf("failed to get overview: %w", err)
	}
	streak, err := study.Streak(ctx)
	if err != nil {
		return fmt.Errorf("failed to get streak: %w", err)
	}

	text := shared.FormatStatsText(study.Deck().Title, today, overview, streak)
	return h.respond(chatID, messageID, isCallback, text, shared.CreateStatsKeyboard())
}

// handleDecksFlow lists the decks with what is left in each today
func (h *BotHandler) handleDecksFlow(ctx context.Context, chatID int64, messageID int, isCallback bool) error {
	_, prefs, err := h.activeDeck(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active deck: %w", err)
	}
	active := h.library.Resolve(prefs.ActiveDeck()).Deck().Key

	var sb strings.Builder
	sb.WriteString("🗂 *Decks*\n")
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, study := range h.library.All() {
		d := study.Deck()
		stats, err := study.TodayStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stats of deck %s: %w", d.Key, err)
		}

		marker := "▫️"
		if d.Key == active {
			marker = "▶️"
		}
		fmt.Fprintf(&sb, "\n%s *%s* (%d cards)\n      %s", marker, shared.EscapeMarkdown(d.Title), study.CardCount(), shared.FormatTodayLine(stats))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %s (%d)", marker, d.Title, stats.Remaining()), "deck_"+d.Key),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 Back to Menu", "back_menu"),
	))

	return h.respond(chatID, messageID, isCallback, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// handleDifficultFlow lists the active deck's difficult cards with buttons to hide them
func (h *BotHandler) handleDifficultFlow(ctx context.Context, chatID int64, messageID int, isCallback bool) error {
	study, _, err := h.activeDeck(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active deck: %w", err)
	}
	d := study.Deck()

	items, err := study.DifficultItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to get difficult cards: %w", err)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, item := range items {
		if i == maxHideButtons {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🙈 Hide "+item.Card.Front, fmt.Sprintf("hide_%s_%d", d.Key, item.Card.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👁 Show hidden cards again", "unhide_"+d.Key),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Back to Menu", "back_menu"),
		),
	)

	text := shared.FormatDifficultText(d.Title, items)
	return h.respond(chatID, messageID, isCallback, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// handleSettingsFlow shows the settings for both commands and callbacks
func (h *BotHandler) handleSettingsFlow(ctx context.Context, chatID int64, messageID int, isCallback bool) error {
	prefs, err := h.preferencesRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	text := fmt.Sprintf(
		"⚙️ *Settings*\n\n"+
			"⏰ Study reminders: %s\n"+
			"💬 Example sentences: %s\n\n"+
			"_Use the buttons below to adjust settings:_",
		getToggleEmoji(prefs.RemindersEnabled()), getToggleEmoji(prefs.ShowExamples()))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("⏰ Reminders %s", getToggleEmoji(prefs.RemindersEnabled())), "toggle_reminders"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("💬 Examples %s", getToggleEmoji(prefs.ShowExamples())), "toggle_examples"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Back to Menu", "back_menu"),
		),
	)
	return h.respond(chatID, messageID, isCallback, text, keyboard)
}

// getToggleEmoji returns the appropriate emoji for a toggle state
func getToggleEmoji(enabled bool) string {
	if enabled {
		return "✅"
	}
	return "❌"
}
