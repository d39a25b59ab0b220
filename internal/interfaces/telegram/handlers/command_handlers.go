package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"korean-learning-bot/internal/interfaces/telegram/handlers/shared"
)

// handleStart processes the /start command
func (h *BotHandler) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	name := "there"
	if message.From != nil && message.From.FirstName != "" {
		name = message.From.FirstName
	}

	welcomeText := fmt.Sprintf(
		"🇰🇷 Welcome, %s!\n\n"+
			"I'll help you learn Korean words and grammar with spaced repetition flashcards.\n\n"+
			"Choose an option below to get started:",
		shared.EscapeMarkdown(name))

	return h.bot.SendMessageWithKeyboard(message.Chat.ID, welcomeText, shared.CreateMainMenuKeyboard())
}

// handleMenu processes the /menu command
func (h *BotHandler) handleMenu(ctx context.Context, message *tgbotapi.Message) error {
	return h.bot.SendMessageWithKeyboard(message.Chat.ID, mainMenuText, shared.CreateMainMenuKeyboard())
}

// handleStudy processes the /study command
func (h *BotHandler) handleStudy(ctx context.Context, message *tgbotapi.Message) error {
	return h.handleStudyFlow(ctx, message.Chat.ID, message.MessageID, false)
}

// handleDecks processes the /decks command
func (h *BotHandler) handleDecks(ctx context.Context, message *tgbotapi.Message) error {
	return h.handleDecksFlow(ctx, message.Chat.ID, message.MessageID, false)
}

// handleStats processes the /stats command
func (h *BotHandler) handleStats(ctx context.Context, message *tgbotapi.Message) error {
	return h.handleStatsFlow(ctx, message.Chat.ID, message.MessageID, false)
}

// handleHard processes the /hard command
func (h *BotHandler) handleHard(ctx context.Context, message *tgbotapi.Message) error {
	return h.handleDifficultFlow(ctx, message.Chat.ID, message.MessageID, false)
}

// handleSettings processes the /settings command
func (h *BotHandler) handleSettings(ctx context.Context, message *tgbotapi.Message) error {
	return h.handleSettingsFlow(ctx, message.Chat.ID, message.MessageID, false)
}

// handleHelp processes the /help command
func (h *BotHandler) handleHelp(ctx context.Context, message *tgbotapi.Message) error {
	return h.bot.SendMessageWithKeyboard(message.Chat.ID, shared.GetHelpText(), shared.CreateBackKeyboard())
}

// handleReset asks for confirmation before resetting the active deck
func (h *BotHandler) handleReset(ctx context.Context, message *tgbotapi.Message) error {
	study, _, err := h.activeDeck(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active deck: %w", err)
	}

	text := fmt.Sprintf("♻️ Reset all progress of *%s*?\n\nMemos and hidden difficult cards are kept. This cannot be undone.",
		shared.EscapeMarkdown(study.Deck().Title))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚠️ Yes, reset", "reset_confirm_"+study.Deck().Key),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", "reset_cancel"),
		),
	)
	return h.bot.SendMessageWithKeyboard(message.Chat.ID, text, keyboard)
}

// handleMemo shows or replaces the note on the last card shown. "/memo -" deletes it.
func (h *BotHandler) handleMemo(ctx context.Context, message *tgbotapi.Message) error {
	ref := h.getLastCard()
	if ref == nil {
		return h.bot.SendMessage(message.Chat.ID, "Study a card first, then use /memo <text> to attach a note to it.")
	}
	study := h.library.Get(ref.deckKey)
	if study == nil {
		return h.bot.SendMessage(message.Chat.ID, "That deck is no longer available.")
	}
	card, _ := study.Card(ref.id)

	text := strings.TrimSpace(message.CommandArguments())
	if text == "" {
		memo, err := study.Memo(ctx, ref.id)
		if err != nil {
			return fmt.Errorf("failed to get memo: %w", err)
		}
		if memo == "" {
			return h.bot.SendMessage(message.Chat.ID, fmt.Sprintf("No memo on %q yet. Use /memo <text> to add one.", card.Front))
		}
		return h.bot.SendMessage(message.Chat.ID, fmt.Sprintf("📝 %s\n%s", card.Front, memo))
	}

	if text == "-" {
		text = ""
	}
	if err := study.SetMemo(ctx, ref.id, text); err != nil {
		return fmt.Errorf("failed to save memo: %w", err)
	}
	if text == "" {
		return h.bot.SendMessage(message.Chat.ID, fmt.Sprintf("🗑 Memo on %q deleted.", card.Front))
	}
	return h.bot.SendMessage(message.Chat.ID, fmt.Sprintf("📝 Memo saved on %q.", card.Front))
}

// handleExport sends a backup of everything stored
func (h *BotHandler) handleExport(ctx context.Context, message *tgbotapi.Message) error {
	var buf bytes.Buffer
	if err := h.backup.Export(ctx, &buf); err != nil {
		return fmt.Errorf("failed to export backup: %w", err)
	}

	filename := fmt.Sprintf("korean-flashcards-%s.json", time.Now().Format(time.DateOnly))
	return h.bot.SendDocument(message.Chat.ID, filename, buf.Bytes(), "💾 Backup of all decks")
}
