package telegram

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram bot API
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

// NewBot creates a new Telegram bot
func NewBot(token string, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	api.Debug = false
	logger.Info("authorized on account", "username", api.Self.UserName)

	return &Bot{api: api, logger: logger}, nil
}

// GetUpdatesChan returns a channel for receiving updates
func (b *Bot) GetUpdatesChan() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return b.api.GetUpdatesChan(u)
}

// StopReceivingUpdates closes the updates channel
func (b *Bot) StopReceivingUpdates() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a plain text message
func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	return b.send(msg)
}

// SendMessageWithMarkdown sends a message with markdown formatting
func (b *Bot) SendMessageWithMarkdown(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return b.send(msg)
}

// SendMessageWithKeyboard sends a message with inline keyboard
func (b *Bot) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	return b.send(msg)
}

// EditMessage edits an existing message
func (b *Bot) EditMessage(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	return b.send(edit)
}

// EditMessageWithKeyboard edits an existing message and replaces its keyboard
func (b *Bot) EditMessageWithKeyboard(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	edit.ReplyMarkup = &keyboard
	return b.send(edit)
}

// SendDocument uploads data as a file
func (b *Bot) SendDocument(chatID int64, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	return b.send(doc)
}

// send delivers c. An edit that leaves the message as it is counts as delivered:
// Telegram rejects it when a button is tapped twice on an unchanged screen.
func (b *Bot) send(c tgbotapi.Chattable) error {
	_, err := b.api.Send(c)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		b.logger.Debug("message unchanged")
		return nil
	}
	return err
}

// AnswerCallbackQuery answers a callback query
func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := b.api.Request(callback)
	return err
}

// SetupCommands configures the bot commands shown in Telegram's menu
func (b *Bot) SetupCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "🏠 Welcome message and main menu"},
		{Command: "menu", Description: "📋 Show main menu"},
		{Command: "study", Description: "📚 Study the active deck"},
		{Command: "decks", Description: "🗂 Choose a deck"},
		{Command: "stats", Description: "📊 Today's progress and streak"},
		{Command: "hard", Description: "🔥 Cards you keep forgetting"},
		{Command: "memo", Description: "📝 Note on the last card: /memo <text>"},
		{Command: "reset", Description: "♻️ Reset the active deck"},
		{Command: "settings", Description: "⚙️ Settings"},
		{Command: "export", Description: "💾 Download a backup"},
		{Command: "help", Description: "❓ Help"},
	}

	setCommands := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.api.Request(setCommands); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	b.logger.Info("bot commands configured")
	return nil
}
