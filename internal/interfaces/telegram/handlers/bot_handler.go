package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"korean-learning-bot/internal/application/usecases"
	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/domain/preferences"
	"korean-learning-bot/internal/interfaces/telegram"
)

// Messenger is the part of the Telegram bot the handlers talk through
type Messenger interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	EditMessage(chatID int64, messageID int, text string) error
	EditMessageWithKeyboard(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	SendDocument(chatID int64, filename string, data []byte, caption string) error
	AnswerCallbackQuery(callbackID string, text string) error
}

// BotHandler handles Telegram bot interactions for the bot's single owner
type BotHandler struct {
	bot             Messenger
	library         *usecases.Library
	backup          *usecases.BackupUseCase
	preferencesRepo preferences.Repository
	ownerChatID     int64
	logger          *slog.Logger
	dispatcher      telegram.Dispatcher
	clicks          *clickTracker

	mu       sync.Mutex
	lastCard *cardRef
}

// cardRef points at the card shown last, which /memo annotates
type cardRef struct {
	deckKey string
	id      learning.ItemID
}

// NewBotHandler creates a new bot handler
func NewBotHandler(
	bot Messenger,
	library *usecases.Library,
	backup *usecases.BackupUseCase,
	preferencesRepo preferences.Repository,
	ownerChatID int64,
	logger *slog.Logger,
) *BotHandler {
	h := &BotHandler{
		bot:             bot,
		library:         library,
		backup:          backup,
		preferencesRepo: preferencesRepo,
		ownerChatID:     ownerChatID,
		logger:          logger,
		dispatcher:      telegram.NewDispatcher(),
		clicks:          newClickTracker(),
	}
	h.registerCommands()
	return h
}

func (h *BotHandler) registerCommands() {
	h.dispatcher.RegisterHandler("start", h.handleStart)
	h.dispatcher.RegisterHandler("menu", h.handleMenu)
	h.dispatcher.RegisterHandler("study", h.handleStudy)
	h.dispatcher.RegisterHandler("decks", h.handleDecks)
	h.dispatcher.RegisterHandler("stats", h.handleStats)
	h.dispatcher.RegisterHandler("hard", h.handleHard)
	h.dispatcher.RegisterHandler("memo", h.handleMemo)
	h.dispatcher.RegisterHandler("reset", h.handleReset)
	h.dispatcher.RegisterHandler("settings", h.handleSettings)
	h.dispatcher.RegisterHandler("export", h.handleExport)
	h.dispatcher.RegisterHandler("help", h.handleHelp)
}

// Start handles updates until ctx is done or the channel closes.
// Updates are handled one at a time so answers are applied in the order given.
func (h *BotHandler) Start(ctx context.Context, updates <-chan tgbotapi.Update) error {
	h.logger.Info("bot started, waiting for updates")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bot stopping")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes one incoming update
func (h *BotHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		if !h.isOwner(update.Message.Chat) {
			h.logger.Warn("ignoring message from unknown chat", "chat_id", chatID(update.Message.Chat))
			return
		}
		h.handleMessage(ctx, update.Message)

	case update.CallbackQuery != nil:
		if update.CallbackQuery.Message == nil || !h.isOwner(update.CallbackQuery.Message.Chat) {
			h.logger.Warn("ignoring callback from unknown chat")
			return
		}
		h.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

func (h *BotHandler) isOwner(chat *tgbotapi.Chat) bool {
	return chat != nil && chat.ID == h.ownerChatID
}

func chatID(chat *tgbotapi.Chat) int64 {
	if chat == nil {
		return 0
	}
	return chat.ID
}

// handleMessage processes text messages and commands
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if !message.IsCommand() {
		h.send(message.Chat.ID, "Use /study to practice, /menu to see all options, or /help for help.")
		return
	}

	err := h.dispatcher.Dispatch(ctx, message)
	switch {
	case errors.Is(err, telegram.ErrUnknownCommand):
		h.send(message.Chat.ID, "Use /menu to see available options, or /help for detailed help.")
	case err != nil:
		h.logger.Error("command failed", "command", message.Command(), "error", err)
		h.send(message.Chat.ID, "Sorry, something went wrong. Please try again.")
	}
}

// handleCallbackQuery processes inline keyboard callbacks
func (h *BotHandler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Answer the callback to remove loading state
	if err := h.bot.AnswerCallbackQuery(callback.ID, ""); err != nil {
		h.logger.Warn("failed to answer callback query", "error", err)
	}

	data := callback.Data
	if data == "" || data == "noop" {
		return
	}
	parts := strings.Split(data, "_")

	h.logger.Debug("processing callback", "data", data, "message_id", callback.Message.MessageID)

	chat := callback.Message.Chat.ID
	msgID := callback.Message.MessageID

	switch parts[0] {
	case "menu":
		h.handleMenuSelection(ctx, callback, data)
	case "back":
		h.handleBackToMenu(ctx, callback)
	case "deck":
		if len(parts) == 2 {
			h.handleSelectDeck(ctx, callback, parts[1])
		}
	case "reveal":
		if len(parts) == 3 {
			if id, ok := parseItemID(parts[2]); ok {
				h.handleReveal(ctx, callback, parts[1], id)
			}
		}
	case "grade":
		if len(parts) == 4 {
			id, ok := parseItemID(parts[2])
			grade, err := learning.ParseGrade(parts[3])
			if ok && err == nil {
				h.handleGrade(ctx, callback, parts[1], id, grade)
			}
		}
	case "hide":
		if len(parts) == 3 {
			if id, ok := parseItemID(parts[2]); ok {
				h.handleHide(ctx, callback, parts[1], id)
			}
		}
	case "unhide":
		if len(parts) == 2 {
			h.handleUnhide(ctx, callback, parts[1])
		}
	case "reset":
		switch {
		case len(parts) == 3 && parts[1] == "confirm":
			h.handleResetConfirm(ctx, callback, parts[2])
		case len(parts) == 2 && parts[1] == "cancel":
			h.handleBackToMenu(ctx, callback)
		}
	case "toggle":
		if len(parts) == 2 {
			h.handleToggle(ctx, callback, parts[1])
		}
	default:
		h.logger.Warn("unknown callback type", "data", data)
		h.edit(chat, msgID, "This button is no longer valid. Use /menu to continue.", nil)
	}
}

func parseItemID(s string) (learning.ItemID, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return learning.ItemID(n), true
}

// activeDeck returns the deck the owner is studying and the preferences it was read from
func (h *BotHandler) activeDeck(ctx context.Context) (*usecases.StudyUseCase, *preferences.Preferences, error) {
	prefs, err := h.preferencesRepo.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	study := h.library.Resolve(prefs.ActiveDeck())
	if study == nil {
		return nil, nil, errNoDecks
	}
	return study, prefs, nil
}

var errNoDecks = errors.New("no decks configured")

func (h *BotHandler) setLastCard(deckKey string, id learning.ItemID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastCard = &cardRef{deckKey: deckKey, id: id}
}

func (h *BotHandler) getLastCard() *cardRef {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastCard
}
