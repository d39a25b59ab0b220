package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/interfaces/telegram/handlers/shared"
)

// clickTracker tracks recent clicks to drop rapid duplicates
type clickTracker struct {
	mu         sync.Mutex
	lastClicks map[string]time.Time
	window     time.Duration
	now        func() time.Time
}

// newClickTracker creates a new click tracker
func newClickTracker() *clickTracker {
	return &clickTracker{
		lastClicks: make(map[string]time.Time),
		window:     time.Second,
		now:        time.Now,
	}
}

// allow records the click and reports whether it is not a repeat within the window
func (ct *clickTracker) allow(action string) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	now := ct.now()
	if last, ok := ct.lastClicks[action]; ok && now.Sub(last) < ct.window {
		return false
	}
	ct.lastClicks[action] = now

	// Clean up old entries
	cutoff := now.Add(-5 * time.Minute)
	for key, t := range ct.lastClicks {
		if t.Before(cutoff) {
			delete(ct.lastClicks, key)
		}
	}
	return true
}

// failCallback logs err and replaces the message with text
func (h *BotHandler) failCallback(callback *tgbotapi.CallbackQuery, err error, text string) {
	h.logger.Error("callback failed", "data", callback.Data, "error", err)
	h.edit(callback.Message.Chat.ID, callback.Message.MessageID, text, nil)
}

// handleReveal shows the answer side of a card with both grade buttons
func (h *BotHandler) handleReveal(ctx context.Context, callback *tgbotapi.CallbackQuery, deckKey string, id learning.ItemID) {
	study := h.library.Get(deckKey)
	if study == nil {
		h.edit(callback.Message.Chat.ID, callback.Message.MessageID, "That deck is no longer available. Use /decks to pick one.", nil)
		return
	}

	card, err := study.Lookup(ctx, id)
	if err != nil {
		h.failCallback(callback, err, "Sorry, there was an error showing the answer. Please try again with /study")
		return
	}
	memo, err := study.Memo(ctx, id)
	if err != nil {
		h.failCallback(callback, err, "Sorry, there was an error showing the answer. Please try again with /study")
		return
	}
	prefs, err := h.preferencesRepo.Load(ctx)
	if err != nil {
		h.failCallback(callback, err, "Sorry, there was an error showing the answer. Please try again with /study")
		return
	}

	h.setLastCard(deckKey, id)
	text := shared.FormatCardBack(study.Deck().Title, card, memo, prefs.ShowExamples())
	keyboard := shared.CreateGradeKeyboard(deckKey, card)
	h.edit(callback.Message.Chat.ID, callback.Message.MessageID, text, &keyboard)
}

// handleGrade applies the grade and moves on to the next card
func (h *BotHandler) handleGrade(ctx context.Context, callback *tgbotapi.CallbackQuery, deckKey string, id learning.ItemID, grade learning.Grade) {
	// Debounce rapid clicks
	if !h.clicks.allow(callback.Data) {
		h.logger.Debug("ignoring rapid duplicate click", "data", callback.Data)
		return
	}

	study := h.library.Get(deckKey)
	if study == nil {
		h.edit(callback.Message.Chat.ID, callback.Message.MessageID, "That deck is no longer available. Use /decks to pick one.", nil)
		return
	}

	result, err := study.Answer(ctx, id, grade)
	if err != nil {
		h.failCallback(callback, err, "❌ Error saving your answer. Please try again with /study")
		return
	}

	card, _ := study.Card(id)
	feedback := fmt.Sprintf("✅ Good: %s", shared.EscapeMarkdown(card.Front))
	if grade == learning.GradeAgain {
		feedback = fmt.Sprintf("🔁 Again: %s", shared.EscapeMarkdown(card.Front))
	}

	if result.Next == nil {
		h.edit(callback.Message.Chat.ID, callback.Message.MessageID,
			feedback+"\n\n"+doneText(study.Deck().Title, result.Stats.CompletedToday), ptr(shared.CreateDoneKeyboard()))
		return
	}

	if err := h.showFront(callback.Message.Chat.ID, callback.Message.MessageID, true, study, result.Next, feedback, result.Stats); err != nil {
		h.logger.Error("failed to show next card", "error", err)
	}
}

// handleHide removes a card from the difficult list
func (h *BotHandler) handleHide(ctx context.Context, callback *tgbotapi.CallbackQuery, deckKey string, id learning.ItemID) {
	study := h.library.Get(deckKey)
	if study == nil {
		return
	}
	if err := study.Exclude(ctx, id); err != nil {
		h.failCallback(callback, err, "Sorry, there was an error updating the list.")
		return
	}
	h.refreshDifficult(ctx, callback)
}

// handleUnhide brings every hidden card back to the difficult list
func (h *BotHandler) handleUnhide(ctx context.Context, callback *tgbotapi.CallbackQuery, deckKey string) {
	study := h.library.Get(deckKey)
	if study == nil {
		return
	}
	if err := study.ClearExclusions(ctx); err != nil {
		h.failCallback(callback, err, "Sorry, there was an error updating the list.")
		return
	}
	h.refreshDifficult(ctx, callback)
}

func (h *BotHandler) refreshDifficult(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if err := h.handleDifficultFlow(ctx, callback.Message.Chat.ID, callback.Message.MessageID, true); err != nil {
		h.failCallback(callback, err, "Sorry, there was an error loading the difficult cards.")
	}
}

// handleResetConfirm resets a deck after the owner confirmed it
func (h *BotHandler) handleResetConfirm(ctx context.Context, callback *tgbotapi.CallbackQuery, deckKey string) {
	study := h.library.Get(deckKey)
	if study == nil {
		return
	}
	if err := study.Reset(ctx); err != nil {
		h.failCallback(callback, err, "Sorry, the deck could not be reset. Please try again.")
		return
	}

	text := fmt.Sprintf("♻️ *%s* has been reset.", shared.EscapeMarkdown(study.Deck().Title))
	h.edit(callback.Message.Chat.ID, callback.Message.MessageID, text, ptr(shared.CreateMainMenuKeyboard()))
}

func ptr[T any](v T) *T {
	return &v
}
