package shared

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"korean-learning-bot/internal/application/usecases"
	"korean-learning-bot/internal/domain/learning"
)

// CreateMainMenuKeyboard creates the standard main menu keyboard
func CreateMainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Study", "menu_study"),
			tgbotapi.NewInlineKeyboardButtonData("🗂 Decks", "menu_decks"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", "menu_stats"),
			tgbotapi.NewInlineKeyboardButtonData("🔥 Difficult", "menu_hard"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", "menu_help"),
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", "menu_settings"),
		),
	)
}

// CreateBackKeyboard has a single button back to the main menu
func CreateBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Back to Menu", "back_menu"),
		),
	)
}

// CreateStatsKeyboard creates a keyboard for stats view
func CreateStatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Study", "menu_study"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Back to Menu", "back_menu"),
		),
	)
}

// CreateDoneKeyboard is shown when a deck has nothing left today
func CreateDoneKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", "menu_stats"),
			tgbotapi.NewInlineKeyboardButtonData("🗂 Other deck", "menu_decks"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Back to Menu", "back_menu"),
		),
	)
}

// CreateRevealKeyboard asks for the back side of a card
func CreateRevealKeyboard(deckKey string, id learning.ItemID) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👀 Show answer", fmt.Sprintf("reveal_%s_%d", deckKey, id)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏹ Finish", "back_menu"),
		),
	)
}

// CreateGradeKeyboard offers both grades labelled with the interval each would schedule
func CreateGradeKeyboard(deckKey string, card *usecases.StudyCard) tgbotapi.InlineKeyboardMarkup {
	id := card.Card.ID
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Again · "+card.AgainHint, fmt.Sprintf("grade_%s_%d_%s", deckKey, id, learning.GradeAgain)),
			tgbotapi.NewInlineKeyboardButtonData("✅ Good · "+card.GoodHint, fmt.Sprintf("grade_%s_%d_%s", deckKey, id, learning.GradeGood)),
		),
	)
}

// FormatTodayLine summarizes what is left in a deck today
func FormatTodayLine(stats learning.TodayStats) string {
	return fmt.Sprintf("🆕 %d · 📖 %d · 🔁 %d",
		stats.NewCardsRemaining, stats.LearningCardsRemaining, stats.ReviewCardsRemaining)
}

// FormatCardFront renders the question side of a card
func FormatCardFront(title string, stats learning.TodayStats, card *usecases.StudyCard) string {
	return fmt.Sprintf("📚 *%s*   %s\n\n*%s*",
		EscapeMarkdown(title), FormatTodayLine(stats), EscapeMarkdown(card.Card.Front))
}

// FormatCardBack renders both sides of a card, with the example and memo when present
func FormatCardBack(title string, card *usecases.StudyCard, memo string, showExample bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 *%s*   %s\n\n", EscapeMarkdown(title), card.Progress.State)
	fmt.Fprintf(&sb, "*%s*\n➖➖➖\n%s", EscapeMarkdown(card.Card.Front), EscapeMarkdown(card.Card.Back))

	if showExample && card.Card.Example != "" {
		fmt.Fprintf(&sb, "\n\n💬 %s", EscapeMarkdown(card.Card.Example))
		if card.Card.ExampleTranslation != "" {
			fmt.Fprintf(&sb, "\n     %s", EscapeMarkdown(card.Card.ExampleTranslation))
		}
	}
	if memo != "" {
		fmt.Fprintf(&sb, "\n\n📝 %s", EscapeMarkdown(memo))
	}
	return sb.String()
}

// FormatStatsText formats a deck's statistics into a readable message
func FormatStatsText(title string, today learning.TodayStats, overview learning.Overview, streak int) string {
	return fmt.Sprintf(
		"📊 *%s*\n\n"+
			"*Today*\n"+
			"🆕 New left: %d\n"+
			"📖 Learning: %d\n"+
			"🔁 Reviews left: %d\n"+
			"✅ Answered: %d\n\n"+
			"*Deck*\n"+
			"📚 Total cards: %d\n"+
			"🆕 Unseen: %d\n"+
			"📖 Learning: %d\n"+
			"🌱 Young: %d\n"+
			"🌳 Mature: %d\n\n"+
			"🔥 Streak: %d day(s)",
		EscapeMarkdown(title),
		today.NewCardsRemaining, today.LearningCardsRemaining, today.ReviewCardsRemaining, today.CompletedToday,
		overview.Total, overview.New, overview.Learning, overview.Young, overview.Mature,
		streak)
}

// FormatDifficultText lists the cards the learner keeps forgetting
func FormatDifficultText(title string, items []usecases.DifficultCard) string {
	if len(items) == 0 {
		return fmt.Sprintf("🔥 *%s*\n\nNo difficult cards. Nice!", EscapeMarkdown(title))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔥 *%s*: %d difficult card(s)\n", EscapeMarkdown(title), len(items))
	for i, item := range items {
		fmt.Fprintf(&sb, "\n%d. *%s* : %s (×%d)",
			i+1, EscapeMarkdown(item.Card.Front), EscapeMarkdown(item.Card.Back), item.Progress.Lapses)
		if item.Memo != "" {
			fmt.Fprintf(&sb, "\n    📝 %s", EscapeMarkdown(item.Memo))
		}
	}
	return sb.String()
}

// GetHelpText returns the standard help text
func GetHelpText() string {
	return `🇰🇷 *Korean Flashcards Help*

*Commands:*
/study - Study the active deck
/decks - Choose a deck
/stats - Today's progress and streak
/hard - Cards you keep forgetting
/memo <text> - Attach a note to the last card
/reset - Reset the active deck
/settings - Reminders and examples
/export - Download a backup
/menu - Show main menu

*How it works:*
Each card is shown front first. Recall the answer, tap *Show answer*, then grade yourself:
🔁 *Again* - you did not remember, the card comes back soon
✅ *Good* - you remembered, the card waits longer next time

The buttons show when the card will come back. New cards climb through short learning steps before they are scheduled in days.`
}

// EscapeMarkdown escapes the characters that have a meaning in Telegram's Markdown mode
func EscapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
