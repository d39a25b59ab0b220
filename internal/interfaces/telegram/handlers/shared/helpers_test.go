package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"korean-learning-bot/internal/application/usecases"
	"korean-learning-bot/internal/domain/deck"
	"korean-learning-bot/internal/domain/learning"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\_\*\[\`+"`"+`ok]`, EscapeMarkdown("_*[`ok]"))
	assert.Equal(t, "사과 (apple)", EscapeMarkdown("사과 (apple)"))
}

func TestCreateGradeKeyboard(t *testing.T) {
	card := &usecases.StudyCard{
		Card:      deck.Card{ID: 12, Front: "물", Back: "水"},
		AgainHint: "10 min",
		GoodHint:  "3 d",
	}

	keyboard := CreateGradeKeyboard("grammar-flashcard", card)

	row := keyboard.InlineKeyboard[0]
	assert.Equal(t, "🔁 Again · 10 min", row[0].Text)
	assert.Equal(t, "grade_grammar-flashcard_12_again", *row[0].CallbackData)
	assert.Equal(t, "✅ Good · 3 d", row[1].Text)
	assert.Equal(t, "grade_grammar-flashcard_12_good", *row[1].CallbackData)
}

func TestFormatCardBack(t *testing.T) {
	card := &usecases.StudyCard{
		Card: deck.Card{
			ID:                 1,
			Front:              "-고 싶다",
			Back:               "〜したい",
			Example:            "한국에 가고 싶어요.",
			ExampleTranslation: "韓国に行きたいです。",
		},
		Progress: learning.CardProgress{State: learning.StateLearning},
	}

	withExample := FormatCardBack("Grammar", card, "want to", true)
	assert.Contains(t, withExample, "learning")
	assert.Contains(t, withExample, "〜したい")
	assert.Contains(t, withExample, "💬 한국에 가고 싶어요.")
	assert.Contains(t, withExample, "韓国に行きたいです。")
	assert.Contains(t, withExample, "📝 want to")

	plain := FormatCardBack("Grammar", card, "", false)
	assert.NotContains(t, plain, "💬")
	assert.NotContains(t, plain, "📝")
}

func TestFormatDifficultText(t *testing.T) {
	assert.Contains(t, FormatDifficultText("Words", nil), "No difficult cards")

	text := FormatDifficultText("Words", []usecases.DifficultCard{
		{Card: deck.Card{ID: 1, Front: "사과", Back: "りんご"}, Progress: learning.CardProgress{Lapses: 3}, Memo: "red"},
	})
	assert.Contains(t, text, "1 difficult card(s)")
	assert.Contains(t, text, "1. *사과* : りんご (×3)")
	assert.Contains(t, text, "📝 red")
}

func TestFormatTodayLine(t *testing.T) {
	stats := learning.TodayStats{NewCardsRemaining: 5, LearningCardsRemaining: 2, ReviewCardsRemaining: 9}
	assert.Equal(t, "🆕 5 · 📖 2 · 🔁 9", FormatTodayLine(stats))
}
