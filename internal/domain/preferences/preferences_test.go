package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferences_Defaults(t *testing.T) {
	p := New()

	assert.True(t, p.RemindersEnabled())
	assert.True(t, p.ShowExamples())
	assert.Empty(t, p.ActiveDeck())
}

func TestPreferences_FromMapOverridesDefaults(t *testing.T) {
	p := FromMap(map[string]string{PrefRemindersEnabled: "false", PrefActiveDeck: "grammar"})

	assert.False(t, p.RemindersEnabled())
	assert.True(t, p.ShowExamples())
	assert.Equal(t, "grammar", p.ActiveDeck())
}

func TestPreferences_Toggle(t *testing.T) {
	p := New()

	assert.False(t, p.ToggleReminders())
	assert.True(t, p.ToggleReminders())
	assert.False(t, p.ToggleExamples())

	all := p.All()
	all[PrefShowExamples] = "true"
	assert.False(t, p.ShowExamples(), "All returns a copy")
}

func TestPreferences_InvalidBool(t *testing.T) {
	p := FromMap(map[string]string{PrefShowExamples: "maybe"})

	assert.False(t, p.ShowExamples())
}
