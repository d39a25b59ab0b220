package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"korean-learning-bot/internal/domain/preferences"
)

const ownerChatID int64 = 42

type reminderFixture struct {
	uc       *ReminderUseCase
	notifier *mockNotifier
	due      *mockDueCounter
	prefs    *mockPreferencesRepository
	clock    *fakeClock
}

func newReminderFixture(start time.Time) *reminderFixture {
	f := &reminderFixture{
		notifier: new(mockNotifier),
		due:      new(mockDueCounter),
		prefs:    new(mockPreferencesRepository),
		clock:    &fakeClock{now: start},
	}
	f.uc = NewReminderUseCase(f.notifier, f.due, f.prefs, ownerChatID, DefaultReminderConfig(), f.clock, discardLogger())
	return f
}

func TestReminderUseCase_SendsWhenCardsAreDue(t *testing.T) {
	f := newReminderFixture(testNow)
	ctx := context.Background()

	f.prefs.On("Load", ctx).Return(preferences.New(), nil)
	f.due.On("DueCount", ctx).Return(5, nil)
	f.notifier.On("SendMessageWithMarkdown", ownerChatID, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Good morning") && strings.Contains(text, "*5 cards* are waiting")
	})).Return(nil).Once()

	sent, err := f.uc.CheckAndSend(ctx)
	require.NoError(t, err)
	assert.True(t, sent)

	f.notifier.AssertExpectations(t)
}

func TestReminderUseCase_RespectsMinimumInterval(t *testing.T) {
	f := newReminderFixture(testNow)
	ctx := context.Background()

	f.prefs.On("Load", ctx).Return(preferences.New(), nil)
	f.due.On("DueCount", ctx).Return(1, nil)
	f.notifier.On("SendMessageWithMarkdown", ownerChatID, mock.Anything).Return(nil)

	sent, err := f.uc.CheckAndSend(ctx)
	require.NoError(t, err)
	require.True(t, sent)

	f.clock.Advance(time.Hour)
	sent, err = f.uc.CheckAndSend(ctx)
	require.NoError(t, err)
	assert.False(t, sent)

	f.clock.Advance(3 * time.Hour)
	sent, err = f.uc.CheckAndSend(ctx)
	require.NoError(t, err)
	assert.True(t, sent)

	f.notifier.AssertNumberOfCalls(t, "SendMessageWithMarkdown", 2)
}

func TestReminderUseCase_MaxPerDay(t *testing.T) {
	f := newReminderFixture(testNow)
	f.uc.config.MinReminderInterval = 0
	f.uc.config.MaxRemindersPerDay = 2
	ctx := context.Background()

	f.prefs.On("Load", ctx).Return(preferences.New(), nil)
	f.due.On("DueCount", ctx).Return(3, nil)
	f.notifier.On("SendMessageWithMarkdown", ownerChatID, mock.Anything).Return(nil)

	for i := 0; i < 3; i++ {
		_, err := f.uc.CheckAndSend(ctx)
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}
	f.notifier.AssertNumberOfCalls(t, "SendMessageWithMarkdown", 2)

	// the counter starts over the next day
	f.clock.Advance(24 * time.Hour)
	sent, err := f.uc.CheckAndSend(ctx)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestReminderUseCase_Skips(t *testing.T) {
	disabled := preferences.New()
	disabled.ToggleReminders()

	tests := []struct {
		name  string
		now   time.Time
		prefs *preferences.Preferences
		due   int
	}{
		{
			name:  "quiet hours at night",
			now:   time.Date(2024, time.March, 10, 23, 0, 0, 0, time.UTC),
			prefs: preferences.New(),
			due:   4,
		},
		{
			name:  "quiet hours in the early morning",
			now:   time.Date(2024, time.March, 10, 7, 59, 0, 0, time.UTC),
			prefs: preferences.New(),
			due:   4,
		},
		{
			name:  "reminders disabled",
			now:   testNow,
			prefs: disabled,
			due:   4,
		},
		{
			name:  "nothing due",
			now:   testNow,
			prefs: preferences.New(),
			due:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReminderFixture(tt.now)
			ctx := context.Background()

			f.prefs.On("Load", ctx).Return(tt.prefs, nil).Maybe()
			f.due.On("DueCount", ctx).Return(tt.due, nil).Maybe()

			sent, err := f.uc.CheckAndSend(ctx)
			require.NoError(t, err)
			assert.False(t, sent)
			f.notifier.AssertNotCalled(t, "SendMessageWithMarkdown", mock.Anything, mock.Anything)
		})
	}
}

func TestReminderUseCase_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("preferences", func(t *testing.T) {
		f := newReminderFixture(testNow)
		f.prefs.On("Load", ctx).Return(nil, errors.New("db closed"))

		_, err := f.uc.CheckAndSend(ctx)
		assert.ErrorContains(t, err, "failed to load preferences")
	})

	t.Run("send", func(t *testing.T) {
		f := newReminderFixture(testNow)
		f.prefs.On("Load", ctx).Return(preferences.New(), nil)
		f.due.On("DueCount", ctx).Return(1, nil)
		f.notifier.On("SendMessageWithMarkdown", ownerChatID, mock.Anything).Return(errors.New("blocked")).Once()
		f.notifier.On("SendMessageWithMarkdown", ownerChatID, mock.Anything).Return(nil).Once()

		sent, err := f.uc.CheckAndSend(ctx)
		assert.ErrorContains(t, err, "failed to send reminder")
		assert.False(t, sent)

		// a failed send does not count against the limits
		sent, err = f.uc.CheckAndSend(ctx)
		require.NoError(t, err)
		assert.True(t, sent)
	})
}

func TestReminderUseCase_IsQuietTime(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2024, time.March, 10, hour, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		start, end int
		hour       int
		want       bool
	}{
		{"wrapping, before start", 22, 8, 21, false},
		{"wrapping, at start", 22, 8, 22, true},
		{"wrapping, after midnight", 22, 8, 3, true},
		{"wrapping, at end", 22, 8, 8, false},
		{"same day, inside", 13, 15, 14, true},
		{"same day, outside", 13, 15, 16, false},
		{"disabled", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &ReminderUseCase{config: ReminderConfig{QuietHoursStart: tt.start, QuietHoursEnd: tt.end}}
			assert.Equal(t, tt.want, uc.isQuietTime(at(tt.hour)))
		})
	}
}

func TestReminderMessage(t *testing.T) {
	one := reminderMessage(time.Date(2024, time.March, 10, 14, 0, 0, 0, time.UTC), 1)
	assert.Contains(t, one, "Good afternoon")
	assert.Contains(t, one, "*1 card* is waiting")

	many := reminderMessage(time.Date(2024, time.March, 10, 19, 0, 0, 0, time.UTC), 12)
	assert.Contains(t, many, "Good evening")
	assert.Contains(t, many, "*12 cards* are waiting")
}
