package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"korean-learning-bot/internal/domain/deck"
	"korean-learning-bot/internal/domain/learning"
)

// StudyUseCase drives the study session of one deck. Every deck variant uses
// the same controller; only the deck definition and its cards differ.
type StudyUseCase struct {
	deck  deck.Deck
	cards []deck.Card
	index map[learning.ItemID]int

	progressRepo learning.Repository
	notesRepo    learning.NotesRepository
	activityRepo learning.ActivityRepository
	clock        learning.Clock
	logger       *slog.Logger

	// serializes the load-modify-save cycle on the deck's storage keys
	mu        sync.Mutex
	sessionID string
}

// StudyCard is a card ready to be shown, with the labels of both answer buttons
type StudyCard struct {
	Card      deck.Card
	Progress  learning.CardProgress
	AgainHint string
	GoodHint  string
}

// AnswerResult is the outcome of answering a card
type AnswerResult struct {
	Progress learning.CardProgress
	Stats    learning.TodayStats
	Next     *StudyCard // nil when nothing is left today
}

// DifficultCard is a card the learner keeps forgetting
type DifficultCard struct {
	Card     deck.Card
	Progress learning.CardProgress
	Memo     string
}

// NewStudyUseCase creates the session controller of d
func NewStudyUseCase(
	d deck.Deck,
	cards []deck.Card,
	progressRepo learning.Repository,
	notesRepo learning.NotesRepository,
	activityRepo learning.ActivityRepository,
	clock learning.Clock,
	logger *slog.Logger,
) *StudyUseCase {
	index := make(map[learning.ItemID]int, len(cards))
	for i, c := range cards {
		index[c.ID] = i
	}

	return &StudyUseCase{
		deck:         d,
		cards:        cards,
		index:        index,
		progressRepo: progressRepo,
		notesRepo:    notesRepo,
		activityRepo: activityRepo,
		clock:        clock,
		logger:       logger.With("deck", d.Key),
		sessionID:    uuid.NewString(),
	}
}

func (uc *StudyUseCase) Deck() deck.Deck {
	return uc.deck
}

// CardCount is the number of items in the deck
func (uc *StudyUseCase) CardCount() int {
	return len(uc.cards)
}

// Card looks up an item of the deck
func (uc *StudyUseCase) Card(id learning.ItemID) (deck.Card, bool) {
	i, ok := uc.index[id]
	if !ok {
		return deck.Card{}, false
	}
	return uc.cards[i], true
}

// snapshot is the deck's stored state as of one moment
type snapshot struct {
	collection learning.Collection
	daily      learning.DailyStats
	records    []learning.CardProgress
	queue      learning.Queue
}

func (uc *StudyUseCase) load(ctx context.Context) (*snapshot, error) {
	now := uc.clock.Now()
	settings := uc.deck.Settings

	records, err := uc.progressRepo.LoadProgress(ctx, uc.deck.ProgressKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	stored, err := uc.progressRepo.LoadDailyStats(ctx, uc.deck.TodayStatsKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load today stats: %w", err)
	}
	today := learning.DateString(now)
	daily := learning.DailyStats{Date: today}
	if stored != nil {
		daily = stored.ForDate(today)
	}

	collection := learning.NewCollection(records)
	complete := collection.Complete(deck.ItemIDs(uc.cards), settings, now)

	return &snapshot{
		collection: collection,
		daily:      daily,
		records:    complete,
		queue:      learning.BuildQueue(complete, settings, now),
	}, nil
}

// TodayStats reports what is left to study today
func (uc *StudyUseCase) TodayStats(ctx context.Context) (learning.TodayStats, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap, err := uc.load(ctx)
	if err != nil {
		return learning.TodayStats{}, err
	}
	return learning.ComputeTodayStats(snap.queue, snap.daily, uc.deck.Settings), nil
}

// NextCard returns the card to study now, or nil when the deck is done for today
func (uc *StudyUseCase) NextCard(ctx context.Context) (*StudyCard, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return uc.next(snap), nil
}

func (uc *StudyUseCase) next(snap *snapshot) *StudyCard {
	budget := learning.NewCardBudget(snap.daily, uc.deck.Settings)
	progress, ok := snap.queue.Next(budget)
	if !ok {
		return nil
	}
	return uc.studyCard(progress)
}

func (uc *StudyUseCase) studyCard(progress learning.CardProgress) *StudyCard {
	card, _ := uc.Card(progress.ItemID)
	return &StudyCard{
		Card:      card,
		Progress:  progress,
		AgainHint: learning.PreviewInterval(progress, learning.GradeAgain, uc.deck.Settings),
		GoodHint:  learning.PreviewInterval(progress, learning.GradeGood, uc.deck.Settings),
	}
}

// Answer applies grade to the item, saves the deck and picks the next card
func (uc *StudyUseCase) Answer(ctx context.Context, id learning.ItemID, grade learning.Grade) (*AnswerResult, error) {
	if !grade.IsValid() {
		return nil, learning.ErrUnknownGrade
	}
	if _, ok := uc.Card(id); !ok {
		return nil, fmt.Errorf("%w: %d in deck %s", learning.ErrUnknownItem, id, uc.deck.Key)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	before := snap.collection.Get(id, uc.deck.Settings, now)
	after := learning.ProcessAnswer(before, grade, uc.deck.Settings, now)

	snap.collection[id] = after
	snap.daily = snap.daily.Record(before.State, grade)

	if err := uc.progressRepo.SaveProgress(ctx, uc.deck.ProgressKey(), snap.collection.Records()); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}
	if err := uc.progressRepo.SaveDailyStats(ctx, uc.deck.TodayStatsKey(), snap.daily); err != nil {
		return nil, fmt.Errorf("failed to save today stats: %w", err)
	}
	if err := uc.activityRepo.AddPracticeDate(ctx, learning.DateString(now)); err != nil {
		return nil, fmt.Errorf("failed to record practice date: %w", err)
	}

	uc.logger.Debug("card answered",
		"session", uc.sessionID,
		"item", id,
		"grade", grade,
		"from", before.State,
		"to", after.State,
		"interval", after.Interval,
		"due", after.DueDate,
	)

	snap.records = snap.collection.Complete(deck.ItemIDs(uc.cards), uc.deck.Settings, now)
	snap.queue = learning.BuildQueue(snap.records, uc.deck.Settings, now)

	return &AnswerResult{
		Progress: after,
		Stats:    learning.ComputeTodayStats(snap.queue, snap.daily, uc.deck.Settings),
		Next:     uc.next(snap),
	}, nil
}

// Lookup returns an item of the deck as it would be shown now
func (uc *StudyUseCase) Lookup(ctx context.Context, id learning.ItemID) (*StudyCard, error) {
	if _, ok := uc.Card(id); !ok {
		return nil, fmt.Errorf("%w: %d in deck %s", learning.ErrUnknownItem, id, uc.deck.Key)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return uc.studyCard(snap.collection.Get(id, uc.deck.Settings, uc.clock.Now())), nil
}

// Preview returns the button labels of both grades without answering
func (uc *StudyUseCase) Preview(ctx context.Context, id learning.ItemID) (again, good string, err error) {
	card, err := uc.Lookup(ctx, id)
	if err != nil {
		return "", "", err
	}
	return card.AgainHint, card.GoodHint, nil
}

// Overview breaks the whole deck down by maturity
func (uc *StudyUseCase) Overview(ctx context.Context) (learning.Overview, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap, err := uc.load(ctx)
	if err != nil {
		return learning.Overview{}, err
	}
	return learning.Summarize(snap.records), nil
}

// Reset forgets the deck's progress and today's counters. Memos and exclusions are kept.
func (uc *StudyUseCase) Reset(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.progressRepo.Remove(ctx, uc.deck.ProgressKey(), uc.deck.TodayStatsKey()); err != nil {
		return fmt.Errorf("failed to reset deck: %w", err)
	}

	uc.sessionID = uuid.NewString()
	uc.logger.Info("deck reset", "session", uc.sessionID)
	return nil
}

// DifficultItems lists the cards that lapsed, most lapses first, skipping excluded ones
func (uc *StudyUseCase) DifficultItems(ctx context.Context) ([]DifficultCard, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	excludedIDs, err := uc.notesRepo.LoadExclusions(ctx, uc.deck.ExcludedKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load exclusions: %w", err)
	}
	excluded := make(map[learning.ItemID]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}

	memos, err := uc.notesRepo.LoadMemos(ctx, uc.deck.MemosKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load memos: %w", err)
	}

	var items []DifficultCard
	for _, p := range learning.DifficultItems(snap.records, excluded) {
		card, _ := uc.Card(p.ItemID)
		items = append(items, DifficultCard{Card: card, Progress: p, Memo: memos[p.ItemID]})
	}
	return items, nil
}

// Exclude hides an item from the difficult list
func (uc *StudyUseCase) Exclude(ctx context.Context, id learning.ItemID) error {
	if _, ok := uc.Card(id); !ok {
		return fmt.Errorf("%w: %d in deck %s", learning.ErrUnknownItem, id, uc.deck.Key)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	ids, err := uc.notesRepo.LoadExclusions(ctx, uc.deck.ExcludedKey())
	if err != nil {
		return fmt.Errorf("failed to load exclusions: %w", err)
	}
	if slices.Contains(ids, id) {
		return nil
	}

	if err := uc.notesRepo.SaveExclusions(ctx, uc.deck.ExcludedKey(), append(ids, id)); err != nil {
		return fmt.Errorf("failed to save exclusions: %w", err)
	}
	return nil
}

// ClearExclusions shows every difficult item again
func (uc *StudyUseCase) ClearExclusions(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.notesRepo.SaveExclusions(ctx, uc.deck.ExcludedKey(), nil); err != nil {
		return fmt.Errorf("failed to clear exclusions: %w", err)
	}
	return nil
}

// Memo returns the learner's note on an item, empty when there is none
func (uc *StudyUseCase) Memo(ctx context.Context, id learning.ItemID) (string, error) {
	memos, err := uc.notesRepo.LoadMemos(ctx, uc.deck.MemosKey())
	if err != nil {
		return "", fmt.Errorf("failed to load memos: %w", err)
	}
	return memos[id], nil
}

// SetMemo stores a note on an item. Blank text deletes the note.
func (uc *StudyUseCase) SetMemo(ctx context.Context, id learning.ItemID, text string) error {
	if _, ok := uc.Card(id); !ok {
		return fmt.Errorf("%w: %d in deck %s", learning.ErrUnknownItem, id, uc.deck.Key)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	memos, err := uc.notesRepo.LoadMemos(ctx, uc.deck.MemosKey())
	if err != nil {
		return fmt.Errorf("failed to load memos: %w", err)
	}
	if memos == nil {
		memos = make(map[learning.ItemID]string)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		delete(memos, id)
	} else {
		memos[id] = text
	}

	if err := uc.notesRepo.SaveMemos(ctx, uc.deck.MemosKey(), memos); err != nil {
		return fmt.Errorf("failed to save memos: %w", err)
	}
	return nil
}

// Streak counts the consecutive days practiced, across all decks
func (uc *StudyUseCase) Streak(ctx context.Context) (int, error) {
	dates, err := uc.activityRepo.LoadPracticeDates(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load practice dates: %w", err)
	}
	return learning.Streak(dates, uc.clock.Now()), nil
}
