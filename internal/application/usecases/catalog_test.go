package usecases

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"korean-learning-bot/internal/domain/deck"
	"korean-learning-bot/internal/domain/grammar"
	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/domain/vocabulary"
)

type mockVocabularySource struct {
	mock.Mock
}

func (m *mockVocabularySource) LoadFromFile(filename string, level vocabulary.Level) ([]*vocabulary.Word, error) {
	args := m.Called(filename, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vocabulary.Word), args.Error(1)
}

type mockGrammarSource struct {
	mock.Mock
}

func (m *mockGrammarSource) LoadFromFile(filename string, level grammar.Level) ([]*grammar.Item, error) {
	args := m.Called(filename, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grammar.Item), args.Error(1)
}

type memoryVocabulary struct {
	words map[vocabulary.Level][]*vocabulary.Word
}

func (r *memoryVocabulary) SaveBatch(ctx context.Context, words []*vocabulary.Word) error {
	for _, w := range words {
		r.words[w.Level()] = append(r.words[w.Level()], w)
	}
	return nil
}

func (r *memoryVocabulary) FindByID(ctx context.Context, level vocabulary.Level, id vocabulary.ID) (*vocabulary.Word, error) {
	for _, w := range r.words[level] {
		if w.ID() == id {
			return w, nil
		}
	}
	return nil, nil
}

func (r *memoryVocabulary) FindByLevel(ctx context.Context, level vocabulary.Level) ([]*vocabulary.Word, error) {
	words := slices.Clone(r.words[level])
	slices.SortFunc(words, func(a, b *vocabulary.Word) int { return int(a.ID() - b.ID()) })
	return words, nil
}

func (r *memoryVocabulary) Count(ctx context.Context, level vocabulary.Level) (int, error) {
	return len(r.words[level]), nil
}

type memoryGrammar struct {
	items map[grammar.Level][]*grammar.Item
}

func (r *memoryGrammar) SaveBatch(ctx context.Context, items []*grammar.Item) error {
	for _, item := range items {
		r.items[item.Level()] = append(r.items[item.Level()], item)
	}
	return nil
}

func (r *memoryGrammar) FindByID(ctx context.Context, level grammar.Level, id grammar.ID) (*grammar.Item, error) {
	for _, item := range r.items[level] {
		if item.ID() == id {
			return item, nil
		}
	}
	return nil, nil
}

func (r *memoryGrammar) FindByLevel(ctx context.Context, level grammar.Level) ([]*grammar.Item, error) {
	return slices.Clone(r.items[level]), nil
}

func (r *memoryGrammar) Count(ctx context.Context, level grammar.Level) (int, error) {
	return len(r.items[level]), nil
}

type catalogFixture struct {
	catalog       *CatalogUseCase
	vocabSource   *mockVocabularySource
	grammarSource *mockGrammarSource
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		vocabSource:   new(mockVocabularySource),
		grammarSource: new(mockGrammarSource),
	}
	f.catalog = NewCatalogUseCase(
		&memoryVocabulary{words: make(map[vocabulary.Level][]*vocabulary.Word)},
		&memoryGrammar{items: make(map[grammar.Level][]*grammar.Item)},
		f.vocabSource,
		f.grammarSource,
		discardLogger(),
	)
	return f
}

func catalogDecks() []deck.Deck {
	settings := learning.DefaultSettings()
	return []deck.Deck{
		{Key: "flashcard", Title: "Words", Content: deck.ContentVocabulary, Level: "beginner", Direction: deck.DirectionForward, Source: "words.csv", Settings: settings},
		{Key: "reverse-flashcard", Title: "Words (reverse)", Content: deck.ContentVocabulary, Level: "beginner", Direction: deck.DirectionReverse, Source: "words.csv", Settings: settings},
		{Key: "grammar-flashcard", Title: "Grammar", Content: deck.ContentGrammar, Level: "beginner", Direction: deck.DirectionForward, Source: "grammar.json", Settings: settings},
	}
}

func TestCatalogUseCase_ImportAndBuild(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	f.vocabSource.On("LoadFromFile", "words.csv", vocabulary.LevelBeginner).Return([]*vocabulary.Word{
		vocabulary.NewWord(2, "물", "水", vocabulary.LevelBeginner),
		vocabulary.NewWord(1, "사과", "りんご", vocabulary.LevelBeginner),
	}, nil).Once()
	f.grammarSource.On("LoadFromFile", "grammar.json", grammar.LevelBeginner).Return([]*grammar.Item{
		grammar.NewItem(1, "-아요/어요", "〜です・ます", "학교에 가요.", "学校に行きます。", grammar.LevelBeginner),
	}, nil).Once()

	decks := catalogDecks()
	require.NoError(t, f.catalog.Import(ctx, decks))
	f.vocabSource.AssertExpectations(t)
	f.grammarSource.AssertExpectations(t)

	store := newMemoryStore()
	lib, err := f.catalog.BuildLibrary(ctx, decks, StudyDependencies{
		Progress: store,
		Notes:    store,
		Activity: store,
		Clock:    &fakeClock{now: testNow},
		Logger:   discardLogger(),
	})
	require.NoError(t, err)
	require.Len(t, lib.All(), 3)

	forward := lib.Get("flashcard")
	require.NotNil(t, forward)
	assert.Equal(t, 2, forward.CardCount())
	card, ok := forward.Card(1)
	require.True(t, ok)
	assert.Equal(t, deck.Card{ID: 1, Front: "사과", Back: "りんご"}, card)

	reverse := lib.Get("reverse-flashcard")
	require.NotNil(t, reverse)
	card, ok = reverse.Card(1)
	require.True(t, ok)
	assert.Equal(t, "りんご", card.Front)
	assert.Equal(t, "사과", card.Back)

	first, err := forward.NextCard(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, learning.ItemID(1), first.Card.ID, "cards are studied in id order")

	grammarDeck := lib.Get("grammar-flashcard")
	require.NotNil(t, grammarDeck)
	card, ok = grammarDeck.Card(1)
	require.True(t, ok)
	assert.Equal(t, "학교에 가요.", card.Example)
	assert.Equal(t, "学校に行きます。", card.ExampleTranslation)

	// decks share the word list but not their progress
	_, err = forward.Answer(ctx, 1, learning.GradeAgain)
	require.NoError(t, err)
	due, err := lib.DueCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, due)

	reverseStats, err := reverse.TodayStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, reverseStats.CompletedToday)
}

func TestCatalogUseCase_ImportConflictingSources(t *testing.T) {
	f := newCatalogFixture()
	f.vocabSource.On("LoadFromFile", "words.csv", vocabulary.LevelBeginner).Return([]*vocabulary.Word{}, nil)

	decks := catalogDecks()[:2]
	decks[1].Source = "other.csv"

	err := f.catalog.Import(context.Background(), decks)
	assert.ErrorContains(t, err, "already come from words.csv")
}

func TestCatalogUseCase_ImportSourceError(t *testing.T) {
	f := newCatalogFixture()
	f.grammarSource.On("LoadFromFile", "grammar.json", grammar.LevelBeginner).Return(nil, errors.New("no such file"))

	err := f.catalog.Import(context.Background(), catalogDecks()[2:])
	assert.ErrorContains(t, err, "failed to import deck grammar-flashcard")
	assert.ErrorContains(t, err, "no such file")
}
