package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"korean-learning-bot/internal/domain/deck"
	"korean-learning-bot/internal/domain/grammar"
	"korean-learning-bot/internal/domain/learning"
	"korean-learning-bot/internal/domain/vocabulary"
)

// VocabularySource reads a word list from a file
type VocabularySource interface {
	LoadFromFile(filename string, level vocabulary.Level) ([]*vocabulary.Word, error)
}

// GrammarSource reads a grammar list from a file
type GrammarSource interface {
	LoadFromFile(filename string, level grammar.Level) ([]*grammar.Item, error)
}

// CatalogUseCase keeps the item lists of the configured decks in the database
type CatalogUseCase struct {
	vocabularyRepo   vocabulary.Repository
	grammarRepo      grammar.Repository
	vocabularySource VocabularySource
	grammarSource    GrammarSource
	logger           *slog.Logger
}

// NewCatalogUseCase creates a new catalog use case
func NewCatalogUseCase(
	vocabularyRepo vocabulary.Repository,
	grammarRepo grammar.Repository,
	vocabularySource VocabularySource,
	grammarSource GrammarSource,
	logger *slog.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		vocabularyRepo:   vocabularyRepo,
		grammarRepo:      grammarRepo,
		vocabularySource: vocabularySource,
		grammarSource:    grammarSource,
		logger:           logger,
	}
}

// Import loads every deck's source file into the database. Decks with the same
// content and level share one item list, so they must name the same source.
func (uc *CatalogUseCase) Import(ctx context.Context, decks []deck.Deck) error {
	sources := make(map[string]string)

	for _, d := range decks {
		list := string(d.Content) + "/" + d.Level
		if source, ok := sources[list]; ok {
			if source != d.Source {
				return fmt.Errorf("deck %s: %s items already come from %s", d.Key, list, source)
			}
			continue
		}
		sources[list] = d.Source

		count, err := uc.importDeck(ctx, d)
		if err != nil {
			return fmt.Errorf("failed to import deck %s: %w", d.Key, err)
		}
		uc.logger.Info("deck content imported", "list", list, "source", d.Source, "items", count)
	}
	return nil
}

func (uc *CatalogUseCase) importDeck(ctx context.Context, d deck.Deck) (int, error) {
	switch d.Content {
	case deck.ContentVocabulary:
		words, err := uc.vocabularySource.LoadFromFile(d.Source, vocabulary.Level(d.Level))
		if err != nil {
			return 0, fmt.Errorf("failed to load vocabulary: %w", err)
		}
		if err := uc.vocabularyRepo.SaveBatch(ctx, words); err != nil {
			return 0, fmt.Errorf("failed to populate vocabulary: %w", err)
		}
		return len(words), nil

	case deck.ContentGrammar:
		items, err := uc.grammarSource.LoadFromFile(d.Source, grammar.Level(d.Level))
		if err != nil {
			return 0, fmt.Errorf("failed to load grammar: %w", err)
		}
		if err := uc.grammarRepo.SaveBatch(ctx, items); err != nil {
			return 0, fmt.Errorf("failed to populate grammar: %w", err)
		}
		return len(items), nil

	default:
		return 0, fmt.Errorf("unknown deck content %q", d.Content)
	}
}

// Cards lists a deck's items, ordered by id, as seen from the deck's direction
func (uc *CatalogUseCase) Cards(ctx context.Context, d deck.Deck) ([]deck.Card, error) {
	switch d.Content {
	case deck.ContentVocabulary:
		words, err := uc.vocabularyRepo.FindByLevel(ctx, vocabulary.Level(d.Level))
		if err != nil {
			return nil, fmt.Errorf("failed to get vocabulary: %w", err)
		}
		cards := make([]deck.Card, 0, len(words))
		for _, w := range words {
			cards = append(cards, deck.WordCard(w, d.Direction))
		}
		return cards, nil

	case deck.ContentGrammar:
		items, err := uc.grammarRepo.FindByLevel(ctx, grammar.Level(d.Level))
		if err != nil {
			return nil, fmt.Errorf("failed to get grammar: %w", err)
		}
		cards := make([]deck.Card, 0, len(items))
		for _, item := range items {
			cards = append(cards, deck.GrammarCard(item, d.Direction))
		}
		return cards, nil

	default:
		return nil, fmt.Errorf("unknown deck content %q", d.Content)
	}
}

// Library holds the study controllers of all configured decks in configuration order
type Library struct {
	decks []*StudyUseCase
	byKey map[string]*StudyUseCase
}

// StudyDependencies are the collaborators shared by every deck's controller
type StudyDependencies struct {
	Progress learning.Repository
	Notes    learning.NotesRepository
	Activity learning.ActivityRepository
	Clock    learning.Clock
	Logger   *slog.Logger
}

// BuildLibrary creates one study controller per deck
func (uc *CatalogUseCase) BuildLibrary(ctx context.Context, decks []deck.Deck, deps StudyDependencies) (*Library, error) {
	lib := &Library{byKey: make(map[string]*StudyUseCase, len(decks))}

	for _, d := range decks {
		cards, err := uc.Cards(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("failed to build deck %s: %w", d.Key, err)
		}
		if len(cards) == 0 {
			uc.logger.Warn("deck has no cards", "deck", d.Key)
		}

		study := NewStudyUseCase(d, cards, deps.Progress, deps.Notes, deps.Activity, deps.Clock, deps.Logger)
		lib.decks = append(lib.decks, study)
		lib.byKey[d.Key] = study
	}
	return lib, nil
}

// NewLibrary wraps already built controllers
func NewLibrary(decks ...*StudyUseCase) *Library {
	lib := &Library{byKey: make(map[string]*StudyUseCase, len(decks))}
	for _, d := range decks {
		lib.decks = append(lib.decks, d)
		lib.byKey[d.Deck().Key] = d
	}
	return lib
}

// Get returns the deck with key, nil when unknown
func (l *Library) Get(key string) *StudyUseCase {
	return l.byKey[key]
}

// Resolve returns the deck with key, falling back to the first deck
func (l *Library) Resolve(key string) *StudyUseCase {
	if d := l.Get(key); d != nil {
		return d
	}
	if len(l.decks) == 0 {
		return nil
	}
	return l.decks[0]
}

func (l *Library) All() []*StudyUseCase {
	return l.decks
}

// DueCount adds up the reviews and learning cards waiting today across all decks.
// New cards do not count.
func (l *Library) DueCount(ctx context.Context) (int, error) {
	total := 0
	for _, d := range l.decks {
		stats, err := d.TodayStats(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get stats of deck %s: %w", d.Deck().Key, err)
		}
		total += stats.ReviewCardsRemaining + stats.LearningCardsRemaining
	}
	return total, nil
}
