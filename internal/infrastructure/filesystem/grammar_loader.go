package filesystem

import (
	"encoding/json"
	"fmt"
	"os"

	"korean-learning-bot/internal/domain/grammar"
)

// GrammarLoader handles loading grammar lists from files
type GrammarLoader struct{}

// NewGrammarLoader creates a new grammar loader
func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{}
}

// GrammarData represents the JSON structure of a grammar list
type GrammarData struct {
	Items []GrammarEntry `json:"grammar"`
}

// GrammarEntry represents a single grammar item in JSON
type GrammarEntry struct {
	ID        int64  `json:"id"`
	Korean    string `json:"korean"`
	Japanese  string `json:"japanese"`
	ExampleKo string `json:"example_ko"`
	ExampleJa string `json:"example_ja"`
}

// LoadFromFile loads a grammar list from a JSON, CSV or XLSX file.
// CSV and XLSX files start with a header row followed by
// "korean,japanese,example_ko,example_ja" rows; a row's id is its line number
// below the header.
func (gl *GrammarLoader) LoadFromFile(filename string, level grammar.Level) ([]*grammar.Item, error) {
	if !grammar.IsValidLevel(string(level)) {
		return nil, fmt.Errorf("invalid level: %s", level)
	}

	format, err := sourceFormat(filename)
	if err != nil {
		return nil, err
	}
	if format == formatJSON {
		return gl.loadJSON(filename, level)
	}

	rows, err := readRows(filename, format)
	if err != nil {
		return nil, err
	}

	var items []*grammar.Item
	for i, row := range rows {
		// header
		if i == 0 || isBlank(row) {
			continue
		}
		korean, japanese := cell(row, 0), cell(row, 1)
		if korean == "" || japanese == "" {
			return nil, fmt.Errorf("row %d: grammar item needs korean and japanese columns", i+1)
		}
		items = append(items, grammar.NewItem(grammar.ID(i), korean, japanese, cell(row, 2), cell(row, 3), level))
	}

	return items, nil
}

func (gl *GrammarLoader) loadJSON(filename string, level grammar.Level) ([]*grammar.Item, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open grammar file: %w", err)
	}
	defer file.Close()

	var data GrammarData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode grammar JSON: %w", err)
	}

	seen := make(map[int64]bool, len(data.Items))
	var items []*grammar.Item
	for _, entry := range data.Items {
		if entry.ID <= 0 {
			return nil, fmt.Errorf("grammar item %q has no positive id", entry.Korean)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("duplicate grammar id: %d", entry.ID)
		}
		seen[entry.ID] = true

		items = append(items, grammar.NewItem(
			grammar.ID(entry.ID),
			entry.Korean,
			entry.Japanese,
			entry.ExampleKo,
			entry.ExampleJa,
			level,
		))
	}

	return items, nil
}
