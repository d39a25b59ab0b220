package filesystem

import (
	"encoding/json"
	"fmt"
	"os"

	"korean-learning-bot/internal/domain/vocabulary"
)

// VocabularyLoader handles loading word lists from files
type VocabularyLoader struct{}

// NewVocabularyLoader creates a new vocabulary loader
func NewVocabularyLoader() *VocabularyLoader {
	return &VocabularyLoader{}
}

// VocabularyData represents the JSON structure of a word list
type VocabularyData struct {
	Words []VocabularyEntry `json:"words"`
}

// VocabularyEntry represents a single vocabulary entry in JSON
type VocabularyEntry struct {
	ID       int64  `json:"id"`
	Korean   string `json:"korean"`
	Japanese string `json:"japanese"`
}

// LoadFromFile loads a word list from a JSON, CSV or XLSX file.
// CSV and XLSX rows are "korean,japanese" and get 1-based ids in row order.
func (vl *VocabularyLoader) LoadFromFile(filename string, level vocabulary.Level) ([]*vocabulary.Word, error) {
	if !vocabulary.IsValidLevel(string(level)) {
		return nil, fmt.Errorf("invalid level: %s", level)
	}

	format, err := sourceFormat(filename)
	if err != nil {
		return nil, err
	}
	if format == formatJSON {
		return vl.loadJSON(filename, level)
	}

	rows, err := readRows(filename, format)
	if err != nil {
		return nil, err
	}

	var words []*vocabulary.Word
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		korean, japanese := cell(row, 0), cell(row, 1)
		if korean == "" || japanese == "" {
			return nil, fmt.Errorf("row %d: word needs korean and japanese columns", i+1)
		}
		words = append(words, vocabulary.NewWord(vocabulary.ID(len(words)+1), korean, japanese, level))
	}

	return words, nil
}

func (vl *VocabularyLoader) loadJSON(filename string, level vocabulary.Level) ([]*vocabulary.Word, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file: %w", err)
	}
	defer file.Close()

	var data VocabularyData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary JSON: %w", err)
	}

	seen := make(map[int64]bool, len(data.Words))
	var words []*vocabulary.Word
	for _, entry := range data.Words {
		if entry.ID <= 0 {
			return nil, fmt.Errorf("word %q has no positive id", entry.Korean)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("duplicate word id: %d", entry.ID)
		}
		seen[entry.ID] = true

		words = append(words, vocabulary.NewWord(vocabulary.ID(entry.ID), entry.Korean, entry.Japanese, level))
	}

	return words, nil
}
