package learning

import "errors"

var (
	ErrUnknownState    = errors.New("learning: unknown card state")
	ErrUnknownGrade    = errors.New("learning: unknown grade")
	ErrInvalidSettings = errors.New("learning: invalid settings")
	ErrUnknownItem     = errors.New("learning: item is not part of the deck")
)
