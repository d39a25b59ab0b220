package learning

import "fmt"

// CardState is the scheduling phase a card is in.
type CardState int

const (
	StateNew CardState = iota
	StateLearning
	StateReview
	StateRelearning
)

var stateNames = [...]string{
	StateNew:        "new",
	StateLearning:   "learning",
	StateReview:     "review",
	StateRelearning: "relearning",
}

// ParseCardState converts a stored state name back to a CardState.
func ParseCardState(name string) (CardState, error) {
	for state, candidate := range stateNames {
		if candidate == name {
			return CardState(state), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

func (s CardState) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

func (s CardState) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("CardState(%d)", int(s))
	}
	return stateNames[s]
}

func (s CardState) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, int(s))
	}
	return []byte(stateNames[s]), nil
}

func (s *CardState) UnmarshalText(text []byte) error {
	state, err := ParseCardState(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// priority orders cards inside a bucket: lower values are studied first.
func (s CardState) priority() int {
	switch s {
	case StateRelearning:
		return 0
	case StateLearning:
		return 1
	case StateReview:
		return 2
	case StateNew:
		return 3
	default:
		panic(fmt.Sprintf("learning: unhandled card state %d", int(s)))
	}
}

// Grade is the learner's answer to a card.
type Grade int

const (
	GradeAgain Grade = iota + 1
	GradeGood
)

// ParseGrade converts "again" or "good" to a Grade.
func ParseGrade(name string) (Grade, error) {
	switch name {
	case "again":
		return GradeAgain, nil
	case "good":
		return GradeGood, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGrade, name)
	}
}

func (g Grade) IsValid() bool {
	return g == GradeAgain || g == GradeGood
}

func (g Grade) String() string {
	switch g {
	case GradeAgain:
		return "again"
	case GradeGood:
		return "good"
	default:
		return fmt.Sprintf("Grade(%d)", int(g))
	}
}

func (g Grade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGrade, int(g))
	}
	return []byte(g.String()), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	grade, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = grade
	return nil
}
