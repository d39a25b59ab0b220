package learning

import (
	"fmt"
	"math"
	"time"
)

// delay is how long after an answer a card becomes due again.
// Exactly one of minutes (ladder steps) or days (review intervals) is used.
type delay struct {
	minutes int
	days    int
}

func minutes(n int) delay { return delay{minutes: n} }
func days(n int) delay    { return delay{days: n} }

// from applies the delay; days are calendar days in t's location.
func (d delay) from(t time.Time) time.Time {
	if d.days > 0 {
		return t.AddDate(0, 0, d.days)
	}
	return t.Add(time.Duration(d.minutes) * time.Minute)
}

func (d delay) String() string {
	if d.days > 0 {
		return fmt.Sprintf("%d d", d.days)
	}
	return FormatInterval(time.Duration(d.minutes) * time.Minute)
}

// ProcessAnswer applies one grade to a card and returns the updated record.
// The input is never modified. An unknown grade or state returns the record
// as it was.
func ProcessAnswer(progress CardProgress, grade Grade, settings Settings, now time.Time) CardProgress {
	next, wait, ok := plan(progress, grade, settings)
	if !ok {
		return progress
	}
	next.DueDate = wait.from(now)
	reviewed := now
	next.LastReview = &reviewed
	return next
}

// plan computes everything a grade changes except the timestamps, so previews
// and transitions share one code path.
func plan(p CardProgress, grade Grade, s Settings) (CardProgress, delay, bool) {
	if !grade.IsValid() {
		return p, delay{}, false
	}

	var wait delay
	switch p.State {
	case StateNew, StateLearning:
		p, wait = planLearning(p, grade, s)
	case StateReview:
		p, wait = planReview(p, grade, s)
	case StateRelearning:
		p, wait = planRelearning(p, grade, s)
	default:
		return p, delay{}, false
	}
	return p, wait, true
}

// planLearning walks the learning ladder. A new card behaves like step 0.
func planLearning(p CardProgress, grade Grade, s Settings) (CardProgress, delay) {
	if grade == GradeAgain {
		p.State = StateLearning
		p.LearningStep = 0
		p.Repetitions = 0
		return p, minutes(s.LearningSteps[0])
	}

	step := nextStep(p.LearningStep)
	p.Repetitions++
	if step < len(s.LearningSteps) {
		p.State = StateLearning
		p.LearningStep = step
		return p, minutes(s.LearningSteps[step])
	}

	// graduate
	p.State = StateReview
	p.LearningStep = 0
	p.Interval = s.GraduatingInterval
	return p, days(s.GraduatingInterval)
}

func planReview(p CardProgress, grade Grade, s Settings) (CardProgress, delay) {
	if grade == GradeAgain {
		p.EaseFactor = math.Max(MinimumEase, p.EaseFactor-s.LapseEasePenalty)
		p.Lapses++
		p.Repetitions = 0
		p.LearningStep = 0
		if s.RelearnOnLapse {
			p.State = StateRelearning
			p.Interval = s.lapsedInterval(p.Interval)
			return p, minutes(s.RelearningSteps[0])
		}
		p.State = StateLearning
		p.Interval = 0
		return p, minutes(s.LearningSteps[0])
	}

	p.Interval = s.grownInterval(p.Interval, p.EaseFactor)
	p.Repetitions++
	return p, days(p.Interval)
}

func planRelearning(p CardProgress, grade Grade, s Settings) (CardProgress, delay) {
	if grade == GradeAgain {
		p.LearningStep = 0
		return p, minutes(s.RelearningSteps[0])
	}

	step := nextStep(p.LearningStep)
	if step < len(s.RelearningSteps) {
		p.LearningStep = step
		return p, minutes(s.RelearningSteps[step])
	}

	p.State = StateReview
	p.LearningStep = 0
	p.Interval = max(p.Interval, s.MinimumInterval)
	p.Repetitions = 1
	return p, days(p.Interval)
}

// nextStep derives the following ladder index; corrupt negative steps restart the ladder.
func nextStep(current int) int {
	return max(current, 0) + 1
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
