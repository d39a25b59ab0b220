package learning

import (
	"fmt"
	"math"
	"time"
)

// PreviewDelay returns how long after answering with grade at now the card
// would be due, without applying the answer. Day delays follow now's location,
// so a day across a DST change is not always 24h. Zero for an unknown grade or state.
func PreviewDelay(progress CardProgress, grade Grade, settings Settings, now time.Time) time.Duration {
	_, wait, ok := plan(progress, grade, settings)
	if !ok {
		return 0
	}
	return wait.from(now).Sub(now)
}

// PreviewInterval is the button label text for grade, e.g. "10 min" or "7 d".
// Empty for an unknown grade or state.
func PreviewInterval(progress CardProgress, grade Grade, settings Settings) string {
	_, wait, ok := plan(progress, grade, settings)
	if !ok {
		return ""
	}
	return wait.String()
}

// FormatInterval renders minutes below an hour, hours below a day and days otherwise.
func FormatInterval(d time.Duration) string {
	total := int(roundHalfUp(d.Minutes()))
	switch {
	case total < 60:
		return fmt.Sprintf("%d min", total)
	case total < 24*60:
		return fmt.Sprintf("%d h", int(math.Round(float64(total)/60)))
	default:
		return fmt.Sprintf("%d d", int(math.Round(float64(total)/(24*60))))
	}
}
