package app

import (
	"time"

	"daily-vocab-service/internal/domain"
)

// Daily window boundaries, as fractional UTC hours. Half-open intervals:
// exactly 20:00 is quiz, exactly 20:30 is ranking.
const (
	quizOpensAt    = 20.0
	rankingOpensAt = 20.5
)

const (
	learningWindow = "00:00-20:00 UTC"
	quizWindow     = "20:00-20:30 UTC"
	rankingWindow  = "20:30-24:00 UTC"
)

// PhaseAt returns the active phase and its window label for an instant.
// Only the UTC hour of day matters; the function is pure so tests can
// pin the clock.
func PhaseAt(now time.Time) (domain.Phase, string) {
	utc := now.UTC()
	hour := float64(utc.Hour()) +
		float64(utc.Minute())/60 +
		float64(utc.Second())/3600 +
		float64(utc.Nanosecond())/(3600*1e9)

	switch {
	case hour < quizOpensAt:
		return domain.PhaseLearning, learningWindow
	case hour < rankingOpensAt:
		return domain.PhaseQuiz, quizWindow
	default:
		return domain.PhaseRanking, rankingWindow
	}
}
