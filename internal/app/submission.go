package app

import (
	"daily-vocab-service/internal/domain"
)

// applyAttempt scores one submission against the question set and merges
// it with the user's prior record, if any. It returns the record to
// persist, the number of correct answers in this attempt, and this
// attempt's elapsed time formatted as HH:MM:SS.
//
// Answers without a matching question are ignored. Time summation is
// keyed by the answers map: a time entry whose word was never answered
// contributes nothing.
func applyAttempt(existing *domain.UserRecord, sub domain.Submission, questions []domain.Question) (domain.UserRecord, int, string) {
	accepted := make(map[string]string, len(questions))
	for _, q := range questions {
		accepted[q.Word] = q.Correct
	}

	correct := 0
	var attemptMs float64
	for word, answer := range sub.Answers {
		if want, ok := accepted[word]; ok && answer == want {
			correct++
		}
		attemptMs += sub.Time[word]
	}
	attemptInterval := FormatInterval(attemptMs)

	if existing == nil {
		return domain.UserRecord{
			Email:        sub.Email,
			CorrectCount: correct,
			Elapsed:      attemptInterval,
			Rank:         0,
		}, correct, attemptInterval
	}

	totalMs := ParseInterval(existing.Elapsed) + attemptMs
	return domain.UserRecord{
		Email:        existing.Email,
		CorrectCount: existing.CorrectCount + correct,
		Elapsed:      FormatInterval(totalMs),
		Rank:         existing.Rank,
	}, correct, attemptInterval
}
