package app

import (
	"sort"

	"daily-vocab-service/internal/domain"
)

// ComputeRanks orders records by correct count descending, breaking ties
// by lower cumulative elapsed time, and assigns 1-based consecutive
// ranks. The sort is stable so unchanged input always produces the same
// assignment. The input slice is not modified.
func ComputeRanks(records []domain.UserRecord) []domain.UserRecord {
	ranked := make([]domain.UserRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CorrectCount != ranked[j].CorrectCount {
			return ranked[i].CorrectCount > ranked[j].CorrectCount
		}
		return ParseInterval(ranked[i].Elapsed) < ParseInterval(ranked[j].Elapsed)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
