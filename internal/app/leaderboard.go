package app

import (
	"sort"

	"student-link/internal/domain"
)

const (
	bestScoreLimit   = 20
	topAttemptsLimit = 10
	recentAttempts   = 50
)

// RankBestScores folds attempts into one entry per user holding their best score.
// Entries are ordered by score descending, then by user id.
func RankBestScores(attempts []domain.AttemptEntry, limit int) []domain.BestScoreEntry {
	best := make(map[int64]domain.BestScoreEntry)
	for _, a := range attempts {
		entry, ok := best[a.UserID]
		if !ok || a.Score > entry.TopScore {
			best[a.UserID] = domain.BestScoreEntry{UserID: a.UserID, FullName: a.FullName, TopScore: a.Score}
		}
	}
	entries := make([]domain.BestScoreEntry, 0, len(best))
	for _, entry := range best {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TopScore != entries[j].TopScore {
			return entries[i].TopScore > entries[j].TopScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	return truncate(entries, limit)
}

// RankAttempts orders individual attempts by score descending, then by attempt id.
// Attempts are not deduplicated by user.
func RankAttempts(attempts []domain.AttemptEntry, limit int) []domain.AttemptEntry {
	ranked := append([]domain.AttemptEntry(nil), attempts...)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].AttemptID < ranked[j].AttemptID
	})
	return truncate(ranked, limit)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	if items == nil {
		return []T{}
	}
	return items
}
