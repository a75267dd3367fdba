package app

import (
	"sort"
	"time"

	"student-link/internal/domain"
)

// ResolveStatus classifies a session against now. The window is inclusive at both ends.
func ResolveStatus(now time.Time, session domain.QuizSession) domain.SessionStatus {
	switch {
	case now.Before(session.StartTime):
		return domain.StatusUpcoming
	case now.After(session.EndTime):
		return domain.StatusClosed
	default:
		return domain.StatusLive
	}
}

func statusRank(status domain.SessionStatus) int {
	switch status {
	case domain.StatusLive:
		return 1
	case domain.StatusUpcoming:
		return 2
	default:
		return 3
	}
}

// SortSessions annotates sessions with their status and orders them live, upcoming,
// closed; by start time within a group and by id when start times are equal.
func SortSessions(now time.Time, sessions []domain.QuizSession) []domain.SessionView {
	views := make([]domain.SessionView, 0, len(sessions))
	for _, s := range sessions {
		status := ResolveStatus(now, s)
		views = append(views, domain.SessionView{
			QuizSession: s,
			Status:      status,
			Rank:        statusRank(status),
		})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Rank != views[j].Rank {
			return views[i].Rank < views[j].Rank
		}
		if !views[i].StartTime.Equal(views[j].StartTime) {
			return views[i].StartTime.Before(views[j].StartTime)
		}
		return views[i].ID < views[j].ID
	})
	return views
}
