package memory

import (
	"context"
	"sort"

	"student-link/internal/app"
	"student-link/internal/domain"
)

func (s *Store) CreateSession(_ context.Context, session domain.QuizSession) (domain.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.ID = s.nextIDLocked("quiz_sessions")
	s.sessions[session.ID] = session
	return session, nil
}

func (s *Store) GetSession(_ context.Context, id int64) (domain.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) ListSessions(_ context.Context) ([]domain.QuizSession, error) {
	s.mu.RLock()
	sessions := sortedValues(s.sessions)
	s.mu.RUnlock()
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
		}
		return sessions[i].ID > sessions[j].ID
	})
	return sessions, nil
}

func (s *Store) CountSessions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// DeleteSession cascades to questions and attempts, mirroring the SQL schema.
func (s *Store) DeleteSession(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	for qid, q := range s.questions {
		if q.SessionID == id {
			delete(s.questions, qid)
		}
	}
	for aid, a := range s.attempts {
		if a.SessionID == id {
			delete(s.attempts, aid)
		}
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) ListQuestions(_ context.Context, sessionID int64) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Question{}
	for _, q := range sortedValues(s.questions) {
		if q.SessionID == sessionID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *Store) InsertQuestions(_ context.Context, sessionID int64, questions []domain.Question) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return nil, domain.ErrSessionNotFound
	}
	stored := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		q.ID = s.nextIDLocked("questions")
		q.SessionID = sessionID
		s.questions[q.ID] = q
		stored = append(stored, q)
	}
	return stored, nil
}

func (s *Store) CreateAttempt(_ context.Context, attempt domain.Attempt) (domain.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[attempt.SessionID]; !ok {
		return domain.Attempt{}, domain.ErrSessionNotFound
	}
	attempt.ID = s.nextIDLocked("quiz_attempts")
	s.attempts[attempt.ID] = attempt
	return attempt, nil
}

func (s *Store) TopAttempts(_ context.Context, limit int) ([]domain.AttemptEntry, error) {
	return app.RankAttempts(s.attemptEntries(), limit), nil
}

func (s *Store) RecentAttempts(_ context.Context, limit int) ([]domain.AttemptEntry, error) {
	entries := s.attemptEntries()
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].FinishTime.Equal(entries[j].FinishTime) {
			return entries[i].FinishTime.After(entries[j].FinishTime)
		}
		return entries[i].AttemptID > entries[j].AttemptID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) BestScores(_ context.Context, limit int) ([]domain.BestScoreEntry, error) {
	return app.RankBestScores(s.attemptEntries(), limit), nil
}

func (s *Store) attemptEntries() []domain.AttemptEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.AttemptEntry, 0, len(s.attempts))
	for _, a := range sortedValues(s.attempts) {
		entries = append(entries, domain.AttemptEntry{
			AttemptID:    a.ID,
			UserID:       a.UserID,
			FullName:     s.users[a.UserID].FullName,
			SessionID:    a.SessionID,
			SessionTitle: s.sessions[a.SessionID].Title,
			Score:        a.Score,
			FinishTime:   a.FinishTime,
		})
	}
	return entries
}
