package postgres

import (
	"context"

	"student-link/internal/domain"

	"github.com/jackc/pgx/v4"
)

const sessionColumns = `id, title, start_time, end_time, duration_minutes, created_at`

func scanSession(row pgx.Row) (domain.QuizSession, error) {
	var q domain.QuizSession
	err := row.Scan(&q.ID, &q.Title, &q.StartTime, &q.EndTime, &q.DurationMinutes, &q.CreatedAt)
	return q, err
}

func (s *Store) CreateSession(ctx context.Context, session domain.QuizSession) (domain.QuizSession, error) {
	created, err := scanSession(s.pool.QueryRow(ctx, `
		INSERT INTO quiz_sessions (title, start_time, end_time, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING `+sessionColumns,
		session.Title, session.StartTime, session.EndTime, session.DurationMinutes))
	if err != nil {
		return domain.QuizSession{}, storageErr("create session", err)
	}
	return created, nil
}

func (s *Store) GetSession(ctx context.Context, id int64) (domain.QuizSession, error) {
	q, err := scanSession(s.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM quiz_sessions WHERE id = $1`, id))
	if err != nil {
		return domain.QuizSession{}, notFound("get session", err, domain.ErrSessionNotFound)
	}
	return q, nil
}

func (s *Store) ListSessions(ctx context.Context) ([]domain.QuizSession, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+sessionColumns+` FROM quiz_sessions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, storageErr("list sessions", err)
	}
	defer rows.Close()

	sessions := []domain.QuizSession{}
	for rows.Next() {
		q, err := scanSession(rows)
		if err != nil {
			return nil, storageErr("scan session", err)
		}
		sessions = append(sessions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list sessions", err)
	}
	return sessions, nil
}

func (s *Store) CountSessions(ctx context.Context) (int, error) {
	return s.count(ctx, "count sessions", `SELECT COUNT(*) FROM quiz_sessions`)
}

// DeleteSession relies on ON DELETE CASCADE for questions and attempts.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete session", domain.ErrSessionNotFound,
		`DELETE FROM quiz_sessions WHERE id = $1`, id)
}

func (s *Store) ListQuestions(ctx context.Context, sessionID int64) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, question, option_a, option_b, option_c, option_d, correct_option
		FROM questions WHERE session_id = $1 ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, storageErr("list questions", err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.SessionID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption); err != nil {
			return nil, storageErr("scan question", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list questions", err)
	}
	return questions, nil
}

func (s *Store) InsertQuestions(ctx context.Context, sessionID int64, questions []domain.Question) ([]domain.Question, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, storageErr("begin import", err)
	}
	defer tx.Rollback(ctx)

	stored := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		q.SessionID = sessionID
		err := tx.QueryRow(ctx, `
			INSERT INTO questions (session_id, question, option_a, option_b, option_c, option_d, correct_option)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			sessionID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption).Scan(&q.ID)
		if err != nil {
			if pgCode(err) == foreignKeyViolation {
				return nil, domain.ErrSessionNotFound
			}
			return nil, storageErr("insert question", err)
		}
		stored = append(stored, q)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, storageErr("commit import", err)
	}
	return stored, nil
}

func (s *Store) CreateAttempt(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO quiz_attempts (user_id, session_id, score, finish_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		attempt.UserID, attempt.SessionID, attempt.Score, attempt.FinishTime).Scan(&attempt.ID)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return domain.Attempt{}, domain.ErrSessionNotFound
		}
		return domain.Attempt{}, storageErr("create attempt", err)
	}
	return attempt, nil
}

const attemptEntrySelect = `
	SELECT a.id, a.user_id, u.fullname, a.session_id, s.title, a.score, a.finish_time
	FROM quiz_attempts a
	JOIN users u ON u.id = a.user_id
	JOIN quiz_sessions s ON s.id = a.session_id`

func (s *Store) TopAttempts(ctx context.Context, limit int) ([]domain.AttemptEntry, error) {
	return s.attemptEntries(ctx, "top attempts", attemptEntrySelect+` ORDER BY a.score DESC, a.id ASC LIMIT $1`, limit)
}

func (s *Store) RecentAttempts(ctx context.Context, limit int) ([]domain.AttemptEntry, error) {
	return s.attemptEntries(ctx, "recent attempts", attemptEntrySelect+` ORDER BY a.finish_time DESC, a.id DESC LIMIT $1`, limit)
}

func (s *Store) attemptEntries(ctx context.Context, op, query string, limit int) ([]domain.AttemptEntry, error) {
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	entries := []domain.AttemptEntry{}
	for rows.Next() {
		var e domain.AttemptEntry
		if err := rows.Scan(&e.AttemptID, &e.UserID, &e.FullName, &e.SessionID, &e.SessionTitle, &e.Score, &e.FinishTime); err != nil {
			return nil, storageErr(op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return entries, nil
}

func (s *Store) BestScores(ctx context.Context, limit int) ([]domain.BestScoreEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.fullname, MAX(a.score) AS top_score
		FROM quiz_attempts a
		JOIN users u ON u.id = a.user_id
		GROUP BY u.id, u.fullname
		ORDER BY top_score DESC, u.id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, storageErr("best scores", err)
	}
	defer rows.Close()

	entries := []domain.BestScoreEntry{}
	for rows.Next() {
		var e domain.BestScoreEntry
		if err := rows.Scan(&e.UserID, &e.FullName, &e.TopScore); err != nil {
			return nil, storageErr("best scores", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("best scores", err)
	}
	return entries, nil
}
