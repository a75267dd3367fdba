package domain

import "time"

// QuizSession is a scheduled quiz window. Status is never stored; see SessionView.
type QuizSession struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// SessionStatus is the temporal state of a session relative to a given instant.
type SessionStatus string

const (
	StatusLive     SessionStatus = "live"
	StatusUpcoming SessionStatus = "upcoming"
	StatusClosed   SessionStatus = "closed"
)

// SessionView annotates a session with its resolved status and display rank.
type SessionView struct {
	QuizSession
	Status SessionStatus `json:"status"`
	Rank   int           `json:"rank"`
}

// Option labels accepted for Question.CorrectOption.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// Question is a four-option multiple choice question owned by one session.
type Question struct {
	ID            int64  `json:"id"`
	SessionID     int64  `json:"session_id"`
	Text          string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
}

// QuestionView is what a student sees while taking a quiz.
type QuestionView struct {
	ID      int64  `json:"id"`
	Text    string `json:"question"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
	OptionD string `json:"option_d"`
}

// View strips the answer key.
func (q Question) View() QuestionView {
	return QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		OptionA: q.OptionA,
		OptionB: q.OptionB,
		OptionC: q.OptionC,
		OptionD: q.OptionD,
	}
}

// QuizPaper is a started session with its questions in presentation order.
type QuizPaper struct {
	Session   QuizSession    `json:"session"`
	Questions []QuestionView `json:"questions"`
}

// Attempt is one graded submission. Attempts are append-only.
type Attempt struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	SessionID  int64     `json:"session_id"`
	Score      int       `json:"score"`
	FinishTime time.Time `json:"finish_time"`
}

// AttemptEntry is an attempt joined with its user and session for display.
type AttemptEntry struct {
	AttemptID    int64     `json:"attempt_id"`
	UserID       int64     `json:"user_id"`
	FullName     string    `json:"fullname"`
	SessionID    int64     `json:"session_id"`
	SessionTitle string    `json:"quiz_title"`
	Score        int       `json:"score"`
	FinishTime   time.Time `json:"finish_time"`
}

// BestScoreEntry is one row of the global best-score leaderboard.
type BestScoreEntry struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"fullname"`
	TopScore int    `json:"top_score"`
}

// QuizResult is returned after grading a submission.
type QuizResult struct {
	AttemptID int64  `json:"attempt_id"`
	SessionID int64  `json:"session_id"`
	Title     string `json:"quiz_title"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
}

// Dashboard is the student landing view.
type Dashboard struct {
	Sessions    []SessionView  `json:"quizzes"`
	Leaderboard []AttemptEntry `json:"leaderboard"`
}

// QuizOverview is the admin quiz console.
type QuizOverview struct {
	Sessions []QuizSession  `json:"sessions"`
	Attempts []AttemptEntry `json:"attempts"`
}
