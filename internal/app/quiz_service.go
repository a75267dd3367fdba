package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"reflect"
	"strings"
	"time"

	"student-link/internal/domain"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// QuizService contains the quiz use cases: status listing, taking a quiz,
// grading, leaderboards and the admin question bank.
type QuizService struct {
	quizzes  QuizRepository
	now      func() time.Time
	shuffle  func(n int, swap func(i, j int))
	validate *validator.Validate
	// reads collapses concurrent leaderboard queries into one repository call.
	reads singleflight.Group
}

func NewQuizService(quizzes QuizRepository) *QuizService {
	return NewQuizServiceWithClock(quizzes, time.Now)
}

// NewQuizServiceWithClock is used by tests that need a fixed "now".
func NewQuizServiceWithClock(quizzes QuizRepository, now func() time.Time) *QuizService {
	return &QuizService{
		quizzes:  quizzes,
		now:      now,
		shuffle:  rand.Shuffle,
		validate: newValidator(),
	}
}

// Dashboard lists every session with its status plus the raw top-10 attempts.
func (s *QuizService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	now := s.now()

	var (
		sessions []domain.QuizSession
		top      []domain.AttemptEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.quizzes.ListSessions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.topAttempts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}

	return domain.Dashboard{
		Sessions:    SortSessions(now, sessions),
		Leaderboard: top,
	}, nil
}

// Instructions returns session metadata shown before a quiz starts.
func (s *QuizService) Instructions(ctx context.Context, sessionID int64) (domain.SessionView, error) {
	session, err := s.quizzes.GetSession(ctx, sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	status := ResolveStatus(s.now(), session)
	return domain.SessionView{QuizSession: session, Status: status, Rank: statusRank(status)}, nil
}

// Start returns the session and its questions in a fresh random order, without answers.
func (s *QuizService) Start(ctx context.Context, sessionID int64) (domain.QuizPaper, error) {
	session, err := s.quizzes.GetSession(ctx, sessionID)
	if err != nil {
		return domain.QuizPaper{}, err
	}
	questions, err := s.quizzes.ListQuestions(ctx, sessionID)
	if err != nil {
		return domain.QuizPaper{}, err
	}

	views := make([]domain.QuestionView, len(questions))
	for i, q := range questions {
		views[i] = q.View()
	}
	s.shuffle(len(views), func(i, j int) { views[i], views[j] = views[j], views[i] })

	return domain.QuizPaper{Session: session, Questions: views}, nil
}

// Submit grades answers against the session's question bank and records one attempt.
// Resubmitting records another attempt.
func (s *QuizService) Submit(ctx context.Context, p domain.Principal, sessionID int64, answers map[int64]string) (domain.QuizResult, error) {
	session, err := s.quizzes.GetSession(ctx, sessionID)
	if err != nil {
		return domain.QuizResult{}, err
	}
	questions, err := s.quizzes.ListQuestions(ctx, sessionID)
	if err != nil {
		return domain.QuizResult{}, err
	}

	score := Grade(questions, answers)
	attempt, err := s.quizzes.CreateAttempt(ctx, domain.Attempt{
		UserID:     p.UserID,
		SessionID:  sessionID,
		Score:      score,
		FinishTime: s.now(),
	})
	if err != nil {
		return domain.QuizResult{}, err
	}
	log.Printf("quiz %d graded for user %d: %d/%d", sessionID, p.UserID, score, len(questions))

	return domain.QuizResult{
		AttemptID: attempt.ID,
		SessionID: sessionID,
		Title:     session.Title,
		Score:     score,
		Total:     len(questions),
	}, nil
}

// Grade counts exact matches between submitted labels and correct options.
// Unanswered questions score nothing; answers for unknown question ids are ignored.
func Grade(questions []domain.Question, answers map[int64]string) int {
	score := 0
	for _, q := range questions {
		if submitted, ok := answers[q.ID]; ok && submitted == q.CorrectOption {
			score++
		}
	}
	return score
}

// Leaderboard is the global best-score ranking.
func (s *QuizService) Leaderboard(ctx context.Context) ([]domain.BestScoreEntry, error) {
	v, err, _ := s.reads.Do("best-scores", func() (interface{}, error) {
		return s.quizzes.BestScores(ctx, bestScoreLimit)
	})
	if err != nil {
		return nil, err
	}
	entries := append([]domain.BestScoreEntry(nil), v.([]domain.BestScoreEntry)...)
	return truncate(entries, bestScoreLimit), nil
}

// TopAttempts is the raw attempt ranking, one row per attempt.
func (s *QuizService) TopAttempts(ctx context.Context) ([]domain.AttemptEntry, error) {
	return s.topAttempts(ctx)
}

func (s *QuizService) topAttempts(ctx context.Context) ([]domain.AttemptEntry, error) {
	v, err, _ := s.reads.Do("top-attempts", func() (interface{}, error) {
		return s.quizzes.TopAttempts(ctx, topAttemptsLimit)
	})
	if err != nil {
		return nil, err
	}
	entries := append([]domain.AttemptEntry(nil), v.([]domain.AttemptEntry)...)
	return truncate(entries, topAttemptsLimit), nil
}

// AdminOverview lists sessions newest first and the last 50 attempts.
func (s *QuizService) AdminOverview(ctx context.Context, p domain.Principal) (domain.QuizOverview, error) {
	if err := requireAdmin(p); err != nil {
		return domain.QuizOverview{}, err
	}
	var overview domain.QuizOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview.Sessions, err = s.quizzes.ListSessions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		overview.Attempts, err = s.quizzes.RecentAttempts(gctx, recentAttempts)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.QuizOverview{}, err
	}
	return overview, nil
}

// NewSession is the admin input for CreateSession.
type NewSession struct {
	Title           string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
}

func (s *QuizService) CreateSession(ctx context.Context, p domain.Principal, in NewSession) (domain.QuizSession, error) {
	if err := requireAdmin(p); err != nil {
		return domain.QuizSession{}, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.QuizSession{}, domain.Invalid("title is required")
	}
	if !in.StartTime.Before(in.EndTime) {
		return domain.QuizSession{}, domain.Invalid("start_time must be before end_time")
	}
	if in.DurationMinutes <= 0 {
		return domain.QuizSession{}, domain.Invalid("duration must be positive")
	}

	session, err := s.quizzes.CreateSession(ctx, domain.QuizSession{
		Title:           title,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationMinutes: in.DurationMinutes,
		CreatedAt:       s.now(),
	})
	if err != nil {
		return domain.QuizSession{}, err
	}
	log.Printf("quiz session %d created by user %d", session.ID, p.UserID)
	return session, nil
}

// ListQuestions is the admin view of a session's question bank, answers included.
func (s *QuizService) ListQuestions(ctx context.Context, p domain.Principal, sessionID int64) (domain.QuizSession, []domain.Question, error) {
	if err := requireAdmin(p); err != nil {
		return domain.QuizSession{}, nil, err
	}
	session, err := s.quizzes.GetSession(ctx, sessionID)
	if err != nil {
		return domain.QuizSession{}, nil, err
	}
	questions, err := s.quizzes.ListQuestions(ctx, sessionID)
	if err != nil {
		return domain.QuizSession{}, nil, err
	}
	return session, questions, nil
}

// ImportQuestions parses a JSON list of questions and stores all of them or none.
func (s *QuizService) ImportQuestions(ctx context.Context, p domain.Principal, sessionID int64, payload []byte) ([]domain.Question, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if _, err := s.quizzes.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	questions, err := s.parseQuestions(sessionID, payload)
	if err != nil {
		return nil, err
	}
	stored, err := s.quizzes.InsertQuestions(ctx, sessionID, questions)
	if err != nil {
		return nil, err
	}
	log.Printf("imported %d questions into quiz session %d", len(stored), sessionID)
	return stored, nil
}

// DeleteSession removes a session together with its questions and attempts.
func (s *QuizService) DeleteSession(ctx context.Context, p domain.Principal, sessionID int64) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if err := s.quizzes.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	log.Printf("quiz session %d deleted by user %d", sessionID, p.UserID)
	return nil
}

type questionRecord struct {
	Question      string `json:"question" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
}

func (s *QuizService) parseQuestions(sessionID int64, payload []byte) ([]domain.Question, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &domain.ImportError{Issues: []domain.ImportIssue{{Index: -1, Reason: "payload is not a JSON list"}}}
	}
	if len(raw) == 0 {
		return nil, &domain.ImportError{Issues: []domain.ImportIssue{{Index: -1, Reason: "no questions in payload"}}}
	}

	var issues []domain.ImportIssue
	questions := make([]domain.Question, 0, len(raw))
	for i, item := range raw {
		var rec questionRecord
		dec := json.NewDecoder(bytes.NewReader(item))
		if err := dec.Decode(&rec); err != nil {
			issues = append(issues, domain.ImportIssue{Index: i, Reason: "not a question object"})
			continue
		}
		rec.Question = strings.TrimSpace(rec.Question)
		rec.CorrectOption = strings.ToUpper(strings.TrimSpace(rec.CorrectOption))

		if err := s.validate.Struct(rec); err != nil {
			issues = append(issues, domain.ImportIssue{Index: i, Reason: describeValidation(err)})
			continue
		}
		questions = append(questions, domain.Question{
			SessionID:     sessionID,
			Text:          rec.Question,
			OptionA:       rec.OptionA,
			OptionB:       rec.OptionB,
			OptionC:       rec.OptionC,
			OptionD:       rec.OptionD,
			CorrectOption: rec.CorrectOption,
		})
	}
	if len(issues) > 0 {
		return nil, &domain.ImportError{Issues: issues}
	}
	return questions, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, ", ")
}

func requireAdmin(p domain.Principal) error {
	if !domain.IsAdmin(p) {
		return domain.ErrAdminOnly
	}
	return nil
}
