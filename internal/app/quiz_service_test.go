package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"student-link/internal/app"
	"student-link/internal/domain"
	"student-link/internal/infra/memory"
)

var (
	admin   = domain.Principal{UserID: 1, FullName: "Admin", Role: domain.RoleAdmin}
	student = domain.Principal{UserID: 2, FullName: "Student", Role: domain.RoleStudent}
	base    = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func TestResolveStatus(t *testing.T) {
	session := domain.QuizSession{StartTime: base, EndTime: base.Add(time.Hour)}
	cases := []struct {
		name string
		now  time.Time
		want domain.SessionStatus
	}{
		{"before start", base.Add(-time.Second), domain.StatusUpcoming},
		{"at start", base, domain.StatusLive},
		{"inside", base.Add(30 * time.Minute), domain.StatusLive},
		{"at end", base.Add(time.Hour), domain.StatusLive},
		{"after end", base.Add(time.Hour + time.Nanosecond), domain.StatusClosed},
	}
	for _, tc := range cases {
		if got := app.ResolveStatus(tc.now, session); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestSortSessionsGroupsAndOrders(t *testing.T) {
	now := base
	sessions := []domain.QuizSession{
		{ID: 1, StartTime: base.Add(-3 * time.Hour), EndTime: base.Add(-2 * time.Hour)}, // closed
		{ID: 2, StartTime: base.Add(2 * time.Hour), EndTime: base.Add(3 * time.Hour)},   // upcoming
		{ID: 3, StartTime: base.Add(-time.Hour), EndTime: base.Add(time.Hour)},          // live
		{ID: 4, StartTime: base.Add(time.Hour), EndTime: base.Add(2 * time.Hour)},       // upcoming
		{ID: 5, StartTime: base.Add(-2 * time.Hour), EndTime: base.Add(time.Hour)},      // live
		{ID: 7, StartTime: base.Add(time.Hour), EndTime: base.Add(4 * time.Hour)},       // upcoming, same start as 4
		{ID: 6, StartTime: base.Add(-5 * time.Hour), EndTime: base.Add(-4 * time.Hour)}, // closed
	}

	views := app.SortSessions(now, sessions)
	wantIDs := []int64{5, 3, 4, 7, 2, 6, 1}
	wantStatus := []domain.SessionStatus{
		domain.StatusLive, domain.StatusLive,
		domain.StatusUpcoming, domain.StatusUpcoming, domain.StatusUpcoming,
		domain.StatusClosed, domain.StatusClosed,
	}
	if len(views) != len(wantIDs) {
		t.Fatalf("expected %d views, got %d", len(wantIDs), len(views))
	}
	for i, v := range views {
		if v.ID != wantIDs[i] || v.Status != wantStatus[i] {
			t.Fatalf("position %d: expected session %d (%s), got %d (%s)", i, wantIDs[i], wantStatus[i], v.ID, v.Status)
		}
	}
}

func TestSubmitScoresExactMatches(t *testing.T) {
	ctx := context.Background()
	service, store := newQuizService(base)
	session, questions := seedSession(t, service, base.Add(-time.Hour), base.Add(time.Hour), "A", "B", "C")

	result, err := service.Submit(ctx, student, session.ID, map[int64]string{
		questions[0].ID: "A",
		questions[1].ID: "X",
		questions[2].ID: "C",
		9999:            "A",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 2 || result.Total != 3 {
		t.Fatalf("expected 2/3, got %d/%d", result.Score, result.Total)
	}
	if result.Title != session.Title {
		t.Fatalf("expected title %q, got %q", session.Title, result.Title)
	}

	attempts, _ := store.RecentAttempts(ctx, 50)
	if len(attempts) != 1 || attempts[0].Score != 2 || attempts[0].UserID != student.UserID {
		t.Fatalf("expected one persisted attempt, got %+v", attempts)
	}
	if !attempts[0].FinishTime.Equal(base) {
		t.Fatalf("expected finish time from server clock, got %v", attempts[0].FinishTime)
	}
}

func TestSubmitIsCaseSensitiveAndCountsMissingAsWrong(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService(base)
	session, questions := seedSession(t, service, base, base.Add(time.Hour), "A", "B", "C", "D")

	for k := 0; k <= len(questions); k++ {
		answers := map[int64]string{}
		for i := 0; i < k; i++ {
			answers[questions[i].ID] = questions[i].CorrectOption
		}
		if k < len(questions) {
			answers[questions[k].ID] = "a"
		}
		result, err := service.Submit(ctx, student, session.ID, answers)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if result.Score != k {
			t.Fatalf("expected score %d, got %d", k, result.Score)
		}
	}
}

func TestSubmitWithoutQuestions(t *testing.T) {
	ctx := context.Background()
	service, store := newQuizService(base)
	session, _ := seedSession(t, service, base, base.Add(time.Hour))

	result, err := service.Submit(ctx, student, session.ID, map[int64]string{1: "A"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 0 || result.Total != 0 {
		t.Fatalf("expected 0/0, got %d/%d", result.Score, result.Total)
	}
	if attempts, _ := store.RecentAttempts(ctx, 50); len(attempts) != 1 {
		t.Fatalf("expected attempt recorded, got %d", len(attempts))
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	ctx := context.Background()
	service, store := newQuizService(base)

	_, err := service.Submit(ctx, student, 404, map[int64]string{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if attempts, _ := store.RecentAttempts(ctx, 50); len(attempts) != 0 {
		t.Fatalf("expected no attempt, got %d", len(attempts))
	}
}

func TestResubmissionCreatesNewAttempt(t *testing.T) {
	ctx := context.Background()
	service, store := newQuizService(base)
	session, questions := seedSession(t, service, base, base.Add(time.Hour), "A")

	first, err := service.Submit(ctx, student, session.ID, map[int64]string{questions[0].ID: "A"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	second, err := service.Submit(ctx, student, session.ID, map[int64]string{questions[0].ID: "A"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if first.AttemptID == second.AttemptID {
		t.Fatalf("expected distinct attempts, both %d", first.AttemptID)
	}
	if attempts, _ := store.RecentAttempts(ctx, 50); len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
}

func TestLeaderboardBestScoreNeverDrops(t *testing.T) {
	ctx := context.Background()
	service, store := newQuizService(base)
	user, _ := store.CreateUser(ctx, domain.User{FullName: "Ada", WhatsApp: "080"})
	p := domain.Principal{UserID: user.ID, FullName: user.FullName, Role: domain.RoleStudent}
	session, questions := seedSession(t, service, base, base.Add(time.Hour), "A", "B", "C")

	best := func() int {
		entries, err := service.Leaderboard(ctx)
		if err != nil {
			t.Fatalf("leaderboard: %v", err)
		}
		for _, e := range entries {
			if e.UserID == user.ID {
				return e.TopScore
			}
		}
		return -1
	}

	submissions := []map[int64]string{
		{questions[0].ID: "A", questions[1].ID: "B"},
		{},
		{questions[0].ID: "A", questions[1].ID: "B", questions[2].ID: "C"},
		{questions[2].ID: "C"},
	}
	prev := -1
	for _, answers := range submissions {
		if _, err := service.Submit(ctx, p, session.ID, answers); err != nil {
			t.Fatalf("submit: %v", err)
		}
		got := best()
		if got < prev {
			t.Fatalf("best score dropped from %d to %d", prev, got)
		}
		prev = got
	}
	if prev != 3 {
		t.Fatalf("expected best score 3, got %d", prev)
	}
}

func TestLeaderboardsAreDistinctViews(t *testing.T) {
	ctx := context.Background()
	service, store := newQuizService(base)
	session, questions := seedSession(t, service, base, base.Add(time.Hour), "A", "B")
	u1, _ := store.CreateUser(ctx, domain.User{FullName: "One", WhatsApp: "1"})
	u2, _ := store.CreateUser(ctx, domain.User{FullName: "Two", WhatsApp: "2"})

	all := map[int64]string{questions[0].ID: "A", questions[1].ID: "B"}
	for _, p := range []domain.Principal{{UserID: u1.ID}, {UserID: u1.ID}, {UserID: u2.ID}} {
		if _, err := service.Submit(ctx, p, session.ID, all); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	best, _ := service.Leaderboard(ctx)
	if len(best) != 2 || best[0].UserID != u1.ID || best[1].UserID != u2.ID {
		t.Fatalf("expected one row per user with lower id first, got %+v", best)
	}
	top, _ := service.TopAttempts(ctx)
	if len(top) != 3 {
		t.Fatalf("expected raw attempts, got %+v", top)
	}

	empty, _ := newQuizService(base)
	if rows, err := empty.Leaderboard(ctx); err != nil || len(rows) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v (%v)", rows, err)
	}
}

func TestDashboardOrdersSessions(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService(base)
	closed, _ := seedSession(t, service, base.Add(-2*time.Hour), base.Add(-time.Hour))
	upcoming, _ := seedSession(t, service, base.Add(time.Hour), base.Add(2*time.Hour))
	live, _ := seedSession(t, service, base.Add(-time.Hour), base.Add(time.Hour))

	dash, err := service.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(dash.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(dash.Sessions))
	}
	got := []int64{dash.Sessions[0].ID, dash.Sessions[1].ID, dash.Sessions[2].ID}
	want := []int64{live.ID, upcoming.ID, closed.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if dash.Leaderboard == nil {
		t.Fatalf("expected empty, non-nil leaderboard")
	}
}

func TestStartShufflesAndHidesAnswers(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService(base)
	session, questions := seedSession(t, service, base, base.Add(time.Hour), "A", "B", "C", "D", "A")

	paper, err := service.Start(ctx, session.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if paper.Session.ID != session.ID || len(paper.Questions) != len(questions) {
		t.Fatalf("unexpected paper %+v", paper)
	}
	seen := map[int64]bool{}
	for _, q := range paper.Questions {
		seen[q.ID] = true
	}
	for _, q := range questions {
		if !seen[q.ID] {
			t.Fatalf("question %d missing from paper", q.ID)
		}
	}

	if _, err := service.Start(ctx, 404); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestImportNormalizesCorrectOption(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService(base)
	session, _ := seedSession(t, service, base, base.Add(time.Hour))

	payload := []byte(`[
		{"question":"2+2?","option_a":"3","option_b":"4","option_c":"5","option_d":"6","correct_option":"b"},
		{"question":"Capital of Nigeria?","option_a":"Abuja","option_b":"Lagos","option_c":"Kano","option_d":"Ibadan","correct_option":"A"},
		{"question":"H2O is?","option_a":"Salt","option_b":"Gold","option_c":"Water","option_d":"Iron","correct_option":" c "}
	]`)
	stored, err := service.ImportQuestions(ctx, admin, session.ID, payload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(stored))
	}
	if stored[0].CorrectOption != "B" || stored[2].CorrectOption != "C" {
		t.Fatalf("expected normalized options, got %q and %q", stored[0].CorrectOption, stored[2].CorrectOption)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	service, store := newQuizService(base)
	session, _ := seedSession(t, service, base, base.Add(time.Hour))

	payload := []byte(`[
		{"question":"ok","option_a":"1","option_b":"2","option_c":"3","option_d":"4","correct_option":"a"},
		{"question":"bad label","option_a":"1","option_b":"2","option_c":"3","option_d":"4","correct_option":"E"},
		"not an object",
		{"option_a":"1","option_b":"2","option_c":"3","option_d":"4","correct_option":"A"}
	]`)
	_, err := service.ImportQuestions(ctx, admin, session.ID, payload)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	var importErr *domain.ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("expected ImportError, got %T", err)
	}
	if len(importErr.Issues) != 3 || importErr.Issues[0].Index != 1 || importErr.Issues[1].Index != 2 || importErr.Issues[2].Index != 3 {
		t.Fatalf("unexpected issues %+v", importErr.Issues)
	}
	if qs, _ := store.ListQuestions(ctx, session.ID); len(qs) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(qs))
	}

	if _, err := service.ImportQuestions(ctx, admin, session.ID, []byte(`{"question":"x"}`)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for non-list payload, got %v", err)
	}
	if _, err := service.ImportQuestions(ctx, admin, 404, []byte(`[]`)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown session, got %v", err)
	}
}

func TestAdminOperationsRequireAdmin(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService(base)
	session, _ := seedSession(t, service, base, base.Add(time.Hour))

	if _, err := service.CreateSession(ctx, student, app.NewSession{Title: "x", StartTime: base, EndTime: base.Add(time.Hour), DurationMinutes: 10}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden create, got %v", err)
	}
	if _, err := service.ImportQuestions(ctx, student, session.ID, []byte(`[]`)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden import, got %v", err)
	}
	if err := service.DeleteSession(ctx, student, session.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	if _, err := service.AdminOverview(ctx, student); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden overview, got %v", err)
	}
}

func TestCreateSessionValidates(t *testing.T) {
	ctx := context.Background()
	service, _ := newQuizService(base)
	cases := []app.NewSession{
		{Title: " ", StartTime: base, EndTime: base.Add(time.Hour), DurationMinutes: 10},
		{Title: "t", StartTime: base, EndTime: base, DurationMinutes: 10},
		{Title: "t", StartTime: base.Add(time.Hour), EndTime: base, DurationMinutes: 10},
		{Title: "t", StartTime: base, EndTime: base.Add(time.Hour), DurationMinutes: 0},
	}
	for i, in := range cases {
		if _, err := service.CreateSession(ctx, admin, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestDeleteSessionRemovesQuestionsAndAttempts(t *testing.T) {
	ctx := context.Background()
	service, store := newQuizService(base)
	session, questions := seedSession(t, service, base, base.Add(time.Hour), "A", "B", "C", "D", "A")
	for i := 0; i < 2; i++ {
		if _, err := service.Submit(ctx, student, session.ID, map[int64]string{questions[0].ID: "A"}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if err := service.DeleteSession(ctx, admin, session.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if qs, _ := store.ListQuestions(ctx, session.ID); len(qs) != 0 {
		t.Fatalf("expected questions removed, got %d", len(qs))
	}
	if attempts, _ := store.RecentAttempts(ctx, 50); len(attempts) != 0 {
		t.Fatalf("expected attempts cascaded, got %d", len(attempts))
	}
	overview, err := service.AdminOverview(ctx, admin)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(overview.Sessions))
	}
	if err := service.DeleteSession(ctx, admin, session.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func newQuizService(now time.Time) (*app.QuizService, *memory.Store) {
	store := memory.NewStore()
	return app.NewQuizServiceWithClock(store, func() time.Time { return now }), store
}

// seedSession creates a session with one question per correct option given.
func seedSession(t *testing.T, service *app.QuizService, start, end time.Time, correct ...string) (domain.QuizSession, []domain.Question) {
	t.Helper()
	ctx := context.Background()
	session, err := service.CreateSession(ctx, admin, app.NewSession{
		Title:           "Session",
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(correct) == 0 {
		return session, nil
	}
	payload := "["
	for i, c := range correct {
		if i > 0 {
			payload += ","
		}
		payload += `{"question":"q","option_a":"a","option_b":"b","option_c":"c","option_d":"d","correct_option":"` + c + `"}`
	}
	payload += "]"
	questions, err := service.ImportQuestions(ctx, admin, session.ID, []byte(payload))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return session, questions
}
