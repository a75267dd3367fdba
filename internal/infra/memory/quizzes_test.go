package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"student-link/internal/domain"
)

func TestDeleteSessionCascades(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	keep, _ := store.CreateSession(ctx, domain.QuizSession{Title: "Keep", StartTime: start, EndTime: start.Add(time.Hour)})
	doomed, _ := store.CreateSession(ctx, domain.QuizSession{Title: "Doomed", StartTime: start, EndTime: start.Add(time.Hour)})

	questions := make([]domain.Question, 5)
	for i := range questions {
		questions[i] = domain.Question{Text: "q", CorrectOption: domain.OptionA}
	}
	if _, err := store.InsertQuestions(ctx, doomed.ID, questions); err != nil {
		t.Fatalf("insert questions: %v", err)
	}
	if _, err := store.InsertQuestions(ctx, keep.ID, questions[:1]); err != nil {
		t.Fatalf("insert questions: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := store.CreateAttempt(ctx, domain.Attempt{UserID: 1, SessionID: doomed.ID, Score: i}); err != nil {
			t.Fatalf("create attempt: %v", err)
		}
	}
	if _, err := store.CreateAttempt(ctx, domain.Attempt{UserID: 1, SessionID: keep.ID, Score: 1}); err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	if err := store.DeleteSession(ctx, doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.GetSession(ctx, doomed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
	if qs, _ := store.ListQuestions(ctx, doomed.ID); len(qs) != 0 {
		t.Fatalf("expected questions cascaded, got %d", len(qs))
	}
	recent, _ := store.RecentAttempts(ctx, 50)
	if len(recent) != 1 || recent[0].SessionID != keep.ID {
		t.Fatalf("expected only the other session's attempt to survive, got %+v", recent)
	}
	if qs, _ := store.ListQuestions(ctx, keep.ID); len(qs) != 1 {
		t.Fatalf("expected other session's questions untouched, got %d", len(qs))
	}

	if err := store.DeleteSession(ctx, doomed.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestAttemptRankings(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	alice, _ := store.CreateUser(ctx, domain.User{FullName: "Alice", WhatsApp: "1"})
	bob, _ := store.CreateUser(ctx, domain.User{FullName: "Bob", WhatsApp: "2"})
	session, _ := store.CreateSession(ctx, domain.QuizSession{Title: "S1"})

	for _, a := range []domain.Attempt{
		{UserID: alice.ID, Score: 3},
		{UserID: alice.ID, Score: 5},
		{UserID: bob.ID, Score: 5},
		{UserID: bob.ID, Score: 1},
	} {
		a.SessionID = session.ID
		if _, err := store.CreateAttempt(ctx, a); err != nil {
			t.Fatalf("create attempt: %v", err)
		}
	}

	best, _ := store.BestScores(ctx, 20)
	if len(best) != 2 {
		t.Fatalf("expected one entry per user, got %+v", best)
	}
	if best[0].UserID != alice.ID || best[0].TopScore != 5 || best[1].UserID != bob.ID || best[1].TopScore != 5 {
		t.Fatalf("unexpected best scores %+v", best)
	}

	top, _ := store.TopAttempts(ctx, 10)
	if len(top) != 4 {
		t.Fatalf("expected every attempt listed, got %d", len(top))
	}
	if top[0].Score != 5 || top[1].Score != 5 || top[3].Score != 1 {
		t.Fatalf("unexpected ordering %+v", top)
	}
	if top[0].FullName != "Alice" || top[0].SessionTitle != "S1" {
		t.Fatalf("expected joined names, got %+v", top[0])
	}
}
