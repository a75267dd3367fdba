package app

import (
	"context"

	"student-link/internal/domain"

	"golang.org/x/sync/errgroup"
)

// AdminService backs the admin command center.
type AdminService struct {
	users   UserRepository
	quizzes QuizRepository
	events  EventRepository
}

func NewAdminService(users UserRepository, quizzes QuizRepository, events EventRepository) *AdminService {
	return &AdminService{users: users, quizzes: quizzes, events: events}
}

func (s *AdminService) Stats(ctx context.Context, p domain.Principal) (domain.AdminStats, error) {
	if err := requireAdmin(p); err != nil {
		return domain.AdminStats{}, err
	}
	var stats domain.AdminStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalUsers, err = s.users.CountUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalSessions, err = s.quizzes.CountSessions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalEvents, err = s.events.CountEvents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TopUniversity, err = s.users.TopUniversity(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.AdminStats{}, err
	}
	if stats.TopUniversity == "" {
		stats.TopUniversity = "N/A"
	}
	return stats, nil
}

// Users lists accounts for verification, unverified first.
func (s *AdminService) Users(ctx context.Context, p domain.Principal) ([]domain.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

func (s *AdminService) ToggleVerify(ctx context.Context, p domain.Principal, userID int64) (domain.User, error) {
	if err := requireAdmin(p); err != nil {
		return domain.User{}, err
	}
	return s.users.ToggleVerified(ctx, userID)
}
