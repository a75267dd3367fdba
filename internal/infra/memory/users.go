package memory

import (
	"context"
	"sort"

	"student-link/internal/domain"
)

func (s *Store) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.WhatsApp == user.WhatsApp {
			return domain.User{}, domain.ErrDuplicateAccount
		}
	}
	user.ID = s.nextIDLocked("users")
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) FindUserByWhatsApp(_ context.Context, whatsapp string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.WhatsApp == whatsapp {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (s *Store) UpdateProfile(_ context.Context, id int64, update domain.ProfileUpdate) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	for _, other := range s.users {
		if other.ID != id && other.WhatsApp == update.WhatsApp {
			return domain.User{}, domain.ErrDuplicateAccount
		}
	}
	u.FullName = update.FullName
	u.WhatsApp = update.WhatsApp
	u.University = update.University
	u.Department = update.Department
	u.Level = update.Level
	u.Bio = update.Bio
	u.ProfilePic = update.ProfilePic
	s.users[id] = u
	return u, nil
}

func (s *Store) SetRole(_ context.Context, id int64, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	s.users[id] = u
	return nil
}

func (s *Store) ToggleVerified(_ context.Context, id int64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	u.Verified = !u.Verified
	s.users[id] = u
	return u, nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	users := sortedValues(s.users)
	s.mu.RUnlock()
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Verified != users[j].Verified {
			return !users[i].Verified
		}
		return users[i].FullName < users[j].FullName
	})
	return users, nil
}

func (s *Store) DiscoverUsers(_ context.Context, excludeID int64, limit int) ([]domain.UserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.UserSummary{}
	for _, u := range sortedValues(s.users) {
		if u.ID == excludeID {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, u.Summary())
	}
	return out, nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

func (s *Store) TopUniversity(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, u := range s.users {
		counts[u.University]++
	}
	top, best := "", 0
	for uni, n := range counts {
		if n > best || (n == best && uni < top) {
			top, best = uni, n
		}
	}
	return top, nil
}
