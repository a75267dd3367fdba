package memory

import (
	"sort"
	"sync"

	"student-link/internal/app"
	"student-link/internal/domain"
)

var (
	_ app.UserRepository         = (*Store)(nil)
	_ app.QuizRepository         = (*Store)(nil)
	_ app.PostRepository         = (*Store)(nil)
	_ app.NotificationRepository = (*Store)(nil)
	_ app.FriendRepository       = (*Store)(nil)
	_ app.MessageRepository      = (*Store)(nil)
	_ app.EventRepository        = (*Store)(nil)
)

type likeKey struct {
	postID int64
	userID int64
}

// Store is an in-process implementation of every repository. It backs the
// server when no Postgres URL is configured and the service tests.
type Store struct {
	mu  sync.RWMutex
	ids map[string]int64

	users         map[int64]domain.User
	sessions      map[int64]domain.QuizSession
	questions     map[int64]domain.Question
	attempts      map[int64]domain.Attempt
	posts         map[int64]domain.Post
	likes         map[likeKey]struct{}
	comments      map[int64]domain.Comment
	notifications map[int64]domain.Notification
	requests      map[int64]domain.FriendRequest
	messages      map[int64]domain.Message
	events        map[int64]domain.Event
	resources     map[int64]domain.Resource
}

func NewStore() *Store {
	return &Store{
		ids:           make(map[string]int64),
		users:         make(map[int64]domain.User),
		sessions:      make(map[int64]domain.QuizSession),
		questions:     make(map[int64]domain.Question),
		attempts:      make(map[int64]domain.Attempt),
		posts:         make(map[int64]domain.Post),
		likes:         make(map[likeKey]struct{}),
		comments:      make(map[int64]domain.Comment),
		notifications: make(map[int64]domain.Notification),
		requests:      make(map[int64]domain.FriendRequest),
		messages:      make(map[int64]domain.Message),
		events:        make(map[int64]domain.Event),
		resources:     make(map[int64]domain.Resource),
	}
}

func (s *Store) nextIDLocked(table string) int64 {
	s.ids[table]++
	return s.ids[table]
}

// sortedValues returns map values ordered by key.
func sortedValues[T any](m map[int64]T) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
