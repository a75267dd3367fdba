package app

import (
	"context"
	"time"

	"student-link/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
	FindUserByWhatsApp(ctx context.Context, whatsapp string) (domain.User, error)
	UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (domain.User, error)
	SetRole(ctx context.Context, id int64, role domain.Role) error
	ToggleVerified(ctx context.Context, id int64) (domain.User, error)
	// ListUsers orders unverified users first, then by full name.
	ListUsers(ctx context.Context) ([]domain.User, error)
	DiscoverUsers(ctx context.Context, excludeID int64, limit int) ([]domain.UserSummary, error)
	CountUsers(ctx context.Context) (int, error)
	// TopUniversity returns "" when there are no users.
	TopUniversity(ctx context.Context) (string, error)
}

// QuizRepository covers the session store, question bank and attempt log.
type QuizRepository interface {
	CreateSession(ctx context.Context, session domain.QuizSession) (domain.QuizSession, error)
	GetSession(ctx context.Context, id int64) (domain.QuizSession, error)
	// ListSessions returns sessions newest first.
	ListSessions(ctx context.Context) ([]domain.QuizSession, error)
	CountSessions(ctx context.Context) (int, error)
	// DeleteSession removes the session, its questions and its attempts atomically.
	DeleteSession(ctx context.Context, id int64) error

	ListQuestions(ctx context.Context, sessionID int64) ([]domain.Question, error)
	// InsertQuestions stores the whole batch or nothing.
	InsertQuestions(ctx context.Context, sessionID int64, questions []domain.Question) ([]domain.Question, error)

	CreateAttempt(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error)
	// TopAttempts ranks individual attempts by score, ties by lower attempt id.
	TopAttempts(ctx context.Context, limit int) ([]domain.AttemptEntry, error)
	// RecentAttempts returns attempts newest first.
	RecentAttempts(ctx context.Context, limit int) ([]domain.AttemptEntry, error)
	// BestScores ranks users by their best attempt, ties by lower user id.
	BestScores(ctx context.Context, limit int) ([]domain.BestScoreEntry, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, post domain.Post) (domain.Post, error)
	GetPost(ctx context.Context, id int64) (domain.Post, error)
	// ListPosts returns posts newest first; authorID 0 means every author.
	ListPosts(ctx context.Context, viewerID, authorID int64) ([]domain.PostView, error)
	// ToggleLike flips the viewer's like and reports the resulting state.
	ToggleLike(ctx context.Context, postID, userID int64) (domain.LikeState, error)
	CreateComment(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]domain.Comment, error)
	CreateResource(ctx context.Context, resource domain.Resource) (domain.Resource, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error)
	// BroadcastNotification addresses one notification to every user and returns how many were written.
	BroadcastNotification(ctx context.Context, title, message string) (int, error)
	ListNotifications(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID int64) error
	CountUnreadNotifications(ctx context.Context, userID int64) (int, error)
}

type FriendRepository interface {
	// CreateFriendRequest fails with domain.ErrDuplicateRequest when the pair is already linked.
	CreateFriendRequest(ctx context.Context, senderID, receiverID int64) (domain.FriendRequest, error)
	GetFriendRequest(ctx context.Context, id int64) (domain.FriendRequest, error)
	AcceptFriendRequest(ctx context.Context, id int64) error
	DeleteFriendRequest(ctx context.Context, id int64) error
	PendingRequests(ctx context.Context, userID int64) ([]domain.FriendRequestView, error)
	CountPendingRequests(ctx context.Context, userID int64) (int, error)
	Friends(ctx context.Context, userID int64) ([]domain.UserSummary, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg domain.Message) (domain.Message, error)
	// Conversation returns messages between a and b, oldest first.
	Conversation(ctx context.Context, a, b int64) ([]domain.Message, error)
	// MarkConversationRead marks messages from sender to receiver as read.
	MarkConversationRead(ctx context.Context, senderID, receiverID int64) error
	RecentChats(ctx context.Context, userID int64) ([]domain.ChatPreview, error)
	CountUnreadMessages(ctx context.Context, userID int64) (int, error)
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	// ListApprovedEvents orders by event date ascending.
	ListApprovedEvents(ctx context.Context) ([]domain.Event, error)
	UpcomingEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error)
	// ListAllEvents returns every event newest first.
	ListAllEvents(ctx context.Context) ([]domain.Event, error)
	ApproveEvent(ctx context.Context, id int64) error
	DeleteEvent(ctx context.Context, id int64) error
	CountEvents(ctx context.Context) (int, error)
}

// SessionRepository stores live auth sessions (login creates, logout deletes).
type SessionRepository interface {
	Save(ctx context.Context, sessionID string, userID int64) error
	Lookup(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}
