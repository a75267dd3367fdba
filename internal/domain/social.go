package domain

import "time"

type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	MediaURL  string    `json:"media_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PostView is a post as rendered on a timeline or profile.
type PostView struct {
	Post
	AuthorName    string `json:"fullname"`
	AuthorPic     string `json:"profile_pic,omitempty"`
	University    string `json:"university"`
	LikeCount     int    `json:"like_count"`
	LikedByViewer bool   `json:"user_has_liked"`
}

type LikeState struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	NotifyLike          = "like"
	NotifyFriendRequest = "friend_request"
	NotifyBroadcast     = "broadcast"
)

// Notification is addressed to UserID. SenderID and PostID are zero when absent.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	SenderID  int64     `json:"sender_id,omitempty"`
	PostID    int64     `json:"post_id,omitempty"`
	Kind      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
)

type FriendRequest struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// FriendRequestView is a pending request as shown to its receiver.
type FriendRequestView struct {
	RequestID  int64  `json:"request_id"`
	SenderID   int64  `json:"sender_id"`
	FullName   string `json:"fullname"`
	University string `json:"university"`
}

type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Body       string    `json:"message"`
	Read       bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatPreview is the latest message exchanged with one partner.
type ChatPreview struct {
	PartnerID   int64     `json:"id"`
	FullName    string    `json:"fullname"`
	LastMessage string    `json:"message"`
	At          time.Time `json:"created_at"`
	Unread      bool      `json:"unread"`
}

type Conversation struct {
	Partner  UserSummary `json:"partner"`
	Messages []Message   `json:"messages"`
}

// Network is the friends page.
type Network struct {
	Requests    []FriendRequestView `json:"requests"`
	Friends     []UserSummary       `json:"friends"`
	RecentChats []ChatPreview       `json:"recent_chats"`
	Discover    []UserSummary       `json:"users"`
}

// Badges are the unread counters shown next to navigation entries.
type Badges struct {
	Notifications  int `json:"notif_count"`
	FriendRequests int `json:"friend_requests"`
	Messages       int `json:"msg_count"`
}

type Timeline struct {
	Posts  []PostView `json:"posts"`
	Events []Event    `json:"events"`
	Badges Badges     `json:"badges"`
}

type Profile struct {
	User  User       `json:"profile_user"`
	Posts []PostView `json:"posts"`
}

type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Link        string    `json:"event_link,omitempty"`
	ImageURL    string    `json:"event_image,omitempty"`
	SubmittedBy int64     `json:"submitted_by"`
	Approved    bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

type Resource struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	CourseCode  string    `json:"course_code"`
	DownloadURL string    `json:"download_url"`
	UploadedBy  int64     `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers    int    `json:"total_users"`
	TotalSessions int    `json:"total_quizzes"`
	TotalEvents   int    `json:"total_events"`
	TopUniversity string `json:"top_uni"`
}
