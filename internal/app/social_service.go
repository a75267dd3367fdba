package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"student-link/internal/domain"

	"golang.org/x/sync/errgroup"
)

const timelineEventLimit = 5

// SocialService covers the timeline, posts, likes, comments, profiles and the resource vault.
type SocialService struct {
	users         UserRepository
	posts         PostRepository
	events        EventRepository
	notifications NotificationRepository
	friends       FriendRepository
	messages      MessageRepository
	now           func() time.Time
}

func NewSocialService(users UserRepository, posts PostRepository, events EventRepository, notifications NotificationRepository, friends FriendRepository, messages MessageRepository) *SocialService {
	return &SocialService{
		users:         users,
		posts:         posts,
		events:        events,
		notifications: notifications,
		friends:       friends,
		messages:      messages,
		now:           time.Now,
	}
}

// Timeline gathers posts, the next approved events and the viewer's badges.
func (s *SocialService) Timeline(ctx context.Context, p domain.Principal) (domain.Timeline, error) {
	var tl domain.Timeline
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tl.Posts, err = s.posts.ListPosts(gctx, p.UserID, 0)
		return err
	})
	g.Go(func() error {
		var err error
		tl.Events, err = s.events.UpcomingEvents(gctx, s.now(), timelineEventLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Timeline{}, err
	}
	tl.Badges = s.Badges(ctx, p)
	return tl, nil
}

// Badges counts unread items. A failed count shows as zero instead of failing the page.
func (s *SocialService) Badges(ctx context.Context, p domain.Principal) domain.Badges {
	var b domain.Badges
	var err error
	if b.Notifications, err = s.notifications.CountUnreadNotifications(ctx, p.UserID); err != nil {
		log.Printf("count notifications for user %d: %v", p.UserID, err)
		b.Notifications = 0
	}
	if b.FriendRequests, err = s.friends.CountPendingRequests(ctx, p.UserID); err != nil {
		log.Printf("count friend requests for user %d: %v", p.UserID, err)
		b.FriendRequests = 0
	}
	if b.Messages, err = s.messages.CountUnreadMessages(ctx, p.UserID); err != nil {
		log.Printf("count messages for user %d: %v", p.UserID, err)
		b.Messages = 0
	}
	return b
}

func (s *SocialService) CreatePost(ctx context.Context, p domain.Principal, content, mediaURL string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	mediaURL = strings.TrimSpace(mediaURL)
	if content == "" && mediaURL == "" {
		return domain.Post{}, domain.Invalid("post needs content or media")
	}
	return s.posts.CreatePost(ctx, domain.Post{
		UserID:    p.UserID,
		Content:   content,
		MediaURL:  mediaURL,
		CreatedAt: s.now(),
	})
}

// ToggleLike likes or unlikes a post. A new like on someone else's post notifies its owner.
func (s *SocialService) ToggleLike(ctx context.Context, p domain.Principal, postID int64) (domain.LikeState, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return domain.LikeState{}, err
	}
	state, err := s.posts.ToggleLike(ctx, postID, p.UserID)
	if err != nil {
		return domain.LikeState{}, err
	}
	if state.Liked && post.UserID != p.UserID {
		_, err := s.notifications.CreateNotification(ctx, domain.Notification{
			UserID:    post.UserID,
			SenderID:  p.UserID,
			PostID:    postID,
			Kind:      domain.NotifyLike,
			Title:     "New like",
			Message:   fmt.Sprintf("%s liked your post.", p.FullName),
			CreatedAt: s.now(),
		})
		if err != nil {
			return domain.LikeState{}, err
		}
	}
	return state, nil
}

func (s *SocialService) Comment(ctx context.Context, p domain.Principal, postID int64, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.Invalid("comment content is required")
	}
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return domain.Comment{}, err
	}
	return s.posts.CreateComment(ctx, domain.Comment{
		PostID:    postID,
		UserID:    p.UserID,
		Content:   content,
		CreatedAt: s.now(),
	})
}

func (s *SocialService) Comments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.ListComments(ctx, postID)
}

// Profile returns a user and their posts as seen by the viewer.
func (s *SocialService) Profile(ctx context.Context, p domain.Principal, userID int64) (domain.Profile, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	posts, err := s.posts.ListPosts(ctx, p.UserID, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{User: user, Posts: posts}, nil
}

func (s *SocialService) UpdateProfile(ctx context.Context, p domain.Principal, update domain.ProfileUpdate) (domain.User, error) {
	current, err := s.users.GetUser(ctx, p.UserID)
	if err != nil {
		return domain.User{}, err
	}
	update.FullName = strings.TrimSpace(update.FullName)
	update.WhatsApp = strings.TrimSpace(update.WhatsApp)
	if update.FullName == "" {
		update.FullName = current.FullName
	}
	if update.WhatsApp == "" {
		update.WhatsApp = current.WhatsApp
	}
	if update.ProfilePic == "" {
		update.ProfilePic = current.ProfilePic
	}
	return s.users.UpdateProfile(ctx, p.UserID, update)
}

// UpdateAcademic changes only department and level.
func (s *SocialService) UpdateAcademic(ctx context.Context, p domain.Principal, department, level string) (domain.User, error) {
	current, err := s.users.GetUser(ctx, p.UserID)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.UpdateProfile(ctx, p.UserID, domain.ProfileUpdate{
		FullName:   current.FullName,
		WhatsApp:   current.WhatsApp,
		University: current.University,
		Department: strings.TrimSpace(department),
		Level:      strings.TrimSpace(level),
		Bio:        current.Bio,
		ProfilePic: current.ProfilePic,
	})
}

func (s *SocialService) Resources(ctx context.Context) ([]domain.Resource, error) {
	return s.posts.ListResources(ctx)
}

func (s *SocialService) UploadResource(ctx context.Context, p domain.Principal, title, courseCode, downloadURL string) (domain.Resource, error) {
	res := domain.Resource{
		Title:       strings.TrimSpace(title),
		CourseCode:  strings.TrimSpace(courseCode),
		DownloadURL: strings.TrimSpace(downloadURL),
		UploadedBy:  p.UserID,
		CreatedAt:   s.now(),
	}
	if res.Title == "" || res.CourseCode == "" || res.DownloadURL == "" {
		return domain.Resource{}, domain.Invalid("title, course_code and download_url are required")
	}
	return s.posts.CreateResource(ctx, res)
}
