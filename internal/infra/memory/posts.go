package memory

import (
	"context"
	"sort"

	"student-link/internal/domain"
)

func (s *Store) CreatePost(_ context.Context, post domain.Post) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.nextIDLocked("posts")
	s.posts[post.ID] = post
	return post, nil
}

func (s *Store) GetPost(_ context.Context, id int64) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *Store) ListPosts(_ context.Context, viewerID, authorID int64) ([]domain.PostView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	views := []domain.PostView{}
	for _, p := range sortedValues(s.posts) {
		if authorID != 0 && p.UserID != authorID {
			continue
		}
		author := s.users[p.UserID]
		_, liked := s.likes[likeKey{postID: p.ID, userID: viewerID}]
		views = append(views, domain.PostView{
			Post:          p,
			AuthorName:    author.FullName,
			AuthorPic:     author.ProfilePic,
			University:    author.University,
			LikeCount:     s.likeCountLocked(p.ID),
			LikedByViewer: liked,
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].ID > views[j].ID
	})
	return views, nil
}

func (s *Store) ToggleLike(_ context.Context, postID, userID int64) (domain.LikeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return domain.LikeState{}, domain.ErrPostNotFound
	}
	key := likeKey{postID: postID, userID: userID}
	_, liked := s.likes[key]
	if liked {
		delete(s.likes, key)
	} else {
		s.likes[key] = struct{}{}
	}
	return domain.LikeState{Liked: !liked, Count: s.likeCountLocked(postID)}, nil
}

func (s *Store) likeCountLocked(postID int64) int {
	n := 0
	for k := range s.likes {
		if k.postID == postID {
			n++
		}
	}
	return n
}

func (s *Store) CreateComment(_ context.Context, c domain.Comment) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[c.PostID]; !ok {
		return domain.Comment{}, domain.ErrPostNotFound
	}
	c.ID = s.nextIDLocked("comments")
	s.comments[c.ID] = c
	return c, nil
}

func (s *Store) ListComments(_ context.Context, postID int64) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Comment{}
	for _, c := range sortedValues(s.comments) {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) CreateResource(_ context.Context, r domain.Resource) (domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextIDLocked("resources")
	s.resources[r.ID] = r
	return r, nil
}

func (s *Store) ListResources(_ context.Context) ([]domain.Resource, error) {
	s.mu.RLock()
	resources := sortedValues(s.resources)
	s.mu.RUnlock()
	sort.SliceStable(resources, func(i, j int) bool {
		if !resources[i].CreatedAt.Equal(resources[j].CreatedAt) {
			return resources[i].CreatedAt.After(resources[j].CreatedAt)
		}
		return resources[i].ID > resources[j].ID
	})
	return resources, nil
}
