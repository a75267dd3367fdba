package postgres

import (
	"context"

	"student-link/internal/domain"
)

func (s *Store) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, content, media_url) VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		post.UserID, post.Content, post.MediaURL).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return domain.Post{}, storageErr("create post", err)
	}
	return post, nil
}

func (s *Store) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	var p domain.Post
	err := s.pool.QueryRow(ctx, `SELECT id, user_id, content, media_url, created_at FROM posts WHERE id = $1`, id).
		Scan(&p.ID, &p.UserID, &p.Content, &p.MediaURL, &p.CreatedAt)
	if err != nil {
		return domain.Post{}, notFound("get post", err, domain.ErrPostNotFound)
	}
	return p, nil
}

func (s *Store) ListPosts(ctx context.Context, viewerID, authorID int64) ([]domain.PostView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.user_id, p.content, p.media_url, p.created_at,
		       u.fullname, u.profile_pic, u.university,
		       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
		       EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1)
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE $2::bigint = 0 OR p.user_id = $2
		ORDER BY p.created_at DESC, p.id DESC`, viewerID, authorID)
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	defer rows.Close()

	views := []domain.PostView{}
	for rows.Next() {
		var v domain.PostView
		if err := rows.Scan(&v.ID, &v.UserID, &v.Content, &v.MediaURL, &v.CreatedAt,
			&v.AuthorName, &v.AuthorPic, &v.University, &v.LikeCount, &v.LikedByViewer); err != nil {
			return nil, storageErr("scan post", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list posts", err)
	}
	return views, nil
}

func (s *Store) ToggleLike(ctx context.Context, postID, userID int64) (domain.LikeState, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.LikeState{}, storageErr("begin like", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return domain.LikeState{}, storageErr("unlike", err)
	}
	state := domain.LikeState{Liked: tag.RowsAffected() == 0}
	if state.Liked {
		if _, err := tx.Exec(ctx, `INSERT INTO likes (post_id, user_id) VALUES ($1, $2)`, postID, userID); err != nil {
			if pgCode(err) == foreignKeyViolation {
				return domain.LikeState{}, domain.ErrPostNotFound
			}
			return domain.LikeState{}, storageErr("like", err)
		}
	}
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&state.Count); err != nil {
		return domain.LikeState{}, storageErr("count likes", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.LikeState{}, storageErr("commit like", err)
	}
	return state, nil
}

func (s *Store) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, content) VALUES ($1, $2, $3)
		RETURNING id, created_at`, c.PostID, c.UserID, c.Content).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return domain.Comment{}, domain.ErrPostNotFound
		}
		return domain.Comment{}, storageErr("create comment", err)
	}
	return c, nil
}

func (s *Store) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, post_id, user_id, content, created_at
		FROM comments WHERE post_id = $1 ORDER BY created_at ASC, id ASC`, postID)
	if err != nil {
		return nil, storageErr("list comments", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, storageErr("scan comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list comments", err)
	}
	return comments, nil
}

func (s *Store) CreateResource(ctx context.Context, r domain.Resource) (domain.Resource, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO resources (title, course_code, download_url, uploaded_by) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		r.Title, r.CourseCode, r.DownloadURL, nullableID(r.UploadedBy)).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return domain.Resource{}, storageErr("create resource", err)
	}
	return r, nil
}

func (s *Store) ListResources(ctx context.Context) ([]domain.Resource, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, course_code, download_url, COALESCE(uploaded_by, 0), created_at
		FROM resources ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, storageErr("list resources", err)
	}
	defer rows.Close()

	resources := []domain.Resource{}
	for rows.Next() {
		var r domain.Resource
		if err := rows.Scan(&r.ID, &r.Title, &r.CourseCode, &r.DownloadURL, &r.UploadedBy, &r.CreatedAt); err != nil {
			return nil, storageErr("scan resource", err)
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list resources", err)
	}
	return resources, nil
}
