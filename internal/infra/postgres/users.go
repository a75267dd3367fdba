package postgres

import (
	"context"

	"student-link/internal/domain"

	"github.com/jackc/pgx/v4"
)

const userColumns = `id, fullname, whatsapp, university, department, level, bio, profile_pic, password_hash, role, is_verified, created_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.FullName, &u.WhatsApp, &u.University, &u.Department, &u.Level,
		&u.Bio, &u.ProfilePic, &u.PasswordHash, &role, &u.Verified, &u.CreatedAt)
	u.Role = domain.Role(role)
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (fullname, whatsapp, university, department, level, bio, profile_pic, password_hash, role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+userColumns,
		user.FullName, user.WhatsApp, user.University, user.Department, user.Level,
		user.Bio, user.ProfilePic, user.PasswordHash, string(user.Role), user.Verified)
	created, err := scanUser(row)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return domain.User{}, domain.ErrDuplicateAccount
		}
		return domain.User{}, storageErr("create user", err)
	}
	return created, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return domain.User{}, notFound("get user", err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (s *Store) FindUserByWhatsApp(ctx context.Context, whatsapp string) (domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE whatsapp = $1`, whatsapp))
	if err != nil {
		return domain.User{}, notFound("find user", err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (domain.User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET fullname = $2, whatsapp = $3, university = $4, department = $5, level = $6, bio = $7, profile_pic = $8
		WHERE id = $1
		RETURNING `+userColumns,
		id, update.FullName, update.WhatsApp, update.University, update.Department,
		update.Level, update.Bio, update.ProfilePic)
	u, err := scanUser(row)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return domain.User{}, domain.ErrDuplicateAccount
		}
		return domain.User{}, notFound("update profile", err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (s *Store) SetRole(ctx context.Context, id int64, role domain.Role) error {
	return s.execOne(ctx, "set role", domain.ErrUserNotFound,
		`UPDATE users SET role = $2 WHERE id = $1`, id, string(role))
}

func (s *Store) ToggleVerified(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET is_verified = NOT is_verified WHERE id = $1 RETURNING `+userColumns, id))
	if err != nil {
		return domain.User{}, notFound("toggle verified", err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY is_verified ASC, fullname ASC, id ASC`)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageErr("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

func (s *Store) DiscoverUsers(ctx context.Context, excludeID int64, limit int) ([]domain.UserSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, fullname, university, department, is_verified
		FROM users WHERE id <> $1 ORDER BY id ASC LIMIT $2`, excludeID, limit)
	if err != nil {
		return nil, storageErr("discover users", err)
	}
	return collectSummaries(rows)
}

func collectSummaries(rows pgx.Rows) ([]domain.UserSummary, error) {
	defer rows.Close()
	out := []domain.UserSummary{}
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.FullName, &u.University, &u.Department, &u.Verified); err != nil {
			return nil, storageErr("scan user summary", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list user summaries", err)
	}
	return out, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	return s.count(ctx, "count users", `SELECT COUNT(*) FROM users`)
}

func (s *Store) TopUniversity(ctx context.Context) (string, error) {
	var uni string
	err := s.pool.QueryRow(ctx, `
		SELECT university FROM users
		GROUP BY university ORDER BY COUNT(*) DESC, university ASC LIMIT 1`).Scan(&uni)
	if err != nil {
		return "", notFound("top university", err, nil)
	}
	return uni, nil
}
