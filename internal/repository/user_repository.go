package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository/common"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, role, status, name, phone, college_id, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, user.Email, user.PasswordHash, user.Role, user.Status, user.Name, user.Phone, user.CollegeID, user.Bio).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByID[models.User](ctx, r.db, "users", id, ErrUserNotFound)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return common.GetByField[models.User](ctx, r.db, "users", "email", strings.ToLower(email), ErrUserNotFound)
}

// List возвращает всех пользователей, кроме мягко удалённых.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM users WHERE role <> $1 ORDER BY created_at DESC
	`, models.RoleDeleted)
	return users, err
}

// UpdateProfile обновляет редактируемые пользователем поля.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = $1, phone = $2, bio = $3, updated_at = NOW()
		WHERE id = $4 AND role <> $5
	`, user.Name, user.Phone, user.Bio, user.ID, models.RoleDeleted)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrUserNotFound)
}

// UpdateStatus переключает статус аккаунта (active/suspended/pending).
func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2 AND role <> $3
	`, status, id, models.RoleDeleted)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrUserNotFound)
}

// UpdateRole переключает роль USER/ADMINISTRATOR.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2 AND role <> $3
	`, role, id, models.RoleDeleted)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrUserNotFound)
}

// UpdatePassword заменяет хэш пароля.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrUserNotFound)
}

// SoftDelete помечает пользователя удалённым и снимает все его сессии.
// Email освобождается добавлением суффикса, чтобы не блокировать
// повторную регистрацию с того же адреса.
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE users
			SET role = $1,
			    email = email || '.deleted.' || $2,
			    updated_at = NOW()
			WHERE id = $3 AND role <> $1
		`, models.RoleDeleted, fmt.Sprintf("%d", time.Now().Unix()), id)
		if err != nil {
			return err
		}
		if err := requireAffected(res, ErrUserNotFound); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, id)
		return err
	})
}

// CreateSession сохраняет сессию с refresh токеном.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO sessions (user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, session.UserID, session.RefreshToken, session.UserAgent, session.IPAddress, session.ExpiresAt).
		Scan(&session.ID, &session.CreatedAt)
}

// DeleteSession удаляет сессию по refresh токену.
func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE refresh_token = $1`, refreshToken)
	return err
}

// DeleteAllSessions удаляет все сессии пользователя.
func (r *UserRepository) DeleteAllSessions(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

// CountByRole возвращает количество пользователей с заданной ролью.
func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, role)
	return count, err
}

// requireAffected возвращает notFound, если UPDATE/DELETE не затронул строк.
func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
