package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository/common"
)

var ErrFlagNotFound = errors.New("flag not found")

// FlagFilter — фильтры списка флагов модерации.
type FlagFilter struct {
	Status     string
	TargetType string
}

type FlagRepository struct {
	db *sqlx.DB
}

func NewFlagRepository(db *sqlx.DB) *FlagRepository {
	return &FlagRepository{db: db}
}

func (r *FlagRepository) Create(ctx context.Context, flag *models.Flag) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO flags (flagged_by_id, target_type, target_id, reason,
			description, severity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, flag.FlaggedByID, flag.TargetType, flag.TargetID, flag.Reason,
		flag.Description, flag.Severity, flag.Status).
		Scan(&flag.ID, &flag.CreatedAt)
}

func (r *FlagRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Flag, error) {
	return common.GetByID[models.Flag](ctx, r.db, "flags", id, ErrFlagNotFound)
}

func (r *FlagRepository) List(ctx context.Context, filter FlagFilter) ([]models.Flag, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.TargetType != "" {
		args = append(args, filter.TargetType)
		conditions = append(conditions, fmt.Sprintf("target_type = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT * FROM flags WHERE %s ORDER BY created_at DESC
	`, strings.Join(conditions, " AND "))

	var flags []models.Flag
	err := r.db.SelectContext(ctx, &flags, query, args...)
	return flags, err
}

func (r *FlagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Flag, error) {
	var flags []models.Flag
	err := r.db.SelectContext(ctx, &flags, `
		SELECT * FROM flags WHERE flagged_by_id = $1 ORDER BY created_at DESC
	`, userID)
	return flags, err
}

func (r *FlagRepository) ListByTarget(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Flag, error) {
	var flags []models.Flag
	err := r.db.SelectContext(ctx, &flags, `
		SELECT * FROM flags
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at DESC
	`, targetType, targetID)
	return flags, err
}

// CountByTarget возвращает число флагов на конкретную цель.
func (r *FlagRepository) CountByTarget(ctx context.Context, targetType string, targetID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM flags WHERE target_type = $1 AND target_id = $2
	`, targetType, targetID)
	return count, err
}

// HasActiveFlag сообщает, жаловался ли пользователь на эту цель ранее.
// Дубликаты жалоб от одного пользователя не принимаются.
func (r *FlagRepository) HasActiveFlag(ctx context.Context, userID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM flags
		WHERE flagged_by_id = $1 AND target_type = $2 AND target_id = $3
		  AND status IN ($4, $5)
	`, userID, targetType, targetID, models.FlagStatusPending, models.FlagStatusReviewed)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus меняет статус флага и заметки администратора.
func (r *FlagRepository) UpdateStatus(ctx context.Context, flag *models.Flag) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE flags SET status = $1, admin_notes = $2, resolved_at = $3
		WHERE id = $4
	`, flag.Status, flag.AdminNotes, flag.ResolvedAt, flag.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrFlagNotFound)
}

func (r *FlagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrFlagNotFound)
}

func (r *FlagRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM flags WHERE status = $1`, status)
	return count, err
}
