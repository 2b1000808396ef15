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

var ErrConcernNotFound = errors.New("concern not found")

// ConcernFilter — фильтры очереди обращений для модерации.
type ConcernFilter struct {
	Status  string
	Urgency string
}

type ConcernRepository struct {
	db *sqlx.DB
}

func NewConcernRepository(db *sqlx.DB) *ConcernRepository {
	return &ConcernRepository{db: db}
}

func (r *ConcernRepository) Create(ctx context.Context, concern *models.UserConcern) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO user_concerns (reporter_id, concern_type, user_in_question,
			item_involved, description, urgency, contact_method, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, concern.ReporterID, concern.ConcernType, concern.UserInQuestion,
		concern.ItemInvolved, concern.Description, concern.Urgency,
		concern.ContactMethod, concern.Status).
		Scan(&concern.ID, &concern.CreatedAt)
}

func (r *ConcernRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserConcern, error) {
	return common.GetByID[models.UserConcern](ctx, r.db, "user_concerns", id, ErrConcernNotFound)
}

// List возвращает очередь обращений, срочные выше.
func (r *ConcernRepository) List(ctx context.Context, filter ConcernFilter) ([]models.UserConcern, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Urgency != "" {
		args = append(args, filter.Urgency)
		conditions = append(conditions, fmt.Sprintf("urgency = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT * FROM user_concerns
		WHERE %s
		ORDER BY CASE urgency WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC,
		         created_at DESC
	`, strings.Join(conditions, " AND "))

	var concerns []models.UserConcern
	err := r.db.SelectContext(ctx, &concerns, query, args...)
	return concerns, err
}

func (r *ConcernRepository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.UserConcern, error) {
	var concerns []models.UserConcern
	err := r.db.SelectContext(ctx, &concerns, `
		SELECT * FROM user_concerns WHERE reporter_id = $1 ORDER BY created_at DESC
	`, reporterID)
	return concerns, err
}

// UpdateStatus записывает новый статус вместе с ответом администратора.
// resolved_date проставляется только при закрытии обращения.
func (r *ConcernRepository) UpdateStatus(ctx context.Context, concern *models.UserConcern) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_concerns
		SET status = $1, admin_response = $2, assigned_to = $3,
		    resolved_date = $4, updated_at = NOW()
		WHERE id = $5
	`, concern.Status, concern.AdminResponse, concern.AssignedTo,
		concern.ResolvedDate, concern.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrConcernNotFound)
}

func (r *ConcernRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_concerns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrConcernNotFound)
}

func (r *ConcernRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_concerns WHERE status = $1`, status)
	return count, err
}
