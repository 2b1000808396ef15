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

var ErrReportedItemNotFound = errors.New("reported item not found")

// ReportedItemFilter — фильтры списка потерянных/найденных вещей.
type ReportedItemFilter struct {
	ItemType string
	Status   string
}

type ReportedItemRepository struct {
	db *sqlx.DB
}

func NewReportedItemRepository(db *sqlx.DB) *ReportedItemRepository {
	return &ReportedItemRepository{db: db}
}

func (r *ReportedItemRepository) Create(ctx context.Context, item *models.ReportedItem) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO reported_items (reporter_id, item_type, title, description, category,
			color, brand, location_lost, date_lost, time_lost,
			location_found, date_found, time_found, current_location,
			contact_info, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`, item.ReporterID, item.ItemType, item.Title, item.Description, item.Category,
		item.Color, item.Brand, item.LocationLost, item.DateLost, item.TimeLost,
		item.LocationFound, item.DateFound, item.TimeFound, item.CurrentLocation,
		item.ContactInfo, item.Status).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *ReportedItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportedItem, error) {
	return common.GetByID[models.ReportedItem](ctx, r.db, "reported_items", id, ErrReportedItemNotFound)
}

func (r *ReportedItemRepository) List(ctx context.Context, filter ReportedItemFilter) ([]models.ReportedItem, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.ItemType != "" {
		args = append(args, filter.ItemType)
		conditions = append(conditions, fmt.Sprintf("item_type = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT * FROM reported_items
		WHERE %s
		ORDER BY created_at DESC
	`, strings.Join(conditions, " AND "))

	var items []models.ReportedItem
	err := r.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *ReportedItemRepository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.ReportedItem, error) {
	var items []models.ReportedItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM reported_items WHERE reporter_id = $1 ORDER BY created_at DESC
	`, reporterID)
	return items, err
}

func (r *ReportedItemRepository) Update(ctx context.Context, item *models.ReportedItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reported_items
		SET title = $1, description = $2, category = $3, color = $4, brand = $5,
		    location_lost = $6, date_lost = $7, time_lost = $8,
		    location_found = $9, date_found = $10, time_found = $11,
		    current_location = $12, contact_info = $13, updated_at = NOW()
		WHERE id = $14
	`, item.Title, item.Description, item.Category, item.Color, item.Brand,
		item.LocationLost, item.DateLost, item.TimeLost,
		item.LocationFound, item.DateFound, item.TimeFound,
		item.CurrentLocation, item.ContactInfo, item.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrReportedItemNotFound)
}

// UpdateStatus меняет статус записи. Допустимость перехода проверяет сервис.
func (r *ReportedItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reported_items SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrReportedItemNotFound)
}

func (r *ReportedItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reported_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrReportedItemNotFound)
}

func (r *ReportedItemRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reported_items WHERE status = $1`, status)
	return count, err
}
