package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/recyconnect/backend/internal/models"
)

var ErrDonatedItemNotFound = errors.New("donated item not found")

type DonatedItemRepository struct {
	db *sqlx.DB
}

func NewDonatedItemRepository(db *sqlx.DB) *DonatedItemRepository {
	return &DonatedItemRepository{db: db}
}

func (r *DonatedItemRepository) Create(ctx context.Context, item *models.DonatedItem) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO donated_items (donor_id, title, description, category, condition,
			estimated_value, pickup_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, item.DonorID, item.Title, item.Description, item.Category, item.Condition,
		item.EstimatedValue, item.PickupLocation).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *DonatedItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DonatedItem, error) {
	var item models.DonatedItem
	err := r.db.GetContext(ctx, &item, `
		SELECT d.*, u.name AS donor_name
		FROM donated_items d
		JOIN users u ON u.id = d.donor_id
		WHERE d.id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonatedItemNotFound
		}
		return nil, fmt.Errorf("get donated item: %w", err)
	}
	return &item, nil
}

func (r *DonatedItemRepository) List(ctx context.Context) ([]models.DonatedItem, error) {
	var items []models.DonatedItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT d.*, u.name AS donor_name
		FROM donated_items d
		JOIN users u ON u.id = d.donor_id
		WHERE u.role <> $1
		ORDER BY d.created_at DESC
	`, models.RoleDeleted)
	return items, err
}

func (r *DonatedItemRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.DonatedItem, error) {
	var items []models.DonatedItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT d.*, u.name AS donor_name
		FROM donated_items d
		JOIN users u ON u.id = d.donor_id
		WHERE d.donor_id = $1
		ORDER BY d.created_at DESC
	`, donorID)
	return items, err
}

func (r *DonatedItemRepository) Update(ctx context.Context, item *models.DonatedItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donated_items
		SET title = $1, description = $2, category = $3, condition = $4,
		    estimated_value = $5, pickup_location = $6
		WHERE id = $7
	`, item.Title, item.Description, item.Category, item.Condition,
		item.EstimatedValue, item.PickupLocation, item.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrDonatedItemNotFound)
}

// Claim проставляет бронь, только если вещь ещё свободна.
// Ноль затронутых строк означает гонку: кто-то успел раньше.
func (r *DonatedItemRepository) Claim(ctx context.Context, id, claimedBy uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donated_items SET claimed_by_id = $1
		WHERE id = $2 AND claimed_by_id IS NULL
	`, claimedBy, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Complete проставляет дату выдачи забронированной вещи.
func (r *DonatedItemRepository) Complete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donated_items SET claimed_date = NOW()
		WHERE id = $1 AND claimed_by_id IS NOT NULL AND claimed_date IS NULL
	`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Revert снимает бронь и дату выдачи, возвращая вещь в available.
func (r *DonatedItemRepository) Revert(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donated_items SET claimed_by_id = NULL, claimed_date = NULL
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrDonatedItemNotFound)
}

func (r *DonatedItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM donated_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrDonatedItemNotFound)
}

func (r *DonatedItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM donated_items`)
	return count, err
}
