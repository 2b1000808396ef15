package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/recyconnect/backend/internal/models"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrItemImageNotFound = errors.New("item image not found")
)

// ItemFilter — параметры фильтрации каталога объявлений.
type ItemFilter struct {
	Category  string
	Condition string
	Verified  *bool
	Limit     int
	Offset    int
}

type ItemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO items (owner_id, title, description, category, condition,
			usage_time, usage_time_unit, warranty, original_price, asking_price,
			quantity, pickup_location, delivery, color, material)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, verified, created_at
	`, item.OwnerID, item.Title, item.Description, item.Category, item.Condition,
		item.UsageTime, item.UsageTimeUnit, item.Warranty, item.OriginalPrice, item.AskingPrice,
		item.Quantity, item.PickupLocation, item.Delivery, item.Color, item.Material).
		Scan(&item.ID, &item.Verified, &item.CreatedAt)
}

// GetByID возвращает объявление вместе с именем продавца.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.GetContext(ctx, &item, `
		SELECT i.*, u.name AS seller_name
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE i.id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// List возвращает каталог с фильтрами. Объявления мягко удалённых
// продавцов не показываются.
func (r *ItemRepository) List(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	conditions := []string{"u.role <> $1"}
	args := []interface{}{models.RoleDeleted}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("i.category = $%d", len(args)))
	}
	if filter.Condition != "" {
		args = append(args, filter.Condition)
		conditions = append(conditions, fmt.Sprintf("i.condition = $%d", len(args)))
	}
	if filter.Verified != nil {
		args = append(args, *filter.Verified)
		conditions = append(conditions, fmt.Sprintf("i.verified = $%d", len(args)))
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT i.*, u.name AS seller_name
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE %s
		ORDER BY i.created_at DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), limitPos, offsetPos)

	var items []models.Item
	err := r.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

// ListByOwner возвращает объявления конкретного продавца.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	err := r.db.SelectContext(ctx, &items, `
		SELECT i.*, u.name AS seller_name
		FROM items i
		JOIN users u ON u.id = i.owner_id
		WHERE i.owner_id = $1
		ORDER BY i.created_at DESC
	`, ownerID)
	return items, err
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items
		SET title = $1, description = $2, category = $3, condition = $4,
		    usage_time = $5, usage_time_unit = $6, warranty = $7,
		    original_price = $8, asking_price = $9, quantity = $10,
		    pickup_location = $11, delivery = $12, color = $13, material = $14,
		    updated_at = NOW()
		WHERE id = $15
	`, item.Title, item.Description, item.Category, item.Condition,
		item.UsageTime, item.UsageTimeUnit, item.Warranty,
		item.OriginalPrice, item.AskingPrice, item.Quantity,
		item.PickupLocation, item.Delivery, item.Color, item.Material, item.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrItemNotFound)
}

// SetVerified помечает объявление проверенным модератором.
func (r *ItemRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET verified = $1, updated_at = NOW() WHERE id = $2
	`, verified, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrItemNotFound)
}

func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrItemNotFound)
}

func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM items`)
	return count, err
}

// AddImage сохраняет метаданные загруженного изображения.
func (r *ItemRepository) AddImage(ctx context.Context, img *models.ItemImage) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO item_images (item_id, file_name, file_path, file_size, file_type, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, img.ItemID, img.FileName, img.FilePath, img.FileSize, img.FileType, img.IsPrimary).
		Scan(&img.ID, &img.CreatedAt)
}

func (r *ItemRepository) GetImage(ctx context.Context, id uuid.UUID) (*models.ItemImage, error) {
	var img models.ItemImage
	err := r.db.GetContext(ctx, &img, `SELECT * FROM item_images WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemImageNotFound
		}
		return nil, fmt.Errorf("get item image: %w", err)
	}
	return &img, nil
}

func (r *ItemRepository) ListImages(ctx context.Context, itemID uuid.UUID) ([]models.ItemImage, error) {
	var images []models.ItemImage
	err := r.db.SelectContext(ctx, &images, `
		SELECT * FROM item_images
		WHERE item_id = $1
		ORDER BY is_primary DESC, created_at
	`, itemID)
	return images, err
}

func (r *ItemRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM item_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrItemImageNotFound)
}
