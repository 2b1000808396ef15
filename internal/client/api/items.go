package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
)

// ItemsQuery — параметры листинга объявлений. Пустые поля не попадают
// в строку запроса.
type ItemsQuery struct {
	Category  string
	Condition string
	Verified  *bool
	Limit     int
	Offset    int
}

func (q ItemsQuery) values() url.Values {
	v := url.Values{}
	setQuery(v, "category", q.Category)
	setQuery(v, "condition", q.Condition)
	if q.Verified != nil {
		v.Set("verified", strconv.FormatBool(*q.Verified))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// ItemRequest — тело создания и обновления объявления.
type ItemRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Condition      string   `json:"condition"`
	UsageTime      *int     `json:"usageTime,omitempty"`
	UsageTimeUnit  *string  `json:"usageTimeUnit,omitempty"`
	Warranty       *string  `json:"warranty,omitempty"`
	OriginalPrice  *float64 `json:"originalPrice,omitempty"`
	AskingPrice    *float64 `json:"askingPrice,omitempty"`
	Quantity       *int     `json:"quantity,omitempty"`
	PickupLocation string   `json:"pickupLocation"`
	Delivery       *string  `json:"delivery,omitempty"`
	Color          *string  `json:"color,omitempty"`
	Material       *string  `json:"material,omitempty"`
}

// ListItems возвращает объявления с фильтрами.
func (c *Client) ListItems(ctx context.Context, q ItemsQuery) ([]models.Item, error) {
	var out []models.Item
	if err := c.get(ctx, "/items", q.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetItem возвращает одно объявление.
func (c *Client) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var out models.Item
	if err := c.get(ctx, "/items/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListItemsByUser возвращает объявления конкретного продавца.
func (c *Client) ListItemsByUser(ctx context.Context, userID uuid.UUID) ([]models.Item, error) {
	var out []models.Item
	if err := c.get(ctx, "/items/user/"+userID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateItem публикует объявление.
func (c *Client) CreateItem(ctx context.Context, req ItemRequest) (*models.Item, error) {
	var out models.Item
	if err := c.post(ctx, "/items", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem обновляет объявление целиком.
func (c *Client) UpdateItem(ctx context.Context, id uuid.UUID, req ItemRequest) (*models.Item, error) {
	var out models.Item
	if err := c.put(ctx, "/items/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyItem помечает объявление проверенным. Только администратор.
func (c *Client) VerifyItem(ctx context.Context, id uuid.UUID, verified bool) error {
	body := map[string]bool{"verified": verified}
	return c.patch(ctx, "/items/"+id.String()+"/verify", body, nil)
}

// DeleteItem удаляет объявление.
func (c *Client) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/items/"+id.String(), nil)
}
