package api

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
)

// ErrTransitionNotAllowed возвращается до сетевого вызова, когда
// запрошенный переход статуса запрещён таблицей переходов.
var ErrTransitionNotAllowed = errors.New("api: переход статуса не разрешён")

// ReportedItemRequest — тело записи бюро находок. Поля группы,
// не соответствующей itemType, сервер обнуляет сам.
type ReportedItemRequest struct {
	ItemType    string  `json:"itemType"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Color       *string `json:"color,omitempty"`
	Brand       *string `json:"brand,omitempty"`

	LocationLost *string `json:"locationLost,omitempty"`
	DateLost     *string `json:"dateLost,omitempty"`
	TimeLost     *string `json:"timeLost,omitempty"`

	LocationFound   *string `json:"locationFound,omitempty"`
	DateFound       *string `json:"dateFound,omitempty"`
	TimeFound       *string `json:"timeFound,omitempty"`
	CurrentLocation *string `json:"currentLocation,omitempty"`

	ContactInfo string `json:"contactInfo"`
}

// ListReported возвращает записи бюро находок с фильтрами.
func (c *Client) ListReported(ctx context.Context, itemType, status string) ([]models.ReportedItem, error) {
	q := url.Values{}
	setQuery(q, "type", itemType)
	setQuery(q, "status", status)

	var out []models.ReportedItem
	if err := c.get(ctx, "/reported", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyReported возвращает записи текущего пользователя.
func (c *Client) MyReported(ctx context.Context) ([]models.ReportedItem, error) {
	var out []models.ReportedItem
	if err := c.get(ctx, "/reported/my-reported", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReported возвращает одну запись.
func (c *Client) GetReported(ctx context.Context, id uuid.UUID) (*models.ReportedItem, error) {
	var out models.ReportedItem
	if err := c.get(ctx, "/reported/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReported публикует запись о потерянной или найденной вещи.
func (c *Client) CreateReported(ctx context.Context, req ReportedItemRequest) (*models.ReportedItem, error) {
	var out models.ReportedItem
	if err := c.post(ctx, "/reported", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReported обновляет содержимое записи.
func (c *Client) UpdateReported(ctx context.Context, id uuid.UUID, req ReportedItemRequest) (*models.ReportedItem, error) {
	var out models.ReportedItem
	if err := c.put(ctx, "/reported/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReportedStatus меняет статус записи. Недопустимый переход
// отклоняется локально, вызов на сервер не уходит.
func (c *Client) UpdateReportedStatus(ctx context.Context, id uuid.UUID, current, next string) (*models.ReportedItem, error) {
	if !models.CanTransitionReported(current, next) {
		return nil, ErrTransitionNotAllowed
	}

	var out models.ReportedItem
	body := map[string]string{"status": next}
	if err := c.patch(ctx, "/reported/"+id.String(), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReported удаляет запись.
func (c *Client) DeleteReported(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/reported/"+id.String(), nil)
}
