package api

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/dto"
)

// DonatedItemRequest — тело создания и обновления пожертвования.
type DonatedItemRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Condition      string   `json:"condition"`
	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	PickupLocation string   `json:"pickupLocation"`
}

// ListDonatedItems возвращает пожертвования, опционально по статусу
// жизненного цикла: available, claimed или completed.
func (c *Client) ListDonatedItems(ctx context.Context, status string) ([]*dto.DonatedItemResponse, error) {
	q := url.Values{}
	setQuery(q, "status", status)

	var out []*dto.DonatedItemResponse
	if err := c.get(ctx, "/donated-items", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyDonatedItems возвращает пожертвования текущего пользователя.
func (c *Client) MyDonatedItems(ctx context.Context) ([]*dto.DonatedItemResponse, error) {
	var out []*dto.DonatedItemResponse
	if err := c.get(ctx, "/donated-items/user", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDonatedItem возвращает одно пожертвование.
func (c *Client) GetDonatedItem(ctx context.Context, id uuid.UUID) (*dto.DonatedItemResponse, error) {
	var out dto.DonatedItemResponse
	if err := c.get(ctx, "/donated-items/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDonatedItem публикует пожертвование.
func (c *Client) CreateDonatedItem(ctx context.Context, req DonatedItemRequest) (*dto.DonatedItemResponse, error) {
	var out dto.DonatedItemResponse
	if err := c.post(ctx, "/donated-items", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDonatedItem обновляет пожертвование. Разрешено только пока
// вещь не забронирована.
func (c *Client) UpdateDonatedItem(ctx context.Context, id uuid.UUID, req DonatedItemRequest) (*dto.DonatedItemResponse, error) {
	var out dto.DonatedItemResponse
	if err := c.put(ctx, "/donated-items/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimDonatedItem бронирует вещь за текущим пользователем.
func (c *Client) ClaimDonatedItem(ctx context.Context, id uuid.UUID) (*dto.DonatedItemResponse, error) {
	var out dto.DonatedItemResponse
	if err := c.patch(ctx, "/donated-items/"+id.String()+"/claim", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteDonatedItem фиксирует передачу вещи.
func (c *Client) CompleteDonatedItem(ctx context.Context, id uuid.UUID) (*dto.DonatedItemResponse, error) {
	var out dto.DonatedItemResponse
	if err := c.patch(ctx, "/donated-items/"+id.String()+"/complete", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevertDonatedItem возвращает вещь в состояние available. Только администратор.
func (c *Client) RevertDonatedItem(ctx context.Context, id uuid.UUID) (*dto.DonatedItemResponse, error) {
	var out dto.DonatedItemResponse
	if err := c.patch(ctx, "/donated-items/"+id.String()+"/revert", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDonatedItem удаляет пожертвование.
func (c *Client) DeleteDonatedItem(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/donated-items/"+id.String(), nil)
}
