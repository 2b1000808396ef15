package api

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
)

// ConcernRequest — тело обращения к модерации.
type ConcernRequest struct {
	ConcernType    string  `json:"concernType"`
	UserInQuestion *string `json:"userInQuestion,omitempty"`
	ItemInvolved   *string `json:"itemInvolved,omitempty"`
	Description    string  `json:"description"`
	Urgency        string  `json:"urgency,omitempty"`
	ContactMethod  *string `json:"contactMethod,omitempty"`
}

// ConcernStatusRequest — тело смены статуса обращения.
type ConcernStatusRequest struct {
	Status        string     `json:"status"`
	AdminResponse *string    `json:"adminResponse,omitempty"`
	AssignedTo    *uuid.UUID `json:"assignedTo,omitempty"`
}

// CreateConcern отправляет обращение.
func (c *Client) CreateConcern(ctx context.Context, req ConcernRequest) (*models.UserConcern, error) {
	var out models.UserConcern
	if err := c.post(ctx, "/concerns", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyConcerns возвращает обращения текущего пользователя.
func (c *Client) MyConcerns(ctx context.Context) ([]models.UserConcern, error) {
	var out []models.UserConcern
	if err := c.get(ctx, "/concerns/my-concerns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListConcerns возвращает все обращения. Только администратор.
func (c *Client) ListConcerns(ctx context.Context, status, urgency string) ([]models.UserConcern, error) {
	q := url.Values{}
	setQuery(q, "status", status)
	setQuery(q, "urgency", urgency)

	var out []models.UserConcern
	if err := c.get(ctx, "/concerns", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetConcern возвращает одно обращение.
func (c *Client) GetConcern(ctx context.Context, id uuid.UUID) (*models.UserConcern, error) {
	var out models.UserConcern
	if err := c.get(ctx, "/concerns/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateConcernStatus меняет статус обращения. Только администратор.
// Недопустимый переход отклоняется локально.
func (c *Client) UpdateConcernStatus(ctx context.Context, id uuid.UUID, current string, req ConcernStatusRequest) (*models.UserConcern, error) {
	if !models.CanTransitionConcern(current, req.Status) {
		return nil, ErrTransitionNotAllowed
	}

	var out models.UserConcern
	if err := c.patch(ctx, "/concerns/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteConcern удаляет обращение.
func (c *Client) DeleteConcern(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/concerns/"+id.String(), nil)
}
