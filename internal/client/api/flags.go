package api

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/dto"
	"github.com/recyconnect/backend/internal/models"
)

// FlagRequest — тело жалобы на объект площадки.
type FlagRequest struct {
	TargetType  string    `json:"targetType"`
	TargetID    uuid.UUID `json:"targetId"`
	Reason      string    `json:"reason"`
	Description *string   `json:"description,omitempty"`
	Severity    *string   `json:"severity,omitempty"`
}

// FlagStatusRequest — тело решения по жалобе.
type FlagStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// CreateFlag отправляет жалобу.
func (c *Client) CreateFlag(ctx context.Context, req FlagRequest) (*models.Flag, error) {
	var out models.Flag
	if err := c.post(ctx, "/flags", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFlags возвращает все жалобы. Только администратор.
func (c *Client) ListFlags(ctx context.Context, status, targetType string) ([]models.Flag, error) {
	q := url.Values{}
	setQuery(q, "status", status)
	setQuery(q, "targetType", targetType)

	var out []models.Flag
	if err := c.get(ctx, "/flags", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFlagsByUser возвращает жалобы, поданные пользователем.
func (c *Client) ListFlagsByUser(ctx context.Context, userID uuid.UUID) ([]models.Flag, error) {
	var out []models.Flag
	if err := c.get(ctx, "/flags/user/"+userID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFlagsByTarget возвращает жалобы на объект. Только администратор.
func (c *Client) ListFlagsByTarget(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Flag, error) {
	var out []models.Flag
	if err := c.get(ctx, "/flags/target/"+targetType+"/"+targetID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountFlags возвращает количество жалоб на объект.
func (c *Client) CountFlags(ctx context.Context, targetType string, targetID uuid.UUID) (int, error) {
	var out dto.FlagCountResponse
	if err := c.get(ctx, "/flags/count/"+targetType+"/"+targetID.String(), nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// UpdateFlagStatus фиксирует решение по жалобе. Только администратор.
func (c *Client) UpdateFlagStatus(ctx context.Context, id uuid.UUID, req FlagStatusRequest) (*models.Flag, error) {
	var out models.Flag
	if err := c.patch(ctx, "/flags/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFlag удаляет жалобу.
func (c *Client) DeleteFlag(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/flags/"+id.String(), nil)
}
