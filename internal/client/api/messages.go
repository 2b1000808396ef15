package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/dto"
	"github.com/recyconnect/backend/internal/models"
)

// MessageRequest — тело отправки сообщения.
type MessageRequest struct {
	ReceiverID uuid.UUID  `json:"receiverId"`
	ItemID     *uuid.UUID `json:"itemId,omitempty"`
	Content    string     `json:"content"`
}

// SendMessage отправляет личное сообщение.
func (c *Client) SendMessage(ctx context.Context, req MessageRequest) (*models.Message, error) {
	var out models.Message
	if err := c.post(ctx, "/messages", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Conversations возвращает сводку диалогов текущего пользователя.
func (c *Client) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var out []models.Conversation
	if err := c.get(ctx, "/messages/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Conversation возвращает переписку с конкретным собеседником.
func (c *Client) Conversation(ctx context.Context, partnerID uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	if err := c.get(ctx, "/messages/conversation/"+partnerID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MessagesByItem возвращает сообщения, привязанные к объявлению.
func (c *Client) MessagesByItem(ctx context.Context, itemID uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	if err := c.get(ctx, "/messages/item/"+itemID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkMessageRead помечает сообщение прочитанным.
func (c *Client) MarkMessageRead(ctx context.Context, id uuid.UUID) error {
	return c.patch(ctx, "/messages/"+id.String()+"/read", nil, nil)
}

// UnreadCount возвращает число непрочитанных сообщений.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out dto.UnreadCountResponse
	if err := c.get(ctx, "/messages/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// DeleteMessage удаляет сообщение.
func (c *Client) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/messages/"+id.String(), nil)
}
