package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository/common"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO messages (sender_id, receiver_id, item_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at
	`, msg.SenderID, msg.ReceiverID, msg.ItemID, msg.Content).
		Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	return common.GetByID[models.Message](ctx, r.db, "messages", id, ErrMessageNotFound)
}

// ListConversations возвращает сводку диалогов пользователя:
// по одному последнему сообщению на собеседника плюс счётчик непрочитанных.
func (r *MessageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.SelectContext(ctx, &conversations, `
		SELECT t.partner_id,
		       u.name AS partner_name,
		       t.last_message,
		       t.last_message_at,
		       COALESCE(un.unread_count, 0) AS unread_count
		FROM (
			SELECT DISTINCT ON (partner_id)
			       CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END AS partner_id,
			       m.content AS last_message,
			       m.created_at AS last_message_at
			FROM messages m
			WHERE m.sender_id = $1 OR m.receiver_id = $1
			ORDER BY partner_id, m.created_at DESC
		) t
		JOIN users u ON u.id = t.partner_id
		LEFT JOIN (
			SELECT sender_id, COUNT(*) AS unread_count
			FROM messages
			WHERE receiver_id = $1 AND is_read = FALSE
			GROUP BY sender_id
		) un ON un.sender_id = t.partner_id
		ORDER BY t.last_message_at DESC
	`, userID)
	return conversations, err
}

// ListConversation возвращает переписку двух пользователей в хронологическом порядке.
func (r *MessageRepository) ListConversation(ctx context.Context, userID, partnerID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at
	`, userID, partnerID)
	return messages, err
}

// ListByItem возвращает сообщения пользователя, связанные с объявлением.
func (r *MessageRepository) ListByItem(ctx context.Context, userID, itemID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM messages
		WHERE item_id = $1 AND (sender_id = $2 OR receiver_id = $2)
		ORDER BY created_at
	`, itemID, userID)
	return messages, err
}

// MarkAsRead помечает сообщение прочитанным. Только получатель
// может пометить своё входящее.
func (r *MessageRepository) MarkAsRead(ctx context.Context, id, receiverID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE WHERE id = $1 AND receiver_id = $2
	`, id, receiverID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrMessageNotFound)
}

// MarkConversationRead помечает прочитанными все входящие от собеседника.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE receiver_id = $1 AND sender_id = $2 AND is_read = FALSE
	`, userID, partnerID)
	return err
}

// CountUnread возвращает общее число непрочитанных входящих.
func (r *MessageRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE
	`, userID)
	return count, err
}

func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrMessageNotFound)
}
