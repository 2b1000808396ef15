package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/validation"
)

// MessageRepository описывает зависимости MessageService.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error)
	ListConversation(ctx context.Context, userID, partnerID uuid.UUID) ([]models.Message, error)
	ListByItem(ctx context.Context, userID, itemID uuid.UUID) ([]models.Message, error)
	MarkAsRead(ctx context.Context, id, receiverID uuid.UUID) error
	MarkConversationRead(ctx context.Context, userID, partnerID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageUserLookup проверяет существование адресата.
type MessageUserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// MessageService реализует личные сообщения между пользователями.
type MessageService struct {
	repo     MessageRepository
	users    MessageUserLookup
	notifier *NotificationService
}

// NewMessageService создаёт сервис сообщений.
func NewMessageService(repo MessageRepository, users MessageUserLookup, notifier *NotificationService) *MessageService {
	return &MessageService{repo: repo, users: users, notifier: notifier}
}

// Send валидирует и отправляет сообщение. Самому себе писать нельзя,
// адресат должен существовать и не быть удалённым.
func (s *MessageService) Send(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if msg.SenderID == msg.ReceiverID {
		return nil, fmt.Errorf("message service: нельзя отправить сообщение самому себе")
	}
	if err := validation.ValidateMessageContent(msg.Content); err != nil {
		return nil, fmt.Errorf("message service: %w", err)
	}

	receiver, err := s.users.GetByID(ctx, msg.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("message service: адресат не найден")
	}
	if receiver.Role == models.RoleDeleted {
		return nil, fmt.Errorf("message service: адресат не найден")
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, msg.ReceiverID, EventMessageNew, msg)
	}

	return msg, nil
}

// ListConversations возвращает сводку диалогов пользователя.
func (s *MessageService) ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}

// ListConversation возвращает переписку с собеседником и помечает
// входящие от него прочитанными.
func (s *MessageService) ListConversation(ctx context.Context, userID, partnerID uuid.UUID) ([]models.Message, error) {
	messages, err := s.repo.ListConversation(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkConversationRead(ctx, userID, partnerID); err != nil {
		return nil, err
	}
	return messages, nil
}

// ListByItem возвращает сообщения пользователя по объявлению.
func (s *MessageService) ListByItem(ctx context.Context, userID, itemID uuid.UUID) ([]models.Message, error) {
	return s.repo.ListByItem(ctx, userID, itemID)
}

// MarkAsRead помечает входящее сообщение прочитанным.
func (s *MessageService) MarkAsRead(ctx context.Context, id, receiverID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, receiverID)
}

// CountUnread возвращает число непрочитанных входящих.
func (s *MessageService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// Delete удаляет сообщение. Разрешено отправителю и администратору.
func (s *MessageService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if msg.SenderID != actorID && !isAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
