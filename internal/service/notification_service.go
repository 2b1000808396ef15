package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/goroutine"
	"github.com/recyconnect/backend/internal/logger"
	"github.com/recyconnect/backend/internal/models"
)

// Типы событий, рассылаемых пользователям.
const (
	EventMessageNew        = "message:new"
	EventDonationClaimed   = "donation:claimed"
	EventDonationCompleted = "donation:completed"
	EventDonationReverted  = "donation:reverted"
	EventConcernUpdated    = "concern:updated"
	EventReportedStatus    = "reported:status"
	EventAccountUpdated    = "account:updated"
)

// Pusher доставляет событие подключённому пользователю в реальном времени.
type Pusher interface {
	Push(userID uuid.UUID, payload []byte)
}

// NotificationRepository описывает хранилище уведомлений.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// NotificationService сохраняет уведомления и пушит их онлайн-пользователям.
type NotificationService struct {
	repo   NotificationRepository
	pusher Pusher
}

// NewNotificationService создаёт сервис уведомлений.
// pusher может быть nil, тогда доставка только офлайн.
func NewNotificationService(repo NotificationRepository, pusher Pusher) *NotificationService {
	return &NotificationService{repo: repo, pusher: pusher}
}

// envelope — формат полезной нагрузки уведомления.
type envelope struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Notify сохраняет уведомление и асинхронно пушит его адресату.
// Ошибки доставки не прерывают вызвавшую операцию.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, event string, data interface{}) {
	payload, err := json.Marshal(envelope{
		Event:     event,
		Data:      data,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.Log.Errorf("notification service: не удалось сериализовать событие %s: %v", event, err)
		return
	}

	n := &models.Notification{UserID: userID, Payload: payload}
	if err := s.repo.Create(ctx, n); err != nil {
		logger.Log.Errorf("notification service: не удалось сохранить уведомление %s: %v", event, err)
	}

	if s.pusher != nil {
		goroutine.SafeGo(func() {
			s.pusher.Push(userID, payload)
		})
	}
}

// List возвращает ленту уведомлений пользователя.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	return s.repo.List(ctx, userID, limit, offset)
}

// MarkAsRead помечает уведомление прочитанным.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

// MarkAllAsRead помечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// CountUnread возвращает число непрочитанных уведомлений.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
