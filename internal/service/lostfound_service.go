package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/validation"
)

// ErrInvalidTransition возвращается при недопустимом переходе статуса.
var ErrInvalidTransition = fmt.Errorf("переход статуса недопустим")

// ReportedItemRepository описывает зависимости LostFoundService.
type ReportedItemRepository interface {
	Create(ctx context.Context, item *models.ReportedItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReportedItem, error)
	List(ctx context.Context, filter repository.ReportedItemFilter) ([]models.ReportedItem, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.ReportedItem, error)
	Update(ctx context.Context, item *models.ReportedItem) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LostFoundService реализует учёт потерянных и найденных вещей.
type LostFoundService struct {
	repo     ReportedItemRepository
	notifier *NotificationService
}

// NewLostFoundService создаёт сервис бюро находок.
func NewLostFoundService(repo ReportedItemRepository, notifier *NotificationService) *LostFoundService {
	return &LostFoundService{repo: repo, notifier: notifier}
}

// Create валидирует и регистрирует запись о потерянной или найденной вещи.
// Группа полей, не соответствующая типу записи, обнуляется.
func (s *LostFoundService) Create(ctx context.Context, item *models.ReportedItem) error {
	if item.ItemType != models.ReportedTypeLost && item.ItemType != models.ReportedTypeFound {
		return fmt.Errorf("lostfound service: тип записи должен быть lost или found")
	}
	if err := validation.ValidateTitle(item.Title); err != nil {
		return fmt.Errorf("lostfound service: %w", err)
	}
	if err := validation.ValidateDescription(item.Description); err != nil {
		return fmt.Errorf("lostfound service: %w", err)
	}
	if err := validation.ValidateNonEmpty("категория", item.Category); err != nil {
		return fmt.Errorf("lostfound service: %w", err)
	}
	if err := validation.ValidateNonEmpty("контактная информация", item.ContactInfo); err != nil {
		return fmt.Errorf("lostfound service: %w", err)
	}

	item.ClearInapplicableGroup()
	item.Status = models.ReportedStatusActive

	return s.repo.Create(ctx, item)
}

// Get возвращает запись по ID.
func (s *LostFoundService) Get(ctx context.Context, id uuid.UUID) (*models.ReportedItem, error) {
	return s.repo.GetByID(ctx, id)
}

// List возвращает доску объявлений бюро находок.
func (s *LostFoundService) List(ctx context.Context, filter repository.ReportedItemFilter) ([]models.ReportedItem, error) {
	return s.repo.List(ctx, filter)
}

// ListByReporter возвращает записи конкретного пользователя.
func (s *LostFoundService) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.ReportedItem, error) {
	return s.repo.ListByReporter(ctx, reporterID)
}

// Update обновляет описательные поля записи. Разрешено автору
// и администратору; терминальные записи редактировать нельзя.
// Тип записи после создания не меняется.
func (s *LostFoundService) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, item *models.ReportedItem) (*models.ReportedItem, error) {
	existing, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if existing.ReporterID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	if existing.Status == models.ReportedStatusResolved || existing.Status == models.ReportedStatusClosed {
		return nil, fmt.Errorf("lostfound service: закрытую запись редактировать нельзя")
	}

	item.ItemType = existing.ItemType
	item.ClearInapplicableGroup()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, item.ID)
}

// UpdateStatus переводит запись в новый статус по правилам:
// active -> verified/resolved/closed, verified -> resolved/closed.
// resolved и closed терминальны. Верификация доступна только
// администратору, остальные переходы ещё и автору записи.
func (s *LostFoundService) UpdateStatus(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, newStatus string) (*models.ReportedItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.ReporterID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	if newStatus == models.ReportedStatusVerified && !isAdmin {
		return nil, ErrForbidden
	}

	if !models.CanTransitionReported(item.Status, newStatus) {
		return nil, fmt.Errorf("lostfound service: %w: %s -> %s", ErrInvalidTransition, item.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	item.Status = newStatus

	if s.notifier != nil && item.ReporterID != actorID {
		s.notifier.Notify(ctx, item.ReporterID, EventReportedStatus, item)
	}

	return item, nil
}

// Delete удаляет запись. Разрешено автору и администратору.
func (s *LostFoundService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.ReporterID != actorID && !isAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
