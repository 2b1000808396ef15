package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/validation"
)

// ConcernRepository описывает зависимости ConcernService.
type ConcernRepository interface {
	Create(ctx context.Context, concern *models.UserConcern) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserConcern, error)
	List(ctx context.Context, filter repository.ConcernFilter) ([]models.UserConcern, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.UserConcern, error)
	UpdateStatus(ctx context.Context, concern *models.UserConcern) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConcernService реализует обращения пользователей к модерации.
type ConcernService struct {
	repo     ConcernRepository
	notifier *NotificationService
}

// UpdateConcernInput — решение администратора по обращению.
type UpdateConcernInput struct {
	Status        string
	AdminResponse *string
	AssignedTo    *uuid.UUID
}

// NewConcernService создаёт сервис обращений.
func NewConcernService(repo ConcernRepository, notifier *NotificationService) *ConcernService {
	return &ConcernService{repo: repo, notifier: notifier}
}

// Create валидирует и регистрирует обращение. Новое обращение
// всегда начинает с pending.
func (s *ConcernService) Create(ctx context.Context, concern *models.UserConcern) error {
	if err := validation.ValidateEnum("тип обращения", concern.ConcernType, models.ValidConcernTypes); err != nil {
		return fmt.Errorf("concern service: %w", err)
	}
	if concern.Urgency == "" {
		concern.Urgency = models.UrgencyLow
	}
	if err := validation.ValidateEnum("срочность", concern.Urgency, models.ValidUrgencies); err != nil {
		return fmt.Errorf("concern service: %w", err)
	}
	if err := validation.ValidateConcernDescription(concern.Description); err != nil {
		return fmt.Errorf("concern service: %w", err)
	}

	concern.Status = models.ConcernStatusPending
	concern.AdminResponse = nil
	concern.AssignedTo = nil
	concern.ResolvedDate = nil

	return s.repo.Create(ctx, concern)
}

// Get возвращает обращение. Доступно автору и администратору.
func (s *ConcernService) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (*models.UserConcern, error) {
	concern, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if concern.ReporterID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	return concern, nil
}

// List возвращает очередь обращений для модерации.
func (s *ConcernService) List(ctx context.Context, filter repository.ConcernFilter) ([]models.UserConcern, error) {
	return s.repo.List(ctx, filter)
}

// ListByReporter возвращает обращения пользователя.
func (s *ConcernService) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.UserConcern, error) {
	return s.repo.ListByReporter(ctx, reporterID)
}

// UpdateStatus переводит обращение в новый статус по правилам:
// pending -> in_progress/resolved/escalated, in_progress -> resolved/escalated,
// escalated -> resolved. resolved терминален. resolved_date проставляется
// при закрытии и очищается не бывает.
func (s *ConcernService) UpdateStatus(ctx context.Context, adminID uuid.UUID, id uuid.UUID, in UpdateConcernInput) (*models.UserConcern, error) {
	concern, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionConcern(concern.Status, in.Status) {
		return nil, fmt.Errorf("concern service: %w: %s -> %s", ErrInvalidTransition, concern.Status, in.Status)
	}

	concern.Status = in.Status
	if in.AdminResponse != nil {
		concern.AdminResponse = in.AdminResponse
	}
	if in.AssignedTo != nil {
		concern.AssignedTo = in.AssignedTo
	} else if concern.AssignedTo == nil {
		concern.AssignedTo = &adminID
	}
	if in.Status == models.ConcernStatusResolved {
		now := time.Now()
		concern.ResolvedDate = &now
	}

	if err := s.repo.UpdateStatus(ctx, concern); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, concern.ReporterID, EventConcernUpdated, concern)
	}

	return concern, nil
}

// Delete удаляет обращение. Автор может удалить только pending
// обращение, администратор — любое.
func (s *ConcernService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	concern, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin {
		if concern.ReporterID != actorID {
			return ErrForbidden
		}
		if concern.Status != models.ConcernStatusPending {
			return fmt.Errorf("concern service: обращение уже взято в работу, удаление недоступно")
		}
	}
	return s.repo.Delete(ctx, id)
}
