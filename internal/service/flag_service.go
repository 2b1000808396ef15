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

// ErrDuplicateFlag возвращается при повторной жалобе на ту же цель.
var ErrDuplicateFlag = fmt.Errorf("вы уже пожаловались на эту цель")

// FlagRepository описывает зависимости FlagService.
type FlagRepository interface {
	Create(ctx context.Context, flag *models.Flag) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Flag, error)
	List(ctx context.Context, filter repository.FlagFilter) ([]models.Flag, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Flag, error)
	ListByTarget(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Flag, error)
	CountByTarget(ctx context.Context, targetType string, targetID uuid.UUID) (int, error)
	HasActiveFlag(ctx context.Context, userID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, flag *models.Flag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FlagService реализует флаги модерации.
type FlagService struct {
	repo FlagRepository
}

// UpdateFlagInput — решение администратора по флагу.
type UpdateFlagInput struct {
	Status     string
	AdminNotes *string
}

// NewFlagService создаёт сервис флагов.
func NewFlagService(repo FlagRepository) *FlagService {
	return &FlagService{repo: repo}
}

// Create регистрирует жалобу. Повторная жалоба того же пользователя
// на ту же цель отклоняется, пока предыдущая не закрыта.
func (s *FlagService) Create(ctx context.Context, flag *models.Flag) error {
	if err := validation.ValidateEnum("тип цели", flag.TargetType, models.ValidFlagTargets); err != nil {
		return fmt.Errorf("flag service: %w", err)
	}
	if err := validation.ValidateNonEmpty("причина", flag.Reason); err != nil {
		return fmt.Errorf("flag service: %w", err)
	}

	exists, err := s.repo.HasActiveFlag(ctx, flag.FlaggedByID, flag.TargetType, flag.TargetID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateFlag
	}

	flag.Status = models.FlagStatusPending
	return s.repo.Create(ctx, flag)
}

// Get возвращает флаг по ID.
func (s *FlagService) Get(ctx context.Context, id uuid.UUID) (*models.Flag, error) {
	return s.repo.GetByID(ctx, id)
}

// List возвращает флаги для панели модерации.
func (s *FlagService) List(ctx context.Context, filter repository.FlagFilter) ([]models.Flag, error) {
	return s.repo.List(ctx, filter)
}

// ListByUser возвращает жалобы, поданные пользователем.
func (s *FlagService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Flag, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByTarget возвращает все жалобы на конкретную цель.
func (s *FlagService) ListByTarget(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Flag, error) {
	if err := validation.ValidateEnum("тип цели", targetType, models.ValidFlagTargets); err != nil {
		return nil, fmt.Errorf("flag service: %w", err)
	}
	return s.repo.ListByTarget(ctx, targetType, targetID)
}

// CountByTarget возвращает число жалоб на цель.
func (s *FlagService) CountByTarget(ctx context.Context, targetType string, targetID uuid.UUID) (int, error) {
	if err := validation.ValidateEnum("тип цели", targetType, models.ValidFlagTargets); err != nil {
		return 0, fmt.Errorf("flag service: %w", err)
	}
	return s.repo.CountByTarget(ctx, targetType, targetID)
}

// UpdateStatus применяет решение администратора. При закрытии флага
// проставляется resolved_at.
func (s *FlagService) UpdateStatus(ctx context.Context, id uuid.UUID, in UpdateFlagInput) (*models.Flag, error) {
	if err := validation.ValidateEnum("статус флага", in.Status, models.ValidFlagStatuses); err != nil {
		return nil, fmt.Errorf("flag service: %w", err)
	}

	flag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flag.Status = in.Status
	if in.AdminNotes != nil {
		flag.AdminNotes = in.AdminNotes
	}
	if in.Status == models.FlagStatusResolved || in.Status == models.FlagStatusDismissed {
		now := time.Now()
		flag.ResolvedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, flag); err != nil {
		return nil, err
	}

	return flag, nil
}

// Delete удаляет флаг. Автор может отозвать только свой PENDING флаг,
// администратор удаляет любой.
func (s *FlagService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	flag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin {
		if flag.FlaggedByID != actorID {
			return ErrForbidden
		}
		if flag.Status != models.FlagStatusPending {
			return fmt.Errorf("flag service: жалоба уже рассмотрена, отзыв недоступен")
		}
	}
	return s.repo.Delete(ctx, id)
}
