package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/validation"
)

// Ошибки жизненного цикла пожертвованной вещи.
var (
	ErrAlreadyClaimed = fmt.Errorf("вещь уже забронирована")
	ErrNotClaimed     = fmt.Errorf("вещь не находится в статусе claimed")
)

// DonatedItemRepository описывает зависимости DonationService.
type DonatedItemRepository interface {
	Create(ctx context.Context, item *models.DonatedItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DonatedItem, error)
	List(ctx context.Context) ([]models.DonatedItem, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.DonatedItem, error)
	Update(ctx context.Context, item *models.DonatedItem) error
	Claim(ctx context.Context, id, claimedBy uuid.UUID) (bool, error)
	Complete(ctx context.Context, id uuid.UUID) (bool, error)
	Revert(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DonationService реализует жизненный цикл пожертвованных вещей:
// available -> claimed -> completed, с админским возвратом в available.
type DonationService struct {
	repo     DonatedItemRepository
	notifier *NotificationService
}

// NewDonationService создаёт сервис пожертвований.
func NewDonationService(repo DonatedItemRepository, notifier *NotificationService) *DonationService {
	return &DonationService{repo: repo, notifier: notifier}
}

// Create валидирует и публикует пожертвованную вещь.
func (s *DonationService) Create(ctx context.Context, item *models.DonatedItem) error {
	if err := validation.ValidateTitle(item.Title); err != nil {
		return fmt.Errorf("donation service: %w", err)
	}
	if err := validation.ValidateDescription(item.Description); err != nil {
		return fmt.Errorf("donation service: %w", err)
	}
	if err := validation.ValidateNonEmpty("категория", item.Category); err != nil {
		return fmt.Errorf("donation service: %w", err)
	}
	if err := validation.ValidateNonEmpty("место передачи", item.PickupLocation); err != nil {
		return fmt.Errorf("donation service: %w", err)
	}
	if err := validation.ValidatePrice("оценочная стоимость", item.EstimatedValue); err != nil {
		return fmt.Errorf("donation service: %w", err)
	}
	return s.repo.Create(ctx, item)
}

// Get возвращает пожертвованную вещь.
func (s *DonationService) Get(ctx context.Context, id uuid.UUID) (*models.DonatedItem, error) {
	return s.repo.GetByID(ctx, id)
}

// List возвращает все пожертвованные вещи.
func (s *DonationService) List(ctx context.Context) ([]models.DonatedItem, error) {
	return s.repo.List(ctx)
}

// ListByDonor возвращает вещи конкретного дарителя.
func (s *DonationService) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.DonatedItem, error) {
	return s.repo.ListByDonor(ctx, donorID)
}

// Update обновляет описание вещи. Разрешено дарителю и администратору,
// и только пока вещь не забронирована.
func (s *DonationService) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, item *models.DonatedItem) (*models.DonatedItem, error) {
	existing, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if existing.DonorID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	if existing.Status() != models.DonationStatusAvailable {
		return nil, fmt.Errorf("donation service: забронированную вещь редактировать нельзя")
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, item.ID)
}

// Claim бронирует вещь за пользователем. Даритель не может
// забронировать собственную вещь. Гонку бронирования выигрывает
// ровно один пользователь.
func (s *DonationService) Claim(ctx context.Context, userID, itemID uuid.UUID) (*models.DonatedItem, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.DonorID == userID {
		return nil, fmt.Errorf("donation service: нельзя забронировать собственную вещь")
	}

	claimed, err := s.repo.Claim(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrAlreadyClaimed
	}

	item, err = s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, item.DonorID, EventDonationClaimed, item)
	}

	return item, nil
}

// Complete фиксирует выдачу забронированной вещи. Разрешено дарителю
// и администратору.
func (s *DonationService) Complete(ctx context.Context, actorID uuid.UUID, isAdmin bool, itemID uuid.UUID) (*models.DonatedItem, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.DonorID != actorID && !isAdmin {
		return nil, ErrForbidden
	}

	done, err := s.repo.Complete(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, ErrNotClaimed
	}

	item, err = s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && item.ClaimedByID != nil {
		s.notifier.Notify(ctx, *item.ClaimedByID, EventDonationCompleted, item)
	}

	return item, nil
}

// Revert возвращает вещь в available, очищая бронь и дату выдачи.
// Только администратор.
func (s *DonationService) Revert(ctx context.Context, itemID uuid.UUID) (*models.DonatedItem, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	prevClaimer := item.ClaimedByID

	if err := s.repo.Revert(ctx, itemID); err != nil {
		return nil, err
	}

	item, err = s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && prevClaimer != nil {
		s.notifier.Notify(ctx, *prevClaimer, EventDonationReverted, item)
	}

	return item, nil
}

// Delete удаляет вещь. Разрешено дарителю и администратору.
func (s *DonationService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, itemID uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.DonorID != actorID && !isAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, itemID)
}
