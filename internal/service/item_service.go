package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/validation"
)

// ItemRepository описывает зависимости ItemService от слоя хранилища.
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context, filter repository.ItemFilter) ([]models.Item, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddImage(ctx context.Context, img *models.ItemImage) error
	GetImage(ctx context.Context, id uuid.UUID) (*models.ItemImage, error)
	ListImages(ctx context.Context, itemID uuid.UUID) ([]models.ItemImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

// ErrForbidden возвращается, когда пользователь трогает чужую сущность.
var ErrForbidden = fmt.Errorf("операция доступна только владельцу или администратору")

// ItemService реализует операции каталога объявлений.
type ItemService struct {
	repo ItemRepository
}

// NewItemService создаёт сервис объявлений.
func NewItemService(repo ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// Create валидирует и публикует объявление.
func (s *ItemService) Create(ctx context.Context, item *models.Item) error {
	if err := s.validate(item); err != nil {
		return err
	}
	return s.repo.Create(ctx, item)
}

// Get возвращает объявление вместе с изображениями.
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withImages(ctx, item)
}

// List возвращает каталог с фильтрами и изображениями.
func (s *ItemService) List(ctx context.Context, filter repository.ItemFilter) ([]models.Item, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.attachImages(ctx, items)
}

// ListByOwner возвращает объявления продавца.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Item, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.attachImages(ctx, items)
}

// Update обновляет объявление. Разрешено владельцу и администратору.
func (s *ItemService) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, item *models.Item) (*models.Item, error) {
	existing, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != actorID && !isAdmin {
		return nil, ErrForbidden
	}

	if err := s.validate(item); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return s.Get(ctx, item.ID)
}

// SetVerified помечает объявление проверенным. Только администратор.
func (s *ItemService) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return s.repo.SetVerified(ctx, id, verified)
}

// Delete удаляет объявление. Разрешено владельцу и администратору.
func (s *ItemService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != actorID && !isAdmin {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// AttachImage прикрепляет изображение к объявлению владельца.
func (s *ItemService) AttachImage(ctx context.Context, actorID uuid.UUID, img *models.ItemImage) error {
	existing, err := s.repo.GetByID(ctx, img.ItemID)
	if err != nil {
		return err
	}
	if existing.OwnerID != actorID {
		return ErrForbidden
	}
	return s.repo.AddImage(ctx, img)
}

// GetImage возвращает метаданные изображения.
func (s *ItemService) GetImage(ctx context.Context, id uuid.UUID) (*models.ItemImage, error) {
	return s.repo.GetImage(ctx, id)
}

// DeleteImage удаляет изображение объявления.
func (s *ItemService) DeleteImage(ctx context.Context, actorID uuid.UUID, isAdmin bool, imageID uuid.UUID) (*models.ItemImage, error) {
	img, err := s.repo.GetImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, img.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	if err := s.repo.DeleteImage(ctx, imageID); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *ItemService) validate(item *models.Item) error {
	if err := validation.ValidateTitle(item.Title); err != nil {
		return fmt.Errorf("item service: %w", err)
	}
	if err := validation.ValidateDescription(item.Description); err != nil {
		return fmt.Errorf("item service: %w", err)
	}
	if err := validation.ValidateNonEmpty("категория", item.Category); err != nil {
		return fmt.Errorf("item service: %w", err)
	}
	if err := validation.ValidateNonEmpty("состояние", item.Condition); err != nil {
		return fmt.Errorf("item service: %w", err)
	}
	if err := validation.ValidateNonEmpty("место передачи", item.PickupLocation); err != nil {
		return fmt.Errorf("item service: %w", err)
	}
	if err := validation.ValidatePrice("исходная цена", item.OriginalPrice); err != nil {
		return fmt.Errorf("item service: %w", err)
	}
	if err := validation.ValidatePrice("запрашиваемая цена", item.AskingPrice); err != nil {
		return fmt.Errorf("item service: %w", err)
	}
	return nil
}

func (s *ItemService) withImages(ctx context.Context, item *models.Item) (*models.Item, error) {
	images, err := s.repo.ListImages(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.Images = images
	return item, nil
}

func (s *ItemService) attachImages(ctx context.Context, items []models.Item) ([]models.Item, error) {
	for i := range items {
		images, err := s.repo.ListImages(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Images = images
	}
	return items, nil
}
