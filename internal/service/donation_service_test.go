package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
)

// mockDonatedItemRepository реализует DonatedItemRepository для тестов.
type mockDonatedItemRepository struct {
	items map[uuid.UUID]*models.DonatedItem
}

func newMockDonatedItemRepository() *mockDonatedItemRepository {
	return &mockDonatedItemRepository{items: make(map[uuid.UUID]*models.DonatedItem)}
}

func (m *mockDonatedItemRepository) Create(ctx context.Context, item *models.DonatedItem) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	m.items[item.ID] = item
	return nil
}

func (m *mockDonatedItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DonatedItem, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, repository.ErrDonatedItemNotFound
}

func (m *mockDonatedItemRepository) List(ctx context.Context) ([]models.DonatedItem, error) {
	var items []models.DonatedItem
	for _, item := range m.items {
		items = append(items, *item)
	}
	return items, nil
}

func (m *mockDonatedItemRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.DonatedItem, error) {
	var items []models.DonatedItem
	for _, item := range m.items {
		if item.DonorID == donorID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *mockDonatedItemRepository) Update(ctx context.Context, item *models.DonatedItem) error {
	existing, ok := m.items[item.ID]
	if !ok {
		return repository.ErrDonatedItemNotFound
	}
	existing.Title = item.Title
	existing.Description = item.Description
	return nil
}

func (m *mockDonatedItemRepository) Claim(ctx context.Context, id, claimedBy uuid.UUID) (bool, error) {
	item, ok := m.items[id]
	if !ok {
		return false, repository.ErrDonatedItemNotFound
	}
	if item.ClaimedByID != nil {
		return false, nil
	}
	item.ClaimedByID = &claimedBy
	return true, nil
}

func (m *mockDonatedItemRepository) Complete(ctx context.Context, id uuid.UUID) (bool, error) {
	item, ok := m.items[id]
	if !ok {
		return false, repository.ErrDonatedItemNotFound
	}
	if item.ClaimedByID == nil || item.ClaimedDate != nil {
		return false, nil
	}
	now := time.Now()
	item.ClaimedDate = &now
	return true, nil
}

func (m *mockDonatedItemRepository) Revert(ctx context.Context, id uuid.UUID) error {
	item, ok := m.items[id]
	if !ok {
		return repository.ErrDonatedItemNotFound
	}
	item.ClaimedByID = nil
	item.ClaimedDate = nil
	return nil
}

func (m *mockDonatedItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrDonatedItemNotFound
	}
	delete(m.items, id)
	return nil
}

// Полный жизненный цикл: available -> claimed -> completed -> available.
func TestDonationService_Lifecycle(t *testing.T) {
	repo := newMockDonatedItemRepository()
	service := NewDonationService(repo, nil)
	ctx := context.Background()

	donor := uuid.New()
	claimer := uuid.New()

	item := &models.DonatedItem{
		DonorID:        donor,
		Title:          "Настольная лампа",
		Description:    "Рабочая лампа, отдаю бесплатно",
		Category:       "electronics",
		Condition:      "good",
		PickupLocation: "Общежитие 3",
	}
	if err := service.Create(ctx, item); err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	got, _ := service.Get(ctx, item.ID)
	if got.Status() != models.DonationStatusAvailable {
		t.Fatalf("новая вещь должна быть available, получили %s", got.Status())
	}

	// Даритель не бронирует собственную вещь
	if _, err := service.Claim(ctx, donor, item.ID); err == nil {
		t.Fatalf("даритель не должен бронировать собственную вещь")
	}

	claimed, err := service.Claim(ctx, claimer, item.ID)
	if err != nil {
		t.Fatalf("claim вернул ошибку: %v", err)
	}
	if claimed.Status() != models.DonationStatusClaimed {
		t.Fatalf("после брони статус должен быть claimed, получили %s", claimed.Status())
	}

	// Вторая бронь проигрывает гонку
	other := uuid.New()
	if _, err := service.Claim(ctx, other, item.ID); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("повторная бронь должна вернуть ErrAlreadyClaimed, получили %v", err)
	}

	// Завершить может только даритель или администратор
	if _, err := service.Complete(ctx, claimer, false, item.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("получатель не должен завершать выдачу, получили %v", err)
	}

	completed, err := service.Complete(ctx, donor, false, item.ID)
	if err != nil {
		t.Fatalf("complete вернул ошибку: %v", err)
	}
	if completed.Status() != models.DonationStatusCompleted {
		t.Fatalf("после выдачи статус должен быть completed, получили %s", completed.Status())
	}

	// Повторное завершение невозможно
	if _, err := service.Complete(ctx, donor, false, item.ID); !errors.Is(err, ErrNotClaimed) {
		t.Fatalf("повторное завершение должно вернуть ErrNotClaimed, получили %v", err)
	}

	// Админский возврат очищает бронь и дату выдачи
	reverted, err := service.Revert(ctx, item.ID)
	if err != nil {
		t.Fatalf("revert вернул ошибку: %v", err)
	}
	if reverted.Status() != models.DonationStatusAvailable {
		t.Fatalf("после возврата статус должен быть available, получили %s", reverted.Status())
	}
	if reverted.ClaimedByID != nil || reverted.ClaimedDate != nil {
		t.Fatalf("после возврата бронь и дата выдачи должны быть очищены")
	}
}

func TestDonationService_UpdateClaimedForbidden(t *testing.T) {
	repo := newMockDonatedItemRepository()
	service := NewDonationService(repo, nil)
	ctx := context.Background()

	donor := uuid.New()
	item := &models.DonatedItem{
		DonorID:        donor,
		Title:          "Стопка книг",
		Description:    "Учебники за первый курс",
		Category:       "books",
		Condition:      "fair",
		PickupLocation: "Библиотека",
	}
	if err := service.Create(ctx, item); err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if _, err := service.Claim(ctx, uuid.New(), item.ID); err != nil {
		t.Fatalf("claim вернул ошибку: %v", err)
	}

	item.Title = "Стопка книг (обновлено)"
	if _, err := service.Update(ctx, donor, false, item); err == nil {
		t.Fatalf("забронированную вещь редактировать нельзя")
	}
}
