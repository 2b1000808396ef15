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

// mockReportedItemRepository реализует ReportedItemRepository для тестов.
type mockReportedItemRepository struct {
	items map[uuid.UUID]*models.ReportedItem
}

func newMockReportedItemRepository() *mockReportedItemRepository {
	return &mockReportedItemRepository{items: make(map[uuid.UUID]*models.ReportedItem)}
}

func (m *mockReportedItemRepository) Create(ctx context.Context, item *models.ReportedItem) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	m.items[item.ID] = item
	return nil
}

func (m *mockReportedItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReportedItem, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, repository.ErrReportedItemNotFound
}

func (m *mockReportedItemRepository) List(ctx context.Context, filter repository.ReportedItemFilter) ([]models.ReportedItem, error) {
	var items []models.ReportedItem
	for _, item := range m.items {
		if filter.ItemType != "" && item.ItemType != filter.ItemType {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

func (m *mockReportedItemRepository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.ReportedItem, error) {
	var items []models.ReportedItem
	for _, item := range m.items {
		if item.ReporterID == reporterID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *mockReportedItemRepository) Update(ctx context.Context, item *models.ReportedItem) error {
	existing, ok := m.items[item.ID]
	if !ok {
		return repository.ErrReportedItemNotFound
	}
	status := existing.Status
	*existing = *item
	existing.Status = status
	return nil
}

func (m *mockReportedItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	item, ok := m.items[id]
	if !ok {
		return repository.ErrReportedItemNotFound
	}
	item.Status = status
	return nil
}

func (m *mockReportedItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrReportedItemNotFound
	}
	delete(m.items, id)
	return nil
}

func newLostReport(reporter uuid.UUID) *models.ReportedItem {
	location := "Корпус B, аудитория 204"
	date := "2026-08-30"
	found := "Стойка охраны"
	return &models.ReportedItem{
		ReporterID:   reporter,
		ItemType:     models.ReportedTypeLost,
		Title:        "Потерян рюкзак",
		Description:  "Чёрный рюкзак с ноутбуком внутри",
		Category:     "bags",
		ContactInfo:  "tg: @student",
		LocationLost: &location,
		DateLost:     &date,
		// Поля found заполнены по ошибке, сервис обязан их очистить
		LocationFound: &found,
	}
}

func TestLostFoundService_CreateClearsInapplicableGroup(t *testing.T) {
	repo := newMockReportedItemRepository()
	service := NewLostFoundService(repo, nil)

	item := newLostReport(uuid.New())
	if err := service.Create(context.Background(), item); err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if item.Status != models.ReportedStatusActive {
		t.Fatalf("новая запись должна быть active, получили %s", item.Status)
	}
	if item.LocationFound != nil {
		t.Fatalf("для lost записи группа found должна быть очищена")
	}
	if item.LocationLost == nil {
		t.Fatalf("группа lost должна сохраниться")
	}
}

func TestLostFoundService_StatusTransitions(t *testing.T) {
	repo := newMockReportedItemRepository()
	service := NewLostFoundService(repo, nil)
	ctx := context.Background()

	reporter := uuid.New()
	admin := uuid.New()

	item := newLostReport(reporter)
	if err := service.Create(ctx, item); err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	// Верификация доступна только администратору
	if _, err := service.UpdateStatus(ctx, reporter, false, item.ID, models.ReportedStatusVerified); !errors.Is(err, ErrForbidden) {
		t.Fatalf("верификация автором должна отклоняться, получили %v", err)
	}

	verified, err := service.UpdateStatus(ctx, admin, true, item.ID, models.ReportedStatusVerified)
	if err != nil {
		t.Fatalf("переход active -> verified вернул ошибку: %v", err)
	}
	if verified.Status != models.ReportedStatusVerified {
		t.Fatalf("ожидался статус verified, получили %s", verified.Status)
	}

	// verified -> active недопустим
	if _, err := service.UpdateStatus(ctx, admin, true, item.ID, models.ReportedStatusActive); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("обратный переход должен отклоняться, получили %v", err)
	}

	resolved, err := service.UpdateStatus(ctx, reporter, false, item.ID, models.ReportedStatusResolved)
	if err != nil {
		t.Fatalf("переход verified -> resolved вернул ошибку: %v", err)
	}
	if resolved.Status != models.ReportedStatusResolved {
		t.Fatalf("ожидался статус resolved, получили %s", resolved.Status)
	}

	// resolved терминален
	if _, err := service.UpdateStatus(ctx, admin, true, item.ID, models.ReportedStatusClosed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("resolved должен быть терминальным, получили %v", err)
	}
}

func TestLostFoundService_UpdateTerminalForbidden(t *testing.T) {
	repo := newMockReportedItemRepository()
	service := NewLostFoundService(repo, nil)
	ctx := context.Background()

	reporter := uuid.New()
	item := newLostReport(reporter)
	if err := service.Create(ctx, item); err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if _, err := service.UpdateStatus(ctx, reporter, false, item.ID, models.ReportedStatusClosed); err != nil {
		t.Fatalf("переход active -> closed вернул ошибку: %v", err)
	}

	item.Description = "Чёрный рюкзак, нашёлся сам"
	if _, err := service.Update(ctx, reporter, false, item); err == nil {
		t.Fatalf("закрытую запись редактировать нельзя")
	}
}
