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

// mockConcernRepository реализует ConcernRepository для тестов.
type mockConcernRepository struct {
	concerns map[uuid.UUID]*models.UserConcern
}

func newMockConcernRepository() *mockConcernRepository {
	return &mockConcernRepository{concerns: make(map[uuid.UUID]*models.UserConcern)}
}

func (m *mockConcernRepository) Create(ctx context.Context, concern *models.UserConcern) error {
	concern.ID = uuid.New()
	concern.CreatedAt = time.Now()
	m.concerns[concern.ID] = concern
	return nil
}

func (m *mockConcernRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserConcern, error) {
	if concern, ok := m.concerns[id]; ok {
		copied := *concern
		return &copied, nil
	}
	return nil, repository.ErrConcernNotFound
}

func (m *mockConcernRepository) List(ctx context.Context, filter repository.ConcernFilter) ([]models.UserConcern, error) {
	var concerns []models.UserConcern
	for _, c := range m.concerns {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Urgency != "" && c.Urgency != filter.Urgency {
			continue
		}
		concerns = append(concerns, *c)
	}
	return concerns, nil
}

func (m *mockConcernRepository) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.UserConcern, error) {
	var concerns []models.UserConcern
	for _, c := range m.concerns {
		if c.ReporterID == reporterID {
			concerns = append(concerns, *c)
		}
	}
	return concerns, nil
}

func (m *mockConcernRepository) UpdateStatus(ctx context.Context, concern *models.UserConcern) error {
	existing, ok := m.concerns[concern.ID]
	if !ok {
		return repository.ErrConcernNotFound
	}
	existing.Status = concern.Status
	existing.AdminResponse = concern.AdminResponse
	existing.AssignedTo = concern.AssignedTo
	existing.ResolvedDate = concern.ResolvedDate
	return nil
}

func (m *mockConcernRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.concerns[id]; !ok {
		return repository.ErrConcernNotFound
	}
	delete(m.concerns, id)
	return nil
}

func newTestConcern(reporter uuid.UUID) *models.UserConcern {
	return &models.UserConcern{
		ReporterID:  reporter,
		ConcernType: models.ConcernTypeFraud,
		Description: "Подозрительное объявление с предоплатой на карту",
		Urgency:     models.UrgencyHigh,
	}
}

// Сценарий эскалации: pending -> in_progress -> escalated -> resolved.
func TestConcernService_EscalationFlow(t *testing.T) {
	repo := newMockConcernRepository()
	service := NewConcernService(repo, nil)
	ctx := context.Background()

	reporter := uuid.New()
	admin := uuid.New()

	concern := newTestConcern(reporter)
	if err := service.Create(ctx, concern); err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}
	if concern.Status != models.ConcernStatusPending {
		t.Fatalf("новое обращение должно быть pending, получили %s", concern.Status)
	}

	response := "Взяли в работу"
	updated, err := service.UpdateStatus(ctx, admin, concern.ID, UpdateConcernInput{
		Status:        models.ConcernStatusInProgress,
		AdminResponse: &response,
	})
	if err != nil {
		t.Fatalf("переход pending -> in_progress вернул ошибку: %v", err)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != admin {
		t.Fatalf("обращение должно быть закреплено за администратором")
	}

	if _, err := service.UpdateStatus(ctx, admin, concern.ID, UpdateConcernInput{
		Status: models.ConcernStatusEscalated,
	}); err != nil {
		t.Fatalf("переход in_progress -> escalated вернул ошибку: %v", err)
	}

	// Из escalated можно только в resolved
	if _, err := service.UpdateStatus(ctx, admin, concern.ID, UpdateConcernInput{
		Status: models.ConcernStatusInProgress,
	}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("переход escalated -> in_progress должен отклоняться, получили %v", err)
	}

	resolved, err := service.UpdateStatus(ctx, admin, concern.ID, UpdateConcernInput{
		Status: models.ConcernStatusResolved,
	})
	if err != nil {
		t.Fatalf("переход escalated -> resolved вернул ошибку: %v", err)
	}
	if resolved.ResolvedDate == nil {
		t.Fatalf("при закрытии должна проставляться resolved_date")
	}

	// resolved терминален
	if _, err := service.UpdateStatus(ctx, admin, concern.ID, UpdateConcernInput{
		Status: models.ConcernStatusEscalated,
	}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("resolved должен быть терминальным, получили %v", err)
	}
}

func TestConcernService_CreateValidation(t *testing.T) {
	repo := newMockConcernRepository()
	service := NewConcernService(repo, nil)
	ctx := context.Background()

	concern := newTestConcern(uuid.New())
	concern.Description = "коротко"
	if err := service.Create(ctx, concern); err == nil {
		t.Fatalf("описание короче 10 символов должно отклоняться")
	}

	concern = newTestConcern(uuid.New())
	concern.ConcernType = "unknown"
	if err := service.Create(ctx, concern); err == nil {
		t.Fatalf("неизвестный тип обращения должен отклоняться")
	}

	concern = newTestConcern(uuid.New())
	concern.Urgency = ""
	if err := service.Create(ctx, concern); err != nil {
		t.Fatalf("пустая срочность должна получать значение по умолчанию: %v", err)
	}
	if concern.Urgency != models.UrgencyLow {
		t.Fatalf("срочность по умолчанию должна быть low, получили %s", concern.Urgency)
	}
}

func TestConcernService_DeleteRules(t *testing.T) {
	repo := newMockConcernRepository()
	service := NewConcernService(repo, nil)
	ctx := context.Background()

	reporter := uuid.New()
	admin := uuid.New()

	concern := newTestConcern(reporter)
	if err := service.Create(ctx, concern); err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	// Чужое обращение не удаляется
	if err := service.Delete(ctx, uuid.New(), false, concern.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("удаление чужого обращения должно отклоняться, получили %v", err)
	}

	// После взятия в работу автор удалить не может
	if _, err := service.UpdateStatus(ctx, admin, concern.ID, UpdateConcernInput{
		Status: models.ConcernStatusInProgress,
	}); err != nil {
		t.Fatalf("переход вернул ошибку: %v", err)
	}
	if err := service.Delete(ctx, reporter, false, concern.ID); err == nil {
		t.Fatalf("автор не должен удалять обращение в работе")
	}

	// Администратор удаляет любое
	if err := service.Delete(ctx, admin, true, concern.ID); err != nil {
		t.Fatalf("админское удаление вернуло ошибку: %v", err)
	}
}
