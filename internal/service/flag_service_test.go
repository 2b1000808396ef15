package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
)

type mockFlagRepo struct {
	mock.Mock
}

func (m *mockFlagRepo) Create(ctx context.Context, flag *models.Flag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func (m *mockFlagRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flag), args.Error(1)
}

func (m *mockFlagRepo) List(ctx context.Context, filter repository.FlagFilter) ([]models.Flag, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flag), args.Error(1)
}

func (m *mockFlagRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Flag, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flag), args.Error(1)
}

func (m *mockFlagRepo) ListByTarget(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Flag, error) {
	args := m.Called(ctx, targetType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flag), args.Error(1)
}

func (m *mockFlagRepo) CountByTarget(ctx context.Context, targetType string, targetID uuid.UUID) (int, error) {
	args := m.Called(ctx, targetType, targetID)
	return args.Int(0), args.Error(1)
}

func (m *mockFlagRepo) HasActiveFlag(ctx context.Context, userID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, targetType, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFlagRepo) UpdateStatus(ctx context.Context, flag *models.Flag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func (m *mockFlagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestFlagService_Create(t *testing.T) {
	repo := new(mockFlagRepo)
	service := NewFlagService(repo)
	ctx := context.Background()

	flag := &models.Flag{
		FlaggedByID: uuid.New(),
		TargetType:  models.FlagTargetItem,
		TargetID:    uuid.New(),
		Reason:      "scam",
	}

	repo.On("HasActiveFlag", ctx, flag.FlaggedByID, flag.TargetType, flag.TargetID).Return(false, nil)
	repo.On("Create", ctx, flag).Return(nil)

	err := service.Create(ctx, flag)
	assert.NoError(t, err)
	assert.Equal(t, models.FlagStatusPending, flag.Status)
	repo.AssertExpectations(t)
}

func TestFlagService_CreateDuplicate(t *testing.T) {
	repo := new(mockFlagRepo)
	service := NewFlagService(repo)
	ctx := context.Background()

	flag := &models.Flag{
		FlaggedByID: uuid.New(),
		TargetType:  models.FlagTargetUser,
		TargetID:    uuid.New(),
		Reason:      "harassment",
	}

	repo.On("HasActiveFlag", ctx, flag.FlaggedByID, flag.TargetType, flag.TargetID).Return(true, nil)

	err := service.Create(ctx, flag)
	assert.ErrorIs(t, err, ErrDuplicateFlag)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlagService_CreateInvalidTarget(t *testing.T) {
	repo := new(mockFlagRepo)
	service := NewFlagService(repo)

	flag := &models.Flag{
		FlaggedByID: uuid.New(),
		TargetType:  "comment",
		TargetID:    uuid.New(),
		Reason:      "spam",
	}

	err := service.Create(context.Background(), flag)
	assert.Error(t, err)
}

func TestFlagService_UpdateStatusSetsResolvedAt(t *testing.T) {
	repo := new(mockFlagRepo)
	service := NewFlagService(repo)
	ctx := context.Background()

	id := uuid.New()
	existing := &models.Flag{
		ID:          id,
		FlaggedByID: uuid.New(),
		TargetType:  models.FlagTargetItem,
		TargetID:    uuid.New(),
		Reason:      "scam",
		Status:      models.FlagStatusPending,
	}

	repo.On("GetByID", ctx, id).Return(existing, nil)
	repo.On("UpdateStatus", ctx, mock.AnythingOfType("*models.Flag")).Return(nil)

	notes := "Объявление снято"
	updated, err := service.UpdateStatus(ctx, id, UpdateFlagInput{
		Status:     models.FlagStatusResolved,
		AdminNotes: &notes,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.FlagStatusResolved, updated.Status)
	assert.NotNil(t, updated.ResolvedAt)
	assert.Equal(t, &notes, updated.AdminNotes)
}

func TestFlagService_CountByTarget(t *testing.T) {
	repo := new(mockFlagRepo)
	service := NewFlagService(repo)
	ctx := context.Background()

	targetID := uuid.New()
	repo.On("CountByTarget", ctx, models.FlagTargetItem, targetID).Return(3, nil)

	count, err := service.CountByTarget(ctx, models.FlagTargetItem, targetID)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = service.CountByTarget(ctx, "post", targetID)
	assert.Error(t, err)
}
