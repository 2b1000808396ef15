package service

import (
	"context"
	"sync"

	"github.com/recyconnect/backend/internal/models"
)

// DashboardStats — сводка для панели администратора.
type DashboardStats struct {
	Users           int `json:"users"`
	Administrators  int `json:"administrators"`
	Items           int `json:"items"`
	DonatedItems    int `json:"donatedItems"`
	ActiveReported  int `json:"activeReported"`
	PendingConcerns int `json:"pendingConcerns"`
	PendingFlags    int `json:"pendingFlags"`
}

// DashboardRepository агрегирует счётчики по всем сущностям.
type DashboardRepository interface {
	CountUsersByRole(ctx context.Context, role string) (int, error)
	CountItems(ctx context.Context) (int, error)
	CountDonatedItems(ctx context.Context) (int, error)
	CountReportedByStatus(ctx context.Context, status string) (int, error)
	CountConcernsByStatus(ctx context.Context, status string) (int, error)
	CountFlagsByStatus(ctx context.Context, status string) (int, error)
}

// DashboardService собирает статистику панели администратора.
type DashboardService struct {
	repo DashboardRepository
}

// NewDashboardService создаёт сервис статистики.
func NewDashboardService(repo DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Stats собирает счётчики параллельно. Первая ошибка прерывает сбор.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		stats    DashboardStats
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	collect := func(fn func(context.Context) (int, error), dst *int) {
		defer wg.Done()
		n, err := fn(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		*dst = n
	}

	wg.Add(7)
	go collect(func(ctx context.Context) (int, error) {
		return s.repo.CountUsersByRole(ctx, models.RoleUser)
	}, &stats.Users)
	go collect(func(ctx context.Context) (int, error) {
		return s.repo.CountUsersByRole(ctx, models.RoleAdministrator)
	}, &stats.Administrators)
	go collect(s.repo.CountItems, &stats.Items)
	go collect(s.repo.CountDonatedItems, &stats.DonatedItems)
	go collect(func(ctx context.Context) (int, error) {
		return s.repo.CountReportedByStatus(ctx, models.ReportedStatusActive)
	}, &stats.ActiveReported)
	go collect(func(ctx context.Context) (int, error) {
		return s.repo.CountConcernsByStatus(ctx, models.ConcernStatusPending)
	}, &stats.PendingConcerns)
	go collect(func(ctx context.Context) (int, error) {
		return s.repo.CountFlagsByStatus(ctx, models.FlagStatusPending)
	}, &stats.PendingFlags)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return &stats, nil
}
