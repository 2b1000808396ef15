package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DashboardRepository собирает счётчики для панели администратора.
type DashboardRepository struct {
	users    *UserRepository
	items    *ItemRepository
	donated  *DonatedItemRepository
	reported *ReportedItemRepository
	concerns *ConcernRepository
	flags    *FlagRepository
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{
		users:    NewUserRepository(db),
		items:    NewItemRepository(db),
		donated:  NewDonatedItemRepository(db),
		reported: NewReportedItemRepository(db),
		concerns: NewConcernRepository(db),
		flags:    NewFlagRepository(db),
	}
}

func (r *DashboardRepository) CountUsersByRole(ctx context.Context, role string) (int, error) {
	return r.users.CountByRole(ctx, role)
}

func (r *DashboardRepository) CountItems(ctx context.Context) (int, error) {
	return r.items.Count(ctx)
}

func (r *DashboardRepository) CountDonatedItems(ctx context.Context) (int, error) {
	return r.donated.Count(ctx)
}

func (r *DashboardRepository) CountReportedByStatus(ctx context.Context, status string) (int, error) {
	return r.reported.CountByStatus(ctx, status)
}

func (r *DashboardRepository) CountConcernsByStatus(ctx context.Context, status string) (int, error) {
	return r.concerns.CountByStatus(ctx, status)
}

func (r *DashboardRepository) CountFlagsByStatus(ctx context.Context, status string) (int, error) {
	return r.flags.CountByStatus(ctx, status)
}
