package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/validation"
)

// UserRepository описывает зависимости UserService от слоя хранилища.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	DeleteAllSessions(ctx context.Context, userID uuid.UUID) error
	CountByRole(ctx context.Context, role string) (int, error)
}

// UserService реализует административные операции над пользователями.
type UserService struct {
	repo     UserRepository
	notifier *NotificationService
}

// NewUserService создаёт сервис управления пользователями.
func NewUserService(repo UserRepository, notifier *NotificationService) *UserService {
	return &UserService{repo: repo, notifier: notifier}
}

// Get возвращает пользователя по ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Normalize()
	return user, nil
}

// List возвращает всех пользователей для панели администратора.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Normalize()
	}
	return users, nil
}

// ToggleSuspension переключает статус active/suspended.
// У заблокированного пользователя закрываются все сессии.
func (s *UserService) ToggleSuspension(ctx context.Context, adminID, userID uuid.UUID) (*models.User, error) {
	if adminID == userID {
		return nil, fmt.Errorf("user service: нельзя заблокировать собственный аккаунт")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newStatus := models.UserStatusSuspended
	if user.Status == models.UserStatusSuspended {
		newStatus = models.UserStatusActive
	}

	if err := s.repo.UpdateStatus(ctx, userID, newStatus); err != nil {
		return nil, err
	}

	if newStatus == models.UserStatusSuspended {
		if err := s.repo.DeleteAllSessions(ctx, userID); err != nil {
			return nil, err
		}
	}

	user.Status = newStatus
	user.Normalize()

	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, EventAccountUpdated, map[string]string{"status": newStatus})
	}

	return user, nil
}

// ToggleRole переключает роль USER/ADMINISTRATOR.
// Последнего администратора разжаловать нельзя.
func (s *UserService) ToggleRole(ctx context.Context, adminID, userID uuid.UUID) (*models.User, error) {
	if adminID == userID {
		return nil, fmt.Errorf("user service: нельзя менять собственную роль")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newRole := models.RoleAdministrator
	if models.IsAdminRole(user.Role) {
		admins, err := s.repo.CountByRole(ctx, models.RoleAdministrator)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, fmt.Errorf("user service: нельзя разжаловать последнего администратора")
		}
		newRole = models.RoleUser
	}

	if err := s.repo.UpdateRole(ctx, userID, newRole); err != nil {
		return nil, err
	}

	user.Role = newRole
	user.Normalize()

	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, EventAccountUpdated, map[string]string{"role": newRole})
	}

	return user, nil
}

// ResetPassword устанавливает пользователю новый пароль от имени
// администратора и закрывает его сессии.
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("user service: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("user service: не удалось захешировать пароль: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(passHash)); err != nil {
		return err
	}

	return s.repo.DeleteAllSessions(ctx, userID)
}

// Delete удаляет пользователя от имени администратора.
// Удаление необратимо: строка помечается сентинелом и исчезает из списков.
func (s *UserService) Delete(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return fmt.Errorf("user service: нельзя удалить собственный аккаунт через панель администратора")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if models.IsAdminRole(user.Role) {
		admins, err := s.repo.CountByRole(ctx, models.RoleAdministrator)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return fmt.Errorf("user service: нельзя удалить последнего администратора")
		}
	}

	return s.repo.SoftDelete(ctx, userID)
}
