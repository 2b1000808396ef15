package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/client/confirm"
	"github.com/recyconnect/backend/internal/dto"
	"github.com/recyconnect/backend/internal/models"
)

// RegisterRequest — тело запроса регистрации.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	CollegeID string  `json:"collegeId"`
}

// UpdateProfileRequest — тело обновления профиля.
type UpdateProfileRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

// Register регистрирует аккаунт и возвращает токены с пользователем.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.post(ctx, "/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login выполняет вход.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out dto.AuthResponse
	if err := c.post(ctx, "/users/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh обменивает refresh токен на новую пару.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var out dto.AuthResponse
	if err := c.post(ctx, "/users/refresh", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout закрывает сессию на сервере.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.post(ctx, "/users/logout", map[string]string{"refreshToken": refreshToken}, nil)
}

// Profile возвращает профиль текущего пользователя.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile сохраняет изменения профиля.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	var out models.User
	if err := c.put(ctx, "/users/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword меняет пароль текущего пользователя.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return c.put(ctx, "/users/change-password", body, nil)
}

// DeleteAccount удаляет аккаунт. Вызов на сервер уходит только после
// дословного подтверждения фразой: несовпадение отсекается локально.
func (c *Client) DeleteAccount(ctx context.Context, password, confirmation string) error {
	gate := confirm.Gate{Phrase: confirm.DeletePhrase}
	if !gate.Confirm(confirmation) {
		return fmt.Errorf("api: %w", confirm.ErrNotConfirmed)
	}

	body := map[string]string{"password": password, "confirmation": confirmation}
	return c.delete(ctx, "/users/profile", body)
}

// ListUsers возвращает всех пользователей. Только администратор.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser возвращает пользователя по ID. Только администратор.
func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/users/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleUserSuspension переключает блокировку. Только администратор.
func (c *Client) ToggleUserSuspension(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out models.User
	if err := c.patch(ctx, "/users/"+id.String()+"/suspend", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleUserRole переключает роль USER/ADMINISTRATOR. Только администратор.
func (c *Client) ToggleUserRole(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out models.User
	if err := c.patch(ctx, "/users/"+id.String()+"/role", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetUserPassword сбрасывает пароль пользователю. Только администратор.
func (c *Client) ResetUserPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	return c.post(ctx, "/users/"+id.String()+"/reset-password", body, nil)
}

// DeleteUser удаляет пользователя. Только администратор.
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/users/"+id.String(), nil)
}
