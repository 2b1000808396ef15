package dto

import (
	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/service"
)

// ErrorResponse — стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse — стандартный успешный ответ.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse — ответ на регистрацию, вход и обновление токена.
type AuthResponse struct {
	User         *models.User `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"`
}

// NewAuthResponse собирает ответ авторизации из результата сервиса.
func NewAuthResponse(user *models.User, pair *service.TokenPair) *AuthResponse {
	return &AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}
}

// DonatedItemResponse — пожертвованная вещь с производным статусом.
// Статус не хранится в БД, поэтому проставляется при отдаче.
type DonatedItemResponse struct {
	*models.DonatedItem
	Status string `json:"status"`
}

// NewDonatedItemResponse оборачивает вещь с её текущим статусом.
func NewDonatedItemResponse(item *models.DonatedItem) *DonatedItemResponse {
	return &DonatedItemResponse{
		DonatedItem: item,
		Status:      item.Status(),
	}
}

// NewDonatedItemList оборачивает срез вещей.
func NewDonatedItemList(items []models.DonatedItem) []*DonatedItemResponse {
	out := make([]*DonatedItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewDonatedItemResponse(&items[i]))
	}
	return out
}

// FlagCountResponse — счётчик жалоб на цель.
type FlagCountResponse struct {
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	Count      int    `json:"count"`
}

// UnreadCountResponse — счётчик непрочитанных сообщений.
type UnreadCountResponse struct {
	Count int `json:"count"`
}
