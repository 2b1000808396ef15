package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recyconnect/backend/internal/dto"
	"github.com/recyconnect/backend/internal/http/handlers/common"
	"github.com/recyconnect/backend/internal/service"
)

// UserHandler предоставляет HTTP слой для аккаунтов и панели администратора.
type UserHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUserHandler создаёт хэндлер.
func NewUserHandler(auth *service.AuthService, users *service.UserService) *UserHandler {
	return &UserHandler{auth: auth, users: users}
}

func requestMeta(c *gin.Context) map[string]string {
	return map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}
}

// Register обрабатывает POST /api/users.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email     string  `json:"email" binding:"required"`
		Password  string  `json:"password" binding:"required"`
		Name      string  `json:"name" binding:"required"`
		Phone     *string `json:"phone"`
		CollegeID string  `json:"collegeId" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Phone:     req.Phone,
		CollegeID: req.CollegeID,
	}, requestMeta(c))
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	common.RespondJSON(c, http.StatusCreated, dto.NewAuthResponse(result.User, result.TokenPair))
}

// Login обрабатывает POST /api/users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, requestMeta(c))
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewAuthResponse(result.User, result.TokenPair))
}

// Refresh обрабатывает POST /api/users/refresh.
func (h *UserHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, requestMeta(c))
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewAuthResponse(nil, pair))
}

// Logout обрабатывает POST /api/users/logout.
func (h *UserHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "сессия завершена", nil)
}

// GetProfile обрабатывает GET /api/users/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	user, err := h.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, user)
}

// UpdateProfile обрабатывает PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req struct {
		Name  string  `json:"name" binding:"required"`
		Phone *string `json:"phone"`
		Bio   *string `json:"bio"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
		Bio:   req.Bio,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, user)
}

// ChangePassword обрабатывает PUT /api/users/change-password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	common.RespondSuccess(c, http.StatusOK, "пароль изменён, войдите заново", nil)
}

// DeleteAccount обрабатывает DELETE /api/users/profile.
// Требует пароль и дословное подтверждение фразой DELETE.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req struct {
		Password     string `json:"password" binding:"required"`
		Confirmation string `json:"confirmation" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.auth.DeleteAccount(c.Request.Context(), userID, service.DeleteAccountInput{
		Password:     req.Password,
		Confirmation: req.Confirmation,
	}); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	common.RespondSuccess(c, http.StatusOK, "аккаунт удалён", nil)
}

// List обрабатывает GET /api/users. Только администратор.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, users)
}

// Get обрабатывает GET /api/users/:id. Только администратор.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, user)
}

// ToggleSuspension обрабатывает PATCH /api/users/:id/suspend. Только администратор.
func (h *UserHandler) ToggleSuspension(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.users.ToggleSuspension(c.Request.Context(), adminID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, user)
}

// ToggleRole обрабатывает PATCH /api/users/:id/role. Только администратор.
func (h *UserHandler) ToggleRole(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.users.ToggleRole(c.Request.Context(), adminID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, user)
}

// AdminUpdate обрабатывает PUT /api/users/:id. Только администратор.
// Тело запроса содержит ровно одно из полей: status, role или newPassword.
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Status      *string `json:"status"`
		Role        *string `json:"role"`
		NewPassword *string `json:"newPassword"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	switch {
	case req.NewPassword != nil:
		if err := h.users.ResetPassword(c.Request.Context(), id, *req.NewPassword); err != nil {
			_ = c.Error(err)
			return
		}
		common.RespondSuccess(c, http.StatusOK, "пароль сброшен", nil)
	case req.Status != nil:
		user, err := h.users.ToggleSuspension(c.Request.Context(), adminID, id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		common.RespondJSON(c, http.StatusOK, user)
	case req.Role != nil:
		user, err := h.users.ToggleRole(c.Request.Context(), adminID, id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		common.RespondJSON(c, http.StatusOK, user)
	default:
		common.RespondBadRequest(c, "укажите status, role или newPassword")
	}
}

// ResetPassword обрабатывает POST /api/users/:id/reset-password. Только администратор.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		NewPassword string `json:"newPassword" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "пароль сброшен", nil)
}

// Delete обрабатывает DELETE /api/users/:id. Только администратор.
func (h *UserHandler) Delete(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.users.Delete(c.Request.Context(), adminID, id); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "пользователь удалён", nil)
}
