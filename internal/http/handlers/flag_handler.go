package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/dto"
	"github.com/recyconnect/backend/internal/http/handlers/common"
	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/service"
)

// FlagHandler предоставляет HTTP слой флагов модерации.
type FlagHandler struct {
	flags *service.FlagService
}

// NewFlagHandler создаёт хэндлер.
func NewFlagHandler(flags *service.FlagService) *FlagHandler {
	return &FlagHandler{flags: flags}
}

// Create обрабатывает POST /api/flags.
func (h *FlagHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req struct {
		TargetType  string    `json:"targetType" binding:"required"`
		TargetID    uuid.UUID `json:"targetId" binding:"required"`
		Reason      string    `json:"reason" binding:"required"`
		Description *string   `json:"description"`
		Severity    *string   `json:"severity"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	flag := &models.Flag{
		FlaggedByID: userID,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
		Severity:    req.Severity,
	}

	if err := h.flags.Create(c.Request.Context(), flag); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, flag)
}

// List обрабатывает GET /api/flags. Только администратор.
func (h *FlagHandler) List(c *gin.Context) {
	flags, err := h.flags.List(c.Request.Context(), repository.FlagFilter{
		Status:     c.Query("status"),
		TargetType: c.Query("targetType"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, flags)
}

// ListByUser обрабатывает GET /api/flags/user/:userId.
func (h *FlagHandler) ListByUser(c *gin.Context) {
	actorID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	userID, err := common.ParseUUIDParam(c, "userId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	// Свои жалобы видит каждый, чужие — только администратор
	if actorID != userID && !common.IsAdmin(c) {
		common.RespondForbidden(c, "")
		return
	}

	flags, err := h.flags.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, flags)
}

// ListByTarget обрабатывает GET /api/flags/target/:type/:id. Только администратор.
func (h *FlagHandler) ListByTarget(c *gin.Context) {
	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	flags, err := h.flags.ListByTarget(c.Request.Context(), c.Param("type"), targetID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, flags)
}

// CountByTarget обрабатывает GET /api/flags/count/:type/:id.
func (h *FlagHandler) CountByTarget(c *gin.Context) {
	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	targetType := c.Param("type")
	count, err := h.flags.CountByTarget(c.Request.Context(), targetType, targetID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FlagCountResponse{
		TargetType: targetType,
		TargetID:   targetID.String(),
		Count:      count,
	})
}

// UpdateStatus обрабатывает PATCH /api/flags/:id. Только администратор.
func (h *FlagHandler) UpdateStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Status     string  `json:"status" binding:"required"`
		AdminNotes *string `json:"adminNotes"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	flag, err := h.flags.UpdateStatus(c.Request.Context(), id, service.UpdateFlagInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, flag)
}

// Delete обрабатывает DELETE /api/flags/:id.
func (h *FlagHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.flags.Delete(c.Request.Context(), userID, common.IsAdmin(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "жалоба удалена", nil)
}
