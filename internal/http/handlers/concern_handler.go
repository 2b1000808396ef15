package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recyconnect/backend/internal/http/handlers/common"
	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/service"
)

// ConcernHandler предоставляет HTTP слой обращений к модерации.
type ConcernHandler struct {
	concerns *service.ConcernService
}

// NewConcernHandler создаёт хэндлер.
func NewConcernHandler(concerns *service.ConcernService) *ConcernHandler {
	return &ConcernHandler{concerns: concerns}
}

// Create обрабатывает POST /api/concerns.
func (h *ConcernHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req struct {
		ConcernType    string  `json:"concernType" binding:"required"`
		UserInQuestion *string `json:"userInQuestion"`
		ItemInvolved   *string `json:"itemInvolved"`
		Description    string  `json:"description" binding:"required"`
		Urgency        string  `json:"urgency"`
		ContactMethod  *string `json:"contactMethod"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	concern := &models.UserConcern{
		ReporterID:     userID,
		ConcernType:    req.ConcernType,
		UserInQuestion: req.UserInQuestion,
		ItemInvolved:   req.ItemInvolved,
		Description:    req.Description,
		Urgency:        req.Urgency,
		ContactMethod:  req.ContactMethod,
	}

	if err := h.concerns.Create(c.Request.Context(), concern); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	common.RespondJSON(c, http.StatusCreated, concern)
}

// List обрабатывает GET /api/concerns. Только администратор.
func (h *ConcernHandler) List(c *gin.Context) {
	concerns, err := h.concerns.List(c.Request.Context(), repository.ConcernFilter{
		Status:  c.Query("status"),
		Urgency: c.Query("urgency"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, concerns)
}

// ListMine обрабатывает GET /api/concerns/my-concerns.
func (h *ConcernHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	concerns, err := h.concerns.ListByReporter(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, concerns)
}

// Get обрабатывает GET /api/concerns/:id.
func (h *ConcernHandler) Get(c *gin.Context) {
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

	concern, err := h.concerns.Get(c.Request.Context(), userID, common.IsAdmin(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, concern)
}

// UpdateStatus обрабатывает PATCH /api/concerns/:id. Только администратор.
func (h *ConcernHandler) UpdateStatus(c *gin.Context) {
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
		Status        string     `json:"status" binding:"required"`
		AdminResponse *string    `json:"adminResponse"`
		AssignedTo    *uuid.UUID `json:"assignedTo"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	concern, err := h.concerns.UpdateStatus(c.Request.Context(), adminID, id, service.UpdateConcernInput{
		Status:        req.Status,
		AdminResponse: req.AdminResponse,
		AssignedTo:    req.AssignedTo,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, concern)
}

// Delete обрабатывает DELETE /api/concerns/:id.
func (h *ConcernHandler) Delete(c *gin.Context) {
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

	if err := h.concerns.Delete(c.Request.Context(), userID, common.IsAdmin(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "обращение удалено", nil)
}
