package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recyconnect/backend/internal/http/handlers/common"
	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/service"
)

// ReportedItemHandler предоставляет HTTP слой бюро находок.
type ReportedItemHandler struct {
	lostfound *service.LostFoundService
}

// NewReportedItemHandler создаёт хэндлер.
func NewReportedItemHandler(lostfound *service.LostFoundService) *ReportedItemHandler {
	return &ReportedItemHandler{lostfound: lostfound}
}

type reportedItemRequest struct {
	ItemType    string  `json:"itemType" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Color       *string `json:"color"`
	Brand       *string `json:"brand"`

	LocationLost *string `json:"locationLost"`
	DateLost     *string `json:"dateLost"`
	TimeLost     *string `json:"timeLost"`

	LocationFound   *string `json:"locationFound"`
	DateFound       *string `json:"dateFound"`
	TimeFound       *string `json:"timeFound"`
	CurrentLocation *string `json:"currentLocation"`

	ContactInfo string `json:"contactInfo" binding:"required"`
}

func (r *reportedItemRequest) toModel() *models.ReportedItem {
	return &models.ReportedItem{
		ItemType:        r.ItemType,
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Color:           r.Color,
		Brand:           r.Brand,
		LocationLost:    r.LocationLost,
		DateLost:        r.DateLost,
		TimeLost:        r.TimeLost,
		LocationFound:   r.LocationFound,
		DateFound:       r.DateFound,
		TimeFound:       r.TimeFound,
		CurrentLocation: r.CurrentLocation,
		ContactInfo:     r.ContactInfo,
	}
}

// Create обрабатывает POST /api/reported.
func (h *ReportedItemHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req reportedItemRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item := req.toModel()
	item.ReporterID = userID

	if err := h.lostfound.Create(c.Request.Context(), item); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	common.RespondJSON(c, http.StatusCreated, item)
}

// List обрабатывает GET /api/reported.
func (h *ReportedItemHandler) List(c *gin.Context) {
	items, err := h.lostfound.List(c.Request.Context(), repository.ReportedItemFilter{
		ItemType: c.Query("type"),
		Status:   c.Query("status"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, items)
}

// ListMine обрабатывает GET /api/reported/my-reported.
func (h *ReportedItemHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	items, err := h.lostfound.ListByReporter(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, items)
}

// Get обрабатывает GET /api/reported/:id.
func (h *ReportedItemHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.lostfound.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, item)
}

// Update обрабатывает PUT /api/reported/:id.
func (h *ReportedItemHandler) Update(c *gin.Context) {
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

	var req reportedItemRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item := req.toModel()
	item.ID = id

	updated, err := h.lostfound.Update(c.Request.Context(), userID, common.IsAdmin(c), item)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, updated)
}

// UpdateStatus обрабатывает PATCH /api/reported/:id.
func (h *ReportedItemHandler) UpdateStatus(c *gin.Context) {
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

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.lostfound.UpdateStatus(c.Request.Context(), userID, common.IsAdmin(c), id, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, item)
}

// Delete обрабатывает DELETE /api/reported/:id.
func (h *ReportedItemHandler) Delete(c *gin.Context) {
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

	if err := h.lostfound.Delete(c.Request.Context(), userID, common.IsAdmin(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "запись удалена", nil)
}
