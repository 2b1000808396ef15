package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recyconnect/backend/internal/dto"
	"github.com/recyconnect/backend/internal/http/handlers/common"
	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/service"
)

// DonatedItemHandler предоставляет HTTP слой пожертвованных вещей.
type DonatedItemHandler struct {
	donations *service.DonationService
}

// NewDonatedItemHandler создаёт хэндлер.
func NewDonatedItemHandler(donations *service.DonationService) *DonatedItemHandler {
	return &DonatedItemHandler{donations: donations}
}

type donatedItemRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Category       string   `json:"category" binding:"required"`
	Condition      string   `json:"condition" binding:"required"`
	EstimatedValue *float64 `json:"estimatedValue"`
	PickupLocation string   `json:"pickupLocation" binding:"required"`
}

// Create обрабатывает POST /api/donated-items.
func (h *DonatedItemHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req donatedItemRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item := &models.DonatedItem{
		DonorID:        userID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Condition:      req.Condition,
		EstimatedValue: req.EstimatedValue,
		PickupLocation: req.PickupLocation,
	}

	if err := h.donations.Create(c.Request.Context(), item); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	common.RespondJSON(c, http.StatusCreated, dto.NewDonatedItemResponse(item))
}

// List обрабатывает GET /api/donated-items.
func (h *DonatedItemHandler) List(c *gin.Context) {
	items, err := h.donations.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Фильтрация по производному статусу
	if status := c.Query("status"); status != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.Status() == status {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	common.RespondJSON(c, http.StatusOK, dto.NewDonatedItemList(items))
}

// ListMine обрабатывает GET /api/donated-items/user.
func (h *DonatedItemHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	items, err := h.donations.ListByDonor(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewDonatedItemList(items))
}

// Get обрабатывает GET /api/donated-items/:id.
func (h *DonatedItemHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.donations.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewDonatedItemResponse(item))
}

// Update обрабатывает PUT /api/donated-items/:id.
func (h *DonatedItemHandler) Update(c *gin.Context) {
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

	var req donatedItemRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item := &models.DonatedItem{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Condition:      req.Condition,
		EstimatedValue: req.EstimatedValue,
		PickupLocation: req.PickupLocation,
	}

	updated, err := h.donations.Update(c.Request.Context(), userID, common.IsAdmin(c), item)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewDonatedItemResponse(updated))
}

// Claim обрабатывает PATCH /api/donated-items/:id/claim.
func (h *DonatedItemHandler) Claim(c *gin.Context) {
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

	item, err := h.donations.Claim(c.Request.Context(), userID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewDonatedItemResponse(item))
}

// Complete обрабатывает PATCH /api/donated-items/:id/complete.
func (h *DonatedItemHandler) Complete(c *gin.Context) {
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

	item, err := h.donations.Complete(c.Request.Context(), userID, common.IsAdmin(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewDonatedItemResponse(item))
}

// Revert обрабатывает PATCH /api/donated-items/:id/revert. Только администратор.
func (h *DonatedItemHandler) Revert(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.donations.Revert(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.NewDonatedItemResponse(item))
}

// Delete обрабатывает DELETE /api/donated-items/:id.
func (h *DonatedItemHandler) Delete(c *gin.Context) {
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

	if err := h.donations.Delete(c.Request.Context(), userID, common.IsAdmin(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "вещь удалена", nil)
}
