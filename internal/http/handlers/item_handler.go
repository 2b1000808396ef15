package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recyconnect/backend/internal/http/handlers/common"
	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/service"
)

// ItemHandler предоставляет HTTP слой каталога объявлений.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler создаёт хэндлер.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// itemRequest — общее тело для создания и обновления объявления.
type itemRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Category       string   `json:"category" binding:"required"`
	Condition      string   `json:"condition" binding:"required"`
	UsageTime      *int     `json:"usageTime"`
	UsageTimeUnit  *string  `json:"usageTimeUnit"`
	Warranty       *string  `json:"warranty"`
	OriginalPrice  *float64 `json:"originalPrice"`
	AskingPrice    *float64 `json:"askingPrice"`
	Quantity       *int     `json:"quantity"`
	PickupLocation string   `json:"pickupLocation" binding:"required"`
	Delivery       *string  `json:"delivery"`
	Color          *string  `json:"color"`
	Material       *string  `json:"material"`
}

func (r *itemRequest) toModel() *models.Item {
	return &models.Item{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		Condition:      r.Condition,
		UsageTime:      r.UsageTime,
		UsageTimeUnit:  r.UsageTimeUnit,
		Warranty:       r.Warranty,
		OriginalPrice:  r.OriginalPrice,
		AskingPrice:    r.AskingPrice,
		Quantity:       r.Quantity,
		PickupLocation: r.PickupLocation,
		Delivery:       r.Delivery,
		Color:          r.Color,
		Material:       r.Material,
	}
}

// Create обрабатывает POST /api/items.
func (h *ItemHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req itemRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item := req.toModel()
	item.OwnerID = userID

	if err := h.items.Create(c.Request.Context(), item); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	common.RespondJSON(c, http.StatusCreated, item)
}

// List обрабатывает GET /api/items.
func (h *ItemHandler) List(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	filter := repository.ItemFilter{
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		Limit:     limit,
		Offset:    offset,
	}
	if v := c.Query("verified"); v == "true" {
		verified := true
		filter.Verified = &verified
	}

	items, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, items)
}

// Get обрабатывает GET /api/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, item)
}

// ListByUser обрабатывает GET /api/items/user/:userId.
func (h *ItemHandler) ListByUser(c *gin.Context) {
	ownerID, err := common.ParseUUIDParam(c, "userId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	items, err := h.items.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, items)
}

// Update обрабатывает PUT /api/items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
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

	var req itemRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item := req.toModel()
	item.ID = id

	updated, err := h.items.Update(c.Request.Context(), userID, common.IsAdmin(c), item)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, updated)
}

// Verify обрабатывает PATCH /api/items/:id/verify. Только администратор.
func (h *ItemHandler) Verify(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}

	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.items.SetVerified(c.Request.Context(), id, *req.Verified); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "статус проверки обновлён", nil)
}

// Delete обрабатывает DELETE /api/items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
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

	if err := h.items.Delete(c.Request.Context(), userID, common.IsAdmin(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "объявление удалено", nil)
}
