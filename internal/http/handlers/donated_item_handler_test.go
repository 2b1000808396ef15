package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/recyconnect/backend/internal/http/middleware"
)

func TestDonatedItemHandler_Claim_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &DonatedItemHandler{donations: nil}
	r.PATCH("/donated-items/:id/claim", handler.Claim)

	itemID := uuid.New()
	req, _ := http.NewRequest("PATCH", "/donated-items/"+itemID.String()+"/claim", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDonatedItemHandler_Claim_InvalidID_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Next()
	})
	handler := &DonatedItemHandler{donations: nil}
	r.PATCH("/donated-items/:id/claim", handler.Claim)

	// С авторизацией, но невалидный UUID
	req, _ := http.NewRequest("PATCH", "/donated-items/invalid-uuid/claim", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDonatedItemHandler_Create_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &DonatedItemHandler{donations: nil}
	r.POST("/donated-items", handler.Create)

	req, _ := http.NewRequest("POST", "/donated-items", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMessageHandler_Send_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &MessageHandler{messages: nil}
	r.POST("/messages", handler.Send)

	req, _ := http.NewRequest("POST", "/messages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMessageHandler_MarkAsRead_InvalidID_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Next()
	})
	handler := &MessageHandler{messages: nil}
	r.PATCH("/messages/:id/read", handler.MarkAsRead)

	req, _ := http.NewRequest("PATCH", "/messages/not-a-uuid/read", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
