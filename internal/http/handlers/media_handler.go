package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/recyconnect/backend/internal/http/handlers/common"
	"github.com/recyconnect/backend/internal/models"
	"github.com/recyconnect/backend/internal/service"
	"github.com/recyconnect/backend/internal/storage"
)

// Разрешённые типы изображений для объявлений
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler управляет изображениями объявлений.
type MediaHandler struct {
	items   *service.ItemService
	storage *storage.PhotoStorage
}

// NewMediaHandler создаёт хэндлер.
func NewMediaHandler(items *service.ItemService, storage *storage.PhotoStorage) *MediaHandler {
	return &MediaHandler{items: items, storage: storage}
}

// Upload обрабатывает POST /api/items/:id/images.
// Файл проверяется по магическим байтам, а не только по расширению.
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	itemID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}
	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		common.RespondBadRequest(c, "неподдерживаемый формат файла, разрешены jpg, jpeg, png, gif, webp")
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondInternalError(c, "")
		return
	}
	defer src.Close()

	// Магические байты определяют реальный тип файла
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		common.RespondBadRequest(c, "разрешены только изображения jpg, png, gif, webp")
		return
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		common.RespondInternalError(c, "")
		return
	}

	relativePath, size, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	img := &models.ItemImage{
		ItemID:    itemID,
		FileName:  filepath.Base(file.Filename),
		FilePath:  relativePath,
		FileSize:  size,
		FileType:  kind.MIME.Value,
		IsPrimary: c.PostForm("isPrimary") == "true",
	}

	if err := h.items.AttachImage(c.Request.Context(), userID, img); err != nil {
		// Запись в БД не удалась, файл на диске больше не нужен
		_ = h.storage.Delete(c.Request.Context(), relativePath)
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, img)
}

// Serve обрабатывает GET /api/images/:imageId.
func (h *MediaHandler) Serve(c *gin.Context) {
	imageID, err := common.ParseUUIDParam(c, "imageId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	img, err := h.items.GetImage(c.Request.Context(), imageID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	f, err := h.storage.Open(c.Request.Context(), img.FilePath)
	if err != nil {
		common.RespondNotFound(c, "файл изображения не найден")
		return
	}
	defer f.Close()

	c.Header("Content-Type", img.FileType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", img.FileName))
	_, _ = io.Copy(c.Writer, f)
}

// Delete обрабатывает DELETE /api/images/:imageId.
func (h *MediaHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	imageID, err := common.ParseUUIDParam(c, "imageId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	img, err := h.items.DeleteImage(c.Request.Context(), userID, common.IsAdmin(c), imageID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.storage.Delete(c.Request.Context(), img.FilePath); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "изображение удалено", nil)
}
