package v1

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/viettour/backend/internal/domain"
	"github.com/viettour/backend/internal/service"
	"github.com/viettour/backend/pkg/logger"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	{
		tours := admin.Group("/tours")
		{
			tours.POST("", h.adminCreateTour)
			tours.PUT("/:id", h.adminUpdateTour)
			tours.DELETE("/:id", h.adminDeleteTour)
			tours.GET("/:id/form", h.adminTourForm)
		}

		admin.GET("/backup", h.adminExportTours)
		admin.POST("/backup", h.adminImportTours)
		admin.POST("/seed", h.adminSeedTour)
		admin.POST("/reset", h.adminResetTours)
		admin.POST("/uploads", h.adminUpload)
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

type importResponse struct {
	Imported bool `json:"imported"`
}

// @Summary Create Tour
// @Tags Admin
// @Description Создать запись каталога из значений формы редактора
// @ModuleID adminCreateTour
// @Accept  json
// @Produce  json
// @Param input body service.TourForm true "Значения формы"
// @Success 201 {object} tourResponse
// @Failure 400 {object} ValidationErrorStruct
// @Router /admin/tours [post]
func (h *Handler) adminCreateTour(c *gin.Context) {
	var form service.TourForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errorResponse(c, http.StatusBadRequest, UnknownErrorCode)
		return
	}
	form.ID = ""

	tour, err := h.services.Tours.Save(c.Request.Context(), form)
	if err != nil {
		if validationErrorResponse(c, err) {
			return
		}
		logger.Error("tour create failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}
	c.JSON(http.StatusCreated, toTourResponse(tour))
}

// @Summary Update Tour
// @Tags Admin
// @Description Перезаписать существующую запись каталога; createdAt сохраняется
// @ModuleID adminUpdateTour
// @Accept  json
// @Produce  json
// @Param id path string true "ID тура"
// @Param input body service.TourForm true "Значения формы"
// @Success 200 {object} tourResponse
// @Failure 400 {object} ValidationErrorStruct
// @Router /admin/tours/{id} [put]
func (h *Handler) adminUpdateTour(c *gin.Context) {
	var form service.TourForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errorResponse(c, http.StatusBadRequest, UnknownErrorCode)
		return
	}
	form.ID = c.Param("id")

	tour, err := h.services.Tours.Save(c.Request.Context(), form)
	if err != nil {
		if validationErrorResponse(c, err) {
			return
		}
		logger.Error("tour update failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}
	c.JSON(http.StatusOK, toTourResponse(tour))
}

// @Summary Delete Tour
// @Tags Admin
// @Description Удалить запись каталога; повторный вызов тоже успешен
// @ModuleID adminDeleteTour
// @Param id path string true "ID тура"
// @Success 204
// @Router /admin/tours/{id} [delete]
func (h *Handler) adminDeleteTour(c *gin.Context) {
	h.services.Tours.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// @Summary Get Tour Edit Form
// @Tags Admin
// @Description Значения формы редактора для существующей записи
// @ModuleID adminTourForm
// @Produce  json
// @Param id path string true "ID тура"
// @Success 200 {object} service.TourForm
// @Failure 404 {object} ErrorStruct
// @Router /admin/tours/{id}/form [get]
func (h *Handler) adminTourForm(c *gin.Context) {
	form, err := h.services.Tours.EditForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, TourNotFoundCode)
			return
		}
		logger.Error("tour form load failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}
	c.JSON(http.StatusOK, form)
}

// @Summary Export Tours
// @Tags Admin
// @Description Скачать весь каталог одним JSON-файлом
// @ModuleID adminExportTours
// @Produce  json
// @Success 200 {string} string "JSON-массив записей каталога"
// @Failure 500 {object} ErrorStruct
// @Router /admin/backup [get]
func (h *Handler) adminExportTours(c *gin.Context) {
	data, err := h.services.Tours.Export(c.Request.Context())
	if err != nil {
		logger.Error("tour export failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, ExportFailedCode)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="tours-backup.json"`)
	c.Data(http.StatusOK, "application/json", []byte(data))
}

// @Summary Import Tours
// @Tags Admin
// @Description Заменить весь каталог содержимым ранее экспортированного JSON-файла
// @ModuleID adminImportTours
// @Accept  json
// @Produce  json
// @Success 200 {object} importResponse
// @Failure 400 {object} ErrorStruct
// @Router /admin/backup [post]
func (h *Handler) adminImportTours(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, ImportRejectedCode)
		return
	}
	if !h.services.Tours.Import(c.Request.Context(), string(body)) {
		errorResponse(c, http.StatusBadRequest, ImportRejectedCode)
		return
	}
	c.JSON(http.StatusOK, importResponse{Imported: true})
}

// @Summary Seed Sample Tour
// @Tags Admin
// @Description Создать один редактируемый тур-образец
// @ModuleID adminSeedTour
// @Produce  json
// @Success 201 {object} tourResponse
// @Failure 500 {object} ErrorStruct
// @Router /admin/seed [post]
func (h *Handler) adminSeedTour(c *gin.Context) {
	tour, err := h.services.Tours.Seed(c.Request.Context())
	if err != nil {
		logger.Error("tour seed failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}
	c.JSON(http.StatusCreated, toTourResponse(tour))
}

// @Summary Reset Catalog
// @Tags Admin
// @Description Очистить оба бэкенда записей, включая устаревший локальный ключ
// @ModuleID adminResetTours
// @Success 204
// @Router /admin/reset [post]
func (h *Handler) adminResetTours(c *gin.Context) {
	h.services.Tours.Reset(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// @Summary Upload Image
// @Tags Admin
// @Description Загрузить изображение тура в объектное хранилище и получить публичный URL
// @ModuleID adminUpload
// @Accept  mpfd
// @Produce  json
// @Param file formData file true "Файл изображения"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} ErrorStruct
// @Failure 503 {object} ErrorStruct
// @Router /admin/uploads [post]
func (h *Handler) adminUpload(c *gin.Context) {
	if h.storage == nil {
		errorResponse(c, http.StatusServiceUnavailable, StorageUnavailableCode)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, UploadFileMissingCode)
		return
	}
	if fileHeader.Size > h.config.OSS.MaxUploadSize {
		errorResponse(c, http.StatusBadRequest, UploadTooLargeCode)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("upload open failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}
	defer file.Close()

	objectKey := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	url, err := h.storage.Upload(c.Request.Context(), objectKey, file, fileHeader.Size, func(percent int) {
		logger.Debug("upload progress",
			zap.String("object_key", objectKey),
			zap.Int("percent", percent),
		)
	})
	if err != nil {
		logger.Error("upload failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
		return
	}

	c.JSON(http.StatusCreated, uploadResponse{URL: url})
}
