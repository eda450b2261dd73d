package v1

import (
	"github.com/viettour/backend/internal/config"
	"github.com/viettour/backend/internal/service"
	"github.com/viettour/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Tour Catalog API
// @version 1.0
// @description Backend for the tour catalog and its admin editor

// @BasePath /api/v1

type Handler struct {
	services *service.Services
	config   *config.Config
	storage  storage.ObjectStorage
}

func NewHandler(
	services *service.Services,
	config *config.Config,
	objectStorage storage.ObjectStorage,
) *Handler {
	return &Handler{
		services: services,
		config:   config,
		storage:  objectStorage,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initRegionsRoutes(v1)
	h.initToursRoutes(v1)
	h.initAdminRoutes(v1)
}
