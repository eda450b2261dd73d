package apiHttp

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/viettour/backend/pkg/limiter"
	"github.com/viettour/backend/pkg/logger"
	"github.com/viettour/backend/pkg/validator"

	internalV1 "github.com/viettour/backend/internal/api/http/internal/v1"
	"github.com/viettour/backend/internal/config"
	"github.com/viettour/backend/internal/service"
	"github.com/viettour/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Services
	config   *config.Config
	storage  storage.ObjectStorage
}

func NewHandlers(services *service.Services, cfg *config.Config, objectStorage storage.ObjectStorage) *Handler {
	return &Handler{
		services: services,
		config:   cfg,
		storage:  objectStorage,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware,
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	if cfg.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.config, h.storage)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
