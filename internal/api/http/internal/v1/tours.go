package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viettour/backend/internal/domain"
	"github.com/viettour/backend/internal/service"
	"github.com/viettour/backend/pkg/itinerary"
)

func (h *Handler) initRegionsRoutes(api *gin.RouterGroup) {
	api.GET("/regions", h.getRegions)
}

func (h *Handler) initToursRoutes(api *gin.RouterGroup) {
	tours := api.Group("/tours")
	{
		tours.GET("", h.getToursList)
		tours.GET("/:slug", h.getTourBySlug)
		tours.GET("/:slug/itinerary", h.getTourItinerary)
	}
}

type regionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type tourResponse struct {
	ID               string                `json:"id"`
	Slug             string                `json:"slug"`
	Title            string                `json:"title"`
	Region           string                `json:"region"`
	RegionName       string                `json:"region_name"`
	Image            string                `json:"image"`
	Price            string                `json:"price,omitempty"`
	Duration         string                `json:"duration"`
	Transport        string                `json:"transport"`
	Gallery          []string              `json:"gallery"`
	Itinerary        []domain.ItineraryStep `json:"itinerary"`
	IncludedServices []string              `json:"included_services"`
	ExcludedServices []string              `json:"excluded_services"`
	Policies         []string              `json:"policies"`
	CreatedAt        string                `json:"created_at"`
	UpdatedAt        string                `json:"updated_at"`
}

type toursListResponse struct {
	Tours []tourResponse `json:"tours"`
	Total int            `json:"total"`
}

type itineraryResponse struct {
	Blocks []itinerary.Block `json:"blocks"`
}

func toTourResponse(tour *domain.Tour) tourResponse {
	steps := tour.Itinerary
	if steps == nil {
		steps = domain.ItinerarySteps{}
	}
	return tourResponse{
		ID:               tour.ID,
		Slug:             tour.Slug,
		Title:            tour.Title,
		Region:           string(tour.Region),
		RegionName:       tour.Region.DisplayName(),
		Image:            tour.Image,
		Price:            tour.Price,
		Duration:         tour.Duration,
		Transport:        tour.Transport,
		Gallery:          tour.DisplayGallery(),
		Itinerary:        steps,
		IncludedServices: tour.IncludedServices,
		ExcludedServices: tour.ExcludedServices,
		Policies:         tour.Policies,
		CreatedAt:        tour.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        tour.UpdatedAt.Format(time.RFC3339),
	}
}

// @Summary Get Regions
// @Tags Tours
// @Description Список четырёх фиксированных регионов каталога
// @ModuleID getRegions
// @Produce  json
// @Success 200 {array} regionResponse
// @Router /regions [get]
func (h *Handler) getRegions(c *gin.Context) {
	regions := domain.Regions()
	out := make([]regionResponse, len(regions))
	for i, r := range regions {
		out[i] = regionResponse{ID: string(r), Name: r.DisplayName()}
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get Tours List
// @Tags Tours
// @Description Текущий снимок каталога, опционально отфильтрованный по региону
// @ModuleID getToursList
// @Produce  json
// @Param region query string false "ID региона для фильтрации"
// @Success 200 {object} toursListResponse
// @Router /tours [get]
func (h *Handler) getToursList(c *gin.Context) {
	if h.services.Catalog.State() == service.CatalogUninitialized {
		h.services.Catalog.Refresh(c.Request.Context())
	}

	var tours []domain.Tour
	if region := c.Query("region"); region != "" {
		tours = h.services.Catalog.ToursByRegion(domain.Region(region))
	} else {
		tours = h.services.Catalog.Tours()
	}

	out := make([]tourResponse, len(tours))
	for i := range tours {
		out[i] = toTourResponse(&tours[i])
	}
	c.JSON(http.StatusOK, toursListResponse{Tours: out, Total: len(out)})
}

// @Summary Get Tour By Slug
// @Tags Tours
// @Description Одна запись каталога по её slug; первая подходящая при дубликатах
// @ModuleID getTourBySlug
// @Produce  json
// @Param slug path string true "Slug тура"
// @Success 200 {object} tourResponse
// @Failure 404 {object} ErrorStruct
// @Router /tours/{slug} [get]
func (h *Handler) getTourBySlug(c *gin.Context) {
	if h.services.Catalog.State() == service.CatalogUninitialized {
		h.services.Catalog.Refresh(c.Request.Context())
	}

	tour, err := h.services.Catalog.TourBySlug(c.Param("slug"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, TourNotFoundCode)
		return
	}
	c.JSON(http.StatusOK, toTourResponse(tour))
}

// @Summary Get Tour Itinerary Blocks
// @Tags Tours
// @Description План тура, отрендеренный в блоки отображения (текст, картинки, отступы)
// @ModuleID getTourItinerary
// @Produce  json
// @Param slug path string true "Slug тура"
// @Success 200 {object} itineraryResponse
// @Failure 404 {object} ErrorStruct
// @Router /tours/{slug}/itinerary [get]
func (h *Handler) getTourItinerary(c *gin.Context) {
	if h.services.Catalog.State() == service.CatalogUninitialized {
		h.services.Catalog.Refresh(c.Request.Context())
	}

	tour, err := h.services.Catalog.TourBySlug(c.Param("slug"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, TourNotFoundCode)
		return
	}

	blocks := h.services.Tours.RenderItinerary(tour)
	if blocks == nil {
		blocks = []itinerary.Block{}
	}
	c.JSON(http.StatusOK, itineraryResponse{Blocks: blocks})
}
