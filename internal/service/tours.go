package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/viettour/backend/internal/domain"
	"github.com/viettour/backend/internal/imagecache"
	"github.com/viettour/backend/internal/repository"
	"github.com/viettour/backend/pkg/itinerary"
	"github.com/viettour/backend/pkg/logger"
)

// TourForm carries the admin editor's raw field values. Multi-line fields
// (services, policies, gallery) arrive newline-joined exactly as typed into
// the textarea.
type TourForm struct {
	ID               string `json:"id,omitempty"`
	Title            string `json:"title" validate:"required"`
	Slug             string `json:"slug" validate:"required"`
	Region           string `json:"region" validate:"required"`
	Duration         string `json:"duration" validate:"required"`
	Transport        string `json:"transport" validate:"required"`
	Price            string `json:"price"`
	Image            string `json:"image" validate:"required"`
	Gallery          string `json:"gallery"`
	ItineraryText    string `json:"itineraryText" validate:"required"`
	IncludedServices string `json:"includedServices" validate:"required"`
	ExcludedServices string `json:"excludedServices" validate:"required"`
	Policies         string `json:"policies" validate:"required"`
}

// ValidationError reports every form field that failed, so the editor can
// mark all of them at once. No partial saves happen on validation failure.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

type tourService struct {
	store    *repository.Tours
	catalog  Catalog
	images   *imagecache.Cache
	validate *validator.Validate
}

func newTourService(store *repository.Tours, catalog Catalog, images *imagecache.Cache) *tourService {
	return &tourService{
		store:    store,
		catalog:  catalog,
		images:   images,
		validate: validator.New(),
	}
}

// Save validates the form, builds a well-formed record and dispatches create
// or update through the catalog. A new record gets a fresh id and createdAt;
// an edit keeps both and only bumps updatedAt.
func (s *tourService) Save(ctx context.Context, form TourForm) (*domain.Tour, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tour := &domain.Tour{
		ID:               form.ID,
		Slug:             strings.TrimSpace(form.Slug),
		Title:            strings.TrimSpace(form.Title),
		Region:           domain.Region(form.Region),
		Image:            strings.TrimSpace(form.Image),
		Price:            strings.TrimSpace(form.Price),
		Duration:         strings.TrimSpace(form.Duration),
		Transport:        strings.TrimSpace(form.Transport),
		Gallery:          splitLines(form.Gallery),
		ItineraryText:    form.ItineraryText,
		Itinerary:        itinerary.Decode(form.ItineraryText),
		IncludedServices: splitLines(form.IncludedServices),
		ExcludedServices: splitLines(form.ExcludedServices),
		Policies:         splitLines(form.Policies),
		PoliciesText:     form.Policies,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if tour.ID == "" {
		tour.ID = uuid.NewString()
		s.catalog.Add(ctx, tour)
		return tour, nil
	}

	if existing, err := s.store.GetByID(ctx, tour.ID); err == nil {
		tour.CreatedAt = existing.CreatedAt
	}
	s.catalog.Update(ctx, tour)
	return tour, nil
}

func (s *tourService) validateForm(form TourForm) error {
	var fields []string
	if err := s.validate.Struct(form); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			for _, ferr := range verr {
				fields = append(fields, fieldName(ferr.Field()))
			}
		} else {
			return fmt.Errorf("validate tour form: %w", err)
		}
	}
	if form.Region != "" && !domain.Region(form.Region).Valid() {
		fields = append(fields, "region")
	}
	if len(fields) > 0 {
		sort.Strings(fields)
		return &ValidationError{Fields: fields}
	}
	return nil
}

func fieldName(field string) string {
	return strings.ToLower(field[:1]) + field[1:]
}

func (s *tourService) Delete(ctx context.Context, id string) {
	s.catalog.Remove(ctx, id)
}

// EditForm reconstructs the editor's field values for an existing record.
// Records that predate the raw-text itinerary format get their text
// synthesized from the legacy structured steps.
func (s *tourService) EditForm(ctx context.Context, id string) (*TourForm, error) {
	tour, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	text := tour.ItineraryText
	if text == "" {
		text = itinerary.Encode(tour.Itinerary)
	}
	policies := tour.PoliciesText
	if policies == "" {
		policies = strings.Join(tour.Policies, "\n")
	}

	return &TourForm{
		ID:               tour.ID,
		Title:            tour.Title,
		Slug:             tour.Slug,
		Region:           string(tour.Region),
		Duration:         tour.Duration,
		Transport:        tour.Transport,
		Price:            tour.Price,
		Image:            tour.Image,
		Gallery:          strings.Join(tour.Gallery, "\n"),
		ItineraryText:    text,
		IncludedServices: strings.Join(tour.IncludedServices, "\n"),
		ExcludedServices: strings.Join(tour.ExcludedServices, "\n"),
		Policies:         policies,
	}, nil
}

func (s *tourService) Export(ctx context.Context) (string, error) {
	return s.store.ExportJSON(ctx)
}

func (s *tourService) Import(ctx context.Context, data string) bool {
	if !s.store.ImportJSON(ctx, data) {
		return false
	}
	s.catalog.Refresh(ctx)
	return true
}

// Reset clears both backends (including the legacy local key) and reloads
// the now-empty catalog.
func (s *tourService) Reset(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		logger.Error("store clear failed", zap.Error(err))
	}
	s.catalog.Refresh(ctx)
}

// RenderItinerary produces the display blocks for a tour's day plan,
// expanding short-key image references through the image cache first.
func (s *tourService) RenderItinerary(tour *domain.Tour) []itinerary.Block {
	text := tour.ItineraryText
	if text == "" {
		text = itinerary.Encode(tour.Itinerary)
	}
	if s.images != nil {
		text = s.images.Resolve(text)
	}
	return itinerary.Render(text)
}

// Seed creates one editable sample tour through the normal save path.
func (s *tourService) Seed(ctx context.Context) (*domain.Tour, error) {
	form := TourForm{
		Title:     "Tour mẫu - Chỉnh sửa tên",
		Slug:      fmt.Sprintf("tour-mau-%d", time.Now().UnixMilli()),
		Region:    string(domain.RegionBinhDinh),
		Duration:  "1 ngày",
		Transport: "Xe ô tô",
		Price:     "Liên hệ",
		Image:     "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?q=80&w=1400&auto=format&fit=crop",
		ItineraryText: strings.Join([]string{
			"08:00: Khởi hành",
			"→ Đón khách tại điểm hẹn",
			"10:00: Tham quan điểm đến",
			"→ Khám phá địa điểm nổi tiếng",
			"12:00: Ăn trưa",
			"→ Thưởng thức đặc sản địa phương",
			"14:00: Tiếp tục tham quan",
			"16:00: Kết thúc tour",
			"→ Trở về điểm đón ban đầu",
		}, "\n"),
		IncludedServices: strings.Join([]string{
			"Xe đưa đón",
			"Hướng dẫn viên",
			"Vé vào cổng",
			"Bảo hiểm du lịch",
		}, "\n"),
		ExcludedServices: strings.Join([]string{
			"Ăn uống",
			"Chi phí cá nhân",
			"Thuế VAT",
		}, "\n"),
		Policies: strings.Join([]string{
			"Trẻ em 0-4 tuổi: Miễn phí",
			"Trẻ em 5-9 tuổi: 50% giá vé",
			"Trẻ em từ 10 tuổi: 100% như người lớn",
		}, "\n"),
	}
	return s.Save(ctx, form)
}

// splitLines turns a newline-joined textarea value into an ordered list,
// trimming each line and dropping blank ones.
func splitLines(text string) domain.StringList {
	out := domain.StringList{}
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
