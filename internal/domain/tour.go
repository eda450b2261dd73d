package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viettour/backend/pkg/itinerary"
)

// Region is one of the four fixed geographic catalog partitions. Every tour
// belongs to exactly one region.
type Region string

const (
	RegionBinhDinh           Region = "BinhDinh"
	RegionMienTrungTayNguyen Region = "MienTrungTayNguyen"
	RegionMienNam            Region = "MienNam"
	RegionMienBac            Region = "MienBac"
)

var regionNames = map[Region]string{
	RegionBinhDinh:           "Bình Định",
	RegionMienTrungTayNguyen: "Miền Trung & Tây Nguyên",
	RegionMienNam:            "Miền Nam",
	RegionMienBac:            "Miền Bắc",
}

func (r Region) Valid() bool {
	_, ok := regionNames[r]
	return ok
}

// DisplayName returns the Vietnamese label for the region, or the raw value
// when the region is not one of the known four.
func (r Region) DisplayName() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return string(r)
}

func Regions() []Region {
	return []Region{RegionBinhDinh, RegionMienTrungTayNguyen, RegionMienNam, RegionMienBac}
}

// ItineraryStep is one flattened entry of the structured itinerary mirror.
type ItineraryStep = itinerary.Step

// Tour is one catalog entry representing a bookable travel package.
//
// ItineraryText is the authoritative day-plan source; Itinerary is derived
// from it at save time and kept only for records created before the raw-text
// format existed. An empty Price is a first-class "contact for price" state,
// not a zero price.
type Tour struct {
	ID               string         `db:"id" json:"id"`
	Slug             string         `db:"slug" json:"slug"`
	Title            string         `db:"title" json:"title"`
	Region           Region         `db:"region" json:"region"`
	Image            string         `db:"image" json:"image"`
	Price            string         `db:"price" json:"price,omitempty"`
	Duration         string         `db:"duration" json:"duration"`
	Transport        string         `db:"transport" json:"transport"`
	Gallery          StringList     `db:"gallery" json:"gallery,omitempty"`
	ItineraryText    string         `db:"itinerary_text" json:"itineraryText,omitempty"`
	Itinerary        ItinerarySteps `db:"itinerary" json:"itinerary"`
	IncludedServices StringList     `db:"included_services" json:"includedServices"`
	ExcludedServices StringList     `db:"excluded_services" json:"excludedServices"`
	Policies         StringList     `db:"policies" json:"policies"`
	PoliciesText     string         `db:"policies_text" json:"policiesText,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
}

// DisplayGallery is the image set shown on the detail page: the gallery when
// present, otherwise the cover image alone.
func (t *Tour) DisplayGallery() []string {
	if len(t.Gallery) > 0 {
		return t.Gallery
	}
	return []string{t.Image}
}

// StringList is an ordered sequence of plain-text lines stored as one JSON
// column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// ItinerarySteps is the structured itinerary mirror stored as one JSON column.
type ItinerarySteps []ItineraryStep

func (s ItinerarySteps) Value() (driver.Value, error) {
	if s == nil {
		s = ItinerarySteps{}
	}
	return json.Marshal(s)
}

func (s *ItinerarySteps) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
