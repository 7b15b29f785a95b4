package models

import (
	"errors"
	"fmt"
	"time"
)

// Property status values
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
)

// Property types used by the listings page
const (
	TypeDuplex   = "duplex"
	TypeTriplex  = "triplex"
	TypeRowhouse = "rowhouse"
)

type FloorPlan struct {
	Image string `json:"image"`
	Label string `json:"label"`
}

type Property struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	PropertyType  string               `json:"property_type"`
	Price         int                  `json:"price"`
	Location      string               `json:"location"`
	Description   string               `json:"description"`
	Bedrooms      int                  `json:"bedrooms"`
	Bathrooms     int                  `json:"bathrooms"`
	FloorArea     float64              `json:"floor_area"`
	LotArea       float64              `json:"lot_area"`
	Status        string               `json:"status"`
	MainImage     string               `json:"main_image,omitempty"`
	GalleryImages []string             `json:"gallery_images,omitempty"`
	PanoramaImage string               `json:"panorama_image,omitempty"`
	FloorPlans    map[string]FloorPlan `json:"floor_plans,omitempty"`
	Amenities     []string             `json:"amenities,omitempty"`
	CreatedDate   time.Time            `json:"created_date"`
}

// IsValidStatus reports whether status is one of the three sale states.
func IsValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

// Validate checks the rules every stored property must satisfy.
func (p Property) Validate() error {
	if !IsValidStatus(p.Status) {
		return fmt.Errorf("invalid status %q", p.Status)
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

// PropertyTypeSummary aggregates the catalog per property type
type PropertyTypeSummary struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Count       int    `json:"count"`
	MinPrice    int    `json:"min_price,omitempty"`
	MaxPrice    int    `json:"max_price,omitempty"`
	PriceRange  string `json:"price_range,omitempty"`
	ListingsURL string `json:"listings_url"`
}

func (p Property) EntityID() string {
	return p.ID
}
