package catalog

import (
	"strconv"
	"time"

	"vicmar/server/internal/models"
)

var (
	standardAmenities   = []string{"Porch", "Foyer", "Living Area", "Dining Area", "Kitchen", "Study Area", "Balcony"}
	compoundAmenities   = []string{"Living Area", "Dining Area", "Kitchen", "Study", "Hallway"}
	socializedAmenities = []string{"Porch", "Foyer", "Living Area", "Dining Area", "Kitchen", "Bedroom"}
)

func gallery(prefix string) []string {
	images := make([]string, 5)
	for i := range images {
		images[i] = "/images/properties/Interior/" + prefix + "_img" + strconv.Itoa(i+1) + ".png"
	}
	return images
}

func seedDate(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return t.Add(10 * time.Hour)
}

// SeedProperties is the catalog written to an empty store.
func SeedProperties() []models.Property {
	return []models.Property{
		{
			ID:            "duplex-unit-deluxe",
			Title:         "Single Attached Unit (Deluxe)",
			PropertyType:  models.TypeDuplex,
			Price:         2500000,
			Location:      "Batangas",
			Description:   "A spacious duplex deluxe unit featuring modern architecture with 3 bedrooms and 2 bathrooms. Perfect for growing families who want quality living spaces with premium finishes. Includes living area, dining area, kitchen, study area, and balcony.",
			Bedrooms:      3,
			Bathrooms:     2,
			FloorArea:     59.32,
			LotArea:       66,
			Status:        models.StatusAvailable,
			MainImage:     "/images/properties/Duplex Deluxe.png",
			GalleryImages: gallery("duplex"),
			PanoramaImage: "/images/360/360-Duplex-Deluxe.jpg",
			FloorPlans: map[string]models.FloorPlan{
				"groundFloor": {Image: "/images/floor_plan/duplex_deluxe_GF.jpg", Label: "Ground Floor"},
				"secondFloor": {Image: "/images/floor_plan/Duplex-Unit-Deluxe-SF.jpg", Label: "Second Floor"},
			},
			Amenities:   standardAmenities,
			CreatedDate: seedDate("2025-12-15"),
		},
		{
			ID:            "duplex-unit-premiere",
			Title:         "Single Attached Unit (Premiere)",
			PropertyType:  models.TypeDuplex,
			Price:         2800000,
			Location:      "Batangas",
			Description:   "Premium duplex premiere unit with elegant design featuring 3 bedrooms and 2 bathrooms. Upgraded finishes and spacious layout ideal for families who appreciate quality craftsmanship and modern amenities.",
			Bedrooms:      3,
			Bathrooms:     2,
			FloorArea:     59.32,
			LotArea:       66,
			Status:        models.StatusAvailable,
			MainImage:     "/images/properties/Duplex Premiere.png",
			GalleryImages: gallery("duplex"),
			PanoramaImage: "/images/360/360-Duplex-Primere.jpg",
			FloorPlans: map[string]models.FloorPlan{
				"groundFloor": {Image: "/images/floor_plan/Duplex-Unit-Premiere-GF.jpg", Label: "Ground Floor"},
				"secondFloor": {Image: "/images/floor_plan/Duplex-Unit-Premiere-SF.jpg", Label: "Second Floor"},
			},
			Amenities:   standardAmenities,
			CreatedDate: seedDate("2025-12-10"),
		},
		{
			ID:            "triplex-end-unit-a",
			Title:         "Triplex (End Unit A)",
			PropertyType:  models.TypeTriplex,
			Price:         2200000,
			Location:      "Batangas",
			Description:   "Corner triplex end unit with extra natural lighting and ventilation. Features 3 bedrooms and 2 bathrooms with a practical layout perfect for families. End unit advantage provides more privacy and outdoor space.",
			Bedrooms:      3,
			Bathrooms:     2,
			FloorArea:     59.32,
			LotArea:       66,
			Status:        models.StatusAvailable,
			MainImage:     "/images/properties/Triplex.png",
			GalleryImages: gallery("duplex"),
			PanoramaImage: "/images/360/360-Corner-Unit.jpg",
			FloorPlans: map[string]models.FloorPlan{
				"groundFloor": {Image: "/images/floor_plan/Triplex-End-Unit-A-GF.jpg", Label: "Ground Floor"},
				"secondFloor": {Image: "/images/floor_plan/Triplex-End-Unit-A-SF.jpg", Label: "Second Floor"},
			},
			Amenities:   standardAmenities,
			CreatedDate: seedDate("2025-12-08"),
		},
		{
			ID:            "triplex-center-unit",
			Title:         "Triplex (Center Unit)",
			PropertyType:  models.TypeTriplex,
			Price:         1900000,
			Location:      "Batangas",
			Description:   "Affordable triplex center unit with efficient layout. Features 3 bedrooms and 2 bathrooms. Compact design maximizes living space while maintaining comfort and functionality for modern families.",
			Bedrooms:      3,
			Bathrooms:     2,
			FloorArea:     65.30,
			LotArea:       44.33,
			Status:        models.StatusAvailable,
			MainImage:     "/images/properties/Triplex.png",
			GalleryImages: gallery("duplex"),
			FloorPlans: map[string]models.FloorPlan{
				"groundFloor": {Image: "/images/floor_plan/Triplex-Center-Unit-GF.jpg", Label: "Ground Floor"},
				"secondFloor": {Image: "/images/floor_plan/Triplex-Center-Unit-SF.jpg", Label: "Second Floor"},
			},
			Amenities:   standardAmenities,
			CreatedDate: seedDate("2025-12-05"),
		},
		{
			ID:            "triplex-end-unit-b",
			Title:         "Triplex (End Unit B)",
			PropertyType:  models.TypeTriplex,
			Price:         2200000,
			Location:      "Batangas",
			Description:   "Corner triplex end unit on the opposite side. Features 3 bedrooms and 2 bathrooms with excellent cross-ventilation. End unit design provides additional windows and natural light throughout the home.",
			Bedrooms:      3,
			Bathrooms:     2,
			FloorArea:     59.32,
			LotArea:       66,
			Status:        models.StatusReserved,
			MainImage:     "/images/properties/Triplex.png",
			GalleryImages: gallery("duplex"),
			FloorPlans: map[string]models.FloorPlan{
				"groundFloor": {Image: "/images/floor_plan/Triplex-End-Unit-B-GF.jpg", Label: "Ground Floor"},
				"secondFloor": {Image: "/images/floor_plan/Triplex-End-Unit-B-SF.jpg", Label: "Second Floor"},
			},
			Amenities:   standardAmenities,
			CreatedDate: seedDate("2025-12-01"),
		},
		{
			ID:            "rowhouse-economic-unit",
			Title:         "Rowhouse (Economic Unit)",
			PropertyType:  models.TypeRowhouse,
			Price:         1500000,
			Location:      "Batangas",
			Description:   "Budget-friendly rowhouse economic unit perfect for first-time homebuyers. Features practical layout with living area, dining, kitchen, and bedroom spaces. An affordable entry point to homeownership.",
			Bedrooms:      2,
			Bathrooms:     2,
			FloorArea:     59.32,
			LotArea:       44,
			Status:        models.StatusAvailable,
			MainImage:     "/images/properties/Rowhouse Economic.png",
			GalleryImages: gallery("duplex"),
			FloorPlans: map[string]models.FloorPlan{
				"groundFloor": {Image: "/images/floor_plan/Economic-Unit-GF.jpg", Label: "Ground Floor"},
				"secondFloor": {Image: "/images/floor_plan/Economic-Unit-SF.jpg", Label: "Second Floor"},
			},
			Amenities:   standardAmenities,
			CreatedDate: seedDate("2025-11-28"),
		},
		{
			ID:            "rowhouse-compound-unit",
			Title:         "Rowhouse (Compound Unit)",
			PropertyType:  models.TypeRowhouse,
			Price:         1200000,
			Location:      "Batangas",
			Description:   "Compact rowhouse compound unit with loft-style design. Features open-plan living on the ground floor with a bedroom loft above. Ideal for singles, couples, or small families looking for affordable housing.",
			Bedrooms:      1,
			Bathrooms:     1,
			FloorArea:     50.51,
			LotArea:       40.58,
			Status:        models.StatusAvailable,
			MainImage:     "/images/properties/Rowhouse Compound.png",
			GalleryImages: gallery("compound"),
			FloorPlans: map[string]models.FloorPlan{
				"groundFloor": {Image: "/images/floor_plan/Compound-Unit-GF.jpg", Label: "Ground Floor"},
				"secondFloor": {Image: "/images/floor_plan/Compound-Unit-Loft.jpg", Label: "Loft"},
			},
			Amenities:   compoundAmenities,
			CreatedDate: seedDate("2025-11-25"),
		},
		{
			ID:            "rowhouse-socialized-unit",
			Title:         "Rowhouse (Socialized Unit)",
			PropertyType:  models.TypeRowhouse,
			Price:         800000,
			Location:      "Batangas",
			Description:   "Most affordable socialized housing unit designed for low-income families. Single-floor living with essential spaces including living area, dining, kitchen, bedroom, and bathroom. Government housing program eligible.",
			Bedrooms:      1,
			Bathrooms:     1,
			FloorArea:     33.84,
			LotArea:       44.30,
			Status:        models.StatusAvailable,
			MainImage:     "/images/properties/Rowhouse Socialized.png",
			GalleryImages: gallery("socialized"),
			FloorPlans: map[string]models.FloorPlan{
				"groundFloor": {Image: "/images/floor_plan/Rowhouse-Socialized-Unit-GF.jpg", Label: "Ground Floor"},
			},
			Amenities:   socializedAmenities,
			CreatedDate: seedDate("2025-11-20"),
		},
	}
}
