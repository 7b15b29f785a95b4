package listing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"vicmar/server/internal/models"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a peso amount with digit grouping and no fraction, e.g. ₱2,500,000.
func FormatPrice(price int) string {
	return pricePrinter.Sprintf("₱%d", price)
}

// FormatPriceRange renders "lo - hi", or a single price when they are equal.
func FormatPriceRange(lo, hi int) string {
	if lo == hi {
		return FormatPrice(lo)
	}
	return FormatPrice(lo) + " - " + FormatPrice(hi)
}

// ListingsURL is the navigation target for the listings page filtered by type.
func ListingsURL(propertyType string) string {
	if propertyType == "" || propertyType == All {
		return "/listings"
	}
	q := DefaultQuery()
	q.PropertyType = propertyType
	return "/listings?" + q.Values().Encode()
}

var typeSummaries = []struct {
	propertyType string
	label        string
}{
	{propertyType: models.TypeDuplex, label: "Duplex Units"},
	{propertyType: models.TypeTriplex, label: "Triplex Units"},
	{propertyType: models.TypeRowhouse, label: "Rowhouse Units"},
}

// SummarizeTypes counts the catalog per property type and reports the price
// span of each type. Zero prices do not count towards the span.
func SummarizeTypes(props []models.Property) []models.PropertyTypeSummary {
	summaries := make([]models.PropertyTypeSummary, 0, len(typeSummaries))
	for _, t := range typeSummaries {
		summary := models.PropertyTypeSummary{
			Type:        t.propertyType,
			Label:       t.label,
			ListingsURL: ListingsURL(t.propertyType),
		}

		for _, p := range props {
			if p.PropertyType != t.propertyType {
				continue
			}
			summary.Count++
			if p.Price <= 0 {
				continue
			}
			if summary.MinPrice == 0 || p.Price < summary.MinPrice {
				summary.MinPrice = p.Price
			}
			if p.Price > summary.MaxPrice {
				summary.MaxPrice = p.Price
			}
		}
		if summary.MaxPrice > 0 {
			summary.PriceRange = FormatPriceRange(summary.MinPrice, summary.MaxPrice)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
