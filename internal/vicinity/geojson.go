package vicinity

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports the lots as GeoJSON polygons in image pixel
// coordinates, in catalog order.
func (c *Catalog) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, lot := range c.lots {
		feature := geojson.NewFeature(orb.Polygon{lot.Polygon})
		feature.ID = lot.ID
		feature.Properties = geojson.Properties{
			"category":     lot.Category,
			"type":         lot.Info.Type,
			"block_num":    lot.Info.BlockNum,
			"phase":        lot.Info.Phase,
			"priority":     lot.Priority,
			"listing_type": ListingType(lot.Info.Type),
			"units":        lot.Info.Units,
		}
		fc.Append(feature)
	}
	return fc
}
