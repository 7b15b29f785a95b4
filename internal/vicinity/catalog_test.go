package vicinity

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLots = `{
  "duplex": [
    {
      "coords": "100,100,160,100,160,160,100,160",
      "info": {
        "type": "Duplex Deluxe",
        "blockNum": 1,
        "phase": "Phase 1",
        "unitB": {"lotNum": 2, "lotArea": "120", "availability": "Sold"},
        "unitA": {"lotNum": 1, "lotArea": 120.5, "availability": "AVAILABLE"}
      }
    }
  ],
  "rowhouse": [
    {
      "coords": "300,100,400,100,400,150,300,150",
      "info": {
        "type": "RowHouse Compound",
        "blockNum": "4",
        "phase": "Phase 2",
        "unit": {"lotNum": "15", "lotArea": "60", "availability": "Reserved"}
      }
    }
  ],
  "vacant": [
    {
      "coords": "500,100,580,100,580,180,500,180",
      "info": {
        "type": " VACANT LOT",
        "blockNum": 5,
        "phase": "Phase 3",
        "": {"lotNum": 30, "lotArea": "150", "availability": "Vacant"}
      }
    },
    {
      "coords": "600,100,680,100,680,180,600,180",
      "info": {
        "type": "Triplex",
        "blockNum": 6,
        "phase": "Phase 3",
        "": {"lotArea": "150", "availability": "Vacant"}
      }
    }
  ]
}`

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := ParseCatalog([]byte(testLots))
	require.NoError(t, err)
	return c
}

func lotIDs(lots []Lot) []string {
	ids := make([]string, len(lots))
	for i, lot := range lots {
		ids[i] = lot.ID
	}
	return ids
}

func TestLoadCatalog_KeepsDocumentOrder(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Equal(t, []string{"duplex-0", "rowhouse-0", "vacant-0", "vacant-1"}, lotIDs(c.Lots()))
	assert.Equal(t, 4, c.Len())

	for i, lot := range c.Lots() {
		assert.Equal(t, i, lot.Priority)
	}
}

func TestLoadCatalog_NormalizesUnits(t *testing.T) {
	c := loadTestCatalog(t)

	duplex, ok := c.Lot("duplex-0")
	require.True(t, ok)
	assert.Equal(t, "duplex", duplex.Category)
	assert.Equal(t, "1", duplex.Info.BlockNum)
	assert.Equal(t, []UnitSlot{
		{Key: "A", LotNum: "1", LotArea: "120.5", Availability: AvailabilityAvailable},
		{Key: "B", LotNum: "2", LotArea: "120", Availability: AvailabilitySold},
	}, duplex.Info.Units)
	assert.Len(t, duplex.Polygon, 5)
	assert.InDelta(t, 130, duplex.Centroid[0], 1e-9)

	row, ok := c.Lot("rowhouse-0")
	require.True(t, ok)
	assert.Equal(t, []UnitSlot{{Key: "", LotNum: "15", LotArea: "60", Availability: AvailabilityReserved}}, row.Info.Units)

	vacant, ok := c.Lot("vacant-0")
	require.True(t, ok)
	assert.Equal(t, []UnitSlot{{Key: "", LotNum: "30", LotArea: "150", Availability: AvailabilityVacant}}, vacant.Info.Units)

	noLotNum, ok := c.Lot("vacant-1")
	require.True(t, ok)
	assert.Empty(t, noLotNum.Info.Units)

	_, ok = c.Lot("missing-0")
	assert.False(t, ok)
}

func TestLoadCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "array document", doc: `[]`, wantErr: "object keyed by category"},
		{name: "odd coordinates", doc: `{"a":[{"coords":"0,0,10,0,10","info":{}}]}`, wantErr: "odd number"},
		{name: "too few points", doc: `{"a":[{"coords":"0,0,10,0","info":{}}]}`, wantErr: "at least 3 points"},
		{
			name:    "unknown availability",
			doc:     `{"a":[{"coords":"0,0,10,0,10,10","info":{"unit":{"lotNum":1,"availability":"foreclosed"}}}]}`,
			wantErr: "unknown availability",
		},
		{name: "truncated", doc: `{"a":[`, wantErr: "category a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalog_Stats(t *testing.T) {
	c := loadTestCatalog(t)
	assert.Equal(t, Stats{Total: 4, Duplex: 1, Triplex: 1, Rowhouse: 1}, c.Stats())
}

func TestListingType(t *testing.T) {
	tests := []struct {
		lotType string
		want    string
	}{
		{"Duplex Premiere", "duplex"},
		{"Triplex", "triplex"},
		{"RowHouse Socialized", "rowhouse"},
		{"Row House", "rowhouse"},
		{" VACANT LOT", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.lotType, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingType(tt.lotType))
		})
	}
}

func TestHitTest(t *testing.T) {
	c := loadTestCatalog(t)

	lot, ok := c.HitTest(orb.Point{130, 130})
	require.True(t, ok)
	assert.Equal(t, "duplex-0", lot.ID)

	lot, ok = c.HitTest(orb.Point{350, 120})
	require.True(t, ok)
	assert.Equal(t, "rowhouse-0", lot.ID)

	_, ok = c.HitTest(orb.Point{250, 130})
	assert.False(t, ok)
}

func TestHitTest_Overlap(t *testing.T) {
	t.Run("later lot wins by default", func(t *testing.T) {
		c, err := ParseCatalog([]byte(`{"a":[
			{"coords":"0,0,100,0,100,100,0,100","info":{}},
			{"coords":"50,50,150,50,150,150,50,150","info":{}}
		]}`))
		require.NoError(t, err)

		lot, ok := c.HitTest(orb.Point{75, 75})
		require.True(t, ok)
		assert.Equal(t, "a-1", lot.ID)
	})

	t.Run("explicit priority wins", func(t *testing.T) {
		c, err := ParseCatalog([]byte(`{"a":[
			{"coords":"0,0,100,0,100,100,0,100","priority":10,"info":{}},
			{"coords":"50,50,150,50,150,150,50,150","info":{}}
		]}`))
		require.NoError(t, err)

		lot, ok := c.HitTest(orb.Point{75, 75})
		require.True(t, ok)
		assert.Equal(t, "a-0", lot.ID)
		assert.Equal(t, []string{"a-1", "a-0"}, lotIDs(c.DrawOrder()))
	})
}

func TestFeatureCollection(t *testing.T) {
	c := loadTestCatalog(t)

	fc := c.FeatureCollection()
	require.Len(t, fc.Features, 4)

	first := fc.Features[0]
	assert.Equal(t, "duplex-0", first.ID)
	assert.Equal(t, "Polygon", first.Geometry.GeoJSONType())
	assert.Equal(t, "duplex", first.Properties["listing_type"])

	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
}
