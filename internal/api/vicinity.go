package api

import (
	"bytes"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"vicmar/server/internal/vicinity"
)

// VicinityHandler serves the lot catalog and drives the map viewer.
type VicinityHandler struct {
	catalog *vicinity.Catalog
	palette *vicinity.Palette
	opts    vicinity.Options
	logger  *logrus.Logger
}

// ViewRequest carries one viewer transition: the current state, the event and
// the viewport it happened in. A missing state starts from the initial view.
type ViewRequest struct {
	State     *vicinity.State    `json:"state"`
	Event     vicinity.Event     `json:"event"`
	Container vicinity.Container `json:"container"`
}

type ViewResponse struct {
	State          vicinity.State `json:"state"`
	TooltipVisible bool           `json:"tooltip_visible"`
}

func NewVicinityHandler(catalog *vicinity.Catalog, palette *vicinity.Palette, opts vicinity.Options, logger *logrus.Logger) *VicinityHandler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if palette == nil {
		palette = vicinity.DefaultPalette()
	}

	return &VicinityHandler{
		catalog: catalog,
		palette: palette,
		opts:    opts,
		logger:  logger,
	}
}

func (h *VicinityHandler) GetLots(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Lots())
}

func (h *VicinityHandler) GetLot(c *gin.Context) {
	lot, ok := h.catalog.Lot(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lot not found"})
		return
	}
	c.JSON(http.StatusOK, lot)
}

func (h *VicinityHandler) GetGeoJSON(c *gin.Context) {
	data, err := h.catalog.FeatureCollection().MarshalJSON()
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode lot features")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode lot features"})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

func (h *VicinityHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Stats())
}

func (h *VicinityHandler) GetLegend(c *gin.Context) {
	c.JSON(http.StatusOK, h.palette.Legend())
}

// HitTest resolves a point in map image coordinates to the topmost lot.
func (h *VicinityHandler) HitTest(c *gin.Context) {
	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x and y must be numbers"})
		return
	}

	lot, ok := h.catalog.HitTest(orb.Point{x, y})
	if !ok {
		c.JSON(http.StatusOK, gin.H{"hit": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hit": true, "lot": lot})
}

func (h *VicinityHandler) GetOverlay(c *gin.Context) {
	var buf bytes.Buffer
	err := vicinity.RenderOverlay(&buf, h.catalog, h.palette, h.opts, c.Query("hovered"), c.Query("selected"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to render overlay")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render overlay"})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// ApplyViewEvent runs one event through the viewer state machine.
func (h *VicinityHandler) ApplyViewEvent(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Event.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event type is required"})
		return
	}

	state := vicinity.InitialState()
	if req.State != nil {
		state = *req.State
	}

	viewer := vicinity.NewViewer(h.catalog, req.Container, h.opts)
	next := viewer.Reduce(state, req.Event)

	h.logger.WithFields(logrus.Fields{
		"event":    req.Event.Type,
		"scale":    next.Scale,
		"hovered":  next.Hovered,
		"selected": next.Selected,
	}).Debug("Applied view event")

	c.JSON(http.StatusOK, ViewResponse{State: next, TooltipVisible: next.TooltipVisible()})
}
