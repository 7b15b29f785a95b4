package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"vicmar/server/internal/catalog"
	"vicmar/server/internal/inquiry"
	"vicmar/server/internal/listing"
	"vicmar/server/internal/models"
	"vicmar/server/internal/session"
)

// SessionCookie carries the opaque session id issued on sign-in.
const SessionCookie = "vicmar_session"

const sessionMaxAge = 30 * 24 * 60 * 60

type Handler struct {
	catalog      *catalog.Service
	inquiries    *inquiry.Service
	sessions     *session.Manager
	secureCookie bool
	logger       *logrus.Logger
}

// InquiryRequest is the body of the contact and property inquiry forms.
type InquiryRequest struct {
	Name          string `json:"name" binding:"required,max=120"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"max=40"`
	InquiryType   string `json:"inquiry_type" binding:"omitempty,oneof=property-inquiry booking payment other"`
	Message       string `json:"message" binding:"required,max=5000"`
	PropertyID    string `json:"property_id"`
	PropertyTitle string `json:"property_title"`
}

type SessionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"max=120"`
}

func NewHandler(catalogService *catalog.Service, inquiries *inquiry.Service, sessions *session.Manager, secureCookie bool, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		catalog:      catalogService,
		inquiries:    inquiries,
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func sessionID(c *gin.Context) string {
	id, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return id
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}

// RequireAdmin lets the request through only for a signed-in admin.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.sessions.Me(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, h.logger, err, "Failed to read session")
			c.Abort()
			return
		}
		if !session.IsAdmin(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return 0, false
	}
	return limit, true
}

func (h *Handler) ListProperties(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	properties, err := h.catalog.List(c.Request.Context(), c.Query("sort"), limit)
	if err != nil {
		respondError(c, h.logger, err, "Failed to list properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

// FilterProperties matches every query parameter exactly against the record
// field of the same name. Numeric and boolean fields accept their text form.
func (h *Handler) FilterProperties(c *gin.Context) {
	criteria := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		criteria[key] = values[0]
	}

	properties, err := h.catalog.Filter(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, h.logger, err, "Failed to filter properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetProperty(c *gin.Context) {
	property, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get property")
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.catalog.Create(c.Request.Context(), property)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create property")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.catalog.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete property")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) GetListings(c *gin.Context) {
	query := listing.ParseQuery(c.Request.URL.Query())

	properties, err := h.catalog.Listings(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err, "Failed to filter listings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"price_range": listing.FormatPrice(query.MinPrice) + " - " + listing.FormatPrice(query.MaxPrice),
		"count":       len(properties),
		"properties":  properties,
	})
}

func (h *Handler) GetListingTypes(c *gin.Context) {
	summaries, err := h.catalog.TypeSummaries(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to summarize property types")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// CreateInquiry stores a contact or property inquiry. Every failure response
// carries the submitted form back so the client can offer a resubmit.
func (h *Handler) CreateInquiry(c *gin.Context) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation failed",
				"details": formatValidationErrors(validationErrors),
				"form":    req,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "form": req})
		return
	}

	created, err := h.inquiries.Submit(c.Request.Context(), models.Inquiry{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		InquiryType:   req.InquiryType,
		Message:       req.Message,
		PropertyID:    req.PropertyID,
		PropertyTitle: req.PropertyTitle,
	})
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.WithError(err).Error("Failed to store inquiry")
		}
		c.JSON(status, gin.H{"error": "Failed to send inquiry, please try again", "form": req})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListInquiries(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	inquiries, err := h.inquiries.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err, "Failed to list inquiries")
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.sessions.Me(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to read session")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateSession signs the caller in and sets the session cookie.
func (h *Handler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": formatValidationErrors(validationErrors)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, user, err := h.sessions.SignIn(c.Request.Context(), models.User{
		Email:    strings.TrimSpace(req.Email),
		FullName: strings.TrimSpace(req.FullName),
	})
	if err != nil {
		respondError(c, h.logger, err, "Failed to create session")
		return
	}

	h.setSessionCookie(c, id, sessionMaxAge)
	h.logger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User signed in")
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), sessionID(c)); err != nil {
		respondError(c, h.logger, err, "Failed to log out")
		return
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LogPageVisit records client-side navigation.
func (h *Handler) LogPageVisit(c *gin.Context) {
	h.logger.WithFields(logrus.Fields{
		"page":       c.Param("page"),
		"user_agent": c.Request.UserAgent(),
	}).Info("User visited page")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
