package handler

import (
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/models"
	"kgtransfer/internal/service"

	"github.com/gin-gonic/gin"
)

var settingKeyRe = regexp.MustCompile(`^[a-z][a-z0-9_]{0,99}$`)

type SettingsHandler struct {
	svc   *service.SettingsService
	audit *Auditor
	log   logger.Logger
}

func NewSettingsHandler(svc *service.SettingsService, audit *Auditor, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, audit: audit, log: log}
}

// Public handles GET /api/settings: public keys only.
func (h *SettingsHandler) Public(c *gin.Context) {
	values, err := h.svc.Public(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, values)
}

// Home handles GET /api/settings/home.
func (h *SettingsHandler) Home(c *gin.Context) {
	hs, err := h.svc.Home(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, hs)
}

// TransferConfig handles GET /api/transfer-config.
func (h *SettingsHandler) TransferConfig(c *gin.Context) {
	tc, err := h.svc.TransferConfig(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, tc)
}

// All handles GET /api/admin/settings, private rows included.
func (h *SettingsHandler) All(c *gin.Context) {
	rows, err := h.svc.All(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	if rows == nil {
		rows = []models.SiteSetting{}
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// Update handles PUT /api/admin/settings with a flat {"key": "value"} body.
func (h *SettingsHandler) Update(c *gin.Context) {
	var values map[string]string
	if !bindJSON(c, &values) {
		return
	}
	if len(values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings given"})
		return
	}
	keys := make([]string, 0, len(values))
	for k, v := range values {
		if !settingKeyRe.MatchString(k) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid setting key: " + k})
			return
		}
		v = strings.TrimSpace(v)
		if k == domain.SettingNotificationEmail && v != "" {
			if _, err := mail.ParseAddress(v); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "notification_email must be a valid email"})
				return
			}
		}
		values[k] = v
		keys = append(keys, k)
	}
	ctx := c.Request.Context()
	if err := h.svc.Update(ctx, values); err != nil {
		respondError(c, h.log, err, "")
		return
	}
	h.audit.Record(c, ActionUpdate, "settings", 0, gin.H{"keys": keys})
	h.All(c)
}

type homeInput struct {
	HeroTitle    string `json:"hero_title" binding:"required,max=255"`
	HeroSubtitle string `json:"hero_subtitle" binding:"max=512"`
	HeroImageURL string `json:"hero_image_url" binding:"omitempty,url,max=512"`
	HeroVideoURL string `json:"hero_video_url" binding:"omitempty,url,max=512"`
	CTAText      string `json:"cta_text" binding:"max=120"`
	AboutTitle   string `json:"about_title" binding:"max=255"`
	AboutText    string `json:"about_text"`
	ShowBenefits *bool  `json:"show_benefits"`
	ShowReviews  *bool  `json:"show_reviews"`
	ShowGallery  *bool  `json:"show_gallery"`
}

// UpdateHome handles PUT /api/admin/settings/home.
func (h *SettingsHandler) UpdateHome(c *gin.Context) {
	var in homeInput
	if !bindJSON(c, &in) {
		return
	}
	hs := &models.HomeSettings{
		HeroTitle:    strings.TrimSpace(in.HeroTitle),
		HeroSubtitle: in.HeroSubtitle,
		HeroImageURL: in.HeroImageURL,
		HeroVideoURL: in.HeroVideoURL,
		CTAText:      in.CTAText,
		AboutTitle:   in.AboutTitle,
		AboutText:    in.AboutText,
		ShowBenefits: boolOr(in.ShowBenefits, true),
		ShowReviews:  boolOr(in.ShowReviews, true),
		ShowGallery:  boolOr(in.ShowGallery, true),
	}
	if err := h.svc.UpdateHome(c.Request.Context(), hs); err != nil {
		respondError(c, h.log, err, "")
		return
	}
	h.audit.Record(c, ActionUpdate, "home_settings", hs.ID, nil)
	c.JSON(http.StatusOK, hs)
}

type transferConfigInput struct {
	PricePerKm      float64 `json:"price_per_km" binding:"required,gt=0"`
	MinimumFare     int64   `json:"minimum_fare" binding:"min=0"`
	Currency        string  `json:"currency" binding:"required,len=3"`
	RoadFactor      float64 `json:"road_factor" binding:"required,gte=1,lte=3"`
	AverageSpeedKmh float64 `json:"average_speed_kmh" binding:"required,gt=0,lte=200"`
	MinLeadHours    int     `json:"min_lead_hours" binding:"min=0"`
	MaxPassengers   int     `json:"max_passengers" binding:"required,min=1"`
}

// UpdateTransferConfig handles PUT /api/admin/transfer-config.
func (h *SettingsHandler) UpdateTransferConfig(c *gin.Context) {
	var in transferConfigInput
	if !bindJSON(c, &in) {
		return
	}
	tc := &models.TransferConfig{
		PricePerKm:      in.PricePerKm,
		MinimumFare:     in.MinimumFare,
		Currency:        strings.ToUpper(in.Currency),
		RoadFactor:      in.RoadFactor,
		AverageSpeedKmh: in.AverageSpeedKmh,
		MinLeadHours:    in.MinLeadHours,
		MaxPassengers:   in.MaxPassengers,
	}
	if err := h.svc.UpdateTransferConfig(c.Request.Context(), tc); err != nil {
		respondError(c, h.log, err, "")
		return
	}
	h.audit.Record(c, ActionUpdate, "transfer_config", tc.ID, nil)
	c.JSON(http.StatusOK, tc)
}
