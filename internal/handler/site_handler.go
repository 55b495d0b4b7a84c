package handler

import (
	"context"
	"net/http"
	"time"

	"kgtransfer/internal/logger"
	"kgtransfer/internal/service"
	"kgtransfer/pkg/sitemap"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SiteHandler serves crawler-facing output and the health probe.
type SiteHandler struct {
	db      *gorm.DB
	sitemap *service.SitemapService
	seo     *service.SEOService
	log     logger.Logger
}

func NewSiteHandler(db *gorm.DB, sm *service.SitemapService, seoSvc *service.SEOService, log logger.Logger) *SiteHandler {
	return &SiteHandler{db: db, sitemap: sm, seo: seoSvc, log: log}
}

// Sitemap handles GET /sitemap.xml.
func (h *SiteHandler) Sitemap(c *gin.Context) {
	urls, err := h.sitemap.URLs(c.Request.Context())
	if err != nil {
		h.log.Error("sitemap build failed", "error", err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Status(http.StatusOK)
	if err := sitemap.Write(c.Writer, urls); err != nil {
		h.log.Error("sitemap write failed", "error", err)
	}
}

func (h *SiteHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, h.sitemap.Robots())
}

// Healthz reports whether the database answers.
func (h *SiteHandler) Healthz(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.log.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Organization handles GET /api/seo/organization.
func (h *SiteHandler) Organization(c *gin.Context) {
	org, err := h.seo.Organization(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, org)
}

// BlogPost handles GET /api/seo/blog/:slug.
func (h *SiteHandler) BlogPost(c *gin.Context) {
	docs, err := h.seo.BlogPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Route handles GET /api/seo/routes/:slug.
func (h *SiteHandler) Route(c *gin.Context) {
	docs, err := h.seo.Route(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err, "route not found")
		return
	}
	c.JSON(http.StatusOK, docs)
}
