package handler

import (
	"net/http"
	"strings"

	"kgtransfer/internal/logger"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

const (
	resourceGallery = "gallery"
	resourcePhoto   = "photo"
)

type GalleryHandler struct {
	repo  *repository.GalleryRepository
	media *mediaUploader
	audit *Auditor
	log   logger.Logger
}

func NewGalleryHandler(repo *repository.GalleryRepository, cloud cloudinary.Client, audit *Auditor, log logger.Logger) *GalleryHandler {
	return &GalleryHandler{repo: repo, media: &mediaUploader{cloud: cloud, log: log}, audit: audit, log: log}
}

type galleryInput struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=5000"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url,max=512"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (in *galleryInput) filled(c *gin.Context) bool {
	return requireNonBlank(c, "title", in.Title)
}

func (in *galleryInput) apply(g *models.PhotoGallery) {
	g.Title = strings.TrimSpace(in.Title)
	g.Description = in.Description
	g.CoverURL = in.CoverURL
	g.SortOrder = in.SortOrder
	g.IsActive = boolOr(in.IsActive, true)
}

// ListActive handles GET /api/gallery.
func (h *GalleryHandler) ListActive(c *gin.Context) {
	list, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	if list == nil {
		list = []models.PhotoGallery{}
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// GetActive handles GET /api/gallery/:id.
func (h *GalleryHandler) GetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	g, err := h.repo.GetActiveByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GalleryHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *GalleryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	g, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GalleryHandler) Create(c *gin.Context) {
	var in galleryInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	g := &models.PhotoGallery{}
	in.apply(g)
	if err := h.repo.Create(c.Request.Context(), g); err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	h.audit.Record(c, ActionCreate, resourceGallery, g.ID, nil)
	c.JSON(http.StatusCreated, g)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in galleryInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	ctx := c.Request.Context()
	g, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	in.apply(g)
	if err := h.repo.Update(ctx, g); err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	h.audit.Record(c, ActionUpdate, resourceGallery, g.ID, nil)
	c.JSON(http.StatusOK, g)
}

func (h *GalleryHandler) SetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	active, ok := bindActive(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.repo.SetActive(ctx, id, active); err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceGallery, id, gin.H{"is_active": active})
	g, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	c.JSON(http.StatusOK, g)
}

// Delete removes the gallery with its photos. Stored media stays on the CDN.
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceGallery, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type photoInput struct {
	URL          string `json:"url" form:"url" binding:"omitempty,url,max=512"`
	ThumbnailURL string `json:"thumbnail_url" form:"thumbnail_url" binding:"omitempty,url,max=512"`
	Caption      string `json:"caption" form:"caption" binding:"max=255"`
	Alt          string `json:"alt" form:"alt" binding:"max=255"`
	SortOrder    int    `json:"sort_order" form:"sort_order"`
}

// AddPhoto handles POST /api/admin/galleries/:id/photos. The body is either
// JSON with an already hosted url, or multipart with a "file" to upload.
func (h *GalleryHandler) AddPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.repo.GetByID(ctx, id); err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}

	var in photoInput
	photo := &models.Photo{GalleryID: id}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		res, ok := h.media.upload(c, fh, "gallery")
		if !ok {
			return
		}
		photo.URL, photo.ThumbnailURL = res.URL, res.ThumbnailURL
	} else {
		if !bindJSON(c, &in) {
			return
		}
		if in.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}
		photo.URL, photo.ThumbnailURL = in.URL, in.ThumbnailURL
	}
	photo.Caption = in.Caption
	photo.Alt = in.Alt
	photo.SortOrder = in.SortOrder

	if err := h.repo.AddPhoto(ctx, photo); err != nil {
		respondError(c, h.log, err, "gallery not found")
		return
	}
	h.audit.Record(c, ActionCreate, resourcePhoto, photo.ID, gin.H{"gallery_id": id})
	c.JSON(http.StatusCreated, photo)
}

// UpdatePhoto handles PUT /api/admin/photos/:id.
func (h *GalleryHandler) UpdatePhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in photoInput
	if !bindJSON(c, &in) {
		return
	}
	ctx := c.Request.Context()
	p, err := h.repo.GetPhoto(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "photo not found")
		return
	}
	if in.URL != "" {
		p.URL = in.URL
	}
	if in.ThumbnailURL != "" {
		p.ThumbnailURL = in.ThumbnailURL
	}
	p.Caption = in.Caption
	p.Alt = in.Alt
	p.SortOrder = in.SortOrder
	if err := h.repo.UpdatePhoto(ctx, p); err != nil {
		respondError(c, h.log, err, "photo not found")
		return
	}
	h.audit.Record(c, ActionUpdate, resourcePhoto, p.ID, nil)
	c.JSON(http.StatusOK, p)
}

// DeletePhoto handles DELETE /api/admin/photos/:id and drops the CDN asset.
func (h *GalleryHandler) DeletePhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	p, err := h.repo.GetPhoto(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "photo not found")
		return
	}
	if err := h.repo.DeletePhoto(ctx, id); err != nil {
		respondError(c, h.log, err, "photo not found")
		return
	}
	h.media.remove(ctx, p.URL)
	h.audit.Record(c, ActionDelete, resourcePhoto, id, gin.H{"gallery_id": p.GalleryID})
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
