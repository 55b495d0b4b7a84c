package handler

import (
	"net/http"
	"strings"
	"time"

	"kgtransfer/internal/logger"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"

	"github.com/gin-gonic/gin"
)

const resourceBlogPost = "blog_post"

type BlogHandler struct {
	repo  *repository.BlogRepository
	audit *Auditor
	log   logger.Logger
}

func NewBlogHandler(repo *repository.BlogRepository, audit *Auditor, log logger.Logger) *BlogHandler {
	return &BlogHandler{repo: repo, audit: audit, log: log}
}

type blogPostInput struct {
	Title           string `json:"title" binding:"required,max=255"`
	Slug            string `json:"slug" binding:"max=255"`
	Excerpt         string `json:"excerpt" binding:"max=512"`
	Content         string `json:"content" binding:"required"`
	CoverImageURL   string `json:"cover_image_url" binding:"omitempty,url,max=512"`
	VideoURL        string `json:"video_url" binding:"omitempty,url,max=512"`
	MetaTitle       string `json:"meta_title" binding:"max=255"`
	MetaDescription string `json:"meta_description" binding:"max=512"`
	Published       bool   `json:"published"`
}

func (in *blogPostInput) filled(c *gin.Context) bool {
	return requireNonBlank(c, "title", in.Title, "content", in.Content)
}

func (in *blogPostInput) apply(p *models.BlogPost) {
	p.Title = strings.TrimSpace(in.Title)
	p.Slug = strings.TrimSpace(in.Slug)
	p.Excerpt = in.Excerpt
	p.Content = in.Content
	p.CoverImageURL = in.CoverImageURL
	p.VideoURL = in.VideoURL
	p.MetaTitle = in.MetaTitle
	p.MetaDescription = in.MetaDescription
	p.SetPublished(in.Published, time.Now())
}

// ListPublished handles GET /api/blog.
func (h *BlogHandler) ListPublished(c *gin.Context) {
	lq := parsePagination(c)
	list, total, err := h.repo.ListPublished(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

// GetBySlug handles GET /api/blog/:slug. Drafts are reported as missing.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	p, err := h.repo.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// List handles GET /api/admin/blog; status is "published" or "draft".
func (h *BlogHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	if !checkStatusFilter(c, lq, func(s string) bool { return s == "published" || s == "draft" }) {
		return
	}
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var in blogPostInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	p := &models.BlogPost{}
	in.apply(p)
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	h.audit.Record(c, ActionCreate, resourceBlogPost, p.ID, gin.H{"slug": p.Slug})
	c.JSON(http.StatusCreated, p)
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in blogPostInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	ctx := c.Request.Context()
	p, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	in.apply(p)
	if err := h.repo.Update(ctx, p); err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	h.audit.Record(c, ActionUpdate, resourceBlogPost, p.ID, gin.H{"slug": p.Slug})
	c.JSON(http.StatusOK, p)
}

type publishInput struct {
	Published *bool `json:"published" binding:"required"`
}

// SetPublished handles PATCH /api/admin/blog/:id.
func (h *BlogHandler) SetPublished(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in publishInput
	if !bindJSON(c, &in) {
		return
	}
	ctx := c.Request.Context()
	p, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	p.SetPublished(*in.Published, time.Now())
	if err := h.repo.Update(ctx, p); err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceBlogPost, p.ID, gin.H{"published": p.Published})
	c.JSON(http.StatusOK, p)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "post not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceBlogPost, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
