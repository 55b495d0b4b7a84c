package handler

import (
	"net/http"
	"strings"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/internal/service"

	"github.com/gin-gonic/gin"
)

const resourceReview = "review"

type ReviewHandler struct {
	repo     *repository.ReviewRepository
	svc      *service.ReviewService
	notifier *service.NotificationService
	audit    *Auditor
	log      logger.Logger
}

func NewReviewHandler(repo *repository.ReviewRepository, svc *service.ReviewService, notifier *service.NotificationService, audit *Auditor, log logger.Logger) *ReviewHandler {
	return &ReviewHandler{repo: repo, svc: svc, notifier: notifier, audit: audit, log: log}
}

type reviewInput struct {
	AuthorName string `json:"author_name" binding:"required,max=120"`
	AuthorCity string `json:"author_city" binding:"max=120"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Text       string `json:"text" binding:"required,max=5000"`
	RouteLabel string `json:"route_label" binding:"max=255"`
	AvatarURL  string `json:"avatar_url" binding:"omitempty,url,max=512"`
}

func (in *reviewInput) filled(c *gin.Context) bool {
	return requireNonBlank(c, "author_name", in.AuthorName, "text", in.Text)
}

func (in *reviewInput) apply(rv *models.Review) {
	rv.AuthorName = strings.TrimSpace(in.AuthorName)
	rv.AuthorCity = strings.TrimSpace(in.AuthorCity)
	rv.Rating = in.Rating
	rv.Text = strings.TrimSpace(in.Text)
	rv.RouteLabel = strings.TrimSpace(in.RouteLabel)
	rv.AvatarURL = in.AvatarURL
}

// ListApproved handles GET /api/reviews.
func (h *ReviewHandler) ListApproved(c *gin.Context) {
	lq := parsePagination(c)
	list, total, err := h.repo.ListApproved(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

// Summary handles GET /api/reviews/summary.
func (h *ReviewHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Submit handles POST /api/reviews. The review waits for moderation.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var in reviewInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	rv := &models.Review{}
	in.apply(rv)
	if err := h.svc.Submit(c.Request.Context(), rv); err != nil {
		respondError(c, h.log, err, "review not found")
		return
	}
	h.notifier.ReviewSubmitted(rv)
	c.JSON(http.StatusCreated, gin.H{
		"id":      rv.ID,
		"status":  rv.Status,
		"message": "Спасибо! Отзыв появится после проверки.",
	})
}

func (h *ReviewHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	if !checkStatusFilter(c, lq, domain.IsReviewStatus) {
		return
	}
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rv, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "review not found")
		return
	}
	c.JSON(http.StatusOK, rv)
}

type adminReviewInput struct {
	reviewInput
	Status string `json:"status"`
}

func (in *adminReviewInput) status(c *gin.Context, def string) (string, bool) {
	if in.Status == "" {
		return def, true
	}
	if !domain.IsReviewStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + strings.Join(domain.ReviewStatuses, ", ")})
		return "", false
	}
	return in.Status, true
}

// Create handles POST /api/admin/reviews. Reviews entered by staff are
// approved unless a status is given.
func (h *ReviewHandler) Create(c *gin.Context) {
	var in adminReviewInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	status, ok := in.status(c, domain.ReviewStatusApproved)
	if !ok {
		return
	}
	rv := &models.Review{Status: status}
	in.apply(rv)
	if err := h.repo.Create(c.Request.Context(), rv); err != nil {
		respondError(c, h.log, err, "review not found")
		return
	}
	h.audit.Record(c, ActionCreate, resourceReview, rv.ID, nil)
	c.JSON(http.StatusCreated, rv)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in adminReviewInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	ctx := c.Request.Context()
	rv, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "review not found")
		return
	}
	status, ok := in.status(c, rv.Status)
	if !ok {
		return
	}
	in.apply(rv)
	rv.Status = status
	if err := h.repo.Update(ctx, rv); err != nil {
		respondError(c, h.log, err, "review not found")
		return
	}
	h.audit.Record(c, ActionUpdate, resourceReview, rv.ID, nil)
	c.JSON(http.StatusOK, rv)
}

// UpdateStatus handles PATCH /api/admin/reviews/:id (moderation).
func (h *ReviewHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in statusInput
	if !bindJSON(c, &in) {
		return
	}
	if !domain.IsReviewStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + strings.Join(domain.ReviewStatuses, ", ")})
		return
	}
	ctx := c.Request.Context()
	if err := h.repo.UpdateStatus(ctx, id, in.Status); err != nil {
		respondError(c, h.log, err, "review not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceReview, id, gin.H{"status": in.Status})
	rv, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "review not found")
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "review not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceReview, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
