package handler

import (
	"net/http"
	"strings"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	resourceBenefit = "benefit"
	resourceVehicle = "vehicle"
	resourceRoute   = "route"
)

type activeInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// bindActive reads an {"is_active": bool} toggle body.
func bindActive(c *gin.Context) (bool, bool) {
	var in activeInput
	if !bindJSON(c, &in) {
		return false, false
	}
	return *in.IsActive, true
}

// BenefitHandler manages the "why choose us" cards.
type BenefitHandler struct {
	repo  *repository.BenefitRepository
	audit *Auditor
	log   logger.Logger
}

func NewBenefitHandler(repo *repository.BenefitRepository, audit *Auditor, log logger.Logger) *BenefitHandler {
	return &BenefitHandler{repo: repo, audit: audit, log: log}
}

type benefitInput struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Icon        string `json:"icon" binding:"max=255"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (in *benefitInput) filled(c *gin.Context) bool {
	return requireNonBlank(c, "title", in.Title)
}

func (in *benefitInput) apply(b *models.Benefit) {
	b.Title = strings.TrimSpace(in.Title)
	b.Description = in.Description
	b.Icon = in.Icon
	b.SortOrder = in.SortOrder
	b.IsActive = boolOr(in.IsActive, true)
}

func (h *BenefitHandler) ListActive(c *gin.Context) {
	list, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	if list == nil {
		list = []models.Benefit{}
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *BenefitHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *BenefitHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "benefit not found")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BenefitHandler) Create(c *gin.Context) {
	var in benefitInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	b := &models.Benefit{}
	in.apply(b)
	if err := h.repo.Create(c.Request.Context(), b); err != nil {
		respondError(c, h.log, err, "benefit not found")
		return
	}
	h.audit.Record(c, ActionCreate, resourceBenefit, b.ID, nil)
	c.JSON(http.StatusCreated, b)
}

func (h *BenefitHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in benefitInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	ctx := c.Request.Context()
	b, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "benefit not found")
		return
	}
	in.apply(b)
	if err := h.repo.Update(ctx, b); err != nil {
		respondError(c, h.log, err, "benefit not found")
		return
	}
	h.audit.Record(c, ActionUpdate, resourceBenefit, b.ID, nil)
	c.JSON(http.StatusOK, b)
}

func (h *BenefitHandler) SetActive(c *gin.Context) {
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
		respondError(c, h.log, err, "benefit not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceBenefit, id, gin.H{"is_active": active})
	b, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "benefit not found")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BenefitHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "benefit not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceBenefit, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// VehicleHandler manages the fleet shown on the site and used for pricing.
type VehicleHandler struct {
	repo  *repository.VehicleRepository
	audit *Auditor
	log   logger.Logger
}

func NewVehicleHandler(repo *repository.VehicleRepository, audit *Auditor, log logger.Logger) *VehicleHandler {
	return &VehicleHandler{repo: repo, audit: audit, log: log}
}

type vehicleInput struct {
	Name            string  `json:"name" binding:"required,max=255"`
	Class           string  `json:"class" binding:"required,oneof=economy comfort business minivan minibus"`
	Seats           int     `json:"seats" binding:"required,min=1,max=60"`
	Luggage         int     `json:"luggage" binding:"min=0"`
	ImageURL        string  `json:"image_url" binding:"omitempty,url,max=512"`
	Description     string  `json:"description" binding:"max=5000"`
	PriceMultiplier float64 `json:"price_multiplier" binding:"omitempty,gt=0,max=10"`
	SortOrder       int     `json:"sort_order"`
	IsActive        *bool   `json:"is_active"`
}

func (in *vehicleInput) filled(c *gin.Context) bool {
	return requireNonBlank(c, "name", in.Name)
}

func (in *vehicleInput) apply(v *models.Vehicle) {
	v.Name = strings.TrimSpace(in.Name)
	v.Class = in.Class
	v.Seats = in.Seats
	v.Luggage = in.Luggage
	v.ImageURL = in.ImageURL
	v.Description = in.Description
	v.PriceMultiplier = in.PriceMultiplier
	if v.PriceMultiplier == 0 {
		v.PriceMultiplier = 1
	}
	v.SortOrder = in.SortOrder
	v.IsActive = boolOr(in.IsActive, true)
}

func (h *VehicleHandler) ListActive(c *gin.Context) {
	list, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	if list == nil {
		list = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// GetActive handles GET /api/vehicles/:id; inactive vehicles are hidden.
func (h *VehicleHandler) GetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := h.repo.GetActiveByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	c.JSON(http.StatusOK, v)
}

// List handles GET /api/admin/vehicles; status filters by vehicle class.
func (h *VehicleHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	if !checkStatusFilter(c, lq, domain.IsVehicleClass) {
		return
	}
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var in vehicleInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	v := &models.Vehicle{}
	in.apply(v)
	if err := h.repo.Create(c.Request.Context(), v); err != nil {
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	h.audit.Record(c, ActionCreate, resourceVehicle, v.ID, nil)
	c.JSON(http.StatusCreated, v)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in vehicleInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	ctx := c.Request.Context()
	v, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	in.apply(v)
	if err := h.repo.Update(ctx, v); err != nil {
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	h.audit.Record(c, ActionUpdate, resourceVehicle, v.ID, nil)
	c.JSON(http.StatusOK, v)
}

func (h *VehicleHandler) SetActive(c *gin.Context) {
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
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceVehicle, id, gin.H{"is_active": active})
	v, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceVehicle, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RouteHandler manages the marketed city pairs.
type RouteHandler struct {
	repo  *repository.RouteRepository
	audit *Auditor
	log   logger.Logger
}

func NewRouteHandler(repo *repository.RouteRepository, audit *Auditor, log logger.Logger) *RouteHandler {
	return &RouteHandler{repo: repo, audit: audit, log: log}
}

type routeInput struct {
	FromCity        string   `json:"from_city" binding:"required,max=120"`
	ToCity          string   `json:"to_city" binding:"required,max=120"`
	Slug            string   `json:"slug" binding:"max=255"`
	FromLat         *float64 `json:"from_lat" binding:"omitempty,min=-90,max=90"`
	FromLng         *float64 `json:"from_lng" binding:"omitempty,min=-180,max=180"`
	ToLat           *float64 `json:"to_lat" binding:"omitempty,min=-90,max=90"`
	ToLng           *float64 `json:"to_lng" binding:"omitempty,min=-180,max=180"`
	DistanceKm      float64  `json:"distance_km" binding:"min=0"`
	DurationMinutes int      `json:"duration_minutes" binding:"min=0"`
	PriceFrom       int64    `json:"price_from" binding:"min=0"`
	Currency        string   `json:"currency" binding:"omitempty,len=3"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"image_url" binding:"omitempty,url,max=512"`
	SortOrder       int      `json:"sort_order"`
	IsActive        *bool    `json:"is_active"`
}

func (in *routeInput) filled(c *gin.Context) bool {
	return requireNonBlank(c, "from_city", in.FromCity, "to_city", in.ToCity)
}

func (in *routeInput) apply(r *models.Route) {
	r.FromCity = strings.TrimSpace(in.FromCity)
	r.ToCity = strings.TrimSpace(in.ToCity)
	r.Slug = strings.TrimSpace(in.Slug)
	r.FromLat, r.FromLng = in.FromLat, in.FromLng
	r.ToLat, r.ToLng = in.ToLat, in.ToLng
	r.DistanceKm = in.DistanceKm
	r.DurationMinutes = in.DurationMinutes
	r.PriceFrom = in.PriceFrom
	r.Currency = strings.ToUpper(in.Currency)
	if r.Currency == "" {
		r.Currency = "EUR"
	}
	r.Description = in.Description
	r.ImageURL = in.ImageURL
	r.SortOrder = in.SortOrder
	r.IsActive = boolOr(in.IsActive, true)
}

func (h *RouteHandler) ListActive(c *gin.Context) {
	list, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	if list == nil {
		list = []models.Route{}
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *RouteHandler) GetBySlug(c *gin.Context) {
	r, err := h.repo.GetActiveBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err, "route not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RouteHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *RouteHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "route not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RouteHandler) Create(c *gin.Context) {
	var in routeInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	r := &models.Route{}
	in.apply(r)
	if err := h.repo.Create(c.Request.Context(), r); err != nil {
		respondError(c, h.log, err, "route not found")
		return
	}
	h.audit.Record(c, ActionCreate, resourceRoute, r.ID, gin.H{"slug": r.Slug})
	c.JSON(http.StatusCreated, r)
}

func (h *RouteHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in routeInput
	if !bindJSON(c, &in) || !in.filled(c) {
		return
	}
	ctx := c.Request.Context()
	r, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "route not found")
		return
	}
	in.apply(r)
	if err := h.repo.Update(ctx, r); err != nil {
		respondError(c, h.log, err, "route not found")
		return
	}
	h.audit.Record(c, ActionUpdate, resourceRoute, r.ID, gin.H{"slug": r.Slug})
	c.JSON(http.StatusOK, r)
}

func (h *RouteHandler) SetActive(c *gin.Context) {
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
		respondError(c, h.log, err, "route not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceRoute, id, gin.H{"is_active": active})
	r, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "route not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RouteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "route not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceRoute, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
