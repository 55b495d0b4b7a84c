package handler

import (
	"net/http"
	"strings"
	"time"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/internal/service"
	"kgtransfer/pkg/location"

	"github.com/gin-gonic/gin"
)

const (
	resourceContact     = "contact_request"
	resourceApplication = "application_request"
	resourceTransfer    = "transfer_request"
)

type statusInput struct {
	Status string `json:"status" binding:"required"`
}

// bindRequestStatus reads a status body and checks it against the request status set.
func bindRequestStatus(c *gin.Context) (string, bool) {
	var in statusInput
	if !bindJSON(c, &in) {
		return "", false
	}
	if !domain.IsRequestStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + strings.Join(domain.RequestStatuses, ", ")})
		return "", false
	}
	return in.Status, true
}

// ContactHandler serves the contact form and its admin list.
type ContactHandler struct {
	repo     *repository.ContactRequestRepository
	notifier *service.NotificationService
	audit    *Auditor
	log      logger.Logger
}

func NewContactHandler(repo *repository.ContactRequestRepository, notifier *service.NotificationService, audit *Auditor, log logger.Logger) *ContactHandler {
	return &ContactHandler{repo: repo, notifier: notifier, audit: audit, log: log}
}

type contactInput struct {
	Name       string `json:"name" binding:"required,max=120"`
	Phone      string `json:"phone" binding:"required,max=40"`
	Email      string `json:"email" binding:"omitempty,email,max=255"`
	Message    string `json:"message" binding:"max=5000"`
	SourcePage string `json:"source_page" binding:"max=255"`
}

// Create handles POST /api/contact-requests. The office is notified in the
// background; a failed email does not affect the response.
func (h *ContactHandler) Create(c *gin.Context) {
	var in contactInput
	if !bindJSON(c, &in) || !requireNonBlank(c, "name", in.Name, "phone", in.Phone) {
		return
	}
	req := &models.ContactRequest{
		Name:       strings.TrimSpace(in.Name),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		Message:    strings.TrimSpace(in.Message),
		SourcePage: in.SourcePage,
		Status:     domain.RequestStatusNew,
	}
	if err := h.repo.Create(c.Request.Context(), req); err != nil {
		respondError(c, h.log, err, "contact request not found")
		return
	}
	h.notifier.ContactRequestCreated(req)
	c.JSON(http.StatusCreated, req)
}

// List handles GET /api/admin/contact-requests.
func (h *ContactHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	if !checkStatusFilter(c, lq, domain.IsRequestStatus) {
		return
	}
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "contact request not found")
		return
	}
	c.JSON(http.StatusOK, req)
}

// UpdateStatus handles PATCH /api/admin/contact-requests/:id.
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status, ok := bindRequestStatus(c)
	if !ok {
		return
	}
	if err := h.repo.UpdateStatus(c.Request.Context(), id, status); err != nil {
		respondError(c, h.log, err, "contact request not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceContact, id, gin.H{"status": status})
	req, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "contact request not found")
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "contact request not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceContact, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ApplicationHandler serves the short trip application form.
type ApplicationHandler struct {
	repo     *repository.ApplicationRequestRepository
	notifier *service.NotificationService
	audit    *Auditor
	log      logger.Logger
}

func NewApplicationHandler(repo *repository.ApplicationRequestRepository, notifier *service.NotificationService, audit *Auditor, log logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{repo: repo, notifier: notifier, audit: audit, log: log}
}

type applicationInput struct {
	Name       string `json:"name" binding:"required,max=120"`
	Phone      string `json:"phone" binding:"required,max=40"`
	Email      string `json:"email" binding:"omitempty,email,max=255"`
	FromCity   string `json:"from_city" binding:"max=120"`
	ToCity     string `json:"to_city" binding:"max=120"`
	TravelDate string `json:"travel_date"`
	Passengers int    `json:"passengers" binding:"omitempty,min=1,max=50"`
	Comment    string `json:"comment" binding:"max=5000"`
}

// parseDate accepts YYYY-MM-DD or RFC 3339.
func parseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// Create handles POST /api/application-requests.
func (h *ApplicationHandler) Create(c *gin.Context) {
	var in applicationInput
	if !bindJSON(c, &in) || !requireNonBlank(c, "name", in.Name, "phone", in.Phone) {
		return
	}
	date, ok := parseDate(in.TravelDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "travel_date must be YYYY-MM-DD"})
		return
	}
	if in.Passengers == 0 {
		in.Passengers = 1
	}
	req := &models.ApplicationRequest{
		Name:       strings.TrimSpace(in.Name),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		FromCity:   strings.TrimSpace(in.FromCity),
		ToCity:     strings.TrimSpace(in.ToCity),
		TravelDate: date,
		Passengers: in.Passengers,
		Comment:    strings.TrimSpace(in.Comment),
		Status:     domain.RequestStatusNew,
	}
	if err := h.repo.Create(c.Request.Context(), req); err != nil {
		respondError(c, h.log, err, "application not found")
		return
	}
	h.notifier.ApplicationRequestCreated(req)
	c.JSON(http.StatusCreated, req)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	if !checkStatusFilter(c, lq, domain.IsRequestStatus) {
		return
	}
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "application not found")
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status, ok := bindRequestStatus(c)
	if !ok {
		return
	}
	if err := h.repo.UpdateStatus(c.Request.Context(), id, status); err != nil {
		respondError(c, h.log, err, "application not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceApplication, id, gin.H{"status": status})
	req, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "application not found")
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "application not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceApplication, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TransferHandler serves bookings, fare estimates and the admin booking list.
type TransferHandler struct {
	repo     *repository.TransferRequestRepository
	svc      *service.TransferService
	pricing  *service.PricingService
	notifier *service.NotificationService
	audit    *Auditor
	log      logger.Logger
}

func NewTransferHandler(
	repo *repository.TransferRequestRepository,
	svc *service.TransferService,
	pricing *service.PricingService,
	notifier *service.NotificationService,
	audit *Auditor,
	log logger.Logger,
) *TransferHandler {
	return &TransferHandler{repo: repo, svc: svc, pricing: pricing, notifier: notifier, audit: audit, log: log}
}

type transferInput struct {
	Name        string    `json:"name" binding:"required,max=120"`
	Phone       string    `json:"phone" binding:"required,max=40"`
	Email       string    `json:"email" binding:"omitempty,email,max=255"`
	FromAddress string    `json:"from_address" binding:"required,max=255"`
	ToAddress   string    `json:"to_address" binding:"required,max=255"`
	FromLat     *float64  `json:"from_lat"`
	FromLng     *float64  `json:"from_lng"`
	ToLat       *float64  `json:"to_lat"`
	ToLng       *float64  `json:"to_lng"`
	PickupAt    time.Time `json:"pickup_at" binding:"required"`
	Passengers  int       `json:"passengers" binding:"required,min=1"`
	Luggage     int       `json:"luggage" binding:"min=0"`
	ChildSeat   bool      `json:"child_seat"`
	VehicleID   *uint     `json:"vehicle_id"`
	RouteID     *uint     `json:"route_id"`
	Comment     string    `json:"comment" binding:"max=5000"`
}

func (in *transferInput) apply(t *models.TransferRequest) {
	t.Name = strings.TrimSpace(in.Name)
	t.Phone = strings.TrimSpace(in.Phone)
	t.Email = strings.TrimSpace(in.Email)
	t.FromAddress = strings.TrimSpace(in.FromAddress)
	t.ToAddress = strings.TrimSpace(in.ToAddress)
	t.FromLat, t.FromLng = in.FromLat, in.FromLng
	t.ToLat, t.ToLng = in.ToLat, in.ToLng
	t.PickupAt = in.PickupAt
	t.Passengers = in.Passengers
	t.Luggage = in.Luggage
	t.ChildSeat = in.ChildSeat
	t.VehicleID = in.VehicleID
	t.RouteID = in.RouteID
	t.Comment = strings.TrimSpace(in.Comment)
}

// Create handles POST /api/transfers.
func (h *TransferHandler) Create(c *gin.Context) {
	var in transferInput
	if !bindJSON(c, &in) || !requireNonBlank(c, "name", in.Name, "phone", in.Phone, "from_address", in.FromAddress, "to_address", in.ToAddress) {
		return
	}
	req := &models.TransferRequest{}
	in.apply(req)
	if err := h.svc.Create(c.Request.Context(), req); err != nil {
		respondError(c, h.log, err, "transfer not found")
		return
	}
	h.notifier.TransferRequestCreated(req)
	c.JSON(http.StatusCreated, req)
}

type estimateInput struct {
	From      *location.Point `json:"from" binding:"required"`
	To        *location.Point `json:"to" binding:"required"`
	VehicleID *uint           `json:"vehicle_id"`
}

// Estimate handles POST /api/transfers/estimate.
func (h *TransferHandler) Estimate(c *gin.Context) {
	var in estimateInput
	if !bindJSON(c, &in) {
		return
	}
	est, err := h.pricing.Estimate(c.Request.Context(), service.EstimateInput{From: *in.From, To: *in.To, VehicleID: in.VehicleID})
	if err != nil {
		respondError(c, h.log, err, "vehicle not found")
		return
	}
	c.JSON(http.StatusOK, est)
}

func (h *TransferHandler) List(c *gin.Context) {
	lq := parsePagination(c)
	if !checkStatusFilter(c, lq, domain.IsRequestStatus) {
		return
	}
	list, total, err := h.repo.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}

func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "transfer not found")
		return
	}
	c.JSON(http.StatusOK, req)
}

type transferUpdateInput struct {
	transferInput
	DistanceKm      float64 `json:"distance_km" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"min=0"`
	EstimatedPrice  int64   `json:"estimated_price" binding:"min=0"`
	Currency        string  `json:"currency" binding:"omitempty,len=3"`
	Status          string  `json:"status"`
}

// Update handles PUT /api/admin/transfers/:id. Office staff may correct any
// field, including the quoted price; booking rules are not re-applied.
func (h *TransferHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in transferUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	if in.Status != "" && !domain.IsRequestStatus(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: " + strings.Join(domain.RequestStatuses, ", ")})
		return
	}
	ctx := c.Request.Context()
	req, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "transfer not found")
		return
	}
	in.apply(req)
	req.DistanceKm = in.DistanceKm
	req.DurationMinutes = in.DurationMinutes
	req.EstimatedPrice = in.EstimatedPrice
	if in.Currency != "" {
		req.Currency = strings.ToUpper(in.Currency)
	}
	if in.Status != "" {
		req.Status = in.Status
	}
	req.Vehicle, req.Route = nil, nil
	if err := h.repo.Update(ctx, req); err != nil {
		respondError(c, h.log, err, "transfer not found")
		return
	}
	h.audit.Record(c, ActionUpdate, resourceTransfer, id, nil)
	fresh, err := h.repo.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "transfer not found")
		return
	}
	c.JSON(http.StatusOK, fresh)
}

func (h *TransferHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status, ok := bindRequestStatus(c)
	if !ok {
		return
	}
	if err := h.repo.UpdateStatus(c.Request.Context(), id, status); err != nil {
		respondError(c, h.log, err, "transfer not found")
		return
	}
	h.audit.Record(c, ActionStatus, resourceTransfer, id, gin.H{"status": status})
	req, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "transfer not found")
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *TransferHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "transfer not found")
		return
	}
	h.audit.Record(c, ActionDelete, resourceTransfer, id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
