package handler

import (
	"errors"
	"net/http"
	"strconv"

	"kgtransfer/internal/auth"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/middleware"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers back-office sign-in, the admin's own account,
// the dashboard and the audit trail.
type AdminHandler struct {
	auth      *service.AuthService
	dashboard *repository.DashboardRepository
	audits    *repository.AuditLogRepository
	audit     *Auditor
	log       logger.Logger
}

func NewAdminHandler(
	authSvc *service.AuthService,
	dashboard *repository.DashboardRepository,
	audits *repository.AuditLogRepository,
	audit *Auditor,
	log logger.Logger,
) *AdminHandler {
	return &AdminHandler{auth: authSvc, dashboard: dashboard, audits: audits, audit: audit, log: log}
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var in loginInput
	if !bindJSON(c, &in) {
		return
	}
	u, tokens, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			h.log.Warn("admin login failed", "email", in.Email, "ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		respondError(c, h.log, err, "")
		return
	}
	c.Set(middleware.ContextAdminID, u.ID)
	h.audit.Record(c, ActionLogin, "admin_user", u.ID, nil)
	c.JSON(http.StatusOK, gin.H{
		"admin":         u,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles POST /api/admin/refresh.
func (h *AdminHandler) Refresh(c *gin.Context) {
	var in refreshInput
	if !bindJSON(c, &in) {
		return
	}
	tokens, err := h.auth.Refresh(c.Request.Context(), in.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
			return
		}
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Me handles GET /api/admin/me.
func (h *AdminHandler) Me(c *gin.Context) {
	u, err := h.auth.GetAdmin(c.Request.Context(), middleware.GetAdminID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
			return
		}
		respondError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, u)
}

type passwordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// ChangePassword handles PATCH /api/admin/password.
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var in passwordInput
	if !bindJSON(c, &in) {
		return
	}
	adminID := middleware.GetAdminID(c)
	if err := h.auth.ChangePassword(c.Request.Context(), adminID, in.CurrentPassword, in.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, h.log, err, "admin not found")
		return
	}
	h.audit.Record(c, ActionUpdate, "admin_password", adminID, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Dashboard handles GET /api/admin/dashboard?days=30.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}
	ctx := c.Request.Context()
	stats, err := h.dashboard.GetStats(ctx)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	series := gin.H{}
	for name, model := range map[string]interface{}{
		"contact_requests":     &models.ContactRequest{},
		"application_requests": &models.ApplicationRequest{},
		"transfer_requests":    &models.TransferRequest{},
	} {
		points, err := h.dashboard.RequestsByDay(ctx, model, days)
		if err != nil {
			respondError(c, h.log, err, "")
			return
		}
		if points == nil {
			points = []repository.TimeSeriesPoint{}
		}
		series[name] = points
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "by_day": series, "days": days})
}

// AuditLogs handles GET /api/admin/audit-logs; status filters by resource.
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	lq := parsePagination(c)
	list, total, err := h.audits.List(c.Request.Context(), lq)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	respondList(c, list, total, lq)
}
