package handler

import (
	"encoding/json"
	"strconv"

	"kgtransfer/internal/logger"
	"kgtransfer/internal/middleware"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"

	"github.com/gin-gonic/gin"
)

// Audit actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionStatus = "status"
	ActionDelete = "delete"
	ActionLogin  = "login"
)

// Auditor records back-office mutations. Failures are logged, never returned.
type Auditor struct {
	repo *repository.AuditLogRepository
	log  logger.Logger
}

func NewAuditor(repo *repository.AuditLogRepository, log logger.Logger) *Auditor {
	return &Auditor{repo: repo, log: log}
}

func (a *Auditor) Record(c *gin.Context, action, resource string, id uint, meta interface{}) {
	entry := &models.AuditLog{
		Action:    action,
		Resource:  resource,
		IP:        c.ClientIP(),
		UserAgent: truncate(c.Request.UserAgent(), 512),
	}
	if id != 0 {
		entry.ResourceID = strconv.FormatUint(uint64(id), 10)
	}
	if adminID := middleware.GetAdminID(c); adminID != 0 {
		entry.AdminID = &adminID
	}
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			entry.Metadata = string(b)
		}
	}
	if err := a.repo.Create(c.Request.Context(), entry); err != nil {
		a.log.Error("audit log write failed", "action", action, "resource", resource, "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
