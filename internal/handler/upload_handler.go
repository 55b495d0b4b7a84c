package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"kgtransfer/internal/logger"
	"kgtransfer/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxImageBytes = 10 << 20
	maxVideoBytes = 100 << 20
)

var errMediaDisabled = errors.New("media storage is not configured")

// mediaUploader validates a multipart file and stores it on the media CDN.
// cloud may be nil when no credentials are configured.
type mediaUploader struct {
	cloud cloudinary.Client
	log   logger.Logger
}

// upload answers the client itself on failure and returns ok=false.
func (m *mediaUploader) upload(c *gin.Context, fh *multipart.FileHeader, prefix string) (*cloudinary.UploadResult, bool) {
	if m.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errMediaDisabled.Error()})
		return nil, false
	}
	ct := fh.Header.Get("Content-Type")
	var resourceType string
	var limit int64
	switch {
	case strings.HasPrefix(ct, "image/"):
		resourceType, limit = cloudinary.ResourceImage, maxImageBytes
	case strings.HasPrefix(ct, "video/"):
		resourceType, limit = cloudinary.ResourceVideo, maxVideoBytes
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image or a video"})
		return nil, false
	}
	if fh.Size > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return nil, false
	}
	defer f.Close()

	publicID := prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	res, err := m.cloud.Upload(c.Request.Context(), f, resourceType, publicID)
	if err != nil {
		m.log.Error("media upload failed", "file", fh.Filename, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return nil, false
	}
	return res, true
}

// remove deletes a previously uploaded asset; failures are only logged.
func (m *mediaUploader) remove(ctx context.Context, url string) {
	if m.cloud == nil || url == "" {
		return
	}
	if err := m.cloud.DeleteByURL(ctx, url); err != nil {
		m.log.Warn("media delete failed", "url", url, "error", err)
	}
}

type UploadHandler struct {
	media *mediaUploader
	audit *Auditor
}

func NewUploadHandler(cloud cloudinary.Client, audit *Auditor, log logger.Logger) *UploadHandler {
	return &UploadHandler{media: &mediaUploader{cloud: cloud, log: log}, audit: audit}
}

// Upload handles POST /api/admin/uploads (multipart field "file").
// The returned URL is then stored on a post, vehicle, route or gallery.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	res, ok := h.media.upload(c, fh, "media")
	if !ok {
		return
	}
	h.audit.Record(c, ActionCreate, "upload", 0, gin.H{"public_id": res.PublicID, "type": res.ResourceType})
	c.JSON(http.StatusCreated, res)
}
