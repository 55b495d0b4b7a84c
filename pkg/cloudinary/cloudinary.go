package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Resource types accepted by Upload.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
)

// Client uploads site media (vehicle photos, blog covers, gallery images, hero videos).
type Client interface {
	Upload(ctx context.Context, file io.Reader, resourceType, publicID string) (*UploadResult, error)
	DeleteByURL(ctx context.Context, url string) error
}

type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
}

// Optimized image params for fast frontend loading
const (
	ImageWidth = 1600
	ThumbWidth = 400
)

// Eager transformations for upload (single string per SDK)
const (
	imageEager = "q_auto,f_auto,w_400,c_fill"
	videoEager = "q_auto:low,f_auto,w_1280"
)

var eagerAsyncFalse = false

var ErrUnsupportedType = errors.New("unsupported resource type")

// BuildOptimizedImageURL returns a Cloudinary URL with transformations for optimized delivery.
func BuildOptimizedImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ImageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

// VideoPosterURL is the first frame of an uploaded video as a JPEG.
func VideoPosterURL(cloudName, publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/video/upload/so_0/%s.jpg", cloudName, publicID)
}

type clientImpl struct {
	cloudName string
	folder    string
	uploader  *uploader.API
}

// Upload stores an image or video under the configured folder with eager optimizations.
func (c *clientImpl) Upload(ctx context.Context, file io.Reader, resourceType, publicID string) (*UploadResult, error) {
	params := uploader.UploadParams{
		Folder:       c.folder,
		PublicID:     publicID,
		ResourceType: resourceType,
		EagerAsync:   &eagerAsyncFalse,
	}
	switch resourceType {
	case ResourceImage:
		params.Eager = imageEager
	case ResourceVideo:
		params.Eager = videoEager
	default:
		return nil, ErrUnsupportedType
	}
	result, err := c.uploader.Upload(ctx, file, params)
	if err != nil {
		return nil, err
	}
	if result.Error.Message != "" {
		return nil, errors.New(result.Error.Message)
	}
	out := &UploadResult{URL: result.SecureURL, PublicID: result.PublicID, ResourceType: resourceType}
	if len(result.Eager) > 0 {
		out.ThumbnailURL = result.Eager[0].SecureURL
	}
	if out.ThumbnailURL == "" {
		if resourceType == ResourceVideo {
			out.ThumbnailURL = VideoPosterURL(c.cloudName, result.PublicID)
		} else {
			out.ThumbnailURL = BuildOptimizedImageURL(c.cloudName, result.PublicID, ThumbWidth)
		}
	}
	return out, nil
}

// DeleteByURL destroys the asset a delivery URL points to. URLs from other hosts are ignored.
func (c *clientImpl) DeleteByURL(ctx context.Context, url string) error {
	resourceType, publicID, ok := ParseDeliveryURL(url)
	if !ok {
		return nil
	}
	_, err := c.uploader.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	return err
}

// ParseDeliveryURL extracts resource type and public ID from a
// res.cloudinary.com URL such as .../image/upload/v123/folder/name.jpg.
func ParseDeliveryURL(url string) (resourceType, publicID string, ok bool) {
	const host = "res.cloudinary.com/"
	i := strings.Index(url, host)
	if i < 0 {
		return "", "", false
	}
	parts := strings.Split(url[i+len(host):], "/")
	// cloud / type / upload / [transformations] / [version] / public id...
	if len(parts) < 4 || parts[2] != "upload" {
		return "", "", false
	}
	resourceType = parts[1]
	rest := parts[3:]
	for j, p := range rest {
		if isVersion(p) {
			rest = rest[j+1:]
			break
		}
	}
	if len(rest) > 1 && strings.Contains(rest[0], "_") && strings.Contains(rest[0], ",") {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", "", false
	}
	publicID = strings.Join(rest, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	return resourceType, publicID, publicID != ""
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewClientFromParams builds a Client from Cloudinary credentials and a target folder.
func NewClientFromParams(cloudName, apiKey, apiSecret, folder string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{
		cloudName: cloudName,
		folder:    folder,
		uploader:  up,
	}, nil
}
