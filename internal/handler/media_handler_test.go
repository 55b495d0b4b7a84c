package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mb = 1 << 20

func TestUpload_StoresMedia(t *testing.T) {
	cloud := &fakeCloud{}
	env := newTestEnvWithMedia(t, cloud)
	token := env.login()

	w := env.upload("/api/admin/uploads", nil, "image/png", 2048, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode(t, w)
	assert.Equal(t, "image", res["resource_type"])
	assert.True(t, strings.HasPrefix(res["url"].(string), "https://res.cloudinary.com/demo/image/upload/media_"), res["url"])
	assert.NotEmpty(t, res["thumbnail_url"])

	// videos get the larger limit
	w = env.upload("/api/admin/uploads", nil, "video/mp4", 11*mb, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "video", decode(t, w)["resource_type"])

	uploaded, _ := cloud.calls()
	require.Len(t, uploaded, 2)
	assert.True(t, strings.HasPrefix(uploaded[0], "image:media_"))
	assert.True(t, strings.HasPrefix(uploaded[1], "video:media_"))

	w = env.do(http.MethodGet, "/api/admin/audit-logs?status=upload", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeList(t, w).Total)
}

func TestUpload_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int
		wantCode    int
	}{
		{name: "not media", contentType: "application/pdf", size: 100, wantCode: http.StatusBadRequest},
		{name: "image over 10MB", contentType: "image/jpeg", size: 10*mb + 1, wantCode: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloud := &fakeCloud{}
			env := newTestEnvWithMedia(t, cloud)
			token := env.login()

			w := env.upload("/api/admin/uploads", nil, tt.contentType, tt.size, token)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			uploaded, _ := cloud.calls()
			assert.Empty(t, uploaded)
		})
	}
}

func TestUpload_StorageFailure(t *testing.T) {
	cloud := &fakeCloud{err: errors.New("cloudinary: 500")}
	env := newTestEnvWithMedia(t, cloud)
	token := env.login()

	w := env.upload("/api/admin/uploads", nil, "image/png", 512, token)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "upload failed", decode(t, w)["error"])
}

func TestGalleryPhoto_MultipartLifecycle(t *testing.T) {
	cloud := &fakeCloud{}
	env := newTestEnvWithMedia(t, cloud)
	token := env.login()

	w := env.do(http.MethodPost, "/api/admin/galleries", map[string]interface{}{"title": "Наш автопарк"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	photos := fmt.Sprintf("/api/admin/galleries/%v/photos", decode(t, w)["id"])

	w = env.upload(photos, map[string]string{"caption": "Салон", "alt": "Mercedes V-Class", "sort_order": "2"}, "image/jpeg", 4096, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	photo := decode(t, w)
	url := photo["url"].(string)
	assert.True(t, strings.HasPrefix(url, "https://res.cloudinary.com/demo/image/upload/gallery_"), url)
	assert.True(t, strings.HasPrefix(photo["thumbnail_url"].(string), "https://res.cloudinary.com/demo/image/upload/w_400/gallery_"))
	assert.Equal(t, "Салон", photo["caption"])
	assert.Equal(t, "Mercedes V-Class", photo["alt"])
	assert.EqualValues(t, 2, photo["sort_order"])

	w = env.upload(photos, nil, "text/plain", 100, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.upload(photos, nil, "image/jpeg", 10*mb+1, token)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	w = env.upload("/api/admin/galleries/999/photos", nil, "image/jpeg", 100, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	uploaded, _ := cloud.calls()
	require.Len(t, uploaded, 1)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/admin/photos/%v", photo["id"]), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, deleted := cloud.calls()
	assert.Equal(t, []string{url}, deleted)
}
