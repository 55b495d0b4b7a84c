package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"kgtransfer/config"
	"kgtransfer/internal/database"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/router"
	"kgtransfer/internal/testutil"
	"kgtransfer/pkg/cloudinary"
	"kgtransfer/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

type fakeCloud struct {
	mu       sync.Mutex
	err      error
	uploaded []string
	deleted  []string
}

func (f *fakeCloud) Upload(_ context.Context, file io.Reader, resourceType, publicID string) (*cloudinary.UploadResult, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.uploaded = append(f.uploaded, resourceType+":"+publicID)
	base := fmt.Sprintf("https://res.cloudinary.com/demo/%s/upload", resourceType)
	return &cloudinary.UploadResult{
		URL:          base + "/" + publicID,
		ThumbnailURL: base + "/w_400/" + publicID,
		PublicID:     publicID,
		ResourceType: resourceType,
	}, nil
}

func (f *fakeCloud) DeleteByURL(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeCloud) calls() (uploaded, deleted []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uploaded...), append([]string(nil), f.deleted...)
}

type testEnv struct {
	t    *testing.T
	cfg  *config.Config
	db   *gorm.DB
	app  *router.App
	mail *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithMedia(t, nil)
}

// newTestEnvWithMedia wires cloud as the media store; nil leaves uploads disabled.
func newTestEnvWithMedia(t *testing.T, cloud *fakeCloud) *testEnv {
	t.Helper()
	cfg := testutil.TestConfig()
	cfg.SMTP.To = "office@transfer.example"
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, database.Seed(ctx, db))
	require.NoError(t, database.SeedBenefits(ctx, db))

	mail := &fakeMailer{}
	var media cloudinary.Client
	if cloud != nil {
		media = cloud
	}
	app := router.Setup(cfg, db, logger.Nop(), mail, media)
	_, err := app.Auth.SeedAdmin(ctx)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return &testEnv{t: t, cfg: cfg, db: db, app: app, mail: mail}
}

// do sends body (marshalled to JSON unless nil) and returns the recorder.
func (e *testEnv) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.app.Engine.ServeHTTP(w, req)
	return w
}

// upload posts a multipart body with fields and one "file" part of size
// bytes declared as contentType.
func (e *testEnv) upload(path string, fields map[string]string, contentType string, size int, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(e.t, mw.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="media.bin"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(e.t, err)
	_, err = part.Write(bytes.Repeat([]byte{0x42}, size))
	require.NoError(e.t, err)
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.app.Engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login() string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/admin/login", map[string]string{
		"email":    e.cfg.Admin.Email,
		"password": e.cfg.Admin.Password,
	}, "")
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(e.t, resp.AccessToken)
	return resp.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type listResponse struct {
	Data  []map[string]interface{} `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
	Pages int                      `json:"pages"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listResponse {
	t.Helper()
	var out listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
