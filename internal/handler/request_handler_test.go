package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"kgtransfer/internal/auth"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRequest_CreateNotifiesOffice(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/contact-requests", map[string]string{
		"name":        " Анна ",
		"phone":       "+7 911 000-00-00",
		"email":       "anna@example.com",
		"message":     "Нужен трансфер в Гданьск",
		"source_page": "/contacts",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Анна", body["name"])
	assert.Equal(t, "new", body["status"])

	env.app.Notifier.Wait()
	sent := env.mail.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "office@transfer.example", sent[0].To)
	assert.Equal(t, "anna@example.com", sent[0].ReplyTo)
	assert.Contains(t, sent[0].Subject, "#1")
	assert.Contains(t, sent[0].Body, "Гданьск")
}

func TestContactRequest_MailFailureDoesNotFailRequest(t *testing.T) {
	env := newTestEnv(t)
	env.mail.err = errors.New("smtp down")

	w := env.do(http.MethodPost, "/api/contact-requests", map[string]string{"name": "Ivan", "phone": "123"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env.app.Notifier.Wait()

	list, total, err := repository.NewContactRequestRepository(env.db).List(context.Background(), repository.ListQuery{}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Ivan", list[0].Name)
	assert.Empty(t, env.mail.messages())
}

func TestContactRequest_Validation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name string
		body interface{}
		want string
	}{
		{"missing phone", map[string]string{"name": "Ivan"}, "phone is required"},
		{"missing name", map[string]string{"phone": "123"}, "name is required"},
		{"blank name", map[string]string{"name": "   ", "phone": "123"}, "name is required"},
		{"bad email", map[string]string{"name": "Ivan", "phone": "1", "email": "nope"}, "email must be a valid email"},
		{"broken json", `{"name":`, "invalid JSON body"},
		{"empty body", "", "invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/contact-requests", tt.body, "")
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decode(t, w)["error"])
		})
	}
}

func TestApplicationRequest_Create(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/application-requests", map[string]interface{}{
		"name": "Olga", "phone": "555", "from_city": "Калининград", "to_city": "Вильнюс",
		"travel_date": "2026-12-30",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 1, body["passengers"])
	assert.Contains(t, body["travel_date"], "2026-12-30")

	w = env.do(http.MethodPost, "/api/application-requests", map[string]interface{}{
		"name": "Olga", "phone": "555", "travel_date": "30.12.2026",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutes_RequireAdminToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/admin/contact-requests", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/api/admin/contact-requests", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	editor, err := auth.GenerateAccessToken(&env.cfg.JWT, 42, "editor@example.com", "EDITOR")
	require.NoError(t, err)
	w = env.do(http.MethodGet, "/api/admin/contact-requests", nil, editor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodGet, "/api/admin/contact-requests", nil, env.login())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminContactRequests_ListAndModerate(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()
	repo := repository.NewContactRequestRepository(env.db)
	ctx := context.Background()
	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Create(ctx, &models.ContactRequest{
			Name: fmt.Sprintf("Client %02d", i), Phone: "1", Status: "new",
		}))
	}

	list := decodeList(t, env.do(http.MethodGet, "/api/admin/contact-requests?page=3&limit=10", nil, token))
	assert.EqualValues(t, 25, list.Total)
	assert.Equal(t, 3, list.Page)
	assert.Equal(t, 10, list.Limit)
	assert.Equal(t, 3, list.Pages)
	assert.Len(t, list.Data, 5)

	w := env.do(http.MethodGet, "/api/admin/contact-requests?status=bogus", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPatch, "/api/admin/contact-requests/1", map[string]string{"status": "processing"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "processing", decode(t, w)["status"])

	w = env.do(http.MethodPatch, "/api/admin/contact-requests/1", map[string]string{"status": "done"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list = decodeList(t, env.do(http.MethodGet, "/api/admin/contact-requests?status=processing", nil, token))
	assert.EqualValues(t, 1, list.Total)

	w = env.do(http.MethodGet, "/api/admin/contact-requests/999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(http.MethodGet, "/api/admin/contact-requests/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodDelete, "/api/admin/contact-requests/2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodGet, "/api/admin/contact-requests/2", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	audit := decodeList(t, env.do(http.MethodGet, "/api/admin/audit-logs?status=contact_request", nil, token))
	assert.EqualValues(t, 2, audit.Total)
}

var referenceRe = regexp.MustCompile(`^TR-[0-9A-F]{8}$`)

func transferBody(pickup time.Time) map[string]interface{} {
	return map[string]interface{}{
		"name":         "Pavel",
		"phone":        "+7 900",
		"from_address": "Калининград, ул. Ленина 1",
		"to_address":   "Gdańsk, Długa 1",
		"from_lat":     54.7104,
		"from_lng":     20.4522,
		"to_lat":       54.3520,
		"to_lng":       18.6466,
		"pickup_at":    pickup.UTC().Format(time.RFC3339),
		"passengers":   2,
	}
}

func TestTransfer_CreatePricesBooking(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/transfers", transferBody(time.Now().Add(48*time.Hour)), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Regexp(t, referenceRe, body["reference"])
	assert.Equal(t, "new", body["status"])
	assert.Equal(t, "EUR", body["currency"])
	assert.Greater(t, body["estimated_price"].(float64), 60.0)
	assert.Greater(t, body["distance_km"].(float64), 120.0)

	env.app.Notifier.Wait()
	sent := env.mail.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Subject, body["reference"])
}

func TestTransfer_CreateRejectsRuleViolations(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/transfers", transferBody(time.Now().Add(time.Hour)), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "pickup_at")

	crowd := transferBody(time.Now().Add(48 * time.Hour))
	crowd["passengers"] = 40
	w = env.do(http.MethodPost, "/api/transfers", crowd, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "passengers")

	missing := transferBody(time.Now().Add(48 * time.Hour))
	delete(missing, "pickup_at")
	w = env.do(http.MethodPost, "/api/transfers", missing, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "pickup_at is required", decode(t, w)["error"])
}

func TestTransfer_EstimateAndAdminUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	w := env.do(http.MethodPost, "/api/transfers/estimate", map[string]interface{}{
		"from": map[string]float64{"lat": 54.7104, "lng": 20.4522},
		"to":   map[string]float64{"lat": 54.3520, "lng": 18.6466},
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	est := decode(t, w)
	assert.Greater(t, est["price"].(float64), 0.0)

	w = env.do(http.MethodPost, "/api/transfers/estimate", map[string]interface{}{
		"from": map[string]float64{"lat": 54.7, "lng": 20.4},
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/transfers", transferBody(time.Now().Add(48*time.Hour)), "")
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"]

	update := transferBody(time.Now().Add(2 * time.Hour))
	update["estimated_price"] = 120
	update["currency"] = "eur"
	update["status"] = "processing"
	w = env.do(http.MethodPut, fmt.Sprintf("/api/admin/transfers/%v", id), update, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 120, body["estimated_price"])
	assert.Equal(t, "EUR", body["currency"])
	assert.Equal(t, "processing", body["status"])

	update["status"] = "lost"
	w = env.do(http.MethodPut, fmt.Sprintf("/api/admin/transfers/%v", id), update, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
