package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"kgtransfer/config"
	"kgtransfer/internal/domain"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/models"
	"kgtransfer/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotifier(t *testing.T, m *fakeMailer, hub *ws.Hub, attempts uint) *NotificationService {
	db := seededDB(t)
	svc := NewNotificationService(m, hub, newSettingsService(db), config.SMTPConfig{To: "office@example.com", Attempts: attempts}, logger.Nop())
	svc.retryDelay = time.Millisecond
	return svc
}

func TestNotificationService_ContactEmailAndEvent(t *testing.T) {
	m := &fakeMailer{}
	hub := ws.NewHub()
	admin := ws.NewClient(1)
	hub.Register(admin)
	svc := newNotifier(t, m, hub, 3)

	svc.ContactRequestCreated(&models.ContactRequest{ID: 7, Name: "Anna", Phone: "+79001112233", Email: "anna@example.com", Message: "Need a car"})
	svc.Wait()

	calls, sent := m.snapshot()
	assert.Equal(t, 1, calls)
	require.Len(t, sent, 1)
	assert.Equal(t, "office@example.com", sent[0].To)
	assert.Equal(t, "anna@example.com", sent[0].ReplyTo)
	assert.Contains(t, sent[0].Subject, "#7")
	assert.Contains(t, sent[0].Body, "Телефон: +79001112233")
	assert.Contains(t, sent[0].Body, "Need a car")

	select {
	case msg := <-admin.Send:
		var ev ws.Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		assert.Equal(t, domain.EventContactRequestCreated, ev.Type)
	default:
		t.Fatal("expected admin event")
	}
}

func TestNotificationService_RetriesThenDelivers(t *testing.T) {
	m := &fakeMailer{fail: 2}
	svc := newNotifier(t, m, nil, 3)

	svc.TransferRequestCreated(&models.TransferRequest{ID: 1, Reference: "TR-ABCDEF12", Name: "Ivan", Phone: "1", PickupAt: time.Now()})
	svc.Wait()

	calls, sent := m.snapshot()
	assert.Equal(t, 3, calls)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Subject, "TR-ABCDEF12")
}

func TestNotificationService_GivesUp(t *testing.T) {
	m := &fakeMailer{fail: -1}
	svc := newNotifier(t, m, nil, 2)

	assert.NotPanics(t, func() {
		svc.ApplicationRequestCreated(&models.ApplicationRequest{ID: 3, Name: "Oleg", Phone: "2"})
		svc.Wait()
	})
	calls, sent := m.snapshot()
	assert.Equal(t, 2, calls)
	assert.Empty(t, sent)
}

func TestNotificationService_RecipientOverride(t *testing.T) {
	m := &fakeMailer{}
	svc := newNotifier(t, m, nil, 1)
	require.NoError(t, svc.settings.Update(context.Background(), map[string]string{domain.SettingNotificationEmail: "boss@example.com"}))

	svc.ContactRequestCreated(&models.ContactRequest{ID: 1, Name: "A", Phone: "1"})
	svc.Wait()
	_, sent := m.snapshot()
	require.Len(t, sent, 1)
	assert.Equal(t, "boss@example.com", sent[0].To)
}

func TestNotificationService_NoMailer(t *testing.T) {
	db := seededDB(t)
	svc := NewNotificationService(nil, nil, newSettingsService(db), config.SMTPConfig{}, logger.Nop())
	assert.NotPanics(t, func() {
		svc.ContactRequestCreated(&models.ContactRequest{ID: 1})
		svc.ReviewSubmitted(&models.Review{ID: 1})
		svc.Wait()
	})
}
