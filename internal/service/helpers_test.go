package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"kgtransfer/internal/database"
	"kgtransfer/internal/repository"
	"kgtransfer/internal/testutil"
	"kgtransfer/pkg/mailer"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	mu    sync.Mutex
	fail  int
	calls int
	sent  []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail < 0 || m.calls <= m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) snapshot() (int, []mailer.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, append([]mailer.Message(nil), m.sent...)
}

func newSettingsService(db *gorm.DB) *SettingsService {
	return NewSettingsService(
		repository.NewSettingRepository(db),
		repository.NewHomeSettingsRepository(db),
		repository.NewTransferConfigRepository(db),
		database.PrivateSettings,
	)
}

func seededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.NewTestDB(t)
	require.NoError(t, database.Seed(context.Background(), db))
	return db
}

func ptr[T any](v T) *T { return &v }
