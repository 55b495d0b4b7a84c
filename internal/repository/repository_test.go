package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryNormalize(t *testing.T) {
	q := repository.ListQuery{Page: 0, Limit: 500}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, repository.DefaultLimit, q.Limit)

	q = repository.ListQuery{Page: 3, Limit: 10}.Normalize()
	assert.Equal(t, 20, q.Offset())
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, repository.Pages(0, 10))
	assert.Equal(t, 1, repository.Pages(10, 10))
	assert.Equal(t, 2, repository.Pages(11, 10))
	assert.Equal(t, 0, repository.Pages(5, 0))
}

func TestContactRequestRepository_ListPaginationAndFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewContactRequestRepository(db)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		status := domain.RequestStatusNew
		if i%5 == 0 {
			status = domain.RequestStatusCompleted
		}
		require.NoError(t, repo.Create(ctx, &models.ContactRequest{
			Name:   fmt.Sprintf("Client %02d", i),
			Phone:  fmt.Sprintf("+7900000%04d", i),
			Status: status,
		}))
	}

	list, total, err := repo.List(ctx, repository.ListQuery{Page: 3, Limit: 10}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, list, 5)

	list, total, err = repo.List(ctx, repository.ListQuery{Status: domain.RequestStatusCompleted}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	for _, r := range list {
		assert.Equal(t, domain.RequestStatusCompleted, r.Status)
	}

	list, total, err = repo.List(ctx, repository.ListQuery{Search: "Client 07"}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Client 07", list[0].Name)
}

func TestContactRequestRepository_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewContactRequestRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 42, domain.RequestStatusCanceled), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), repository.ErrNotFound)

	req := &models.ContactRequest{Name: "Anna", Phone: "+79001112233", Status: domain.RequestStatusNew}
	require.NoError(t, repo.Create(ctx, req))
	require.NoError(t, repo.UpdateStatus(ctx, req.ID, domain.RequestStatusProcessing))
	got, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusProcessing, got.Status)

	require.NoError(t, repo.Delete(ctx, req.ID))
	assert.ErrorIs(t, repo.Delete(ctx, req.ID), repository.ErrNotFound)
}

func TestTransferRequestRepository_ReferenceAndPreload(t *testing.T) {
	db := testutil.NewTestDB(t)
	vehicles := repository.NewVehicleRepository(db)
	repo := repository.NewTransferRequestRepository(db)
	ctx := context.Background()

	v := &models.Vehicle{Name: "Skoda Octavia", Class: domain.VehicleClassComfort, Seats: 4, PriceMultiplier: 1, IsActive: true}
	require.NoError(t, vehicles.Create(ctx, v))

	tr := &models.TransferRequest{
		Name: "Ivan", Phone: "+79000000000",
		FromAddress: "Kaliningrad", ToAddress: "Gdansk",
		PickupAt: time.Now().Add(48 * time.Hour), Passengers: 2,
		VehicleID: &v.ID, Status: domain.RequestStatusNew,
	}
	require.NoError(t, repo.Create(ctx, tr))
	assert.Regexp(t, `^TR-[0-9A-F]{8}$`, tr.Reference)

	got, err := repo.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Vehicle)
	assert.Equal(t, "Skoda Octavia", got.Vehicle.Name)

	got.Comment = "two suitcases"
	got.Vehicle = nil
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "two suitcases", again.Comment)
	assert.Equal(t, tr.Reference, again.Reference)

	list, total, err := repo.List(ctx, repository.ListQuery{Search: tr.Reference}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].Vehicle)
}

func TestBlogRepository_SlugsAndPublished(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewBlogRepository(db)
	ctx := context.Background()

	now := time.Now()
	first := &models.BlogPost{Title: "Трансфер в Гданьск", Content: "..."}
	first.SetPublished(true, now)
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "transfer-v-gdansk", first.Slug)

	second := &models.BlogPost{Title: "Трансфер в Гданьск", Content: "draft"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, "transfer-v-gdansk-2", second.Slug)

	// Updating without changing the title keeps the slug.
	first.Excerpt = "short"
	require.NoError(t, repo.Update(ctx, first))
	assert.Equal(t, "transfer-v-gdansk", first.Slug)

	got, err := repo.GetPublishedBySlug(ctx, "transfer-v-gdansk")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = repo.GetPublishedBySlug(ctx, "transfer-v-gdansk-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, total, err := repo.ListPublished(ctx, repository.ListQuery{}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	_, total, err = repo.List(ctx, repository.ListQuery{Status: "draft"}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestReviewRepository_Stats(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewReviewRepository(db)
	ctx := context.Background()

	for _, r := range []struct {
		rating int
		status string
	}{
		{5, domain.ReviewStatusApproved},
		{4, domain.ReviewStatusApproved},
		{4, domain.ReviewStatusApproved},
		{1, domain.ReviewStatusPending},
		{2, domain.ReviewStatusRejected},
	} {
		require.NoError(t, repo.Create(ctx, &models.Review{AuthorName: "A", Text: "t", Rating: r.rating, Status: r.status}))
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Count)
	assert.InDelta(t, 4.333, stats.Average, 0.001)
	assert.EqualValues(t, 2, stats.Histogram[4])
	assert.EqualValues(t, 0, stats.Histogram[1])

	_, total, err := repo.ListApproved(ctx, repository.ListQuery{}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestReviewRepository_StatsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	stats, err := repository.NewReviewRepository(db).Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.Average)
	assert.Len(t, stats.Histogram, 5)
}

func TestRouteRepository_ActiveAndSlug(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRouteRepository(db)
	ctx := context.Background()

	active := &models.Route{FromCity: "Калининград", ToCity: "Вильнюс", PriceFrom: 180, Currency: "EUR", IsActive: true}
	hidden := &models.Route{FromCity: "Kaliningrad", ToCity: "Berlin", IsActive: false}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, hidden))
	assert.Equal(t, "kaliningrad-vilnyus", active.Slug)

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	_, err = repo.GetActiveBySlug(ctx, hidden.Slug)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.SetActive(ctx, hidden.ID, true))
	got, err := repo.GetActiveBySlug(ctx, hidden.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", got.ToCity)
}

func TestGalleryRepository_DeleteRemovesPhotos(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewGalleryRepository(db)
	ctx := context.Background()

	g := &models.PhotoGallery{Title: "Our cars", IsActive: true}
	require.NoError(t, repo.Create(ctx, g))
	require.NoError(t, repo.AddPhoto(ctx, &models.Photo{GalleryID: g.ID, URL: "https://cdn.example/2.jpg", SortOrder: 2}))
	require.NoError(t, repo.AddPhoto(ctx, &models.Photo{GalleryID: g.ID, URL: "https://cdn.example/1.jpg", SortOrder: 1}))

	got, err := repo.GetActiveByID(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, got.Photos, 2)
	assert.Equal(t, "https://cdn.example/1.jpg", got.Photos[0].URL)

	require.NoError(t, repo.Delete(ctx, g.ID))
	var remaining int64
	require.NoError(t, db.Model(&models.Photo{}).Count(&remaining).Error)
	assert.Zero(t, remaining)
	assert.ErrorIs(t, repo.Delete(ctx, g.ID), repository.ErrNotFound)
}

func TestSettingRepository_UpsertAndPublic(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSettingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SeedDefaults(ctx,
		map[string]string{"phone": "+7 1", "notification_email": "ops@example.com"},
		map[string]bool{"notification_email": true}))
	require.NoError(t, repo.SeedDefaults(ctx, map[string]string{"phone": "+7 ignored"}, nil))

	v, err := repo.Get(ctx, "phone")
	require.NoError(t, err)
	assert.Equal(t, "+7 1", v)

	require.NoError(t, repo.SetMany(ctx, map[string]string{"phone": "+7 2", "telegram": "@kgt"}, nil))
	v, err = repo.Get(ctx, "phone")
	require.NoError(t, err)
	assert.Equal(t, "+7 2", v)

	public, err := repo.GetPublic(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"phone": "+7 2", "telegram": "@kgt"}, public)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSingletonRepositories(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	tcRepo := repository.NewTransferConfigRepository(db)
	tc, err := tcRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTransferConfig().MinimumFare, tc.MinimumFare)

	tc.MinimumFare = 75
	require.NoError(t, tcRepo.Save(ctx, &models.TransferConfig{PricePerKm: 1.1, MinimumFare: 75, Currency: "EUR", RoadFactor: 1.2, AverageSpeedKmh: 65}))
	tc, err = tcRepo.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 75, tc.MinimumFare)
	var rows int64
	require.NoError(t, db.Model(&models.TransferConfig{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	hsRepo := repository.NewHomeSettingsRepository(db)
	hs, err := hsRepo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, hs.ShowReviews)
	require.NoError(t, hsRepo.Save(ctx, &models.HomeSettings{HeroTitle: "New hero"}))
	hs, err = hsRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New hero", hs.HeroTitle)
	assert.False(t, hs.ShowReviews)
}

func TestDashboardRepository_GetStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	contacts := repository.NewContactRequestRepository(db)
	reviews := repository.NewReviewRepository(db)

	require.NoError(t, contacts.Create(ctx, &models.ContactRequest{Name: "a", Phone: "1", Status: domain.RequestStatusNew}))
	require.NoError(t, contacts.Create(ctx, &models.ContactRequest{Name: "b", Phone: "2", Status: domain.RequestStatusNew}))
	require.NoError(t, contacts.Create(ctx, &models.ContactRequest{Name: "c", Phone: "3", Status: domain.RequestStatusCanceled}))
	require.NoError(t, reviews.Create(ctx, &models.Review{AuthorName: "r", Text: "t", Rating: 5, Status: domain.ReviewStatusApproved}))
	require.NoError(t, reviews.Create(ctx, &models.Review{AuthorName: "r", Text: "t", Rating: 3, Status: domain.ReviewStatusPending}))

	dash := repository.NewDashboardRepository(db)
	stats, err := dash.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.ContactRequests[domain.RequestStatusNew])
	assert.EqualValues(t, 1, stats.ContactRequests[domain.RequestStatusCanceled])
	assert.EqualValues(t, 0, stats.TransferRequests[domain.RequestStatusNew])
	assert.EqualValues(t, 1, stats.PendingReviews)
	assert.EqualValues(t, 1, stats.ApprovedReviews)
	assert.InDelta(t, 5.0, stats.AverageRating, 0.001)

	points, err := dash.RequestsByDay(ctx, &models.ContactRequest{}, 7)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.EqualValues(t, 3, points[0].Count)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, points[0].Date)
}

func TestDashboardRepository_AverageRatingRounded(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	reviews := repository.NewReviewRepository(db)
	for _, rating := range []int{5, 5, 4} {
		require.NoError(t, reviews.Create(ctx, &models.Review{AuthorName: "r", Text: "t", Rating: rating, Status: domain.ReviewStatusApproved}))
	}

	stats, err := repository.NewDashboardRepository(db).GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.7, stats.AverageRating)
}

func TestAdminUserRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewAdminUserRepository(db)
	ctx := context.Background()

	u := &models.AdminUser{Email: "boss@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	require.NoError(t, repo.Create(ctx, u))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetByEmail(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.TouchLogin(ctx, u.ID, time.Now()))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLoginAt)
}
