package service

import (
	"context"
	"testing"
	"time"

	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"
	"kgtransfer/pkg/seo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSEOService(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()
	reviews := repository.NewReviewRepository(db)
	blog := repository.NewBlogRepository(db)
	routes := repository.NewRouteRepository(db)
	svc := NewSEOService("https://transfer.example", newSettingsService(db), NewReviewService(reviews), blog, routes)

	org, err := svc.Organization(ctx)
	require.NoError(t, err)
	assert.Nil(t, org.AggregateRating)
	assert.NotEmpty(t, org.Name)

	require.NoError(t, reviews.Create(ctx, &models.Review{AuthorName: "A", Text: "t", Rating: 5, Status: domain.ReviewStatusApproved}))
	require.NoError(t, reviews.Create(ctx, &models.Review{AuthorName: "B", Text: "t", Rating: 4, Status: domain.ReviewStatusApproved}))
	org, err = svc.Organization(ctx)
	require.NoError(t, err)
	require.NotNil(t, org.AggregateRating)
	assert.EqualValues(t, 2, org.AggregateRating.ReviewCount)
	assert.Equal(t, 4.5, org.AggregateRating.RatingValue)

	post := &models.BlogPost{Title: "Border tips", Content: "..."}
	post.SetPublished(true, time.Now())
	require.NoError(t, blog.Create(ctx, post))
	docs, err := svc.BlogPost(ctx, post.Slug)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	posting, ok := docs[0].(seo.BlogPosting)
	require.True(t, ok)
	assert.Equal(t, "https://transfer.example/blog/border-tips", posting.URL)

	_, err = svc.BlogPost(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, routes.Create(ctx, &models.Route{FromCity: "Kaliningrad", ToCity: "Klaipeda", PriceFrom: 110, Currency: "EUR", IsActive: true}))
	docs, err = svc.Route(ctx, "kaliningrad-klaipeda")
	require.NoError(t, err)
	offer, ok := docs[0].(seo.RouteService)
	require.True(t, ok)
	require.NotNil(t, offer.Offers)
	assert.Equal(t, "110", offer.Offers.Price)
}
