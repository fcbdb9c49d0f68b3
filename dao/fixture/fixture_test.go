package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealtown/dao/postgres"
	"dealtown/filter"
	"dealtown/models"
)

const resourcesDir = "../../resources"

func TestListingSource_Deals(t *testing.T) {
	src := NewListingSource(resourcesDir)
	deals, err := src.ListListings(context.Background(), filter.KindDeal)
	require.NoError(t, err)

	byID := map[string]filter.Listing{}
	for _, d := range deals {
		byID[d.ID] = d
	}
	assert.NotContains(t, byID, "d-old", "inactive rows are skipped")
	assert.Equal(t, filter.Specific(time.Tuesday), byID["d-taco-tue"].Days)
	assert.True(t, byID["d-burger"].Days.IsEveryDay())
	assert.True(t, byID["d-market"].Days.IsEveryDay())
}

func TestListingSource_SchemesPerTable(t *testing.T) {
	src := NewListingSource(resourcesDir)

	hh, err := src.ListListings(context.Background(), filter.KindHappyHour)
	require.NoError(t, err)
	for _, h := range hh {
		if h.ID == "h-ponsonby" {
			assert.Equal(t, filter.Specific(time.Sunday), h.Days)
		}
	}

	lunch, err := src.ListListings(context.Background(), filter.KindLunch)
	require.NoError(t, err)
	for _, l := range lunch {
		if l.ID == "l-pho-thu" {
			assert.Equal(t, filter.Specific(time.Thursday), l.Days)
		}
	}

	_, err = src.ListListings(context.Background(), filter.KindAll)
	assert.Error(t, err)
}

func TestListingSource_Venues(t *testing.T) {
	venues, err := NewListingSource(resourcesDir).ListVenues(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, venues)
}

func TestSubmissionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	t0 := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, &models.Submission{ID: "b", Status: models.SubmissionPending, CreatedAt: t0.Add(time.Minute)}))
	require.NoError(t, store.Insert(ctx, &models.Submission{ID: "a", Status: models.SubmissionPending, CreatedAt: t0}))

	pending, err := store.ListByStatus(ctx, models.SubmissionPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].ID)

	require.NoError(t, store.UpdateStatus(ctx, "a", models.SubmissionApproved, t0))
	assert.ErrorIs(t, store.UpdateStatus(ctx, "a", models.SubmissionRejected, t0), postgres.ErrNotFound)

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, got.Status)
	require.NotNil(t, got.ReviewedAt)

	_, err = store.Get(ctx, "zzz")
	assert.ErrorIs(t, err, postgres.ErrNotFound)
}
