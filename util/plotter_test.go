package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealtown/models"
)

func TestRenderDealMap(t *testing.T) {
	lat, lng := -36.8443, 174.7676
	venues := []models.VenueRecord{
		{ID: "v1", Name: "Taco Joint", Lat: &lat, Lng: &lng},
		{ID: "v2", Name: "Hidden Bar"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderDealMap(&buf, venues, map[string]int{"v1": 3}))

	html := buf.String()
	assert.Contains(t, html, "DealTown venues")
	assert.Contains(t, html, "Taco Joint (3)")
	assert.NotContains(t, html, "Hidden Bar")
}
