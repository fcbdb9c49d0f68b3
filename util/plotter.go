package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"dealtown/models"
)

// RenderDealMap renders an HTML scatter map of venues. counts holds the number
// of active listings per venue ID and is shown in the point label.
// Venues without coordinates are skipped.
func RenderDealMap(w io.Writer, venues []models.VenueRecord, counts map[string]int) error {
	points := make([]opts.GeoData, 0, len(venues))
	for _, v := range venues {
		if !v.HasLocation() {
			continue
		}
		points = append(points, opts.GeoData{
			Name:  fmt.Sprintf("%s (%d)", v.Name, counts[v.ID]),
			Value: []float64{*v.Lng, *v.Lat, float64(counts[v.ID])},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "DealTown venues",
			Width:     "1000px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Venues",
			Subtitle: fmt.Sprintf("%d venues on the map", len(points)),
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Venues", types.ChartScatter, points,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render deal map: %w", err)
	}
	return nil
}
