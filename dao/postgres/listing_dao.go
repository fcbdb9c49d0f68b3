package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"dealtown/filter"
	"dealtown/models"
)

var ErrNotFound = errors.New("not found")

// ListingDAO reads the listing tables and venues.
type ListingDAO struct {
	db  *sql.DB
	log *zap.Logger
}

func NewListingDAO(db *sql.DB, log *zap.Logger) *ListingDAO {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListingDAO{db: db, log: log.With(zap.String("component", "ListingDAO"))}
}

func listingQuery(t models.ListingTable) string {
	return fmt.Sprintf(`SELECT id, venue_id, title, details, price_cents, %s, start_time, end_time, is_active
FROM %s
WHERE is_active = true
ORDER BY id`, t.DayColumn, t.Table)
}

// ListListings returns the active listings of kind, normalized with the
// table's declared day scheme.
func (d *ListingDAO) ListListings(ctx context.Context, kind filter.Kind) ([]filter.Listing, error) {
	table, ok := models.ListingTables[kind]
	if !ok {
		return nil, fmt.Errorf("no listing table for kind %q", kind)
	}

	rows, err := d.db.QueryContext(ctx, listingQuery(table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table.Table, err)
	}
	defer rows.Close()

	var out []filter.Listing
	for rows.Next() {
		rec, err := scanListing(rows, table)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table.Table, err)
		}
		out = append(out, rec.ToListing(kind, table.Scheme))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table.Table, err)
	}
	d.log.Debug("listings loaded", zap.String("table", table.Table), zap.Int("count", len(out)))
	return out, nil
}

func scanListing(rows *sql.Rows, table models.ListingTable) (models.ListingRecord, error) {
	var (
		rec        models.ListingRecord
		venueID    sql.NullString
		title      sql.NullString
		details    sql.NullString
		price      sql.NullInt64
		dayArray   pq.Int64Array
		dayOfWeek  sql.NullString
		start, end sql.NullString
	)

	var dayDest interface{} = &dayArray
	if !table.DayArray {
		dayDest = &dayOfWeek
	}
	if err := rows.Scan(&rec.ID, &venueID, &title, &details, &price, dayDest, &start, &end, &rec.IsActive); err != nil {
		return rec, err
	}

	rec.Title = title.String
	rec.Details = details.String
	if venueID.Valid {
		rec.VenueID = &venueID.String
	}
	if price.Valid {
		p := int(price.Int64)
		rec.PriceCents = &p
	}
	if start.Valid {
		rec.StartTime = &start.String
	}
	if end.Valid {
		rec.EndTime = &end.String
	}

	if table.DayArray {
		if dayArray != nil {
			rec.Days = make([]interface{}, len(dayArray))
			for i, v := range dayArray {
				rec.Days[i] = v
			}
		}
	} else if dayOfWeek.Valid {
		rec.DayOfWeek = dayOfWeek.String
	}
	return rec, nil
}

const venuesQuery = `SELECT id, name, address, lat, lng, website_url FROM venues ORDER BY id`

// ListVenues returns every venue row.
func (d *ListingDAO) ListVenues(ctx context.Context) ([]models.VenueRecord, error) {
	rows, err := d.db.QueryContext(ctx, venuesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var out []models.VenueRecord
	for rows.Next() {
		var (
			v        models.VenueRecord
			name     sql.NullString
			address  sql.NullString
			lat, lng sql.NullFloat64
			website  sql.NullString
		)
		if err := rows.Scan(&v.ID, &name, &address, &lat, &lng, &website); err != nil {
			return nil, fmt.Errorf("failed to scan venue row: %w", err)
		}
		v.Name = name.String
		v.Address = address.String
		v.WebsiteURL = website.String
		if lat.Valid && lng.Valid {
			v.Lat = &lat.Float64
			v.Lng = &lng.Float64
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate venues: %w", err)
	}
	return out, nil
}
