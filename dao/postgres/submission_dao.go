package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"dealtown/models"
)

// SubmissionDAO stores "suggest a deal" forms awaiting moderation.
type SubmissionDAO struct {
	db *sql.DB
}

func NewSubmissionDAO(db *sql.DB) *SubmissionDAO {
	return &SubmissionDAO{db: db}
}

const insertSubmission = `INSERT INTO submissions
(id, venue_name, address, website_url, kind, title, details, price_cents, days, start_time, end_time, submitter_email, status, client_ip, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

func (d *SubmissionDAO) Insert(ctx context.Context, s *models.Submission) error {
	var price sql.NullInt64
	if s.PriceCents != nil {
		price = sql.NullInt64{Int64: int64(*s.PriceCents), Valid: true}
	}
	_, err := d.db.ExecContext(ctx, insertSubmission,
		s.ID, s.VenueName, s.Address, s.WebsiteURL, s.Kind, s.Title, s.Details, price,
		pq.Array(s.Days), s.StartTime, s.EndTime, s.SubmitterEmail, string(s.Status), s.ClientIP, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert submission %s: %w", s.ID, err)
	}
	return nil
}

const selectSubmissions = `SELECT id, venue_name, address, website_url, kind, title, details, price_cents, days,
start_time, end_time, submitter_email, status, client_ip, created_at, reviewed_at
FROM submissions`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var (
		s        models.Submission
		price    sql.NullInt64
		days     pq.StringArray
		status   string
		reviewed sql.NullTime
	)
	err := row.Scan(&s.ID, &s.VenueName, &s.Address, &s.WebsiteURL, &s.Kind, &s.Title, &s.Details, &price, &days,
		&s.StartTime, &s.EndTime, &s.SubmitterEmail, &status, &s.ClientIP, &s.CreatedAt, &reviewed)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		p := int(price.Int64)
		s.PriceCents = &p
	}
	s.Days = []string(days)
	s.Status = models.SubmissionStatus(status)
	if reviewed.Valid {
		s.ReviewedAt = &reviewed.Time
	}
	return &s, nil
}

// ListByStatus returns submissions with status, oldest first.
func (d *SubmissionDAO) ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error) {
	rows, err := d.db.QueryContext(ctx, selectSubmissions+` WHERE status = $1 ORDER BY created_at`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	out := []models.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (d *SubmissionDAO) Get(ctx context.Context, id string) (*models.Submission, error) {
	s, err := scanSubmission(d.db.QueryRowContext(ctx, selectSubmissions+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission %s: %w", id, err)
	}
	return s, nil
}

// UpdateStatus moves a pending submission to status.
func (d *SubmissionDAO) UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus, at time.Time) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE submissions SET status = $1, reviewed_at = $2 WHERE id = $3 AND status = 'pending'`,
		string(status), at, id)
	if err != nil {
		return fmt.Errorf("failed to update submission %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update submission %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
