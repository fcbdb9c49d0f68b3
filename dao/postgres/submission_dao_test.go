package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealtown/models"
)

var submissionColumns = []string{"id", "venue_name", "address", "website_url", "kind", "title", "details", "price_cents",
	"days", "start_time", "end_time", "submitter_email", "status", "client_ip", "created_at", "reviewed_at"}

func TestSubmissionDAO_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	price := 1500
	s := &models.Submission{
		ID: "s1",
		SubmissionRequest: models.SubmissionRequest{
			VenueName: "Taco Joint", Kind: "deal", Title: "Taco Tuesday", PriceCents: &price, Days: []string{"tue"},
		},
		Status:    models.SubmissionPending,
		ClientIP:  "203.0.113.7",
		CreatedAt: time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO submissions").
		WithArgs("s1", "Taco Joint", "", "", "deal", "Taco Tuesday", "", int64(1500), sqlmock.AnyArg(),
			"", "", "", "pending", "203.0.113.7", s.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewSubmissionDAO(db).Insert(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionDAO_ListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM submissions WHERE status = \\$1").
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(submissionColumns).
			AddRow("s1", "Taco Joint", "", "", "deal", "Taco Tuesday", "", 1500, "{tue,thu}", "", "", "", "pending", "203.0.113.7", created, nil))

	got, err := NewSubmissionDAO(db).ListByStatus(context.Background(), models.SubmissionPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"tue", "thu"}, got[0].Days)
	assert.Equal(t, models.SubmissionPending, got[0].Status)
	assert.Equal(t, 1500, *got[0].PriceCents)
	assert.Nil(t, got[0].ReviewedAt)
}

func TestSubmissionDAO_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("WHERE id = \\$1").WithArgs("nope").WillReturnRows(sqlmock.NewRows(submissionColumns))

	_, err = NewSubmissionDAO(db).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmissionDAO_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE submissions SET status").
		WithArgs("approved", at, "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE submissions SET status").
		WithArgs("rejected", at, "s2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	dao := NewSubmissionDAO(db)
	require.NoError(t, dao.UpdateStatus(context.Background(), "s1", models.SubmissionApproved, at))
	assert.ErrorIs(t, dao.UpdateStatus(context.Background(), "s2", models.SubmissionRejected, at), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
