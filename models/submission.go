package models

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// SubmissionRequest is the public "suggest a deal" form.
type SubmissionRequest struct {
	VenueName      string   `json:"venue_name" validate:"required,max=120"`
	Address        string   `json:"address" validate:"omitempty,max=200"`
	WebsiteURL     string   `json:"website_url" validate:"omitempty,url,max=300"`
	Kind           string   `json:"kind" validate:"required,oneof=deal lunch happy_hour"`
	Title          string   `json:"title" validate:"required,max=120"`
	Details        string   `json:"details" validate:"omitempty,max=2000"`
	PriceCents     *int     `json:"price_cents" validate:"omitempty,min=0,max=1000000"`
	Days           []string `json:"days" validate:"omitempty,max=7,dive,weekday"`
	StartTime      string   `json:"start_time" validate:"omitempty,clock"`
	EndTime        string   `json:"end_time" validate:"omitempty,clock"`
	SubmitterEmail string   `json:"submitter_email" validate:"omitempty,email,max=254"`
}

// Submission is a stored form awaiting review.
type Submission struct {
	ID string `json:"id"`
	SubmissionRequest
	Status     SubmissionStatus `json:"status"`
	ClientIP   string           `json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
	ReviewedAt *time.Time       `json:"reviewed_at,omitempty"`
}
