package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dealtown/dao/postgres"
	"dealtown/dao/redis"
	"dealtown/logger"
	"dealtown/mailer"
	"dealtown/metrics"
	"dealtown/models"
)

const submissionThrottleGroup = "submissions"

var (
	ErrThrottled = errors.New("too many submissions")
	ErrNotFound  = errors.New("not found")
)

// ThrottleError carries the wait before the client may submit again.
type ThrottleError struct {
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrThrottled, e.RetryAfter)
}

func (e *ThrottleError) Is(target error) bool { return target == ErrThrottled }

// SubmissionStore persists submissions; Get and UpdateStatus return
// postgres.ErrNotFound for unknown or already reviewed ids.
type SubmissionStore interface {
	Insert(ctx context.Context, s *models.Submission) error
	ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error)
	Get(ctx context.Context, id string) (*models.Submission, error)
	UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus, at time.Time) error
}

type SubmissionConfig struct {
	AdminEmail     string
	ThrottleLimit  int
	ThrottleWindow time.Duration
}

type SubmissionService struct {
	store    SubmissionStore
	throttle *redis.RedisThrottleDAO
	mail     mailer.Mailer
	validate *validator.Validate
	cfg      SubmissionConfig
	now      func() time.Time
	log      *zap.Logger
}

func NewSubmissionService(store SubmissionStore, throttle *redis.RedisThrottleDAO, mail mailer.Mailer, cfg SubmissionConfig, log *zap.Logger) *SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{
		store:    store,
		throttle: throttle,
		mail:     mail,
		validate: NewValidator(),
		cfg:      cfg,
		now:      time.Now,
		log:      logger.Component(log, "SubmissionService"),
	}
}

// SetNow replaces the clock, for tests.
func (s *SubmissionService) SetNow(now func() time.Time) { s.now = now }

// Submit validates, throttles per client IP, stores the submission as pending
// and notifies the admin. Notification failures are logged only.
func (s *SubmissionService) Submit(ctx context.Context, req models.SubmissionRequest, clientIP string) (*models.Submission, error) {
	req.VenueName = strings.TrimSpace(req.VenueName)
	req.Title = strings.TrimSpace(req.Title)
	req.SubmitterEmail = strings.TrimSpace(req.SubmitterEmail)

	if err := validateStruct(s.validate, req); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	now := s.now()
	decision, err := s.throttle.Hit(ctx, submissionThrottleGroup, clientIP, s.cfg.ThrottleLimit, s.cfg.ThrottleWindow, now)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		metrics.SubmissionsTotal.WithLabelValues("throttled").Inc()
		s.log.Info("submission throttled", zap.String("client_ip", clientIP), zap.Int64("count", decision.Count))
		return nil, &ThrottleError{RetryAfter: decision.RetryAfter}
	}

	sub := &models.Submission{
		ID:                uuid.NewString(),
		SubmissionRequest: req,
		Status:            models.SubmissionPending,
		ClientIP:          clientIP,
		CreatedAt:         now.UTC(),
	}
	if err := s.store.Insert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}
	metrics.SubmissionsTotal.WithLabelValues(string(models.SubmissionPending)).Inc()
	s.log.Info("submission stored", zap.String("id", sub.ID), zap.String("kind", sub.Kind))

	if s.cfg.AdminEmail != "" {
		s.notify(ctx, mailer.Message{
			To:      s.cfg.AdminEmail,
			Subject: fmt.Sprintf("New %s submission: %s", sub.Kind, sub.Title),
			Body:    adminBody(sub),
		})
	}
	return sub, nil
}

func (s *SubmissionService) ListPending(ctx context.Context) ([]models.Submission, error) {
	return s.store.ListByStatus(ctx, models.SubmissionPending)
}

func (s *SubmissionService) Approve(ctx context.Context, id string) (*models.Submission, error) {
	return s.review(ctx, id, models.SubmissionApproved)
}

func (s *SubmissionService) Reject(ctx context.Context, id string) (*models.Submission, error) {
	return s.review(ctx, id, models.SubmissionRejected)
}

func (s *SubmissionService) review(ctx context.Context, id string, status models.SubmissionStatus) (*models.Submission, error) {
	if err := s.store.UpdateStatus(ctx, id, status, s.now().UTC()); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload submission %s: %w", id, err)
	}
	metrics.SubmissionsTotal.WithLabelValues(string(status)).Inc()

	if sub.SubmitterEmail != "" {
		s.notify(ctx, mailer.Message{
			To:      sub.SubmitterEmail,
			Subject: fmt.Sprintf("Your DealTown submission was %s", status),
			Body:    submitterBody(sub),
		})
	}
	return sub, nil
}

func (s *SubmissionService) notify(ctx context.Context, msg mailer.Message) {
	if err := s.mail.Send(ctx, msg); err != nil {
		s.log.Error("failed to send email", zap.String("to", msg.To), zap.Error(err))
	}
}

func adminBody(sub *models.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Venue: %s\n", sub.VenueName)
	if sub.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", sub.Address)
	}
	fmt.Fprintf(&b, "Kind: %s\nTitle: %s\n", sub.Kind, sub.Title)
	if sub.PriceCents != nil {
		fmt.Fprintf(&b, "Price: $%d.%02d\n", *sub.PriceCents/100, *sub.PriceCents%100)
	}
	if len(sub.Days) > 0 {
		fmt.Fprintf(&b, "Days: %s\n", strings.Join(sub.Days, ", "))
	}
	if sub.StartTime != "" || sub.EndTime != "" {
		fmt.Fprintf(&b, "Time: %s - %s\n", sub.StartTime, sub.EndTime)
	}
	if sub.Details != "" {
		fmt.Fprintf(&b, "\n%s\n", sub.Details)
	}
	fmt.Fprintf(&b, "\nID: %s\n", sub.ID)
	return b.String()
}

func submitterBody(sub *models.Submission) string {
	if sub.Status == models.SubmissionApproved {
		return fmt.Sprintf("Thanks! %q at %s has been approved and will appear on DealTown shortly.\n", sub.Title, sub.VenueName)
	}
	return fmt.Sprintf("Thanks for suggesting %q at %s. We couldn't confirm it this time.\n", sub.Title, sub.VenueName)
}
