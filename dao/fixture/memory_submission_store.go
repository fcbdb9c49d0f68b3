package fixture

import (
	"context"
	"sort"
	"sync"
	"time"

	"dealtown/dao/postgres"
	"dealtown/models"
)

// SubmissionStore keeps submissions in memory for local development.
type SubmissionStore struct {
	mu   sync.Mutex
	byID map[string]models.Submission
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{byID: make(map[string]models.Submission)}
}

func (s *SubmissionStore) Insert(ctx context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sub.ID] = *sub
	return nil
}

func (s *SubmissionStore) ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Submission{}
	for _, sub := range s.byID {
		if sub.Status == status {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *SubmissionStore) Get(ctx context.Context, id string) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.byID[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return &sub, nil
}

func (s *SubmissionStore) UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.byID[id]
	if !ok || sub.Status != models.SubmissionPending {
		return postgres.ErrNotFound
	}
	sub.Status = status
	sub.ReviewedAt = &at
	s.byID[id] = sub
	return nil
}
