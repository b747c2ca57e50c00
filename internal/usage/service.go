package usage

import (
	"context"
	"fmt"
	"time"

	"atscheck-backend/internal/shared/telemetry"
	"atscheck-backend/internal/shared/util"
)

// Service meters analyses per user against a periodic limit.
type Service struct {
	store Store
	limit int
	now   func() time.Time
}

// NewService creates a quota service with the given per-period limit.
func NewService(store Store, limit int) *Service {
	if limit <= 0 {
		limit = 10
	}
	return &Service{store: store, limit: limit, now: time.Now}
}

// Consume spends one analysis. Returns ErrLimitReached when the period
// allowance is exhausted.
func (s *Service) Consume(ctx context.Context, userID string) error {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if rec.Used >= rec.Limit {
		telemetry.Info("usage.limit_reached", map[string]any{
			"user_key": rec.UserKey,
			"limit":    rec.Limit,
		})
		return ErrLimitReached
	}

	rec.Used++
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("consume quota: %w", err)
	}
	return nil
}

// StatusFor reports the user's remaining allowance.
func (s *Service) StatusFor(ctx context.Context, userID string) (*Status, error) {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	remaining := rec.Limit - rec.Used
	if remaining < 0 {
		remaining = 0
	}
	return &Status{
		Plan:      rec.Plan,
		Limit:     rec.Limit,
		Used:      rec.Used,
		Remaining: remaining,
		ResetsAt:  rec.ResetsAt,
	}, nil
}

// load fetches the record, creating or rolling it over as needed.
func (s *Service) load(ctx context.Context, userID string) (*Record, error) {
	userKey := util.HashUserKey(userID)
	now := s.now()

	rec, err := s.store.Get(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("load quota: %w", err)
	}
	if rec == nil || !now.Before(rec.ResetsAt) {
		rec = &Record{
			UserKey:  userKey,
			Plan:     PlanGuest,
			Limit:    s.limit,
			Used:     0,
			ResetsAt: NextReset(now),
		}
		if err := s.store.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("reset quota: %w", err)
		}
	}
	return rec, nil
}
