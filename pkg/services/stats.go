package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tapright/waitlist-api/pkg/metrics"
)

var ErrStoreNotConfigured = errors.New("waitlist storage is not configured")

// StatsService reads aggregate waitlist numbers. Every call hits the store.
type StatsService interface {
	Count(ctx context.Context) (int, error)
}

type statsServiceImpl struct {
	store   SignupStore
	timeout time.Duration
}

func NewStatsService(store SignupStore, timeout time.Duration) StatsService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &statsServiceImpl{store: store, timeout: timeout}
}

func (s *statsServiceImpl) Count(ctx context.Context) (int, error) {
	if s.store == nil || !s.store.Configured() {
		return 0, ErrStoreNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.store.CountSignups(ctx)
	metrics.OutboundDuration.WithLabelValues("store_count").Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, fmt.Errorf("error loading waitlist stats: %w", err)
	}
	return n, nil
}
