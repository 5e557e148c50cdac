package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tapright/waitlist-api/pkg/metrics"
	"github.com/tapright/waitlist-api/pkg/models"
	"github.com/tapright/waitlist-api/pkg/utils"
)

var (
	ErrNotConfigured     = errors.New("confirmation email service is not configured")
	ErrAlreadyRegistered = errors.New("email is already on the waitlist")
)

// SignupStore is the external record store holding waitlist signups
type SignupStore interface {
	Configured() bool
	InsertSignup(ctx context.Context, record models.SignupRecord) error
	CountSignups(ctx context.Context) (int, error)
}

// WaitlistService defines the interface for handling waitlist submissions
type WaitlistService interface {
	Submit(ctx context.Context, raw map[string]interface{}) (models.SubmissionResult, error)
}

type WaitlistServiceOptions struct {
	Store    SignupStore
	Notifier Notifier
	// Set when the confirmation email credential is present
	EmailConfigured bool
	Timeout         time.Duration
	Logger          *zap.Logger
	Now             func() time.Time
}

type waitlistServiceImpl struct {
	store           SignupStore
	notifier        Notifier
	emailConfigured bool
	timeout         time.Duration
	log             *zap.Logger
	now             func() time.Time
}

// NewWaitlistService creates a new submission service
func NewWaitlistService(opts WaitlistServiceOptions) WaitlistService {
	s := &waitlistServiceImpl{
		store:           opts.Store,
		notifier:        opts.Notifier,
		emailConfigured: opts.EmailConfigured,
		timeout:         opts.Timeout,
		log:             opts.Logger,
		now:             opts.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.timeout <= 0 {
		s.timeout = 10 * time.Second
	}
	return s
}

// Submit runs the whole signup workflow. It returns a *ValidationError,
// ErrNotConfigured or ErrAlreadyRegistered for the short-circuit cases; store
// and notification failures are reported in the result instead.
func (s *waitlistServiceImpl) Submit(ctx context.Context, raw map[string]interface{}) (models.SubmissionResult, error) {
	var result models.SubmissionResult

	if !s.emailConfigured {
		s.log.Error("waitlist submission blocked: RESEND_API_KEY is not configured")
		return result, ErrNotConfigured
	}

	sub, verr := ValidateSubmission(raw)
	if verr != nil {
		return result, verr
	}

	// A client disconnect must not cancel the write or the emails once the
	// signup is accepted. Each outbound call keeps its own timeout.
	ctx = context.WithoutCancel(ctx)

	joinedAt := s.now().UTC()
	emailHash := utils.HashEmail(sub.Email)

	persistence, err := s.persist(ctx, models.NewSignupRecord(sub, joinedAt))
	if errors.Is(err, ErrAlreadyRegistered) {
		s.log.Info("waitlist duplicate signup", zap.String("email_hash", emailHash))
		return result, err
	}
	result.Persistence = persistence
	result.Notifications = s.notifier.Dispatch(ctx, sub, joinedAt)

	recordOutcomes(result)
	s.log.Info("new waitlist signup",
		zap.String("email_hash", emailHash),
		zap.String("spend_focus", sub.SpendFocus),
		zap.Bool("has_notes", sub.Notes != ""),
		zap.Time("joined_at", joinedAt),
		zap.Stringer("email_result", result.Notifications.Email),
		zap.Stringer("sms_result", result.Notifications.SMS),
		zap.Stringer("supabase_result", result.Persistence),
		zap.Stringer("alert_result", result.Notifications.Alert),
	)
	return result, nil
}

// persist performs the single deduplicating write. Only a uniqueness
// violation produces an error.
func (s *waitlistServiceImpl) persist(ctx context.Context, record models.SignupRecord) (models.PersistenceOutcome, error) {
	if s.store == nil || !s.store.Configured() {
		return models.PersistenceSkipped, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.store.InsertSignup(ctx, record)
	metrics.OutboundDuration.WithLabelValues("store").Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		return models.PersistenceSynced, nil
	case errors.Is(err, models.ErrDuplicateSignup):
		return models.PersistenceSkipped, ErrAlreadyRegistered
	default:
		s.log.Error("failed to sync waitlist signup", zap.Error(err))
		return models.PersistenceFailed, nil
	}
}

func recordOutcomes(r models.SubmissionResult) {
	metrics.ChannelOutcomesTotal.WithLabelValues("store", r.Persistence.String()).Inc()
	metrics.ChannelOutcomesTotal.WithLabelValues(ChannelEmail, r.Notifications.Email.String()).Inc()
	metrics.ChannelOutcomesTotal.WithLabelValues(ChannelSMS, r.Notifications.SMS.String()).Inc()
	metrics.ChannelOutcomesTotal.WithLabelValues(ChannelAlert, r.Notifications.Alert.String()).Inc()
}
