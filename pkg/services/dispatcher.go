package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/tapright/waitlist-api/pkg/metrics"
	"github.com/tapright/waitlist-api/pkg/models"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelAlert = "alert"
)

// Phone numbers are no longer collected, so the SMS channel never activates.
const smsEnabled = false

// EmailSender delivers a single email
type EmailSender interface {
	Send(ctx context.Context, email models.Email) (string, error)
}

// Notifier fans out the notifications for an accepted signup
type Notifier interface {
	Dispatch(ctx context.Context, sub models.SignupSubmission, joinedAt time.Time) models.NotificationOutcomes
}

type DispatcherConfig struct {
	From       string
	AlertEmail string
	Timeout    time.Duration
}

// Dispatcher sends the confirmation and alert emails concurrently
type Dispatcher struct {
	sender EmailSender
	cfg    DispatcherConfig
	log    *zap.Logger
}

// NewDispatcher creates a dispatcher. A nil sender means the email provider
// is not configured and every channel is skipped.
func NewDispatcher(sender EmailSender, cfg DispatcherConfig, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Dispatcher{sender: sender, cfg: cfg, log: log}
}

type channel struct {
	name    string
	active  bool
	build   func() models.Email
	outcome *models.NotificationOutcome
}

// Dispatch starts every active channel at once and returns after all of them
// have settled. Channel failures are reported as outcomes only.
func (d *Dispatcher) Dispatch(ctx context.Context, sub models.SignupSubmission, joinedAt time.Time) models.NotificationOutcomes {
	var out models.NotificationOutcomes

	channels := []channel{
		{
			name:    ChannelEmail,
			active:  d.sender != nil,
			build:   func() models.Email { return d.confirmationEmail(sub) },
			outcome: &out.Email,
		},
		{
			name:    ChannelSMS,
			active:  smsEnabled,
			outcome: &out.SMS,
		},
		{
			name:    ChannelAlert,
			active:  d.sender != nil && d.cfg.AlertEmail != "",
			build:   func() models.Email { return d.alertEmail(sub, joinedAt) },
			outcome: &out.Alert,
		},
	}

	var wg conc.WaitGroup
	for _, ch := range channels {
		if !ch.active {
			*ch.outcome = models.NotificationSkipped
			continue
		}
		wg.Go(func() {
			*ch.outcome = d.send(ctx, ch)
		})
	}
	wg.Wait()

	return out
}

func (d *Dispatcher) send(ctx context.Context, ch channel) models.NotificationOutcome {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	start := time.Now()
	var err error
	var pc panics.Catcher
	pc.Try(func() {
		_, err = d.sender.Send(ctx, ch.build())
	})
	if r := pc.Recovered(); r != nil {
		err = fmt.Errorf("panic in %s channel: %v", ch.name, r.Value)
	}
	metrics.OutboundDuration.WithLabelValues(ch.name).Observe(time.Since(start).Seconds())

	if err != nil {
		d.log.Error("waitlist_notification_failed", zap.String("channel", ch.name), zap.Error(err))
		return models.NotificationFailed
	}
	return models.NotificationSent
}

func (d *Dispatcher) confirmationEmail(sub models.SignupSubmission) models.Email {
	return models.Email{
		From:    d.cfg.From,
		To:      []string{sub.Email},
		Subject: "You're on the TapRight waitlist ✅",
		Text: strings.Join([]string{
			fmt.Sprintf("Hi %s,", firstName(sub.FullName)),
			"",
			"Thanks for joining the TapRight early access list.",
			"We're building the fastest way to decide which credit card earns the most for every purchase you make.",
			"",
			"What's next?",
			"• We'll review your details and prioritise access as we open up beta cohorts.",
			"• Expect a deeper onboarding guide soon—tailored to your card goals.",
			"",
			"In the meantime, feel free to reply to this email with any specific challenges you want TapRight to solve.",
			"",
			"Talk soon,",
			"The TapRight Crew",
		}, "\n"),
	}
}

func (d *Dispatcher) alertEmail(sub models.SignupSubmission, joinedAt time.Time) models.Email {
	notes := sub.Notes
	if notes == "" {
		notes = "—"
	}
	optIn := "No"
	if sub.OptIn {
		optIn = "Yes"
	}

	return models.Email{
		From:    d.cfg.From,
		To:      []string{d.cfg.AlertEmail},
		Subject: "New waitlist signup — " + sub.FullName,
		Text: strings.Join([]string{
			"Name: " + sub.FullName,
			"Email: " + sub.Email,
			"Spend focus: " + sub.SpendFocus,
			"Notes: " + notes,
			"Opted in: " + optIn,
			"Joined at: " + joinedAt.UTC().Format(time.RFC3339),
		}, "\n"),
	}
}

func firstName(fullName string) string {
	if first, _, _ := strings.Cut(strings.TrimSpace(fullName), " "); first != "" {
		return first
	}
	return "there"
}
