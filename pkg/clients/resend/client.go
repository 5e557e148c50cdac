package resend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/tapright/waitlist-api/pkg/models"
)

// Client defines the interface for sending email through Resend
type Client interface {
	Send(ctx context.Context, email models.Email) (string, error)
}

type clientImpl struct {
	client *resend.Client
	log    *zap.Logger
}

// Option customises the underlying Resend client
type Option func(*resend.Client)

// WithBaseURL points the client at a different API host
func WithBaseURL(u *url.URL) Option {
	return func(c *resend.Client) {
		c.BaseURL = u
	}
}

// NewClient creates a new Resend client
func NewClient(apiKey string, timeout time.Duration, log *zap.Logger, opts ...Option) Client {
	client := resend.NewCustomClient(&http.Client{Timeout: timeout}, apiKey)
	for _, opt := range opts {
		opt(client)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &clientImpl{client: client, log: log}
}

func (c *clientImpl) Send(ctx context.Context, email models.Email) (string, error) {
	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Text:    email.Text,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}

	c.log.Debug("resend_sent", zap.String("message_id", sent.Id), zap.String("subject", email.Subject))
	return sent.Id, nil
}
