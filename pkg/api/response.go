package api

import (
	"errors"
	"net/http"

	"github.com/tapright/waitlist-api/pkg/models"
	"github.com/tapright/waitlist-api/pkg/services"
)

const (
	msgSuccess          = "Great news—you're in! Check your inbox in a few minutes for your welcome note."
	msgValidationFailed = "Validation failed. Please review the highlighted fields."
	msgAlreadyJoined    = "Good news—you're already on the waitlist! Check your email for confirmation."
	msgNotConfigured    = "Our confirmation email service is not configured. Please try again soon while we finish setup."
	msgUnexpected       = "We couldn’t process your request right now. Please try again in a moment."

	msgStatsNotConfigured = "Waitlist storage is not configured. Add Supabase credentials to access stats."
	msgStatsUnavailable   = "Unable to load waitlist stats right now. Please try again later."
)

// SubmitResponse is the JSON body returned by the submission endpoint
type SubmitResponse struct {
	Message        string                      `json:"message"`
	Errors         map[string]string           `json:"errors,omitempty"`
	EmailResult    *models.NotificationOutcome `json:"emailResult,omitempty"`
	SMSResult      *models.NotificationOutcome `json:"smsResult,omitempty"`
	SupabaseResult *models.PersistenceOutcome  `json:"supabaseResult,omitempty"`
	AlertResult    *models.NotificationOutcome `json:"alertResult,omitempty"`
}

// StatsResponse is the JSON body returned by the stats endpoint
type StatsResponse struct {
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// BuildSubmitResponse maps the outcome of a submission to a status code and
// body. The second return value labels the result for metrics.
func BuildSubmitResponse(res models.SubmissionResult, err error) (int, SubmitResponse, string) {
	var verr *services.ValidationError
	switch {
	case err == nil:
		return http.StatusOK, SubmitResponse{
			Message:        msgSuccess,
			EmailResult:    &res.Notifications.Email,
			SMSResult:      &res.Notifications.SMS,
			SupabaseResult: &res.Persistence,
			AlertResult:    &res.Notifications.Alert,
		}, "success"
	case errors.As(err, &verr):
		return http.StatusBadRequest, SubmitResponse{Message: msgValidationFailed, Errors: verr.Fields}, "validation_failed"
	case errors.Is(err, services.ErrNotConfigured):
		return http.StatusInternalServerError, SubmitResponse{Message: msgNotConfigured}, "not_configured"
	case errors.Is(err, services.ErrAlreadyRegistered):
		return http.StatusBadRequest, SubmitResponse{Message: msgAlreadyJoined}, "duplicate"
	default:
		return http.StatusInternalServerError, SubmitResponse{Message: msgUnexpected}, "error"
	}
}

// BuildStatsResponse maps a stats read to a status code and body
func BuildStatsResponse(count int, err error) (int, StatsResponse, string) {
	switch {
	case err == nil:
		return http.StatusOK, StatsResponse{Count: &count}, "success"
	case errors.Is(err, services.ErrStoreNotConfigured):
		return http.StatusInternalServerError, StatsResponse{Message: msgStatsNotConfigured}, "not_configured"
	default:
		return http.StatusInternalServerError, StatsResponse{Message: msgStatsUnavailable}, "error"
	}
}
