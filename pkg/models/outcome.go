package models

import "fmt"

// NotificationOutcome is the result of a single notification channel
type NotificationOutcome uint8

const (
	NotificationSkipped NotificationOutcome = iota
	NotificationSent
	NotificationFailed
)

func (o NotificationOutcome) String() string {
	switch o {
	case NotificationSkipped:
		return "skipped"
	case NotificationSent:
		return "sent"
	case NotificationFailed:
		return "failed"
	}
	return fmt.Sprintf("NotificationOutcome(%d)", uint8(o))
}

func (o NotificationOutcome) MarshalText() ([]byte, error) {
	switch o {
	case NotificationSkipped, NotificationSent, NotificationFailed:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("unknown notification outcome %d", uint8(o))
}

func (o *NotificationOutcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "skipped":
		*o = NotificationSkipped
	case "sent":
		*o = NotificationSent
	case "failed":
		*o = NotificationFailed
	default:
		return fmt.Errorf("unknown notification outcome %q", text)
	}
	return nil
}

// PersistenceOutcome is the result of the signup store write
type PersistenceOutcome uint8

const (
	PersistenceSkipped PersistenceOutcome = iota
	PersistenceSynced
	PersistenceFailed
)

func (o PersistenceOutcome) String() string {
	switch o {
	case PersistenceSkipped:
		return "skipped"
	case PersistenceSynced:
		return "synced"
	case PersistenceFailed:
		return "failed"
	}
	return fmt.Sprintf("PersistenceOutcome(%d)", uint8(o))
}

func (o PersistenceOutcome) MarshalText() ([]byte, error) {
	switch o {
	case PersistenceSkipped, PersistenceSynced, PersistenceFailed:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("unknown persistence outcome %d", uint8(o))
}

func (o *PersistenceOutcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "skipped":
		*o = PersistenceSkipped
	case "synced":
		*o = PersistenceSynced
	case "failed":
		*o = PersistenceFailed
	default:
		return fmt.Errorf("unknown persistence outcome %q", text)
	}
	return nil
}

// NotificationOutcomes holds one outcome per notification channel.
// The zero value reports every channel as skipped.
type NotificationOutcomes struct {
	Email NotificationOutcome
	SMS   NotificationOutcome
	Alert NotificationOutcome
}

// SubmissionResult is everything a successful submission reports back
type SubmissionResult struct {
	Persistence   PersistenceOutcome
	Notifications NotificationOutcomes
}
