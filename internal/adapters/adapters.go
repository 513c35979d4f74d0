// Package adapters declares the narrow interfaces the orchestration cycle
// depends on. Concrete implementations live in the subpackages; tests mock
// these directly.
package adapters

import (
	"context"
	"time"

	"ratewatch/internal/config"
	"ratewatch/internal/domain"
)

// PageFetcher supplies the raw rate page markup. Failures surface as an
// error and are treated by the cycle as "no data this time".
type PageFetcher interface {
	FetchPage(ctx context.Context) (string, error)
}

// RateParser extracts per-currency observations from page markup.
// Malformed rows are skipped, not errors.
type RateParser interface {
	ParseRates(markup string) (map[string]domain.Observation, error)
}

// Mailer sends one subject/body pair to the configured recipient. No retry.
type Mailer interface {
	Send(subject, body string) error
}

// Mailbox returns the plain-text reply content of unread messages from the
// configured recipient and marks them read once fetched.
type Mailbox interface {
	ReadUnread(ctx context.Context) ([]string, error)
}

// SnapshotStore durably replaces the previous configuration snapshot.
type SnapshotStore interface {
	Save(snap *config.Snapshot) error
}

// AuditLog records a configuration change with a timestamped message.
type AuditLog interface {
	Commit(message string) error
}

// ObservationRecorder appends fetched observations to the history store.
type ObservationRecorder interface {
	Record(ctx context.Context, fetchedAt time.Time, observations map[string]domain.Observation) error
}

// AlertSuppressor dedupes repeat notifications for the same violation in
// interval mode.
type AlertSuppressor interface {
	Suppressed(v domain.Violation) bool
	MarkNotified(v domain.Violation)
}
