// Package event implements the webhook core: decoding the push envelope,
// the ordered validation guard chain, and the handler that acknowledges the
// event source before running enrichment.
package event

import (
	"context"
	"time"
)

// Notification types carried in the decoded payload. Only content messages
// are processed; bare resource-created pings are acknowledged and dropped.
const (
	NotificationMessage         = "Message"
	NotificationResourceCreated = "ResourceCreated"
)

// Product lifecycle events that trigger description generation.
const (
	EventProductVariantAdded = "ProductVariantAdded"
	EventProductImageAdded   = "ProductImageAdded"
	EventProductCreated      = "ProductCreated"
)

// InboundEvent is the decoded webhook payload. Immutable after construction.
type InboundEvent struct {
	// MessageID doubles as the correlation id threaded through every
	// collaborator call and log line.
	MessageID        string
	NotificationType string
	EventType        string
	ResourceID       string
}

// Audit outcomes recorded per processed event.
const (
	OutcomeSkipped   = "skipped"
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

// AuditEntry records how one webhook invocation ended.
type AuditEntry struct {
	MessageID string
	ProductID string
	EventType string
	Outcome   string
	Reason    string
	Duration  time.Duration
}

// AuditRecorder persists audit entries. Recording is best-effort; failures
// must not influence the HTTP response.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// NopRecorder discards audit entries.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, AuditEntry) error { return nil }
