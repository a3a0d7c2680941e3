package event

import (
	"fmt"
	"net/http"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/product"
)

// Skip is a terminal, non-error guard outcome: processing stops and the
// event is acknowledged with Status without further work. A nil *Skip from
// a guard means proceed.
type Skip struct {
	Status int
	Reason string
}

// EventGuard is one predicate over the decoded event. Guards run strictly
// in declaration order; later guards assume earlier invariants hold.
type EventGuard struct {
	Name  string
	Check func(*InboundEvent) *Skip
}

// SnapshotGuard is one predicate over the fetched product snapshot.
type SnapshotGuard struct {
	Name  string
	Check func(*product.Snapshot) *Skip
}

var allowedEventTypes = map[string]bool{
	EventProductVariantAdded: true,
	EventProductImageAdded:   true,
	EventProductCreated:      true,
}

// All skips acknowledge with 200: the event source must never retry a
// semantically-irrelevant message.
var eventGuards = []EventGuard{
	{
		Name: "notification-type",
		Check: func(ev *InboundEvent) *Skip {
			if ev.NotificationType != NotificationMessage {
				return &Skip{
					Status: http.StatusOK,
					Reason: fmt.Sprintf("unsupported notification type %q", ev.NotificationType),
				}
			}
			return nil
		},
	},
	{
		Name: "event-type",
		Check: func(ev *InboundEvent) *Skip {
			if !allowedEventTypes[ev.EventType] {
				return &Skip{
					Status: http.StatusOK,
					Reason: fmt.Sprintf("unsupported event type %q", ev.EventType),
				}
			}
			return nil
		},
	},
	{
		Name: "resource-id",
		Check: func(ev *InboundEvent) *Skip {
			if ev.ResourceID == "" {
				return &Skip{Status: http.StatusOK, Reason: "no product id in message"}
			}
			return nil
		},
	},
}

var snapshotGuards = []SnapshotGuard{
	{
		Name: "product-data",
		Check: func(s *product.Snapshot) *Skip {
			if s.ProductTypeID == "" || s.Name == "" || s.ImageURL == "" {
				return &Skip{Status: http.StatusOK, Reason: "product is missing type, name or image"}
			}
			return nil
		},
	},
	{
		Name: "attributes",
		Check: func(s *product.Snapshot) *Skip {
			if len(s.Attributes) == 0 {
				return &Skip{Status: http.StatusOK, Reason: "product has no attributes"}
			}
			return nil
		},
	},
	{
		Name: "generation-enabled",
		Check: func(s *product.Snapshot) *Skip {
			if !s.GenerationEnabled() {
				return &Skip{Status: http.StatusOK, Reason: "description generation not enabled"}
			}
			return nil
		},
	},
}

// CheckEvent evaluates the event guards left to right, stopping at the
// first skip.
func CheckEvent(ev *InboundEvent) *Skip {
	for _, g := range eventGuards {
		if skip := g.Check(ev); skip != nil {
			return skip
		}
	}
	return nil
}

// CheckSnapshot evaluates the snapshot guards left to right, stopping at
// the first skip.
func CheckSnapshot(s *product.Snapshot) *Skip {
	for _, g := range snapshotGuards {
		if skip := g.Check(s); skip != nil {
			return skip
		}
	}
	return nil
}
