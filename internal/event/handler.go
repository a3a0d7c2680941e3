package event

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/commercetools"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/pipeline"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/product"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/server"
)

// ProductStore fetches product entities by id.
type ProductStore interface {
	ProductByID(ctx context.Context, productID, correlationID string) (*commercetools.Product, error)
}

// ProductTypeStore resolves a product type id to its key.
type ProductTypeStore interface {
	ProductTypeKeyByID(ctx context.Context, productTypeID, correlationID string) (string, error)
}

// Enricher runs the post-acknowledgement stages.
type Enricher interface {
	Run(ctx context.Context, in pipeline.Input) (*pipeline.Result, error)
}

// Handler processes product subscription events delivered as Pub/Sub push
// requests.
type Handler struct {
	products     ProductStore
	productTypes ProductTypeStore
	enricher     Enricher
	audit        AuditRecorder
	logger       *slog.Logger
}

func NewHandler(
	products ProductStore,
	productTypes ProductTypeStore,
	enricher Enricher,
	audit AuditRecorder,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		products:     products,
		productTypes: productTypes,
		enricher:     enricher,
		audit:        audit,
		logger:       logger,
	}
}

// Handle is the webhook entry point. It decodes and validates the event,
// acknowledges the event source once all pre-condition checks have passed,
// and only then runs the enrichment stages on the same call path. Failures
// after the acknowledgement are observable through logs and the audit trail
// only, never by the caller.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read request body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	result, err := Decode(body)
	if err != nil {
		// A permanently malformed body; redelivery cannot fix it.
		h.logger.Error("failed to decode event", slog.String("error", err.Error()))
		server.AddError(ctx, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch result.Status {
	case NoMessage:
		h.logger.Info("no message object in request body, skipping")
		h.recordAudit(ctx, AuditEntry{Outcome: OutcomeSkipped, Reason: "no message object", Duration: time.Since(start)})
		w.WriteHeader(http.StatusOK)
		return
	case NoPayload:
		h.logger.Info("no data in message, skipping")
		h.recordAudit(ctx, AuditEntry{Outcome: OutcomeSkipped, Reason: "no message data", Duration: time.Since(start)})
		w.WriteHeader(http.StatusOK)
		return
	}

	ev := result.Event
	server.AddLogField(ctx, "correlation_id", ev.MessageID)
	logger := h.logger.With(
		slog.String("correlation_id", ev.MessageID),
		slog.String("event_type", ev.EventType),
	)
	logger.Info("event received")

	if skip := CheckEvent(ev); skip != nil {
		logger.Info("skipping event", slog.String("reason", skip.Reason))
		h.recordAudit(ctx, h.skipEntry(ev, skip, start))
		w.WriteHeader(skip.Status)
		return
	}

	prod, err := h.products.ProductByID(ctx, ev.ResourceID, ev.MessageID)
	if err != nil {
		h.fail(ctx, w, logger, ev, "product fetch failed", err, start)
		return
	}

	snap := product.NewSnapshot(prod)
	if skip := CheckSnapshot(snap); skip != nil {
		logger.Info("skipping event", slog.String("reason", skip.Reason), slog.String("product_id", snap.ProductID))
		h.recordAudit(ctx, h.skipEntry(ev, skip, start))
		w.WriteHeader(skip.Status)
		return
	}

	typeKey, err := h.productTypes.ProductTypeKeyByID(ctx, snap.ProductTypeID, ev.MessageID)
	if err != nil {
		h.fail(ctx, w, logger, ev, "product type fetch failed", err, start)
		return
	}

	// All pre-condition checks passed: acknowledge before the enrichment
	// stages run. The caller only learns the message was received, not
	// whether processing succeeded.
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	logger.Info("acknowledgment sent", slog.String("product_id", snap.ProductID))

	// The ack lets the client close the connection, which would cancel the
	// request context mid-enrichment. Detach cancellation but keep values.
	workCtx := context.WithoutCancel(ctx)

	_, err = h.enricher.Run(workCtx, pipeline.Input{
		CorrelationID:  ev.MessageID,
		Snapshot:       snap,
		ProductTypeKey: typeKey,
	})
	if err != nil {
		logger.Error("enrichment failed after acknowledgment",
			slog.String("product_id", snap.ProductID),
			slog.String("error", err.Error()),
		)
		h.recordAudit(workCtx, AuditEntry{
			MessageID: ev.MessageID,
			ProductID: snap.ProductID,
			EventType: ev.EventType,
			Outcome:   OutcomeFailed,
			Reason:    err.Error(),
			Duration:  time.Since(start),
		})
		return
	}

	logger.Info("processing completed", slog.String("product_id", snap.ProductID))
	h.recordAudit(workCtx, AuditEntry{
		MessageID: ev.MessageID,
		ProductID: snap.ProductID,
		EventType: ev.EventType,
		Outcome:   OutcomeCompleted,
		Duration:  time.Since(start),
	})
}

// fail handles a fatal pre-acknowledgement error: 500 so the event source
// redelivers.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, ev *InboundEvent, msg string, err error, start time.Time) {
	logger.Error(msg, slog.String("error", err.Error()))
	server.AddError(ctx, err)
	h.recordAudit(ctx, AuditEntry{
		MessageID: ev.MessageID,
		ProductID: ev.ResourceID,
		EventType: ev.EventType,
		Outcome:   OutcomeFailed,
		Reason:    err.Error(),
		Duration:  time.Since(start),
	})
	w.WriteHeader(http.StatusInternalServerError)
}

func (h *Handler) skipEntry(ev *InboundEvent, skip *Skip, start time.Time) AuditEntry {
	return AuditEntry{
		MessageID: ev.MessageID,
		ProductID: ev.ResourceID,
		EventType: ev.EventType,
		Outcome:   OutcomeSkipped,
		Reason:    skip.Reason,
		Duration:  time.Since(start),
	}
}

func (h *Handler) recordAudit(ctx context.Context, entry AuditEntry) {
	if err := h.audit.Record(ctx, entry); err != nil {
		h.logger.Warn("failed to record audit entry",
			slog.String("message_id", entry.MessageID),
			slog.String("error", err.Error()),
		)
	}
}
