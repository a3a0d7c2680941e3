package event

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DecodeStatus distinguishes a decoded event from the valid nothing-to-do
// cases where the envelope carries no processable message.
type DecodeStatus int

const (
	// DecodedEvent means the envelope contained a parseable payload.
	DecodedEvent DecodeStatus = iota
	// NoMessage means the request body had no message object.
	NoMessage
	// NoPayload means the message had an empty or unset data field.
	NoPayload
)

// DecodeResult is the outcome of decoding one webhook body. Event is only
// set when Status is DecodedEvent.
type DecodeResult struct {
	Status DecodeStatus
	Event  *InboundEvent
}

// pushEnvelope is the Pub/Sub push delivery wrapper around the payload.
type pushEnvelope struct {
	Message *struct {
		Data string `json:"data"`
	} `json:"message"`
}

// eventPayload is the base64-encoded JSON inside the envelope.
type eventPayload struct {
	ID               string `json:"id"`
	NotificationType string `json:"notificationType"`
	Type             string `json:"type"`
	Resource         *struct {
		ID string `json:"id"`
	} `json:"resource"`
}

// Decode turns a raw webhook body into a DecodeResult. An absent message or
// empty payload is a valid nothing-to-do outcome, not an error. Malformed
// JSON or base64 is a fatal decode error for the handler boundary to map.
func Decode(body []byte) (DecodeResult, error) {
	var envelope pushEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return DecodeResult{}, fmt.Errorf("failed to parse request body: %w", err)
	}

	if envelope.Message == nil {
		return DecodeResult{Status: NoMessage}, nil
	}
	if envelope.Message.Data == "" {
		return DecodeResult{Status: NoPayload}, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return DecodeResult{}, fmt.Errorf("failed to base64-decode message data: %w", err)
	}

	trimmed := strings.TrimSpace(string(decoded))
	if trimmed == "" {
		return DecodeResult{Status: NoPayload}, nil
	}

	var payload eventPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return DecodeResult{}, fmt.Errorf("failed to parse message payload: %w", err)
	}

	ev := &InboundEvent{
		MessageID:        payload.ID,
		NotificationType: payload.NotificationType,
		EventType:        payload.Type,
	}
	if payload.Resource != nil {
		ev.ResourceID = payload.Resource.ID
	}
	// Events without an id still need a correlation id for log lines.
	if ev.MessageID == "" {
		ev.MessageID = uuid.New().String()
	}

	return DecodeResult{Status: DecodedEvent, Event: ev}, nil
}
