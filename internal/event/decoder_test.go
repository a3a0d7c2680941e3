package event

import (
	"encoding/base64"
	"testing"
)

func encodePayload(t *testing.T, payload string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestDecodeNoMessage(t *testing.T) {
	result, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if result.Status != NoMessage {
		t.Errorf("expected NoMessage, got %v", result.Status)
	}
	if result.Event != nil {
		t.Errorf("expected nil event, got %+v", result.Event)
	}
}

func TestDecodeNoPayload(t *testing.T) {
	for name, body := range map[string]string{
		"empty data":      `{"message":{"data":""}}`,
		"missing data":    `{"message":{}}`,
		"whitespace only": `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("   ")) + `"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			result, err := Decode([]byte(body))
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if result.Status != NoPayload {
				t.Errorf("expected NoPayload, got %v", result.Status)
			}
		})
	}
}

func TestDecodeMalformedBody(t *testing.T) {
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestDecodeMalformedBase64(t *testing.T) {
	if _, err := Decode([]byte(`{"message":{"data":"!!not-base64!!"}}`)); err == nil {
		t.Error("expected error for malformed base64 data")
	}
}

func TestDecodeMalformedPayloadJSON(t *testing.T) {
	body := `{"message":{"data":"` + encodePayload(t, "{broken") + `"}}`
	if _, err := Decode([]byte(body)); err == nil {
		t.Error("expected error for malformed payload JSON")
	}
}

func TestDecodeFullEvent(t *testing.T) {
	payload := `{"id":"msg-1","notificationType":"Message","type":"ProductCreated","resource":{"id":"p-1"}}`
	body := `{"message":{"data":"` + encodePayload(t, payload) + `"}}`

	result, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if result.Status != DecodedEvent {
		t.Fatalf("expected DecodedEvent, got %v", result.Status)
	}

	ev := result.Event
	if ev.MessageID != "msg-1" {
		t.Errorf("MessageID = %q, want msg-1", ev.MessageID)
	}
	if ev.NotificationType != NotificationMessage {
		t.Errorf("NotificationType = %q, want Message", ev.NotificationType)
	}
	if ev.EventType != EventProductCreated {
		t.Errorf("EventType = %q, want ProductCreated", ev.EventType)
	}
	if ev.ResourceID != "p-1" {
		t.Errorf("ResourceID = %q, want p-1", ev.ResourceID)
	}
}

func TestDecodeMissingFieldsAreAbsentNotFatal(t *testing.T) {
	payload := `{"notificationType":"Message"}`
	body := `{"message":{"data":"` + encodePayload(t, payload) + `"}}`

	result, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	ev := result.Event
	if ev.EventType != "" || ev.ResourceID != "" {
		t.Errorf("expected absent fields to stay empty, got %+v", ev)
	}
	// A generated correlation id stands in for the missing message id.
	if ev.MessageID == "" {
		t.Error("expected a fallback message id")
	}
}

func TestDecodeTrimsPayloadWhitespace(t *testing.T) {
	payload := "\n  {\"id\":\"msg-2\",\"notificationType\":\"Message\"}  \n"
	body := `{"message":{"data":"` + encodePayload(t, payload) + `"}}`

	result, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if result.Status != DecodedEvent {
		t.Fatalf("expected DecodedEvent, got %v", result.Status)
	}
	if result.Event.MessageID != "msg-2" {
		t.Errorf("MessageID = %q, want msg-2", result.Event.MessageID)
	}
}
