package logger

import (
	"testing"
)

func TestSanitizePayloadMasksSensitiveKeys(t *testing.T) {
	payload := map[string]any{
		"email":    "ana@example.com",
		"password": "hunter2",
		"nested": map[string]any{
			"document_number": "12345678900",
			"amount":          "150.00",
		},
		"items": []any{
			map[string]any{"transferKey": "abc123", "note": "ok"},
		},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", SanitizePayload(payload))
	}

	if sanitized["password"] != "******" {
		t.Errorf("password not masked: %v", sanitized["password"])
	}
	if sanitized["email"] != "ana@example.com" {
		t.Errorf("email should pass through, got %v", sanitized["email"])
	}

	nested := sanitized["nested"].(map[string]any)
	if nested["document_number"] != "******" {
		t.Errorf("document_number not masked: %v", nested["document_number"])
	}
	if nested["amount"] != "150.00" {
		t.Errorf("amount should pass through, got %v", nested["amount"])
	}

	items := sanitized["items"].([]any)
	item := items[0].(map[string]any)
	if item["transferKey"] != "******" {
		t.Errorf("transferKey not masked inside slice: %v", item["transferKey"])
	}
	if item["note"] != "ok" {
		t.Errorf("note should pass through, got %v", item["note"])
	}
}

func TestSanitizePayloadHandlesUnserializableValues(t *testing.T) {
	if got := SanitizePayload(make(chan int)); got != "<unavailable>" {
		t.Errorf("expected placeholder for unserializable payload, got %v", got)
	}
}
