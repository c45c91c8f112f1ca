package kafka

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewOrderPlacedEvent(t *testing.T) {
	items := []OrderItemPayload{
		{ProductID: "p1", Qty: 2, PriceMinor: 150},
	}

	event := NewOrderPlacedEvent("order-1", "customer-1", 300, items)

	if event.EventType != EventTypeOrderPlaced {
		t.Errorf("expected event type %q, got %q", EventTypeOrderPlaced, event.EventType)
	}

	if event.OrderID != "order-1" {
		t.Errorf("expected order id order-1, got %q", event.OrderID)
	}

	if event.AmountMinor != 300 {
		t.Errorf("expected amount 300, got %d", event.AmountMinor)
	}

	if len(event.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(event.Items))
	}

	if time.Since(event.Timestamp) > time.Minute {
		t.Error("timestamp should be close to now")
	}

	// Метка времени в UTC, как и остальные времена в системе.
	if event.Timestamp.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", event.Timestamp.Location())
	}
}

func TestOrderPlacedEventJSON(t *testing.T) {
	event := NewOrderPlacedEvent("order-1", "customer-1", 300, nil)

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}

	if decoded["event_type"] != "order.placed" {
		t.Errorf("expected event_type order.placed, got %v", decoded["event_type"])
	}

	if decoded["order_id"] != "order-1" {
		t.Errorf("expected order_id order-1, got %v", decoded["order_id"])
	}
}
