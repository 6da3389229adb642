package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusPending {
		t.Fatalf("unexpected status %q", status)
	}

	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	if !OrderStatusPending.CanTransitionTo(OrderStatusConfirmed) {
		t.Fatal("pending must allow confirmation")
	}
	if !OrderStatusPending.CanTransitionTo(OrderStatusCancelled) {
		t.Fatal("pending must allow cancellation")
	}
	if OrderStatusPending.CanTransitionTo(OrderStatusDelivered) {
		t.Fatal("pending must not skip to delivered")
	}
	if OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled) {
		t.Fatal("delivered is terminal")
	}
}
