package constant_test

import (
	"testing"

	"marketplace/constant"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	allowed := []struct {
		from, to constant.OrderStatus
	}{
		{constant.OrderStatusPending, constant.OrderStatusConfirmed},
		{constant.OrderStatusPending, constant.OrderStatusCancelled},
		{constant.OrderStatusConfirmed, constant.OrderStatusPacked},
		{constant.OrderStatusConfirmed, constant.OrderStatusCancelled},
		{constant.OrderStatusPacked, constant.OrderStatusShipping},
		{constant.OrderStatusPacked, constant.OrderStatusCancelled},
		{constant.OrderStatusShipping, constant.OrderStatusDelivered},
		{constant.OrderStatusDelivered, constant.OrderStatusCompleted},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransitionTo(tr.to) {
			t.Errorf("%s -> %s should be allowed", tr.from, tr.to)
		}
	}

	denied := []struct {
		from, to constant.OrderStatus
	}{
		{constant.OrderStatusShipping, constant.OrderStatusCancelled},
		{constant.OrderStatusDelivered, constant.OrderStatusCancelled},
		{constant.OrderStatusConfirmed, constant.OrderStatusPending},
		{constant.OrderStatusCompleted, constant.OrderStatusDelivered},
		{constant.OrderStatusCancelled, constant.OrderStatusPending},
		{constant.OrderStatusPending, constant.OrderStatusShipping},
	}
	for _, tr := range denied {
		if tr.from.CanTransitionTo(tr.to) {
			t.Errorf("%s -> %s should be denied", tr.from, tr.to)
		}
	}

	// Terminal states allow nothing at all.
	for _, terminal := range []constant.OrderStatus{constant.OrderStatusCompleted, constant.OrderStatusCancelled} {
		for _, to := range []constant.OrderStatus{
			constant.OrderStatusPending, constant.OrderStatusConfirmed, constant.OrderStatusPacked,
			constant.OrderStatusShipping, constant.OrderStatusDelivered, constant.OrderStatusCompleted,
			constant.OrderStatusCancelled,
		} {
			if terminal.CanTransitionTo(to) {
				t.Errorf("terminal %s -> %s should be denied", terminal, to)
			}
		}
	}
}

func TestOrderStatusScan(t *testing.T) {
	var s constant.OrderStatus
	if err := s.Scan([]byte("shipping")); err != nil {
		t.Fatalf("Scan(shipping) error = %v", err)
	}
	if s != constant.OrderStatusShipping {
		t.Fatalf("Scan(shipping) = %s", s)
	}
	if err := s.Scan("archived"); err == nil {
		t.Fatal("Scan(archived) should reject unknown status")
	}
}
