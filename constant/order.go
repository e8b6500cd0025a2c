package constant

import (
	"database/sql/driver"
	"fmt"
)

// OrderStatus is the closed set of order lifecycle states. It is persisted
// as a string; unknown values are rejected at the persistence boundary.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPacked    OrderStatus = "packed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderStatusTransitions holds the allowed forward transitions. Statuses are
// monotonic; no state is ever revisited.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPacked, OrderStatusCancelled},
	OrderStatusPacked:    {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:  {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderStatusTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown order status %q", string(s))
	}
	return string(s), nil
}

func (s *OrderStatus) Scan(src interface{}) error {
	var v OrderStatus
	switch raw := src.(type) {
	case []byte:
		v = OrderStatus(raw)
	case string:
		v = OrderStatus(raw)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", src)
	}
	if !v.Valid() {
		return fmt.Errorf("unknown order status %q", string(v))
	}
	*s = v
	return nil
}

// PaymentMethod is the closed set of accepted payment methods. Actual
// payment processing belongs to the external payment collaborator.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodEwallet      PaymentMethod = "ewallet"
	PaymentMethodCOD          PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodEwallet, PaymentMethodCOD:
		return true
	}
	return false
}

func (m PaymentMethod) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", string(m))
	}
	return string(m), nil
}

func (m *PaymentMethod) Scan(src interface{}) error {
	var v PaymentMethod
	switch raw := src.(type) {
	case []byte:
		v = PaymentMethod(raw)
	case string:
		v = PaymentMethod(raw)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMethod", src)
	}
	if !v.Valid() {
		return fmt.Errorf("unknown payment method %q", string(v))
	}
	*m = v
	return nil
}

// PaymentStatus tracks the payment side of an order, transitioned by the
// external payment collaborator.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

func (s PaymentStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown payment status %q", string(s))
	}
	return string(s), nil
}

func (s *PaymentStatus) Scan(src interface{}) error {
	var v PaymentStatus
	switch raw := src.(type) {
	case []byte:
		v = PaymentStatus(raw)
	case string:
		v = PaymentStatus(raw)
	default:
		return fmt.Errorf("cannot scan %T into PaymentStatus", src)
	}
	if !v.Valid() {
		return fmt.Errorf("unknown payment status %q", string(v))
	}
	*s = v
	return nil
}
