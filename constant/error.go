package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrEmptyCart
	ErrShopUnavailable
	ErrInsufficientStock
	ErrVoucherNotFound
	ErrVoucherInactive
	ErrVoucherNotYetValid
	ErrVoucherExpired
	ErrVoucherUsageLimitReached
	ErrVoucherBelowMinimum
	ErrInvalidStateTransition
	ErrConflict
	ErrLockTimeout
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:                  "success",
	ErrInternal:                 "error internal",
	ErrNotFound:                 "data not found",
	ErrInvalidRequest:           "invalid request",
	ErrUnauthorize:              "unauthorize request",
	ErrForbidden:                "actor not allowed to perform this action",
	ErrEmptyCart:                "cart is empty",
	ErrShopUnavailable:          "shop is not available for ordering",
	ErrInsufficientStock:        "insufficient stock",
	ErrVoucherNotFound:          "voucher not found",
	ErrVoucherInactive:          "voucher is inactive",
	ErrVoucherNotYetValid:       "voucher is not yet valid",
	ErrVoucherExpired:           "voucher expired",
	ErrVoucherUsageLimitReached: "voucher usage limit reached",
	ErrVoucherBelowMinimum:      "order subtotal below voucher minimum",
	ErrInvalidStateTransition:   "invalid order status transition",
	ErrConflict:                 "conflicting concurrent update",
	ErrLockTimeout:              "lock wait timeout, retry the request",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:                  http.StatusOK,
	ErrInternal:                 http.StatusInternalServerError,
	ErrNotFound:                 http.StatusNotFound,
	ErrInvalidRequest:           http.StatusBadRequest,
	ErrUnauthorize:              http.StatusUnauthorized,
	ErrForbidden:                http.StatusForbidden,
	ErrEmptyCart:                http.StatusBadRequest,
	ErrShopUnavailable:          http.StatusConflict,
	ErrInsufficientStock:        http.StatusConflict,
	ErrVoucherNotFound:          http.StatusNotFound,
	ErrVoucherInactive:          http.StatusBadRequest,
	ErrVoucherNotYetValid:       http.StatusBadRequest,
	ErrVoucherExpired:           http.StatusBadRequest,
	ErrVoucherUsageLimitReached: http.StatusConflict,
	ErrVoucherBelowMinimum:      http.StatusBadRequest,
	ErrInvalidStateTransition:   http.StatusConflict,
	ErrConflict:                 http.StatusConflict,
	ErrLockTimeout:              http.StatusServiceUnavailable,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:                  "0000",
	ErrInternal:                 "0001",
	ErrNotFound:                 "0002",
	ErrInvalidRequest:           "0003",
	ErrUnauthorize:              "0004",
	ErrForbidden:                "0005",
	ErrEmptyCart:                "0100",
	ErrShopUnavailable:          "0101",
	ErrInsufficientStock:        "0102",
	ErrVoucherNotFound:          "0200",
	ErrVoucherInactive:          "0201",
	ErrVoucherNotYetValid:       "0202",
	ErrVoucherExpired:           "0203",
	ErrVoucherUsageLimitReached: "0204",
	ErrVoucherBelowMinimum:      "0205",
	ErrInvalidStateTransition:   "0300",
	ErrConflict:                 "0301",
	ErrLockTimeout:              "0302",
}

// ReasonCode is the stable machine-readable reason exposed on API responses,
// e.g. BELOW_MINIMUM on a failed voucher validation.
var ReasonCode = map[ErrorType]string{
	Successful:                  "OK",
	ErrInternal:                 "INTERNAL",
	ErrNotFound:                 "NOT_FOUND",
	ErrInvalidRequest:           "VALIDATION",
	ErrUnauthorize:              "UNAUTHORIZED",
	ErrForbidden:                "FORBIDDEN",
	ErrEmptyCart:                "EMPTY_CART",
	ErrShopUnavailable:          "SHOP_UNAVAILABLE",
	ErrInsufficientStock:        "INSUFFICIENT_STOCK",
	ErrVoucherNotFound:          "NOT_FOUND",
	ErrVoucherInactive:          "INACTIVE",
	ErrVoucherNotYetValid:       "NOT_YET_VALID",
	ErrVoucherExpired:           "EXPIRED",
	ErrVoucherUsageLimitReached: "USAGE_LIMIT_REACHED",
	ErrVoucherBelowMinimum:      "BELOW_MINIMUM",
	ErrInvalidStateTransition:   "INVALID_STATE_TRANSITION",
	ErrConflict:                 "CONFLICT",
	ErrLockTimeout:              "LOCK_TIMEOUT",
}
