package errors

import "marketplace/constant"

// CustomError is the typed failure returned by every application operation.
// It carries a machine-readable code plus an optional human-readable detail
// (e.g. which item ran out of stock, or the voucher minimum shortfall).
type CustomError struct {
	errType constant.ErrorType
	detail  string
}

func (c CustomError) Error() string {
	msg := constant.ErrorTypeMessage[c.errType]
	if c.detail != "" {
		return msg + ": " + c.detail
	}
	return msg
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ReasonCode() string {
	return constant.ReasonCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Detail() string {
	return c.detail
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

func SetCustomErrorWithDetail(errorType constant.ErrorType, detail string) CustomError {
	return CustomError{
		errType: errorType,
		detail:  detail,
	}
}
