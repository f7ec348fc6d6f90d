package rental

import "errors"

// errors used by controllers

type ErrCode string

const (
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrNotAvailable      ErrCode = "NOT_AVAILABLE"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrUnauthorized      ErrCode = "UNAUTHORIZED"
	ErrInvalidState      ErrCode = "INVALID_STATE"
	ErrPaymentMismatch   ErrCode = "PAYMENT_MISMATCH"
	ErrAlreadyReturned   ErrCode = "ALREADY_RETURNED"
	ErrInvalidDate       ErrCode = "INVALID_DATE"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}

func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the business error code, or "" for infrastructure errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
