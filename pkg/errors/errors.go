package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeAuthRequired      Code = "AUTH_REQUIRED"
	CodeRefreshRejected   Code = "REFRESH_REJECTED"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeInvalidCoupon     Code = "INVALID_COUPON"
	CodeNotFound          Code = "NOT_FOUND"
	CodeNetwork           Code = "NETWORK_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable      bool
	UserMessage    string
	RequiresLogin  bool
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:      false,
		UserMessage:    "some fields are invalid",
		DetailsAllowed: true,
	},
	CodeAuthRequired: {
		Retryable:     false,
		UserMessage:   "please log in first",
		RequiresLogin: true,
	},
	CodeRefreshRejected: {
		Retryable:     false,
		UserMessage:   "your session has expired, please log in again",
		RequiresLogin: true,
	},
	CodeInsufficientStock: {
		Retryable:      false,
		UserMessage:    "not enough stock for the requested quantity",
		DetailsAllowed: true,
	},
	CodeInvalidCoupon: {
		Retryable:      false,
		UserMessage:    "the coupon code was rejected",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		Retryable:   false,
		UserMessage: "resource not found",
	},
	CodeNetwork: {
		Retryable:   true,
		UserMessage: "the shop is unreachable, try again in a moment",
	},
	CodeInternal: {
		Retryable:   true,
		UserMessage: "something went wrong",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf resolves the code for any error, defaulting to CodeInternal.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}
