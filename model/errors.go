package model

import (
	"context"
	"errors"
	"fmt"

	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/storage"
)

type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrInvalidCID     ErrorCode = "INVALID_CID"
	ErrMissingCAS     ErrorCode = "MISSING_CAS"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrCIDMismatch    ErrorCode = "CID_MISMATCH"
	ErrParse          ErrorCode = "PARSE"
	ErrUnsupported    ErrorCode = "UNSUPPORTED"
	ErrConversion     ErrorCode = "CONVERSION"
	ErrMerge          ErrorCode = "MERGE"
	ErrCanceled       ErrorCode = "CANCELED"
	ErrInternal       ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human
// message. RuleID carries the library rule that failed, when known.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	RuleID  string    `json:"ruleId,omitempty"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

var kindCodes = map[sbomerr.Kind]ErrorCode{
	sbomerr.KindParse:       ErrParse,
	sbomerr.KindUnsupported: ErrUnsupported,
	sbomerr.KindConversion:  ErrConversion,
	sbomerr.KindInterop:     ErrConversion,
	sbomerr.KindMerge:       ErrMerge,
}

// AsCodedError maps any library error onto the boundary taxonomy.
func AsCodedError(err error) *CodedError {
	if err == nil {
		return nil
	}
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce
	}
	var se *sbomerr.Error
	if errors.As(err, &se) {
		code, ok := kindCodes[se.Kind]
		if !ok {
			code = ErrInternal
		}
		return &CodedError{Code: code, RuleID: se.RuleID, Message: err.Error()}
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return NewError(ErrNotFound, err.Error())
	case errors.Is(err, storage.ErrCIDMismatch), errors.Is(err, storage.ErrImmutable):
		return NewError(ErrCIDMismatch, err.Error())
	case errors.Is(err, storage.ErrInvalidCID):
		return NewError(ErrInvalidCID, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewError(ErrCanceled, err.Error())
	}
	return NewError(ErrInternal, err.Error())
}
