package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by repositories.
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource conflict")
)

// Type buckets errors by who caused them.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

var typeNames = [...]string{
	TypeServer:     "ERROR_TYPE_SERVER",
	TypeBusiness:   "ERROR_TYPE_BUSINESS",
	TypeValidation: "ERROR_TYPE_VALIDATION",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "ERROR_TYPE_UNKNOWN"
	}
	return typeNames[t]
}

// Code is the stable identifier an error is reported under. Each code maps
// to one HTTP status.
type Code int

const (
	CodeInternal Code = iota
	// CodeInvalidFormat is a body that could not be decoded.
	CodeInvalidFormat
	// CodeInvalidInput is a decoded body that failed validation.
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeTooManyRequest
	CodeUnauthorized
	// CodeBadRequest is a valid request that the current state rejects, such
	// as a wrong or expired verification code.
	CodeBadRequest
)

type codeInfo struct {
	name   string
	status int
}

var codes = map[Code]codeInfo{
	CodeInternal:       {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat:  {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:   {"ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
	CodeNotFound:       {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeConflict:       {"ERROR_CODE_CONFLICT", http.StatusConflict},
	CodeTooManyRequest: {"ERROR_CODE_TOO_MANY_REQUESTS", http.StatusTooManyRequests},
	CodeUnauthorized:   {"ERROR_CODE_UNAUTHORIZED", http.StatusUnauthorized},
	CodeBadRequest:     {"ERROR_CODE_BAD_REQUEST", http.StatusBadRequest},
}

func (c Code) info() codeInfo {
	if info, ok := codes[c]; ok {
		return info
	}
	return codes[CodeInternal]
}

func (c Code) String() string { return c.info().name }

// Error is the structured error every usecase returns. It may wrap a cause
// and carries a client-facing message plus optional detail fields.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]any
}

// Error returns the wrapped cause when there is one, the message otherwise.
func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.errType.String()
	}
}

// String is the verbose form used in logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string { return e.msg }
func (e *Error) Type() Type { return e.errType }
func (e *Error) Code() Code { return e.code }
func (e *Error) Fields() map[string]any { return e.fields }
func (e *Error) Unwrap() error { return e.err }

// StatusCode is the HTTP status for the error code.
func (e *Error) StatusCode() int { return e.code.info().status }

func build(err error, msg string, et Type, code Code, kv []any) *Error {
	return &Error{err: err, msg: msg, errType: et, code: code, fields: pairs(kv)}
}

// pairs turns key/value arguments into a map. Values keep their type so
// numbers encode as JSON numbers. An odd trailing key is dropped, as is any
// pair whose key is not a string.
func pairs(kv []any) map[string]any {
	if len(kv) < 2 {
		return nil
	}

	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[key] = kv[i+1]
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// NewServer wraps an unexpected failure. Clients only see a generic message.
func NewServer(err error) error {
	return build(err, "Internal server error", TypeServer, CodeInternal, nil)
}

// NewBusiness reports a rule the request broke, with optional key/value details.
func NewBusiness(msg string, code Code, kv ...any) error {
	return build(nil, msg, TypeBusiness, code, kv)
}

// NewInvalidInput reports failed validation, either wrapping a validator
// error or built from key/value pairs. Odd pairs mean the caller could not
// name the field, so the error degrades to an invalid format.
func NewInvalidInput(err error, kv ...any) error {
	if err != nil {
		return build(err, "Validation error", TypeValidation, CodeInvalidInput, nil)
	}
	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}
	return build(nil, "Validation error", TypeValidation, CodeInvalidInput, kv)
}

// NewInvalidFormat reports a body that could not be decoded.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return build(nil, msg, TypeValidation, CodeInvalidFormat, nil)
}
