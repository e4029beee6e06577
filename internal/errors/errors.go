package errors

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Code int

const (
	CodeInternal Code = iota
	// CodeValidation is malformed input caught before any network call.
	CodeValidation
	// CodeRequest is a platform or network failure that exhausted retries.
	CodeRequest
	// CodeLookup is a rejected identity resolution.
	CodeLookup
	CodeNotFound
	CodeSessionClosed
	// CodeIntegrity signals a violated internal invariant, i.e. a bug.
	CodeIntegrity
	CodeAlreadyExists
)

var codeNames = map[Code]string{
	CodeInternal:      "internal",
	CodeValidation:    "validation",
	CodeRequest:       "request",
	CodeLookup:        "lookup",
	CodeNotFound:      "not found",
	CodeSessionClosed: "session closed",
	CodeIntegrity:     "integrity",
	CodeAlreadyExists: "already exists",
}

var code2grpc = map[Code]codes.Code{
	CodeInternal:      codes.Internal,
	CodeValidation:    codes.InvalidArgument,
	CodeRequest:       codes.Unavailable,
	CodeLookup:        codes.FailedPrecondition,
	CodeNotFound:      codes.NotFound,
	CodeSessionClosed: codes.FailedPrecondition,
	CodeIntegrity:     codes.Internal,
	CodeAlreadyExists: codes.AlreadyExists,
}

var code2http = map[Code]int{
	CodeInternal:      http.StatusInternalServerError,
	CodeValidation:    http.StatusBadRequest,
	CodeRequest:       http.StatusBadGateway,
	CodeLookup:        http.StatusUnprocessableEntity,
	CodeNotFound:      http.StatusNotFound,
	CodeSessionClosed: http.StatusConflict,
	CodeIntegrity:     http.StatusInternalServerError,
	CodeAlreadyExists: http.StatusConflict,
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	err     error
}

func New(code Code, opts ...Option) *Error {
	e := &Error{
		Code:    code,
		Message: code.String(),
	}

	for _, opt := range opts {
		opt.apply(e)
	}

	return e
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.err != nil {
		s += fmt.Sprintf(": %s", e.err)
	}

	return s
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) GRPCStatus() *status.Status {
	c, ok := code2grpc[e.Code]
	if !ok {
		c = codes.Internal
	}
	return status.New(c, e.Message)
}

func (e *Error) HTTPStatusCode() int {
	if c, ok := code2http[e.Code]; ok {
		return c
	}

	return http.StatusInternalServerError
}

// Convert returns the first *Error in err's chain, or wraps err as internal.
func Convert(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return Internal(err)
	}

	return e
}

// HasCode reports whether err's chain contains an *Error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func Internal(err error) *Error {
	return New(CodeInternal, WithCause(err))
}

func Validationf(format string, args ...any) *Error {
	return New(CodeValidation, WithMessagef(format, args...))
}

func NotFoundf(format string, args ...any) *Error {
	return New(CodeNotFound, WithMessagef(format, args...))
}

func SessionClosedf(format string, args ...any) *Error {
	return New(CodeSessionClosed, WithMessagef(format, args...))
}

func Integrityf(format string, args ...any) *Error {
	return New(CodeIntegrity, WithMessagef(format, args...))
}

// Request wraps the last error observed before retries ran out.
func Request(method string, err error) *Error {
	return New(CodeRequest, WithMessagef("%s failed after retries", method), WithCause(err))
}

func Lookup(description string, err error) *Error {
	return New(CodeLookup, WithMessagef("identity lookup rejected: %s", description), WithCause(err))
}

type Option interface {
	apply(*Error)
}

type optionFunc func(*Error)

func (f optionFunc) apply(e *Error) {
	f(e)
}

func WithCause(err error) Option {
	return optionFunc(func(e *Error) {
		e.err = err
	})
}

func WithMessagef(format string, args ...any) Option {
	return optionFunc(func(e *Error) {
		e.Message = fmt.Sprintf(format, args...)
	})
}
