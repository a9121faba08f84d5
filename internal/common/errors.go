package common

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind is the stable error category surfaced to callers.
type Kind string

const (
	KindInvalidArgument   Kind = "invalid_argument"
	KindValidation        Kind = "validation_error"
	KindNotFound          Kind = "not_found"
	KindAlreadyExists     Kind = "already_exists"
	KindInvalidTransition Kind = "invalid_transition"
	KindStoreUnavailable  Kind = "store_unavailable"
	KindPermissionDenied  Kind = "permission_denied"
	KindUnauthenticated   Kind = "unauthenticated"
	KindInternal          Kind = "internal"
)

// Error carries a Kind through wrapped error chains. Two errors are equal
// under errors.Is when their kinds match.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrValidation        = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrAlreadyExists     = &Error{Kind: KindAlreadyExists, Message: "resource already exists"}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition, Message: "invalid state transition"}
	ErrStoreUnavailable  = &Error{Kind: KindStoreUnavailable, Message: "store unavailable"}
	ErrPermissionDenied  = &Error{Kind: KindPermissionDenied, Message: "permission denied"}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated, Message: "unauthenticated"}
)

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return NewError(KindInvalidArgument, fmt.Sprintf(format, args...))
}

func Validation(format string, args ...interface{}) *Error {
	return NewError(KindValidation, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return NewError(KindNotFound, fmt.Sprintf(format, args...))
}

func AlreadyExists(format string, args ...interface{}) *Error {
	return NewError(KindAlreadyExists, fmt.Sprintf(format, args...))
}

func InvalidTransition(format string, args ...interface{}) *Error {
	return NewError(KindInvalidTransition, fmt.Sprintf(format, args...))
}

func StoreUnavailable(op string, err error) *Error {
	return WrapError(KindStoreUnavailable, "failed to "+op, err)
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error onto the REST contract.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidArgument, KindValidation, KindAlreadyExists:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition:
		return http.StatusConflict
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func GRPCCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	switch KindOf(err) {
	case KindInvalidArgument, KindValidation:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindAlreadyExists:
		return codes.AlreadyExists
	case KindInvalidTransition:
		return codes.FailedPrecondition
	case KindStoreUnavailable:
		return codes.Unavailable
	case KindPermissionDenied:
		return codes.PermissionDenied
	case KindUnauthenticated:
		return codes.Unauthenticated
	default:
		return codes.Internal
	}
}

// ToStatus converts err into a gRPC status error. Internal errors keep a
// generic message so driver details do not leak to clients.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	code := GRPCCode(err)
	if code == codes.Internal {
		return status.Error(code, "internal server error")
	}
	return status.Error(code, err.Error())
}
