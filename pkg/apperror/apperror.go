package apperror

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// Kind is the closed set of error categories the API exposes.
type Kind int

const (
	BadRequest Kind = iota
	Unauthorized
	Forbidden
	NotFound
	Conflict
	Internal
)

// InternalMessage is the only message ever shown for unclassified failures.
const InternalMessage = "An error has occurred on the server"

func (k Kind) Status() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure carrying the message shown to the client.
// The wrapped cause is for logs only and never reaches the response body.
// Stack is the development-mode diagnostic side channel, recorded for
// Internal errors when they are first classified; plain Go errors carry no
// origin stack, so this is the request goroutine at classification time, the
// closest point to the failure that is still observable.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	Stack   string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Classify maps an arbitrary error to a typed one. Errors already classified
// pass through untouched; known library failures get a kind; everything else
// degrades to Internal with the fixed generic message.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if mongo.IsDuplicateKeyError(err) {
		return Wrap(Conflict, "Duplicate value", err)
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Wrap(Unauthorized, "Token expired", err)
	}
	if errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return Wrap(Unauthorized, "Invalid token", err)
	}
	return &Error{Kind: Internal, Message: InternalMessage, Err: err, Stack: string(debug.Stack())}
}

// IsKind reports whether err classifies to the given kind.
func IsKind(err error, kind Kind) bool {
	return Classify(err).Kind == kind
}
