package apiclient

import "errors"

// Kind classifies how a request settled.
type Kind int

const (
	// KindSuccess means the body decoded and carried no application error.
	KindSuccess Kind = iota
	// KindAppError means the service answered with an error message.
	KindAppError
	// KindTransportError means no usable answer arrived: network failure,
	// non-JSON body, unexpected shape, or cancellation.
	KindTransportError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindAppError:
		return "app_error"
	case KindTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// ErrTransport is wrapped by every transport-level failure.
var ErrTransport = errors.New("transport error")

// ErrNoMessage is the message used when the service reports failure
// without saying why.
const ErrNoMessage = "unknown error"

// Result is the outcome of one request.
// Value is set for KindSuccess and, when the body decoded, KindAppError.
// Message is set for KindAppError, Err for KindTransportError.
type Result[T any] struct {
	Kind       Kind
	Value      T
	Message    string
	Err        error
	StatusCode int
}

// OK reports whether the request succeeded.
func (r Result[T]) OK() bool {
	return r.Kind == KindSuccess
}

func success[T any](v T, status int) Result[T] {
	return Result[T]{Kind: KindSuccess, Value: v, StatusCode: status}
}

func appError[T any](v T, msg string, status int) Result[T] {
	if msg == "" {
		msg = ErrNoMessage
	}
	return Result[T]{Kind: KindAppError, Value: v, Message: msg, StatusCode: status}
}

func transportError[T any](err error, status int) Result[T] {
	return Result[T]{Kind: KindTransportError, Err: err, StatusCode: status}
}
