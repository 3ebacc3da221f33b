package controller

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/product-extractor/pkg/apiclient"
)

// ErrEmptyURL is returned when an extraction is submitted without a URL.
var ErrEmptyURL = errors.New("url is required")

// AppError is a failure reported by the service itself.
type AppError struct {
	Op      string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// failure converts an unsuccessful result into an error. Transport failures
// keep apiclient.ErrTransport in their chain.
func failure[T any](op string, res apiclient.Result[T]) error {
	switch res.Kind {
	case apiclient.KindAppError:
		return &AppError{Op: op, Message: res.Message}
	case apiclient.KindTransportError:
		return fmt.Errorf("%s: %w", op, res.Err)
	default:
		return nil
	}
}
