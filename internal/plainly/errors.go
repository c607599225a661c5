package plainly

import (
	"errors"
	"fmt"

	"github.com/koios/plainly-mcp/internal/format"
)

// ErrNoResponse marks requests that were sent but never answered
// (network failure, timeout, cancelled context).
var ErrNoResponse = errors.New("no response received")

// ErrInvalidDate is returned for a stats date bound that does not parse.
// It is raised before any request is made.
var ErrInvalidDate = errors.New("invalid date")

// ErrUnsupported matches every UnsupportedError
var ErrUnsupported = errors.New("operation not supported by Plainly")

// APIError is the normalized failure of a call to the Plainly API
type APIError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("Plainly API Error: %d - %s", e.StatusCode, e.detail())
	case errors.Is(e.Err, ErrNoResponse):
		return "Plainly API Error: No response received"
	case e.Err != nil && e.Err.Error() != "":
		return "Plainly API Error: " + e.Err.Error()
	default:
		return "Plainly API Error: Unknown error"
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// detail renders the response body: compacted when JSON, quoted when plain text
func (e *APIError) detail() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	}
	if compact, ok := format.Compact(e.Body); ok {
		return compact
	}
	return format.Quote(string(e.Body))
}

// UnsupportedError is returned without a network call for operations
// that must be done from the Plainly dashboard
type UnsupportedError struct {
	Operation string
	Message   string
}

func (e *UnsupportedError) Error() string {
	return e.Message
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
