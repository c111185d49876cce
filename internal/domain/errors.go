package domain

import (
	"errors"
	"fmt"
)

// NetworkError reports that the catalog API could not be reached or answered with a failure status.
type NetworkError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DataShapeError reports a catalog response that decoded but is missing expected fields.
type DataShapeError struct {
	Endpoint string
	Reason   string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("catalog %s: unexpected response shape: %s", e.Endpoint, e.Reason)
}

// ErrNotFound is wrapped by NetworkError when the catalog answers 404.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err originates from a 404 catalog response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsDataShape reports whether err is a DataShapeError.
func IsDataShape(err error) bool {
	var shapeErr *DataShapeError
	return errors.As(err, &shapeErr)
}
