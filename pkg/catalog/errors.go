package catalog

import (
	"errors"
	"fmt"
)

// ErrFetch matches every *FetchError via errors.Is.
var ErrFetch = errors.New("catalog fetch failed")

// ErrorClass represents a classification of fetch failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx responses.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents transport failures, timeouts and
	// cancelled requests.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents a success response whose body could not be
	// decoded into a page.
	ErrorClassDecode ErrorClass = "decode"
)

// FetchError is returned when a page cannot be retrieved.
type FetchError struct {
	PageIndex  int
	StatusCode int // 0 when no response was received
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch page %d: %s error (status %d): %s: %v",
			e.PageIndex, e.ErrorClass, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch page %d: %s error (status %d): %s",
		e.PageIndex, e.ErrorClass, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports ErrFetch as matching any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// ClassifyStatus maps an HTTP status code to an error class. Statuses below
// 400 are not errors and yield "".
func ClassifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}
