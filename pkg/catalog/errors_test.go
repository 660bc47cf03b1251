package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestFetchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FetchError
		want string
	}{
		{
			name: "server error without cause",
			err: &FetchError{
				PageIndex:  2,
				StatusCode: 503,
				ErrorClass: ErrorClassServer,
				Message:    "503 Service Unavailable",
			},
			want: "fetch page 2: server error (status 503): 503 Service Unavailable",
		},
		{
			name: "network error with cause",
			err: &FetchError{
				PageIndex:  0,
				ErrorClass: ErrorClassNetwork,
				Message:    "request failed",
				Err:        errors.New("connection refused"),
			},
			want: "fetch page 0: network error (status 0): request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchError_IsAndUnwrap(t *testing.T) {
	err := fmt.Errorf("navigate: %w", &FetchError{
		ErrorClass: ErrorClassNetwork,
		Err:        context.Canceled,
	})

	if !errors.Is(err, ErrFetch) {
		t.Error("wrapped FetchError should match ErrFetch")
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("FetchError should unwrap to its cause")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As should find *FetchError")
	}
	if fe.ErrorClass != ErrorClassNetwork {
		t.Errorf("ErrorClass = %q, want %q", fe.ErrorClass, ErrorClassNetwork)
	}

	if errors.Is(errors.New("other"), ErrFetch) {
		t.Error("unrelated error should not match ErrFetch")
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorClass
	}{
		{200, ""},
		{304, ""},
		{400, ErrorClassClient},
		{404, ErrorClassClient},
		{429, ErrorClassClient},
		{500, ErrorClassServer},
		{503, ErrorClassServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			if got := ClassifyStatus(tt.status); got != tt.want {
				t.Errorf("ClassifyStatus(%d) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}
