package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrConflict, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.New("something else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MapErrorToStatus(tc.err); got != tc.want {
			t.Errorf("MapErrorToStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestMapErrorToStatusSeesWrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("deactivating student: %w", ErrForbidden)
	if got := MapErrorToStatus(wrapped); got != http.StatusForbidden {
		t.Errorf("MapErrorToStatus(wrapped) = %d, want %d", got, http.StatusForbidden)
	}
}
