package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Unauthorized("x"), http.StatusForbidden},
		{Invalid("x"), http.StatusBadRequest},
		{Unavailable("x", nil), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusServiceUnavailable},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestCodeOfSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("while deleting video: %w", NotFound("video not found"))
	if !IsNotFound(err) {
		t.Fatalf("expected wrapped not-found to be detected")
	}
}

func TestUnavailableWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("failed to fetch video", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved through Unwrap")
	}
}
