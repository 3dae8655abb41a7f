package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusPerKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Validation("invalid"), http.StatusBadRequest},
		{Conflict("duplicate"), http.StatusConflict},
		{Forbidden("denied"), http.StatusForbidden},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{BadRequest("malformed"), http.StatusBadRequest},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("HTTPStatus(kind %d) = %d, want %d", tc.err.Kind, got, tc.want)
		}
	}
}

func TestIsMatchesKind(t *testing.T) {
	if !Is(NotFound("lead not found"), KindNotFound) {
		t.Fatal("Is() = false for matching kind")
	}
	if Is(NotFound("lead not found"), KindConflict) {
		t.Fatal("Is() = true for wrong kind")
	}
	if Is(errors.New("plain"), KindNotFound) {
		t.Fatal("Is() = true for plain error")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindInternal, "query failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error lost its cause")
	}
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus() = %d, want 500", err.HTTPStatus())
	}
}

func TestErrorIncludesOp(t *testing.T) {
	err := NotFound("user not found").WithOp("auth.GetMe")
	if err.Error() != "auth.GetMe: user not found" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
