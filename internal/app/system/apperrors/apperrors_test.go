package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{Forbidden("no"), CodeForbidden},
		{NotFound(""), CodeNotFound},
		{MissingParameter("x"), CodeMissingParameter},
		{DataIntegrity("x"), CodeDataIntegrity},
		{Internal("x"), CodeInternal},
		{errors.New("plain"), CodeInternal},
		{fmt.Errorf("wrapped: %w", NotFound("gone")), CodeNotFound},
	}
	for _, tc := range cases {
		if got := CodeOf(tc.err); got != tc.want {
			t.Errorf("CodeOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestIs_MatchesOnCode(t *testing.T) {
	err := fmt.Errorf("context: %w", Forbidden("not yours"))
	if !errors.Is(err, Forbidden("")) {
		t.Error("errors.Is should match Forbidden regardless of message")
	}
	if errors.Is(err, NotFound("")) {
		t.Error("errors.Is must not match a different code")
	}
}

func TestError_Message(t *testing.T) {
	if got := NotFound("").Error(); got != "NOT_FOUND" {
		t.Errorf("empty message: %q", got)
	}
	if got := NotFound("survey not found").Error(); got != "NOT_FOUND: survey not found" {
		t.Errorf("with message: %q", got)
	}
}
