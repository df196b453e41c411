package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	cause := errors.New("dial refused")
	err := E(CodeUnavailable, "Gateway.Connect", "gateway dial failed", cause)

	want := "Gateway.Connect: gateway dial failed: dial refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause must survive errors.Is")
	}
}

func TestIsCode(t *testing.T) {
	err := E(CodeNotFound, "Registry.Get", "missing", nil)
	if !IsCode(err, CodeNotFound) {
		t.Error("expected NOT_FOUND to match")
	}
	if IsCode(err, CodeInternal) {
		t.Error("unexpected INTERNAL match")
	}
	if IsCode(errors.New("plain"), CodeInternal) {
		t.Error("plain errors carry no code")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsCode(wrapped, CodeNotFound) {
		t.Error("code must be found through wrapping")
	}
}
