package fnc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/and-other-tales/reception/internal/utils"
)

func echoCap(name string) Capability {
	return Capability{
		Name:        name,
		Description: "echoes its arguments",
		Parameters:  json.RawMessage(`{"type":"object"}`),
		Handler: func(_ context.Context, args json.RawMessage) (string, error) {
			return string(args), nil
		},
	}
}

func TestRegister_RejectsInvalid(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Capability{Name: "x"}); err == nil {
		t.Error("expected error for capability without handler")
	}
	if err := r.Register(echoCap("")); err == nil {
		t.Error("expected error for capability without name")
	}
}

func TestRegister_RejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoCap("a")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(echoCap("a")); err == nil {
		t.Error("expected error for duplicate capability")
	}
}

func TestList_PreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(echoCap(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	got := r.List()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %d capabilities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, got[i].Name, want[i])
		}
	}
}

func TestDispatch(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoCap("echo")); err != nil {
		t.Fatalf("register: %v", err)
	}

	out, err := r.Dispatch(context.Background(), "echo", json.RawMessage(`{"topic":"tarot"}`))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if out != `{"topic":"tarot"}` {
		t.Errorf("dispatch output = %q", out)
	}
}

func TestDispatch_UnknownCapability(t *testing.T) {
	r := NewRegistry()
	_, err := r.Dispatch(context.Background(), "nope", nil)
	if err == nil {
		t.Fatal("expected error for unknown capability")
	}
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
