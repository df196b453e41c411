package registry

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGetOrCreate_ReturnsSameRecord(t *testing.T) {
	r := New(testLogger())

	first := r.GetOrCreate("call-42", `{"caller_id":"+441234567890"}`)
	second := r.GetOrCreate("call-42", `{"caller_id":"someone-else"}`)

	if first != second {
		t.Error("re-dispatch to the same room should return the same record")
	}
	if got := first.Metadata["caller_id"]; got != "+441234567890" {
		t.Errorf("caller_id = %q, want the first dispatch's value", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestGetOrCreate_MalformedMetadata(t *testing.T) {
	r := New(testLogger())

	rec := r.GetOrCreate("call-7", "{not json")
	if rec == nil {
		t.Fatal("expected a record despite malformed metadata")
	}
	if len(rec.Metadata) != 0 {
		t.Errorf("expected empty metadata, got %v", rec.Metadata)
	}
}

func TestGetOrCreate_EmptyMetadata(t *testing.T) {
	r := New(testLogger())
	rec := r.GetOrCreate("call-8", "")
	if rec.Metadata == nil {
		t.Error("metadata map should be initialized even when empty")
	}
}

func TestRemove_Idempotent(t *testing.T) {
	r := New(testLogger())
	r.GetOrCreate("call-42", "")

	r.Remove("call-42")
	if r.Len() != 0 {
		t.Fatalf("Len() = %d after remove, want 0", r.Len())
	}
	// second removal is a no-op, not a panic or error
	r.Remove("call-42")
	r.Remove("never-existed")
}

func TestRecordsAreIndependentPerRoom(t *testing.T) {
	r := New(testLogger())
	a := r.GetOrCreate("call-1", "")
	b := r.GetOrCreate("call-2", "")
	if a == b {
		t.Error("distinct rooms must get distinct records")
	}
	r.Remove("call-1")
	if r.GetOrCreate("call-2", "") != b {
		t.Error("removing one room must not disturb another")
	}
}
