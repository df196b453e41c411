package admin

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// scriptedRunner answers lk invocations by subcommand.
type scriptedRunner struct {
	byVerb map[string]struct {
		out []byte
		err error
	}
	calls [][]string
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	verb := ""
	if len(args) >= 2 {
		verb = args[0] + " " + args[1]
	}
	res := r.byVerb[verb]
	return res.out, res.err
}

func newTestClient(runner Runner) *Client {
	return NewClientWithRunner(Config{
		URL:       "wss://media.example.com",
		APIKey:    "key",
		APISecret: "secret",
	}, runner, testLogger())
}

func TestListActiveCalls(t *testing.T) {
	runner := &scriptedRunner{byVerb: map[string]struct {
		out []byte
		err error
	}{
		"room list": {out: []byte(`[
			{"name":"call-42","created_at":"2025-06-19T10:00:00Z"},
			{"name":"lobby","created_at":"2025-06-19T09:00:00Z"},
			{"name":"call-7","created_at":"2025-06-19T11:00:00Z"}
		]`)},
		"room list-participants": {out: []byte(`[{"identity":"caller-abc","joined_at":"2025-06-19T10:00:05Z"}]`)},
	}}

	calls := newTestClient(runner).ListActiveCalls(context.Background())

	if len(calls) != 2 {
		t.Fatalf("expected 2 call rooms, got %d", len(calls))
	}
	if calls[0].Room.Name != "call-42" || calls[1].Room.Name != "call-7" {
		t.Errorf("unexpected rooms: %+v", calls)
	}
	if len(calls[0].Participants) != 1 || calls[0].Participants[0].Identity != "caller-abc" {
		t.Errorf("unexpected participants: %+v", calls[0].Participants)
	}
}

func TestListActiveCalls_NonJSONOutput(t *testing.T) {
	runner := &scriptedRunner{byVerb: map[string]struct {
		out []byte
		err error
	}{
		"room list": {out: []byte("lk: command not found")},
	}}

	if calls := newTestClient(runner).ListActiveCalls(context.Background()); len(calls) != 0 {
		t.Errorf("expected empty listing for unparsable output, got %+v", calls)
	}
}

func TestListActiveCalls_CommandFailure(t *testing.T) {
	runner := &scriptedRunner{byVerb: map[string]struct {
		out []byte
		err error
	}{
		"room list": {err: errors.New("exit status 1")},
	}}

	if calls := newTestClient(runner).ListActiveCalls(context.Background()); len(calls) != 0 {
		t.Errorf("expected empty listing on CLI failure, got %+v", calls)
	}
}

func TestListActiveCalls_ParticipantFailureDegrades(t *testing.T) {
	runner := &scriptedRunner{byVerb: map[string]struct {
		out []byte
		err error
	}{
		"room list":              {out: []byte(`[{"name":"call-1","created_at":"bogus"}]`)},
		"room list-participants": {err: errors.New("exit status 1")},
	}}

	calls := newTestClient(runner).ListActiveCalls(context.Background())
	if len(calls) != 1 {
		t.Fatalf("room should still be listed, got %d", len(calls))
	}
	if len(calls[0].Participants) != 0 {
		t.Errorf("expected zero participants on failure, got %+v", calls[0].Participants)
	}
	if !ParseTime(calls[0].Room.CreatedAt).IsZero() {
		t.Error("bogus timestamp should parse to the zero time")
	}
}

func TestEndCall(t *testing.T) {
	runner := &scriptedRunner{byVerb: map[string]struct {
		out []byte
		err error
	}{
		"room delete": {},
	}}
	c := newTestClient(runner)

	if !c.EndCall(context.Background(), "call-42") {
		t.Error("expected success")
	}

	// credentials use the https form of the wss url
	last := runner.calls[len(runner.calls)-1]
	joined := strings.Join(last, " ")
	if !strings.Contains(joined, "--url https://media.example.com") {
		t.Errorf("wss scheme not rewritten: %s", joined)
	}
}

func TestEndCall_Failure(t *testing.T) {
	runner := &scriptedRunner{byVerb: map[string]struct {
		out []byte
		err error
	}{
		"room delete": {err: errors.New("exit status 1")},
	}}

	if newTestClient(runner).EndCall(context.Background(), "call-42") {
		t.Error("expected failure to surface as false, not an error")
	}
}
