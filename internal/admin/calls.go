// Package admin manages call rooms out of band through the lk CLI: listing
// active call rooms with their participants, and tearing a room down to end
// a call. Every external failure degrades to an empty result or a false
// flag; nothing here ever brings the caller down.
package admin

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner executes an external command and returns its stdout. Split out so
// tests can stub the lk CLI.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

type Config struct {
	URL        string
	APIKey     string
	APISecret  string
	RoomPrefix string // rooms carrying calls, default "call-"
}

type Client struct {
	cfg    Config
	runner Runner
	log    logrus.FieldLogger
}

func NewClient(cfg Config, log logrus.FieldLogger) *Client {
	if cfg.RoomPrefix == "" {
		cfg.RoomPrefix = "call-"
	}
	return &Client{cfg: cfg, runner: execRunner{}, log: log}
}

// NewClientWithRunner is for tests.
func NewClientWithRunner(cfg Config, runner Runner, log logrus.FieldLogger) *Client {
	c := NewClient(cfg, log)
	c.runner = runner
	return c
}

type Room struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type Participant struct {
	Identity string `json:"identity"`
	JoinedAt string `json:"joined_at"`
}

// ActiveCall is one call room with whoever is in it.
type ActiveCall struct {
	Room         Room
	Participants []Participant
}

// httpURL rewrites the websocket scheme for CLI calls.
func (c *Client) httpURL() string {
	return strings.Replace(c.cfg.URL, "wss", "https", 1)
}

func (c *Client) creds() []string {
	return []string{
		"--url", c.httpURL(),
		"--api-key", c.cfg.APIKey,
		"--api-secret", c.cfg.APISecret,
	}
}

// ListActiveCalls returns every room matching the call prefix along with its
// participants. A failed or unparsable CLI call yields an empty listing (or
// an empty participant set for that room), logged, never an error.
func (c *Client) ListActiveCalls(ctx context.Context) []ActiveCall {
	args := append([]string{"room", "list"}, c.creds()...)
	args = append(args, "--json")

	out, err := c.runner.Run(ctx, "lk", args...)
	if err != nil {
		c.log.WithError(err).Error("room list failed")
		return nil
	}

	var rooms []Room
	if err := json.Unmarshal(out, &rooms); err != nil {
		c.log.WithError(err).WithField("output", truncate(string(out))).Error("unparsable room list output")
		return nil
	}

	var calls []ActiveCall
	for _, room := range rooms {
		if !strings.HasPrefix(room.Name, c.cfg.RoomPrefix) {
			continue
		}
		calls = append(calls, ActiveCall{
			Room:         room,
			Participants: c.listParticipants(ctx, room.Name),
		})
	}
	return calls
}

func (c *Client) listParticipants(ctx context.Context, roomName string) []Participant {
	args := append([]string{"room", "list-participants", "--room", roomName}, c.creds()...)
	args = append(args, "--json")

	out, err := c.runner.Run(ctx, "lk", args...)
	if err != nil {
		c.log.WithError(err).WithField("room", roomName).Error("participant list failed")
		return nil
	}

	var participants []Participant
	if err := json.Unmarshal(out, &participants); err != nil {
		c.log.WithError(err).WithField("room", roomName).Error("unparsable participant list output")
		return nil
	}
	return participants
}

// EndCall deletes the room, disconnecting everyone in it. Returns whether
// the deletion went through; failures are logged, never raised.
func (c *Client) EndCall(ctx context.Context, roomName string) bool {
	args := append([]string{"room", "delete", "--room", roomName}, c.creds()...)

	if _, err := c.runner.Run(ctx, "lk", args...); err != nil {
		c.log.WithError(err).WithField("room", roomName).Error("room delete failed")
		return false
	}
	c.log.WithField("room", roomName).Info("call ended")
	return true
}

// ParseTime parses the CLI's ISO timestamps tolerantly; the zero time stands
// in for anything unparsable.
func ParseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func truncate(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
