package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// CallRecord tracks one active call, keyed by room name. A record survives
// agent re-dispatch to the same room, so Identity and StartedAt are set once
// on the first participant join and left alone afterwards.
type CallRecord struct {
	RoomName  string
	Identity  string
	StartedAt time.Time
	Metadata  map[string]string
}

// TranscriptEntry is one committed conversation turn headed for the
// transcript log.
type TranscriptEntry struct {
	Timestamp time.Time
	Role      Role
	Text      string
}

// ContentPart is one piece of a committed turn as delivered by the media
// backend. Anything that isn't text gets normalized to a placeholder before
// it reaches the transcript.
type ContentPart struct {
	Type string // "text" | "image" | ...
	Text string
}

// FlattenContent joins a turn's parts into a single transcript line,
// replacing non-text parts with an "[image]" placeholder.
func FlattenContent(parts []ContentPart) string {
	if len(parts) == 0 {
		return ""
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Type == "text" {
			out = append(out, p.Text)
		} else {
			out = append(out, "[image]")
		}
	}
	return strings.Join(out, "\n")
}
