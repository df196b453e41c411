// Package media is the narrow seam to the real-time room backend. The
// orchestrator only ever sees the Session interface; the gateway client
// behind it owns the wire protocol, audio, and speech synthesis.
package media

import (
	"context"

	"github.com/and-other-tales/reception/internal/models"
)

type Participant struct {
	Identity string
}

type ChatMessage struct {
	From string
	Text string
}

// TurnEvent is one committed turn (user speech transcribed, or assistant
// speech synthesized) as reported by the backend.
type TurnEvent struct {
	Role  models.Role
	Parts []models.ContentPart
}

// Session is one live room connection.
type Session interface {
	// WaitForParticipant blocks until a caller joins the room.
	WaitForParticipant(ctx context.Context) (Participant, error)
	// WaitForDisconnect blocks until the caller leaves or the connection fails.
	WaitForDisconnect(ctx context.Context) error
	// Say enqueues a spoken utterance; addToHistory records it as an
	// assistant turn in the backend's conversation state.
	Say(ctx context.Context, text string, addToHistory bool) error

	OnChatMessage(fn func(ChatMessage))
	OnUserTurnCommitted(fn func(TurnEvent))
	OnAssistantTurnCommitted(fn func(TurnEvent))

	Close() error
}

// Connector dials into a named room.
type Connector interface {
	Connect(ctx context.Context, roomName string) (Session, error)
}
