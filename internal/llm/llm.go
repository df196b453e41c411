package llm

import (
	"context"

	"github.com/and-other-tales/reception/internal/fnc"
	"github.com/and-other-tales/reception/internal/models"
)

type Message struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = string(models.RoleUser)
	RoleAssistant = string(models.RoleAssistant)
)

// Provider is the conversational backend: a chat call over the running
// history with the registered capabilities offered as callable functions.
// The provider runs any function invocations the model requests and returns
// the final synthesized reply.
type Provider interface {
	Chat(ctx context.Context, history []Message, caps *fnc.Registry) (string, error)
	Close() error
}
