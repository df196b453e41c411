package agent

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/fnc"
	"github.com/and-other-tales/reception/internal/llm"
	"github.com/and-other-tales/reception/internal/media"
	"github.com/and-other-tales/reception/internal/models"
)

// activeCall is the per-call conversation state: the running history handed
// to the conversational backend and the voice hooks the company-info
// capability uses for its filler utterance.
type activeCall struct {
	sess media.Session
	llm  llm.Provider
	caps *fnc.Registry
	log  logrus.FieldLogger

	mu      sync.Mutex
	history []llm.Message
}

func (c *activeCall) note(role, text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, llm.Message{Role: role, Content: text})
}

// LastRole reports the role of the most recent conversation turn, or the
// empty role when nothing beyond the system prompt has been said. The read
// is a snapshot; it may race with a turn landing at the same instant, which
// the filler policy accepts.
func (c *activeCall) LastRole() models.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.history) - 1; i >= 0; i-- {
		if c.history[i].Role != llm.RoleSystem {
			return models.Role(c.history[i].Role)
		}
	}
	return ""
}

// Say speaks through the media backend and, when addToHistory is set,
// records the utterance as an assistant turn.
func (c *activeCall) Say(ctx context.Context, text string, addToHistory bool) error {
	if err := c.sess.Say(ctx, text, addToHistory); err != nil {
		return err
	}
	if addToHistory {
		c.note(llm.RoleAssistant, text)
	}
	return nil
}

// answerFromText routes an inbound chat message through the conversational
// backend and speaks the reply. Runs on its own goroutine per message.
func (c *activeCall) answerFromText(ctx context.Context, text string) {
	c.mu.Lock()
	snapshot := make([]llm.Message, len(c.history), len(c.history)+1)
	copy(snapshot, c.history)
	c.mu.Unlock()
	snapshot = append(snapshot, llm.Message{Role: llm.RoleUser, Content: text})

	reply, err := c.llm.Chat(ctx, snapshot, c.caps)
	if err != nil {
		c.log.WithError(err).Error("chat answer failed")
		return
	}

	c.note(llm.RoleUser, text)
	if err := c.Say(ctx, reply, true); err != nil {
		c.log.WithError(err).Warn("chat reply speech failed")
	}
}
