// Package fnc is the registry of callable capabilities the conversational
// backend may invoke by name. Adding an intent means registering one
// capability; nothing else branches on the capability set.
package fnc

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/and-other-tales/reception/internal/utils"
)

type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Capability is one function the model can call: a name, a human-readable
// description, a JSON schema for its parameters, and the handler that runs
// when the model invokes it.
type Capability struct {
	Name        string
	Description string
	Parameters  json.RawMessage
	Handler     Handler
}

type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Capability
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Capability)}
}

func (r *Registry) Register(c Capability) error {
	const op = "fnc.Registry.Register"

	if c.Name == "" || c.Handler == nil {
		return utils.E(utils.CodeInvalidArgument, op, "capability name and handler are required", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[c.Name]; ok {
		return utils.E(utils.CodeInvalidArgument, op, "capability already registered: "+c.Name, nil)
	}
	r.order = append(r.order, c.Name)
	r.byName[c.Name] = c
	return nil
}

// List returns capabilities in registration order, for tool declaration.
func (r *Registry) List() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Capability, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Dispatch runs the named capability with the model-provided arguments.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (string, error) {
	const op = "fnc.Registry.Dispatch"

	r.mu.RLock()
	c, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return "", utils.E(utils.CodeNotFound, op, "unknown capability: "+name, nil)
	}
	return c.Handler(ctx, args)
}
