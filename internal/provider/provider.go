// Package provider holds the chat provider registry. Providers are
// registered by name and built from opaque JSON config, so the backend
// can swap the model vendor without touching the handlers.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnavailable = errors.New("chat provider not configured")

// Reply is one assistant turn. References is empty for providers
// without retrieval.
type Reply struct {
	Text       string
	References []string
}

type IChatProvider interface {
	Name() string
	Chat(ctx context.Context, model string, prompt string) (*Reply, error)
}

// IChatter is a provider bound to a model.
type IChatter interface {
	Chat(ctx context.Context, prompt string) (*Reply, error)
}

type chatter struct {
	provider IChatProvider
	model    string
}

func NewChatter(p IChatProvider, model string) IChatter {
	return &chatter{provider: p, model: model}
}

func (c *chatter) Chat(ctx context.Context, prompt string) (*Reply, error) {
	return c.provider.Chat(ctx, c.model, prompt)
}

type Factory func(args interface{}) (IChatProvider, error)

var registry = map[string]Factory{}

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func New(name string, args interface{}) (IChatProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("chat provider name is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported chat provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode provider config: %w", err)
	}
	return nil
}
