// Package ai integrates external text-transform providers. The core only
// passes structured text through; provider output is returned verbatim.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spryte/internal/config"
)

// Provider is an opaque text-in/text-out capability.
type Provider interface {
	// TransformText runs the canned prompt template for the given action
	// over text. extra is optional context prepended to the prompt.
	TransformText(ctx context.Context, text, action, extra string) (string, error)

	// Complete sends a raw system/user prompt pair. Used by flows that build
	// their own prompt, like reminder parsing.
	Complete(ctx context.Context, system, prompt string) (string, error)
}

var (
	ErrUnknownProvider     = errors.New("unknown AI provider")
	ErrUnsupportedProvider = errors.New("AI provider not yet supported")
	ErrMissingAPIKey       = errors.New("AI provider API key not configured")
)

type factory func(cfg config.Config) (Provider, error)

// Provider selection is a registry lookup so an unsupported provider fails
// here, up front, instead of somewhere deep inside a request.
var registry = map[string]factory{
	"openai":    newOpenAI,
	"anthropic": newAnthropic,
}

func New(name string, cfg config.Config) (Provider, error) {
	if name == "" {
		name = cfg.AIProvider
	}

	create, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return create(cfg)
}

func newAnthropic(cfg config.Config) (Provider, error) {
	if cfg.AnthropicKey == "" {
		return nil, ErrMissingAPIKey
	}
	return nil, fmt.Errorf("%w: anthropic", ErrUnsupportedProvider)
}
