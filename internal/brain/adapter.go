package brain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ContextTurn is one prior exchange unit forwarded as grounding.
type ContextTurn struct {
	Speaker string `json:"speaker"` // user|agent
	Text    string `json:"text"`
}

// Request is the normalized completion-service request: one system
// instruction, a bounded window of prior turns, and the new utterance.
type Request struct {
	SessionID   string        `json:"session_id"`
	TurnID      string        `json:"turn_id"`
	Instruction string        `json:"instruction"`
	Context     []ContextTurn `json:"context,omitempty"`
	UserText    string        `json:"user_text"`
	Language    string        `json:"language,omitempty"`
}

// Response is the final generated text after streaming deltas.
type Response struct {
	Text string `json:"text"`
}

// DeltaHandler receives streaming text fragments.
type DeltaHandler func(delta string) error

// Adapter is the single contract the orchestrator speaks to the
// completion service. All failure interpretation happens at the
// orchestrator boundary, not per call site.
type Adapter interface {
	Generate(ctx context.Context, req Request, onDelta DeltaHandler) (Response, error)
}

// Config controls adapter construction.
type Config struct {
	Mode         string
	HTTPURL      string
	OpenAIAPIKey string
	OpenAIModel  string
	MaxTokens    int
}

func NewAdapter(cfg Config) (Adapter, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		return newAutoAdapter(cfg), nil
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, errors.New("openai api key is required for openai mode")
		}
		return NewOpenAIAdapter(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.MaxTokens), nil
	case "http":
		if strings.TrimSpace(cfg.HTTPURL) == "" {
			return nil, errors.New("brain HTTP url is required for http mode")
		}
		return NewHTTPAdapter(cfg.HTTPURL), nil
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unsupported brain adapter mode %q", cfg.Mode)
	}
}

func newAutoAdapter(cfg Config) Adapter {
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		return NewOpenAIAdapter(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.MaxTokens)
	}
	if strings.TrimSpace(cfg.HTTPURL) != "" {
		return NewHTTPAdapter(cfg.HTTPURL)
	}
	return NewMockAdapter()
}
