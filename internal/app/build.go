package app

import (
	"context"
	"fmt"

	"github.com/junolabs/juno/internal/brain"
	"github.com/junolabs/juno/internal/config"
	"github.com/junolabs/juno/internal/engine"
	"github.com/junolabs/juno/internal/guide"
	"github.com/junolabs/juno/internal/httpapi"
	"github.com/junolabs/juno/internal/memory"
	"github.com/junolabs/juno/internal/observability"
	"github.com/junolabs/juno/internal/prompts"
	"github.com/junolabs/juno/internal/router"
	"github.com/junolabs/juno/internal/safety"
	"github.com/junolabs/juno/internal/sentiment"
	"github.com/junolabs/juno/internal/session"
)

// BuildResult bundles the wired service pieces for the entrypoint.
type BuildResult struct {
	Config       config.Config
	API          *httpapi.Server
	Sessions     *session.Manager
	Orchestrator *engine.Orchestrator
	Metrics      *observability.Metrics
	Window       *observability.ExchangeWindow

	// Cleanup should be called on shutdown to release external
	// resources such as the database pool.
	Cleanup func() error
}

// Build assembles the whole service from configuration: prompt catalog,
// memory store, completion adapter, orchestrator and HTTP surface.
// Catalog validation happens here, so a broken prompt file fails the
// process before it ever binds a port.
func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)
	window := observability.NewExchangeWindow(256)

	catalog, err := prompts.Load(cfg.PromptsPath, cfg.DefaultLanguage, cfg.SupportedLanguages)
	if err != nil {
		return nil, fmt.Errorf("prompt catalog: %w", err)
	}

	memoryStore, err := memory.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("memory store init failed: %w", err)
	}

	adapter, err := brain.NewAdapter(brain.Config{
		Mode:         cfg.BrainMode,
		HTTPURL:      cfg.BrainHTTPURL,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
		MaxTokens:    cfg.BrainMaxTokens,
	})
	if err != nil {
		_ = memoryStore.Close()
		return nil, fmt.Errorf("brain adapter init failed: %w", err)
	}
	// Degrade to canned behavior rather than refusing exchanges when
	// the configured provider is down.
	adapter = brain.NewFallbackAdapter(adapter, brain.NewMockAdapter())

	safetyLists, err := safety.LoadLists(cfg.SafetyListsPath)
	if err != nil {
		_ = memoryStore.Close()
		return nil, err
	}

	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	kb := guide.NewKnowledgeBase()

	orchestrator, err := engine.NewOrchestrator(engine.Options{
		Sessions: sessions,
		Memory:   memoryStore,
		Brain:    adapter,
		Catalog:  catalog,
		Router:   router.New(safety.NewDetectorWithLists(safetyLists)),
		Scorer:   sentiment.NewLexiconScorer(),
		Moods: sentiment.NewClassifier(sentiment.Thresholds{
			Happy:   cfg.SentimentHappy,
			Calm:    cfg.SentimentCalm,
			Neutral: cfg.SentimentNeutral,
			Sad:     cfg.SentimentSad,
		}),
		Guide:        kb,
		Metrics:      metrics,
		Window:       window,
		MemoryWindow: cfg.MemoryWindow,
		BrainTimeout: cfg.BrainTimeout,
	})
	if err != nil {
		_ = memoryStore.Close()
		return nil, fmt.Errorf("orchestrator init failed: %w", err)
	}
	sessions.SetExpireHook(orchestrator.OnExpire)

	api := httpapi.New(cfg, orchestrator, sessions, kb, window)

	return &BuildResult{
		Config:       cfg,
		API:          api,
		Sessions:     sessions,
		Orchestrator: orchestrator,
		Metrics:      metrics,
		Window:       window,
		Cleanup:      memoryStore.Close,
	}, nil
}
