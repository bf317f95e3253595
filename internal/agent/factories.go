package agent

import (
	"errors"
	"fmt"
	"log"

	"github.com/quanda-ai/quanda/config"
	"github.com/quanda-ai/quanda/internal/chart"
	"github.com/quanda-ai/quanda/internal/knowledge"
	"github.com/quanda-ai/quanda/internal/telemetry"
	"github.com/quanda-ai/quanda/provider"
	openai_provider "github.com/quanda-ai/quanda/provider/openai"
)

// NewProvider creates a streaming completion provider based on configuration
func NewProvider(cfg config.LLMConfig) (provider.Provider, error) {
	switch cfg.Type {
	case "openai":
		if cfg.APIKey == "" {
			return nil, errors.New("llm.api_key not set (QUANDA_LLM_API_KEY)")
		}
		return openai_provider.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout), nil
	case "anthropic":
		return nil, errors.New("anthropic provider not implemented yet")
	default:
		return nil, fmt.Errorf("unsupported LLM provider type: %s", cfg.Type)
	}
}

// FromConfig wires a complete orchestrator: classifier keyword sets and the
// reference aggregator from configuration, the chart stub, and the configured
// streaming provider. The store capability is injected by the caller.
func FromConfig(cfg *config.Config, fetcher knowledge.Fetcher, logger *log.Logger, tele *telemetry.Telemetry) (*Orchestrator, error) {
	llm, err := NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	classifier := NewClassifier(cfg.Agent.ChartKeywords, cfg.Agent.KnowledgeKeywords)
	kbLogger := log.New(log.Writer(), "[KB] ", log.LstdFlags)
	aggregator := knowledge.NewAggregator(fetcher, cfg.Agent.Tenant, cfg.Agent.FetchLimit, kbLogger, tele)

	return NewOrchestrator(classifier, aggregator, chart.Generate, llm, logger, tele), nil
}
