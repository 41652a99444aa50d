package provider

import (
	"context"
	"strings"
	"time"

	"github.com/krispatl/mootie/internal/openai"
)

type openAIConfig struct {
	APIKey         string `json:"api_key"`
	BaseURL        string `json:"base_url"`
	VectorStoreID  string `json:"vector_store_id"`
	MaxResults     int    `json:"max_results"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// openAIProvider answers through the responses API with a file_search
// tool over the configured vector store, so replies carry citations.
type openAIProvider struct {
	client     *openai.Client
	storeID    string
	maxResults int
}

func NewOpenAIProvider(client *openai.Client, storeID string, maxResults int) IChatProvider {
	if maxResults <= 0 {
		maxResults = 4
	}
	return &openAIProvider{client: client, storeID: storeID, maxResults: maxResults}
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Chat(ctx context.Context, model string, prompt string) (*Reply, error) {
	reply, err := p.client.Respond(ctx, model, prompt, p.storeID, p.maxResults)
	if err != nil {
		return nil, err
	}
	return &Reply{Text: reply.Text, References: reply.References}, nil
}

func createOpenAIFactory(args interface{}) (IChatProvider, error) {
	cfg := &openAIConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	client := openai.NewClient(openai.Options{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		BaseURL: cfg.BaseURL,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	return NewOpenAIProvider(client, strings.TrimSpace(cfg.VectorStoreID), cfg.MaxResults), nil
}

func init() {
	Register("openai", createOpenAIFactory)
}
