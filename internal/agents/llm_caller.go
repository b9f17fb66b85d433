package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"apiforge/internal/config"
	"apiforge/internal/models"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// NewChatModel builds the eino chat model for the configured provider.
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (model.BaseChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("no API key configured for %s", cfg.Provider)
	}
	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		return nil, fmt.Errorf("no model configured for %s", cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  cfg.APIKey,
			Model:   name,
			BaseURL: cfg.BaseURL,
		})
	case ProviderAnthropic:
		claudeCfg := &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     name,
			MaxTokens: cfg.MaxTokens,
		}
		if cfg.BaseURL != "" {
			baseURL := cfg.BaseURL
			claudeCfg.BaseURL = &baseURL
		}
		return claude.NewChatModel(ctx, claudeCfg)
	case ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  name,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// LLMCaller answers agent calls with a chat model, one system prompt per agent id.
type LLMCaller struct {
	chat    model.BaseChatModel
	prompts map[string]string
}

func NewLLMCaller(chat model.BaseChatModel, prompts map[string]string) *LLMCaller {
	return &LLMCaller{chat: chat, prompts: prompts}
}

// NewAgentLLMCaller wires the manager and publishing roles to the given agent ids.
func NewAgentLLMCaller(chat model.BaseChatModel, managerAgentID, publishAgentID string) (*LLMCaller, error) {
	manager, err := SystemPrompt(RoleManager)
	if err != nil {
		return nil, err
	}
	publisher, err := SystemPrompt(RolePublisher)
	if err != nil {
		return nil, err
	}
	return NewLLMCaller(chat, map[string]string{
		managerAgentID: manager,
		publishAgentID: publisher,
	}), nil
}

func (c *LLMCaller) Call(ctx context.Context, message, agentID string) (*models.AgentResult, error) {
	system, ok := c.prompts[agentID]
	if !ok {
		return &models.AgentResult{Success: false, Error: fmt.Sprintf("unknown agent %s", agentID)}, nil
	}

	out, err := c.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(message),
	})
	if err != nil {
		return nil, fmt.Errorf("generating response for agent %s: %w", agentID, err)
	}
	if out == nil {
		return &models.AgentResult{Success: false, Error: "agent returned no message"}, nil
	}

	content := stripCodeFence(out.Content)
	if content == "" {
		return &models.AgentResult{Success: false, Error: "agent returned an empty response"}, nil
	}
	return &models.AgentResult{Success: true, Result: content}, nil
}

// stripCodeFence removes a surrounding markdown code fence such as ```json ... ```.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[") {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body)
}
