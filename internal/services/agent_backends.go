package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"apiforge/internal/agents"
	"apiforge/internal/config"
	"apiforge/internal/utils"
)

// NewAgentBackends builds the caller and publisher selected by cfg.
// The HTTP gateway is always the fallback route; the LLM backend takes over the
// manager and publishing agent ids when configured.
func NewAgentBackends(ctx context.Context, cfg config.Config, keys *KeyringService, catalog ModelCatalogService) (agents.Caller, agents.Publisher, error) {
	router := agents.NewRouter(agents.NewHTTPCaller(cfg.Agents.Endpoint, &http.Client{Timeout: 10 * time.Minute}))

	switch cfg.Agents.Backend {
	case config.AgentBackendHTTP:
	case config.AgentBackendLLM:
		llmCfg := cfg.LLM
		if keys != nil {
			llmCfg.APIKey = keys.ResolveApiKey(llmCfg.Provider, llmCfg.APIKey)
		}
		if catalog != nil {
			mdl, err := catalog.Resolve(llmCfg.Provider, llmCfg.Model)
			if err != nil {
				return nil, nil, fmt.Errorf("resolving chat model: %w", err)
			}
			llmCfg.Model = mdl.APIName
		}
		chat, err := agents.NewChatModel(ctx, llmCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("creating %s chat model: %w", llmCfg.Provider, err)
		}
		llm, err := agents.NewAgentLLMCaller(chat, cfg.Agents.ManagerAgentID, cfg.Agents.PublishAgentID)
		if err != nil {
			return nil, nil, err
		}
		router.Handle(cfg.Agents.ManagerAgentID, llm).Handle(cfg.Agents.PublishAgentID, llm)
	default:
		return nil, nil, fmt.Errorf("unknown agent backend %q", cfg.Agents.Backend)
	}

	var publisher agents.Publisher
	switch cfg.Publish.Backend {
	case config.PublishBackendAgent:
		publisher = agents.NewAgentPublisher(router)
	case config.PublishBackendGit:
		if cfg.Publish.WorkDir == "" {
			return nil, nil, fmt.Errorf("git publish backend needs APIFORGE_GIT_WORKDIR")
		}
		if !utils.DirectoryExists(cfg.Publish.WorkDir) {
			return nil, nil, fmt.Errorf("git work dir %s does not exist", cfg.Publish.WorkDir)
		}
		publisher = agents.NewGitPublisher(cfg.Publish.WorkDir, cfg.Publish.Author, cfg.Publish.Email)
	default:
		return nil, nil, fmt.Errorf("unknown publish backend %q", cfg.Publish.Backend)
	}

	slog.InfoContext(ctx, "agent backends ready",
		"agent_backend", cfg.Agents.Backend,
		"llm_provider", cfg.LLM.Provider,
		"publish_backend", cfg.Publish.Backend)
	return router, publisher, nil
}
