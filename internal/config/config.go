package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"apiforge/internal/utils"
)

const (
	AgentBackendHTTP = "http"
	AgentBackendLLM  = "llm"

	PublishBackendAgent = "agent"
	PublishBackendGit   = "git"

	DefaultManagerAgentID = "6998dda44657541456743cb6"
	DefaultPublishAgentID = "6998ddbc8d370e1a6cc0ba7a"
)

type Config struct {
	Env       string
	DBPath    string
	StatusTTL time.Duration
	Agents    AgentConfig
	LLM       LLMConfig
	Publish   PublishConfig
}

type AgentConfig struct {
	Backend        string // "http" or "llm"
	Endpoint       string
	ManagerAgentID string
	PublishAgentID string
}

type LLMConfig struct {
	Provider  string // "openai", "anthropic" or "gemini"
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

type PublishConfig struct {
	Backend string // "agent" or "git"
	WorkDir string
	Author  string
	Email   string
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment. In development a .env file at the
// project root is loaded first when present.
func Load() Config {
	if getEnv("APIFORGE_ENV", "development") == "development" {
		_ = utils.LoadEnv()
	}

	cfg := Config{
		Env:       getEnv("APIFORGE_ENV", "development"),
		DBPath:    getEnv("APIFORGE_DB_PATH", ""),
		StatusTTL: time.Duration(getEnvInt("APIFORGE_STATUS_TTL_MS", 5000)) * time.Millisecond,
		Agents: AgentConfig{
			Backend:        strings.ToLower(getEnv("APIFORGE_AGENT_BACKEND", AgentBackendHTTP)),
			Endpoint:       getEnv("APIFORGE_AGENT_ENDPOINT", "http://localhost:3000/api/agent"),
			ManagerAgentID: getEnv("APIFORGE_MANAGER_AGENT_ID", DefaultManagerAgentID),
			PublishAgentID: getEnv("APIFORGE_PUBLISH_AGENT_ID", DefaultPublishAgentID),
		},
		LLM: LLMConfig{
			Provider:  strings.ToLower(getEnv("APIFORGE_LLM_PROVIDER", "openai")),
			Model:     getEnv("APIFORGE_LLM_MODEL", ""),
			APIKey:    getEnv("APIFORGE_LLM_API_KEY", ""),
			BaseURL:   getEnv("APIFORGE_LLM_BASE_URL", ""),
			MaxTokens: getEnvInt("APIFORGE_LLM_MAX_TOKENS", 8192),
		},
		Publish: PublishConfig{
			Backend: strings.ToLower(getEnv("APIFORGE_PUBLISH_BACKEND", PublishBackendAgent)),
			WorkDir: getEnv("APIFORGE_GIT_WORKDIR", ""),
			Author:  getEnv("APIFORGE_GIT_AUTHOR", "apiforge"),
			Email:   getEnv("APIFORGE_GIT_EMAIL", "apiforge@localhost"),
		},
	}
	if cfg.StatusTTL <= 0 {
		cfg.StatusTTL = 5 * time.Second
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
