package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/99designs/keyring"
)

const serviceName = "apiforge"

// OpenKeyring opens the OS credential store for this application.
func OpenKeyring() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.KeyCtlBackend,
		},
		KeychainTrustApplication: true,
	})
}

// KeyringService stores LLM provider API keys, one item per provider.
type KeyringService struct {
	ring keyring.Keyring
}

// NewKeyringService wraps ring. A nil ring means no credential store is available;
// lookups then only consult the environment fallback.
func NewKeyringService(ring keyring.Keyring) *KeyringService {
	return &KeyringService{ring: ring}
}

func (s *KeyringService) StoreApiKey(provider string, apiKey []byte) error {
	if len(apiKey) == 0 {
		return errors.New("API key is empty")
	}
	if provider == "" {
		return errors.New("provider is required")
	}
	if s.ring == nil {
		return errors.New("no keyring backend available")
	}
	return s.ring.Set(keyring.Item{
		Key:         provider,
		Data:        apiKey,
		Label:       provider + " API key",
		Description: "API key for " + provider + " used by apiforge",
	})
}

func (s *KeyringService) GetApiKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	if s.ring == nil {
		return "", keyring.ErrKeyNotFound
	}
	item, err := s.ring.Get(provider)
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	if s.ring == nil {
		return keyring.ErrKeyNotFound
	}
	return s.ring.Remove(provider)
}

func (s *KeyringService) ListApiKeys() ([]map[string]string, error) {
	if s.ring == nil {
		return []map[string]string{}, nil
	}
	providers, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing keyring items: %w", err)
	}

	results := []map[string]string{}
	for _, provider := range providers {
		results = append(results, map[string]string{
			"provider":    provider,
			"label":       provider + " API key",
			"description": "API key for " + provider + " used by apiforge",
		})
	}
	return results, nil
}

// ResolveApiKey prefers the keyring entry for provider, then fallback, then the
// provider's conventional environment variable (for example OPENAI_API_KEY).
func (s *KeyringService) ResolveApiKey(provider, fallback string) string {
	if key, err := s.GetApiKey(provider); err == nil && key != "" {
		return key
	}
	if fallback != "" {
		return fallback
	}
	return os.Getenv(strings.ToUpper(provider) + "_API_KEY")
}
