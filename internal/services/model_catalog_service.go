package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"apiforge/internal/assets"
	"apiforge/internal/models"
)

// ModelCatalogService exposes the embedded catalog of chat models per provider.
type ModelCatalogService interface {
	Load(data []byte) error
	ListModelGroups() []models.LLMModelGroup
	Resolve(provider, apiName string) (models.LLMModel, error)
}

type modelCatalogService struct {
	mu            sync.RWMutex
	providerOrder []string
	providerNames map[string]string
	models        map[string]models.LLMModel
}

type rawModelFile struct {
	Providers []rawProvider `json:"providers"`
}

type rawProvider struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Models      []rawModel `json:"models"`
}

type rawModel struct {
	DisplayName string `json:"displayName"`
	APIName     string `json:"apiName"`
	Default     bool   `json:"default,omitempty"`
}

// NewModelCatalogService returns a catalog loaded from the embedded asset.
func NewModelCatalogService() (ModelCatalogService, error) {
	s := &modelCatalogService{}
	if err := s.Load(assets.ModelsData); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the catalog with the providers described by data.
func (s *modelCatalogService) Load(data []byte) error {
	var parsed rawModelFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse models asset: %w", err)
	}

	order := make([]string, 0, len(parsed.Providers))
	names := make(map[string]string, len(parsed.Providers))
	catalog := make(map[string]models.LLMModel)
	for _, provider := range parsed.Providers {
		providerID := strings.TrimSpace(provider.ID)
		if providerID == "" {
			continue
		}
		providerName := strings.TrimSpace(provider.DisplayName)
		if providerName == "" {
			providerName = providerID
		}
		names[providerID] = providerName
		order = append(order, providerID)
		for _, mdl := range provider.Models {
			apiName := strings.TrimSpace(mdl.APIName)
			if apiName == "" {
				continue
			}
			key := modelKey(providerID, apiName)
			catalog[key] = models.LLMModel{
				Key:          key,
				DisplayName:  strings.TrimSpace(mdl.DisplayName),
				APIName:      apiName,
				ProviderID:   providerID,
				ProviderName: providerName,
				Default:      mdl.Default,
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.providerOrder = order
	s.providerNames = names
	s.models = catalog
	return nil
}

func (s *modelCatalogService) ListModelGroups() []models.LLMModelGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.LLMModelGroup, 0, len(s.providerOrder))
	for _, providerID := range s.providerOrder {
		group := models.LLMModelGroup{
			ProviderID:   providerID,
			ProviderName: s.providerNames[providerID],
			Models:       s.providerModels(providerID),
		}
		groups = append(groups, group)
	}
	return groups
}

// Resolve finds apiName for provider. An empty apiName selects the provider default.
func (s *modelCatalogService) Resolve(provider, apiName string) (models.LLMModel, error) {
	provider = strings.TrimSpace(provider)
	apiName = strings.TrimSpace(apiName)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.providerNames[provider]; !ok {
		return models.LLMModel{}, fmt.Errorf("provider %s not found", provider)
	}
	if apiName != "" {
		mdl, ok := s.models[modelKey(provider, apiName)]
		if !ok {
			return models.LLMModel{}, fmt.Errorf("model %s not found for provider %s", apiName, provider)
		}
		return mdl, nil
	}

	available := s.providerModels(provider)
	for _, mdl := range available {
		if mdl.Default {
			return mdl, nil
		}
	}
	if len(available) > 0 {
		return available[0], nil
	}
	return models.LLMModel{}, fmt.Errorf("provider %s has no models", provider)
}

func (s *modelCatalogService) providerModels(providerID string) []models.LLMModel {
	var out []models.LLMModel
	for _, mdl := range s.models {
		if mdl.ProviderID == providerID {
			out = append(out, mdl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
	})
	return out
}

func modelKey(providerID, apiName string) string {
	return providerID + "|" + apiName
}
