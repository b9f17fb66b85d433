package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiforge/internal/services"
)

func TestModelCatalog_EmbeddedProviders(t *testing.T) {
	catalog, err := services.NewModelCatalogService()
	require.NoError(t, err)

	groups := catalog.ListModelGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, "openai", groups[0].ProviderID)
	assert.Equal(t, "anthropic", groups[1].ProviderID)
	assert.Equal(t, "gemini", groups[2].ProviderID)
	for _, g := range groups {
		assert.NotEmpty(t, g.Models, g.ProviderID)
	}
}

func TestModelCatalog_Resolve(t *testing.T) {
	catalog, err := services.NewModelCatalogService()
	require.NoError(t, err)

	def, err := catalog.Resolve("anthropic", "")
	require.NoError(t, err)
	assert.True(t, def.Default)
	assert.Equal(t, "claude-sonnet-4-5", def.APIName)

	explicit, err := catalog.Resolve("openai", "gpt-5")
	require.NoError(t, err)
	assert.Equal(t, "openai|gpt-5", explicit.Key)

	_, err = catalog.Resolve("openai", "davinci")
	assert.Error(t, err)
	_, err = catalog.Resolve("mistral", "")
	assert.Error(t, err)
}

func TestModelCatalog_LoadWithoutDefaultPicksFirstByName(t *testing.T) {
	catalog, err := services.NewModelCatalogService()
	require.NoError(t, err)

	require.NoError(t, catalog.Load([]byte(`{"providers":[{"id":"openai","models":[{"displayName":"Zeta","apiName":"z"},{"displayName":"alpha","apiName":"a"}]},{"id":""}]}`)))

	groups := catalog.ListModelGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, "openai", groups[0].ProviderName)
	mdl, err := catalog.Resolve("openai", "")
	require.NoError(t, err)
	assert.Equal(t, "a", mdl.APIName)

	assert.Error(t, catalog.Load([]byte(`{`)))
}
