package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/mock"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/serpapi"
)

func TestNewProvider(t *testing.T) {
	t.Setenv("SERPAPI_API_KEY", "")

	p, err := NewProvider(Config{})
	require.NoError(t, err)
	assert.IsType(t, &mock.Generator{}, p)

	p, err = NewProvider(Config{Backend: "serpapi", SerpAPI: SerpAPIConfig{APIKey: "k"}})
	require.NoError(t, err)
	assert.IsType(t, &serpapi.Client{}, p)

	_, err = NewProvider(Config{Backend: "serpapi"})
	assert.ErrorContains(t, err, "api key is missing")

	_, err = NewProvider(Config{Backend: "pytrends"})
	assert.ErrorContains(t, err, "unknown trends backend")
}

func TestNewProvider_SerpAPIKeyFromEnv(t *testing.T) {
	t.Setenv("SERPAPI_API_KEY", "from-env")

	p, err := NewProvider(Config{Backend: "serpapi"})
	require.NoError(t, err)
	assert.IsType(t, &serpapi.Client{}, p)
}
