package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryEmptyConfigFails(t *testing.T) {
	_, err := NewRegistry(nil, time.Second)
	require.Error(t, err)
}

func TestNewRegistryUnknownShapeFails(t *testing.T) {
	_, err := NewRegistry([]Config{{ID: "x", Shape: "graphql"}}, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider shape")
}

func TestNewRegistryResolvesKeyFromEnv(t *testing.T) {
	t.Setenv("SPEAKFLOW_TEST_KEY", "from-env")

	r, err := NewRegistry([]Config{{
		ID:        "groq",
		Shape:     ShapeChatCompletions,
		BaseURL:   "http://unused",
		Model:     "m",
		APIKeyEnv: "SPEAKFLOW_TEST_KEY",
	}}, time.Second)
	require.NoError(t, err)

	assert.Equal(t, "from-env", r.Current().Config.APIKey)
}

func TestNewRegistryExplicitKeyWinsOverEnv(t *testing.T) {
	t.Setenv("SPEAKFLOW_TEST_KEY", "from-env")

	r, err := NewRegistry([]Config{{
		ID:        "groq",
		Shape:     ShapeChatCompletions,
		BaseURL:   "http://unused",
		Model:     "m",
		APIKey:    "explicit",
		APIKeyEnv: "SPEAKFLOW_TEST_KEY",
	}}, time.Second)
	require.NoError(t, err)

	assert.Equal(t, "explicit", r.Current().Config.APIKey)
}

func TestRegistryRotation(t *testing.T) {
	r, err := NewRegistry([]Config{
		{ID: "a", Shape: ShapeChatCompletions, BaseURL: "http://a", Model: "m", APIKey: "k"},
		{ID: "b", Shape: ShapeGenerativeContent, BaseURL: "http://b", Model: "m", APIKey: "k"},
	}, time.Second)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "a", r.Current().Config.ID)
	assert.Equal(t, "a", r.Current().Config.ID, "Current never advances")

	assert.Equal(t, "b", r.Advance().Config.ID)
	assert.Equal(t, "b", r.Current().Config.ID)
	assert.Equal(t, "a", r.Advance().Config.ID, "rotation wraps")
}

func TestClientShapeDispatch(t *testing.T) {
	chat, err := NewClient(Config{Shape: ShapeChatCompletions}, time.Second)
	require.NoError(t, err)
	assert.IsType(t, &OpenAICompatibleClient{}, chat)

	gen, err := NewClient(Config{Shape: ShapeGenerativeContent}, time.Second)
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, gen)
}
