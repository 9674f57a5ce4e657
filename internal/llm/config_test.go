package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{TierLite: "fallback-model"}}
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	next := config.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, "custom-model", next.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", next.GetModel(TierLite))
	assert.Equal(t, config.Temperature, next.Temperature)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestStaticClient(t *testing.T) {
	ctx := context.Background()
	c := NewStaticClient("```json\n{\"n\": 1}\n```", `{"n": 2}`)

	first, err := c.GenerateJSON(ctx, "p1", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, `{"n": 1}`, first)

	second, _ := c.GenerateJSON(ctx, "p2", TierStandard)
	third, _ := c.GenerateJSON(ctx, "p3", TierStandard)
	assert.Equal(t, `{"n": 2}`, second)
	assert.Equal(t, `{"n": 2}`, third)
	assert.Equal(t, []string{"p1", "p2", "p3"}, c.Prompts())

	boom := errors.New("quota exceeded")
	_, err = NewFailingClient(boom).GenerateJSON(ctx, "p", TierLite)
	assert.ErrorIs(t, err, boom)
}

func TestGenerationError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := &GenerationError{Model: "gemini-2.5-flash", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gemini-2.5-flash")
}
