package echo_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/provider/echo"
)

func TestName(t *testing.T) {
	provider := echo.NewProvider()
	assert.Equal(t, "echo", provider.Name())
}

func TestIsModelSupported(t *testing.T) {
	provider := echo.NewProvider()
	ctx := context.Background()

	assert.True(t, provider.IsModelSupported(ctx, "echo-1"))
	assert.False(t, provider.IsModelSupported(ctx, "gpt-4o"))
	assert.False(t, provider.IsModelSupported(ctx, ""))
}

func TestSupportedModels(t *testing.T) {
	provider := echo.NewProvider()
	assert.Equal(t, []string{"echo-1"}, provider.SupportedModels(context.Background()))
}

func TestGenerateStream_NilRequest(t *testing.T) {
	provider := echo.NewProvider()

	_, err := provider.GenerateStream(context.Background(), nil)
	require.Error(t, err)
}

func TestGenerateStream_UnsupportedModel(t *testing.T) {
	provider := echo.NewProvider()

	_, err := provider.GenerateStream(context.Background(), &domain.GenerationRequest{
		Model:  "gpt-4o",
		Prompt: "hello",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not supported")
}

func TestGenerateStream_EchoesPromptWordByWord(t *testing.T) {
	provider := echo.NewProvider()
	prompt := "suggest three vegetarian recipes"

	fragments, err := provider.GenerateStream(context.Background(), &domain.GenerationRequest{
		Model:  "echo-1",
		Prompt: prompt,
	})
	require.NoError(t, err)

	var parts []string
	for fragment := range fragments {
		require.NoError(t, fragment.Err)
		require.False(t, fragment.Empty)
		parts = append(parts, fragment.Text)
	}

	require.Len(t, parts, 4)
	assert.Equal(t, prompt, strings.Join(parts, " "))
}

func TestGenerateStream_EmptyPromptClosesWithoutFragments(t *testing.T) {
	provider := echo.NewProvider()

	fragments, err := provider.GenerateStream(context.Background(), &domain.GenerationRequest{
		Model:  "echo-1",
		Prompt: "",
	})
	require.NoError(t, err)

	count := 0
	for range fragments {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestGenerateStream_CancelledContextYieldsErrorFragment(t *testing.T) {
	provider := echo.NewProvider()
	ctx, cancel := context.WithCancel(context.Background())

	fragments, err := provider.GenerateStream(ctx, &domain.GenerationRequest{
		Model:  "echo-1",
		Prompt: strings.Repeat("word ", 50),
	})
	require.NoError(t, err)

	// Read one fragment, then cancel mid-stream.
	first := <-fragments
	require.NoError(t, first.Err)
	cancel()

	var sawError bool
	for fragment := range fragments {
		if fragment.Err != nil {
			sawError = true
		}
	}
	assert.True(t, sawError)
}
