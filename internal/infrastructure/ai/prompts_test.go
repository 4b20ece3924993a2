package ai

import (
	"strings"
	"testing"

	"spryte/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptForKnownAction(t *testing.T) {
	prompt := PromptFor("summarize", "the quick brown fox", "")
	assert.Contains(t, prompt, "Summarize the following text")
	assert.Contains(t, prompt, "the quick brown fox")
}

func TestPromptForUnknownActionFallsBack(t *testing.T) {
	prompt := PromptFor("translate_to_latin", "carpe diem", "")
	assert.Equal(t, "Process the following text: carpe diem", prompt)
}

func TestPromptForPrependsContext(t *testing.T) {
	prompt := PromptFor("rewrite", "some text", "this is a physics note")
	assert.True(t, strings.HasPrefix(prompt, "Context: this is a physics note\n\n"))
	assert.Contains(t, prompt, "some text")
}

func TestPromptForPolishKeepsHTMLRules(t *testing.T) {
	prompt := PromptFor("polish", "<p>hello</p>", "")
	assert.Contains(t, prompt, "PRESERVE all HTML tags")
	assert.Contains(t, prompt, "<p>hello</p>")
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New("cohere", config.Config{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewDefaultsToConfiguredProvider(t *testing.T) {
	cfg := config.Config{AIProvider: "openai", OpenAIKey: "sk-test"}
	p, err := New("", cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	_, err := New("openai", config.Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewAnthropicUnsupported(t *testing.T) {
	_, err := New("anthropic", config.Config{AnthropicKey: "sk-ant"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	_, err = New("anthropic", config.Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestAvailableActionsAreComplete(t *testing.T) {
	actions := AvailableActions()
	require.Len(t, actions, 7)
	for _, a := range actions {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Description)
	}
}
