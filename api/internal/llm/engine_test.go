package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct{ name string }

func (s stubEngine) Name() string     { return s.name }
func (s stubEngine) GetModel() string { return s.name + "-model" }
func (s stubEngine) Complete(context.Context, string, string) (string, error) {
	return s.name, nil
}

func TestEngines_GetEngine(t *testing.T) {
	engs := NewEngines("Groq", stubEngine{"groq"}, stubEngine{"openai"}, nil)

	def, err := engs.GetEngine("")
	require.NoError(t, err)
	assert.Equal(t, "groq", def.Name())

	gpt, err := engs.GetEngine(" GPT ")
	require.NoError(t, err)
	assert.Equal(t, "openai", gpt.Name())

	_, err = engs.GetEngine("claude")
	assert.ErrorIs(t, err, ErrUnknownEngine)
	assert.Contains(t, err.Error(), "groq, openai")
}

func TestEngines_UnknownDefault(t *testing.T) {
	engs := NewEngines("vertex", stubEngine{"groq"})

	_, err := engs.GetEngine("")
	assert.ErrorIs(t, err, ErrUnknownEngine)
	assert.Equal(t, []string{"groq"}, engs.Names())
}
