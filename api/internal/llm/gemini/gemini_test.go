package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestFirstText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text("[修正文] a\n\n"),
				&genai.Blob{MIMEType: "image/png"},
				genai.Text("[錯誤分析] b"),
			}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}

	assert.Equal(t, "[修正文] a\n\n[錯誤分析] b", firstText(resp))
	assert.Empty(t, firstText(nil))
	assert.Empty(t, firstText(&genai.GenerateContentResponse{}))
	assert.Empty(t, firstText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}

func TestComplete_MissingKey(t *testing.T) {
	e := New("  ", " gemini-2.5-flash ")

	assert.Equal(t, "gemini", e.Name())
	assert.Equal(t, "gemini-2.5-flash", e.GetModel())

	_, err := e.Complete(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}
