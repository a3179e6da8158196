// Package vertex runs essay correction on Gemini models hosted in Vertex AI,
// authenticating with application default credentials.
package vertex

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

type Engine struct {
	ProjectID string
	Region    string
	Model     string
}

func New(projectID, region, model string) *Engine {
	return &Engine{
		ProjectID: strings.TrimSpace(projectID),
		Region:    strings.TrimSpace(region),
		Model:     strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "vertex" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Complete(ctx context.Context, system, user string) (string, error) {
	if e.ProjectID == "" || e.Region == "" {
		return "", fmt.Errorf("vertex: projectID and region cannot be empty")
	}
	cl, err := genai.NewClient(ctx, e.ProjectID, e.Region)
	if err != nil {
		return "", fmt.Errorf("genai.NewClient: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("vertex completion: %w", err)
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("vertex completion: empty response")
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
