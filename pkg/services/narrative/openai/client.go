// Package openai implements the narrative generator on top of the OpenAI
// chat completions API, in both its public and Azure-hosted forms.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/narrative"
)

const (
	defaultBaseURL  = "https://api.openai.com/v1"
	azureAPIVersion = "2024-02-15-preview"

	// maxPromptResources caps how much of the inventory is serialized into
	// the prompt; large estates are summarized by their first entries plus
	// aggregate counts.
	maxPromptResources = 50
)

type Config struct {
	APIKey      string
	Model       string
	Temperature float64

	// BaseURL overrides the public API endpoint, for proxies and tests.
	BaseURL string

	// AzureEndpoint and AzureDeployment switch the client to Azure OpenAI.
	AzureEndpoint   string
	AzureDeployment string

	HTTPClient *http.Client
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	if cfg.Model == "" && cfg.AzureDeployment == "" {
		return nil, fmt.Errorf("openai: model or azure deployment is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient}, nil
}

// FromSettings builds a generator from the analysis settings and the
// environment. It returns (nil, nil) when narrative generation is disabled
// or no API key is available, so callers can wire the absence through.
func FromSettings(settings domain.AIAnalysisSettings) (narrative.Generator, error) {
	if !settings.Enabled {
		return nil, nil
	}

	cfg := Config{
		Model:           settings.Model,
		Temperature:     settings.Temperature,
		AzureEndpoint:   settings.Endpoint,
		AzureDeployment: settings.Deployment,
	}
	if cfg.AzureEndpoint != "" {
		cfg.APIKey = os.Getenv("AZURE_OPENAI_KEY")
	} else {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, nil
	}
	return NewClient(cfg)
}

type chatRequest struct {
	Model          string          `json:"model,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Messages       []chatMessage   `json:"messages"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type narrativePayload struct {
	Summary         string                 `json:"summary"`
	PillarSummaries []domain.PillarSummary `json:"pillarSummaries"`
	Findings        []domain.Finding       `json:"findings"`
}

func (c *Client) Generate(ctx context.Context, input narrative.Input) (*narrative.Output, error) {
	prompt, err := buildPrompt(input)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	reqBody := chatRequest{
		Temperature:    c.cfg.Temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}
	if c.cfg.AzureEndpoint == "" {
		reqBody.Model = c.cfg.Model
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AzureEndpoint != "" {
		req.Header.Set("api-key", c.cfg.APIKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call completion api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion api returned %d: %s", resp.StatusCode, body)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("completion api returned no choices")
	}

	var result narrativePayload
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("decode narrative payload: %w", err)
	}

	return &narrative.Output{
		Summary:         result.Summary,
		PillarSummaries: result.PillarSummaries,
		Findings:        result.Findings,
	}, nil
}

func (c *Client) endpoint() string {
	if c.cfg.AzureEndpoint != "" {
		return fmt.Sprintf(
			"%s/openai/deployments/%s/chat/completions?api-version=%s",
			strings.TrimRight(c.cfg.AzureEndpoint, "/"), c.cfg.AzureDeployment, azureAPIVersion,
		)
	}
	base := c.cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/chat/completions"
}

const systemPrompt = `You are a cloud governance consultant. Given a resource
inventory and the output of deterministic compliance checks, respond with a
single JSON object of the shape:
{"summary": string, "pillarSummaries": [{"Name", "Overview", "CurrentState",
"Strengths", "Weaknesses", "Recommendations", "Score"}], "findings":
[{"ResourceName", "Category", "Severity", "Issue", "Recommendation",
"EstimatedEffort"}]}.
Severity must be one of Critical, High, Medium, Low. Score must be one of
Low, Medium, High. Keep the summary to a short executive paragraph.`

type promptResource struct {
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Location      string            `json:"location,omitempty"`
	ResourceGroup string            `json:"resourceGroup,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

func buildPrompt(input narrative.Input) (string, error) {
	sample := input.Resources
	if len(sample) > maxPromptResources {
		sample = sample[:maxPromptResources]
	}
	resources := make([]promptResource, 0, len(sample))
	for _, r := range sample {
		resources = append(resources, promptResource{
			Name:          r.Name,
			Type:          r.Type,
			Location:      r.Location,
			ResourceGroup: r.ResourceGroup,
			Tags:          r.Tags,
		})
	}

	doc := map[string]any{
		"totalResources": len(input.Resources),
		"resources":      resources,
	}
	if input.TagCompliance != nil {
		doc["tagCompliance"] = input.TagCompliance
	}
	if input.CostAnalysis != nil {
		doc["costAnalysis"] = map[string]any{
			"totalFindings":    input.CostAnalysis.TotalFindings,
			"immediateActions": input.CostAnalysis.ImmediateActions,
			"reviewsNeeded":    input.CostAnalysis.ReviewsNeeded,
		}
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
