package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/narrative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionReply(t *testing.T, payload narrativePayload) string {
	t.Helper()
	content, err := json.Marshal(payload)
	require.NoError(t, err)
	reply, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": string(content)}},
		},
	})
	require.NoError(t, err)
	return string(reply)
}

func TestClient_Generate(t *testing.T) {
	input := narrative.Input{
		Resources: []domain.Resource{
			{Id: "vm1", Name: "vm1", Type: "Microsoft.Compute/virtualMachines"},
		},
	}

	t.Run("decodes the narrative payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4", req.Model)
			require.Len(t, req.Messages, 2)
			assert.Contains(t, req.Messages[1].Content, "vm1")

			w.Write([]byte(completionReply(t, narrativePayload{
				Summary: "One VM, lightly governed.",
				Findings: []domain.Finding{
					{ResourceName: "vm1", Category: "Governance", Severity: domain.SeverityHigh, Issue: "untagged"},
				},
			})))
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "test-key", Model: "gpt-4", BaseURL: server.URL})
		require.NoError(t, err)

		output, err := client.Generate(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "One VM, lightly governed.", output.Summary)
		require.Len(t, output.Findings, 1)
		assert.Equal(t, domain.SeverityHigh, output.Findings[0].Severity)
	})

	t.Run("azure endpoint uses deployment path and api-key header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/openai/deployments/gov-gpt4/chat/completions", r.URL.Path)
			assert.Equal(t, azureAPIVersion, r.URL.Query().Get("api-version"))
			assert.Equal(t, "azure-key", r.Header.Get("api-key"))
			assert.Empty(t, r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Empty(t, req.Model)

			w.Write([]byte(completionReply(t, narrativePayload{Summary: "ok"})))
		}))
		defer server.Close()

		client, err := NewClient(Config{
			APIKey:          "azure-key",
			AzureEndpoint:   server.URL,
			AzureDeployment: "gov-gpt4",
		})
		require.NoError(t, err)

		output, err := client.Generate(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "ok", output.Summary)
	})

	t.Run("non-200 responses surface as errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "test-key", Model: "gpt-4", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Generate(context.Background(), input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("malformed narrative payload surfaces as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reply, _ := json.Marshal(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"role": "assistant", "content": "not json"}},
				},
			})
			w.Write(reply)
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "test-key", Model: "gpt-4", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Generate(context.Background(), input)
		require.Error(t, err)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("requires an api key", func(t *testing.T) {
		_, err := NewClient(Config{Model: "gpt-4"})
		assert.Error(t, err)
	})

	t.Run("requires a model or deployment", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: "k"})
		assert.Error(t, err)
	})
}

func TestFromSettings(t *testing.T) {
	t.Run("disabled settings yield no generator", func(t *testing.T) {
		gen, err := FromSettings(domain.AIAnalysisSettings{Enabled: false})
		require.NoError(t, err)
		assert.Nil(t, gen)
	})

	t.Run("missing key yields no generator", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		gen, err := FromSettings(domain.AIAnalysisSettings{Enabled: true, Model: "gpt-4"})
		require.NoError(t, err)
		assert.Nil(t, gen)
	})

	t.Run("key in environment yields a client", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "from-env")

		gen, err := FromSettings(domain.AIAnalysisSettings{Enabled: true, Model: "gpt-4"})
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})
}
