package factory

import (
	"testing"

	"career-compass-be/pkg/llm/gemini"
	"career-compass-be/pkg/llm/huggingface"
	"career-compass-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    interface{}
		wantErr bool
	}{
		{name: "gemini", cfg: Config{Provider: "gemini", APIKey: "k"}, want: &gemini.GeminiProvider{}},
		{name: "default is gemini", cfg: Config{APIKey: "k"}, want: &gemini.GeminiProvider{}},
		{name: "gemini without key", cfg: Config{Provider: "gemini"}, wantErr: true},
		{name: "ollama", cfg: Config{Provider: "ollama", Model: "llama3"}, want: &ollama.OllamaProvider{}},
		{name: "huggingface", cfg: Config{Provider: "huggingface", Model: "m"}, want: &huggingface.HuggingFaceProvider{}},
		{name: "mixed case gemini", cfg: Config{Provider: "Gemini", APIKey: "k"}, want: &gemini.GeminiProvider{}},
		{name: "upper case ollama", cfg: Config{Provider: " OLLAMA ", Model: "llama3"}, want: &ollama.OllamaProvider{}},
		{name: "mixed case huggingface", cfg: Config{Provider: "HuggingFace", Model: "m"}, want: &huggingface.HuggingFaceProvider{}},
		{name: "unknown", cfg: Config{Provider: "openai"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestOllamaDefaultBaseURL(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)
}
