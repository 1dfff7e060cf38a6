package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vovakirdan/tui-rps/internal/core"
)

// DefaultEndpoint is the OpenRouter chat completions URL.
const DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// DefaultModel is the model used when none is configured.
const DefaultModel = "mistralai/mistral-7b-instruct:free"

const systemPrompt = "You are an AI that predicts patterns in Rock Paper Scissors gameplay. " +
	"Analyze the sequence and predict the most likely next move."

// ChatConfig configures a ChatProvider.
type ChatConfig struct {
	Endpoint  string
	Model     string
	APIKey    string
	MaxTokens int

	// HTTPClient is used for requests. Defaults to http.DefaultClient.
	// Timeouts come from the request context.
	HTTPClient *http.Client
}

// ChatProvider asks an OpenAI-compatible chat completions endpoint
// (OpenRouter by default) for the player's next move.
type ChatProvider struct {
	cfg ChatConfig
}

// NewChatProvider creates a provider, filling in defaults for empty fields.
func NewChatProvider(cfg ChatConfig) *ChatProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 10
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &ChatProvider{cfg: cfg}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// PredictNext implements Provider.
func (p *ChatProvider) PredictNext(ctx context.Context, history []core.Move) (core.Move, bool, error) {
	if len(history) < MinHistory {
		return 0, false, nil
	}

	names := make([]string, len(history))
	for i, m := range history {
		names[i] = m.String()
	}

	body, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(
				"Here is a sequence of player moves in Rock Paper Scissors: %s. "+
					"Predict what they will play next. Respond with only \"rock\", \"paper\", or \"scissors\".",
				strings.Join(names, ", "),
			)},
		},
		MaxTokens: p.cfg.MaxTokens,
	})
	if err != nil {
		return 0, false, fmt.Errorf("%w: encode request: %w", ErrProviderFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, false, fmt.Errorf("%w: build request: %w", ErrProviderFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		//nolint:errcheck // Body is only used to enrich the error
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return 0, false, fmt.Errorf("%w: status %d: %s", ErrProviderFailure, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, false, fmt.Errorf("%w: decode response: %w", ErrProviderFailure, err)
	}
	if len(decoded.Choices) == 0 {
		return 0, false, fmt.Errorf("%w: empty choices", ErrProviderFailure)
	}

	// Only an exact move name counts as an answer.
	answer := strings.ToLower(strings.TrimSpace(decoded.Choices[0].Message.Content))
	for _, m := range core.AllMoves {
		if answer == m.String() {
			return m, true, nil
		}
	}
	return 0, false, nil
}
