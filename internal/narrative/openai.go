package narrative

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayush6624/go-chatgpt"
)

// OpenAIClient generates text through the OpenAI chat API. Used when a local
// model is not available.
type OpenAIClient struct {
	Model       string
	Temperature float64
	MaxTokens   int
	client      *chatgpt.Client
}

// NewOpenAIClient creates a client for the given API key.
func NewOpenAIClient(apiKey, model string, temperature float64, maxTokens int) (*OpenAIClient, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("construct openai client: %w", err)
	}
	if model == "" {
		model = string(chatgpt.GPT35Turbo)
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &OpenAIClient{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		client:      client,
	}, nil
}

func (c *OpenAIClient) Name() string { return "openai/" + c.Model }

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := c.client.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.ChatGPTModel(c.Model),
		Messages: []chatgpt.ChatMessage{
			{Role: chatgpt.ChatGPTModelRoleUser, Content: prompt},
		},
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai send: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	return res.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) HealthCheck(ctx context.Context) error {
	_, err := c.client.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.ChatGPTModel(c.Model),
		Messages: []chatgpt.ChatMessage{
			{Role: chatgpt.ChatGPTModelRoleUser, Content: "Respond with the word ok."},
		},
		MaxTokens: 2,
	})
	return err
}
