package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const (
	OpenAI_API_URL_v1 = "https://api.openai.com/v1"
)

// OpenAILLM implements the LLM interfaces on top of the OpenAI chat API.
type OpenAILLM struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

func NewOpenAILLM(baseUrl, model, apiKey string) *OpenAILLM {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if baseUrl == "" {
		baseUrl = os.Getenv("OPENAI_BASE_URL")
		if baseUrl == "" {
			baseUrl = OpenAI_API_URL_v1
		}
	}

	if model == "" {
		model = openai.GPT4o
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseUrl
	client := openai.NewClientWithConfig(config)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &OpenAILLM{
		client: client,
		model:  model,
		logger: logger,
	}
}

func NewOpenAILLMWithClient(client *openai.Client, model string) *OpenAILLM {
	if model == "" {
		model = openai.GPT4o
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &OpenAILLM{
		client: client,
		model:  model,
		logger: logger,
	}
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	o.logger.Info("Complete called", "model", o.model, "prompt_len", len(prompt))

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)

	if err != nil {
		o.logger.Error("Complete failed", "error", err)
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAILLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	o.logger.Info("Chat called", "model", o.model, "message_count", len(messages))

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:    o.model,
			Messages: convertToOpenAIMessages(messages),
		},
	)

	if err != nil {
		o.logger.Error("Chat failed", "error", err)
		return "", fmt.Errorf("openai chat failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAILLM) Stream(ctx context.Context, prompt string) (<-chan string, error) {
	o.logger.Info("Stream called", "model", o.model, "prompt_len", len(prompt))

	stream, err := o.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Stream: true,
		},
	)

	if err != nil {
		o.logger.Error("Stream failed", "error", err)
		return nil, fmt.Errorf("openai stream failed: %w", err)
	}

	tokenChan := make(chan string)

	go func() {
		defer close(tokenChan)
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				o.logger.Error("Stream receive error", "error", err)
				return
			}

			if len(response.Choices) > 0 {
				delta := response.Choices[0].Delta.Content
				if delta != "" {
					select {
					case tokenChan <- delta:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return tokenChan, nil
}

// ChatWithFormat generates a response in the specified format.
func (o *OpenAILLM) ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (string, error) {
	o.logger.Info("ChatWithFormat called", "model", o.model, "message_count", len(messages), "format", format.Type)

	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: convertToOpenAIMessages(messages),
	}

	if format != nil && format.Type == "json_object" {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		o.logger.Error("ChatWithFormat failed", "error", err)
		return "", fmt.Errorf("openai chat with format failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// SupportsStructuredOutput returns true if the model supports structured output.
func (o *OpenAILLM) SupportsStructuredOutput() bool {
	// Modern OpenAI chat models support JSON mode.
	return true
}

func convertToOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	openaiMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		openaiMessages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}
	return openaiMessages
}

var _ LLMWithStructuredOutput = (*OpenAILLM)(nil)
