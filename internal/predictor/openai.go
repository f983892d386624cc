package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Skufu/vitalsight/internal/patient"
)

const systemPrompt = `You are a clinical triage assistant. Given a patient record as JSON, reply with a single JSON object with exactly these string keys:
"report": a short health report,
"suggestions": medical suggestions,
"habit": habit changes to make,
"food": dietary advice.
Do not add any other keys or text.`

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIModel asks a chat completion endpoint for the four report texts.
// The request carries the smallest non-zero temperature: go-openai drops a
// literal zero via omitempty, which would leave the server on its default.
type OpenAIModel struct {
	client chatCompleter
	model  string
}

// NewOpenAIModel builds a model against the OpenAI API, or any compatible
// server when baseURL is set.
func NewOpenAIModel(apiKey, model, baseURL string) *OpenAIModel {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIModel{client: openai.NewClientWithConfig(cfg), model: model}
}

func (m *OpenAIModel) Predict(ctx context.Context, in patient.Input) (Result, error) {
	record, err := json.Marshal(in)
	if err != nil {
		return Result{}, fmt.Errorf("encode patient: %w", err)
	}

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(record)},
		},
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return Result{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, errors.New("chat completion returned no choices")
	}

	return decodeResult(resp.Choices[0].Message.Content)
}

func decodeResult(content string) (Result, error) {
	content = stripCodeFence(content)

	var res Result
	if err := json.Unmarshal([]byte(content), &res); err != nil {
		return Result{}, fmt.Errorf("decode completion: %w", err)
	}
	if strings.TrimSpace(res.Report) == "" {
		return Result{}, errors.New("decode completion: empty report")
	}
	return res, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
