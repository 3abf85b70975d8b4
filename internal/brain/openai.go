package brain

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIAdapter generates replies through the OpenAI Responses API.
type OpenAIAdapter struct {
	client    openai.Client
	model     string
	maxTokens int
}

func NewOpenAIAdapter(apiKey, model string, maxTokens int) *OpenAIAdapter {
	if strings.TrimSpace(model) == "" {
		model = defaultOpenAIModel
	}
	if maxTokens <= 0 {
		maxTokens = 250
	}
	return &OpenAIAdapter{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (a *OpenAIAdapter) Generate(ctx context.Context, req Request, onDelta DeltaHandler) (Response, error) {
	input := make([]responses.ResponseInputItemUnionParam, 0, len(req.Context)+1)
	for _, turn := range req.Context {
		role := responses.EasyInputMessageRoleUser
		if turn.Speaker == "agent" {
			role = responses.EasyInputMessageRoleAssistant
		}
		input = append(input, responses.ResponseInputItemParamOfMessage(turn.Text, role))
	}
	input = append(input, responses.ResponseInputItemParamOfMessage(req.UserText, responses.EasyInputMessageRoleUser))

	params := responses.ResponseNewParams{
		Model:           a.model,
		MaxOutputTokens: openai.Int(int64(a.maxTokens)),
		Instructions:    openai.String(req.Instruction),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return Response{}, err
	}

	text := strings.TrimSpace(resp.OutputText())
	if text != "" && onDelta != nil {
		if err := onDelta(text); err != nil {
			return Response{}, err
		}
	}
	return Response{Text: text}, nil
}
