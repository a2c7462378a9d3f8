package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is the vision-capable model used by default.
const DefaultOpenAIModel = "gpt-4o"

// OpenAIAnalyzer describes images with an OpenAI vision model.
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnalyzer creates an analyzer using the given API key. model
// may be empty for DefaultOpenAIModel.
func NewOpenAIAnalyzer(apiKey, model string) *OpenAIAnalyzer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIAnalyzer{client: &client, model: model}
}

// AnalyzeImage implements Analyzer.
func (a *OpenAIAnalyzer) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s",
		sniffMIMEType(image), base64.StdEncoding.EncodeToString(image))

	params := openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	}
	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("vision: openai analyze: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision: openai analyze: no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
