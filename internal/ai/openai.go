package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/paperwatch/paperwatch/internal/models"
)

const systemPrompt = `### 指示 ###
論文の内容を理解した上で，重要なポイントを箇条書きで3点書いてください。

### 箇条書きの制約 ###
- 最大3個
- 必ず日本語
- 箇条書き1個を50文字以内`

// OpenAIClient summarizes papers through the chat completions API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: client, model: model}
}

// Summarize asks the model for up to three Japanese bullet points about the
// paper and formats the result as the outbound message body:
// publication date, URL, original title, headline, bullets.
func (c *OpenAIClient) Summarize(ctx context.Context, paper models.Paper) (string, error) {
	text := fmt.Sprintf("title: %s\nbody: %s", paper.Title, paper.Abstract)

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemPrompt),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(text),
					},
				},
			},
		},
		Temperature: openai.Float(0.25),
	})

	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return formatSummary(paper, response.Choices[0].Message.Content), nil
}

// formatSummary treats the first generated line as a localized headline and
// the rest as the bullet body.
func formatSummary(paper models.Paper, generated string) string {
	headline, body, _ := strings.Cut(generated, "\n")
	date := paper.PublishedAt.Format("2006-01-02 15:04:05")
	return fmt.Sprintf("発行日: %s\n%s\n%s\n%s\n%s\n", date, paper.URL, paper.Title, headline, body)
}
