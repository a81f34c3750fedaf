package responder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIModel       = "gpt-4o-mini"
	openAITemperature = 0.7
	openAIMaxTokens   = 2048

	missingKeyReply   = "Error: Please save your OPENAI API Key before using this model."
	invalidKeyReply   = "Error 401: Invalid OpenAI API Key. Please ensure your key is correct."
	rateLimitReply    = "Error 429: OpenAI Rate Limit Exceeded or Quota Exceeded. Check your billing plan."
	emptyReply        = "The LLM returned an empty response."
	networkErrorReply = "An unexpected network error occurred while contacting the OPENAI service."
)

// OpenAI is the remote responder variant. The credential is resolved per
// request through the injected CredentialSource; anticipated failure
// classes resolve to explanatory reply strings instead of errors.
type OpenAI struct {
	credentials CredentialSource
}

func NewOpenAI(credentials CredentialSource) *OpenAI {
	return &OpenAI{credentials: credentials}
}

func (o *OpenAI) Respond(ctx context.Context, text string) (string, error) {
	key := o.credentials.APIKey()
	if key == "" {
		log.Debug().Msg("[OpenAI.Respond] no API key configured")
		return missingKeyReply, nil
	}

	client := openai.NewClient(key)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Warn().Int("status", apiErr.HTTPStatusCode).Err(err).Msg("[OpenAI.Respond] API error")
			switch apiErr.HTTPStatusCode {
			case http.StatusUnauthorized:
				return invalidKeyReply, nil
			case http.StatusTooManyRequests:
				return rateLimitReply, nil
			}
			return fmt.Sprintf("Error %d (OpenAI): LLM call failed. Details: %s...",
				apiErr.HTTPStatusCode, truncate(apiErr.Message, 100)), nil
		}
		if ctx.Err() != nil {
			return "", err
		}
		log.Warn().Err(err).Msg("[OpenAI.Respond] request failed")
		return networkErrorReply, nil
	}

	if len(resp.Choices) == 0 {
		log.Warn().Msg("[OpenAI.Respond] no choices in response")
		return emptyReply, nil
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return emptyReply, nil
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ Responder = (*OpenAI)(nil)
