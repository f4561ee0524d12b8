// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package translator provides the machine-translation provider for article content.

It speaks the OpenAI chat-completion protocol, so any compatible endpoint
(OpenAI itself, a LiteLLM proxy, a self-hosted gateway) can back it. The
provider is synchronous; callers bound it with a context timeout.
*/
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/config"
)

const systemPrompt = `You are a professional translator for a family-history encyclopedia.
Translate the user's text from %s to %s.
Preserve formatting, names, places, and dates exactly.
Return ONLY the translated text, no commentary.`

// Client wraps an OpenAI-compatible chat-completion endpoint.
type Client struct {
	client *openai.Client
	model  string
}

// New builds a translation client from the application config.
// A custom base URL switches the client to a compatible proxy.
func New(cfg *config.Config) (*Client, error) {
	if cfg.TranslatorAPIKey == "" {
		return nil, errors.New("translator: API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.TranslatorAPIKey)
	if cfg.TranslatorBaseURL != "" {
		clientConfig.BaseURL = cfg.TranslatorBaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.TranslatorModel,
	}, nil
}

/*
Translate renders text from one language into another.

Parameters:
  - context: context.Context (Callers attach the provider timeout)
  - text: string (Source prose)
  - sourceLang: string (ISO-639-1 code of the input)
  - targetLang: string (ISO-639-1 code of the output)

Returns:
  - string: The translated prose
  - error: Upstream transport or empty-response failures
*/
func (client *Client) Translate(context context.Context, text, sourceLang, targetLang string) (string, error) {
	response, err := client.client.CreateChatCompletion(context, openai.ChatCompletionRequest{
		Model: client.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPrompt, sourceLang, targetLang),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("translator: completion request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", errors.New("translator: provider returned no choices")
	}

	translated := strings.TrimSpace(response.Choices[0].Message.Content)
	if translated == "" {
		return "", errors.New("translator: provider returned empty content")
	}

	return translated, nil
}
