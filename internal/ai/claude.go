// Package ai suggests glossary definitions with the Claude API.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrNoSuggestion is returned when the model gives nothing usable.
var ErrNoSuggestion = errors.New("no definition suggested")

// Suggester proposes a definition for a term
type Suggester interface {
	SuggestDefinition(ctx context.Context, term string) (string, error)
}

// ClaudeClient implements Suggester using Claude API
type ClaudeClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

// AIError represents an error from the AI API
type AIError struct {
	Message     string
	StatusCode  int
	RequestID   string
	RawResponse string
}

func (e *AIError) Error() string {
	msg := fmt.Sprintf("AI API error (%d): %s", e.StatusCode, e.Message)
	if e.RequestID != "" {
		msg += fmt.Sprintf("\n  request-id: %s", e.RequestID)
	}
	if e.RawResponse != "" {
		msg += fmt.Sprintf("\n  raw: %s", e.RawResponse)
	}
	return msg
}

// IsAIError checks if an error is an AIError
func IsAIError(err error) bool {
	var aiErr *AIError
	return errors.As(err, &aiErr)
}

// NewClaudeClient creates a new Claude API client. Extra options are passed
// to the SDK, e.g. a base URL or retry policy.
func NewClaudeClient(apiKey string, opts ...option.RequestOption) (*ClaudeClient, error) {
	if err := validateAPIKey(apiKey); err != nil {
		return nil, err
	}

	client := anthropic.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)

	return &ClaudeClient{
		client: &client,
		model:  anthropic.ModelClaudeSonnet4_5_20250929,
	}, nil
}

// SuggestDefinition asks Claude for a short definition of term. The result
// contains only letters and spaces so it can be saved as is.
func (c *ClaudeClient) SuggestDefinition(ctx context.Context, term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", fmt.Errorf("term cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 200,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(term))),
		},
	})

	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &AIError{
				Message:     apiErr.Error(),
				StatusCode:  apiErr.StatusCode,
				RequestID:   apiErr.RequestID,
				RawResponse: apiErr.RawJSON(),
			}
		}
		return "", &AIError{
			Message:    fmt.Sprintf("failed to call Claude API: %v", err),
			StatusCode: 500,
		}
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}

	definition, err := parseSuggestionResponse(b.String())
	if err != nil {
		return "", fmt.Errorf("failed to parse suggestion response: %w", err)
	}

	definition = sanitizeDefinition(definition)
	if definition == "" {
		return "", ErrNoSuggestion
	}
	return definition, nil
}

// buildPrompt constructs the prompt for Claude
func buildPrompt(term string) string {
	return fmt.Sprintf(`You are helping a user write a glossary. Write a short definition for the term below.

Rules:
- One sentence, at most twenty words
- Use only letters and spaces: no digits, punctuation or symbols
- Do not repeat the term itself

Return ONLY a JSON object of the form {"definition": "..."}

Term: %s`, term)
}

// parseSuggestionResponse extracts the definition from Claude's JSON response,
// handling optional markdown code block wrappers.
func parseSuggestionResponse(response string) (string, error) {
	response = strings.TrimSpace(response)

	// Remove markdown code blocks if present
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var payload struct {
		Definition string `json:"definition"`
	}
	if err := json.Unmarshal([]byte(response), &payload); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}

	return payload.Definition, nil
}

var nonLetters = regexp.MustCompile(`[^A-Za-z\s]+`)

// sanitizeDefinition replaces anything but letters with spaces and collapses whitespace
func sanitizeDefinition(definition string) string {
	return strings.Join(strings.Fields(nonLetters.ReplaceAllString(definition, " ")), " ")
}

// validateAPIKey checks if the API key is valid
func validateAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	return nil
}
