package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/jharkhand-tourism-mvp/server/internal/config"
	logx "github.com/jharkhand-tourism-mvp/server/pkg/logger"
)

const (
	// sentinel is the exact token the model answers with for off-topic
	// queries. It must never leak to the user.
	sentinel = "OUT_OF_CONTEXT"

	redirectReply   = "I can only answer questions about Jharkhand tourism. How can I help you with your trip?"
	incompleteReply = "I couldn't complete the response. Please try rephrasing your question."
	errorReply      = "Sorry, an error occurred while contacting the AI model."
)

var multiNewlineRe = regexp.MustCompile(`\n{2,}`)

// generateFunc performs one model invocation and reports the raw text and
// finish reason. Swappable so tests run without network access.
type generateFunc func(ctx context.Context, prompt string) (string, genai.FinishReason, error)

// Gateway wraps the Gemini API behind the out-of-context convention and
// finish-reason policy. Reply never fails outward.
type Gateway struct {
	gen generateFunc
}

// New creates a Gateway backed by the Gemini API.
func New(ctx context.Context, cfg config.GeminiConfig) (*Gateway, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	maxTokens := int32(cfg.MaxTokens)
	gen := func(ctx context.Context, prompt string) (string, genai.FinishReason, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
			MaxOutputTokens: maxTokens,
		})
		if err != nil {
			return "", "", err
		}
		if resp == nil || len(resp.Candidates) == 0 {
			return "", "", fmt.Errorf("no candidates in gemini response")
		}
		return resp.Text(), resp.Candidates[0].FinishReason, nil
	}

	return &Gateway{gen: gen}, nil
}

// Reply asks the model to answer a tourism query. Every failure mode is
// absorbed into a fixed reply string so the chat path can never surface an
// HTTP error for conversational failures.
func (g *Gateway) Reply(ctx context.Context, message string) string {
	text, reason, err := g.gen(ctx, buildPrompt(message))
	if err != nil {
		logx.Error().Err(err).Msg("gemini call failed")
		return errorReply
	}

	reply := strings.TrimSpace(text)
	if reply == sentinel {
		return redirectReply
	}

	if reason != genai.FinishReasonStop {
		logx.Warn().Str("finish_reason", string(reason)).Msg("gemini response incomplete")
		return incompleteReply
	}

	return multiNewlineRe.ReplaceAllString(reply, "\n")
}

func buildPrompt(message string) string {
	return "First, determine if the following user query is related to Jharkhand tourism, travel, or local culture. " +
		"If it is NOT related, your only response must be the exact string '" + sentinel + "'. " +
		"If it IS related, answer the question briefly and concisely, in 2-3 sentences, as a helpful tourism assistant. " +
		fmt.Sprintf("User Query: '%s'", message)
}
