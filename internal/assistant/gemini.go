package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"google.golang.org/genai"

	"github.com/paisapal/paisa/internal/analytics"
	"github.com/paisapal/paisa/internal/logger"
)

// candidateModels are tried in order; a model that keeps failing is
// skipped in favour of the next.
var candidateModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-2.5-pro",
}

const (
	// attemptsPerModel bounds retries against a single model.
	attemptsPerModel = 3
	// retryDelay is the pause between attempts on the same model.
	retryDelay = 3 * time.Second
	// callTimeout caps a single generate call.
	callTimeout = 15 * time.Second
)

// ContentGenerator defines the interface for generating content via
// Gemini. This abstraction enables testing without making actual API
// calls.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// modelsAdapter wraps *genai.Models to implement ContentGenerator.
type modelsAdapter struct {
	models *genai.Models
}

func (m *modelsAdapter) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	resp, err := m.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("genai.GenerateContent: %w", err)
	}
	return resp, nil
}

// Gemini is an Advisor backed by the Gemini API.
type Gemini struct {
	generator ContentGenerator
	models    []string
}

// NewGemini creates a Gemini advisor with the provided API key.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		generator: &modelsAdapter{models: client.Models},
		models:    candidateModels,
	}, nil
}

// NewGeminiWithGenerator creates a Gemini advisor with a custom
// ContentGenerator. This is primarily used for testing with mock
// generators.
func NewGeminiWithGenerator(generator ContentGenerator) *Gemini {
	return &Gemini{generator: generator, models: candidateModels}
}

// Advise asks each candidate model in turn, retrying a bounded number of
// times per model, and returns the first non-empty answer.
func (g *Gemini) Advise(ctx context.Context, prompt string, fin Context) (string, error) {
	if g.generator == nil {
		return "", fmt.Errorf("gemini advisor not initialized")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildAdvicePrompt(prompt, fin)}},
		},
	}

	temp := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(512),
	}

	var lastErr error
	for _, model := range g.models {
		answer, err := backoff.Retry(ctx, func() (string, error) {
			return g.generateOnce(ctx, model, contents, cfg)
		},
			backoff.WithBackOff(backoff.NewConstantBackOff(retryDelay)),
			backoff.WithMaxTries(attemptsPerModel),
		)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if isAuthError(err) {
			// A bad key fails identically on every model.
			break
		}
		if isNotFoundError(err) {
			logger.Log.Warn().Err(err).Str("model", model).Msg("model not available, trying next")
			continue
		}
		logger.Log.Warn().Err(err).Str("model", model).Msg("model exhausted, trying next")
	}

	return "", fmt.Errorf("all models failed: %w", lastErr)
}

func (g *Gemini) generateOnce(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := g.generator.GenerateContent(callCtx, model, contents, cfg)
	if err != nil {
		// Auth and unknown-model failures never heal on retry.
		if isAuthError(err) || isNotFoundError(err) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from %s", model)
	}
	return text, nil
}

func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") ||
		strings.Contains(msg, "API key") ||
		strings.Contains(msg, "PERMISSION_DENIED")
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "404") ||
		strings.Contains(msg, "NOT_FOUND") ||
		strings.Contains(msg, "is not found")
}

// buildAdvicePrompt renders the persona, the user's figures, and the
// question into a single prompt.
func buildAdvicePrompt(prompt string, fin Context) string {
	var b strings.Builder
	b.WriteString("You are PaisaPal AI, a friendly Indian financial assistant.\n\n")
	b.WriteString("User Data:\n")
	fmt.Fprintf(&b, "- Balance: %s\n", analytics.FormatRupees(fin.Balance))
	fmt.Fprintf(&b, "- Monthly Income: %s\n", analytics.FormatRupees(fin.MonthlyIncome))
	fmt.Fprintf(&b, "- Monthly Expense: %s\n", analytics.FormatRupees(fin.MonthlyExpense))
	fmt.Fprintf(&b, "- Transactions: %d\n", fin.TxCount)
	fmt.Fprintf(&b, "- Streak: %d days\n", fin.StreakDays)

	if len(fin.CategoryTotals) > 0 {
		b.WriteString("- Spending by category:\n")
		cats := make([]string, 0, len(fin.CategoryTotals))
		for cat := range fin.CategoryTotals {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		for _, cat := range cats {
			fmt.Fprintf(&b, "  - %s: %s\n", cat, analytics.FormatRupees(fin.CategoryTotals[cat]))
		}
	}

	fmt.Fprintf(&b, "\nUser question: %q\n\n", prompt)
	b.WriteString("Give helpful financial advice in under 5 sentences using ₹. Be encouraging and practical.")
	return b.String()
}
