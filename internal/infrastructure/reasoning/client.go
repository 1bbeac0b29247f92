package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/nutriboard/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client talks to the external reasoning service over its chat-completions
// style HTTP API. All three capabilities are single-shot request/response;
// nothing is cached here.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// Config holds reasoning client settings.
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

// NewClient creates a new reasoning service client.
func NewClient(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 5)

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ExtractCategories asks the service which macro categories appear in the
// text. The service is told to answer with a comma-separated list; the raw
// reply goes through the strict tag parser, never through any evaluator.
func (c *Client) ExtractCategories(ctx context.Context, text string) ([]string, error) {
	prompt := buildExtractionPrompt(text)
	content, err := c.complete(ctx, extractionSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	tags := parseCategoryTags(content)
	if c.debug {
		log.Printf("[REASONING] ExtractCategories(%q) -> %v", text, tags)
	}
	return tags, nil
}

// Judge asks the service to pick the healthiest candidate for one category.
func (c *Client) Judge(ctx context.Context, category string, candidates []domain.Product, intent string) (string, error) {
	prompt := buildJudgePrompt(category, candidates, intent)
	narrative, err := c.complete(ctx, judgeSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(narrative) == "" {
		return "", domain.ErrEmptyNarrative
	}
	return narrative, nil
}

// JudgePair asks the service for a holistic verdict between two products.
func (c *Client) JudgePair(ctx context.Context, a, b domain.Product, nutrients []domain.NutrientVerdict) (string, error) {
	prompt := buildJudgePairPrompt(a, b, nutrients)
	narrative, err := c.complete(ctx, judgeSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(narrative) == "" {
		return "", domain.ErrEmptyNarrative
	}
	return narrative, nil
}

// chatRequest and chatResponse model the wire format of the service.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete executes one chat completion with rate limiting and bounded
// retries on transient failures.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		content, retryable, err := c.doRequest(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		if c.debug {
			log.Printf("[REASONING] Request error (attempt %d): %v", attempt, err)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", domain.ErrReasoningFailure, ctx.Err())
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	return "", lastErr
}

// doRequest executes a single completion request. The second return value
// reports whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", strings.NewReader(string(body)))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", domain.ErrReasoningFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%w: failed to read response: %v", domain.ErrReasoningFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return "", retryable, fmt.Errorf("%w: status %d: %s", domain.ErrReasoningFailure, resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", false, fmt.Errorf("%w: malformed response: %v", domain.ErrReasoningFailure, err)
	}
	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("%w: no completion choices returned", domain.ErrReasoningFailure)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), false, nil
}
