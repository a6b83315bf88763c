package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

var ErrEmptyReply = errors.New("empty reply from model")

// Client talks to an OpenAI compatible chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, error) {
	user := fmt.Sprintf("Description: %s, Amount: $%s", description, amount.StringFixed(2))

	reply, err := c.chat(ctx, chatRequest{
		Messages:  messages(categorizePrompt, user),
		MaxTokens: 20,
	})
	if err != nil {
		return "", fmt.Errorf("categorizing expense: %w", err)
	}

	category := strings.Trim(strings.TrimSpace(reply), `."'`)
	if category == "" {
		return "", ErrEmptyReply
	}

	return category, nil
}

func (c *Client) SummarizeSpending(ctx context.Context, expenses []expense.Expense) ([]string, error) {
	if len(expenses) < MinInsightExpenses {
		return []string{MsgNotEnoughData}, nil
	}

	var b strings.Builder
	b.WriteString("Here are the recent expenses:\n")

	for _, e := range expenses {
		fmt.Fprintf(&b, "Category: %s, Amount: $%s, Date: %s, Description: %s\n",
			e.Category, e.Amount.StringFixed(2), e.Date.Format("2006-01-02"), e.Description)
	}

	var out struct {
		Insights []string `json:"insights"`
	}

	if err := c.chatJSON(ctx, insightsPrompt, b.String(), &out); err != nil {
		return nil, fmt.Errorf("analyzing spending: %w", err)
	}

	if len(out.Insights) == 0 {
		return nil, ErrEmptyReply
	}

	return out.Insights, nil
}

func (c *Client) RecommendBudget(ctx context.Context, expenses []expense.Expense) (budget.Budgets, error) {
	if len(expenses) < MinBudgetExpenses {
		return budget.Budgets{}, nil
	}

	user := "Total spending by category:\n" + categorySummary(analytics.TotalsByCategory(expenses))

	var out map[string]decimal.Decimal
	if err := c.chatJSON(ctx, budgetPrompt, user, &out); err != nil {
		return nil, fmt.Errorf("recommending budget: %w", err)
	}

	recommended := budget.Budgets{}

	for category, amount := range out {
		if strings.TrimSpace(category) == "" || amount.IsNegative() {
			return nil, fmt.Errorf("recommending budget: invalid entry %q: %s", category, amount)
		}

		recommended[category] = amount
	}

	return recommended, nil
}

func (c *Client) RecommendSavings(ctx context.Context, expenses []expense.Expense, budgets budget.Budgets) ([]string, error) {
	if len(expenses) == 0 {
		return []string{MsgStartTracking}, nil
	}

	user := "Total spending by category:\n" + categorySummary(analytics.TotalsByCategory(expenses)) +
		"\nBudget by category:\n" + categorySummary(budgets)

	var out struct {
		Recommendations []string `json:"recommendations"`
	}

	if err := c.chatJSON(ctx, savingsPrompt, user, &out); err != nil {
		return nil, fmt.Errorf("recommending savings: %w", err)
	}

	if len(out.Recommendations) == 0 {
		return nil, ErrEmptyReply
	}

	return out.Recommendations, nil
}

func categorySummary(totals map[string]decimal.Decimal) string {
	var b strings.Builder

	for _, category := range budget.Budgets(totals).Categories() {
		fmt.Fprintf(&b, "- %s: $%s\n", category, totals[category].StringFixed(2))
	}

	return b.String()
}

func messages(system, user string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

func (c *Client) chatJSON(ctx context.Context, system, user string, out any) error {
	reply, err := c.chat(ctx, chatRequest{
		Messages:       messages(system, user),
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return err
	}

	raw := extractJSON(reply)
	if raw == "" {
		return fmt.Errorf("no JSON object in reply: %w", ErrEmptyReply)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decoding reply: %w", err)
	}

	return nil
}

func (c *Client) chat(ctx context.Context, req chatRequest) (string, error) {
	req.Model = c.model

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("model returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	return chatResp.Choices[0].Message.Content, nil
}

// extractJSON trims any prose around the outermost JSON object.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return text[start : end+1]
}
