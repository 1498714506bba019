// Package assistant turns natural-language questions into guarded
// SQLite queries over a tenant's tables, executes them, and renders or
// summarizes the results.
package assistant

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/commercedata/shopsync/internal/config"
	"github.com/commercedata/shopsync/internal/logging"
)

// completer is the slice of the OpenAI client the assistant uses.
// Narrowed to an interface so tests can script responses.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Assistant answers questions against one tenant's slice of the
// database.
type Assistant struct {
	client completer
	handle *sql.DB
	model  string
	tenant string
	now    func() time.Time
}

// New creates an assistant for the given tenant.
func New(cfg config.OpenAIConfig, handle *sql.DB, tenant string) *Assistant {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Organization != "" {
		clientCfg.OrgID = cfg.Organization
	}
	return &Assistant{
		client: openai.NewClientWithConfig(clientCfg),
		handle: handle,
		model:  cfg.Model,
		tenant: tenant,
		now:    time.Now,
	}
}

// queryResponse is the JSON shape the query-generation prompts demand.
type queryResponse struct {
	Query       string `json:"query"`
	ColumnNames string `json:"column_names"`
}

// Ask translates the question into SQL for the domain, checks it, runs
// it, and renders the result as an aligned text table.
func (a *Assistant) Ask(ctx context.Context, domain Domain, question string) (string, error) {
	today := a.now().Format("2006-01-02")

	raw, err := a.complete(ctx, systemPrompt(domain, a.tenant, today), question)
	if err != nil {
		return "", err
	}

	var resp queryResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return "", fmt.Errorf("malformed model response: %w", err)
	}
	if err := CheckQuery(resp.Query, a.tenant, domain); err != nil {
		return "", fmt.Errorf("rejected generated query: %w", err)
	}

	logging.Debug().
		Str("tenant", a.tenant).
		Str("domain", string(domain)).
		Str("query", resp.Query).
		Msg("running generated query")

	rows, err := runQuery(ctx, a.handle, resp.Query)
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}
	return Render(splitColumns(resp.ColumnNames), rows), nil
}

// AskSummarized answers the question and appends a model-written
// summary of the result set.
func (a *Assistant) AskSummarized(ctx context.Context, domain Domain, question string) (string, error) {
	table, err := a.Ask(ctx, domain, question)
	if err != nil {
		return "", err
	}
	summary, err := a.Summarize(ctx, table)
	if err != nil {
		return "", err
	}
	return table + "\nsummary: " + summary, nil
}

// Summarize asks the model for actionable insights on a rendered data
// set.
func (a *Assistant) Summarize(ctx context.Context, data string) (string, error) {
	today := a.now().Format("2006-01-02")
	return a.summarizeWith(ctx, fmt.Sprintf(summaryPrompt, today), data)
}

func (a *Assistant) summarizeWith(ctx context.Context, sysPrompt, data string) (string, error) {
	raw, err := a.complete(ctx, sysPrompt, data)
	if err != nil {
		return "", err
	}
	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return "", fmt.Errorf("malformed model response: %w", err)
	}
	return resp.Summary, nil
}

func (a *Assistant) complete(ctx context.Context, sysPrompt, userInput string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sysPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userInput},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// runQuery executes a checked query and scans all rows into generic
// values.
func runQuery(ctx context.Context, handle *sql.DB, query string, args ...any) ([][]any, error) {
	rows, err := handle.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	return out, rows.Err()
}
