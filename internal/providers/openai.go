package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"ranklens/internal/intent"
	"ranklens/internal/models"
	"ranklens/internal/ranking"
)

const classifySystemPrompt = `You are an SEO analyst. For each keyword, answer with the searcher's intent.
Valid labels: transactional, product, educational, navigational, local, branded, competitor-navigational, competitor-transactional.
Respond with a JSON object mapping each keyword to its label. No prose.`

const auditSystemPrompt = `You are an SEO on-page auditor. Given a keyword and the page that ranks for it,
list concrete optimization tasks. Respond with a JSON array of objects with fields
"category", "task", "priority" (high|medium|low) and "impact". Valid categories:
title-tag, meta-description, heading-structure, schema-markup, content, internal-linking, image-alt, page-speed.
No prose.`

// AIClassifier asks a chat model for intent labels when the rule
// cascade isn't trusted on its own. Results feed the resolver's AI
// layer; invalid labels are dropped there, not here.
type AIClassifier struct {
	client *openai.Client
	model  string
}

// NewAIClassifier builds a classifier backed by the OpenAI chat API.
func NewAIClassifier(apiKey, model string) *AIClassifier {
	return &AIClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// ClassifyKeywords returns AI intent suggestions for a batch of
// keywords, keyed by keyword. Keywords the model skipped or labeled
// with something unrecognized are absent.
func (c *AIClassifier) ClassifyKeywords(ctx context.Context, siteURL string, keywords []string) (map[string]intent.Intent, error) {
	if len(keywords) == 0 {
		return map[string]intent.Intent{}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Site: %s\nKeywords:\n", siteURL)
	for _, kw := range keywords {
		fmt.Fprintf(&b, "- %s\n", kw)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return map[string]intent.Intent{}, nil
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}

	labels := make(map[string]intent.Intent, len(raw))
	for kw, label := range raw {
		in := intent.Intent(strings.ToLower(strings.TrimSpace(label)))
		if in.Valid() {
			labels[strings.ToLower(kw)] = in
		}
	}
	return labels, nil
}

// AuditScanner asks a chat model for on-page optimization tasks for a
// keyword and its ranking page. Output feeds the recommendation store
// and the conflict resolver.
type AuditScanner struct {
	client *openai.Client
	model  string
}

// NewAuditScanner builds a page auditor backed by the OpenAI chat API.
func NewAuditScanner(apiKey, model string) *AuditScanner {
	return &AuditScanner{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

type auditItem struct {
	Category string `json:"category"`
	Task     string `json:"task"`
	Priority string `json:"priority"`
	Impact   string `json:"impact"`
}

// ScanPage returns optimization recommendations for a keyword's
// ranking page. Items with unknown categories or priorities are
// dropped; the model occasionally invents its own taxonomy.
func (s *AuditScanner) ScanPage(ctx context.Context, keyword, pageURL string) ([]models.Recommendation, error) {
	user := fmt.Sprintf("Keyword: %s\nPage: %s", keyword, pageURL)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: auditSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("audit request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	content := resp.Choices[0].Message.Content
	// Models sometimes wrap JSON in a code fence despite instructions.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var items []auditItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, fmt.Errorf("failed to parse audit response: %w", err)
	}

	return filterAuditItems(items, pageURL), nil
}

func filterAuditItems(items []auditItem, pageURL string) []models.Recommendation {
	var recs []models.Recommendation
	for _, item := range items {
		category := strings.ToLower(strings.TrimSpace(item.Category))
		priority := strings.ToLower(strings.TrimSpace(item.Priority))
		if !ranking.ValidCategory(category) || !ranking.Priority(priority).Valid() {
			continue
		}
		if strings.TrimSpace(item.Task) == "" {
			continue
		}
		recs = append(recs, models.Recommendation{
			Category: category,
			Task:     strings.TrimSpace(item.Task),
			Page:     pageURL,
			Priority: priority,
			Impact:   strings.TrimSpace(item.Impact),
		})
	}
	return recs
}
