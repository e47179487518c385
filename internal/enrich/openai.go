// Package enrich generates AI editorial briefs and score adjustments for the
// highest-scoring posts. Enrichment is best-effort: every failure is local to
// the post that triggered it.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

// requestTimeout bounds each completion call.
const requestTimeout = 30 * time.Second

// maxAdjustment bounds the score adjustment the model may apply in either
// direction; out-of-range values are clamped, not rejected.
const maxAdjustment = 10

// Result is a successful enrichment outcome.
type Result struct {
	Adjustment int
	Brief      models.Brief
}

// Enricher produces an editorial brief and score adjustment for one post.
type Enricher interface {
	Enrich(ctx context.Context, post *models.Post, baseScore float64) (Result, error)
}

// Config holds OpenAI client settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

// OpenAIClient implements Enricher using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

var _ Enricher = (*OpenAIClient)(nil)

// NewOpenAI creates an enrichment client.
func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{client: c, model: model}
}

// completionPayload is the JSON shape the model is asked to return.
type completionPayload struct {
	ViralityBrief       string   `json:"virality_brief"`
	BoredPandaFit       string   `json:"boredpanda_fit"`
	WriterGuidance      []string `json:"writer_guidance"`
	ScoreAdjustment     int      `json:"score_adjustment"`
	AdjustmentReasoning string   `json:"adjustment_reasoning"`
}

// Enrich runs one completion call for the post. Timeouts, service errors and
// unparseable responses all surface as errors for the caller to swallow.
func (o *OpenAIClient) Enrich(ctx context.Context, post *models.Post, baseScore float64) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(post, baseScore)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return Result{}, fmt.Errorf("enrichment completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("enrichment completion: empty response")
	}

	var payload completionPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return Result{}, fmt.Errorf("enrichment response parse: %w", err)
	}

	return Result{
		Adjustment: clampAdjustment(payload.ScoreAdjustment),
		Brief: models.Brief{
			WhyViral:      strings.TrimSpace(payload.ViralityBrief),
			BoredPandaFit: strings.TrimSpace(payload.BoredPandaFit),
			WriterRoadmap: payload.WriterGuidance,
		},
	}, nil
}

func clampAdjustment(adj int) int {
	if adj > maxAdjustment {
		return maxAdjustment
	}
	if adj < -maxAdjustment {
		return -maxAdjustment
	}
	return adj
}

const systemPrompt = `You are a content analyst for BoredPanda, a viral entertainment publisher focused on Creativity, Quality, Inclusivity, and Community values. You evaluate social media posts for editorial potential and respond only with valid JSON, no markdown.`

func buildPrompt(post *models.Post, baseScore float64) string {
	text := post.Text
	if runes := []rune(text); len(runes) > 500 {
		text = string(runes[:500])
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, "Analyze this social media post:\n\n")
	fmt.Fprintf(b, "Platform: %s\n", post.Platform)
	fmt.Fprintf(b, "Content: %s\n", text)
	fmt.Fprintf(b, "Engagement: %d likes, %d shares, %d comments\n", post.Likes, post.Shares, post.Comments)
	fmt.Fprintf(b, "Author: %s (%d followers)\n", post.Author, post.Followers)
	fmt.Fprintf(b, "Current virality score: %.1f/100\n\n", baseScore)
	b.WriteString(`Your tasks:

1. "virality_brief" (2-3 sentences): WHY is this going viral? What makes it shareable?
2. "boredpanda_fit" (2-3 sentences): Why would this resonate with BoredPanda's audience and values?
3. "writer_guidance" (3-5 actionable bullet points): story angles, key moments, research needed, interview sources, visual opportunities, recommended format.
4. "score_adjustment" (integer from -10 to 10): based on emotional appeal, visual storytelling potential, shareability and cultural relevance.
5. "adjustment_reasoning" (one sentence).

Respond with a JSON object containing exactly those five fields.`)
	return b.String()
}
