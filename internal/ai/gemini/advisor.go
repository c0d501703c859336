package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/devlink/jobscout/internal/ai"
	"github.com/devlink/jobscout/internal/logger"
	"github.com/devlink/jobscout/internal/matching"
	"github.com/devlink/jobscout/internal/profile"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Advisor produces match insights through a Gemini content generator.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Advise builds the prompt from the analysis and the deterministic score and
// parses the model response into an Insight.
func (a *Advisor) Advise(ctx context.Context, analysis *profile.Analysis, score *matching.Score) (*ai.Insight, error) {
	if analysis == nil {
		return nil, fmt.Errorf("analysis is required")
	}
	if score == nil || score.Job == nil {
		return nil, fmt.Errorf("score with job is required")
	}

	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis payload: %w", err)
	}

	matchPayload := map[string]any{
		"job":            score.Job,
		"overall_score":  score.Overall,
		"match_reasons":  score.MatchReasons,
		"missing_skills": score.MissingSkills,
	}
	matchJSON, err := json.MarshalIndent(matchPayload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal match payload: %w", err)
	}

	prompt := buildPrompt(string(analysisJSON), string(matchJSON))

	a.logger.Debug("gemini advise request",
		zap.String("job_id", score.Job.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		logger.Preview("prompt_preview", prompt, a.maxLogLen),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini advise response",
		zap.String("job_id", score.Job.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		logger.Preview("response_preview", raw, a.maxLogLen),
	)

	insight, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	insight.Raw = raw
	return insight, nil
}

func buildPrompt(analysisJSON, matchJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Analysis:\n{{ANALYSIS_JSON}}\n\nMatch:\n{{MATCH_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{ANALYSIS_JSON}}", analysisJSON)
	prompt = strings.ReplaceAll(prompt, "{{MATCH_JSON}}", matchJSON)
	return prompt
}

func parseResponse(raw string) (*ai.Insight, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	summary := coerceString(data["summary"])
	if summary == "" {
		return nil, fmt.Errorf("gemini response has no summary")
	}

	return &ai.Insight{Summary: summary}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}
