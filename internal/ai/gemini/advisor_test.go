package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/devlink/jobscout/internal/job"
	"github.com/devlink/jobscout/internal/matching"
	"github.com/devlink/jobscout/internal/profile"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testScore() *matching.Score {
	return &matching.Score{
		Job: &job.Job{
			ID:      "theirstack-42",
			Title:   "Senior Backend Developer",
			Company: "Nubank",
		},
		Overall:       86,
		MatchReasons:  []string{"Experience level matches the role"},
		MissingSkills: []string{"Kafka"},
	}
}

func testAnalysisForAdvisor() *profile.Analysis {
	return &profile.Analysis{
		ExperienceLevel:     job.LevelSenior,
		CareerFocus:         "backend",
		PrimaryTechnologies: []string{"Golang", "PostgreSQL"},
	}
}

func TestAdvisePlainJSONResponse(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{response: `{"summary": "Strong backend fit, worth applying."}`}
	advisor := NewAdvisor(gen, zap.NewNop(), 0)

	insight, err := advisor.Advise(context.Background(), testAnalysisForAdvisor(), testScore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insight.Summary != "Strong backend fit, worth applying." {
		t.Fatalf("unexpected summary: %q", insight.Summary)
	}
	if insight.Raw != gen.response {
		t.Fatalf("expected raw response preserved, got %q", insight.Raw)
	}
}

func TestAdviseFencedResponse(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{response: "```json\n{\"summary\": \"The stack overlaps well.\"}\n```"}
	advisor := NewAdvisor(gen, zap.NewNop(), 0)

	insight, err := advisor.Advise(context.Background(), testAnalysisForAdvisor(), testScore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insight.Summary != "The stack overlaps well." {
		t.Fatalf("unexpected summary: %q", insight.Summary)
	}
}

func TestAdvisePromptCarriesProfileAndJob(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{response: `{"summary": "ok"}`}
	advisor := NewAdvisor(gen, zap.NewNop(), 0)

	if _, err := advisor.Advise(context.Background(), testAnalysisForAdvisor(), testScore()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected a single generator call, got %d", len(gen.prompts))
	}

	prompt := gen.prompts[0]
	for _, want := range []string{"Senior Backend Developer", "Nubank", "Golang", "Kafka"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to mention %q", want)
		}
	}
	if strings.Contains(prompt, "{{ANALYSIS_JSON}}") || strings.Contains(prompt, "{{MATCH_JSON}}") {
		t.Fatalf("expected template placeholders replaced")
	}
}

func TestAdviseGeneratorError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("model overloaded")
	advisor := NewAdvisor(&stubGenerator{err: wantErr}, zap.NewNop(), 0)

	if _, err := advisor.Advise(context.Background(), testAnalysisForAdvisor(), testScore()); !errors.Is(err, wantErr) {
		t.Fatalf("expected generator error to surface, got %v", err)
	}
}

func TestAdviseRejectsBadResponses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		response string
	}{
		{"not json", "I think this job is great for you!"},
		{"missing summary", `{"note": "wrong field"}`},
		{"empty summary", `{"summary": "   "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			advisor := NewAdvisor(&stubGenerator{response: tc.response}, zap.NewNop(), 0)
			if _, err := advisor.Advise(context.Background(), testAnalysisForAdvisor(), testScore()); err == nil {
				t.Fatalf("expected an error for %q", tc.response)
			}
		})
	}
}

func TestAdviseRequiresInputs(t *testing.T) {
	t.Parallel()

	advisor := NewAdvisor(&stubGenerator{response: `{"summary": "ok"}`}, zap.NewNop(), 0)

	if _, err := advisor.Advise(context.Background(), nil, testScore()); err == nil {
		t.Fatalf("expected an error for nil analysis")
	}
	if _, err := advisor.Advise(context.Background(), testAnalysisForAdvisor(), nil); err == nil {
		t.Fatalf("expected an error for nil score")
	}
	if _, err := advisor.Advise(context.Background(), testAnalysisForAdvisor(), &matching.Score{}); err == nil {
		t.Fatalf("expected an error for score without job")
	}
}
