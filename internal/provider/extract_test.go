package provider

import (
	"strings"
	"testing"

	"github.com/devlink/jobscout/internal/job"
)

func TestExtractTechnologies(t *testing.T) {
	t.Parallel()

	text := "We use React and Node.js on top of PostgreSQL, deployed with Docker to AWS."
	techs := ExtractTechnologies(text)

	expected := []string{"React", "Node.js", "PostgreSQL", "Docker", "AWS"}
	for _, want := range expected {
		found := false
		for _, got := range techs {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s in %v", want, techs)
		}
	}
}

func TestExtractTechnologiesCap(t *testing.T) {
	t.Parallel()

	text := strings.Join(techVocabulary, ", ")
	techs := ExtractTechnologies(text)
	if len(techs) != job.MaxTechnologies {
		t.Fatalf("expected cap of %d technologies, got %d", job.MaxTechnologies, len(techs))
	}
}

func TestExtractTechnologiesEmpty(t *testing.T) {
	t.Parallel()

	if techs := ExtractTechnologies("we value teamwork and ownership"); len(techs) != 0 {
		t.Fatalf("expected no technologies, got %v", techs)
	}
}

func TestExtractRequirements(t *testing.T) {
	t.Parallel()

	description := `We are hiring.
Experience with React and modern frontend tooling.
Knowledge of relational databases.
- Ship features end to end
- Mentor other engineers
3+ years working with distributed systems.`

	reqs := ExtractRequirements(description)

	if len(reqs) == 0 {
		t.Fatalf("expected requirements to be extracted")
	}
	if len(reqs) > job.MaxRequirements {
		t.Fatalf("expected at most %d requirements, got %d", job.MaxRequirements, len(reqs))
	}

	joined := strings.Join(reqs, " | ")
	if !strings.Contains(joined, "Experience with React") {
		t.Fatalf("expected experience rule hit, got %q", joined)
	}
	if !strings.Contains(joined, "Knowledge of relational databases") {
		t.Fatalf("expected knowledge rule hit, got %q", joined)
	}
}

func TestDetectSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "brl range", input: "Faixa salarial: R$ 5.000 - R$ 8.000 mensais", want: true},
		{name: "usd single", input: "Pay: $120,000 per year", want: true},
		{name: "plain band", input: "compensation 9000-14000 depending on level", want: true},
		{name: "no salary", input: "competitive compensation package", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DetectSalary(tt.input)
			if tt.want && got == "" {
				t.Fatalf("expected a salary match in %q", tt.input)
			}
			if !tt.want && got != "" {
				t.Fatalf("expected no salary match, got %q", got)
			}
		})
	}
}

func TestInferLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seniority string
		title     string
		want      job.Level
	}{
		{seniority: "senior", title: "Backend Developer", want: job.LevelSenior},
		{seniority: "", title: "Staff Engineer", want: job.LevelLead},
		{seniority: "", title: "Desenvolvedor Júnior", want: job.LevelJunior},
		{seniority: "entry level", title: "Developer", want: job.LevelJunior},
		{seniority: "", title: "Software Engineer", want: job.LevelMid},
		{seniority: "principal", title: "Engineer", want: job.LevelLead},
	}

	for _, tt := range tests {
		if got := InferLevel(tt.seniority, tt.title); got != tt.want {
			t.Errorf("InferLevel(%q, %q) = %s, want %s", tt.seniority, tt.title, got, tt.want)
		}
	}
}
