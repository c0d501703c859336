package provider

import (
	"regexp"
	"strings"

	"github.com/devlink/jobscout/internal/job"
)

// techVocabulary is the fixed keyword set technologies are extracted against.
// Order matters: the first MaxTechnologies hits are kept.
var techVocabulary = []string{
	"JavaScript", "TypeScript", "React Native", "React", "Node.js", "Python",
	"Java", "Kotlin", "Swift", "Golang", "Rust", "PHP", "Ruby", "C#", ".NET",
	"Angular", "Vue.js", "Flutter", "Django", "Spring", "Laravel", "Express",
	"Next.js", "GraphQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Docker",
	"Kubernetes", "AWS", "Azure", "GCP", "Terraform", "CI/CD", "Linux", "Git",
	"SQL",
}

// requirementRule is one entry of the ordered requirement-extraction table.
// Rules accumulate matches; the combined list is capped at MaxRequirements.
type requirementRule struct {
	name string
	re   *regexp.Regexp
}

var requirementRules = []requirementRule{
	{name: "experience_with", re: regexp.MustCompile(`(?i)\bexperience (?:with|in) ([A-Za-z0-9 .+#/-]{2,60})`)},
	{name: "knowledge_of", re: regexp.MustCompile(`(?i)\bknowledge of ([A-Za-z0-9 .+#/-]{2,60})`)},
	{name: "years_of", re: regexp.MustCompile(`(?i)\b(\d+\+? years?[A-Za-z0-9 .+#/-]{0,50})`)},
	{name: "bullet", re: regexp.MustCompile(`(?m)^\s*[-•*]\s*(.{4,80})\s*$`)},
}

// salaryPattern detects currency-tagged amounts or plain numeric bands.
var salaryPattern = regexp.MustCompile(`(?i)(?:R\$|US\$|\$|€|£)\s*\d{1,3}(?:[.,]\d{3})*(?:\s*(?:-|–|a|to)\s*(?:R\$|US\$|\$|€|£)?\s*\d{1,3}(?:[.,]\d{3})*)?|\b\d{4,6}\s*(?:-|–)\s*\d{4,6}\b`)

// ExtractTechnologies matches the fixed vocabulary against free text,
// case-insensitive substring match, first MaxTechnologies hits kept.
func ExtractTechnologies(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, tech := range techVocabulary {
		if strings.Contains(lower, strings.ToLower(tech)) {
			found = append(found, tech)
			if len(found) == job.MaxTechnologies {
				break
			}
		}
	}
	return found
}

// ExtractRequirements runs the ordered rule table over free text and
// accumulates distinct requirement sentences, capped at MaxRequirements.
func ExtractRequirements(text string) []string {
	var requirements []string
	seen := make(map[string]bool)

	for _, rule := range requirementRules {
		for _, match := range rule.re.FindAllStringSubmatch(text, -1) {
			req := strings.TrimSpace(match[1])
			req = strings.TrimRight(req, ".,;")
			if rule.name == "experience_with" {
				req = "Experience with " + req
			}
			if rule.name == "knowledge_of" {
				req = "Knowledge of " + req
			}

			key := strings.ToLower(req)
			if req == "" || seen[key] {
				continue
			}
			seen[key] = true
			requirements = append(requirements, req)
			if len(requirements) == job.MaxRequirements {
				return requirements
			}
		}
	}

	return requirements
}

// DetectSalary returns the first salary-looking token in the text, or "".
func DetectSalary(text string) string {
	return strings.TrimSpace(salaryPattern.FindString(text))
}

// InferLevel buckets a free-text seniority tag (falling back to the title)
// into the canonical hierarchy. Unmatched text maps to mid.
func InferLevel(seniority, title string) job.Level {
	text := strings.ToLower(seniority + " " + title)

	switch {
	case containsWord(text, "lead", "staff", "principal", "head", "tech lead"):
		return job.LevelLead
	case containsWord(text, "senior", "sr.", "sr ", "sênior"):
		return job.LevelSenior
	case containsWord(text, "junior", "jr.", "jr ", "júnior", "intern", "trainee", "entry"):
		return job.LevelJunior
	default:
		return job.LevelMid
	}
}

func containsWord(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
