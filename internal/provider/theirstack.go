package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/devlink/jobscout/internal/job"
)

const (
	theirStackName    = "theirstack"
	theirStackBaseURL = "https://api.theirstack.com"
	theirStackPath    = "/v1/jobs/search"

	defaultMaxAgeDays = 30
	defaultPageLimit  = 20
)

// TheirStack is the primary provider adapter. It speaks the TheirStack job
// search API: a bearer-authorized POST with a JSON filter object answered by
// a JSON array of provider-shaped job records.
type TheirStack struct {
	BaseURL    string
	Country    string
	MaxAgeDays int
	client     *HTTPClient
}

func NewTheirStack(token, country string) *TheirStack {
	return &TheirStack{
		BaseURL:    theirStackBaseURL,
		Country:    country,
		MaxAgeDays: defaultMaxAgeDays,
		client:     NewHTTPClient(token, 2),
	}
}

func (t *TheirStack) Name() string { return theirStackName }

type theirStackRequest struct {
	Page               int      `json:"page"`
	Limit              int      `json:"limit"`
	JobTitleOr         []string `json:"job_title_or,omitempty"`
	LocationPatternOr  []string `json:"job_location_pattern_or,omitempty"`
	Remote             *bool    `json:"remote,omitempty"`
	Hybrid             *bool    `json:"hybrid,omitempty"`
	SeniorityOr        []string `json:"job_seniority_or,omitempty"`
	CompanyNameOr      []string `json:"company_name_or,omitempty"`
	PostedAtMaxAgeDays int      `json:"posted_at_max_age_days"`
	CountryCodeOr      []string `json:"job_country_code_or,omitempty"`
}

type theirStackResponse struct {
	Data []theirStackJob `json:"data"`
}

// theirStackJob mirrors one record of the provider response.
type theirStackJob struct {
	ID       int64  `json:"id"`
	JobTitle string `json:"job_title"`
	Company  struct {
		Name    string `json:"name"`
		Domain  string `json:"domain"`
		LogoURL string `json:"logo"`
	} `json:"company_object"`
	Location       string   `json:"location"`
	Remote         bool     `json:"remote"`
	Hybrid         bool     `json:"hybrid"`
	Seniority      string   `json:"seniority"`
	SalaryString   string   `json:"salary_string"`
	MinSalary      float64  `json:"min_annual_salary"`
	MaxSalary      float64  `json:"max_annual_salary"`
	Description    string   `json:"description"`
	TechnologyTags []string `json:"technology_slugs"`
	DatePosted     string   `json:"date_posted"`
	URL            string   `json:"url"`
	Employment     string   `json:"employment_statuses"`
}

// Search translates the generic filters into the provider request shape,
// issues the call, and maps the response to canonical jobs.
func (t *TheirStack) Search(ctx context.Context, filters *job.Filters) (*job.Jobs, error) {
	body, err := json.Marshal(t.buildRequest(filters))
	if err != nil {
		return nil, Classify(t.Name(), 0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+theirStackPath, bytes.NewReader(body))
	if err != nil {
		return nil, Classify(t.Name(), 0, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, Classify(t.Name(), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Classify(t.Name(), resp.StatusCode, nil)
	}

	var decoded theirStackResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &Error{Kind: ErrorUnknown, Provider: t.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}

	jobs := &job.Jobs{}
	for i := range decoded.Data {
		jobs.Append(t.toCanonical(&decoded.Data[i]))
	}
	return jobs, nil
}

func (t *TheirStack) buildRequest(filters *job.Filters) *theirStackRequest {
	req := &theirStackRequest{
		Page:               maxInt(filters.Page, 1),
		Limit:              defaultIfZero(filters.Limit, defaultPageLimit),
		PostedAtMaxAgeDays: t.MaxAgeDays,
	}

	if t.Country != "" {
		req.CountryCodeOr = []string{t.Country}
	}
	if filters.Search != "" {
		req.JobTitleOr = []string{filters.Search}
	}
	if filters.Location != "" {
		req.LocationPatternOr = []string{".*" + filters.Location + ".*"}
	}
	if filters.Company != "" {
		req.CompanyNameOr = []string{filters.Company}
	}

	switch filters.WorkMode {
	case job.WorkModeRemote:
		yes := true
		req.Remote = &yes
	case job.WorkModeHybrid:
		yes := true
		req.Hybrid = &yes
	case job.WorkModeOnsite:
		no := false
		req.Remote = &no
	}

	if filters.Level != "" {
		req.SeniorityOr = []string{seniorityTag(filters.Level)}
	}

	return req
}

func (t *TheirStack) toCanonical(r *theirStackJob) *job.Job {
	workMode := job.WorkModeOnsite
	if r.Hybrid {
		workMode = job.WorkModeHybrid
	}
	if r.Remote {
		workMode = job.WorkModeRemote
	}

	salary := r.SalaryString
	if salary == "" && r.MinSalary > 0 {
		salary = fmt.Sprintf("%d-%d", int(r.MinSalary/12), int(r.MaxSalary/12))
	}
	if salary == "" {
		salary = DetectSalary(r.Description)
	}

	technologies := r.TechnologyTags
	if len(technologies) == 0 {
		technologies = ExtractTechnologies(r.JobTitle + " " + r.Description)
	}
	if len(technologies) > job.MaxTechnologies {
		technologies = technologies[:job.MaxTechnologies]
	}

	postedAt, err := time.Parse("2006-01-02", r.DatePosted)
	if err != nil {
		postedAt = time.Now()
	}

	return &job.Job{
		ID:             theirStackName + "-" + strconv.FormatInt(r.ID, 10),
		Title:          r.JobTitle,
		Company:        r.Company.Name,
		CompanyLogoURL: r.Company.LogoURL,
		Location:       r.Location,
		WorkMode:       workMode,
		Level:          InferLevel(r.Seniority, r.JobTitle),
		SalaryRange:    salary,
		Description:    r.Description,
		Requirements:   ExtractRequirements(r.Description),
		Technologies:   technologies,
		PostedAt:       postedAt,
		ApplyURL:       r.URL,
		Source:         theirStackName,
	}
}

// seniorityTag maps the canonical level to the provider's seniority bucket.
func seniorityTag(l job.Level) string {
	switch l {
	case job.LevelJunior:
		return "junior"
	case job.LevelSenior:
		return "senior"
	case job.LevelLead:
		return "staff_or_higher"
	default:
		return "mid_level"
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func defaultIfZero(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
