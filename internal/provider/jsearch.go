package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/devlink/jobscout/internal/job"
)

const (
	jSearchName    = "jsearch"
	jSearchBaseURL = "https://api.jsearch.dev"
	jSearchPath    = "/v2/search"
)

// JSearch is the secondary provider adapter. Its records are looser than
// TheirStack's, so the response items are decoded through mapstructure and
// missing stable ids are replaced with a self-describing base64 payload the
// aggregator can later decode for detail lookups.
type JSearch struct {
	BaseURL string
	Country string
	client  *HTTPClient
}

func NewJSearch(token, country string) *JSearch {
	return &JSearch{
		BaseURL: jSearchBaseURL,
		Country: country,
		client:  NewHTTPClient(token, 1),
	}
}

func (s *JSearch) Name() string { return jSearchName }

type jSearchRequest struct {
	Query          string `json:"query"`
	Location       string `json:"location,omitempty"`
	RemoteJobsOnly bool   `json:"remote_jobs_only,omitempty"`
	Seniority      string `json:"seniority,omitempty"`
	Page           int    `json:"page"`
	NumPages       int    `json:"num_pages"`
	Country        string `json:"country,omitempty"`
	DatePosted     string `json:"date_posted,omitempty"`
}

type jSearchResponse struct {
	Status string           `json:"status"`
	Data   []map[string]any `json:"data"`
}

// jSearchJob is the typed view of one loosely-shaped response item.
type jSearchJob struct {
	JobID        string   `mapstructure:"job_id"`
	Title        string   `mapstructure:"job_title"`
	EmployerName string   `mapstructure:"employer_name"`
	EmployerLogo string   `mapstructure:"employer_logo"`
	City         string   `mapstructure:"job_city"`
	Country      string   `mapstructure:"job_country"`
	IsRemote     bool     `mapstructure:"job_is_remote"`
	Seniority    string   `mapstructure:"job_seniority"`
	MinSalary    float64  `mapstructure:"job_min_salary"`
	MaxSalary    float64  `mapstructure:"job_max_salary"`
	Description  string   `mapstructure:"job_description"`
	Skills       []string `mapstructure:"job_required_skills"`
	ApplyLink    string   `mapstructure:"job_apply_link"`
	PostedAt     string   `mapstructure:"job_posted_at_datetime_utc"`
}

func (s *JSearch) Search(ctx context.Context, filters *job.Filters) (*job.Jobs, error) {
	body, err := json.Marshal(s.buildRequest(filters))
	if err != nil {
		return nil, Classify(s.Name(), 0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+jSearchPath, bytes.NewReader(body))
	if err != nil {
		return nil, Classify(s.Name(), 0, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, Classify(s.Name(), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Classify(s.Name(), resp.StatusCode, nil)
	}

	var decoded jSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &Error{Kind: ErrorUnknown, Provider: s.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}

	jobs := &job.Jobs{}
	for _, item := range decoded.Data {
		var record jSearchJob
		if err := mapstructure.WeakDecode(item, &record); err != nil {
			continue
		}
		jobs.Append(s.toCanonical(&record))
	}
	return jobs, nil
}

func (s *JSearch) buildRequest(filters *job.Filters) *jSearchRequest {
	query := filters.Search
	if query == "" {
		query = "developer"
	}

	return &jSearchRequest{
		Query:          query,
		Location:       filters.Location,
		RemoteJobsOnly: filters.WorkMode == job.WorkModeRemote,
		Seniority:      string(filters.Level),
		Page:           maxInt(filters.Page, 1),
		NumPages:       1,
		Country:        s.Country,
		DatePosted:     "month",
	}
}

func (s *JSearch) toCanonical(r *jSearchJob) *job.Job {
	location := r.City
	if location == "" {
		location = r.Country
	}

	workMode := job.WorkModeOnsite
	if r.IsRemote {
		workMode = job.WorkModeRemote
	}

	var salary string
	if r.MinSalary > 0 && r.MaxSalary > 0 {
		salary = fmt.Sprintf("%d-%d", int(r.MinSalary), int(r.MaxSalary))
	} else {
		salary = DetectSalary(r.Description)
	}

	technologies := r.Skills
	if len(technologies) == 0 {
		technologies = ExtractTechnologies(r.Title + " " + r.Description)
	}
	if len(technologies) > job.MaxTechnologies {
		technologies = technologies[:job.MaxTechnologies]
	}

	postedAt, err := time.Parse(time.RFC3339, r.PostedAt)
	if err != nil {
		postedAt = time.Now()
	}

	return &job.Job{
		ID:             s.jobID(r),
		Title:          r.Title,
		Company:        r.EmployerName,
		CompanyLogoURL: r.EmployerLogo,
		Location:       location,
		WorkMode:       workMode,
		Level:          InferLevel(r.Seniority, r.Title),
		SalaryRange:    salary,
		Description:    r.Description,
		Requirements:   ExtractRequirements(r.Description),
		Technologies:   technologies,
		PostedAt:       postedAt,
		ApplyURL:       r.ApplyLink,
		Source:         jSearchName,
	}
}

// jobID prefers the provider's own id. Records without one get an opaque
// self-describing id carrying enough data to rebuild a minimal detail view.
func (s *JSearch) jobID(r *jSearchJob) string {
	if r.JobID != "" {
		return jSearchName + "-" + r.JobID
	}

	payload, _ := json.Marshal(map[string]string{
		"title":   r.Title,
		"company": r.EmployerName,
		"source":  jSearchName,
	})
	return base64.StdEncoding.EncodeToString(payload)
}
