package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devlink/jobscout/internal/job"
)

func TestTheirStackSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", got)
		}

		var req theirStackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if len(req.JobTitleOr) != 1 || req.JobTitleOr[0] != "react" {
			t.Errorf("expected search text in job_title_or, got %v", req.JobTitleOr)
		}
		if req.Remote == nil || !*req.Remote {
			t.Errorf("expected remote flag to be set")
		}
		if len(req.SeniorityOr) != 1 || req.SeniorityOr[0] != "senior" {
			t.Errorf("expected seniority bucket, got %v", req.SeniorityOr)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"id":        42,
					"job_title": "Senior React Developer",
					"company_object": map[string]any{
						"name": "Nubank",
						"logo": "https://logo.example/nubank.png",
					},
					"location":         "Remote - Brazil",
					"remote":           true,
					"seniority":        "senior",
					"salary_string":    "9000-14000",
					"description":      "Experience with React and TypeScript. Knowledge of GraphQL.",
					"technology_slugs": []string{"react", "typescript"},
					"date_posted":      "2025-08-20",
					"url":              "https://jobs.example/42",
				},
			},
		})
	}))
	defer server.Close()

	adapter := NewTheirStack("test-token", "BR")
	adapter.BaseURL = server.URL

	jobs, err := adapter.Search(context.Background(), &job.Filters{
		Search:   "react",
		WorkMode: job.WorkModeRemote,
		Level:    job.LevelSenior,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 1 {
		t.Fatalf("expected 1 job, got %d", jobs.Len())
	}

	got := jobs.Items[0]
	if got.ID != "theirstack-42" {
		t.Errorf("expected provider-prefixed id, got %q", got.ID)
	}
	if got.WorkMode != job.WorkModeRemote {
		t.Errorf("expected remote work mode, got %s", got.WorkMode)
	}
	if got.Level != job.LevelSenior {
		t.Errorf("expected senior level, got %s", got.Level)
	}
	if got.SalaryRange != "9000-14000" {
		t.Errorf("expected salary passthrough, got %q", got.SalaryRange)
	}
	if got.Source != "theirstack" {
		t.Errorf("expected source theirstack, got %q", got.Source)
	}
	if len(got.Requirements) == 0 {
		t.Errorf("expected requirements extracted from description")
	}
}

func TestTheirStackSearchClassifiesStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{status: http.StatusUnauthorized, kind: ErrorAuth},
		{status: http.StatusPaymentRequired, kind: ErrorQuotaExceeded},
		{status: http.StatusBadGateway, kind: ErrorServer},
		{status: http.StatusTeapot, kind: ErrorUnknown},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))

		adapter := NewTheirStack("test-token", "BR")
		adapter.BaseURL = server.URL

		_, err := adapter.Search(context.Background(), &job.Filters{})
		if err == nil {
			t.Fatalf("status %d: expected an error", tt.status)
		}
		if got := KindOf(err); got != tt.kind {
			t.Errorf("status %d: expected kind %s, got %s", tt.status, tt.kind, got)
		}

		server.Close()
	}
}

func TestTheirStackSearchNetworkError(t *testing.T) {
	t.Parallel()

	adapter := NewTheirStack("test-token", "BR")
	adapter.BaseURL = "http://127.0.0.1:1"

	_, err := adapter.Search(context.Background(), &job.Filters{})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if got := KindOf(err); got != ErrorNetwork {
		t.Fatalf("expected network kind, got %s", got)
	}
}

func TestJSearchSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if req.Query != "golang" {
			t.Errorf("expected query golang, got %q", req.Query)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"data": []map[string]any{
				{
					"job_id":          "j1",
					"job_title":       "Golang Developer",
					"employer_name":   "Stone",
					"job_city":        "São Paulo",
					"job_is_remote":   false,
					"job_min_salary":  8000,
					"job_max_salary":  12000,
					"job_description": "Experience with Golang and PostgreSQL.",
				},
				{
					// no stable id: adapter must mint an opaque one
					"job_title":       "Backend Developer",
					"employer_name":   "iFood",
					"job_is_remote":   true,
					"job_description": "Knowledge of Docker and Kubernetes.",
				},
			},
		})
	}))
	defer server.Close()

	adapter := NewJSearch("test-token", "br")
	adapter.BaseURL = server.URL

	jobs, err := adapter.Search(context.Background(), &job.Filters{Search: "golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", jobs.Len())
	}

	first := jobs.Items[0]
	if first.ID != "jsearch-j1" {
		t.Errorf("expected provider-prefixed id, got %q", first.ID)
	}
	if first.SalaryRange != "8000-12000" {
		t.Errorf("expected salary band from numeric fields, got %q", first.SalaryRange)
	}

	second := jobs.Items[1]
	if strings.HasPrefix(second.ID, "jsearch-") {
		t.Fatalf("expected opaque id for record without job_id, got %q", second.ID)
	}
	raw, err := base64.StdEncoding.DecodeString(second.ID)
	if err != nil {
		t.Fatalf("expected base64 opaque id: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("expected JSON payload inside opaque id: %v", err)
	}
	if payload["title"] != "Backend Developer" || payload["company"] != "iFood" {
		t.Fatalf("unexpected opaque payload: %v", payload)
	}
	if second.WorkMode != job.WorkModeRemote {
		t.Errorf("expected remote work mode, got %s", second.WorkMode)
	}
}
