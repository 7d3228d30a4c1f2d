package seeder

import (
	"context"
	"fmt"
	"strings"

	jobentity "job-board/internal/domain/job"
)

// DemoJobsSeeder adds a fixed set of listings to one organization. Titles
// already present for that organization are skipped, so reruns are safe.
type DemoJobsSeeder struct {
	OrgID string
}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (s DemoJobsSeeder) Run(ctx context.Context, jobs jobentity.Repository) error {
	orgID := strings.TrimSpace(s.OrgID)
	if orgID == "" {
		return fmt.Errorf("empty organization id")
	}

	existing, err := jobs.Find(ctx, jobentity.Filter{OrgID: orgID})
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, j := range existing {
		have[strings.ToLower(j.Title)] = struct{}{}
	}

	for _, j := range demoJobs(orgID) {
		if _, ok := have[strings.ToLower(j.Title)]; ok {
			continue
		}
		j = jobentity.Normalize(j)
		if err := jobentity.Validate(j); err != nil {
			return fmt.Errorf("demo job %q: %w", j.Title, err)
		}
		if _, err := jobs.Create(ctx, j); err != nil {
			return fmt.Errorf("create %q: %w", j.Title, err)
		}
	}
	return nil
}

func demoJobs(orgID string) []jobentity.Job {
	base := jobentity.Job{
		Country:      "United States",
		State:        "California",
		City:         "San Francisco",
		CountryID:    "233",
		StateID:      "1416",
		CityID:       "131045",
		ContactName:  "Jordan Lee",
		ContactPhone: "+1 415 555 0100",
		ContactEmail: "jobs@example.com",
		OrgID:        orgID,
	}

	items := []struct {
		Title       string
		Description string
		Remote      string
		Type        string
		Salary      int64
	}{
		{"Senior Backend Engineer", "Design and run the services behind our public API.", jobentity.RemoteHybrid, jobentity.TypeFullTime, 185000},
		{"Frontend Developer", "Build accessible interfaces for job seekers and employers.", jobentity.RemoteRemote, jobentity.TypeFullTime, 150000},
		{"Product Designer", "Own the end to end design of the listing experience.", jobentity.RemoteOnsite, jobentity.TypeFullTime, 140000},
		{"Data Analyst", "Turn hiring funnel data into weekly insights.", jobentity.RemoteRemote, jobentity.TypePartTime, 70000},
		{"Technical Writer", "Document the API for partner integrations.", jobentity.RemoteRemote, jobentity.TypeProject, 30000},
	}

	out := make([]jobentity.Job, 0, len(items))
	for _, it := range items {
		j := base
		j.Title = it.Title
		j.Description = it.Description
		j.Remote = it.Remote
		j.Type = it.Type
		j.Salary = it.Salary
		out = append(out, j)
	}
	return out
}
