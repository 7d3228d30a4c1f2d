package dto

import (
	"fmt"
	"time"

	jobentity "job-board/internal/domain/job"

	"github.com/dustin/go-humanize"
)

type JobRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Remote       string `json:"remote" validate:"required"`
	Type         string `json:"type" validate:"required"`
	Salary       int64  `json:"salary" validate:"gte=0"`
	Country      string `json:"country" validate:"required"`
	State        string `json:"state" validate:"required"`
	City         string `json:"city" validate:"required"`
	CountryID    string `json:"country_id" validate:"required"`
	StateID      string `json:"state_id" validate:"required"`
	CityID       string `json:"city_id" validate:"required"`
	JobIcon      string `json:"job_icon"`
	ContactPhoto string `json:"contact_photo"`
	ContactName  string `json:"contact_name" validate:"required"`
	ContactPhone string `json:"contact_phone" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	OrgID        string `json:"org_id"`
}

func (r JobRequest) ToEntity() jobentity.Job {
	return jobentity.Job{
		Title:        r.Title,
		Description:  r.Description,
		Remote:       r.Remote,
		Type:         r.Type,
		Salary:       r.Salary,
		Country:      r.Country,
		State:        r.State,
		City:         r.City,
		CountryID:    r.CountryID,
		StateID:      r.StateID,
		CityID:       r.CityID,
		JobIcon:      r.JobIcon,
		ContactPhoto: r.ContactPhoto,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
		OrgID:        r.OrgID,
	}
}

type JobResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Remote        string `json:"remote"`
	Type          string `json:"type"`
	Salary        int64  `json:"salary"`
	SalaryDisplay string `json:"salary_display"`
	Country       string `json:"country"`
	State         string `json:"state"`
	City          string `json:"city"`
	CountryID     string `json:"country_id"`
	StateID       string `json:"state_id"`
	CityID        string `json:"city_id"`
	JobIcon       string `json:"job_icon,omitempty"`
	ContactPhoto  string `json:"contact_photo,omitempty"`
	ContactName   string `json:"contact_name"`
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email"`
	OrgID         string `json:"org_id"`
	OrgName       string `json:"org_name,omitempty"`
	IsAdmin       *bool  `json:"is_admin,omitempty"`
	PostedAgo     string `json:"posted_ago,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

func NewJobResponse(j jobentity.Job, now time.Time) JobResponse {
	out := JobResponse{
		ID:            j.ID,
		Title:         j.Title,
		Description:   j.Description,
		Remote:        j.Remote,
		Type:          j.Type,
		Salary:        j.Salary,
		SalaryDisplay: SalaryDisplay(j.Salary),
		Country:       j.Country,
		State:         j.State,
		City:          j.City,
		CountryID:     j.CountryID,
		StateID:       j.StateID,
		CityID:        j.CityID,
		JobIcon:       j.JobIcon,
		ContactPhoto:  j.ContactPhoto,
		ContactName:   j.ContactName,
		ContactPhone:  j.ContactPhone,
		ContactEmail:  j.ContactEmail,
		OrgID:         j.OrgID,
		OrgName:       j.OrgName,
		IsAdmin:       j.IsAdmin,
	}
	if !j.CreatedAt.IsZero() {
		out.PostedAgo = humanize.RelTime(j.CreatedAt, now, "ago", "from now")
		out.CreatedAt = j.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !j.UpdatedAt.IsZero() {
		out.UpdatedAt = j.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func NewJobResponses(items []jobentity.Job, now time.Time) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j, now))
	}
	return out
}

// SalaryDisplay renders an annual salary such as "$90,000 / year".
func SalaryDisplay(salary int64) string {
	if salary <= 0 {
		return ""
	}
	return fmt.Sprintf("$%s / year", humanize.Comma(salary))
}

type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrgJobsResponse struct {
	Organization OrganizationResponse `json:"organization"`
	Jobs         []JobResponse        `json:"jobs"`
}
