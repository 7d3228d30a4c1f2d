package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	RemoteOnsite = "onsite"
	RemoteHybrid = "hybrid"
	RemoteRemote = "remote"

	TypeFullTime = "full-time"
	TypePartTime = "part-time"
	TypeProject  = "project"
)

var ErrInvalidInput = errors.New("invalid job")

// Job is a single listing document. OrgName and IsAdmin are display
// annotations and are never persisted.
type Job struct {
	ID           string
	Title        string `validate:"required"`
	Description  string `validate:"required"`
	Remote       string `validate:"required,oneof=onsite hybrid remote"`
	Type         string `validate:"required,oneof=full-time part-time project"`
	Salary       int64  `validate:"gte=0"`
	Country      string `validate:"required"`
	State        string `validate:"required"`
	City         string `validate:"required"`
	CountryID    string `validate:"required"`
	StateID      string `validate:"required"`
	CityID       string `validate:"required"`
	JobIcon      string `validate:"omitempty,url|startswith=/"`
	ContactPhoto string `validate:"omitempty,url|startswith=/"`
	ContactName  string `validate:"required"`
	ContactPhone string `validate:"required"`
	ContactEmail string `validate:"required,email"`
	OrgID        string `validate:"required"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	OrgName string
	IsAdmin *bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Normalize(j Job) Job {
	j.Title = strings.TrimSpace(j.Title)
	j.Description = strings.TrimSpace(j.Description)
	j.Remote = strings.ToLower(strings.TrimSpace(j.Remote))
	j.Type = strings.ToLower(strings.TrimSpace(j.Type))
	j.Country = strings.TrimSpace(j.Country)
	j.State = strings.TrimSpace(j.State)
	j.City = strings.TrimSpace(j.City)
	j.CountryID = strings.TrimSpace(j.CountryID)
	j.StateID = strings.TrimSpace(j.StateID)
	j.CityID = strings.TrimSpace(j.CityID)
	j.JobIcon = strings.TrimSpace(j.JobIcon)
	j.ContactPhoto = strings.TrimSpace(j.ContactPhoto)
	j.ContactName = strings.TrimSpace(j.ContactName)
	j.ContactPhone = strings.TrimSpace(j.ContactPhone)
	j.ContactEmail = strings.ToLower(strings.TrimSpace(j.ContactEmail))
	j.OrgID = strings.TrimSpace(j.OrgID)
	return j
}

// Validate reports the first set of failing fields wrapped in ErrInvalidInput.
func Validate(j Job) error {
	err := validate.Struct(j)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
}
