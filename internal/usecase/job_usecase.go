package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"job-board/internal/domain/identity"
	jobentity "job-board/internal/domain/job"
	ucjob "job-board/internal/usecase/job"
)

const (
	JobActionCreated = "created"
	JobActionUpdated = "updated"
	JobActionDeleted = "deleted"
)

type JobEnricher interface {
	Enrich(ctx context.Context, jobs []jobentity.Job, viewer *identity.Viewer, opts ...ucjob.EnrichOption) ([]jobentity.Job, error)
}

// JobsNotifier is told whenever an organization's listings change.
type JobsNotifier interface {
	JobsUpdated(orgID, action string)
}

type organizationGetter interface {
	GetOrganization(ctx context.Context, orgID string) (identity.Organization, error)
}

type membershipLister interface {
	ListMemberships(ctx context.Context, userID, orgID string) ([]identity.Membership, error)
}

type OrgJobs struct {
	Organization identity.Organization
	Jobs         []jobentity.Job
}

type JobUsecase interface {
	ListRecent(ctx context.Context, query string, viewer *identity.Viewer) ([]jobentity.Job, error)
	ListByOrg(ctx context.Context, orgID string, viewer *identity.Viewer) (OrgJobs, error)
	Get(ctx context.Context, id string, viewer *identity.Viewer) (jobentity.Job, error)
	Save(ctx context.Context, viewer *identity.Viewer, id string, in jobentity.Job) (jobentity.Job, error)
	Delete(ctx context.Context, viewer *identity.Viewer, id string) error
}

type Jobs struct {
	jobs        jobentity.Repository
	enricher    JobEnricher
	orgs        organizationGetter
	memberships membershipLister
	notifier    JobsNotifier
	logger      *log.Logger
}

var _ JobUsecase = (*Jobs)(nil)

func NewJobUsecase(jobs jobentity.Repository, enricher JobEnricher, orgs organizationGetter, memberships membershipLister, notifier JobsNotifier, logger *log.Logger) *Jobs {
	return &Jobs{jobs: jobs, enricher: enricher, orgs: orgs, memberships: memberships, notifier: notifier, logger: logger}
}

func (u *Jobs) ListRecent(ctx context.Context, query string, viewer *identity.Viewer) ([]jobentity.Job, error) {
	items, err := u.jobs.Find(ctx, jobentity.Filter{Query: strings.TrimSpace(query)})
	if err != nil {
		u.logf("[Jobs] find failed query=%q err=%v", query, err)
		return nil, ErrInternal
	}
	return u.enrich(ctx, items, viewer)
}

func (u *Jobs) ListByOrg(ctx context.Context, orgID string, viewer *identity.Viewer) (OrgJobs, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return OrgJobs{}, ErrInvalidInput
	}

	org, err := u.orgs.GetOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return OrgJobs{}, ErrNotFound
		}
		return OrgJobs{}, &ucjob.UpstreamLookupError{Resource: ucjob.ResourceOrganization, Key: orgID, Err: err}
	}

	items, err := u.jobs.Find(ctx, jobentity.Filter{OrgID: orgID})
	if err != nil {
		u.logf("[Jobs] find by org failed org_id=%s err=%v", orgID, err)
		return OrgJobs{}, ErrInternal
	}

	enriched, err := u.enrich(ctx, items, viewer, ucjob.WithKnownOrganizations(org))
	if err != nil {
		return OrgJobs{}, err
	}
	return OrgJobs{Organization: org, Jobs: enriched}, nil
}

func (u *Jobs) Get(ctx context.Context, id string, viewer *identity.Viewer) (jobentity.Job, error) {
	j, err := u.find(ctx, id)
	if err != nil {
		return jobentity.Job{}, err
	}
	out, err := u.enrich(ctx, []jobentity.Job{j}, viewer)
	if err != nil {
		return jobentity.Job{}, err
	}
	return out[0], nil
}

// Save creates a job when id is empty and otherwise replaces the stored
// job. An existing job never moves to another organization. The returned
// job is annotated like the read paths; if that fails after the write, the
// stored job comes back without annotations.
func (u *Jobs) Save(ctx context.Context, viewer *identity.Viewer, id string, in jobentity.Job) (jobentity.Job, error) {
	if viewer == nil {
		return jobentity.Job{}, ErrUnauthorized
	}

	id = strings.TrimSpace(id)
	action := JobActionCreated
	if id != "" {
		existing, err := u.find(ctx, id)
		if err != nil {
			return jobentity.Job{}, err
		}
		in.OrgID = existing.OrgID
		action = JobActionUpdated
	}

	in = jobentity.Normalize(in)
	if err := jobentity.Validate(in); err != nil {
		return jobentity.Job{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := u.requireMember(ctx, viewer, in.OrgID); err != nil {
		return jobentity.Job{}, err
	}

	var (
		saved jobentity.Job
		err   error
	)
	if action == JobActionCreated {
		saved, err = u.jobs.Create(ctx, in)
	} else {
		saved, err = u.jobs.Update(ctx, id, func(current jobentity.Job) (jobentity.Job, error) {
			if current.OrgID != in.OrgID {
				return jobentity.Job{}, ErrForbidden
			}
			return in, nil
		})
	}
	if err != nil {
		switch {
		case errors.Is(err, jobentity.ErrNotFound):
			return jobentity.Job{}, ErrNotFound
		case errors.Is(err, ErrForbidden):
			return jobentity.Job{}, ErrForbidden
		}
		u.logf("[Jobs] save failed action=%s id=%s org_id=%s err=%v", action, id, in.OrgID, err)
		return jobentity.Job{}, ErrInternal
	}

	u.logf("[Jobs] saved action=%s id=%s org_id=%s user_id=%s", action, saved.ID, saved.OrgID, viewer.UserID())
	u.notify(saved.OrgID, action)

	out, err := u.enrich(ctx, []jobentity.Job{saved}, viewer)
	if err != nil {
		u.logf("[Jobs] annotate saved job failed id=%s err=%v", saved.ID, err)
		return saved, nil
	}
	return out[0], nil
}

func (u *Jobs) Delete(ctx context.Context, viewer *identity.Viewer, id string) error {
	if viewer == nil {
		return ErrUnauthorized
	}

	j, err := u.find(ctx, id)
	if err != nil {
		return err
	}
	if err := u.requireMember(ctx, viewer, j.OrgID); err != nil {
		return err
	}

	deleted, err := u.jobs.Delete(ctx, j.ID)
	if err != nil {
		u.logf("[Jobs] delete failed id=%s err=%v", j.ID, err)
		return ErrInternal
	}
	if !deleted {
		return ErrNotFound
	}

	u.logf("[Jobs] deleted id=%s org_id=%s user_id=%s", j.ID, j.OrgID, viewer.UserID())
	u.notify(j.OrgID, JobActionDeleted)
	return nil
}

func (u *Jobs) find(ctx context.Context, id string) (jobentity.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return jobentity.Job{}, ErrInvalidInput
	}
	j, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, jobentity.ErrNotFound) {
			return jobentity.Job{}, ErrNotFound
		}
		u.logf("[Jobs] find by id failed id=%s err=%v", id, err)
		return jobentity.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Jobs) enrich(ctx context.Context, items []jobentity.Job, viewer *identity.Viewer, opts ...ucjob.EnrichOption) ([]jobentity.Job, error) {
	out, err := u.enricher.Enrich(ctx, items, viewer, opts...)
	if err != nil {
		var lookupErr *ucjob.UpstreamLookupError
		if errors.As(err, &lookupErr) {
			u.logf("[Jobs] enrich failed resource=%s key=%s err=%v", lookupErr.Resource, lookupErr.Key, lookupErr.Err)
			return nil, err
		}
		if errors.Is(err, ucjob.ErrInvalidInput) {
			u.logf("[Jobs] enrich rejected stored jobs err=%v", err)
			return nil, ErrInternal
		}
		return nil, err
	}
	return out, nil
}

func (u *Jobs) requireMember(ctx context.Context, viewer *identity.Viewer, orgID string) error {
	ok, err := hasMembership(ctx, u.memberships, viewer, orgID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (u *Jobs) notify(orgID, action string) {
	if u.notifier == nil {
		return
	}
	u.notifier.JobsUpdated(orgID, action)
}

func (u *Jobs) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

// hasMembership reports whether viewer holds a membership of any status in
// orgID.
func hasMembership(ctx context.Context, memberships membershipLister, viewer *identity.Viewer, orgID string) (bool, error) {
	userID := viewer.UserID()
	if userID == "" {
		return false, ErrUnauthorized
	}
	oms, err := memberships.ListMemberships(ctx, userID, orgID)
	if err != nil {
		return false, &ucjob.UpstreamLookupError{Resource: ucjob.ResourceMembership, Key: userID, Err: err}
	}
	for _, om := range oms {
		if om.OrganizationID == orgID {
			return true, nil
		}
	}
	return false, nil
}
