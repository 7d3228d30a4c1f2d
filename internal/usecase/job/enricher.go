package job

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"job-board/internal/domain/identity"
	jobentity "job-board/internal/domain/job"

	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrentLookups = 8

type organizationGetter interface {
	GetOrganization(ctx context.Context, orgID string) (identity.Organization, error)
}

type membershipLister interface {
	ListMemberships(ctx context.Context, userID, orgID string) ([]identity.Membership, error)
}

// Enricher attaches the owning organization's name and, for a signed-in
// viewer, an admin flag to job records.
type Enricher struct {
	orgs          organizationGetter
	memberships   membershipLister
	maxConcurrent int
}

func NewEnricher(orgs organizationGetter, memberships membershipLister, maxConcurrent int) *Enricher {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentLookups
	}
	return &Enricher{orgs: orgs, memberships: memberships, maxConcurrent: maxConcurrent}
}

// EnrichOption adjusts a single Enrich call.
type EnrichOption func(*enrichOptions)

type enrichOptions struct {
	known map[string]string
}

// WithKnownOrganizations supplies organizations the caller already resolved.
// Their names are used as-is and never looked up again.
func WithKnownOrganizations(orgs ...identity.Organization) EnrichOption {
	return func(o *enrichOptions) {
		for _, org := range orgs {
			if org.ID == "" {
				continue
			}
			o.known[org.ID] = org.Name
		}
	}
}

// Enrich returns an annotated copy of jobs in the same order. Each distinct
// orgId is looked up once. Any failed lookup fails the whole call.
//
// IsAdmin stays nil when viewer is nil so that "unknown" is distinguishable
// from a confirmed non-member.
func (e *Enricher) Enrich(ctx context.Context, jobs []jobentity.Job, viewer *identity.Viewer, opts ...EnrichOption) ([]jobentity.Job, error) {
	if len(jobs) == 0 {
		return []jobentity.Job{}, nil
	}

	o := enrichOptions{known: map[string]string{}}
	for _, opt := range opts {
		opt(&o)
	}

	orgIDs := make([]string, 0, len(jobs))
	seen := make(map[string]struct{}, len(jobs))
	for i, j := range jobs {
		if strings.TrimSpace(j.OrgID) == "" {
			return nil, fmt.Errorf("%w: job at index %d has no orgId", ErrInvalidInput, i)
		}
		if _, ok := seen[j.OrgID]; ok {
			continue
		}
		seen[j.OrgID] = struct{}{}
		if _, ok := o.known[j.OrgID]; ok {
			continue
		}
		orgIDs = append(orgIDs, j.OrgID)
	}

	var memberOf map[string]bool
	if viewer != nil {
		userID := viewer.UserID()
		if strings.TrimSpace(userID) == "" {
			return nil, fmt.Errorf("%w: viewer has no user id", ErrInvalidInput)
		}
		oms, err := e.memberships.ListMemberships(ctx, userID, "")
		if err != nil {
			return nil, &UpstreamLookupError{Resource: ResourceMembership, Key: userID, Err: err}
		}
		memberOf = make(map[string]bool, len(oms))
		for _, om := range oms {
			memberOf[om.OrganizationID] = true
		}
	}

	names, err := e.resolveOrgNames(ctx, orgIDs)
	if err != nil {
		return nil, err
	}
	for id, name := range o.known {
		names[id] = name
	}

	out := make([]jobentity.Job, len(jobs))
	for i, j := range jobs {
		j.OrgName = names[j.OrgID]
		j.IsAdmin = nil
		if memberOf != nil {
			isAdmin := memberOf[j.OrgID]
			j.IsAdmin = &isAdmin
		}
		out[i] = j
	}
	return out, nil
}

func (e *Enricher) resolveOrgNames(ctx context.Context, orgIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(orgIDs))
	if len(orgIDs) == 0 {
		return names, nil
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrent)
	for _, id := range orgIDs {
		g.Go(func() error {
			org, err := e.orgs.GetOrganization(gctx, id)
			if err != nil {
				return &UpstreamLookupError{Resource: ResourceOrganization, Key: id, Err: err}
			}
			mu.Lock()
			names[id] = org.Name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}
