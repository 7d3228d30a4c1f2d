package usecase

import (
	"context"
	"log"
	"sort"
	"strings"

	"job-board/internal/domain/identity"
	ucjob "job-board/internal/usecase/job"
)

const maxCompanyNameLength = 120

type CompanyUsecase interface {
	ListCompanies(ctx context.Context, viewer *identity.Viewer) ([]identity.Organization, error)
	CreateCompany(ctx context.Context, viewer *identity.Viewer, name string) (identity.Organization, error)
	HasAccess(ctx context.Context, viewer *identity.Viewer, orgID string) (bool, error)
}

type Companies struct {
	orgs        identity.OrganizationDirectory
	memberships identity.MembershipDirectory
	logger      *log.Logger
}

var _ CompanyUsecase = (*Companies)(nil)

func NewCompanyUsecase(orgs identity.OrganizationDirectory, memberships identity.MembershipDirectory, logger *log.Logger) *Companies {
	return &Companies{orgs: orgs, memberships: memberships, logger: logger}
}

// ListCompanies resolves the viewer's active memberships to organizations,
// sorted by name ignoring case.
func (u *Companies) ListCompanies(ctx context.Context, viewer *identity.Viewer) ([]identity.Organization, error) {
	userID := viewer.UserID()
	if userID == "" {
		return nil, ErrUnauthorized
	}

	oms, err := u.memberships.ListMemberships(ctx, userID, "")
	if err != nil {
		return nil, &ucjob.UpstreamLookupError{Resource: ucjob.ResourceMembership, Key: userID, Err: err}
	}

	out := make([]identity.Organization, 0, len(oms))
	seen := make(map[string]struct{}, len(oms))
	for _, om := range oms {
		if om.Status != identity.MembershipStatusActive {
			continue
		}
		if _, ok := seen[om.OrganizationID]; ok {
			continue
		}
		seen[om.OrganizationID] = struct{}{}

		org, err := u.orgs.GetOrganization(ctx, om.OrganizationID)
		if err != nil {
			return nil, &ucjob.UpstreamLookupError{Resource: ucjob.ResourceOrganization, Key: om.OrganizationID, Err: err}
		}
		out = append(out, org)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// CreateCompany creates an organization and makes the viewer its admin.
func (u *Companies) CreateCompany(ctx context.Context, viewer *identity.Viewer, name string) (identity.Organization, error) {
	userID := viewer.UserID()
	if userID == "" {
		return identity.Organization{}, ErrUnauthorized
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxCompanyNameLength {
		return identity.Organization{}, ErrInvalidInput
	}

	org, err := u.orgs.CreateOrganization(ctx, name)
	if err != nil {
		u.logf("[Companies] create organization failed name=%q err=%v", name, err)
		return identity.Organization{}, &ucjob.UpstreamLookupError{Resource: ucjob.ResourceOrganization, Key: name, Err: err}
	}

	if _, err := u.memberships.CreateMembership(ctx, userID, org.ID, identity.RoleAdmin); err != nil {
		u.logf("[Companies] create membership failed org_id=%s user_id=%s err=%v", org.ID, userID, err)
		return identity.Organization{}, &ucjob.UpstreamLookupError{Resource: ucjob.ResourceMembership, Key: userID, Err: err}
	}

	u.logf("[Companies] created org_id=%s name=%q user_id=%s", org.ID, org.Name, userID)
	return org, nil
}

func (u *Companies) HasAccess(ctx context.Context, viewer *identity.Viewer, orgID string) (bool, error) {
	if viewer == nil {
		return false, ErrUnauthorized
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return false, ErrInvalidInput
	}
	return hasMembership(ctx, u.memberships, viewer, orgID)
}

func (u *Companies) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
