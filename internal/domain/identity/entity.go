package identity

import (
	"context"
	"errors"
)

const (
	MembershipStatusActive = "active"

	RoleAdmin = "admin"
)

var ErrNotFound = errors.New("identity: not found")

type Organization struct {
	ID   string
	Name string
}

type Membership struct {
	ID             string
	UserID         string
	OrganizationID string
	Status         string
	Role           string
}

type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// Viewer is the signed-in requester. A nil *Viewer means anonymous.
type Viewer struct {
	User      User
	SessionID string
}

func (v *Viewer) UserID() string {
	if v == nil {
		return ""
	}
	return v.User.ID
}

type OrganizationDirectory interface {
	GetOrganization(ctx context.Context, orgID string) (Organization, error)
	CreateOrganization(ctx context.Context, name string) (Organization, error)
}

// MembershipDirectory lists memberships for a user; orgID narrows the
// result when non-empty.
type MembershipDirectory interface {
	ListMemberships(ctx context.Context, userID, orgID string) ([]Membership, error)
	CreateMembership(ctx context.Context, userID, orgID, role string) (Membership, error)
}

type Authenticator interface {
	AuthorizationURL(state string, signUp bool) (string, error)
	AuthenticateWithCode(ctx context.Context, code string) (User, error)
}
