package usecase

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"job-board/internal/domain/identity"
	jobentity "job-board/internal/domain/job"
	"job-board/internal/infrastructure/storage"
	ucjob "job-board/internal/usecase/job"
)

type mockJobRepo struct {
	items   map[string]jobentity.Job
	nextID  int
	findErr error
	lastF   jobentity.Filter
	created []jobentity.Job
	updated []jobentity.Job
	deleted []string
}

func newMockJobRepo(items ...jobentity.Job) *mockJobRepo {
	m := &mockJobRepo{items: map[string]jobentity.Job{}}
	for _, j := range items {
		m.items[j.ID] = j
	}
	return m
}

func (m *mockJobRepo) Find(_ context.Context, f jobentity.Filter) ([]jobentity.Job, error) {
	m.lastF = f
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]jobentity.Job, 0, len(m.items))
	for _, j := range m.items {
		if f.OrgID != "" && j.OrgID != f.OrgID {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *mockJobRepo) FindByID(_ context.Context, id string) (jobentity.Job, error) {
	j, ok := m.items[id]
	if !ok {
		return jobentity.Job{}, jobentity.ErrNotFound
	}
	return j, nil
}

func (m *mockJobRepo) Create(_ context.Context, j jobentity.Job) (jobentity.Job, error) {
	m.nextID++
	j.ID = "new-" + strconv.Itoa(m.nextID)
	m.items[j.ID] = j
	m.created = append(m.created, j)
	return j, nil
}

func (m *mockJobRepo) Update(_ context.Context, id string, apply jobentity.UpdateFunc) (jobentity.Job, error) {
	current, ok := m.items[id]
	if !ok {
		return jobentity.Job{}, jobentity.ErrNotFound
	}
	j, err := apply(current)
	if err != nil {
		return jobentity.Job{}, err
	}
	j.ID = id
	m.items[id] = j
	m.updated = append(m.updated, j)
	return j, nil
}

func (m *mockJobRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return true, nil
}

type stubEnricher struct {
	err   error
	calls int
	opts  int
}

func (s *stubEnricher) Enrich(_ context.Context, jobs []jobentity.Job, viewer *identity.Viewer, opts ...ucjob.EnrichOption) ([]jobentity.Job, error) {
	s.calls++
	s.opts += len(opts)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]jobentity.Job, len(jobs))
	for i, j := range jobs {
		j.OrgName = "org:" + j.OrgID
		if viewer != nil {
			f := false
			j.IsAdmin = &f
		}
		out[i] = j
	}
	return out, nil
}

type fakeDirectory struct {
	mu          sync.Mutex
	orgs        map[string]identity.Organization
	memberships []identity.Membership
	orgErr      error
	memberErr   error
	createErr   error
	lookups     []string
}

func (f *fakeDirectory) GetOrganization(_ context.Context, orgID string) (identity.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, orgID)
	if f.orgErr != nil {
		return identity.Organization{}, f.orgErr
	}
	org, ok := f.orgs[orgID]
	if !ok {
		return identity.Organization{}, identity.ErrNotFound
	}
	return org, nil
}

func (f *fakeDirectory) CreateOrganization(_ context.Context, name string) (identity.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return identity.Organization{}, f.createErr
	}
	if f.orgs == nil {
		f.orgs = map[string]identity.Organization{}
	}
	org := identity.Organization{ID: "org_new", Name: name}
	f.orgs[org.ID] = org
	return org, nil
}

func (f *fakeDirectory) ListMemberships(_ context.Context, userID, orgID string) ([]identity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	var out []identity.Membership
	for _, om := range f.memberships {
		if om.UserID != userID {
			continue
		}
		if orgID != "" && om.OrganizationID != orgID {
			continue
		}
		out = append(out, om)
	}
	return out, nil
}

func (f *fakeDirectory) CreateMembership(_ context.Context, userID, orgID, role string) (identity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	om := identity.Membership{ID: "om_new", UserID: userID, OrganizationID: orgID, Role: role, Status: identity.MembershipStatusActive}
	f.memberships = append(f.memberships, om)
	return om, nil
}

type notification struct {
	orgID  string
	action string
}

type recordingNotifier struct {
	events []notification
}

func (r *recordingNotifier) JobsUpdated(orgID, action string) {
	r.events = append(r.events, notification{orgID: orgID, action: action})
}

type memorySessions struct {
	users   map[string]identity.User
	states  map[string]bool
	saveErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{users: map[string]identity.User{}, states: map[string]bool{}}
}

func (m *memorySessions) Save(_ context.Context, sid string, u identity.User, _ time.Duration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.users[sid] = u
	return nil
}

func (m *memorySessions) Load(_ context.Context, sid string) (identity.User, error) {
	u, ok := m.users[sid]
	if !ok {
		return identity.User{}, errors.New("session not found")
	}
	return u, nil
}

func (m *memorySessions) Delete(_ context.Context, sid string) error {
	delete(m.users, sid)
	return nil
}

func (m *memorySessions) RememberState(_ context.Context, state string, _ time.Duration) error {
	m.states[state] = true
	return nil
}

func (m *memorySessions) ConsumeState(_ context.Context, state string) (bool, error) {
	ok := m.states[state]
	delete(m.states, state)
	return ok, nil
}

type fakeAuthenticator struct {
	lastState  string
	lastSignUp bool
	user       identity.User
	err        error
}

func (f *fakeAuthenticator) AuthorizationURL(state string, signUp bool) (string, error) {
	f.lastState = state
	f.lastSignUp = signUp
	return "https://auth.example.com/authorize?state=" + state, nil
}

func (f *fakeAuthenticator) AuthenticateWithCode(_ context.Context, code string) (identity.User, error) {
	if f.err != nil {
		return identity.User{}, f.err
	}
	return f.user, nil
}

type fakeImageStore struct {
	err error
}

func (f fakeImageStore) SaveImage(_ context.Context, r io.Reader) (storage.Stored, error) {
	if f.err != nil {
		return storage.Stored{}, f.err
	}
	b, _ := io.ReadAll(r)
	return storage.Stored{Name: "a.png", URL: "/uploads/a.png", MIMEType: "image/png", Size: int64(len(b))}, nil
}
