package usecase

import (
	"context"
	"errors"
	"testing"

	"job-board/internal/domain/identity"
	jobentity "job-board/internal/domain/job"
	ucjob "job-board/internal/usecase/job"
)

func validJob(orgID string) jobentity.Job {
	return jobentity.Job{
		Title:        "Backend Engineer",
		Description:  "Build APIs",
		Remote:       jobentity.RemoteHybrid,
		Type:         jobentity.TypeFullTime,
		Salary:       90000,
		Country:      "Poland",
		State:        "Mazowieckie",
		City:         "Warsaw",
		CountryID:    "PL",
		StateID:      "MZ",
		CityID:       "1",
		ContactName:  "Ann",
		ContactPhone: "+48 123",
		ContactEmail: "ann@example.com",
		OrgID:        orgID,
	}
}

func viewer(userID string) *identity.Viewer {
	return &identity.Viewer{User: identity.User{ID: userID}, SessionID: "sid"}
}

func TestJobUsecase_ListRecent_PassesQueryAndEnriches(t *testing.T) {
	repo := newMockJobRepo(jobentity.Job{ID: "j1", OrgID: "A"})
	enr := &stubEnricher{}
	uc := NewJobUsecase(repo, enr, &fakeDirectory{}, &fakeDirectory{}, nil, nil)

	out, err := uc.ListRecent(context.Background(), "  golang ", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastF.Query != "golang" {
		t.Fatalf("expected trimmed query, got %q", repo.lastF.Query)
	}
	if len(out) != 1 || out[0].OrgName != "org:A" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestJobUsecase_ListRecent_UpstreamErrorPassesThrough(t *testing.T) {
	repo := newMockJobRepo(jobentity.Job{ID: "j1", OrgID: "A"})
	upstream := &ucjob.UpstreamLookupError{Resource: ucjob.ResourceOrganization, Key: "A", Err: errors.New("boom")}
	uc := NewJobUsecase(repo, &stubEnricher{err: upstream}, &fakeDirectory{}, &fakeDirectory{}, nil, nil)

	_, err := uc.ListRecent(context.Background(), "", nil)
	var lookupErr *ucjob.UpstreamLookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected UpstreamLookupError, got %v", err)
	}
}

func TestJobUsecase_ListByOrg(t *testing.T) {
	repo := newMockJobRepo(
		jobentity.Job{ID: "j1", OrgID: "A"},
		jobentity.Job{ID: "j2", OrgID: "B"},
	)
	dir := &fakeDirectory{orgs: map[string]identity.Organization{"A": {ID: "A", Name: "Acme"}}}
	enr := &stubEnricher{}
	uc := NewJobUsecase(repo, enr, dir, dir, nil, nil)

	got, err := uc.ListByOrg(context.Background(), "A", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if enr.opts != 1 {
		t.Fatalf("expected the resolved org to be handed to the enricher, got %d options", enr.opts)
	}
	if got.Organization.Name != "Acme" {
		t.Fatalf("expected Acme, got %q", got.Organization.Name)
	}
	if len(got.Jobs) != 1 || got.Jobs[0].ID != "j1" {
		t.Fatalf("expected only org A jobs, got %+v", got.Jobs)
	}
}

func TestJobUsecase_ListByOrg_UnknownOrg(t *testing.T) {
	dir := &fakeDirectory{}
	uc := NewJobUsecase(newMockJobRepo(), &stubEnricher{}, dir, dir, nil, nil)

	_, err := uc.ListByOrg(context.Background(), "missing", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobUsecase_Get_NotFound(t *testing.T) {
	uc := NewJobUsecase(newMockJobRepo(), &stubEnricher{}, &fakeDirectory{}, &fakeDirectory{}, nil, nil)
	if _, err := uc.Get(context.Background(), "nope", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobUsecase_Save_RequiresViewer(t *testing.T) {
	uc := NewJobUsecase(newMockJobRepo(), &stubEnricher{}, &fakeDirectory{}, &fakeDirectory{}, nil, nil)
	if _, err := uc.Save(context.Background(), nil, "", validJob("A")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJobUsecase_Save_RejectsNonMember(t *testing.T) {
	repo := newMockJobRepo()
	dir := &fakeDirectory{memberships: []identity.Membership{{UserID: "u1", OrganizationID: "B"}}}
	uc := NewJobUsecase(repo, &stubEnricher{}, dir, dir, nil, nil)

	_, err := uc.Save(context.Background(), viewer("u1"), "", validJob("A"))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestJobUsecase_Save_InvalidInput(t *testing.T) {
	dir := &fakeDirectory{memberships: []identity.Membership{{UserID: "u1", OrganizationID: "A"}}}
	uc := NewJobUsecase(newMockJobRepo(), &stubEnricher{}, dir, dir, nil, nil)

	in := validJob("A")
	in.ContactEmail = "not-an-email"
	if _, err := uc.Save(context.Background(), viewer("u1"), "", in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJobUsecase_Save_CreateNotifies(t *testing.T) {
	repo := newMockJobRepo()
	dir := &fakeDirectory{memberships: []identity.Membership{{UserID: "u1", OrganizationID: "A", Status: "pending"}}}
	n := &recordingNotifier{}
	uc := NewJobUsecase(repo, &stubEnricher{}, dir, dir, n, nil)

	saved, err := uc.Save(context.Background(), viewer("u1"), "", validJob("A"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if saved.ID == "" || len(repo.created) != 1 {
		t.Fatalf("expected job to be created, got %+v", saved)
	}
	if len(n.events) != 1 || n.events[0] != (notification{orgID: "A", action: JobActionCreated}) {
		t.Fatalf("unexpected notifications: %+v", n.events)
	}
}

func TestJobUsecase_Save_UpdateKeepsOrg(t *testing.T) {
	existing := validJob("A")
	existing.ID = "j1"
	repo := newMockJobRepo(existing)
	dir := &fakeDirectory{memberships: []identity.Membership{{UserID: "u1", OrganizationID: "A"}}}
	n := &recordingNotifier{}
	uc := NewJobUsecase(repo, &stubEnricher{}, dir, dir, n, nil)

	in := validJob("B")
	in.Title = "Staff Engineer"
	saved, err := uc.Save(context.Background(), viewer("u1"), "j1", in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if saved.OrgID != "A" || saved.Title != "Staff Engineer" {
		t.Fatalf("unexpected saved job: %+v", saved)
	}
	if len(n.events) != 1 || n.events[0].action != JobActionUpdated {
		t.Fatalf("unexpected notifications: %+v", n.events)
	}
}

func TestJobUsecase_Save_MembershipLookupFails(t *testing.T) {
	dir := &fakeDirectory{memberErr: errors.New("provider down")}
	uc := NewJobUsecase(newMockJobRepo(), &stubEnricher{}, dir, dir, nil, nil)

	_, err := uc.Save(context.Background(), viewer("u1"), "", validJob("A"))
	var lookupErr *ucjob.UpstreamLookupError
	if !errors.As(err, &lookupErr) || lookupErr.Resource != ucjob.ResourceMembership {
		t.Fatalf("expected membership UpstreamLookupError, got %v", err)
	}
}

func TestJobUsecase_Delete(t *testing.T) {
	existing := validJob("A")
	existing.ID = "j1"
	repo := newMockJobRepo(existing)
	dir := &fakeDirectory{memberships: []identity.Membership{{UserID: "u1", OrganizationID: "A"}}}
	n := &recordingNotifier{}
	uc := NewJobUsecase(repo, &stubEnricher{}, dir, dir, n, nil)

	if err := uc.Delete(context.Background(), viewer("u2"), "j1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-member, got %v", err)
	}
	if err := uc.Delete(context.Background(), viewer("u1"), "j1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "j1" {
		t.Fatalf("expected j1 deleted, got %v", repo.deleted)
	}
	if len(n.events) != 1 || n.events[0] != (notification{orgID: "A", action: JobActionDeleted}) {
		t.Fatalf("unexpected notifications: %+v", n.events)
	}
	if err := uc.Delete(context.Background(), viewer("u1"), "j1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestJobUsecase_ListByOrg_LooksUpOrganizationOnce(t *testing.T) {
	repo := newMockJobRepo(
		jobentity.Job{ID: "j1", OrgID: "A"},
		jobentity.Job{ID: "j2", OrgID: "A"},
	)
	dir := &fakeDirectory{orgs: map[string]identity.Organization{"A": {ID: "A", Name: "Acme"}}}
	uc := NewJobUsecase(repo, ucjob.NewEnricher(dir, dir, 0), dir, dir, nil, nil)

	got, err := uc.ListByOrg(context.Background(), "A", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(dir.lookups) != 1 || dir.lookups[0] != "A" {
		t.Fatalf("expected exactly one directory call for A, got %v", dir.lookups)
	}
	for _, j := range got.Jobs {
		if j.OrgName != "Acme" {
			t.Fatalf("expected Acme on every job, got %+v", j)
		}
	}
}

func TestJobUsecase_Save_ReturnsAnnotatedJob(t *testing.T) {
	existing := validJob("A")
	existing.ID = "j1"
	repo := newMockJobRepo(existing)
	dir := &fakeDirectory{
		orgs:        map[string]identity.Organization{"A": {ID: "A", Name: "Acme"}},
		memberships: []identity.Membership{{UserID: "u1", OrganizationID: "A"}},
	}
	uc := NewJobUsecase(repo, ucjob.NewEnricher(dir, dir, 0), dir, dir, nil, nil)

	created, err := uc.Save(context.Background(), viewer("u1"), "", validJob("A"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.OrgName != "Acme" || created.IsAdmin == nil || !*created.IsAdmin {
		t.Fatalf("expected annotated created job, got %+v", created)
	}

	updated, err := uc.Save(context.Background(), viewer("u1"), "j1", validJob("A"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.ID != "j1" || updated.OrgName != "Acme" || updated.IsAdmin == nil || !*updated.IsAdmin {
		t.Fatalf("expected annotated updated job, got %+v", updated)
	}
	if len(repo.items["j1"].OrgName) != 0 {
		t.Fatalf("annotations must not reach the store")
	}
}

func TestJobUsecase_Save_AnnotationFailureStillReturnsJob(t *testing.T) {
	repo := newMockJobRepo()
	dir := &fakeDirectory{memberships: []identity.Membership{{UserID: "u1", OrganizationID: "A"}}}
	n := &recordingNotifier{}
	uc := NewJobUsecase(repo, &stubEnricher{err: errors.New("directory down")}, dir, dir, n, nil)

	saved, err := uc.Save(context.Background(), viewer("u1"), "", validJob("A"))
	if err != nil {
		t.Fatalf("write succeeded, expected no error, got %v", err)
	}
	if saved.ID == "" || saved.OrgName != "" {
		t.Fatalf("expected stored job without annotations, got %+v", saved)
	}
	if len(n.events) != 1 {
		t.Fatalf("expected the write to be announced, got %+v", n.events)
	}
}

// movedRepo reports the job under one org while the store holds another,
// as if it moved between the read and the locked update.
type movedRepo struct {
	*mockJobRepo
	seenOrg string
}

func (m *movedRepo) FindByID(ctx context.Context, id string) (jobentity.Job, error) {
	j, err := m.mockJobRepo.FindByID(ctx, id)
	j.OrgID = m.seenOrg
	return j, err
}

func TestJobUsecase_Save_UpdateRefusesOrgChangedUnderneath(t *testing.T) {
	stored := validJob("B")
	stored.ID = "j1"
	repo := &movedRepo{mockJobRepo: newMockJobRepo(stored), seenOrg: "A"}
	dir := &fakeDirectory{memberships: []identity.Membership{{UserID: "u1", OrganizationID: "A"}}}
	uc := NewJobUsecase(repo, &stubEnricher{}, dir, dir, nil, nil)

	_, err := uc.Save(context.Background(), viewer("u1"), "j1", validJob("A"))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.updated) != 0 || repo.items["j1"].OrgID != "B" {
		t.Fatalf("expected stored job untouched, got %+v", repo.items["j1"])
	}
}
