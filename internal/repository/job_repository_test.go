package repository

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"job-board/internal/database"
	"job-board/internal/domain/job"

	"github.com/google/uuid"
)

type recordedQuery struct {
	sql  string
	args []any
}

type fakeDB struct {
	queries []recordedQuery
	execN   int64
	rowErr  error
	tx      *fakeTx
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }
func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	if f.tx == nil {
		return nil, errors.New("not supported")
	}
	return f.tx, nil
}

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.queries = append(f.queries, recordedQuery{sql: query, args: args})
	return f.execN, nil
}

func (f *fakeDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	f.queries = append(f.queries, recordedQuery{sql: query, args: args})
	return emptyRows{}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	f.queries = append(f.queries, recordedQuery{sql: query, args: args})
	return errRow{err: f.rowErr}
}

type emptyRows struct{}

func (emptyRows) Close()            {}
func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return nil }
func (emptyRows) Err() error        { return nil }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// valuesRow scans vals positionally into the destinations.
type valuesRow struct{ vals []any }

func (r valuesRow) Scan(dest ...any) error {
	if len(dest) != len(r.vals) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

type fakeTx struct {
	queries    []recordedQuery
	rows       []database.Row
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, query string, args ...any) (int64, error) {
	t.queries = append(t.queries, recordedQuery{sql: query, args: args})
	return 1, nil
}

func (t *fakeTx) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	t.queries = append(t.queries, recordedQuery{sql: query, args: args})
	return emptyRows{}, nil
}

func (t *fakeTx) QueryRow(_ context.Context, query string, args ...any) database.Row {
	t.queries = append(t.queries, recordedQuery{sql: query, args: args})
	if len(t.rows) == 0 {
		return errRow{err: errors.New("unexpected query")}
	}
	row := t.rows[0]
	t.rows = t.rows[1:]
	return row
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

func storedJobRow(id uuid.UUID, title, orgID string, at time.Time) valuesRow {
	return valuesRow{vals: []any{
		id, title, "Build things", job.RemoteRemote, job.TypeFullTime, int64(100000),
		"Germany", "Berlin", "Berlin", "DE", "BE", "BER",
		"", "",
		"Ada", "+49 30 1234", "hr@acme.test", orgID,
		at, at,
	}}
}
func TestPostgresJobRepository_Find_NoFilter(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJobRepository(db)

	out, err := repo.Find(context.Background(), job.Filter{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice")
	}
	q := db.queries[0]
	if strings.Contains(q.sql, "WHERE") {
		t.Fatalf("expected no WHERE clause, got %s", q.sql)
	}
	if !strings.Contains(q.sql, "ORDER BY created_at DESC") {
		t.Fatalf("expected newest-first ordering")
	}
	if len(q.args) != 0 {
		t.Fatalf("expected no args, got %v", q.args)
	}
}

func TestPostgresJobRepository_Find_OrgAndQuery(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJobRepository(db)

	if _, err := repo.Find(context.Background(), job.Filter{OrgID: " org_1 ", Query: "50%_go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	q := db.queries[0]
	if !strings.Contains(q.sql, "org_id = $1") || !strings.Contains(q.sql, "title ILIKE $2 OR description ILIKE $2") {
		t.Fatalf("unexpected sql: %s", q.sql)
	}
	if len(q.args) != 2 || q.args[0] != "org_1" || q.args[1] != `%50\%\_go%` {
		t.Fatalf("unexpected args: %#v", q.args)
	}
}

func TestPostgresJobRepository_FindByID_InvalidIDIsNotFound(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJobRepository(db)

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(db.queries) != 0 {
		t.Fatalf("expected no query for invalid id")
	}
}

func TestPostgresJobRepository_FindByID_NoRows(t *testing.T) {
	db := &fakeDB{rowErr: sql.ErrNoRows}
	repo := NewPostgresJobRepository(db)

	_, err := repo.FindByID(context.Background(), "3f1c1a55-8d2c-4c61-9a4a-0b3f7f1e2d10")
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresJobRepository_Delete(t *testing.T) {
	db := &fakeDB{execN: 1}
	repo := NewPostgresJobRepository(db)

	ok, err := repo.Delete(context.Background(), "3f1c1a55-8d2c-4c61-9a4a-0b3f7f1e2d10")
	if err != nil || !ok {
		t.Fatalf("expected deleted=true, got %v %v", ok, err)
	}

	ok, err = repo.Delete(context.Background(), "bogus")
	if err != nil || ok {
		t.Fatalf("expected deleted=false for bogus id, got %v %v", ok, err)
	}
}

func TestPostgresJobRepository_Update_LocksAppliesAndCommits(t *testing.T) {
	id := uuid.MustParse("3f1c1a55-8d2c-4c61-9a4a-0b3f7f1e2d10")
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tx := &fakeTx{rows: []database.Row{
		storedJobRow(id, "Old title", "org_1", at),
		storedJobRow(id, "New title", "org_1", at),
	}}
	db := &fakeDB{tx: tx}
	repo := NewPostgresJobRepository(db)

	var seen job.Job
	out, err := repo.Update(context.Background(), id.String(), func(current job.Job) (job.Job, error) {
		seen = current
		current.Title = "New title"
		return current, nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if seen.Title != "Old title" || seen.OrgID != "org_1" {
		t.Fatalf("apply should see the locked row, got %+v", seen)
	}
	if out.ID != id.String() || out.Title != "New title" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if len(tx.queries) != 2 || !strings.Contains(tx.queries[0].sql, "FOR UPDATE") || !strings.HasPrefix(strings.TrimSpace(tx.queries[1].sql), "UPDATE jobs") {
		t.Fatalf("expected SELECT ... FOR UPDATE then UPDATE inside the tx, got %+v", tx.queries)
	}
	if tx.queries[1].args[1] != "New title" {
		t.Fatalf("expected applied title in UPDATE args, got %v", tx.queries[1].args)
	}
	if !tx.committed || tx.rolledBack {
		t.Fatalf("expected commit without rollback, committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
	if len(db.queries) != 0 {
		t.Fatalf("expected no queries outside the tx, got %d", len(db.queries))
	}
}

func TestPostgresJobRepository_Update_ApplyErrorRollsBack(t *testing.T) {
	id := uuid.MustParse("3f1c1a55-8d2c-4c61-9a4a-0b3f7f1e2d10")
	tx := &fakeTx{rows: []database.Row{storedJobRow(id, "Old title", "org_1", time.Now())}}
	repo := NewPostgresJobRepository(&fakeDB{tx: tx})

	rejected := errors.New("rejected")
	_, err := repo.Update(context.Background(), id.String(), func(job.Job) (job.Job, error) {
		return job.Job{}, rejected
	})
	if !errors.Is(err, rejected) {
		t.Fatalf("expected apply error, got %v", err)
	}
	if tx.committed || !tx.rolledBack {
		t.Fatalf("expected rollback, committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
	if len(tx.queries) != 1 {
		t.Fatalf("expected no UPDATE after apply failed, got %d queries", len(tx.queries))
	}
}

func TestPostgresJobRepository_Update_MissingRow(t *testing.T) {
	tx := &fakeTx{rows: []database.Row{errRow{err: sql.ErrNoRows}}}
	repo := NewPostgresJobRepository(&fakeDB{tx: tx})

	called := false
	_, err := repo.Update(context.Background(), "3f1c1a55-8d2c-4c61-9a4a-0b3f7f1e2d10", func(j job.Job) (job.Job, error) {
		called = true
		return j, nil
	})
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if called || !tx.rolledBack {
		t.Fatalf("expected rollback without apply, called=%v rolledBack=%v", called, tx.rolledBack)
	}
}
