package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"job-board/internal/database"
	"job-board/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, description, remote, type, salary,
	country, state, city, country_id, state_id, city_id,
	COALESCE(job_icon, ''), COALESCE(contact_photo, ''),
	contact_name, contact_phone, contact_email, org_id,
	created_at, updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Find(ctx context.Context, f job.Filter) ([]job.Job, error) {
	var (
		where []string
		args  []any
	)
	if orgID := strings.TrimSpace(f.OrgID); orgID != "" {
		args = append(args, orgID)
		where = append(where, fmt.Sprintf("org_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("find jobs scan: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id string) (job.Job, error) {
	jobID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return job.Job{}, job.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	j, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, fmt.Errorf("find job by id: %w", err)
	}
	return j, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (
			id, title, description, remote, type, salary,
			country, state, city, country_id, state_id, city_id,
			job_icon, contact_photo, contact_name, contact_phone, contact_email, org_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+jobColumns,
		uuid.New(), j.Title, j.Description, j.Remote, j.Type, j.Salary,
		j.Country, j.State, j.City, j.CountryID, j.StateID, j.CityID,
		nullIfEmpty(j.JobIcon), nullIfEmpty(j.ContactPhoto), j.ContactName, j.ContactPhone, j.ContactEmail, j.OrgID,
	)
	created, err := scanJob(row)
	if err != nil {
		return job.Job{}, fmt.Errorf("create job: %w", err)
	}
	return created, nil
}

// Update locks the row for the duration of the transaction so apply sees
// the version it replaces.
func (r *PostgresJobRepository) Update(ctx context.Context, id string, apply job.UpdateFunc) (job.Job, error) {
	jobID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return job.Job{}, job.ErrNotFound
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return job.Job{}, fmt.Errorf("update job begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	current, err := scanJob(tx.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, jobID))
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, fmt.Errorf("update job lock: %w", err)
	}

	j, err := apply(current)
	if err != nil {
		return job.Job{}, err
	}

	row := tx.QueryRow(ctx,
		`UPDATE jobs SET
			title = $2, description = $3, remote = $4, type = $5, salary = $6,
			country = $7, state = $8, city = $9, country_id = $10, state_id = $11, city_id = $12,
			job_icon = $13, contact_photo = $14, contact_name = $15, contact_phone = $16, contact_email = $17,
			org_id = $18, updated_at = now()
		WHERE id = $1
		RETURNING `+jobColumns,
		jobID, j.Title, j.Description, j.Remote, j.Type, j.Salary,
		j.Country, j.State, j.City, j.CountryID, j.StateID, j.CityID,
		nullIfEmpty(j.JobIcon), nullIfEmpty(j.ContactPhoto), j.ContactName, j.ContactPhone, j.ContactEmail, j.OrgID,
	)
	updated, err := scanJob(row)
	if err != nil {
		return job.Job{}, fmt.Errorf("update job: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return job.Job{}, fmt.Errorf("update job commit: %w", err)
	}
	committed = true
	return updated, nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id string) (bool, error) {
	jobID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return false, nil
	}
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return false, fmt.Errorf("delete job: %w", err)
	}
	return n > 0, nil
}

type jobRow interface {
	Scan(dest ...any) error
}

func scanJob(row jobRow) (job.Job, error) {
	var (
		j  job.Job
		id uuid.UUID
	)
	if err := row.Scan(
		&id, &j.Title, &j.Description, &j.Remote, &j.Type, &j.Salary,
		&j.Country, &j.State, &j.City, &j.CountryID, &j.StateID, &j.CityID,
		&j.JobIcon, &j.ContactPhoto,
		&j.ContactName, &j.ContactPhone, &j.ContactEmail, &j.OrgID,
		&j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return job.Job{}, err
	}
	j.ID = id.String()
	return j, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func nullIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

var _ job.Repository = (*PostgresJobRepository)(nil)
