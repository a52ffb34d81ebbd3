package postgres

import (
	"context"

	"github.com/26nm/careerpath/internal/database"
	"github.com/26nm/careerpath/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository struct {
	db database.DB
}

func NewApplicationRepository(db database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, company, position, location, posting_url, job_description,
	status, applied_at, notes, created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, user_id, company, position, location, posting_url, job_description, status, applied_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+applicationColumns,
		a.ID, a.UserID, a.Company, a.Position, a.Location, a.PostingURL, a.JobDescription,
		string(a.Status), a.AppliedAt, a.Notes,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) List(ctx context.Context, userID uuid.UUID, f application.ListFilter) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE user_id = $1 AND ($2 = '' OR status = $2)
		 ORDER BY created_at DESC, id ASC
		 LIMIT $3 OFFSET $4`,
		userID, string(f.Status), f.Limit, f.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplicationRepository) Get(ctx context.Context, userID, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) Update(ctx context.Context, a application.Application) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications
		 SET company = $3, position = $4, location = $5, posting_url = $6, job_description = $7,
		     status = $8, applied_at = $9, notes = $10, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+applicationColumns,
		a.ID, a.UserID, a.Company, a.Position, a.Location, a.PostingURL, a.JobDescription,
		string(a.Status), a.AppliedAt, a.Notes,
	)
	return scanApplication(row)
}

func (r *ApplicationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(
		&a.ID, &a.UserID, &a.Company, &a.Position, &a.Location, &a.PostingURL, &a.JobDescription,
		&status, &a.AppliedAt, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
