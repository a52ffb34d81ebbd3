package postgres

import (
	"context"

	"github.com/26nm/careerpath/internal/database"
	"github.com/26nm/careerpath/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeRepository struct {
	db database.DB
}

func NewResumeRepository(db database.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

const resumeColumns = `id, user_id, title, qualifications, file_name, content_type, created_at, updated_at`

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO resumes (id, user_id, title, qualifications, file_name, content_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+resumeColumns,
		rs.ID, rs.UserID, rs.Title, rs.Qualifications, rs.FileName, rs.ContentType,
	)
	return scanResume(row)
}

func (r *ResumeRepository) List(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Resume, 0)
	for rows.Next() {
		rs, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ResumeRepository) Get(ctx context.Context, userID, id uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return scanResume(row)
}

func (r *ResumeRepository) Update(ctx context.Context, rs resume.Resume) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE resumes
		 SET title = $3, qualifications = $4, file_name = $5, content_type = $6, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+resumeColumns,
		rs.ID, rs.UserID, rs.Title, rs.Qualifications, rs.FileName, rs.ContentType,
	)
	return scanResume(row)
}

func (r *ResumeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return resume.ErrNotFound
	}
	return nil
}

func scanResume(row database.Row) (resume.Resume, error) {
	var rs resume.Resume
	err := row.Scan(
		&rs.ID, &rs.UserID, &rs.Title, &rs.Qualifications, &rs.FileName, &rs.ContentType,
		&rs.CreatedAt, &rs.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, err
	}
	return rs, nil
}
