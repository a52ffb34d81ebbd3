package postgres

import (
	"context"
	"errors"

	"github.com/26nm/careerpath/internal/database"
	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/domain/interview"

	"github.com/google/uuid"
)

type InterviewRepository struct {
	db database.DB
}

func NewInterviewRepository(db database.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const interviewColumns = `id, user_id, application_id, scheduled_at, kind, location, notes, created_at, updated_at`

// Create returns application.ErrNotFound when the application does not
// belong to the interview's user.
func (r *InterviewRepository) Create(ctx context.Context, iv interview.Interview) (interview.Interview, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO interviews (id, user_id, application_id, scheduled_at, kind, location, notes)
		 SELECT $1, $2, $3, $4, $5, $6, $7
		 WHERE EXISTS (SELECT 1 FROM applications WHERE id = $3 AND user_id = $2)
		 RETURNING `+interviewColumns,
		iv.ID, iv.UserID, iv.ApplicationID, iv.ScheduledAt, string(iv.Kind), iv.Location, iv.Notes,
	)
	created, err := scanInterview(row)
	if errors.Is(err, interview.ErrNotFound) {
		return interview.Interview{}, application.ErrNotFound
	}
	return created, err
}

func (r *InterviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]interview.Interview, error) {
	return r.list(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE user_id = $1 ORDER BY scheduled_at ASC, id ASC`,
		userID,
	)
}

func (r *InterviewRepository) ListByApplication(ctx context.Context, userID, applicationID uuid.UUID) ([]interview.Interview, error) {
	return r.list(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE user_id = $1 AND application_id = $2 ORDER BY scheduled_at ASC, id ASC`,
		userID, applicationID,
	)
}

func (r *InterviewRepository) list(ctx context.Context, query string, args ...any) ([]interview.Interview, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interview.Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InterviewRepository) Get(ctx context.Context, userID, id uuid.UUID) (interview.Interview, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return scanInterview(row)
}

func (r *InterviewRepository) Update(ctx context.Context, iv interview.Interview) (interview.Interview, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE interviews
		 SET scheduled_at = $3, kind = $4, location = $5, notes = $6, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+interviewColumns,
		iv.ID, iv.UserID, iv.ScheduledAt, string(iv.Kind), iv.Location, iv.Notes,
	)
	return scanInterview(row)
}

func (r *InterviewRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM interviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func scanInterview(row database.Row) (interview.Interview, error) {
	var iv interview.Interview
	var kind string
	err := row.Scan(
		&iv.ID, &iv.UserID, &iv.ApplicationID, &iv.ScheduledAt, &kind,
		&iv.Location, &iv.Notes, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return interview.Interview{}, interview.ErrNotFound
		}
		return interview.Interview{}, err
	}
	iv.Kind = interview.Kind(kind)
	return iv, nil
}
