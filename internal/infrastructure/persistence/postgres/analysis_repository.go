package postgres

import (
	"context"

	"github.com/26nm/careerpath/internal/database"
	"github.com/26nm/careerpath/internal/domain/analysis"

	"github.com/google/uuid"
)

// AnalysisRepository stores saved match reports. Records are append-only.
type AnalysisRepository struct {
	db database.DB
}

func NewAnalysisRepository(db database.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const analysisColumns = `id, user_id, resume_id, application_id, matched, missing, match_rate, saved_at`

func (r *AnalysisRepository) Append(ctx context.Context, a analysis.Analysis) (analysis.Analysis, error) {
	matched := a.Matched
	if matched == nil {
		matched = []string{}
	}
	missing := a.Missing
	if missing == nil {
		missing = []string{}
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO analyses (id, user_id, resume_id, application_id, matched, missing, match_rate, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+analysisColumns,
		a.ID, a.UserID, a.ResumeID, a.ApplicationID, matched, missing, a.MatchRate, a.SavedAt,
	)
	return scanAnalysis(row)
}

func (r *AnalysisRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]analysis.Analysis, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+analysisColumns+`
		 FROM analyses
		 WHERE user_id = $1
		 ORDER BY saved_at DESC, id ASC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analysis.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
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

func (r *AnalysisRepository) Get(ctx context.Context, userID, id uuid.UUID) (analysis.Analysis, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return scanAnalysis(row)
}

func (r *AnalysisRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM analyses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return analysis.ErrNotFound
	}
	return nil
}

func scanAnalysis(row database.Row) (analysis.Analysis, error) {
	var a analysis.Analysis
	err := row.Scan(&a.ID, &a.UserID, &a.ResumeID, &a.ApplicationID, &a.Matched, &a.Missing, &a.MatchRate, &a.SavedAt)
	if err != nil {
		if isNoRows(err) {
			return analysis.Analysis{}, analysis.ErrNotFound
		}
		return analysis.Analysis{}, err
	}
	if a.Matched == nil {
		a.Matched = []string{}
	}
	if a.Missing == nil {
		a.Missing = []string{}
	}
	return a, nil
}
