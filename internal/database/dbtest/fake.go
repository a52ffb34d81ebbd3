// Package dbtest provides a scriptable in-memory database.DB for repository
// and migration tests.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/26nm/careerpath/internal/database"

	"github.com/jackc/pgx/v5"
)

// Call is one statement the fake received.
type Call struct {
	Query string
	Args  []any
}

// Result scripts the response to a statement whose normalized text starts
// with Prefix. Rows feeds Query and QueryRow (first row only); Affected
// feeds Exec.
type Result struct {
	Prefix   string
	Rows     [][]any
	Affected int64
	Err      error
}

// DB matches each statement against the scripted results in order and
// consumes the first match. Unmatched Exec calls succeed with 0 rows,
// unmatched queries return no rows.
type DB struct {
	mu      sync.Mutex
	results []Result
	calls   []Call

	Committed  int
	RolledBack int
}

func New(results ...Result) *DB {
	return &DB{results: results}
}

// Expect appends scripted results.
func (db *DB) Expect(results ...Result) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.results = append(db.results, results...)
}

func (db *DB) Calls() []Call {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]Call(nil), db.calls...)
}

func (db *DB) take(query string, args []any) (Result, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.calls = append(db.calls, Call{Query: query, Args: args})
	q := normalize(query)
	for i, r := range db.results {
		if strings.HasPrefix(q, normalize(r.Prefix)) {
			db.results = append(db.results[:i], db.results[i+1:]...)
			return r, true
		}
	}
	return Result{}, false
}

func normalize(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

func (db *DB) Ping(context.Context) error { return nil }
func (db *DB) Close() error               { return nil }

func (db *DB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	r, _ := db.take(query, args)
	return r.Affected, r.Err
}

func (db *DB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	r, _ := db.take(query, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &Rows{rows: r.Rows, pos: -1}, nil
}

func (db *DB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	r, _ := db.take(query, args)
	if r.Err != nil {
		return Row{err: r.Err}
	}
	if len(r.Rows) == 0 {
		return Row{err: ErrNoRows}
	}
	return Row{vals: r.Rows[0]}
}

func (db *DB) Begin(context.Context) (database.Tx, error) {
	return &tx{db: db}, nil
}

type tx struct {
	db   *DB
	done bool
}

func (t *tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t *tx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t *tx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t *tx) Commit(context.Context) error {
	if t.done {
		return errors.New("tx closed")
	}
	t.done = true
	t.db.mu.Lock()
	t.db.Committed++
	t.db.mu.Unlock()
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.db.mu.Lock()
	t.db.RolledBack++
	t.db.mu.Unlock()
	return nil
}

// ErrNoRows is what QueryRow scans return when no row was scripted. It is
// the pgx sentinel so repositories' not-found mapping applies.
var ErrNoRows = pgx.ErrNoRows

type Rows struct {
	rows [][]any
	pos  int
}

func (r *Rows) Close()     {}
func (r *Rows) Err() error { return nil }

func (r *Rows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *Rows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.rows) {
		return errors.New("scan outside rows")
	}
	return assign(r.rows[r.pos], dest)
}

type Row struct {
	vals []any
	err  error
}

func (r Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

func assign(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan dest mismatch: have %d values, %d destinations", len(vals), len(dest))
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan dest %d is not a pointer", i)
		}
		target := dv.Elem()
		if vals[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		sv := reflect.ValueOf(vals[i])
		switch {
		case sv.Type().AssignableTo(target.Type()):
			target.Set(sv)
		case target.Kind() == reflect.Pointer && sv.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(sv)
			target.Set(p)
		case sv.Type().ConvertibleTo(target.Type()):
			target.Set(sv.Convert(target.Type()))
		default:
			return fmt.Errorf("scan type mismatch at %d: %s into %s", i, sv.Type(), target.Type())
		}
	}
	return nil
}
