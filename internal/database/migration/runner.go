package migration

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/26nm/careerpath/internal/database"
)

//go:embed sql/*.sql
var embedded embed.FS

// Embedded returns the migrations compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

const lockKey int64 = 746295114

var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// Runner applies V<n>__name.sql files from FS in version order. Each file
// runs in its own transaction under a transaction-scoped advisory lock, so
// concurrent runners serialize and skip what the other already applied.
type Runner struct {
	FS     fs.FS
	Logger *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}

	src := r.FS
	if src == nil {
		src = Embedded()
	}

	migs, err := Load(src)
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		return nil
	}

	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return err
	}

	applied, err := getApplied(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migs {
		if checksum, ok := applied[m.Version]; ok {
			if checksum != m.Checksum {
				return fmt.Errorf("%w: version=%d name=%s", ErrChecksumMismatch, m.Version, m.Name)
			}
			continue
		}

		done, err := applyOne(ctx, db, m)
		if err != nil {
			return err
		}
		if done && r.Logger != nil {
			r.Logger.Printf("[Migration] applied version=%d name=%s", m.Version, m.Name)
		}
	}

	return nil
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Load reads and orders the migrations in src. Files not matching the
// naming scheme are ignored.
func Load(src fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		m := fileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", name)
		}

		b, err := fs.ReadFile(src, path.Clean(name))
		if err != nil {
			return nil, err
		}
		sqlText := strings.TrimSpace(string(b))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", name)
		}

		h := sha256.Sum256([]byte(sqlText))
		migs = append(migs, Migration{
			Version:  v,
			Name:     m[2],
			Filename: name,
			SQL:      sqlText,
			Checksum: hex.EncodeToString(h[:]),
		})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}

	return migs, nil
}

func ensureSchemaMigrations(ctx context.Context, db database.DB) error {
	_, err := db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func getApplied(ctx context.Context, db database.DB) (map[int64]string, error) {
	rows, err := db.Query(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var v int64
		var c string
		if err := rows.Scan(&v, &c); err != nil {
			return nil, err
		}
		out[v] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// applyOne reports false when another runner applied m while this one was
// waiting for the lock.
func applyOne(ctx context.Context, db database.DB, m Migration) (bool, error) {
	applied := false
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return nil
		}

		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
			m.Version, m.Name, m.Checksum, time.Now().UTC(),
		); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}
