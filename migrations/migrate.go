package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed *.sql
var files embed.FS

const versionsTable = "schema_migrations"

var (
	ErrLoadMigrations  = errors.New("migrations: failed to load migration files")
	ErrApplyMigration  = errors.New("migrations: failed to apply migration")
	ErrReadVersions    = errors.New("migrations: failed to read applied versions")
	ErrDuplicateNumber = errors.New("migrations: duplicate migration version")
)

// Migration SQL-файл миграции; версия берется из числового префикса имени ("003_availabilities.sql" -> 3)
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status состояние миграции в БД
type Status struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
}

// DB подмножество *sql.DB, нужное мигратору
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Migrator применяет встроенные SQL-миграции и ведет таблицу schema_migrations
type Migrator struct {
	db     DB
	source fs.FS
	logger Logger
}

// NewMigrator создает мигратор поверх встроенных в бинарник файлов
func NewMigrator(db DB, logger Logger) *Migrator {
	return &Migrator{db: db, source: files, logger: logger}
}

// WithSource подменяет источник файлов миграций
func (m *Migrator) WithSource(source fs.FS) *Migrator {
	m.source = source
	return m
}

// Load читает *.sql из источника и сортирует по версии
// Файлы без числового префикса пропускаются
func (m *Migrator) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(m.source, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: read dir: %v", ErrLoadMigrations, err)
	}

	seen := make(map[int]string)
	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			continue
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("%w: %d (%s, %s)", ErrDuplicateNumber, version, other, name)
		}
		seen[version] = name

		content, err := fs.ReadFile(m.source, name)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadMigrations, name, err)
		}

		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Up применяет все неприменённые миграции, каждую в своей транзакции
// Возвращает количество примененных миграций
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureVersionsTable(ctx); err != nil {
		return 0, err
	}

	migrations, err := m.Load()
	if err != nil {
		return 0, err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range migrations {
		if _, ok := applied[mig.Version]; ok {
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return count, err
		}
		m.logger.Info("Migration applied: version=%d name=%s", mig.Version, mig.Name)
		count++
	}

	return count, nil
}

// Status возвращает состояние всех известных миграций
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	if err := m.ensureVersionsTable(ctx); err != nil {
		return nil, err
	}

	migrations, err := m.Load()
	if err != nil {
		return nil, err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(migrations))
	for _, mig := range migrations {
		st := Status{Version: mig.Version, Name: mig.Name}
		if at, ok := applied[mig.Version]; ok {
			appliedAt := at
			st.Applied = true
			st.AppliedAt = &appliedAt
		}
		statuses = append(statuses, st)
	}

	return statuses, nil
}

func (m *Migrator) ensureVersionsTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS ` + versionsTable + ` (
    version    INTEGER PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrApplyMigration, versionsTable, err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version, applied_at FROM `+versionsTable)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrReadVersions, err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var (
			version   int
			appliedAt time.Time
		)
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrReadVersions, err)
		}
		applied[version] = appliedAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration: %v", ErrReadVersions, err)
	}

	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s - begin transaction: %v", ErrApplyMigration, mig.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrApplyMigration, mig.Name, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO `+versionsTable+` (version, name) VALUES ($1, $2)`,
		mig.Version, mig.Name,
	); err != nil {
		return fmt.Errorf("%w: %s - record version: %v", ErrApplyMigration, mig.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s - commit: %v", ErrApplyMigration, mig.Name, err)
	}
	return nil
}
