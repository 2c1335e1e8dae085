package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb" // for sqlserver
	_ "github.com/go-sql-driver/mysql"   // for mysql
	_ "github.com/lib/pq"                // for postgres

	"daysquare/internal/config"
	"daysquare/internal/types"

	"github.com/google/uuid"
)

var createTable = map[string]string{
	"postgres": `CREATE TABLE IF NOT EXISTS services (
	id          VARCHAR(36) PRIMARY KEY,
	title       VARCHAR(50) NOT NULL,
	url         TEXT NOT NULL,
	description VARCHAR(150) NOT NULL,
	endpoint    TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
)`,
	"mysql": `CREATE TABLE IF NOT EXISTS services (
	id          VARCHAR(36) PRIMARY KEY,
	title       VARCHAR(50) NOT NULL,
	url         TEXT NOT NULL,
	description VARCHAR(150) NOT NULL,
	endpoint    TEXT NOT NULL,
	created_at  DATETIME(6) NOT NULL
)`,
	"sqlserver": `IF OBJECT_ID(N'services', N'U') IS NULL
CREATE TABLE services (
	id          VARCHAR(36) PRIMARY KEY,
	title       NVARCHAR(50) NOT NULL,
	url         NVARCHAR(MAX) NOT NULL,
	description NVARCHAR(150) NOT NULL,
	endpoint    NVARCHAR(MAX) NOT NULL DEFAULT '',
	created_at  DATETIME2 NOT NULL
)`,
}

const (
	insertService = `INSERT INTO services (id, title, url, description, endpoint, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectService = `SELECT id, title, url, description, endpoint, created_at FROM services`
	deleteService = `DELETE FROM services WHERE id = ?`
)

// SQL is a Store backed by postgres, mysql or sqlserver
type SQL struct {
	db      *sql.DB
	dialect string
}

// OpenSQL connects to the configured database and checks the connection
func OpenSQL(ctx context.Context, cfg config.Database) (*SQL, error) {
	if _, ok := createTable[cfg.Type]; !ok {
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Type, dsn)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return NewSQL(db, cfg.Type), nil
}

// NewSQL wraps an open database handle
func NewSQL(db *sql.DB, dialect string) *SQL {
	return &SQL{db: db, dialect: dialect}
}

// rebind rewrites "?" placeholders into the dialect's form
func rebind(dialect, query string) string {
	var prefix string
	switch dialect {
	case "postgres":
		prefix = "$"
	case "sqlserver":
		prefix = "@p"
	default:
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(prefix)
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQL) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable[s.dialect]); err != nil {
		return fmt.Errorf("failed to create services table: %w", err)
	}
	return nil
}

func (s *SQL) CreateService(ctx context.Context, service *types.Service) error {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	if service.CreatedAt.IsZero() {
		service.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, rebind(s.dialect, insertService),
		service.ID.String(),
		service.Title,
		service.URL,
		service.Description,
		service.Endpoint,
		service.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	return nil
}

func (s *SQL) GetService(ctx context.Context, id uuid.UUID) (*types.Service, error) {
	row := s.db.QueryRowContext(ctx, rebind(s.dialect, selectService+` WHERE id = ?`), id.String())
	service, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	return service, nil
}

func (s *SQL) ListServices(ctx context.Context) ([]types.Service, error) {
	rows, err := s.db.QueryContext(ctx, selectService+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]types.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, *service)
	}
	return services, rows.Err()
}

func (s *SQL) DeleteService(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, rebind(s.dialect, deleteService), id.String())
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanService(row scanner) (*types.Service, error) {
	var (
		service types.Service
		id      string
	)
	if err := row.Scan(&id, &service.Title, &service.URL, &service.Description, &service.Endpoint, &service.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid service id %q: %w", id, err)
	}
	service.ID = parsed
	return &service, nil
}
