package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"portal-go/internal/models"
	"portal-go/internal/store"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is a ProjectStore backed by database/sql. Queries use $n placeholders,
// which both the sqlite3 and postgres drivers accept.
type DB struct {
	*sql.DB
	ids *store.IDClock
}

var _ store.ProjectStore = (*DB)(nil)

func Init(driver, dsn string, ids *store.IDClock) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to an in-memory sqlite database sees its own empty
	// database, so the pool is held to a single connection.
	if driver == "sqlite3" && (strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")) {
		db.SetMaxOpenConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	if ids == nil {
		ids = store.NewIDClock()
	}
	var maxID sql.NullInt64
	if err := db.QueryRow("SELECT MAX(id) FROM projects").Scan(&maxID); err != nil {
		db.Close()
		return nil, fmt.Errorf("read max project id: %w", err)
	}
	if maxID.Valid {
		ids.Observe(maxID.Int64)
	}

	return &DB{DB: db, ids: ids}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			github TEXT NOT NULL,
			live_demo TEXT NOT NULL,
			milestone TEXT NOT NULL,
			media TEXT NOT NULL,
			student_username TEXT NOT NULL,
			student_name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			upload_date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS projects_student_username_idx ON projects (student_username)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

const projectColumns = `id, title, description, category, github, live_demo, milestone, media,
	student_username, student_name, created_at, upload_date`

func (db *DB) Append(ctx context.Context, p *models.Project) error {
	media, err := json.Marshal(p.Media)
	if err != nil {
		return fmt.Errorf("encode media: %w", err)
	}
	if p.Media == nil {
		media = []byte("[]")
	}

	id := db.ids.Next()
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = db.ExecContext(ctx, query,
		id, p.Title, p.Description, p.Category, p.GithubURL, p.LiveDemoURL, p.Milestone, string(media),
		p.StudentUsername, p.StudentName, p.CreatedAt.UTC().Format(time.RFC3339Nano), p.UploadDate)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	p.ID = id
	return nil
}

func (db *DB) ListAll(ctx context.Context) ([]models.Project, error) {
	return db.queryProjects(ctx, "SELECT "+projectColumns+" FROM projects ORDER BY id")
}

func (db *DB) ListByOwner(ctx context.Context, username string) ([]models.Project, error) {
	return db.queryProjects(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE student_username = $1 ORDER BY id", username)
}

func (db *DB) FindByID(ctx context.Context, id int64) (models.Project, error) {
	row := db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = $1", id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, store.ErrProjectNotFound
	}
	return p, err
}

func (db *DB) queryProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (models.Project, error) {
	var (
		p         models.Project
		media     string
		createdAt string
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.GithubURL, &p.LiveDemoURL,
		&p.Milestone, &media, &p.StudentUsername, &p.StudentName, &createdAt, &p.UploadDate)
	if err != nil {
		return models.Project{}, err
	}
	if err := json.Unmarshal([]byte(media), &p.Media); err != nil {
		return models.Project{}, fmt.Errorf("decode media of project %d: %w", p.ID, err)
	}
	if p.Media == nil {
		p.Media = []string{}
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Project{}, fmt.Errorf("parse created_at of project %d: %w", p.ID, err)
	}
	return p, nil
}
