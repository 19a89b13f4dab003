// Package storage persists sandbox scenes in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for scene persistence.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scenes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS scene_cells (
			scene_id INTEGER NOT NULL REFERENCES scenes(id),
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			material TEXT NOT NULL,
			PRIMARY KEY (scene_id, x, y)
		);
		CREATE INDEX IF NOT EXISTS idx_scene_cells_scene ON scene_cells(scene_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScene stores scene under its name, replacing any scene with the same
// name. Returns the ID of the inserted record.
func (s *Store) SaveScene(scene Scene) (int64, error) {
	if scene.Name == "" {
		return 0, fmt.Errorf("storage: scene name is empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scene_cells WHERE scene_id IN (SELECT id FROM scenes WHERE name = ?)", scene.Name); err != nil {
		return 0, fmt.Errorf("storage: cannot replace scene cells: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM scenes WHERE name = ?", scene.Name); err != nil {
		return 0, fmt.Errorf("storage: cannot replace scene: %w", err)
	}

	res, err := tx.Exec(
		"INSERT INTO scenes (name, width, height, seed) VALUES (?, ?, ?, ?)",
		scene.Name, scene.Width, scene.Height, scene.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save scene: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO scene_cells (scene_id, x, y, material) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare cell insert: %w", err)
	}
	defer stmt.Close()
	for _, c := range scene.Cells {
		if _, err := stmt.Exec(id, c.X, c.Y, c.Material); err != nil {
			return 0, fmt.Errorf("storage: cannot save cell (%d,%d): %w", c.X, c.Y, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit scene: %w", err)
	}
	return id, nil
}

// LoadScene retrieves a scene by name. Returns nil if no such scene exists.
func (s *Store) LoadScene(name string) (*Scene, error) {
	var scene Scene
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, name, width, height, seed, created_at FROM scenes WHERE name = ?",
		name,
	).Scan(&scene.ID, &scene.Name, &scene.Width, &scene.Height, &scene.Seed, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scene: %w", err)
	}
	scene.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		"SELECT x, y, material FROM scene_cells WHERE scene_id = ? ORDER BY y, x",
		scene.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scene cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Cell
		if err := rows.Scan(&c.X, &c.Y, &c.Material); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scene.Cells = append(scene.Cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return &scene, nil
}

// ListScenes returns saved scenes without their cells, newest first.
func (s *Store) ListScenes() ([]SceneInfo, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.name, s.width, s.height, s.seed, s.created_at, COUNT(c.scene_id)
		 FROM scenes s
		 LEFT JOIN scene_cells c ON c.scene_id = s.id
		 GROUP BY s.id
		 ORDER BY s.created_at DESC, s.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scenes: %w", err)
	}
	defer rows.Close()

	var out []SceneInfo
	for rows.Next() {
		var info SceneInfo
		var createdAt any
		if err := rows.Scan(&info.ID, &info.Name, &info.Width, &info.Height, &info.Seed, &createdAt, &info.Cells); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteScene removes a scene and its cells. Deleting a missing scene is
// not an error.
func (s *Store) DeleteScene(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scene_cells WHERE scene_id IN (SELECT id FROM scenes WHERE name = ?)", name); err != nil {
		return fmt.Errorf("storage: cannot delete scene cells: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM scenes WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete scene: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
