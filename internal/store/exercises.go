package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/sadopc/fitlog/internal/catalog"
	"github.com/sirupsen/logrus"
)

// ImportExercises upserts entries into the catalog. Entries with an ID keep
// it, so importing the same file twice updates rather than duplicates.
func (s *Store) ImportExercises(entries []catalog.Entry) (int, error) {
	var n int
	err := s.withTx(func(tx *sql.Tx) error {
		categoryIDs := make(map[string]int64)
		for _, e := range entries {
			categoryID, err := ensureCategory(tx, categoryIDs, e.Category)
			if err != nil {
				return err
			}
			if e.ID > 0 {
				_, err = tx.Exec(`
					INSERT INTO exercises (id, name, body_part, category_id, equipment, description)
					VALUES (?, ?, ?, ?, ?, ?)
					ON CONFLICT(id) DO UPDATE SET
						name = excluded.name,
						body_part = excluded.body_part,
						category_id = excluded.category_id,
						equipment = excluded.equipment,
						description = excluded.description`,
					e.ID, e.Name, e.BodyPart, categoryID, e.Equipment, e.Description,
				)
			} else {
				_, err = tx.Exec(
					`INSERT INTO exercises (name, body_part, category_id, equipment, description) VALUES (?, ?, ?, ?, ?)`,
					e.Name, e.BodyPart, categoryID, e.Equipment, e.Description,
				)
			}
			if err != nil {
				return fmt.Errorf("import exercise %q: %w", e.Name, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logrus.WithField("count", n).Info("imported exercises")
	return n, nil
}

func ensureCategory(tx *sql.Tx, cache map[string]int64, name string) (sql.NullInt64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return sql.NullInt64{}, nil
	}
	if id, ok := cache[name]; ok {
		return sql.NullInt64{Int64: id, Valid: true}, nil
	}
	if _, err := tx.Exec(`INSERT OR IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
		return sql.NullInt64{}, fmt.Errorf("insert category %q: %w", name, err)
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM categories WHERE name = ?`, name).Scan(&id); err != nil {
		return sql.NullInt64{}, fmt.Errorf("get category %q: %w", name, err)
	}
	cache[name] = id
	return sql.NullInt64{Int64: id, Valid: true}, nil
}

const exerciseColumns = `e.id, e.name, e.body_part, COALESCE(c.name, ''), e.equipment, e.description`

// ListExercises returns the whole catalog ordered by name.
func (s *Store) ListExercises() ([]catalog.Entry, error) {
	rows, err := s.db.Query(`SELECT ` + exerciseColumns + `
		FROM exercises e
		LEFT JOIN categories c ON c.id = e.category_id
		ORDER BY e.name COLLATE NOCASE, e.id`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.BodyPart, &e.Category, &e.Equipment, &e.Description); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetExercise(id int64) (*catalog.Entry, error) {
	e := &catalog.Entry{}
	err := s.db.QueryRow(`SELECT `+exerciseColumns+`
		FROM exercises e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.BodyPart, &e.Category, &e.Equipment, &e.Description)
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return e, nil
}

// DeleteExercise removes an exercise. Workout rows that used it keep their
// numbers but lose the reference.
func (s *Store) DeleteExercise(id int64) error {
	_, err := s.db.Exec(`DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise %d: %w", id, err)
	}
	return nil
}

func (s *Store) CountExercises() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return n, nil
}

func (s *Store) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
