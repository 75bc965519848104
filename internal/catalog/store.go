package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vapex/aromasearch/internal/models"
)

// Store persists catalog source data in SQLite. It is the authoritative
// catalog collaborator the search index loads from; queries never touch it.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates a SQLite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS aromas (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		brand TEXT,
		category TEXT,
		percentage REAL,
		rating REAL,
		reviews INTEGER,
		description TEXT,
		tags TEXT,
		search_terms TEXT
	);

	CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		author TEXT,
		category TEXT,
		rating REAL,
		aromas TEXT,
		search_terms TEXT
	);
	`
	_, err := db.Exec(schema)
	return err
}

// ImportCatalog replaces all stored catalog records with the given catalog in
// a single transaction.
func (s *Store) ImportCatalog(ctx context.Context, catalog *models.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM aromas"); err != nil {
		return fmt.Errorf("failed to clear aromas: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM recipes"); err != nil {
		return fmt.Errorf("failed to clear recipes: %w", err)
	}

	for _, aroma := range catalog.Aromas {
		if aroma == nil {
			continue
		}
		tags, err := json.Marshal(aroma.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		terms, err := json.Marshal(aroma.SearchTerms)
		if err != nil {
			return fmt.Errorf("failed to marshal search terms: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO aromas (id, name, brand, category, percentage, rating, reviews, description, tags, search_terms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			aroma.ID, aroma.Name, aroma.Brand, aroma.Category, aroma.Percentage,
			aroma.Rating, aroma.Reviews, aroma.Description, string(tags), string(terms),
		)
		if err != nil {
			return fmt.Errorf("failed to insert aroma %d: %w", aroma.ID, err)
		}
	}

	for _, recipe := range catalog.Recipes {
		if recipe == nil {
			continue
		}
		aromas, err := json.Marshal(recipe.Aromas)
		if err != nil {
			return fmt.Errorf("failed to marshal recipe aromas: %w", err)
		}
		terms, err := json.Marshal(recipe.SearchTerms)
		if err != nil {
			return fmt.Errorf("failed to marshal search terms: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO recipes (id, name, author, category, rating, aromas, search_terms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			recipe.ID, recipe.Name, recipe.Author, recipe.Category, recipe.Rating,
			string(aromas), string(terms),
		)
		if err != nil {
			return fmt.Errorf("failed to insert recipe %d: %w", recipe.ID, err)
		}
	}

	return tx.Commit()
}

// LoadCatalog reads all stored records into a catalog for index loading.
func (s *Store) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	catalog := &models.Catalog{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, brand, category, percentage, rating, reviews, description, tags, search_terms
		 FROM aromas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query aromas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.AromaRecord
		var tags, terms sql.NullString
		var brand, category, description sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Name, &brand, &category, &rec.Percentage,
			&rec.Rating, &rec.Reviews, &description, &tags, &terms); err != nil {
			return nil, fmt.Errorf("failed to scan aroma: %w", err)
		}
		rec.Brand = brand.String
		rec.Category = category.String
		rec.Description = description.String
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &rec.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags for aroma %d: %w", rec.ID, err)
			}
		}
		if terms.Valid && terms.String != "" {
			if err := json.Unmarshal([]byte(terms.String), &rec.SearchTerms); err != nil {
				return nil, fmt.Errorf("failed to unmarshal search terms for aroma %d: %w", rec.ID, err)
			}
		}
		catalog.Aromas = append(catalog.Aromas, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aromas: %w", err)
	}

	recipeRows, err := s.db.QueryContext(ctx,
		`SELECT id, name, author, category, rating, aromas, search_terms
		 FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer recipeRows.Close()

	for recipeRows.Next() {
		var rec models.RecipeRecord
		var author, category sql.NullString
		var aromas, terms sql.NullString
		if err := recipeRows.Scan(&rec.ID, &rec.Name, &author, &category, &rec.Rating,
			&aromas, &terms); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		rec.Author = author.String
		rec.Category = category.String
		if aromas.Valid && aromas.String != "" {
			if err := json.Unmarshal([]byte(aromas.String), &rec.Aromas); err != nil {
				return nil, fmt.Errorf("failed to unmarshal aromas for recipe %d: %w", rec.ID, err)
			}
		}
		if terms.Valid && terms.String != "" {
			if err := json.Unmarshal([]byte(terms.String), &rec.SearchTerms); err != nil {
				return nil, fmt.Errorf("failed to unmarshal search terms for recipe %d: %w", rec.ID, err)
			}
		}
		catalog.Recipes = append(catalog.Recipes, &rec)
	}
	if err := recipeRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}

	return catalog, nil
}

// CountAromas returns the number of stored aromas.
func (s *Store) CountAromas(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM aromas").Scan(&count)
	return count, err
}

// CountRecipes returns the number of stored recipes.
func (s *Store) CountRecipes(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&count)
	return count, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
