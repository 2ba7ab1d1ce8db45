package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/fitscout/internal/catalog"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/internal/vector"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
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

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS brands (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		categories TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS size_charts (
		brand_id TEXT NOT NULL,
		category TEXT NOT NULL,
		kind TEXT NOT NULL,
		chart TEXT NOT NULL,
		PRIMARY KEY (brand_id, category)
	);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		brand_id TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		image TEXT,
		tags TEXT NOT NULL,
		embedding BLOB,
		position INTEGER NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);
	CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand_id);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveCatalog replaces brands, size charts and products in a single transaction.
func (s *SQLiteStorage) SaveCatalog(ctx context.Context, d *catalog.Data) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"brands", "size_charts", "products"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, b := range d.Brands {
		categories, err := json.Marshal(b.Categories)
		if err != nil {
			return fmt.Errorf("failed to marshal categories: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO brands (id, name, categories, position) VALUES (?, ?, ?, ?)`,
			b.ID, b.Name, string(categories), i,
		); err != nil {
			return fmt.Errorf("failed to insert brand %s: %w", b.ID, err)
		}
	}

	for brandID, byCategory := range d.SizeCharts {
		for category, chart := range byCategory {
			if chart == nil {
				continue
			}
			raw, err := json.Marshal(chart)
			if err != nil {
				return fmt.Errorf("failed to marshal size chart: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO size_charts (brand_id, category, kind, chart) VALUES (?, ?, ?, ?)`,
				brandID, category, string(chart.Kind), string(raw),
			); err != nil {
				return fmt.Errorf("failed to insert size chart %s/%s: %w", brandID, category, err)
			}
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (id, title, brand_id, category, price, image, tags, embedding, position, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i, p := range d.Products {
		tags, err := json.Marshal(p.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		var blob []byte
		if p.HasEmbedding() {
			blob = vector.Encode(p.Embedding)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Title, p.BrandID, p.Category, p.Price, p.Image, string(tags), blob, i, now); err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// LoadCatalog reads the whole catalog.
func (s *SQLiteStorage) LoadCatalog(ctx context.Context) (*catalog.Data, error) {
	d := &catalog.Data{SizeCharts: map[string]map[string]*models.SizeChart{}}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, categories FROM brands ORDER BY position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var b models.Brand
		var categories string
		if err := rows.Scan(&b.ID, &b.Name, &categories); err != nil {
			rows.Close()
			return nil, err
		}
		if err := json.Unmarshal([]byte(categories), &b.Categories); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to unmarshal categories of %s: %w", b.ID, err)
		}
		d.Brands = append(d.Brands, &b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT brand_id, category, chart FROM size_charts`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var brandID, category, raw string
		if err := rows.Scan(&brandID, &category, &raw); err != nil {
			rows.Close()
			return nil, err
		}
		var chart models.SizeChart
		if err := json.Unmarshal([]byte(raw), &chart); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to unmarshal size chart %s/%s: %w", brandID, category, err)
		}
		if d.SizeCharts[brandID] == nil {
			d.SizeCharts[brandID] = map[string]*models.SizeChart{}
		}
		d.SizeCharts[brandID][category] = &chart
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	d.Products, err = s.ListProducts(ctx, 0, -1)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListProducts returns products in import order. A negative limit returns all products.
func (s *SQLiteStorage) ListProducts(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, brand_id, category, price, image, tags, embedding
		 FROM products ORDER BY position LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		var image sql.NullString
		var tags string
		var blob []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.BrandID, &p.Category, &p.Price, &image, &tags, &blob); err != nil {
			return nil, err
		}
		p.Image = image.String
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags of %s: %w", p.ID, err)
		}
		if p.Embedding, err = vector.Decode(blob); err != nil {
			return nil, fmt.Errorf("product %s: %w", p.ID, err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// UpdateEmbeddings stores embeddings for existing products in a transaction.
// Unknown product ids are an error.
func (s *SQLiteStorage) UpdateEmbeddings(ctx context.Context, vectors map[string][]float32) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE products SET embedding = ?, updated_at = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for id, v := range vectors {
		result, err := stmt.ExecContext(ctx, vector.Encode(v), now, id)
		if err != nil {
			return fmt.Errorf("failed to update embedding of %s: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("product not found: %s", id)
		}
	}
	return tx.Commit()
}

// CountProducts returns the total number of products.
func (s *SQLiteStorage) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// CountEmbeddedProducts returns the number of products with a stored embedding.
func (s *SQLiteStorage) CountEmbeddedProducts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE embedding IS NOT NULL AND length(embedding) > 0`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
