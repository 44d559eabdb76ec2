package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/storeline/storefront/internal/domain"
)

// Credentials holds the connection settings for the catalog database.
type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// Repository is the Postgres-backed catalog source. The in-memory store is
// seeded from it at startup, and committed stock levels are written back
// after a completed checkout.
type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "catalog_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

// LoadProducts reads the full catalog, oldest rows first.
func (r *Repository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, name, price, stock, expires_at, shippable, weight_grams
	          FROM products ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var expiresAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &expiresAt, &p.Shippable, &p.WeightGrams); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			p.ExpiresAt = &t
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// SeedProducts upserts the given products. Stock is only written for new
// rows so a restart does not undo sales already persisted.
func (r *Repository) SeedProducts(ctx context.Context, products []domain.Product) error {
	query := `INSERT INTO products (id, name, price, stock, expires_at, shippable, weight_grams, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	          ON CONFLICT (id) DO UPDATE SET
	              name = EXCLUDED.name,
	              price = EXCLUDED.price,
	              expires_at = EXCLUDED.expires_at,
	              shippable = EXCLUDED.shippable,
	              weight_grams = EXCLUDED.weight_grams,
	              updated_at = NOW()`

	for _, p := range products {
		var expiresAt sql.NullTime
		if p.ExpiresAt != nil {
			expiresAt = sql.NullTime{Time: *p.ExpiresAt, Valid: true}
		}
		_, err := r.db.ExecContext(ctx, query,
			p.ID, p.Name, p.Price, p.Stock, expiresAt, p.Shippable, p.WeightGrams)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.ID, err)
		}
	}
	return nil
}

// SaveStockLevels persists committed stock in one transaction.
func (r *Repository) SaveStockLevels(ctx context.Context, levels map[string]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin stock update: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE products SET stock = $2, updated_at = NOW() WHERE id = $1`
	for id, stock := range levels {
		if _, err := tx.ExecContext(ctx, query, id, stock); err != nil {
			return fmt.Errorf("update stock for %q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stock update: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
