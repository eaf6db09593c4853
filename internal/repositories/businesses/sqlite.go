package businesses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookit/internal/common"
	"github.com/dmitrijs2005/bookit/internal/dbx"
	"github.com/dmitrijs2005/bookit/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type businessRow struct {
	category []byte
	reviews  []byte
	services []byte
}

func encodeEmbedded(b *models.Business) (*businessRow, error) {
	category, err := json.Marshal(b.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to encode category: %w", err)
	}
	reviews, err := json.Marshal(b.Reviews)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reviews: %w", err)
	}
	services, err := json.Marshal(b.Services)
	if err != nil {
		return nil, fmt.Errorf("failed to encode services: %w", err)
	}
	return &businessRow{category: category, reviews: reviews, services: services}, nil
}

// Add inserts a new business. Fails with common.ErrAlreadyExists when the
// id is already taken.
func (r *SQLiteRepository) Add(ctx context.Context, b *models.Business) error {
	row, err := encodeEmbedded(b)
	if err != nil {
		return err
	}

	query := `INSERT INTO businesses (id, name, category, address, city, rating, total_reviews, reviews, services)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		b.ID, b.Name, row.category, b.Address, b.City, b.Rating, b.TotalReviews, row.reviews, row.services)
	if err != nil {
		if strings.Contains(err.Error(), "constraint failed") {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert business: %w", err)
	}
	return nil
}

// Put upserts a business by id.
func (r *SQLiteRepository) Put(ctx context.Context, b *models.Business) error {
	row, err := encodeEmbedded(b)
	if err != nil {
		return err
	}

	query := `INSERT INTO businesses (id, name, category, address, city, rating, total_reviews, reviews, services)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				category = excluded.category,
				address = excluded.address,
				city = excluded.city,
				rating = excluded.rating,
				total_reviews = excluded.total_reviews,
				reviews = excluded.reviews,
				services = excluded.services`
	_, err = r.db.ExecContext(ctx, query,
		b.ID, b.Name, row.category, b.Address, b.City, b.Rating, b.TotalReviews, row.reviews, row.services)
	if err != nil {
		return fmt.Errorf("failed to upsert business: %w", err)
	}
	return nil
}

func scanBusiness(row interface{ Scan(dest ...any) error }) (*models.Business, error) {
	var b models.Business
	var category, reviews, services []byte
	if err := row.Scan(&b.ID, &b.Name, &category, &b.Address, &b.City, &b.Rating, &b.TotalReviews, &reviews, &services); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(category, &b.Category); err != nil {
		return nil, fmt.Errorf("failed to decode category: %w", err)
	}
	if err := json.Unmarshal(reviews, &b.Reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	if err := json.Unmarshal(services, &b.Services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return &b, nil
}

const selectColumns = `id, name, category, address, city, rating, total_reviews, reviews, services`

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Business, error) {
	b, err := scanBusiness(r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM businesses WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return b, nil
}

// GetAll lists all businesses in primary-key order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Business, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM businesses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select businesses: %w", err)
	}
	defer rows.Close()

	var result []models.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a business if present; deleting a missing id is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM businesses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	return nil
}

// Update merges the patch into the stored record, writes the result back and
// returns it. Supplied patch fields replace the stored value wholesale.
func (r *SQLiteRepository) Update(ctx context.Context, id string, patch models.BusinessPatch) (*models.Business, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*existing)
	if err := r.Put(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}
