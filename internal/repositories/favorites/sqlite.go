package favorites

import (
	"context"
	"fmt"

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

// Put records (userID, businessID) as a favorite. Re-adding an existing
// pair leaves the row untouched.
func (r *SQLiteRepository) Put(ctx context.Context, userID, businessID string) error {
	query := `INSERT INTO favorites (user_id, business_id) VALUES (?, ?)
			ON CONFLICT(user_id, business_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, businessID)
	if err != nil {
		return fmt.Errorf("failed to put favorite: %w", err)
	}
	return nil
}

// Delete removes the pair if present; a missing pair is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, userID, businessID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND business_id = ?`, userID, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// GetByUser lists all favorite rows of a user.
func (r *SQLiteRepository) GetByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, business_id FROM favorites WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorites: %w", err)
	}
	defer rows.Close()

	var result []models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.UserID, &f.BusinessID); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Exists reports whether (userID, businessID) is a favorite.
func (r *SQLiteRepository) Exists(ctx context.Context, userID, businessID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND business_id = ?`,
		userID, businessID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}
