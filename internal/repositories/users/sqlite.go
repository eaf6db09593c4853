package users

import (
	"context"
	"database/sql"
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

func isConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}

// Add inserts a new user. Fails with common.ErrAlreadyExists when the id or
// the email is already taken (the email goes through the unique index).
func (r *SQLiteRepository) Add(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, email, name, role, business_id, password, is_active)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, string(u.Role), u.BusinessID, u.Password, u.IsActive)
	if err != nil {
		if isConstraintViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Put upserts a user by id. Fails with common.ErrAlreadyExists when the
// write would claim an email already held by a different user.
func (r *SQLiteRepository) Put(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, email, name, role, business_id, password, is_active)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET email = excluded.email,
				name = excluded.name,
				role = excluded.role,
				business_id = excluded.business_id,
				password = excluded.password,
				is_active = excluded.is_active`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, string(u.Role), u.BusinessID, u.Password, u.IsActive)
	if err != nil {
		if isConstraintViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.BusinessID, &u.Password, &u.IsActive); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, name, role, business_id, password, is_active FROM users WHERE id = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetAll lists all users in primary-key order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, email, name, role, business_id, password, is_active FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a user if present; deleting a missing id is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GetByEmail resolves a user through the unique email index. The index is
// declared unique, so a second match is a data-integrity anomaly and is
// surfaced as an error rather than silently resolved.
func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, name, role, business_id, password, is_active FROM users WHERE email = ?`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to select user by email: %w", err)
	}
	defer rows.Close()

	var matches []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, common.ErrNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("users index by-email returned %d rows for %q", len(matches), email)
	}
}
