package bookings

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

// Add inserts a new booking. Fails with common.ErrAlreadyExists when the id
// is already taken.
func (r *SQLiteRepository) Add(ctx context.Context, b *models.Booking) error {
	query := `INSERT INTO bookings (id, business_id, user_id, date, time, status)
			VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.BusinessID, b.UserID, b.Date, b.Time, string(b.Status))
	if err != nil {
		if strings.Contains(err.Error(), "constraint failed") {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func scanBooking(row interface{ Scan(dest ...any) error }) (*models.Booking, error) {
	var b models.Booking
	var status string
	if err := row.Scan(&b.ID, &b.BusinessID, &b.UserID, &b.Date, &b.Time, &status); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatus(status)
	return &b, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT id, business_id, user_id, date, time, status FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) selectBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select bookings: %w", err)
	}
	defer rows.Close()

	var result []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
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

// GetByBusiness lists all bookings of a business in primary-key order.
func (r *SQLiteRepository) GetByBusiness(ctx context.Context, businessID string) ([]models.Booking, error) {
	return r.selectBookings(ctx,
		`SELECT id, business_id, user_id, date, time, status FROM bookings WHERE business_id = ? ORDER BY id`,
		businessID)
}

// GetByUser lists all bookings of a user in primary-key order.
func (r *SQLiteRepository) GetByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.selectBookings(ctx,
		`SELECT id, business_id, user_id, date, time, status FROM bookings WHERE user_id = ? ORDER BY id`,
		userID)
}

// UpdateStatus moves a pending booking to the given status. The transition
// guard lives in the statement itself: a missing row or one already in a
// terminal status matches nothing, and both cases are silent no-ops.
func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	_, err := r.db.ExecContext(ctx, query, string(status), id, string(models.BookingStatusPending))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}
