// Package session holds the in-memory domain state of the application:
// current user, loaded businesses and bookings, and the in-progress booking
// scratch fields. All mutation goes through Manager methods, which call the
// repositories and mirror session-critical data into a snapshot file for
// reload survival; nothing else may write the state (single-writer by
// encapsulation).
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookit/internal/common"
	"github.com/dmitrijs2005/bookit/internal/config"
	"github.com/dmitrijs2005/bookit/internal/credentials"
	"github.com/dmitrijs2005/bookit/internal/dbx"
	"github.com/dmitrijs2005/bookit/internal/logging"
	"github.com/dmitrijs2005/bookit/internal/models"
	"github.com/dmitrijs2005/bookit/internal/repositories/bookings"
	"github.com/dmitrijs2005/bookit/internal/repositories/businesses"
	"github.com/dmitrijs2005/bookit/internal/repositories/favorites"
	"github.com/dmitrijs2005/bookit/internal/repositories/users"
	"github.com/dmitrijs2005/bookit/internal/schedule"
	"github.com/dmitrijs2005/bookit/internal/store"
	"github.com/google/uuid"
)

// NewUser is the input for admin user provisioning.
type NewUser struct {
	Email      string
	Name       string
	Role       models.Role
	BusinessID string
	Password   string
}

// BookingRequest is the input for creating a booking. Time must be a value
// from the availability grid; the layer does not validate off-grid strings.
type BookingRequest struct {
	BusinessID string
	UserID     string
	Date       string
	Time       string
}

// Manager is the session/domain-state owner handed to the presentation
// layer. It is safe for concurrent use; the store open is shared and the
// state is mutex-guarded.
type Manager struct {
	cfg      *config.Config
	log      logging.Logger
	store    *store.Store
	limiter  *credentials.AttemptLimiter
	snapshot *snapshotStore
	grid     schedule.Grid

	mu            sync.RWMutex
	authenticated bool
	user          *models.User
	token         string
	users         []models.User
	businessList  []models.Business
	bookingList   []models.Booking
	selectedDate  string
	selectedTime  string
}

// NewManager wires a Manager from its configuration, logger and store.
func NewManager(cfg *config.Config, log logging.Logger, st *store.Store) *Manager {
	return &Manager{
		cfg:      cfg,
		log:      log,
		store:    st,
		limiter:  credentials.NewAttemptLimiter(cfg.MaxLoginAttempts, cfg.LockoutDuration),
		snapshot: newSnapshotStore(cfg.SnapshotPath, log),
		grid: schedule.Grid{
			OpeningHour:     cfg.OpeningHour,
			ClosingHour:     cfg.ClosingHour,
			IntervalMinutes: cfg.SlotIntervalMinutes,
		},
	}
}

// storeFailure logs the underlying cause at the boundary and returns the
// error kind exposed to callers; the presentation layer decides messaging.
func (m *Manager) storeFailure(ctx context.Context, op string, err error) error {
	m.log.Error(ctx, "store operation failed", "op", op, "error", err)
	return common.ErrStoreUnavailable
}

func (m *Manager) database(ctx context.Context) (*sql.DB, error) {
	db, err := m.store.DB(ctx)
	if err != nil {
		return nil, m.storeFailure(ctx, "open", err)
	}
	return db, nil
}

func (m *Manager) userRepo(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *Manager) businessRepo(db dbx.DBTX) businesses.Repository {
	return businesses.NewSQLiteRepository(db)
}

func (m *Manager) bookingRepo(db dbx.DBTX) bookings.Repository {
	return bookings.NewSQLiteRepository(db)
}

func (m *Manager) favoriteRepo(db dbx.DBTX) favorites.Repository {
	return favorites.NewSQLiteRepository(db)
}

// ---------- state accessors ----------

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// CurrentUser returns a copy of the signed-in user (credential stripped),
// or nil when logged out.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Users returns a copy of the loaded user list.
func (m *Manager) Users() []models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, len(m.users))
	copy(out, m.users)
	return out
}

// Businesses returns a copy of the loaded business list.
func (m *Manager) Businesses() []models.Business {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Business, len(m.businessList))
	copy(out, m.businessList)
	return out
}

// Bookings returns a copy of the bookings loaded for the active view.
func (m *Manager) Bookings() []models.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Booking, len(m.bookingList))
	copy(out, m.bookingList)
	return out
}

// SelectedDate returns the booking-flow scratch date ("" when unset).
func (m *Manager) SelectedDate() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectedDate
}

// SelectedTime returns the booking-flow scratch time ("" when unset).
func (m *Manager) SelectedTime() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectedTime
}

// SelectDate sets the scratch date for the in-progress booking flow.
// Selecting a date always clears any selected time, which is what keeps
// the date-before-time ordering.
func (m *Manager) SelectDate(date string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectedDate = date
	m.selectedTime = ""
}

// SelectTime sets the scratch time for the in-progress booking flow.
func (m *Manager) SelectTime(time string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectedTime = time
}

// ---------- snapshot ----------

// persistSnapshot mirrors the sanitized user list and current session into
// the snapshot file. Best-effort: failures are logged inside the snapshot
// store and never fail the mutation.
func (m *Manager) persistSnapshot(ctx context.Context) {
	m.mu.RLock()
	data := &snapshotData{
		Users: make([]models.User, 0, len(m.users)),
		Token: m.token,
	}
	for _, u := range m.users {
		data.Users = append(data.Users, u.Sanitized())
	}
	if m.user != nil {
		u := *m.user
		data.CurrentUser = &u
	}
	m.mu.RUnlock()

	m.snapshot.save(ctx, data)
}

// Restore rebuilds the session from the snapshot file after a restart. The
// snapshot is a cache: the restore token is validated first, the bound user
// is re-read from the durable store (which stays authoritative), and the
// snapshot is rewritten from what the store returned. An absent, tampered
// or expired snapshot restores to a logged-out session; only store failures
// are reported.
func (m *Manager) Restore(ctx context.Context) error {
	data, err := m.snapshot.load()
	if err != nil {
		m.log.Warn(ctx, "discarding unreadable snapshot", "error", err)
		m.snapshot.clear(ctx)
		return nil
	}
	if data == nil || data.Token == "" {
		return nil
	}

	userID, err := userIDFromToken(data.Token, []byte(m.cfg.SessionSecret))
	if err != nil {
		m.log.Warn(ctx, "discarding snapshot with invalid session token", "error", err)
		m.snapshot.clear(ctx)
		return nil
	}

	db, err := m.database(ctx)
	if err != nil {
		return err
	}
	repo := m.userRepo(db)

	u, err := repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			m.snapshot.clear(ctx)
			return nil
		}
		return m.storeFailure(ctx, "restore session user", err)
	}
	if !u.IsActive {
		m.snapshot.clear(ctx)
		return nil
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		return m.storeFailure(ctx, "restore users", err)
	}

	current := u.Sanitized()
	m.mu.Lock()
	m.authenticated = true
	m.user = &current
	m.token = data.Token
	m.users = all
	m.mu.Unlock()

	m.persistSnapshot(ctx)
	return nil
}

// ---------- session operations ----------

// Login authenticates email/password and binds the session to the matching
// user. The fixed bootstrap credential pairs resolve first, to the stored
// admin-role and professional-role records; everything else goes through
// the email index. roleFilter, when non-nil, restricts which accounts may
// sign in through this call site.
func (m *Manager) Login(ctx context.Context, email, password string, roleFilter *models.Role) (*models.User, error) {
	if !m.limiter.Check(email) {
		return nil, common.ErrTooManyLoginAttempts
	}

	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}
	repo := m.userRepo(db)

	all, err := repo.GetAll(ctx)
	if err != nil {
		return nil, m.storeFailure(ctx, "load users", err)
	}

	// Fixed bootstrap pairs bind to the stored role records directly.
	if email == m.cfg.AdminEmail && password == m.cfg.AdminPassword {
		if u := firstWithRole(all, models.RoleAdmin); u != nil {
			return m.bindSession(ctx, email, u, all)
		}
	}
	if email == m.cfg.ProfessionalEmail && password == m.cfg.ProfessionalPassword {
		if u := firstWithRole(all, models.RoleProfessional); u != nil {
			return m.bindSession(ctx, email, u, all)
		}
	}

	u, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, m.storeFailure(ctx, "lookup user", err)
	}

	if roleFilter != nil && u.Role != *roleFilter {
		return nil, common.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, common.ErrInactiveAccount
	}
	if !credentials.Verify(password, u.Password) {
		return nil, common.ErrInvalidCredentials
	}

	return m.bindSession(ctx, email, u, all)
}

func firstWithRole(all []models.User, role models.Role) *models.User {
	for i := range all {
		if all[i].Role == role {
			return &all[i]
		}
	}
	return nil
}

func (m *Manager) bindSession(ctx context.Context, email string, u *models.User, all []models.User) (*models.User, error) {
	token, err := generateToken(u.ID, []byte(m.cfg.SessionSecret), m.cfg.SessionTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	m.limiter.Reset(email)

	current := u.Sanitized()
	m.mu.Lock()
	m.authenticated = true
	m.user = &current
	m.token = token
	m.users = all
	m.mu.Unlock()

	m.persistSnapshot(ctx)

	out := current
	return &out, nil
}

// Register creates a new account with role "user", active by default, and
// signs it in. The email must not already be present (case-sensitive match,
// enforced by the unique index).
func (m *Manager) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}
	repo := m.userRepo(db)

	u := &models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Role:     models.RoleUser,
		Password: credentials.Hash(password),
		IsActive: true,
	}

	if err := repo.Add(ctx, u); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrEmailAlreadyExists
		}
		return nil, m.storeFailure(ctx, "create user", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		return nil, m.storeFailure(ctx, "load users", err)
	}

	return m.bindSession(ctx, email, u, all)
}

// Logout clears the authenticated session and the snapshot file. The loaded
// user list stays available to an admin view that may still be open.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.authenticated = false
	m.user = nil
	m.token = ""
	m.mu.Unlock()

	m.snapshot.clear(ctx)
}

// AddUser provisions a user record (admin path). The password, when given,
// goes through key derivation; the returned user carries no credential.
func (m *Manager) AddUser(ctx context.Context, data NewUser) (*models.User, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}
	repo := m.userRepo(db)

	role := data.Role
	if role == "" {
		role = models.RoleUser
	}

	u := &models.User{
		ID:         uuid.NewString(),
		Email:      data.Email,
		Name:       data.Name,
		Role:       role,
		BusinessID: data.BusinessID,
		IsActive:   true,
	}
	if data.Password != "" {
		u.Password = credentials.Hash(data.Password)
	}

	if err := repo.Add(ctx, u); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrEmailAlreadyExists
		}
		return nil, m.storeFailure(ctx, "add user", err)
	}

	if err := m.reloadUsers(ctx, repo); err != nil {
		return nil, err
	}
	m.persistSnapshot(ctx)

	out := u.Sanitized()
	return &out, nil
}

// UpdateUser merges a patch into the stored user. When the patch carries
// CurrentPassword it must verify against the stored credential before a new
// Password is accepted; a new Password is re-derived before the write. A
// patched email that another user already holds fails with
// common.ErrEmailAlreadyExists.
func (m *Manager) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}
	repo := m.userRepo(db)

	existing, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, m.storeFailure(ctx, "lookup user", err)
	}

	if patch.CurrentPassword != nil && existing.Password != "" {
		if !credentials.Verify(*patch.CurrentPassword, existing.Password) {
			return nil, common.ErrIncorrectCurrentPassword
		}
	}

	if patch.Password != nil {
		hashed := credentials.Hash(*patch.Password)
		patch.Password = &hashed
	}

	merged := patch.Apply(*existing)
	if err := repo.Put(ctx, &merged); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrEmailAlreadyExists
		}
		return nil, m.storeFailure(ctx, "update user", err)
	}

	if err := m.reloadUsers(ctx, repo); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.user != nil && m.user.ID == id {
		current := merged.Sanitized()
		m.user = &current
	}
	m.mu.Unlock()

	m.persistSnapshot(ctx)

	out := merged.Sanitized()
	return &out, nil
}

// DeleteUser removes a user record. Deleting the signed-in user also clears
// the authenticated session; any other deletion leaves it untouched.
func (m *Manager) DeleteUser(ctx context.Context, id string) error {
	db, err := m.database(ctx)
	if err != nil {
		return err
	}
	repo := m.userRepo(db)

	if err := repo.Delete(ctx, id); err != nil {
		return m.storeFailure(ctx, "delete user", err)
	}

	if err := m.reloadUsers(ctx, repo); err != nil {
		return err
	}

	m.mu.Lock()
	deletedCurrent := m.user != nil && m.user.ID == id
	if deletedCurrent {
		m.authenticated = false
		m.user = nil
		m.token = ""
	}
	m.mu.Unlock()

	if deletedCurrent {
		m.snapshot.clear(ctx)
	} else {
		m.persistSnapshot(ctx)
	}
	return nil
}

func (m *Manager) reloadUsers(ctx context.Context, repo users.Repository) error {
	all, err := repo.GetAll(ctx)
	if err != nil {
		return m.storeFailure(ctx, "load users", err)
	}
	m.mu.Lock()
	m.users = all
	m.mu.Unlock()
	return nil
}

// ---------- business operations ----------

// LoadBusinesses loads the full business list into the session state.
func (m *Manager) LoadBusinesses(ctx context.Context) ([]models.Business, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}

	all, err := m.businessRepo(db).GetAll(ctx)
	if err != nil {
		return nil, m.storeFailure(ctx, "load businesses", err)
	}

	m.mu.Lock()
	m.businessList = all
	m.mu.Unlock()
	return all, nil
}

// CreateBusiness creates a listing from a partial: fresh id, zero rating
// and review count, empty review and service sequences, patch fields on top.
func (m *Manager) CreateBusiness(ctx context.Context, patch models.BusinessPatch) (*models.Business, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}

	b := patch.Apply(models.Business{
		ID:       uuid.NewString(),
		Reviews:  []models.Review{},
		Services: []models.Service{},
	})
	b.Rating = 0
	b.TotalReviews = 0

	if err := m.businessRepo(db).Put(ctx, &b); err != nil {
		return nil, m.storeFailure(ctx, "create business", err)
	}

	m.mu.Lock()
	m.businessList = append(m.businessList, b)
	m.mu.Unlock()
	return &b, nil
}

// UpdateBusiness merges a patch into the stored listing and returns the
// merged record as the new source of truth.
func (m *Manager) UpdateBusiness(ctx context.Context, id string, patch models.BusinessPatch) (*models.Business, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}

	merged, err := m.businessRepo(db).Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrBusinessNotFound
		}
		return nil, m.storeFailure(ctx, "update business", err)
	}

	m.mu.Lock()
	for i := range m.businessList {
		if m.businessList[i].ID == id {
			m.businessList[i] = *merged
			break
		}
	}
	m.mu.Unlock()
	return merged, nil
}

// DeleteBusiness removes a listing. A dangling professional.BusinessID is
// tolerated; referential integrity is out of scope.
func (m *Manager) DeleteBusiness(ctx context.Context, id string) error {
	db, err := m.database(ctx)
	if err != nil {
		return err
	}

	if err := m.businessRepo(db).Delete(ctx, id); err != nil {
		return m.storeFailure(ctx, "delete business", err)
	}

	m.mu.Lock()
	kept := m.businessList[:0]
	for _, b := range m.businessList {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	m.businessList = kept
	m.mu.Unlock()
	return nil
}

// ---------- booking operations ----------

// LoadBusinessBookings loads all bookings of a business into the session
// state for the business-owner view.
func (m *Manager) LoadBusinessBookings(ctx context.Context, businessID string) ([]models.Booking, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}

	list, err := m.bookingRepo(db).GetByBusiness(ctx, businessID)
	if err != nil {
		return nil, m.storeFailure(ctx, "load business bookings", err)
	}

	m.mu.Lock()
	m.bookingList = list
	m.mu.Unlock()
	return list, nil
}

// LoadUserBookings loads all bookings of a user into the session state for
// the my-bookings view.
func (m *Manager) LoadUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}

	list, err := m.bookingRepo(db).GetByUser(ctx, userID)
	if err != nil {
		return nil, m.storeFailure(ctx, "load user bookings", err)
	}

	m.mu.Lock()
	m.bookingList = list
	m.mu.Unlock()
	return list, nil
}

// CreateBooking persists a new booking in the pending state and clears the
// booking-flow scratch fields.
func (m *Manager) CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:         uuid.NewString(),
		BusinessID: req.BusinessID,
		UserID:     req.UserID,
		Date:       req.Date,
		Time:       req.Time,
		Status:     models.BookingStatusPending,
	}

	if err := m.bookingRepo(db).Add(ctx, b); err != nil {
		return nil, m.storeFailure(ctx, "create booking", err)
	}

	m.mu.Lock()
	m.bookingList = append(m.bookingList, *b)
	m.selectedDate = ""
	m.selectedTime = ""
	m.mu.Unlock()
	return b, nil
}

// UpdateBookingStatus moves a pending booking to confirmed or cancelled.
// A booking that no longer exists, or that already reached a terminal
// status, is a silent no-op.
func (m *Manager) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	if !status.IsTerminal() {
		return fmt.Errorf("booking status can only move to %s or %s",
			models.BookingStatusConfirmed, models.BookingStatusCancelled)
	}

	db, err := m.database(ctx)
	if err != nil {
		return err
	}

	if err := m.bookingRepo(db).UpdateStatus(ctx, id, status); err != nil {
		return m.storeFailure(ctx, "update booking status", err)
	}

	m.mu.Lock()
	for i := range m.bookingList {
		if m.bookingList[i].ID == id && m.bookingList[i].Status == models.BookingStatusPending {
			m.bookingList[i].Status = status
		}
	}
	m.mu.Unlock()
	return nil
}

// GetAvailableSlots derives the day's slot grid for a business from the
// bookings currently loaded in the session state. The engine itself drops
// cancelled bookings, so callers need not pre-filter.
func (m *Manager) GetAvailableSlots(date, businessID string) []models.TimeSlot {
	m.mu.RLock()
	var relevant []models.Booking
	for _, b := range m.bookingList {
		if b.BusinessID == businessID {
			relevant = append(relevant, b)
		}
	}
	m.mu.RUnlock()

	return m.grid.GenerateSlots(date, relevant)
}

// ---------- favorites operations ----------

// AddToFavorites marks a business as a favorite of the user. Idempotent.
func (m *Manager) AddToFavorites(ctx context.Context, userID, businessID string) error {
	db, err := m.database(ctx)
	if err != nil {
		return err
	}
	if err := m.favoriteRepo(db).Put(ctx, userID, businessID); err != nil {
		return m.storeFailure(ctx, "add favorite", err)
	}
	return nil
}

// RemoveFromFavorites unmarks a favorite. Removing a non-existent favorite
// is a no-op, not an error.
func (m *Manager) RemoveFromFavorites(ctx context.Context, userID, businessID string) error {
	db, err := m.database(ctx)
	if err != nil {
		return err
	}
	if err := m.favoriteRepo(db).Delete(ctx, userID, businessID); err != nil {
		return m.storeFailure(ctx, "remove favorite", err)
	}
	return nil
}

// GetFavorites resolves the user's favorites to business records: fetch the
// favorite rows, fetch all businesses, return the intersection preserving
// business iteration order (not favorite insertion order).
func (m *Manager) GetFavorites(ctx context.Context, userID string) ([]models.Business, error) {
	db, err := m.database(ctx)
	if err != nil {
		return nil, err
	}

	favs, err := m.favoriteRepo(db).GetByUser(ctx, userID)
	if err != nil {
		return nil, m.storeFailure(ctx, "load favorites", err)
	}

	wanted := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		wanted[f.BusinessID] = struct{}{}
	}

	all, err := m.businessRepo(db).GetAll(ctx)
	if err != nil {
		return nil, m.storeFailure(ctx, "load businesses", err)
	}

	var result []models.Business
	for _, b := range all {
		if _, ok := wanted[b.ID]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

// IsFavorite reports whether the business is a favorite of the user.
func (m *Manager) IsFavorite(ctx context.Context, userID, businessID string) (bool, error) {
	db, err := m.database(ctx)
	if err != nil {
		return false, err
	}

	ok, err := m.favoriteRepo(db).Exists(ctx, userID, businessID)
	if err != nil {
		return false, m.storeFailure(ctx, "check favorite", err)
	}
	return ok, nil
}
