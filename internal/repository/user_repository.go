package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/model"
    "github.com/iliyamo/cinema-ticket-booking/internal/utils"
)

// UserRepo provides data access to the users table.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, email, password_hash, role, is_active, created_at, updated_at`

// Create inserts a user with a bcrypt-hashed password and returns the
// new id.  The email is normalised to lower case; a duplicate yields
// ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, bcryptCost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, bcryptCost)
    if err != nil {
        return 0, err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)`,
        email, hash, role)
    if err != nil {
        if isDuplicateEntry(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalised email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
    return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg interface{}) (*model.User, error) {
    var u model.User
    err := r.db.QueryRowContext(ctx, query, arg).
        Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrUserNotFound
    }
    if err != nil {
        return nil, err
    }
    return &u, nil
}
