package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "travelnest/internal/config"
	intdb "travelnest/internal/db"
	"travelnest/internal/domain"
	"travelnest/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts an admin; a taken username surfaces as AlreadyExistsError.
func (r AdminRepository) Create(ctx context.Context, username, passwordHash string, createdAt time.Time) (models.Admin, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, createdAt,
	)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return models.Admin{}, domain.AlreadyExistsError{Resource: "admin", Msg: "admin already exists", Err: err}
		}
		return models.Admin{}, fmt.Errorf("insert admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Admin{}, fmt.Errorf("insert admin: %w", err)
	}
	return models.Admin{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: createdAt}, nil
}

func (r AdminRepository) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	err := r.db().QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM admins WHERE username = ? LIMIT 1`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, domain.NotFoundError{Resource: "admin", Err: err}
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

// Exists reports whether username is taken.
func (r AdminRepository) Exists(ctx context.Context, username string) (bool, error) {
	var n int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM admins WHERE username = ?`, username).Scan(&n); err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return n > 0, nil
}
