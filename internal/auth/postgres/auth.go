package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/auth"
	"github.com/lslops/checklist-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = ?`

	row := r.db.Raw(query, email, true).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("user not found")
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetUser(userID int64) (*auth.User, error) {
	var u auth.User
	var role string
	query := `SELECT id, name, email, role, sector_id FROM users WHERE id = ? AND is_active = ?`

	row := r.db.Raw(query, userID, true).Row()
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Sector); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	u.Role = user.Role(role)
	return &u, nil
}
