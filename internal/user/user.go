package user

import (
	"errors"
	"time"
)

// Role is the workflow role of an account. Roles are flat, there is no
// hierarchy table: each role maps to a fixed set of allowed actions.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCoordinator  Role = "coordinator"
	RoleManager      Role = "manager"
	RoleLeader       Role = "leader"
	RoleEvaluator    Role = "evaluator"
	RoleCollaborator Role = "collaborator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleManager, RoleLeader, RoleEvaluator, RoleCollaborator:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         Role      `json:"role"`
	SectorID     *int64    `json:"sector_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
