package user

import (
	"log/slog"
	"strings"

	apperrors "github.com/lslops/checklist-management/internal"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetAll() ([]*User, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Create(u *User) error
	Update(u *User) error
	Deactivate(id int64) error
}

type Service struct {
	repo       RepositoryAPI
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) GetAll() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) Create(dto *CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		s.logger.Error("failed to check existing email", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email already registered", apperrors.ErrCodeDuplicateName)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &User{
		Name:         strings.TrimSpace(dto.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         Role(dto.Role),
		SectorID:     dto.SectorID,
		IsActive:     true,
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) Update(id int64, dto *UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		u.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Role != nil {
		u.Role = Role(*dto.Role)
	}
	if dto.SectorID != nil {
		u.SectorID = dto.SectorID
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}
	return u, nil
}

// Deactivate soft-deletes an account. Historical checklists keep referencing it.
func (s *Service) Deactivate(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deactivated", "user_id", id)
	return nil
}
