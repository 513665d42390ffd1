package sector

import (
	"log/slog"
	"strings"

	apperrors "github.com/lslops/checklist-management/internal"
)

type RepositoryAPI interface {
	GetAll() ([]*Sector, error)
	GetByID(id int64) (*Sector, error)
	GetByName(name string) (*Sector, error)
	Create(s *Sector) error
	Update(s *Sector) error
	Deactivate(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll() ([]*Sector, error) {
	sectors, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list sectors", "error", err)
		return nil, err
	}
	return sectors, nil
}

func (s *Service) GetByID(id int64) (*Sector, error) {
	sec, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		return nil, apperrors.ErrSectorNotFound
	}
	return sec, nil
}

func (s *Service) Create(dto *CreateSectorDTO) (*Sector, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	existing, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Error("failed to check existing sector", "error", err, "name", name)
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("sector name already exists", apperrors.ErrCodeDuplicateName)
	}

	sec := &Sector{
		Name:        name,
		Description: dto.Description,
		ManagerID:   dto.ManagerID,
		IsActive:    true,
	}
	if err := s.repo.Create(sec); err != nil {
		s.logger.Error("failed to create sector", "error", err, "name", name)
		return nil, err
	}

	s.logger.Info("sector created", "sector_id", sec.ID, "name", sec.Name)
	return sec, nil
}

func (s *Service) Update(id int64, dto *UpdateSectorDTO) (*Sector, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sec, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name != sec.Name {
			existing, err := s.repo.GetByName(name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperrors.NewConflictError("sector name already exists", apperrors.ErrCodeDuplicateName)
			}
			sec.Name = name
		}
	}
	if dto.Description != nil {
		sec.Description = *dto.Description
	}
	if dto.ManagerID != nil {
		sec.ManagerID = dto.ManagerID
	}
	if dto.IsActive != nil {
		sec.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(sec); err != nil {
		s.logger.Error("failed to update sector", "error", err, "sector_id", id)
		return nil, err
	}
	return sec, nil
}

// Deactivate soft-deletes a sector. Existing checklists keep their reference.
func (s *Service) Deactivate(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate sector", "error", err, "sector_id", id)
		return err
	}
	s.logger.Info("sector deactivated", "sector_id", id)
	return nil
}
