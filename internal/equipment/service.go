package equipment

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/lslops/checklist-management/internal"
)

type RepositoryAPI interface {
	GetAll() ([]*Equipment, error)
	GetByID(id int64) (*Equipment, error)
	GetByQRIdentifier(qr string) (*Equipment, error)
	Create(e *Equipment) error
	Update(e *Equipment) error
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

func (s *Service) GetAll() ([]*Equipment, error) {
	equipments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list equipments", "error", err)
		return nil, err
	}
	return equipments, nil
}

func (s *Service) GetByID(id int64) (*Equipment, error) {
	eq, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, apperrors.ErrEquipmentNotFound
	}
	return eq, nil
}

// GetByQRIdentifier resolves a scanned QR code to its unit.
func (s *Service) GetByQRIdentifier(qr string) (*Equipment, error) {
	eq, err := s.repo.GetByQRIdentifier(qr)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, apperrors.ErrEquipmentNotFound
	}
	return eq, nil
}

func (s *Service) Create(dto *CreateEquipmentDTO) (*Equipment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	eq := &Equipment{
		Name:         strings.TrimSpace(dto.Name),
		Location:     dto.Location,
		QRIdentifier: uuid.NewString(),
		SectorID:     dto.SectorID,
		TemplateID:   dto.TemplateID,
		IsActive:     true,
	}
	if err := s.repo.Create(eq); err != nil {
		s.logger.Error("failed to create equipment", "error", err, "name", eq.Name)
		return nil, err
	}

	s.logger.Info("equipment created", "equipment_id", eq.ID, "qr_identifier", eq.QRIdentifier)
	return eq, nil
}

func (s *Service) Update(id int64, dto *UpdateEquipmentDTO) (*Equipment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	eq, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		eq.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Location != nil {
		eq.Location = *dto.Location
	}
	if dto.SectorID != nil {
		eq.SectorID = *dto.SectorID
	}
	if dto.TemplateID != nil {
		eq.TemplateID = dto.TemplateID
	}
	if dto.IsActive != nil {
		eq.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(eq); err != nil {
		s.logger.Error("failed to update equipment", "error", err, "equipment_id", id)
		return nil, err
	}
	return eq, nil
}

func (s *Service) Deactivate(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate equipment", "error", err, "equipment_id", id)
		return err
	}
	s.logger.Info("equipment deactivated", "equipment_id", id)
	return nil
}
