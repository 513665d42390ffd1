package employee

import (
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/lslops/checklist-management/internal"
)

type RepositoryAPI interface {
	GetAll() ([]*Employee, error)
	GetByID(id int64) (*Employee, error)
	GetByMatricula(matricula string) (*Employee, error)
	Create(e *Employee) error
	Update(e *Employee) error
}

// OnboardingScheduler generates the training checklist schedule for a new
// employee. Implemented by the checklist service so employee creation does
// not depend on checklist internals.
type OnboardingScheduler interface {
	GenerateOnboardingSchedule(employeeID, leaderID, evaluatorID, createdBy, sectorID int64, startDate time.Time) (daily, weekly int, err error)
}

type Service struct {
	repo      RepositoryAPI
	scheduler OnboardingScheduler
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, scheduler OnboardingScheduler, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (s *Service) GetAll() ([]*Employee, error) {
	employees, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

func (s *Service) GetByID(id int64) (*Employee, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperrors.ErrEmployeeNotFound
	}
	return e, nil
}

// Create registers the employee and generates the full onboarding schedule
// of draft checklists against the training templates. Callers importing
// historical records can opt out of the schedule.
func (s *Service) Create(dto *CreateEmployeeDTO, createdBy int64) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	matricula := strings.TrimSpace(dto.Matricula)
	existing, err := s.repo.GetByMatricula(matricula)
	if err != nil {
		s.logger.Error("failed to check existing matricula", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("matricula already registered", apperrors.ErrCodeDuplicateMatricula)
	}

	startDate, _ := dto.ParsedStartDate()
	e := &Employee{
		Name:              strings.TrimSpace(dto.Name),
		Position:          dto.Position,
		Matricula:         matricula,
		SectorID:          dto.SectorID,
		LeaderID:          dto.LeaderID,
		EvaluatorID:       dto.EvaluatorID,
		TrainingStartDate: startDate,
		Status:            StatusInTraining,
	}
	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create employee", "error", err, "matricula", matricula)
		return nil, err
	}

	if !dto.SkipSchedule {
		daily, weekly, err := s.scheduler.GenerateOnboardingSchedule(e.ID, e.LeaderID, e.EvaluatorID, createdBy, e.SectorID, startDate)
		if err != nil {
			s.logger.Error("failed to generate onboarding schedule", "error", err, "employee_id", e.ID)
			return nil, err
		}
		s.logger.Info("onboarding schedule generated",
			"employee_id", e.ID,
			"daily_checklists", daily,
			"weekly_checklists", weekly)
	}

	s.logger.Info("employee created", "employee_id", e.ID, "sector_id", e.SectorID)
	return e, nil
}

func (s *Service) Update(id int64, dto *UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		e.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Position != nil {
		e.Position = *dto.Position
	}
	if dto.SectorID != nil {
		e.SectorID = *dto.SectorID
	}
	if dto.LeaderID != nil {
		e.LeaderID = *dto.LeaderID
	}
	if dto.EvaluatorID != nil {
		e.EvaluatorID = *dto.EvaluatorID
	}
	if dto.Status != nil {
		e.Status = TrainingStatus(*dto.Status)
	}

	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}
	return e, nil
}
