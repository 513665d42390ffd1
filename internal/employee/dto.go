package employee

import (
	"strings"
	"time"
)

type CreateEmployeeDTO struct {
	Name              string `json:"name"`
	Position          string `json:"position"`
	Matricula         string `json:"matricula"`
	SectorID          int64  `json:"sector_id"`
	LeaderID          int64  `json:"leader_id"`
	EvaluatorID       int64  `json:"evaluator_id"`
	TrainingStartDate string `json:"training_start_date"`
	SkipSchedule      bool   `json:"skip_schedule"`
}

func (d *CreateEmployeeDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(d.Matricula) == "" {
		return ValidationError{Field: "matricula", Message: "matricula is required"}
	}
	if d.SectorID <= 0 {
		return ValidationError{Field: "sector_id", Message: "sector_id is required"}
	}
	if d.LeaderID <= 0 {
		return ValidationError{Field: "leader_id", Message: "leader_id is required"}
	}
	if d.EvaluatorID <= 0 {
		return ValidationError{Field: "evaluator_id", Message: "evaluator_id is required"}
	}
	if _, err := d.ParsedStartDate(); err != nil {
		return ValidationError{Field: "training_start_date", Message: "training_start_date must be YYYY-MM-DD"}
	}
	return nil
}

func (d *CreateEmployeeDTO) ParsedStartDate() (time.Time, error) {
	return time.Parse("2006-01-02", d.TrainingStartDate)
}

type UpdateEmployeeDTO struct {
	Name        *string `json:"name,omitempty"`
	Position    *string `json:"position,omitempty"`
	SectorID    *int64  `json:"sector_id,omitempty"`
	LeaderID    *int64  `json:"leader_id,omitempty"`
	EvaluatorID *int64  `json:"evaluator_id,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (d *UpdateEmployeeDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if d.Status != nil {
		switch TrainingStatus(*d.Status) {
		case StatusInTraining, StatusApproved, StatusFailed:
		default:
			return ValidationError{Field: "status", Message: "unknown training status: " + *d.Status}
		}
	}
	return nil
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

type EmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}
