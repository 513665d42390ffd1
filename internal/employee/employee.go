package employee

import "time"

// TrainingStatus tracks where an employee stands in the onboarding program.
type TrainingStatus string

const (
	StatusInTraining TrainingStatus = "in_training"
	StatusApproved   TrainingStatus = "approved"
	StatusFailed     TrainingStatus = "failed"
)

// Employee is a worker going through (or past) the training program. Leader
// and evaluator are the accounts responsible for the daily and weekly
// checklists of the onboarding schedule.
type Employee struct {
	ID                int64          `json:"id" gorm:"primaryKey"`
	Name              string         `json:"name"`
	Position          string         `json:"position"`
	Matricula         string         `json:"matricula" gorm:"uniqueIndex"`
	SectorID          int64          `json:"sector_id"`
	LeaderID          int64          `json:"leader_id"`
	EvaluatorID       int64          `json:"evaluator_id"`
	TrainingStartDate time.Time      `json:"training_start_date"`
	Status            TrainingStatus `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
