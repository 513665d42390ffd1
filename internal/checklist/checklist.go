package checklist

import (
	"time"

	"github.com/lslops/checklist-management/internal/template"
)

// Status is the lifecycle state of a checklist instance.
//
//	draft -> in_progress -> awaiting_validation -> approved | rejected
//	                     -> non_compliant       -> approved | rejected
//	                     -> approved | rejected  (scored weekly evaluations)
//
// approved and rejected are terminal.
type Status string

const (
	StatusDraft              Status = "draft"
	StatusInProgress         Status = "in_progress"
	StatusAwaitingValidation Status = "awaiting_validation"
	StatusNonCompliant       Status = "non_compliant"
	StatusApproved           Status = "approved"
	StatusRejected           Status = "rejected"
)

// Answer vocabulary for unscored items. Scored items on weekly evaluations
// carry a numeric value from 0 to 10 instead.
const (
	AnswerYes           = "yes"
	AnswerNo            = "no"
	AnswerPartial       = "partial"
	AnswerNotApplicable = "not_applicable"
)

// SignatureRole identifies which signature slot of an instance a data-URL
// payload belongs to.
type SignatureRole string

const (
	SignatureEmployee    SignatureRole = "employee"
	SignatureLeader      SignatureRole = "leader"
	SignatureEvaluator   SignatureRole = "evaluator"
	SignatureCoordinator SignatureRole = "coordinator"
)

func (r SignatureRole) Valid() bool {
	switch r {
	case SignatureEmployee, SignatureLeader, SignatureEvaluator, SignatureCoordinator:
		return true
	}
	return false
}

type Instance struct {
	ID                   int64     `json:"id" gorm:"primaryKey"`
	ExternalID           string    `json:"external_id" gorm:"uniqueIndex"`
	TemplateID           int64     `json:"template_id"`
	EmployeeID           *int64    `json:"employee_id,omitempty"`
	EquipmentID          *int64    `json:"equipment_id,omitempty"`
	SectorID             int64     `json:"sector_id"`
	LeaderID             int64     `json:"leader_id"`
	EvaluatorID          int64     `json:"evaluator_id"`
	CreatedBy            int64     `json:"created_by"`
	FillDate             time.Time `json:"fill_date"`
	DayNumber            *int      `json:"day_number,omitempty"`
	WeekNumber           *int      `json:"week_number,omitempty"`
	Status               Status    `json:"status"`
	TotalScore           *float64  `json:"total_score,omitempty"`
	CoordinatorComment   string    `json:"coordinator_comment,omitempty"`
	EmployeeSignature    []byte    `json:"-"`
	LeaderSignature      []byte    `json:"-"`
	EvaluatorSignature   []byte    `json:"-"`
	CoordinatorSignature []byte    `json:"-"`

	Answers        []Answer        `json:"answers,omitempty" gorm:"foreignKey:InstanceID"`
	ValidationLogs []ValidationLog `json:"validation_logs,omitempty" gorm:"foreignKey:InstanceID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Instance) TableName() string {
	return "checklist_instances"
}

type Answer struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	InstanceID int64     `json:"instance_id"`
	ItemID     int64     `json:"item_id"`
	Value      string    `json:"value"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Answer) TableName() string {
	return "checklist_answers"
}

// ValidationOutcome is what a validator decided about a completed checklist.
type ValidationOutcome string

const (
	OutcomeApproved ValidationOutcome = "approved"
	OutcomeRejected ValidationOutcome = "rejected"
)

type ValidationLog struct {
	ID          int64             `json:"id" gorm:"primaryKey"`
	InstanceID  int64             `json:"instance_id"`
	ValidatorID int64             `json:"validator_id"`
	Outcome     ValidationOutcome `json:"outcome"`
	Comment     string            `json:"comment,omitempty"`
	Signature   []byte            `json:"-"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (ValidationLog) TableName() string {
	return "validation_logs"
}

func (i *Instance) CanFill() bool {
	return i.Status == StatusDraft || i.Status == StatusInProgress
}

func (i *Instance) CanComplete() bool {
	return i.Status == StatusInProgress
}

func (i *Instance) CanValidate() bool {
	return i.Status == StatusAwaitingValidation || i.Status == StatusNonCompliant
}

func (i *Instance) IsTerminal() bool {
	return i.Status == StatusApproved || i.Status == StatusRejected
}

// HasFillSignatures reports whether the signatures required to close the
// filling stage are present.
func (i *Instance) HasFillSignatures() bool {
	return len(i.EmployeeSignature) > 0 && len(i.LeaderSignature) > 0
}

func (i *Instance) SetSignature(role SignatureRole, data []byte) {
	switch role {
	case SignatureEmployee:
		i.EmployeeSignature = data
	case SignatureLeader:
		i.LeaderSignature = data
	case SignatureEvaluator:
		i.EvaluatorSignature = data
	case SignatureCoordinator:
		i.CoordinatorSignature = data
	}
}

func (i *Instance) Signature(role SignatureRole) []byte {
	switch role {
	case SignatureEmployee:
		return i.EmployeeSignature
	case SignatureLeader:
		return i.LeaderSignature
	case SignatureEvaluator:
		return i.EvaluatorSignature
	case SignatureCoordinator:
		return i.CoordinatorSignature
	}
	return nil
}

// ValidAnswerValue checks a submitted value against the item it answers.
func ValidAnswerValue(item *template.Item, value string) bool {
	if item.Scored {
		score, err := ParseScore(value)
		return err == nil && score >= 0 && score <= 10
	}
	switch value {
	case AnswerYes, AnswerNo, AnswerPartial, AnswerNotApplicable:
		return true
	}
	return false
}
