package checklist

import (
	"strconv"
	"strings"
	"time"
)

type CreateChecklistDTO struct {
	TemplateID  int64  `json:"template_id"`
	EmployeeID  *int64 `json:"employee_id,omitempty"`
	EquipmentID *int64 `json:"equipment_id,omitempty"`
	SectorID    int64  `json:"sector_id"`
	LeaderID    *int64 `json:"leader_id,omitempty"`
	EvaluatorID *int64 `json:"evaluator_id,omitempty"`
	FillDate    string `json:"fill_date,omitempty"`
}

func (d *CreateChecklistDTO) Validate() error {
	if d.TemplateID <= 0 {
		return ValidationError{Field: "template_id", Message: "template_id is required"}
	}
	if d.EmployeeID == nil && d.EquipmentID == nil {
		return ValidationError{Field: "employee_id", Message: "either employee_id or equipment_id is required"}
	}
	if d.SectorID <= 0 {
		return ValidationError{Field: "sector_id", Message: "sector_id is required"}
	}
	if d.FillDate != "" {
		if _, err := time.Parse("2006-01-02", d.FillDate); err != nil {
			return ValidationError{Field: "fill_date", Message: "fill_date must be YYYY-MM-DD"}
		}
	}
	return nil
}

func (d *CreateChecklistDTO) ParsedFillDate() time.Time {
	if d.FillDate == "" {
		return time.Now().Truncate(24 * time.Hour)
	}
	t, _ := time.Parse("2006-01-02", d.FillDate)
	return t
}

type AnswerDTO struct {
	ItemID  int64  `json:"item_id"`
	Value   string `json:"value"`
	Comment string `json:"comment,omitempty"`
}

type FillAnswersDTO struct {
	Answers []AnswerDTO `json:"answers"`
}

func (d *FillAnswersDTO) Validate() error {
	if len(d.Answers) == 0 {
		return ValidationError{Field: "answers", Message: "at least one answer is required"}
	}
	for _, a := range d.Answers {
		if a.ItemID <= 0 {
			return ValidationError{Field: "item_id", Message: "item_id is required on every answer"}
		}
		if strings.TrimSpace(a.Value) == "" {
			return ValidationError{Field: "value", Message: "value is required on every answer"}
		}
	}
	return nil
}

type SignDTO struct {
	Role  string `json:"role"`
	Image string `json:"image"`
}

func (d *SignDTO) Validate() error {
	if !SignatureRole(d.Role).Valid() {
		return ValidationError{Field: "role", Message: "role must be employee, leader, evaluator or coordinator"}
	}
	if strings.TrimSpace(d.Image) == "" {
		return ValidationError{Field: "image", Message: "image is required"}
	}
	return nil
}

type ValidateDTO struct {
	Outcome   string `json:"outcome"`
	Comment   string `json:"comment,omitempty"`
	Signature string `json:"signature,omitempty"`
}

func (d *ValidateDTO) Validate() error {
	switch ValidationOutcome(d.Outcome) {
	case OutcomeApproved, OutcomeRejected:
		return nil
	}
	return ValidationError{Field: "outcome", Message: "outcome must be approved or rejected"}
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// SignResponse reports the stored state of a signature slot. Warning is set
// when the payload could not be decoded and a null signature was stored.
type SignResponse struct {
	Role    string `json:"role"`
	Stored  bool   `json:"stored"`
	Warning string `json:"warning,omitempty"`
}

type ChecklistsResponse struct {
	Checklists []*Instance `json:"checklists"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}

// ParseScore parses the numeric answer of a scored item.
func ParseScore(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}
