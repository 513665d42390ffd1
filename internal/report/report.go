package report

import "time"

// Filter narrows a report query. Zero values mean "no constraint".
type Filter struct {
	InstanceID *int64
	From       *time.Time
	To         *time.Time
	SectorID   *int64
	TemplateID *int64
	Status     string
}

// Row is one flattened line of a report: one answer of one instance, joined
// with the names a reader needs. Exports enumerate rows, never raw ids.
type Row struct {
	InstanceID    int64      `json:"instance_id"`
	ExternalID    string     `json:"external_id"`
	TemplateName  string     `json:"template_name"`
	SectorName    string     `json:"sector_name"`
	EmployeeName  string     `json:"employee_name,omitempty"`
	EquipmentName string     `json:"equipment_name,omitempty"`
	FillDate      time.Time  `json:"fill_date"`
	DayNumber     *int       `json:"day_number,omitempty"`
	WeekNumber    *int       `json:"week_number,omitempty"`
	Status        string     `json:"status"`
	TotalScore    *float64   `json:"total_score,omitempty"`
	Question      string     `json:"question"`
	Value         string     `json:"value"`
	Comment       string     `json:"comment,omitempty"`
}

// Header is the metadata block of a single-instance export. It doubles as
// the summary line of the JSON report.
type Header struct {
	InstanceID    int64      `json:"instance_id"`
	ExternalID    string     `json:"external_id"`
	TemplateName  string     `json:"template_name"`
	TemplateKind  string     `json:"template_kind"`
	SectorName    string     `json:"sector_name"`
	EmployeeName  string     `json:"employee_name,omitempty"`
	EquipmentName string     `json:"equipment_name,omitempty"`
	LeaderName    string     `json:"leader_name,omitempty"`
	EvaluatorName string     `json:"evaluator_name,omitempty"`
	FillDate      time.Time  `json:"fill_date"`
	DayNumber     *int       `json:"day_number,omitempty"`
	WeekNumber    *int       `json:"week_number,omitempty"`
	Status        string     `json:"status"`
	TotalScore    *float64   `json:"total_score,omitempty"`
	Comment       string     `json:"coordinator_comment,omitempty"`
}

// SignatureImage pairs a signature slot with its flattened PNG bytes.
type SignatureImage struct {
	Label string
	PNG   []byte
}
