package equipment

import "time"

// Equipment is a machine or asset that gets recurring checklists. Each unit
// carries a stable QR identifier so a scanned code resolves to the unit and
// its default template.
type Equipment struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	QRIdentifier string    `json:"qr_identifier" gorm:"column:qr_identifier;uniqueIndex"`
	SectorID     int64     `json:"sector_id"`
	TemplateID   *int64    `json:"template_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Equipment) TableName() string {
	return "equipments"
}
