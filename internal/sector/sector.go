package sector

import "time"

// Sector is an operational area of the plant. Checklists, employees and
// equipment all hang off a sector, and non-compliance alerts are routed to
// its manager.
type Sector struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	ManagerID   *int64    `json:"manager_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Sector) TableName() string {
	return "sectors"
}

func (s *Sector) IsActiveSector() bool {
	return s.IsActive
}
