package equipment

import "strings"

type CreateEquipmentDTO struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	SectorID   int64  `json:"sector_id"`
	TemplateID *int64 `json:"template_id,omitempty"`
}

func (d *CreateEquipmentDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if d.SectorID <= 0 {
		return ValidationError{Field: "sector_id", Message: "sector_id is required"}
	}
	return nil
}

type UpdateEquipmentDTO struct {
	Name       *string `json:"name,omitempty"`
	Location   *string `json:"location,omitempty"`
	SectorID   *int64  `json:"sector_id,omitempty"`
	TemplateID *int64  `json:"template_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (d *UpdateEquipmentDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if d.SectorID != nil && *d.SectorID <= 0 {
		return ValidationError{Field: "sector_id", Message: "sector_id must be positive"}
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

type EquipmentsResponse struct {
	Equipments []*Equipment `json:"equipments"`
}
