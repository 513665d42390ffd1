package sector

import "strings"

type CreateSectorDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerID   *int64 `json:"manager_id,omitempty"`
}

func (d *CreateSectorDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

type UpdateSectorDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ManagerID   *int64  `json:"manager_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (d *UpdateSectorDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ValidationError{Field: "name", Message: "name cannot be empty"}
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

type SectorsResponse struct {
	Sectors []*Sector `json:"sectors"`
}
