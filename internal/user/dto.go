package user

import "strings"

type CreateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	SectorID *int64 `json:"sector_id,omitempty"`
}

func (d *CreateUserDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(d.Email) == "" || !strings.Contains(d.Email, "@") {
		return ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	if !Role(d.Role).Valid() {
		return ValidationError{Field: "role", Message: "unknown role: " + d.Role}
	}
	return nil
}

type UpdateUserDTO struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	SectorID *int64  `json:"sector_id,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (d *UpdateUserDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if d.Role != nil && !Role(*d.Role).Valid() {
		return ValidationError{Field: "role", Message: "unknown role: " + *d.Role}
	}
	if d.Password != nil && len(*d.Password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
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

type UsersResponse struct {
	Users []*User `json:"users"`
}
