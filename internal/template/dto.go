package template

import "strings"

type CreateItemDTO struct {
	Question               string `json:"question"`
	Scored                 bool   `json:"scored"`
	RequiresCommentIfNotOK bool   `json:"requires_comment_if_not_ok"`
}

type CreateTemplateDTO struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Items []CreateItemDTO `json:"items"`
}

func (d *CreateTemplateDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if !Kind(d.Kind).Valid() {
		return ValidationError{Field: "kind", Message: "kind must be daily, weekly or free"}
	}
	if len(d.Items) == 0 {
		return ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for i, item := range d.Items {
		if strings.TrimSpace(item.Question) == "" {
			return ValidationError{Field: "items", Message: "item question cannot be empty", Index: i}
		}
	}
	return nil
}

type UpdateTemplateDTO struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (d *UpdateTemplateDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	return nil
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Index   int    `json:"index,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Message
}

type TemplatesResponse struct {
	Templates []*Template `json:"templates"`
}
