package template

import "time"

// Kind determines how a filled instance of the template is evaluated.
// Daily templates are compliance checklists, weekly templates are scored
// evaluations, free templates carry no schedule semantics.
type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
	KindFree   Kind = "free"
)

func (k Kind) Valid() bool {
	switch k {
	case KindDaily, KindWeekly, KindFree:
		return true
	}
	return false
}

type Template struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	Kind      Kind      `json:"kind"`
	IsActive  bool      `json:"is_active"`
	Items     []Item    `json:"items" gorm:"foreignKey:TemplateID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Template) TableName() string {
	return "checklist_templates"
}

// Item is one question of a template. Scored items take a numeric answer
// on weekly evaluations; unscored items take the compliance vocabulary.
type Item struct {
	ID                      int64  `json:"id" gorm:"primaryKey"`
	TemplateID              int64  `json:"template_id"`
	Position                int    `json:"position"`
	Question                string `json:"question"`
	Scored                  bool   `json:"scored"`
	RequiresCommentIfNotOK  bool   `json:"requires_comment_if_not_ok" gorm:"column:requires_comment_if_not_ok"`
}

func (Item) TableName() string {
	return "checklist_items"
}
