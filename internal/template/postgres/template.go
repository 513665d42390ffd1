package postgres

import (
	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/template"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) template.RepositoryAPI {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) GetAll() ([]*template.Template, error) {
	var templates []*template.Template
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("name ASC").Find(&templates).Error
	return templates, err
}

func (r *TemplateRepository) GetByID(id int64) (*template.Template, error) {
	var t template.Template
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) GetByName(name string) (*template.Template, error) {
	var t template.Template
	err := r.db.Where("name = ?", name).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) GetActiveByKind(kind template.Kind) (*template.Template, error) {
	var t template.Template
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("kind = ? AND is_active = ?", kind, true).Order("id ASC").First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) Create(t *template.Template) error {
	return r.db.Create(t).Error
}

func (r *TemplateRepository) Update(t *template.Template) error {
	return r.db.Omit("Items").Save(t).Error
}

func (r *TemplateRepository) Deactivate(id int64) error {
	return r.db.Model(&template.Template{}).Where("id = ?", id).Update("is_active", false).Error
}
