package postgres

import (
	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/checklist"
)

type ChecklistRepository struct {
	db *gorm.DB
}

func NewChecklistRepository(db *gorm.DB) checklist.RepositoryAPI {
	return &ChecklistRepository{db: db}
}

func (r *ChecklistRepository) Create(inst *checklist.Instance) error {
	return r.db.Create(inst).Error
}

// CreateBatch writes an onboarding schedule in one transaction so a partial
// schedule never survives a failure.
func (r *ChecklistRepository) CreateBatch(instances []*checklist.Instance) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, inst := range instances {
			if err := tx.Create(inst).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ChecklistRepository) GetByID(id int64) (*checklist.Instance, error) {
	var inst checklist.Instance
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_id ASC")
		}).
		Preload("ValidationLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).First(&inst).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &inst, nil
}

func (r *ChecklistRepository) GetAll(limit, offset int) ([]*checklist.Instance, error) {
	var instances []*checklist.Instance
	err := r.db.
		Order("fill_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&instances).Error
	return instances, err
}

func (r *ChecklistRepository) GetPending() ([]*checklist.Instance, error) {
	var instances []*checklist.Instance
	err := r.db.
		Where("status IN ?", []checklist.Status{checklist.StatusAwaitingValidation, checklist.StatusNonCompliant}).
		Order("fill_date ASC").
		Find(&instances).Error
	return instances, err
}

func (r *ChecklistRepository) Update(inst *checklist.Instance) error {
	return r.db.Omit("Answers", "ValidationLogs").Save(inst).Error
}

func (r *ChecklistRepository) UpdateAnswer(a *checklist.Answer) error {
	return r.db.Save(a).Error
}

// AppendValidation writes the verdict and the status change together.
func (r *ChecklistRepository) AppendValidation(inst *checklist.Instance, log *checklist.ValidationLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		return tx.Omit("Answers", "ValidationLogs").Save(inst).Error
	})
}
