package postgres

import (
	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/equipment"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) equipment.RepositoryAPI {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) GetAll() ([]*equipment.Equipment, error) {
	var equipments []*equipment.Equipment
	err := r.db.Order("name ASC").Find(&equipments).Error
	return equipments, err
}

func (r *EquipmentRepository) GetByID(id int64) (*equipment.Equipment, error) {
	var e equipment.Equipment
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetByQRIdentifier(qr string) (*equipment.Equipment, error) {
	var e equipment.Equipment
	err := r.db.Where("qr_identifier = ?", qr).First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) Create(e *equipment.Equipment) error {
	return r.db.Create(e).Error
}

func (r *EquipmentRepository) Update(e *equipment.Equipment) error {
	return r.db.Save(e).Error
}

func (r *EquipmentRepository) Deactivate(id int64) error {
	return r.db.Model(&equipment.Equipment{}).Where("id = ?", id).Update("is_active", false).Error
}
