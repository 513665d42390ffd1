package postgres

import (
	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/sector"
)

type SectorRepository struct {
	db *gorm.DB
}

func NewSectorRepository(db *gorm.DB) sector.RepositoryAPI {
	return &SectorRepository{db: db}
}

func (r *SectorRepository) GetAll() ([]*sector.Sector, error) {
	var sectors []*sector.Sector
	err := r.db.Order("name ASC").Find(&sectors).Error
	return sectors, err
}

func (r *SectorRepository) GetByID(id int64) (*sector.Sector, error) {
	var s sector.Sector
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectorRepository) GetByName(name string) (*sector.Sector, error) {
	var s sector.Sector
	err := r.db.Where("name = ?", name).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectorRepository) Create(s *sector.Sector) error {
	return r.db.Create(s).Error
}

func (r *SectorRepository) Update(s *sector.Sector) error {
	return r.db.Save(s).Error
}

func (r *SectorRepository) Deactivate(id int64) error {
	return r.db.Model(&sector.Sector{}).Where("id = ?", id).Update("is_active", false).Error
}
