package postgres

import (
	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/employee"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll() ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByMatricula(matricula string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.Where("matricula = ?", matricula).First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Create(e *employee.Employee) error {
	return r.db.Create(e).Error
}

func (r *EmployeeRepository) Update(e *employee.Employee) error {
	return r.db.Save(e).Error
}
