package postgres

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/alert"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) alert.RepositoryAPI {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(a *alert.Alert) error {
	return r.db.Create(a).Error
}

func (r *AlertRepository) GetByInstance(instanceID int64) ([]*alert.Alert, error) {
	var alerts []*alert.Alert
	err := r.db.Where("instance_id = ?", instanceID).Order("sent_at ASC").Find(&alerts).Error
	return alerts, err
}

type RecipientRepository struct {
	db *gorm.DB
}

func NewRecipientRepository(db *gorm.DB) alert.RecipientRepositoryAPI {
	return &RecipientRepository{db: db}
}

func (r *RecipientRepository) SectorManagerEmail(sectorID int64) (string, error) {
	var email string
	query := `
SELECT u.email FROM users u
JOIN sectors s ON s.manager_id = u.id
WHERE s.id = ? AND u.is_active = ?`

	row := r.db.Raw(query, sectorID, true).Row()
	if err := row.Scan(&email); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return email, nil
}

func (r *RecipientRepository) CoordinatorEmails() ([]string, error) {
	var emails []string
	query := `SELECT email FROM users WHERE role = ? AND is_active = ? ORDER BY email ASC`
	if err := r.db.Raw(query, "coordinator", true).Scan(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}
