package postgres

import (
	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/dashboard"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.RepositoryAPI {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountByStatus() ([]dashboard.StatusCount, error) {
	var counts []dashboard.StatusCount
	query := `SELECT status, COUNT(*) AS count FROM checklist_instances GROUP BY status ORDER BY status`
	if err := r.db.Raw(query).Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *DashboardRepository) CountBySector() ([]dashboard.SectorCount, error) {
	var counts []dashboard.SectorCount
	query := `
SELECT ci.sector_id, COALESCE(s.name, '') AS sector_name, COUNT(*) AS count
FROM checklist_instances ci
LEFT JOIN sectors s ON s.id = ci.sector_id
GROUP BY ci.sector_id, s.name
ORDER BY count DESC`
	if err := r.db.Raw(query).Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *DashboardRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Raw(
		`SELECT COUNT(*) FROM checklist_instances WHERE status IN (?, ?)`,
		"awaiting_validation", "non_compliant",
	).Scan(&count).Error
	return count, err
}

func (r *DashboardRepository) CountAlerts() (int64, error) {
	var count int64
	err := r.db.Raw(`SELECT COUNT(*) FROM alerts`).Scan(&count).Error
	return count, err
}
