package postgres

import (
	"gorm.io/gorm"

	"github.com/lslops/checklist-management/internal/report"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

const summarySelect = `
SELECT ci.id AS instance_id,
       ci.external_id,
       t.name AS template_name,
       t.kind AS template_kind,
       COALESCE(s.name, '') AS sector_name,
       COALESCE(e.name, '') AS employee_name,
       COALESCE(eq.name, '') AS equipment_name,
       COALESCE(lu.name, '') AS leader_name,
       COALESCE(eu.name, '') AS evaluator_name,
       ci.fill_date,
       ci.day_number,
       ci.week_number,
       ci.status,
       ci.total_score,
       ci.coordinator_comment AS comment
FROM checklist_instances ci
JOIN checklist_templates t ON t.id = ci.template_id
LEFT JOIN sectors s ON s.id = ci.sector_id
LEFT JOIN employees e ON e.id = ci.employee_id
LEFT JOIN equipments eq ON eq.id = ci.equipment_id
LEFT JOIN users lu ON lu.id = ci.leader_id
LEFT JOIN users eu ON eu.id = ci.evaluator_id`

const rowSelect = `
SELECT ci.id AS instance_id,
       ci.external_id,
       t.name AS template_name,
       COALESCE(s.name, '') AS sector_name,
       COALESCE(e.name, '') AS employee_name,
       COALESCE(eq.name, '') AS equipment_name,
       ci.fill_date,
       ci.day_number,
       ci.week_number,
       ci.status,
       ci.total_score,
       it.question,
       a.value,
       a.comment
FROM checklist_answers a
JOIN checklist_instances ci ON ci.id = a.instance_id
JOIN checklist_templates t ON t.id = ci.template_id
JOIN checklist_items it ON it.id = a.item_id
LEFT JOIN sectors s ON s.id = ci.sector_id
LEFT JOIN employees e ON e.id = ci.employee_id
LEFT JOIN equipments eq ON eq.id = ci.equipment_id`

func (r *ReportRepository) Summaries(f report.Filter) ([]report.Header, error) {
	query, args := applyFilter(summarySelect, f)
	query += " ORDER BY ci.fill_date DESC, ci.id DESC"

	var summaries []report.Header
	if err := r.db.Raw(query, args...).Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *ReportRepository) Rows(f report.Filter) ([]report.Row, error) {
	query, args := applyFilter(rowSelect, f)
	query += " ORDER BY ci.fill_date ASC, ci.id ASC, it.position ASC"

	var rows []report.Row
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) InstanceHeader(instanceID int64) (*report.Header, error) {
	query := summarySelect + " WHERE ci.id = ?"

	var header report.Header
	result := r.db.Raw(query, instanceID).Scan(&header)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &header, nil
}

func applyFilter(base string, f report.Filter) (string, []interface{}) {
	query := base + " WHERE 1=1"
	var args []interface{}

	if f.InstanceID != nil {
		query += " AND ci.id = ?"
		args = append(args, *f.InstanceID)
	}
	if f.From != nil {
		query += " AND ci.fill_date >= ?"
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += " AND ci.fill_date <= ?"
		args = append(args, *f.To)
	}
	if f.SectorID != nil {
		query += " AND ci.sector_id = ?"
		args = append(args, *f.SectorID)
	}
	if f.TemplateID != nil {
		query += " AND ci.template_id = ?"
		args = append(args, *f.TemplateID)
	}
	if f.Status != "" {
		query += " AND ci.status = ?"
		args = append(args, f.Status)
	}

	return query, args
}
