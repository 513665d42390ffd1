package report

import (
	"fmt"
	"log/slog"

	apperrors "github.com/lslops/checklist-management/internal"
	"github.com/lslops/checklist-management/internal/checklist"
)

type RepositoryAPI interface {
	Summaries(f Filter) ([]Header, error)
	Rows(f Filter) ([]Row, error)
	InstanceHeader(instanceID int64) (*Header, error)
}

// ChecklistProviderAPI gives the exporter access to the raw instance, which
// carries the signature blobs the summary queries leave out.
type ChecklistProviderAPI interface {
	GetByID(id int64) (*checklist.Instance, error)
}

type Service struct {
	repo       RepositoryAPI
	checklists ChecklistProviderAPI
	pdf        *PDFGenerator
	excel      *ExcelGenerator
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, checklists ChecklistProviderAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		checklists: checklists,
		pdf:        NewPDFGenerator(),
		excel:      NewExcelGenerator(),
		logger:     logger,
	}
}

// GetReport returns one summary line per instance matching the filter.
func (s *Service) GetReport(f Filter) ([]Header, error) {
	summaries, err := s.repo.Summaries(f)
	if err != nil {
		s.logger.Error("failed to query report", "error", err)
		return nil, err
	}
	return summaries, nil
}

// ExportInstancePDF renders one instance as a PDF document and returns the
// bytes with the download filename.
func (s *Service) ExportInstancePDF(id int64) ([]byte, string, error) {
	header, rows, err := s.instanceData(id)
	if err != nil {
		return nil, "", err
	}

	signatures, err := s.instanceSignatures(id)
	if err != nil {
		return nil, "", err
	}

	doc, err := s.pdf.Generate(header, rows, signatures)
	if err != nil {
		s.logger.Error("pdf generation failed", "error", err, "checklist_id", id)
		return nil, "", apperrors.NewInternalError("failed to generate PDF export", err)
	}

	return doc, fmt.Sprintf("checklist_%s.pdf", header.ExternalID), nil
}

// ExportInstanceExcel renders one instance as a flat xlsx workbook.
func (s *Service) ExportInstanceExcel(id int64) ([]byte, string, error) {
	header, rows, err := s.instanceData(id)
	if err != nil {
		return nil, "", err
	}

	doc, err := s.excel.Generate(rows)
	if err != nil {
		s.logger.Error("excel generation failed", "error", err, "checklist_id", id)
		return nil, "", apperrors.NewInternalError("failed to generate Excel export", err)
	}

	return doc, fmt.Sprintf("checklist_%s.xlsx", header.ExternalID), nil
}

// ExportFilteredExcel renders every matching instance as one workbook, one
// line per instance and answer pair.
func (s *Service) ExportFilteredExcel(f Filter) ([]byte, string, error) {
	rows, err := s.repo.Rows(f)
	if err != nil {
		s.logger.Error("failed to query export rows", "error", err)
		return nil, "", err
	}

	doc, err := s.excel.Generate(rows)
	if err != nil {
		s.logger.Error("excel generation failed", "error", err)
		return nil, "", apperrors.NewInternalError("failed to generate Excel export", err)
	}

	return doc, "checklists_report.xlsx", nil
}

func (s *Service) instanceData(id int64) (*Header, []Row, error) {
	header, err := s.repo.InstanceHeader(id)
	if err != nil {
		return nil, nil, err
	}
	if header == nil {
		return nil, nil, apperrors.ErrChecklistNotFound
	}

	rows, err := s.repo.Rows(Filter{InstanceID: &id})
	if err != nil {
		return nil, nil, err
	}
	return header, rows, nil
}

// instanceSignatures collects the present signature slots, flattened onto a
// white background so the PDF never renders alpha as black.
func (s *Service) instanceSignatures(id int64) ([]SignatureImage, error) {
	inst, err := s.checklists.GetByID(id)
	if err != nil {
		return nil, err
	}

	slots := []struct {
		label string
		data  []byte
	}{
		{"Employee", inst.EmployeeSignature},
		{"Leader", inst.LeaderSignature},
		{"Evaluator", inst.EvaluatorSignature},
		{"Coordinator", inst.CoordinatorSignature},
	}

	var signatures []SignatureImage
	for _, slot := range slots {
		if len(slot.data) == 0 {
			continue
		}
		flat, err := checklist.FlattenSignature(slot.data)
		if err != nil {
			s.logger.Warn("skipping unflattenable signature",
				"checklist_id", id,
				"slot", slot.label,
				"error", err)
			continue
		}
		signatures = append(signatures, SignatureImage{Label: slot.label, PNG: flat})
	}
	return signatures, nil
}
