package report_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"testing"
	"time"

	apperrors "github.com/lslops/checklist-management/internal"
	"github.com/lslops/checklist-management/internal/checklist"
	"github.com/lslops/checklist-management/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

func TestReportService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Service Suite")
}

// MockRepository implements report.RepositoryAPI for testing
type MockRepository struct {
	headers    map[int64]*report.Header
	rows       map[int64][]report.Row
	summaries  []report.Header
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		headers: make(map[int64]*report.Header),
		rows:    make(map[int64][]report.Row),
	}
}

func (m *MockRepository) Summaries(f report.Filter) ([]report.Header, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.summaries, nil
}

func (m *MockRepository) Rows(f report.Filter) ([]report.Row, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	if f.InstanceID != nil {
		return m.rows[*f.InstanceID], nil
	}
	var all []report.Row
	for _, rows := range m.rows {
		all = append(all, rows...)
	}
	return all, nil
}

func (m *MockRepository) InstanceHeader(instanceID int64) (*report.Header, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.headers[instanceID], nil
}

func (m *MockRepository) AddInstance(h *report.Header, rows []report.Row) {
	m.headers[h.InstanceID] = h
	m.rows[h.InstanceID] = rows
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

// MockChecklists implements report.ChecklistProviderAPI for testing
type MockChecklists struct {
	instances map[int64]*checklist.Instance
}

func (m *MockChecklists) GetByID(id int64) (*checklist.Instance, error) {
	inst, ok := m.instances[id]
	if !ok {
		return nil, apperrors.ErrChecklistNotFound
	}
	return inst, nil
}

// signaturePNG builds a small PNG with a transparent background, the shape a
// canvas export has before flattening.
func signaturePNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

var _ = Describe("Report Service", func() {
	var (
		mockRepo       *MockRepository
		mockChecklists *MockChecklists
		service        *report.Service

		header *report.Header
		rows   []report.Row
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockChecklists = &MockChecklists{instances: make(map[int64]*checklist.Instance)}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = report.NewService(mockRepo, mockChecklists, logger)

		fillDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		header = &report.Header{
			InstanceID:   100,
			ExternalID:   "ext-100",
			TemplateName: "Daily Training Checklist",
			TemplateKind: "daily",
			SectorName:   "producao",
			EmployeeName: "Joana Silva",
			FillDate:     fillDate,
			Status:       "approved",
		}
		rows = []report.Row{
			{InstanceID: 100, ExternalID: "ext-100", TemplateName: "Daily Training Checklist", SectorName: "producao", FillDate: fillDate, Status: "approved", Question: "Follows safety procedures", Value: "yes"},
			{InstanceID: 100, ExternalID: "ext-100", TemplateName: "Daily Training Checklist", SectorName: "producao", FillDate: fillDate, Status: "approved", Question: "Wears required PPE", Value: "no", Comment: "missing gloves"},
			{InstanceID: 100, ExternalID: "ext-100", TemplateName: "Daily Training Checklist", SectorName: "producao", FillDate: fillDate, Status: "approved", Question: "Keeps workstation organized", Value: "not_applicable"},
		}
		mockRepo.AddInstance(header, rows)
		mockChecklists.instances[100] = &checklist.Instance{
			ID:         100,
			ExternalID: "ext-100",
			Status:     checklist.StatusApproved,
		}
	})

	Describe("GetReport", func() {
		It("should return one summary line per matching instance", func() {
			mockRepo.summaries = []report.Header{*header}

			summaries, err := service.GetReport(report.Filter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(summaries).To(HaveLen(1))
			Expect(summaries[0].ExternalID).To(Equal("ext-100"))
		})

		It("should propagate a repository failure", func() {
			mockRepo.SetShouldFail(true, errors.New("database error"))

			_, err := service.GetReport(report.Filter{})
			Expect(err).To(MatchError(ContainSubstring("database error")))
		})
	})

	Describe("ExportInstanceExcel", func() {
		It("should write one sheet line per answer plus the header", func() {
			doc, filename, err := service.ExportInstanceExcel(100)

			Expect(err).NotTo(HaveOccurred())
			Expect(filename).To(Equal("checklist_ext-100.xlsx"))

			f, err := excelize.OpenReader(bytes.NewReader(doc))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			sheetRows, err := f.GetRows("Checklists")
			Expect(err).NotTo(HaveOccurred())
			Expect(sheetRows).To(HaveLen(len(rows) + 1))
		})

		It("should enumerate each question exactly once", func() {
			doc, _, err := service.ExportInstanceExcel(100)
			Expect(err).NotTo(HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader(doc))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			sheetRows, err := f.GetRows("Checklists")
			Expect(err).NotTo(HaveOccurred())

			seen := map[string]int{}
			for _, line := range sheetRows[1:] {
				seen[line[10]]++
			}
			Expect(seen).To(HaveLen(len(rows)))
			for question, count := range seen {
				Expect(count).To(Equal(1), "question %q duplicated", question)
			}
		})

		It("should carry the answer and comment columns through", func() {
			doc, _, err := service.ExportInstanceExcel(100)
			Expect(err).NotTo(HaveOccurred())

			f, err := excelize.OpenReader(bytes.NewReader(doc))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			value, err := f.GetCellValue("Checklists", "L3")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("no"))

			comment, err := f.GetCellValue("Checklists", "M3")
			Expect(err).NotTo(HaveOccurred())
			Expect(comment).To(Equal("missing gloves"))
		})

		It("should return not found for a missing instance", func() {
			_, _, err := service.ExportInstanceExcel(999)
			Expect(err).To(MatchError(apperrors.ErrChecklistNotFound))
		})
	})

	Describe("ExportFilteredExcel", func() {
		It("should flatten every matching instance into one workbook", func() {
			doc, filename, err := service.ExportFilteredExcel(report.Filter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(filename).To(Equal("checklists_report.xlsx"))

			f, err := excelize.OpenReader(bytes.NewReader(doc))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			sheetRows, err := f.GetRows("Checklists")
			Expect(err).NotTo(HaveOccurred())
			Expect(sheetRows).To(HaveLen(len(rows) + 1))
			Expect(sheetRows[0][0]).To(Equal("Checklist"))
		})
	})

	Describe("ExportInstancePDF", func() {
		It("should render a PDF document with the instance filename", func() {
			doc, filename, err := service.ExportInstancePDF(100)

			Expect(err).NotTo(HaveOccurred())
			Expect(filename).To(Equal("checklist_ext-100.pdf"))
			Expect(bytes.HasPrefix(doc, []byte("%PDF"))).To(BeTrue())
		})

		It("should include flattened signatures and skip corrupt ones", func() {
			inst := mockChecklists.instances[100]
			inst.EmployeeSignature = signaturePNG()
			inst.LeaderSignature = []byte("not a png")

			doc, _, err := service.ExportInstancePDF(100)

			Expect(err).NotTo(HaveOccurred())
			Expect(bytes.HasPrefix(doc, []byte("%PDF"))).To(BeTrue())
		})

		It("should return not found for a missing instance", func() {
			_, _, err := service.ExportInstancePDF(999)
			Expect(err).To(MatchError(apperrors.ErrChecklistNotFound))
		})
	})
})
