package employee_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	apperrors "github.com/lslops/checklist-management/internal"
	"github.com/lslops/checklist-management/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

// MockRepository implements employee.RepositoryAPI for testing
type MockRepository struct {
	employees  map[int64]*employee.Employee
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		employees: make(map[int64]*employee.Employee),
		nextID:    1,
	}
}

func (m *MockRepository) GetAll() ([]*employee.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*employee.Employee
	for _, e := range m.employees {
		result = append(result, e)
	}
	return result, nil
}

func (m *MockRepository) GetByID(id int64) (*employee.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.employees[id], nil
}

func (m *MockRepository) GetByMatricula(matricula string) (*employee.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, e := range m.employees {
		if e.Matricula == matricula {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(e *employee.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	e.ID = m.nextID
	m.nextID++
	m.employees[e.ID] = e
	return nil
}

func (m *MockRepository) Update(e *employee.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	m.employees[e.ID] = e
	return nil
}

// MockScheduler implements employee.OnboardingScheduler for testing
type MockScheduler struct {
	calls []scheduleCall
	err   error
}

type scheduleCall struct {
	employeeID  int64
	leaderID    int64
	evaluatorID int64
	createdBy   int64
	sectorID    int64
	startDate   time.Time
}

func (m *MockScheduler) GenerateOnboardingSchedule(employeeID, leaderID, evaluatorID, createdBy, sectorID int64, startDate time.Time) (int, int, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	m.calls = append(m.calls, scheduleCall{
		employeeID:  employeeID,
		leaderID:    leaderID,
		evaluatorID: evaluatorID,
		createdBy:   createdBy,
		sectorID:    sectorID,
		startDate:   startDate,
	})
	return 30, 4, nil
}

var _ = Describe("Employee Service", func() {
	var (
		mockRepo      *MockRepository
		mockScheduler *MockScheduler
		service       *employee.Service
	)

	newCreateDTO := func() *employee.CreateEmployeeDTO {
		return &employee.CreateEmployeeDTO{
			Name:              "Joana Silva",
			Position:          "Operator",
			Matricula:         "M-1042",
			SectorID:          3,
			LeaderID:          6,
			EvaluatorID:       7,
			TrainingStartDate: "2026-03-02",
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockScheduler = &MockScheduler{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, mockScheduler, logger)
	})

	Describe("Create", func() {
		It("should register the employee as in_training", func() {
			e, err := service.Create(newCreateDTO(), 8)

			Expect(err).NotTo(HaveOccurred())
			Expect(e.ID).To(BeNumerically(">", 0))
			Expect(e.Status).To(Equal(employee.StatusInTraining))
			Expect(e.TrainingStartDate).To(Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
		})

		It("should skip the schedule only when the caller opts out", func() {
			dto := newCreateDTO()
			dto.SkipSchedule = true

			_, err := service.Create(dto, 8)

			Expect(err).NotTo(HaveOccurred())
			Expect(mockScheduler.calls).To(BeEmpty())
		})

		It("should generate the onboarding schedule on plain creation", func() {
			e, err := service.Create(newCreateDTO(), 8)

			Expect(err).NotTo(HaveOccurred())
			Expect(mockScheduler.calls).To(HaveLen(1))
			call := mockScheduler.calls[0]
			Expect(call.employeeID).To(Equal(e.ID))
			Expect(call.leaderID).To(Equal(int64(6)))
			Expect(call.evaluatorID).To(Equal(int64(7)))
			Expect(call.createdBy).To(Equal(int64(8)))
			Expect(call.sectorID).To(Equal(int64(3)))
			Expect(call.startDate).To(Equal(e.TrainingStartDate))
		})

		It("should reject a duplicate matricula", func() {
			_, err := service.Create(newCreateDTO(), 8)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(newCreateDTO(), 8)
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateMatricula))
		})

		It("should reject a malformed training start date", func() {
			dto := newCreateDTO()
			dto.TrainingStartDate = "02/03/2026"

			_, err := service.Create(dto, 8)
			Expect(err).To(HaveOccurred())
		})

		It("should propagate a scheduler failure", func() {
			mockScheduler.err = errors.New("no active daily template")

			_, err := service.Create(newCreateDTO(), 8)
			Expect(err).To(MatchError(ContainSubstring("no active daily template")))
		})
	})

	Describe("Update", func() {
		var existing *employee.Employee

		BeforeEach(func() {
			var err error
			existing, err = service.Create(newCreateDTO(), 8)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should update the training status", func() {
			status := string(employee.StatusApproved)
			e, err := service.Update(existing.ID, &employee.UpdateEmployeeDTO{Status: &status})

			Expect(err).NotTo(HaveOccurred())
			Expect(e.Status).To(Equal(employee.StatusApproved))
		})

		It("should reject an unknown training status", func() {
			status := "graduated"
			_, err := service.Update(existing.ID, &employee.UpdateEmployeeDTO{Status: &status})

			Expect(err).To(HaveOccurred())
		})

		It("should return not found for a missing employee", func() {
			name := "Someone"
			_, err := service.Update(999, &employee.UpdateEmployeeDTO{Name: &name})

			Expect(err).To(MatchError(apperrors.ErrEmployeeNotFound))
		})
	})
})
