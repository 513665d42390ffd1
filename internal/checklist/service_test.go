package checklist_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	apperrors "github.com/lslops/checklist-management/internal"
	"github.com/lslops/checklist-management/internal/checklist"
	"github.com/lslops/checklist-management/internal/core/events"
	"github.com/lslops/checklist-management/internal/template"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestChecklistService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Checklist Service Suite")
}

// MockRepository implements checklist.RepositoryAPI for testing
type MockRepository struct {
	instances  map[int64]*checklist.Instance
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		instances: make(map[int64]*checklist.Instance),
		nextID:    1,
	}
}

func (m *MockRepository) Create(inst *checklist.Instance) error {
	if m.shouldFail {
		return m.failError
	}
	inst.ID = m.nextID
	m.nextID++
	m.instances[inst.ID] = inst
	return nil
}

func (m *MockRepository) CreateBatch(instances []*checklist.Instance) error {
	if m.shouldFail {
		return m.failError
	}
	for _, inst := range instances {
		inst.ID = m.nextID
		m.nextID++
		m.instances[inst.ID] = inst
	}
	return nil
}

func (m *MockRepository) GetByID(id int64) (*checklist.Instance, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.instances[id], nil
}

func (m *MockRepository) GetAll(limit, offset int) ([]*checklist.Instance, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*checklist.Instance
	for _, inst := range m.instances {
		result = append(result, inst)
	}
	return result, nil
}

func (m *MockRepository) GetPending() ([]*checklist.Instance, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*checklist.Instance
	for _, inst := range m.instances {
		if inst.CanValidate() {
			result = append(result, inst)
		}
	}
	return result, nil
}

func (m *MockRepository) Update(inst *checklist.Instance) error {
	if m.shouldFail {
		return m.failError
	}
	m.instances[inst.ID] = inst
	return nil
}

func (m *MockRepository) UpdateAnswer(a *checklist.Answer) error {
	if m.shouldFail {
		return m.failError
	}
	return nil
}

func (m *MockRepository) AppendValidation(inst *checklist.Instance, log *checklist.ValidationLog) error {
	if m.shouldFail {
		return m.failError
	}
	inst.ValidationLogs = append(inst.ValidationLogs, *log)
	m.instances[inst.ID] = inst
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddInstance(inst *checklist.Instance) {
	if inst.ID == 0 {
		inst.ID = m.nextID
		m.nextID++
	} else if inst.ID >= m.nextID {
		m.nextID = inst.ID + 1
	}
	m.instances[inst.ID] = inst
}

// MockTemplates implements checklist.TemplateProviderAPI for testing
type MockTemplates struct {
	byID   map[int64]*template.Template
	byKind map[template.Kind]*template.Template
}

func NewMockTemplates() *MockTemplates {
	return &MockTemplates{
		byID:   make(map[int64]*template.Template),
		byKind: make(map[template.Kind]*template.Template),
	}
}

func (m *MockTemplates) GetByID(id int64) (*template.Template, error) {
	return m.byID[id], nil
}

func (m *MockTemplates) GetActiveByKind(kind template.Kind) (*template.Template, error) {
	return m.byKind[kind], nil
}

func (m *MockTemplates) AddTemplate(tmpl *template.Template) {
	m.byID[tmpl.ID] = tmpl
	m.byKind[tmpl.Kind] = tmpl
}

// MockPublisher implements checklist.EventPublisherAPI for testing
type MockPublisher struct {
	published []events.Event
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *MockPublisher) EventTypes() []string {
	types := make([]string, len(m.published))
	for i, e := range m.published {
		types[i] = e.EventType()
	}
	return types
}

// signaturePayload builds a small valid PNG data URL like a canvas export.
func signaturePayload() string {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func appErrorCode(err error) apperrors.ErrorCode {
	appErr, ok := apperrors.IsAppError(err)
	if !ok {
		return ""
	}
	return appErr.Code
}

var _ = Describe("Checklist Service", func() {
	var (
		mockRepo      *MockRepository
		mockTemplates *MockTemplates
		mockPublisher *MockPublisher
		service       *checklist.Service
		logger        *slog.Logger
		ctx           context.Context

		dailyTemplate  *template.Template
		weeklyTemplate *template.Template
	)

	cfg := apperrors.ChecklistConfig{
		ApprovalMinScore: 8,
		DailyCount:       30,
		WeeklyCount:      4,
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockTemplates = NewMockTemplates()
		mockPublisher = &MockPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = checklist.NewService(mockRepo, mockTemplates, mockPublisher, cfg, logger)
		ctx = context.Background()

		dailyTemplate = &template.Template{
			ID:       1,
			Name:     "Daily Training Checklist",
			Kind:     template.KindDaily,
			IsActive: true,
			Items: []template.Item{
				{ID: 10, TemplateID: 1, Position: 1, Question: "Follows safety procedures", RequiresCommentIfNotOK: true},
				{ID: 11, TemplateID: 1, Position: 2, Question: "Wears required PPE"},
				{ID: 12, TemplateID: 1, Position: 3, Question: "Keeps workstation organized"},
			},
		}
		weeklyTemplate = &template.Template{
			ID:       2,
			Name:     "Weekly Training Evaluation",
			Kind:     template.KindWeekly,
			IsActive: true,
			Items: []template.Item{
				{ID: 20, TemplateID: 2, Position: 1, Question: "Process knowledge", Scored: true},
				{ID: 21, TemplateID: 2, Position: 2, Question: "Work quality", Scored: true},
			},
		}
		mockTemplates.AddTemplate(dailyTemplate)
		mockTemplates.AddTemplate(weeklyTemplate)
	})

	Describe("Create", func() {
		Context("when the template exists", func() {
			It("should seed one not_applicable answer per template item", func() {
				employeeID := int64(5)
				inst, err := service.Create(&checklist.CreateChecklistDTO{
					TemplateID: 1,
					EmployeeID: &employeeID,
					SectorID:   3,
				}, 7)

				Expect(err).NotTo(HaveOccurred())
				Expect(inst.Status).To(Equal(checklist.StatusInProgress))
				Expect(inst.Answers).To(HaveLen(3))
				for _, a := range inst.Answers {
					Expect(a.Value).To(Equal(checklist.AnswerNotApplicable))
				}
			})

			It("should default leader and evaluator to the creator", func() {
				employeeID := int64(5)
				inst, err := service.Create(&checklist.CreateChecklistDTO{
					TemplateID: 1,
					EmployeeID: &employeeID,
					SectorID:   3,
				}, 7)

				Expect(err).NotTo(HaveOccurred())
				Expect(inst.LeaderID).To(Equal(int64(7)))
				Expect(inst.EvaluatorID).To(Equal(int64(7)))
				Expect(inst.CreatedBy).To(Equal(int64(7)))
			})

			It("should assign a unique external id", func() {
				employeeID := int64(5)
				first, err := service.Create(&checklist.CreateChecklistDTO{
					TemplateID: 1, EmployeeID: &employeeID, SectorID: 3,
				}, 7)
				Expect(err).NotTo(HaveOccurred())
				second, err := service.Create(&checklist.CreateChecklistDTO{
					TemplateID: 1, EmployeeID: &employeeID, SectorID: 3,
				}, 7)
				Expect(err).NotTo(HaveOccurred())

				Expect(first.ExternalID).NotTo(BeEmpty())
				Expect(first.ExternalID).NotTo(Equal(second.ExternalID))
			})
		})

		Context("when the template does not exist", func() {
			It("should return a template not found error", func() {
				employeeID := int64(5)
				_, err := service.Create(&checklist.CreateChecklistDTO{
					TemplateID: 99,
					EmployeeID: &employeeID,
					SectorID:   3,
				}, 7)

				Expect(err).To(MatchError(apperrors.ErrTemplateNotFound))
			})
		})

		Context("when neither employee nor equipment is set", func() {
			It("should fail validation", func() {
				_, err := service.Create(&checklist.CreateChecklistDTO{
					TemplateID: 1,
					SectorID:   3,
				}, 7)

				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("GenerateOnboardingSchedule", func() {
		var startDate time.Time

		BeforeEach(func() {
			startDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		})

		It("should create the configured number of daily and weekly checklists", func() {
			daily, weekly, err := service.GenerateOnboardingSchedule(5, 6, 7, 8, 3, startDate)

			Expect(err).NotTo(HaveOccurred())
			Expect(daily).To(Equal(30))
			Expect(weekly).To(Equal(4))
			Expect(mockRepo.instances).To(HaveLen(34))
		})

		It("should place daily checklist i on start date plus i-1 days", func() {
			_, _, err := service.GenerateOnboardingSchedule(5, 6, 7, 8, 3, startDate)
			Expect(err).NotTo(HaveOccurred())

			for _, inst := range mockRepo.instances {
				if inst.DayNumber == nil {
					continue
				}
				day := *inst.DayNumber
				Expect(inst.FillDate).To(Equal(startDate.AddDate(0, 0, day-1)))
				Expect(*inst.WeekNumber).To(Equal((day-1)/7 + 1))
				Expect(inst.Status).To(Equal(checklist.StatusDraft))
			}
		})

		It("should place weekly evaluation i on start date plus 7(i-1) days", func() {
			_, _, err := service.GenerateOnboardingSchedule(5, 6, 7, 8, 3, startDate)
			Expect(err).NotTo(HaveOccurred())

			weeks := map[int]time.Time{}
			for _, inst := range mockRepo.instances {
				if inst.DayNumber != nil || inst.WeekNumber == nil {
					continue
				}
				weeks[*inst.WeekNumber] = inst.FillDate
			}
			Expect(weeks).To(HaveLen(4))
			for week, fillDate := range weeks {
				Expect(fillDate).To(Equal(startDate.AddDate(0, 0, 7*(week-1))))
			}
		})

		Context("when no active weekly template exists", func() {
			BeforeEach(func() {
				delete(mockTemplates.byKind, template.KindWeekly)
			})

			It("should return a template not found error and create nothing", func() {
				_, _, err := service.GenerateOnboardingSchedule(5, 6, 7, 8, 3, startDate)

				Expect(err).To(MatchError(apperrors.ErrTemplateNotFound))
				Expect(mockRepo.instances).To(BeEmpty())
			})
		})
	})

	Describe("FillAnswers", func() {
		var inst *checklist.Instance

		BeforeEach(func() {
			inst = &checklist.Instance{
				ID:         100,
				TemplateID: 1,
				SectorID:   3,
				Status:     checklist.StatusDraft,
				Answers: []checklist.Answer{
					{InstanceID: 100, ItemID: 10, Value: checklist.AnswerNotApplicable},
					{InstanceID: 100, ItemID: 11, Value: checklist.AnswerNotApplicable},
					{InstanceID: 100, ItemID: 12, Value: checklist.AnswerNotApplicable},
				},
			}
			mockRepo.AddInstance(inst)
		})

		It("should apply answers and move a draft to in_progress", func() {
			result, err := service.FillAnswers(100, &checklist.FillAnswersDTO{
				Answers: []checklist.AnswerDTO{
					{ItemID: 11, Value: checklist.AnswerYes},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(checklist.StatusInProgress))

			var updated *checklist.Answer
			for i := range result.Answers {
				if result.Answers[i].ItemID == 11 {
					updated = &result.Answers[i]
				}
			}
			Expect(updated).NotTo(BeNil())
			Expect(updated.Value).To(Equal(checklist.AnswerYes))
		})

		It("should reject an answer for an item outside the template", func() {
			_, err := service.FillAnswers(100, &checklist.FillAnswersDTO{
				Answers: []checklist.AnswerDTO{
					{ItemID: 999, Value: checklist.AnswerYes},
				},
			})

			Expect(appErrorCode(err)).To(Equal(apperrors.ErrCodeUnknownItem))
		})

		It("should reject a value outside the answer vocabulary", func() {
			_, err := service.FillAnswers(100, &checklist.FillAnswersDTO{
				Answers: []checklist.AnswerDTO{
					{ItemID: 11, Value: "maybe"},
				},
			})

			Expect(appErrorCode(err)).To(Equal(apperrors.ErrCodeInvalidAnswer))
		})

		It("should require a comment on a negative answer when the item demands one", func() {
			_, err := service.FillAnswers(100, &checklist.FillAnswersDTO{
				Answers: []checklist.AnswerDTO{
					{ItemID: 10, Value: checklist.AnswerNo},
				},
			})

			Expect(appErrorCode(err)).To(Equal(apperrors.ErrCodeCommentRequired))
		})

		It("should accept a negative answer carrying a comment", func() {
			_, err := service.FillAnswers(100, &checklist.FillAnswersDTO{
				Answers: []checklist.AnswerDTO{
					{ItemID: 10, Value: checklist.AnswerNo, Comment: "missing guard rail"},
				},
			})

			Expect(err).NotTo(HaveOccurred())
		})

		It("should write nothing when any answer in the batch is invalid", func() {
			_, err := service.FillAnswers(100, &checklist.FillAnswersDTO{
				Answers: []checklist.AnswerDTO{
					{ItemID: 11, Value: checklist.AnswerYes},
					{ItemID: 999, Value: checklist.AnswerYes},
				},
			})

			Expect(err).To(HaveOccurred())
			stored := mockRepo.instances[100]
			for _, a := range stored.Answers {
				Expect(a.Value).To(Equal(checklist.AnswerNotApplicable))
			}
		})

		Context("when the instance has a terminal outcome", func() {
			BeforeEach(func() {
				inst.Status = checklist.StatusApproved
			})

			It("should refuse the update", func() {
				_, err := service.FillAnswers(100, &checklist.FillAnswersDTO{
					Answers: []checklist.AnswerDTO{
						{ItemID: 11, Value: checklist.AnswerYes},
					},
				})

				Expect(err).To(MatchError(apperrors.ErrInvalidStatus))
			})
		})

		It("should accept numeric scores on scored items", func() {
			weeklyInst := &checklist.Instance{
				ID:         200,
				TemplateID: 2,
				SectorID:   3,
				Status:     checklist.StatusInProgress,
				Answers: []checklist.Answer{
					{InstanceID: 200, ItemID: 20, Value: checklist.AnswerNotApplicable},
					{InstanceID: 200, ItemID: 21, Value: checklist.AnswerNotApplicable},
				},
			}
			mockRepo.AddInstance(weeklyInst)

			_, err := service.FillAnswers(200, &checklist.FillAnswersDTO{
				Answers: []checklist.AnswerDTO{
					{ItemID: 20, Value: "9"},
					{ItemID: 21, Value: "7.5"},
				},
			})

			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a score above the scale", func() {
			weeklyInst := &checklist.Instance{
				ID:         200,
				TemplateID: 2,
				SectorID:   3,
				Status:     checklist.StatusInProgress,
				Answers: []checklist.Answer{
					{InstanceID: 200, ItemID: 20, Value: checklist.AnswerNotApplicable},
				},
			}
			mockRepo.AddInstance(weeklyInst)

			_, err := service.FillAnswers(200, &checklist.FillAnswersDTO{
				Answers: []checklist.AnswerDTO{
					{ItemID: 20, Value: "11"},
				},
			})

			Expect(appErrorCode(err)).To(Equal(apperrors.ErrCodeInvalidAnswer))
		})
	})

	Describe("Sign", func() {
		var inst *checklist.Instance

		BeforeEach(func() {
			inst = &checklist.Instance{
				ID:         100,
				TemplateID: 1,
				Status:     checklist.StatusInProgress,
			}
			mockRepo.AddInstance(inst)
		})

		It("should store a decodable signature", func() {
			resp, err := service.Sign(100, &checklist.SignDTO{
				Role:  string(checklist.SignatureEmployee),
				Image: signaturePayload(),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Stored).To(BeTrue())
			Expect(resp.Warning).To(BeEmpty())
			Expect(inst.EmployeeSignature).NotTo(BeEmpty())
		})

		It("should repair stripped base64 padding before decoding", func() {
			payload := strings.TrimRight(signaturePayload(), "=")

			resp, err := service.Sign(100, &checklist.SignDTO{
				Role:  string(checklist.SignatureLeader),
				Image: payload,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Stored).To(BeTrue())
			Expect(inst.LeaderSignature).NotTo(BeEmpty())
		})

		It("should store a null signature and warn on an undecodable payload", func() {
			resp, err := service.Sign(100, &checklist.SignDTO{
				Role:  string(checklist.SignatureEmployee),
				Image: "data:image/png;base64,not-an-image",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Stored).To(BeFalse())
			Expect(resp.Warning).NotTo(BeEmpty())
			Expect(inst.EmployeeSignature).To(BeNil())
		})

		It("should reject an unknown signature role", func() {
			_, err := service.Sign(100, &checklist.SignDTO{
				Role:  "witness",
				Image: signaturePayload(),
			})

			Expect(err).To(HaveOccurred())
		})

		Context("when the instance has a terminal outcome", func() {
			BeforeEach(func() {
				inst.Status = checklist.StatusRejected
			})

			It("should refuse the signature", func() {
				_, err := service.Sign(100, &checklist.SignDTO{
					Role:  string(checklist.SignatureEmployee),
					Image: signaturePayload(),
				})

				Expect(err).To(MatchError(apperrors.ErrInvalidStatus))
			})
		})
	})

	Describe("Complete", func() {
		newDailyInstance := func(values map[int64]string) *checklist.Instance {
			answers := []checklist.Answer{
				{InstanceID: 100, ItemID: 10, Value: checklist.AnswerYes},
				{InstanceID: 100, ItemID: 11, Value: checklist.AnswerYes},
				{InstanceID: 100, ItemID: 12, Value: checklist.AnswerYes},
			}
			for i := range answers {
				if v, ok := values[answers[i].ItemID]; ok {
					answers[i].Value = v
				}
			}
			return &checklist.Instance{
				ID:                100,
				ExternalID:        "ext-100",
				TemplateID:        1,
				SectorID:          3,
				CreatedBy:         7,
				Status:            checklist.StatusInProgress,
				EmployeeSignature: []byte{1},
				LeaderSignature:   []byte{2},
				Answers:           answers,
			}
		}

		It("should refuse an instance that is not in progress", func() {
			inst := newDailyInstance(nil)
			inst.Status = checklist.StatusDraft
			mockRepo.AddInstance(inst)

			_, err := service.Complete(ctx, 100)
			Expect(err).To(MatchError(apperrors.ErrInvalidStatus))
		})

		It("should refuse completion without employee and leader signatures", func() {
			inst := newDailyInstance(nil)
			inst.LeaderSignature = nil
			mockRepo.AddInstance(inst)

			_, err := service.Complete(ctx, 100)
			Expect(err).To(MatchError(apperrors.ErrMissingSignatures))
		})

		It("should move a compliant daily checklist to awaiting_validation", func() {
			mockRepo.AddInstance(newDailyInstance(nil))

			result, err := service.Complete(ctx, 100)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(checklist.StatusAwaitingValidation))
			Expect(mockPublisher.EventTypes()).To(ConsistOf(events.EventTypeChecklistCompleted))
		})

		It("should flag non_compliant and publish the alert event on any negative answer", func() {
			mockRepo.AddInstance(newDailyInstance(map[int64]string{11: checklist.AnswerNo}))

			result, err := service.Complete(ctx, 100)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(checklist.StatusNonCompliant))
			Expect(mockPublisher.EventTypes()).To(ConsistOf(
				events.EventTypeChecklistNonCompliant,
				events.EventTypeChecklistCompleted,
			))
		})

		Context("weekly scored evaluations", func() {
			newWeeklyInstance := func(scores ...string) *checklist.Instance {
				answers := make([]checklist.Answer, len(scores))
				for i, s := range scores {
					answers[i] = checklist.Answer{
						InstanceID: 200,
						ItemID:     int64(20 + i),
						Value:      s,
					}
				}
				return &checklist.Instance{
					ID:                200,
					ExternalID:        "ext-200",
					TemplateID:        2,
					SectorID:          3,
					Status:            checklist.StatusInProgress,
					EmployeeSignature: []byte{1},
					LeaderSignature:   []byte{2},
					Answers:           answers,
				}
			}

			It("should approve when the score total reaches the threshold", func() {
				mockRepo.AddInstance(newWeeklyInstance("5", "4"))

				result, err := service.Complete(ctx, 200)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Status).To(Equal(checklist.StatusApproved))
				Expect(*result.TotalScore).To(Equal(9.0))
			})

			It("should approve on the threshold boundary", func() {
				mockRepo.AddInstance(newWeeklyInstance("4", "4"))

				result, err := service.Complete(ctx, 200)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Status).To(Equal(checklist.StatusApproved))
				Expect(*result.TotalScore).To(Equal(8.0))
			})

			It("should reject when the score total falls short of the threshold", func() {
				mockRepo.AddInstance(newWeeklyInstance("3", "4"))

				result, err := service.Complete(ctx, 200)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Status).To(Equal(checklist.StatusRejected))
				Expect(*result.TotalScore).To(Equal(7.0))
			})

			It("should count only parseable scored answers toward the total", func() {
				mockRepo.AddInstance(newWeeklyInstance("9", checklist.AnswerNotApplicable))

				result, err := service.Complete(ctx, 200)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Status).To(Equal(checklist.StatusApproved))
				Expect(*result.TotalScore).To(Equal(9.0))
			})
		})
	})

	Describe("Validate", func() {
		var inst *checklist.Instance

		BeforeEach(func() {
			inst = &checklist.Instance{
				ID:         100,
				ExternalID: "ext-100",
				TemplateID: 1,
				SectorID:   3,
				Status:     checklist.StatusAwaitingValidation,
			}
			mockRepo.AddInstance(inst)
		})

		It("should approve and append a validation log", func() {
			result, err := service.Validate(ctx, 100, 42, &checklist.ValidateDTO{
				Outcome: string(checklist.OutcomeApproved),
				Comment: "all good",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(checklist.StatusApproved))
			Expect(result.CoordinatorComment).To(Equal("all good"))
			Expect(result.ValidationLogs).To(HaveLen(1))
			Expect(result.ValidationLogs[0].ValidatorID).To(Equal(int64(42)))
			Expect(result.ValidationLogs[0].Outcome).To(Equal(checklist.OutcomeApproved))
		})

		It("should reject a non_compliant checklist", func() {
			inst.Status = checklist.StatusNonCompliant

			result, err := service.Validate(ctx, 100, 42, &checklist.ValidateDTO{
				Outcome: string(checklist.OutcomeRejected),
				Comment: "redo the checklist",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(checklist.StatusRejected))
		})

		It("should publish a validated event", func() {
			_, err := service.Validate(ctx, 100, 42, &checklist.ValidateDTO{
				Outcome: string(checklist.OutcomeApproved),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(mockPublisher.EventTypes()).To(ConsistOf(events.EventTypeChecklistValidated))
		})

		It("should refuse an unknown outcome", func() {
			_, err := service.Validate(ctx, 100, 42, &checklist.ValidateDTO{
				Outcome: "maybe",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should tolerate an undecodable validator signature", func() {
			result, err := service.Validate(ctx, 100, 42, &checklist.ValidateDTO{
				Outcome:   string(checklist.OutcomeApproved),
				Signature: "data:image/png;base64,garbage",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.CoordinatorSignature).To(BeNil())
		})

		Context("when the checklist already has a terminal outcome", func() {
			BeforeEach(func() {
				inst.Status = checklist.StatusApproved
			})

			It("should return an already validated conflict", func() {
				_, err := service.Validate(ctx, 100, 42, &checklist.ValidateDTO{
					Outcome: string(checklist.OutcomeRejected),
				})

				Expect(appErrorCode(err)).To(Equal(apperrors.ErrCodeAlreadyValidated))
			})
		})

		Context("when the checklist is still being filled", func() {
			BeforeEach(func() {
				inst.Status = checklist.StatusInProgress
			})

			It("should refuse the validation", func() {
				_, err := service.Validate(ctx, 100, 42, &checklist.ValidateDTO{
					Outcome: string(checklist.OutcomeApproved),
				})

				Expect(err).To(MatchError(apperrors.ErrInvalidStatus))
			})
		})
	})

	Describe("GetByID", func() {
		Context("when the checklist does not exist", func() {
			It("should return a not found error", func() {
				_, err := service.GetByID(999)
				Expect(err).To(MatchError(apperrors.ErrChecklistNotFound))
			})
		})

		Context("when the repository fails", func() {
			BeforeEach(func() {
				mockRepo.SetShouldFail(true, errors.New("database error"))
			})

			It("should return the error", func() {
				_, err := service.GetByID(1)
				Expect(err).To(MatchError(ContainSubstring("database error")))
			})
		})
	})
})
