package checklist

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/lslops/checklist-management/internal"
	"github.com/lslops/checklist-management/internal/core/events"
	"github.com/lslops/checklist-management/internal/template"
)

type RepositoryAPI interface {
	Create(inst *Instance) error
	CreateBatch(instances []*Instance) error
	GetByID(id int64) (*Instance, error)
	GetAll(limit, offset int) ([]*Instance, error)
	GetPending() ([]*Instance, error)
	Update(inst *Instance) error
	UpdateAnswer(a *Answer) error
	AppendValidation(inst *Instance, log *ValidationLog) error
}

// TemplateProviderAPI is the slice of the template repository the checklist
// workflow needs.
type TemplateProviderAPI interface {
	GetByID(id int64) (*template.Template, error)
	GetActiveByKind(kind template.Kind) (*template.Template, error)
}

type EventPublisherAPI interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      RepositoryAPI
	templates TemplateProviderAPI
	publisher EventPublisherAPI
	cfg       apperrors.ChecklistConfig
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, templates TemplateProviderAPI, publisher EventPublisherAPI, cfg apperrors.ChecklistConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		templates: templates,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *Service) GetByID(id int64) (*Instance, error) {
	inst, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, apperrors.ErrChecklistNotFound
	}
	return inst, nil
}

func (s *Service) GetAll(limit, offset int) ([]*Instance, error) {
	instances, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list checklists", "error", err)
		return nil, err
	}
	return instances, nil
}

// GetPending lists the instances waiting on a validator.
func (s *Service) GetPending() ([]*Instance, error) {
	instances, err := s.repo.GetPending()
	if err != nil {
		s.logger.Error("failed to list pending checklists", "error", err)
		return nil, err
	}
	return instances, nil
}

// Create instantiates a template. Every item gets an answer row up front,
// defaulting to not_applicable, so filling is always an update and exports
// never miss a question.
func (s *Service) Create(dto *CreateChecklistDTO, createdBy int64) (*Instance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := s.templates.GetByID(dto.TemplateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, apperrors.ErrTemplateNotFound
	}

	leaderID := createdBy
	if dto.LeaderID != nil {
		leaderID = *dto.LeaderID
	}
	evaluatorID := createdBy
	if dto.EvaluatorID != nil {
		evaluatorID = *dto.EvaluatorID
	}

	inst := &Instance{
		ExternalID:  uuid.NewString(),
		TemplateID:  tmpl.ID,
		EmployeeID:  dto.EmployeeID,
		EquipmentID: dto.EquipmentID,
		SectorID:    dto.SectorID,
		LeaderID:    leaderID,
		EvaluatorID: evaluatorID,
		CreatedBy:   createdBy,
		FillDate:    dto.ParsedFillDate(),
		Status:      StatusInProgress,
		Answers:     seedAnswers(tmpl),
	}

	if err := s.repo.Create(inst); err != nil {
		s.logger.Error("failed to create checklist", "error", err, "template_id", tmpl.ID)
		return nil, err
	}

	s.logger.Info("checklist created",
		"checklist_id", inst.ID,
		"external_id", inst.ExternalID,
		"template_id", tmpl.ID,
		"answers_seeded", len(inst.Answers))
	return inst, nil
}

// GenerateOnboardingSchedule creates the full training schedule for a new
// employee: one daily checklist per training day and one weekly evaluation
// per training week, all draft. Day i lands on start+i-1; weekly evaluation
// i lands on start+7(i-1).
func (s *Service) GenerateOnboardingSchedule(employeeID, leaderID, evaluatorID, createdBy, sectorID int64, startDate time.Time) (int, int, error) {
	daily, err := s.templates.GetActiveByKind(template.KindDaily)
	if err != nil {
		return 0, 0, err
	}
	weekly, err := s.templates.GetActiveByKind(template.KindWeekly)
	if err != nil {
		return 0, 0, err
	}
	if daily == nil || weekly == nil {
		return 0, 0, apperrors.ErrTemplateNotFound
	}

	instances := make([]*Instance, 0, s.cfg.DailyCount+s.cfg.WeeklyCount)

	for i := 1; i <= s.cfg.DailyCount; i++ {
		day := i
		week := (i-1)/7 + 1
		instances = append(instances, &Instance{
			ExternalID:  uuid.NewString(),
			TemplateID:  daily.ID,
			EmployeeID:  &employeeID,
			SectorID:    sectorID,
			LeaderID:    leaderID,
			EvaluatorID: evaluatorID,
			CreatedBy:   createdBy,
			FillDate:    startDate.AddDate(0, 0, i-1),
			DayNumber:   &day,
			WeekNumber:  &week,
			Status:      StatusDraft,
			Answers:     seedAnswers(daily),
		})
	}

	for i := 1; i <= s.cfg.WeeklyCount; i++ {
		week := i
		instances = append(instances, &Instance{
			ExternalID:  uuid.NewString(),
			TemplateID:  weekly.ID,
			EmployeeID:  &employeeID,
			SectorID:    sectorID,
			LeaderID:    leaderID,
			EvaluatorID: evaluatorID,
			CreatedBy:   createdBy,
			FillDate:    startDate.AddDate(0, 0, 7*(i-1)),
			WeekNumber:  &week,
			Status:      StatusDraft,
			Answers:     seedAnswers(weekly),
		})
	}

	if err := s.repo.CreateBatch(instances); err != nil {
		s.logger.Error("failed to create onboarding schedule", "error", err, "employee_id", employeeID)
		return 0, 0, err
	}

	return s.cfg.DailyCount, s.cfg.WeeklyCount, nil
}

// FillAnswers applies a batch of answers to an instance. Every answer is
// checked against the template item set; a negative answer on an item that
// demands justification must carry a comment.
func (s *Service) FillAnswers(id int64, dto *FillAnswersDTO) (*Instance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inst, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !inst.CanFill() {
		return nil, apperrors.ErrInvalidStatus
	}

	tmpl, err := s.templates.GetByID(inst.TemplateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, apperrors.ErrTemplateNotFound
	}

	items := make(map[int64]*template.Item, len(tmpl.Items))
	for i := range tmpl.Items {
		items[tmpl.Items[i].ID] = &tmpl.Items[i]
	}
	existing := make(map[int64]*Answer, len(inst.Answers))
	for i := range inst.Answers {
		existing[inst.Answers[i].ItemID] = &inst.Answers[i]
	}

	for _, a := range dto.Answers {
		item, ok := items[a.ItemID]
		if !ok {
			return nil, apperrors.NewValidationError("answer references an item outside the checklist template", apperrors.ErrCodeUnknownItem)
		}
		if !ValidAnswerValue(item, a.Value) {
			return nil, apperrors.NewValidationError("invalid value for item", apperrors.ErrCodeInvalidAnswer)
		}
		if item.RequiresCommentIfNotOK && a.Value == AnswerNo && a.Comment == "" {
			return nil, apperrors.NewValidationError("a comment is mandatory for a negative answer on this item", apperrors.ErrCodeCommentRequired)
		}
	}

	for _, a := range dto.Answers {
		ans := existing[a.ItemID]
		if ans == nil {
			ans = &Answer{InstanceID: inst.ID, ItemID: a.ItemID}
		}
		ans.Value = a.Value
		ans.Comment = a.Comment
		if err := s.repo.UpdateAnswer(ans); err != nil {
			s.logger.Error("failed to update answer", "error", err, "checklist_id", id, "item_id", a.ItemID)
			return nil, err
		}
	}

	if inst.Status == StatusDraft {
		inst.Status = StatusInProgress
		if err := s.repo.Update(inst); err != nil {
			return nil, err
		}
	}

	s.logger.Info("answers updated", "checklist_id", id, "answers", len(dto.Answers))
	return s.GetByID(id)
}

// Sign stores a signature image on one of the instance slots. An undecodable
// payload stores a null signature and returns a warning, matching how the
// field devices behave when a canvas export is truncated.
func (s *Service) Sign(id int64, dto *SignDTO) (*SignResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inst, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inst.IsTerminal() {
		return nil, apperrors.ErrInvalidStatus
	}

	role := SignatureRole(dto.Role)
	resp := &SignResponse{Role: dto.Role}

	data, err := DecodeSignature(dto.Image)
	if err != nil {
		if !errors.Is(err, ErrSignatureUndecodable) {
			return nil, err
		}
		s.logger.Warn("signature payload undecodable, storing null signature",
			"checklist_id", id,
			"role", role,
			"error", err)
		resp.Warning = "signature image could not be decoded; nothing was stored"
		inst.SetSignature(role, nil)
	} else {
		inst.SetSignature(role, data)
		resp.Stored = true
	}

	if err := s.repo.Update(inst); err != nil {
		s.logger.Error("failed to store signature", "error", err, "checklist_id", id)
		return nil, err
	}
	return resp, nil
}

// Complete closes the filling stage. Weekly evaluations are scored and
// decided immediately by threshold; everything else moves on to validation,
// or to non_compliant when any answer is negative. The non-compliance event
// goes out only after the row is saved.
func (s *Service) Complete(ctx context.Context, id int64) (*Instance, error) {
	inst, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !inst.CanComplete() {
		return nil, apperrors.ErrInvalidStatus
	}
	if !inst.HasFillSignatures() {
		return nil, apperrors.ErrMissingSignatures
	}

	tmpl, err := s.templates.GetByID(inst.TemplateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, apperrors.ErrTemplateNotFound
	}

	nonCompliant := false
	for _, a := range inst.Answers {
		if a.Value == AnswerNo {
			nonCompliant = true
			break
		}
	}

	switch {
	case tmpl.Kind == template.KindWeekly && hasScoredItems(tmpl):
		score := s.computeScore(tmpl, inst.Answers)
		inst.TotalScore = &score
		if score >= float64(s.cfg.ApprovalMinScore) {
			inst.Status = StatusApproved
		} else {
			inst.Status = StatusRejected
		}
	case nonCompliant:
		inst.Status = StatusNonCompliant
	default:
		inst.Status = StatusAwaitingValidation
	}

	if err := s.repo.Update(inst); err != nil {
		s.logger.Error("failed to complete checklist", "error", err, "checklist_id", id)
		return nil, err
	}

	s.logger.Info("checklist completed",
		"checklist_id", inst.ID,
		"external_id", inst.ExternalID,
		"status", inst.Status,
		"total_score", inst.TotalScore)

	if inst.Status == StatusNonCompliant {
		event := events.NewChecklistNonCompliantEvent(inst.ID, inst.ExternalID, tmpl.Name, inst.SectorID, inst.CreatedBy)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish non-compliance event", "error", err, "checklist_id", inst.ID)
		}
	}
	if err := s.publisher.Publish(ctx, events.NewChecklistCompletedEvent(inst.ID, inst.ExternalID, string(inst.Status))); err != nil {
		s.logger.Error("failed to publish completion event", "error", err, "checklist_id", inst.ID)
	}

	return inst, nil
}

// Validate records a validator's verdict. Each verdict is appended to the
// log and the instance status always mirrors the newest log entry.
func (s *Service) Validate(ctx context.Context, id, validatorID int64, dto *ValidateDTO) (*Instance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inst, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inst.IsTerminal() {
		return nil, apperrors.NewConflictError("checklist has already been validated", apperrors.ErrCodeAlreadyValidated)
	}
	if !inst.CanValidate() {
		return nil, apperrors.ErrInvalidStatus
	}

	var signature []byte
	if dto.Signature != "" {
		signature, err = DecodeSignature(dto.Signature)
		if err != nil {
			if !errors.Is(err, ErrSignatureUndecodable) {
				return nil, err
			}
			s.logger.Warn("validator signature undecodable, storing null signature",
				"checklist_id", id,
				"validator_id", validatorID)
			signature = nil
		}
	}

	log := &ValidationLog{
		InstanceID:  inst.ID,
		ValidatorID: validatorID,
		Outcome:     ValidationOutcome(dto.Outcome),
		Comment:     dto.Comment,
		Signature:   signature,
	}

	inst.Status = Status(log.Outcome)
	inst.CoordinatorComment = dto.Comment
	inst.CoordinatorSignature = signature

	if err := s.repo.AppendValidation(inst, log); err != nil {
		s.logger.Error("failed to record validation", "error", err, "checklist_id", id)
		return nil, err
	}

	s.logger.Info("checklist validated",
		"checklist_id", inst.ID,
		"validator_id", validatorID,
		"outcome", log.Outcome)

	if err := s.publisher.Publish(ctx, events.NewChecklistValidatedEvent(inst.ID, inst.ExternalID, validatorID, dto.Outcome)); err != nil {
		s.logger.Error("failed to publish validation event", "error", err, "checklist_id", inst.ID)
	}

	return inst, nil
}

func seedAnswers(tmpl *template.Template) []Answer {
	answers := make([]Answer, 0, len(tmpl.Items))
	for _, item := range tmpl.Items {
		answers = append(answers, Answer{
			ItemID: item.ID,
			Value:  AnswerNotApplicable,
		})
	}
	return answers
}

func hasScoredItems(tmpl *template.Template) bool {
	for _, item := range tmpl.Items {
		if item.Scored {
			return true
		}
	}
	return false
}

// computeScore totals the numeric answers of scored items. Unanswered scored
// items (still not_applicable) contribute nothing to the total.
func (s *Service) computeScore(tmpl *template.Template, answers []Answer) float64 {
	scored := make(map[int64]bool, len(tmpl.Items))
	for _, item := range tmpl.Items {
		if item.Scored {
			scored[item.ID] = true
		}
	}

	var sum float64
	for _, a := range answers {
		if !scored[a.ItemID] {
			continue
		}
		value, err := ParseScore(a.Value)
		if err != nil {
			continue
		}
		sum += value
	}
	return sum
}
