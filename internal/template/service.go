package template

import (
	"log/slog"
	"strings"

	apperrors "github.com/lslops/checklist-management/internal"
)

type RepositoryAPI interface {
	GetAll() ([]*Template, error)
	GetByID(id int64) (*Template, error)
	GetByName(name string) (*Template, error)
	GetActiveByKind(kind Kind) (*Template, error)
	Create(t *Template) error
	Update(t *Template) error
	Deactivate(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll() ([]*Template, error) {
	templates, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list templates", "error", err)
		return nil, err
	}
	return templates, nil
}

func (s *Service) GetByID(id int64) (*Template, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.ErrTemplateNotFound
	}
	return t, nil
}

// Create stores the template with its items in one write. Item positions
// follow the order of the request payload.
func (s *Service) Create(dto *CreateTemplateDTO) (*Template, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	existing, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Error("failed to check existing template", "error", err, "name", name)
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("template name already exists", apperrors.ErrCodeDuplicateName)
	}

	t := &Template{
		Name:     name,
		Kind:     Kind(dto.Kind),
		IsActive: true,
		Items:    make([]Item, 0, len(dto.Items)),
	}
	for i, item := range dto.Items {
		t.Items = append(t.Items, Item{
			Position:               i + 1,
			Question:               strings.TrimSpace(item.Question),
			Scored:                 item.Scored,
			RequiresCommentIfNotOK: item.RequiresCommentIfNotOK,
		})
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create template", "error", err, "name", name)
		return nil, err
	}

	s.logger.Info("template created", "template_id", t.ID, "kind", t.Kind, "items", len(t.Items))
	return t, nil
}

func (s *Service) Update(id int64, dto *UpdateTemplateDTO) (*Template, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name != t.Name {
			existing, err := s.repo.GetByName(name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperrors.NewConflictError("template name already exists", apperrors.ErrCodeDuplicateName)
			}
			t.Name = name
		}
	}
	if dto.IsActive != nil {
		t.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update template", "error", err, "template_id", id)
		return nil, err
	}
	return t, nil
}

// Deactivate retires a template. Existing instances keep their item set.
func (s *Service) Deactivate(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate template", "error", err, "template_id", id)
		return err
	}
	s.logger.Info("template deactivated", "template_id", id)
	return nil
}
