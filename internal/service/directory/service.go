package directory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
	apperrors "github.com/agendasalud/clinic-api/pkg/errors"
	"github.com/agendasalud/clinic-api/pkg/security"
)

// Service is the plain pass-through CRUD for physicians, assistants and
// administrators. Passwords are bcrypt-hashed on every write.
type Service struct {
	physicians     repository.PhysicianRepository
	assistants     repository.AssistantRepository
	administrators repository.AdministratorRepository
}

func NewService(physicians repository.PhysicianRepository, assistants repository.AssistantRepository, administrators repository.AdministratorRepository) *Service {
	return &Service{
		physicians:     physicians,
		assistants:     assistants,
		administrators: administrators,
	}
}

func notFoundOr(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, err)
	}
	return err
}

func (s *Service) ListPhysicians(ctx context.Context) ([]*model.Physician, error) {
	return s.physicians.List(ctx)
}

func (s *Service) GetPhysician(ctx context.Context, id int64) (*model.Physician, error) {
	p, err := s.physicians.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "physician")
	}
	return p, nil
}

func (s *Service) CreatePhysician(ctx context.Context, req *model.CreateStaffRequest) (*model.Physician, error) {
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	p := &model.Physician{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Specialty: req.Specialty,
	}
	if err := s.physicians.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePhysician(ctx context.Context, id int64, req *model.UpdateStaffRequest) (*model.Physician, error) {
	current, err := s.physicians.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "physician")
	}

	password := current.Password
	if req.Password != "" {
		if password, err = security.HashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	p := &model.Physician{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  password,
		Specialty: req.Specialty,
	}
	if err := s.physicians.Update(ctx, p); err != nil {
		return nil, notFoundOr(err, "physician")
	}
	return p, nil
}

func (s *Service) DeletePhysician(ctx context.Context, id int64) error {
	if err := s.physicians.Delete(ctx, id); err != nil {
		return notFoundOr(err, "physician")
	}
	return nil
}

func (s *Service) ListAssistants(ctx context.Context) ([]*model.Assistant, error) {
	return s.assistants.List(ctx)
}

func (s *Service) GetAssistant(ctx context.Context, id int64) (*model.Assistant, error) {
	a, err := s.assistants.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "assistant")
	}
	return a, nil
}

func (s *Service) CreateAssistant(ctx context.Context, req *model.CreateStaffRequest) (*model.Assistant, error) {
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	a := &model.Assistant{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
	}
	if err := s.assistants.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateAssistant(ctx context.Context, id int64, req *model.UpdateStaffRequest) (*model.Assistant, error) {
	current, err := s.assistants.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "assistant")
	}

	password := current.Password
	if req.Password != "" {
		if password, err = security.HashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	a := &model.Assistant{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  password,
	}
	if err := s.assistants.Update(ctx, a); err != nil {
		return nil, notFoundOr(err, "assistant")
	}
	return a, nil
}

func (s *Service) DeleteAssistant(ctx context.Context, id int64) error {
	if err := s.assistants.Delete(ctx, id); err != nil {
		return notFoundOr(err, "assistant")
	}
	return nil
}

func (s *Service) ListAdministrators(ctx context.Context) ([]*model.Administrator, error) {
	return s.administrators.List(ctx)
}

func (s *Service) GetAdministrator(ctx context.Context, id int64) (*model.Administrator, error) {
	a, err := s.administrators.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "administrator")
	}
	return a, nil
}

func (s *Service) CreateAdministrator(ctx context.Context, req *model.CreateStaffRequest) (*model.Administrator, error) {
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	a := &model.Administrator{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
	}
	if err := s.administrators.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateAdministrator(ctx context.Context, id int64, req *model.UpdateStaffRequest) (*model.Administrator, error) {
	current, err := s.administrators.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "administrator")
	}

	password := current.Password
	if req.Password != "" {
		if password, err = security.HashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	a := &model.Administrator{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  password,
	}
	if err := s.administrators.Update(ctx, a); err != nil {
		return nil, notFoundOr(err, "administrator")
	}
	return a, nil
}

func (s *Service) DeleteAdministrator(ctx context.Context, id int64) error {
	if err := s.administrators.Delete(ctx, id); err != nil {
		return notFoundOr(err, "administrator")
	}
	return nil
}
