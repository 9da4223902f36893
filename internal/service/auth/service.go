package auth

import (
	"context"

	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository"
)

// Service answers the role-tagged email lookup. There is no credential
// verification and no session issuance here: the endpoint reports which
// directory tables know the address, nothing more.
type Service struct {
	repo repository.AuthRepository
}

func NewService(repo repository.AuthRepository) *Service {
	return &Service{repo: repo}
}

// Lookup returns every match for the email across patients, physicians,
// assistants and administrators, in that scan order. The result is empty,
// never nil, when nothing matches.
func (s *Service) Lookup(ctx context.Context, email string) ([]*model.AuthMatch, error) {
	matches, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []*model.AuthMatch{}
	}
	return matches, nil
}
