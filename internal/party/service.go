package party

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=party
type Repository interface {
	GetParty(ctx context.Context, id uuid.UUID) (*Party, error)
	FindByEmail(ctx context.Context, email string) (*Party, error)
}

// Service is a read-only directory over the identity provider's party and
// profile rows.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Party, error) {
	return s.repo.GetParty(ctx, id)
}

// FindByEmail resolves a normalized email to a registered party.
// Returns ErrNotFound when no account exists for the address.
func (s *Service) FindByEmail(ctx context.Context, email string) (*Party, error) {
	return s.repo.FindByEmail(ctx, NormalizeEmail(email))
}
