package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/repository"
)

var ErrClientNameRequired = errors.New("client name is required")

type clientService struct {
	clientRepo repository.ClientRepository

	mu     sync.Mutex
	cached []domain.Client
	valid  bool
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) CreateClient(ctx context.Context, name, address, phone string) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrClientNameRequired
	}
	client := &domain.Client{Name: name, Address: strings.TrimSpace(address), Phone: strings.TrimSpace(phone)}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	s.MarkStale()
	return client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, client *domain.Client) error {
	if strings.TrimSpace(client.Name) == "" {
		return ErrClientNameRequired
	}
	if _, err := s.clientRepo.GetByID(ctx, client.ID); err != nil {
		return err
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return err
	}
	s.MarkStale()
	return nil
}

// ListClients serves the directory from cache. The cache is invalidated by
// local writes and by change notifications from other writers.
func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	s.mu.Lock()
	if s.valid {
		out := make([]domain.Client, len(s.cached))
		copy(out, s.cached)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cached = clients
	s.valid = true
	s.mu.Unlock()

	out := make([]domain.Client, len(clients))
	copy(out, clients)
	return out, nil
}

func (s *clientService) MarkStale() {
	s.mu.Lock()
	s.cached = nil
	s.valid = false
	s.mu.Unlock()
}
