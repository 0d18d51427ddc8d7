package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// ManagerService covers everything a manager does to their roster: creating
// client accounts, listing and summarizing them, partial profile updates, and
// the one true hard-delete path (client cascade).
type ManagerService interface {
	RegisterClient(ctx context.Context, managerID int64, name, email, password string) (*domain.User, error)
	GetClients(ctx context.Context, managerID int64) ([]domain.User, error)
	// ClientSummaries returns one roster row per client with the derived
	// active-workout count and most recent log timestamp.
	ClientSummaries(ctx context.Context, managerID int64) ([]domain.ClientSummary, error)
	UpdateClient(ctx context.Context, managerID, userID int64, patch domain.ClientPatch) (*domain.User, error)
	// DeleteClient removes the client and every row it owns, atomically.
	DeleteClient(ctx context.Context, managerID, userID int64) error
}

type managerService struct {
	userRepo repository.UserRepository
}

// NewManagerService creates a new instance of managerService.
func NewManagerService(userRepo repository.UserRepository) ManagerService {
	return &managerService{userRepo: userRepo}
}

func (s *managerService) RegisterClient(ctx context.Context, managerID int64, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, validationf("name, email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalf("hash password: %v", err)
	}

	client := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
		ManagerID:    &managerID,
	}
	id, err := s.userRepo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, internalf("create client: %v", err)
	}
	client.ID = id
	client.PasswordHash = ""
	return client, nil
}

func (s *managerService) GetClients(ctx context.Context, managerID int64) ([]domain.User, error) {
	clients, err := s.userRepo.ListClientsByManager(ctx, managerID)
	if err != nil {
		return nil, internalf("list clients: %v", err)
	}
	for i := range clients {
		clients[i].PasswordHash = ""
	}
	return clients, nil
}

func (s *managerService) ClientSummaries(ctx context.Context, managerID int64) ([]domain.ClientSummary, error) {
	summaries, err := s.userRepo.ListClientSummaries(ctx, managerID)
	if err != nil {
		return nil, internalf("client summaries: %v", err)
	}
	return summaries, nil
}

func (s *managerService) UpdateClient(ctx context.Context, managerID, userID int64, patch domain.ClientPatch) (*domain.User, error) {
	if patch.IsEmpty() {
		return nil, validationf("no fields to update")
	}

	client, err := s.ownedClient(ctx, managerID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationf("name cannot be blank")
		}
		client.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, validationf("email cannot be blank")
		}
		client.Email = email
	}
	if patch.Password != nil {
		password := strings.TrimSpace(*patch.Password)
		if password == "" {
			return nil, validationf("password cannot be blank")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, internalf("hash password: %v", err)
		}
		client.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, internalf("update client: %v", err)
	}
	client.PasswordHash = ""
	return client, nil
}

func (s *managerService) DeleteClient(ctx context.Context, managerID, userID int64) error {
	if _, err := s.ownedClient(ctx, managerID, userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteClientCascade(ctx, userID); err != nil {
		return internalf("delete client: %v", err)
	}
	return nil
}

// ownedClient is the manager → client ownership check shared by the mutating
// operations. Missing and foreign clients are indistinguishable to the caller.
func (s *managerService) ownedClient(ctx context.Context, managerID, userID int64) (*domain.User, error) {
	client, err := s.userRepo.GetManagedClient(ctx, userID, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotManaged
		}
		return nil, internalf("fetch client: %v", err)
	}
	return client, nil
}
