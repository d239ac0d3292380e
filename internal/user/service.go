package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dozr/sleeptrack/internal/auth"
)

// Error messages double as the user-facing strings in the response envelope.
var (
	ErrNotFound      = errors.New("Username not found")
	ErrUsernameTaken = errors.New("Username already exists")
)

const defaultRole = "USER"

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Create registers a new user with a bcrypt-hashed password and the default
// role. The existence check and the insert are separate statements; two
// concurrent signups for the same username can race past the check, in which
// case the unique index rejects the second insert.
func (s *Service) Create(ctx context.Context, username, password string) (*User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:       uuid.NewString(),
		Username: username,
		Password: hash,
		Role:     defaultRole,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Lookup implements auth.CredentialSource.
func (s *Service) Lookup(ctx context.Context, username string) (auth.Principal, error) {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return auth.Principal{}, err
	}
	return auth.Principal{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		PasswordHash: u.Password,
	}, nil
}
