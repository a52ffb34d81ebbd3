package user

import (
	"context"
	"errors"
	"strings"

	"github.com/26nm/careerpath/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmailTaken    = errors.New("email already taken")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrInternal      = errors.New("internal error")
)

// UpdateMeInput changes only the fields that are set. CurrentPassword must
// match when Password is set.
type UpdateMeInput struct {
	Email           *string
	Password        *string
	CurrentPassword string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Email = email
	}

	if in.Password != nil {
		pw := strings.TrimSpace(*in.Password)
		if !isValidPassword(pw) {
			return user.User{}, ErrInvalidInput
		}
		if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return user.User{}, ErrWrongPassword
		}
		hash, err := hashPassword(pw)
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.PasswordHash = hash
	}

	if err := s.users.Update(ctx, usr); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, ErrInternal
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func isValidPassword(pw string) bool {
	return len(pw) >= 8 && len(pw) <= 72
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrInternal
	}
	return string(hash), nil
}
