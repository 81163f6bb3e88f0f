package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/roomshare/api/internal/auth"
	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/repository"
)

// AuthService coordinates registration, credential validation and token issuance.
type AuthService struct {
	users       repository.UsersRepository
	jwt         *auth.JWTManager
	phoneRegion string
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager, phoneRegion string) *AuthService {
	return &AuthService{users: users, jwt: jwtManager, phoneRegion: phoneRegion}
}

// Register creates a user account and signs it in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Password == "" {
		return nil, ValidationError{Message: "name, email, password and number are required"}
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	number, err := normalizeContactNumber(req.Number, s.phoneRegion)
	if err != nil {
		return nil, err
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	switch role {
	case "":
		role = auth.RoleUser
	case auth.RoleUser, auth.RoleBroker:
	default:
		return nil, ValidationError{Message: "role must be user or broker"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Profession:   strings.TrimSpace(req.Profession),
		Number:       number,
		Location:     strings.TrimSpace(req.Location),
		Photo:        strings.TrimSpace(req.Photo),
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.issue(user)
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ValidationError{Message: "email and password must not be empty"}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(*user)
	return &dto.LoginResponse{AccessToken: token, User: &resp}, nil
}
