package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/roomshare/api/internal/auth"
	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/repository"
)

// UserService encapsulates profile lookups and administrative operations for users.
type UserService struct {
	repo        repository.UsersRepository
	phoneRegion string
}

// NewUserService builds a new UserService instance.
func NewUserService(repo repository.UsersRepository, phoneRegion string) *UserService {
	return &UserService{repo: repo, phoneRegion: phoneRegion}
}

// Profile returns the caller's own account.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(*user)
	return &resp, nil
}

// ListUsers returns all users as DTOs.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses, nil
}

// CreateUser creates a new user with the supplied role.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	req.Role = strings.TrimSpace(req.Role)
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ValidationError{Message: "email and password are required"}
	}
	if req.Role == "" {
		req.Role = auth.RoleUser
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	var number string
	if strings.TrimSpace(req.Number) != "" {
		number, err = normalizeContactNumber(req.Number, s.phoneRegion)
		if err != nil {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Number:       number,
	})
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(*user)
	return &resp, nil
}

// UpdateUser mutates selected user fields.
func (s *UserService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var patch repository.UserPatch

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, ValidationError{Message: "name cannot be empty"}
		}
		patch.Name = &trimmed
	}

	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}

	if req.Role != nil {
		trimmed := strings.TrimSpace(*req.Role)
		if trimmed == "" {
			return nil, ValidationError{Message: "role cannot be empty"}
		}
		patch.Role = &trimmed
	}

	if req.Password != nil {
		if strings.TrimSpace(*req.Password) == "" {
			return nil, ValidationError{Message: "password cannot be empty"}
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		pwd := string(hashed)
		patch.PasswordHash = &pwd
	}

	user, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(*user)
	return &resp, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}

func toUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Profession: u.Profession,
		Number:     u.Number,
		Location:   u.Location,
		Photo:      u.Photo,
	}
}
