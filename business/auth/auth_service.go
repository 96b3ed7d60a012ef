package auth

import (
	"context"
	"errors"
	"fmt"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
	"shiftHire/pkg/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByPhone(ctx context.Context, phone string) (domain.User, error)
}

// TokenManager signs and verifies bearer tokens.
type TokenManager interface {
	GenerateJWT(userID, role string) (string, error)
	ParseJWT(token string) (*utils.Claims, error)
}

type authService struct {
	userRepo UserRepository
	validate *validator.Validate
	tokens   TokenManager
}

func NewAuthService(userRepo UserRepository, validate *validator.Validate, tokens TokenManager) *authService {
	return &authService{
		userRepo: userRepo,
		validate: validate,
		tokens:   tokens,
	}
}

var validRoles = map[string]bool{
	domain.RoleWorker:     true,
	domain.RoleRestaurant: true,
}

type RegisterInput struct {
	Phone    string
	Password string
	Role     string
	Name     string
	Email    *string
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (domain.TokenResponse, error) {
	if err := s.validate.Var(in.Phone, "required"); err != nil {
		return domain.TokenResponse{}, fmt.Errorf("%w: phone is required", domain.ErrInvalidInput)
	}

	if err := s.validate.Var(in.Password, "required,min=6,max=72"); err != nil {
		return domain.TokenResponse{}, fmt.Errorf("%w: password must be between 6 and 72 characters", domain.ErrInvalidInput)
	}

	if !validRoles[in.Role] {
		return domain.TokenResponse{}, fmt.Errorf("%w: role must be worker or restaurant", domain.ErrInvalidInput)
	}

	if err := s.validate.Var(in.Name, "required"); err != nil {
		return domain.TokenResponse{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	if in.Email != nil && *in.Email != "" {
		if err := s.validate.Var(*in.Email, "email"); err != nil {
			return domain.TokenResponse{}, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
	} else {
		in.Email = nil
	}

	// The unique index on phone still catches concurrent registrations.
	_, err := s.userRepo.FindByPhone(ctx, in.Phone)
	if err == nil {
		return domain.TokenResponse{}, fmt.Errorf("phone number %w", domain.ErrDuplicateResource)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to look up phone", "error", err)
		return domain.TokenResponse{}, err
	}

	// bcrypt counts bytes, so multibyte passwords can pass the rune check above.
	passwordHash, err := utils.HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.TokenResponse{}, fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrInvalidInput)
	}
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return domain.TokenResponse{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		Role:         in.Role,
		Name:         in.Name,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", "error", err)
		return domain.TokenResponse{}, err
	}

	return s.tokenResponse(newUser.ID, newUser.Role)
}

// Login fails with the same error for an unknown phone and a wrong password.
func (s *authService) Login(ctx context.Context, phone, password string) (domain.TokenResponse, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TokenResponse{}, domain.ErrInvalidCredentials
		}
		logger.Error("Failed to look up user", "error", err)
		return domain.TokenResponse{}, err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return domain.TokenResponse{}, domain.ErrInvalidCredentials
	}

	return s.tokenResponse(user.ID, user.Role)
}

func (s *authService) IssueToken(userID, role string) (string, error) {
	token, err := s.tokens.GenerateJWT(userID, role)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return "", errors.New("failed to generate token")
	}

	return token, nil
}

// Authenticate never tells the caller which check failed.
func (s *authService) Authenticate(token string) (domain.Identity, error) {
	claims, err := s.tokens.ParseJWT(token)
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	if !validRoles[claims.Role] {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

func (s *authService) tokenResponse(userID, role string) (domain.TokenResponse, error) {
	token, err := s.IssueToken(userID, role)
	if err != nil {
		return domain.TokenResponse{}, err
	}

	return domain.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      userID,
		Role:        role,
	}, nil
}
