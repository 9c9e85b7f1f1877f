package service

import (
	"errors"
	"strings"

	"go-shop-api/internal/apperr"
	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"
	"go-shop-api/pkg/jwt"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(email, password, fullName string) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)
	Profile(userID uint) (*model.UserResponse, error)
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(email, password, fullName string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.New(apperr.Validation, "Valid email required")
	}
	if len(password) < 6 {
		return nil, apperr.New(apperr.Validation, "Password must be at least 6 characters")
	}

	// Duplicate check before insert; the unique index backs it up.
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apperr.New(apperr.Conflict, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(err, apperr.Internal, "Registration failed")
	}

	user := &model.User{
		Email:    email,
		FullName: fullName,
		Role:     model.RoleCustomer,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Registration failed")
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Registration failed")
	}

	return s.respond(user)
}

func (s *authService) Login(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials")
	}
	if !user.CheckPassword(password) {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	return s.respond(user)
}

func (s *authService) Profile(userID uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to fetch profile")
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) respond(user *model.User) (*AuthResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to generate token")
	}
	return &AuthResponse{Token: token, User: user.ToResponse()}, nil
}
