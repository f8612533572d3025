package user

import (
	"SurePicks-Backend/domain"
	"SurePicks-Backend/entities"
	"SurePicks-Backend/internal/utils/mailing"
	"SurePicks-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.MeResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &entities.User{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("<p>Hi %s, welcome to SurePicks.</p>", newUser.FullName)
	if err := mailing.SendMail(newUser.Email, "Welcome to SurePicks", body); err != nil {
		log.Printf("failed to send welcome mail to %s: %v", newUser.Email, err)
	}

	return &domain.RegisterResponse{
		ID:       newUser.ID.String(),
		FullName: newUser.FullName,
		Email:    newUser.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	found, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(found.ID.String(), found.Role)
	return &domain.LoginResponse{
		Token: token,
		Role:  found.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.MeResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &domain.MeResponse{
		ID:       found.ID.String(),
		FullName: found.FullName,
		Email:    found.Email,
		Role:     found.Role,
	}, nil
}
