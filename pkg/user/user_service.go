package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FoodBridge/domain"
	"FoodBridge/entities"
	"FoodBridge/internal/utils"
	"FoodBridge/internal/utils/mailing"
	"FoodBridge/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenDuration = 30 * time.Minute

type (
	UserService interface {
		Register(ctx context.Context, req domain.UserRegisterRequest) (*domain.UserResponse, error)
		Login(ctx context.Context, req domain.UserLoginRequest) (*domain.UserLoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
	}
}

func (s *userService) Register(ctx context.Context, req domain.UserRegisterRequest) (*domain.UserResponse, error) {
	userType, ok := entities.ParseUserType(req.Type)
	if !ok {
		return nil, domain.ErrInvalidUserType
	}

	exists, err := s.userRepository.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:             uuid.New(),
		Type:           userType,
		Name:           req.Name,
		DocumentNumber: req.DocumentNumber,
		NgoType:        req.NgoType,
		Email:          req.Email,
		Phone:          req.Phone,
		PostalCode:     req.PostalCode,
		Street:         req.Street,
		Number:         req.Number,
		Neighborhood:   req.Neighborhood,
		City:           req.City,
		State:          req.State,
		PasswordHash:   string(hash),
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.UserLoginRequest) (*domain.UserLoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), string(user.Type))

	return &domain.UserLoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"user_id": user.ID.String(),
	}, resetTokenDuration)
	if err != nil {
		return err
	}

	expiry := time.Now().Add(resetTokenDuration)
	user.PasswordResetToken = &token
	user.PasswordResetExpiry = &expiry
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Click <a href=%q>here</a> to reset your password. The link expires in 30 minutes.</p>",
		user.Name, resetLink,
	)

	return s.mailer.Send(user.Email, "Password Reset", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrResetTokenInvalid
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	// The stored token must match: issuing a new token invalidates old links.
	if user.PasswordResetToken == nil || *user.PasswordResetToken != req.Token {
		return domain.ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.PasswordResetToken = nil
	user.PasswordResetExpiry = nil

	return s.userRepository.UpdateUser(ctx, user)
}

func toUserResponse(u *entities.User) *domain.UserResponse {
	return &domain.UserResponse{
		ID:             u.ID.String(),
		Type:           string(u.Type),
		Name:           u.Name,
		DocumentNumber: u.DocumentNumber,
		NgoType:        u.NgoType,
		Email:          u.Email,
		Phone:          u.Phone,
		PostalCode:     u.PostalCode,
		Street:         u.Street,
		Number:         u.Number,
		Neighborhood:   u.Neighborhood,
		City:           u.City,
		State:          u.State,
		CreatedAt:      u.CreatedAt,
	}
}
