package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetUser        = "user retrieved successfully"
	MessageSuccessForgotPassword = "password reset email sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetUser        = "failed to retrieve user"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserType    = errors.New("type must be business or ngo")
	ErrResetTokenInvalid  = errors.New("password reset token is invalid or expired")
)

type (
	UserRegisterRequest struct {
		Type           string  `json:"type" validate:"required"`
		Name           string  `json:"name" validate:"required"`
		DocumentNumber string  `json:"document_number" validate:"required"`
		NgoType        *string `json:"ngo_type,omitempty"`
		Email          string  `json:"email" validate:"required,email"`
		Phone          string  `json:"phone" validate:"required"`
		Password       string  `json:"password" validate:"required,min=8"`

		PostalCode   string `json:"postal_code" validate:"required"`
		Street       string `json:"street" validate:"required"`
		Number       string `json:"number" validate:"required"`
		Neighborhood string `json:"neighborhood" validate:"required"`
		City         string `json:"city" validate:"required"`
		State        string `json:"state" validate:"required"`
	}

	UserLoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserLoginResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	UserResponse struct {
		ID             string    `json:"id"`
		Type           string    `json:"type"`
		Name           string    `json:"name"`
		DocumentNumber string    `json:"document_number"`
		NgoType        *string   `json:"ngo_type,omitempty"`
		Email          string    `json:"email"`
		Phone          string    `json:"phone"`
		PostalCode     string    `json:"postal_code"`
		Street         string    `json:"street"`
		Number         string    `json:"number"`
		Neighborhood   string    `json:"neighborhood"`
		City           string    `json:"city"`
		State          string    `json:"state"`
		CreatedAt      time.Time `json:"created_at"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
)
