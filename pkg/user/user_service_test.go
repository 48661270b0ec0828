package user

import (
	"context"
	"testing"
	"time"

	"FoodBridge/domain"
	"FoodBridge/entities"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *entities.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, u *entities.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenUser(userId string, role string) string {
	args := m.Called(userId, role)
	return args.String(0)
}

func (m *MockJWTService) ValidateTokenUser(token string) (*jwtlib.Token, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwtlib.Token), args.Error(1)
}

func (m *MockJWTService) GetUserIDByToken(token string) (string, string, error) {
	args := m.Called(token)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockJWTService) GenerateTokenForgetPassword(data map[string]any, duration time.Duration) (string, error) {
	args := m.Called(data, duration)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) ValidateTokenForgetPassword(token string) (jwtlib.MapClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(jwtlib.MapClaims), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(toEmail, subject, body string) error {
	args := m.Called(toEmail, subject, body)
	return args.Error(0)
}

func newUserTestService() (UserService, *MockUserRepository, *MockJWTService, *MockMailer) {
	users := new(MockUserRepository)
	jwtService := new(MockJWTService)
	mailer := new(MockMailer)
	return NewUserService(users, jwtService, mailer), users, jwtService, mailer
}

func TestRegister_Success(t *testing.T) {
	svc, users, _, _ := newUserTestService()

	users.On("CheckEmailExists", mock.Anything, "contato@padariacentral.com").Return(false, nil)

	var created *entities.User
	users.On("CreateUser", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.User)
		}).
		Return(nil)

	resp, err := svc.Register(context.Background(), domain.UserRegisterRequest{
		Type:     "Business",
		Name:     "Padaria Central",
		Email:    "contato@padariacentral.com",
		Password: "s3nha-forte",
		Phone:    "11 99999-0000",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, "business", resp.Type)
	}
	if assert.NotNil(t, created) {
		assert.Equal(t, entities.UserTypeBusiness, created.Type)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3nha-forte")))
	}
}

func TestRegister_InvalidType(t *testing.T) {
	svc, users, _, _ := newUserTestService()

	_, err := svc.Register(context.Background(), domain.UserRegisterRequest{
		Type:     "charity",
		Name:     "Alguém",
		Email:    "a@b.com",
		Password: "x",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidUserType)
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _, _ := newUserTestService()

	users.On("CheckEmailExists", mock.Anything, "ong@pratocheio.org").Return(true, nil)

	_, err := svc.Register(context.Background(), domain.UserRegisterRequest{
		Type:     "ngo",
		Name:     "ONG Prato Cheio",
		Email:    "ong@pratocheio.org",
		Password: "x",
	})

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	svc, users, jwtService, _ := newUserTestService()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha-forte"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := &entities.User{
		ID:           uuid.New(),
		Type:         entities.UserTypeNgo,
		Name:         "ONG Prato Cheio",
		Email:        "ong@pratocheio.org",
		PasswordHash: string(hash),
	}

	users.On("GetUserByEmail", mock.Anything, stored.Email).Return(stored, nil)
	jwtService.On("GenerateTokenUser", stored.ID.String(), "ngo").Return("signed-token")

	resp, err := svc.Login(context.Background(), domain.UserLoginRequest{
		Email:    stored.Email,
		Password: "s3nha-forte",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, stored.ID.String(), resp.User.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _, _ := newUserTestService()

	hash, err := bcrypt.GenerateFromPassword([]byte("certa"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	users.On("GetUserByEmail", mock.Anything, "a@b.com").
		Return(&entities.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(context.Background(), domain.UserLoginRequest{Email: "a@b.com", Password: "errada"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, users, _, _ := newUserTestService()

	users.On("GetUserByEmail", mock.Anything, "nobody@b.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), domain.UserLoginRequest{Email: "nobody@b.com", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResetPassword_StoredTokenMismatch(t *testing.T) {
	svc, users, jwtService, _ := newUserTestService()
	userID := uuid.New()

	otherToken := "an-older-token"
	stored := &entities.User{ID: userID, PasswordResetToken: &otherToken}

	jwtService.On("ValidateTokenForgetPassword", "fresh-token").
		Return(jwtlib.MapClaims{"user_id": userID.String()}, nil)
	users.On("GetUserByID", mock.Anything, userID).Return(stored, nil)

	err := svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:       "fresh-token",
		NewPassword: "nova-senha",
	})

	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
	users.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestResetPassword_Success(t *testing.T) {
	svc, users, jwtService, _ := newUserTestService()
	userID := uuid.New()

	token := "fresh-token"
	expiry := time.Now().Add(10 * time.Minute)
	stored := &entities.User{ID: userID, PasswordResetToken: &token, PasswordResetExpiry: &expiry}

	jwtService.On("ValidateTokenForgetPassword", token).
		Return(jwtlib.MapClaims{"user_id": userID.String()}, nil)
	users.On("GetUserByID", mock.Anything, userID).Return(stored, nil)

	var updated *entities.User
	users.On("UpdateUser", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*entities.User)
		}).
		Return(nil)

	err := svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:       token,
		NewPassword: "nova-senha",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, updated) {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("nova-senha")))
		assert.Nil(t, updated.PasswordResetToken)
		assert.Nil(t, updated.PasswordResetExpiry)
	}
}
