package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"FoodBridge/domain"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubJWTService struct {
	userID string
	role   string
	err    error
}

func (s *stubJWTService) GenerateTokenUser(userId string, role string) string { return "" }

func (s *stubJWTService) ValidateTokenUser(token string) (*jwtlib.Token, error) { return nil, nil }

func (s *stubJWTService) GetUserIDByToken(token string) (string, string, error) {
	return s.userID, s.role, s.err
}

func (s *stubJWTService) GenerateTokenForgetPassword(data map[string]any, duration time.Duration) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateTokenForgetPassword(token string) (jwtlib.MapClaims, error) {
	return nil, nil
}

func protectedApp(svc *stubJWTService, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/protected", NewMiddleware().AuthMiddleware(svc), handler)
	return app
}

func TestAuthMiddleware_SetsUserIDLocal(t *testing.T) {
	svc := &stubJWTService{userID: "some-user-id", role: "ngo"}
	app := protectedApp(svc, func(c *fiber.Ctx) error {
		assert.Equal(t, "some-user-id", c.Locals("user_id"))
		assert.Nil(t, c.Locals("role"))
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := protectedApp(&stubJWTService{}, func(c *fiber.Ctx) error {
		t.Fatal("handler should not run")
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	app := protectedApp(&stubJWTService{}, func(c *fiber.Ctx) error {
		t.Fatal("handler should not run")
		return nil
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")

	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	svc := &stubJWTService{err: domain.ErrTokenInvalid}
	app := protectedApp(svc, func(c *fiber.Ctx) error {
		t.Fatal("handler should not run")
		return nil
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
