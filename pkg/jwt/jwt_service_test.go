package jwt

import (
	"testing"
	"time"

	"FoodBridge/domain"

	"github.com/stretchr/testify/assert"
)

func newTestJWTService() *jwtService {
	return &jwtService{secretKey: "test-secret", issuer: "FOODBRIDGE"}
}

func TestGenerateAndReadUserToken(t *testing.T) {
	svc := newTestJWTService()

	token := svc.GenerateTokenUser("8f14e45f-ea0f-4c3b-9f3a-000000000001", "ngo")
	assert.NotEmpty(t, token)

	id, role, err := svc.GetUserIDByToken(token)

	assert.NoError(t, err)
	assert.Equal(t, "8f14e45f-ea0f-4c3b-9f3a-000000000001", id)
	assert.Equal(t, "ngo", role)
}

func TestGetUserIDByToken_WrongSecret(t *testing.T) {
	token := newTestJWTService().GenerateTokenUser("some-id", "business")

	other := &jwtService{secretKey: "another-secret", issuer: "FOODBRIDGE"}
	_, _, err := other.GetUserIDByToken(token)

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByToken_Garbage(t *testing.T) {
	svc := newTestJWTService()

	_, _, err := svc.GetUserIDByToken("not-a-token")

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestForgetPasswordTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateTokenForgetPassword(map[string]any{
		"user_id": "8f14e45f-ea0f-4c3b-9f3a-000000000001",
	}, 30*time.Minute)
	assert.NoError(t, err)

	claims, err := svc.ValidateTokenForgetPassword(token)

	assert.NoError(t, err)
	assert.Equal(t, "8f14e45f-ea0f-4c3b-9f3a-000000000001", claims["user_id"])
}

func TestForgetPasswordTokenExpired(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateTokenForgetPassword(map[string]any{
		"user_id": "some-id",
	}, -time.Minute)
	assert.NoError(t, err)

	_, err = svc.ValidateTokenForgetPassword(token)

	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
