package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacha_backend/internals/configs"
	"teacha_backend/internals/constants"
	userModel "teacha_backend/internals/features/users/user/model"
)

func testUser() *userModel.UserModel {
	tenantID := uuid.New()
	return &userModel.UserModel{
		ID:       uuid.New(),
		TenantID: &tenantID,
		Name:     "Ada",
		Email:    "ada@example.com",
		Role:     constants.RoleInstructor,
		IsActive: true,
	}
}

func TestBuildAccessClaims(t *testing.T) {
	user := testUser()
	now := time.Now().UTC()

	claims := BuildAccessClaims(user, now)

	assert.Equal(t, "access", claims["typ"])
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, constants.RoleInstructor, claims["role"])
	assert.Equal(t, user.TenantID.String(), claims["tenant_id"])
	assert.Equal(t, now.Unix(), claims["iat"])
	assert.Equal(t, now.Add(24*time.Hour).Unix(), claims["exp"])
}

func TestBuildAccessClaimsNoTenant(t *testing.T) {
	user := testUser()
	user.TenantID = nil

	claims := BuildAccessClaims(user, time.Now().UTC())

	_, present := claims["tenant_id"]
	assert.False(t, present)
}

func TestIssueAccessTokenRoundTrip(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })

	user := testUser()
	signed, err := IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	parsed := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(signed, parsed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	assert.Equal(t, user.ID.String(), parsed["sub"])
	assert.Equal(t, user.Email, parsed["email"])
	assert.Equal(t, user.Role, parsed["role"])
}

func TestIssueAccessTokenRequiresSecret(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = ""
	t.Cleanup(func() { configs.JWTSecret = prev })

	_, err := IssueAccessToken(testUser())
	assert.Error(t, err)
}

func TestComputeRefreshHashIsDeterministic(t *testing.T) {
	h1 := computeRefreshHash("token-a", "secret")
	h2 := computeRefreshHash("token-a", "secret")
	h3 := computeRefreshHash("token-b", "secret")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 32)
}
