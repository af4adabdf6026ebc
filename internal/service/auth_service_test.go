package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locali/internal/config"
	"locali/internal/domain"
	"locali/internal/service"
)

var testJWT = config.JWTConfig{
	Secret:   "test-secret",
	Issuer:   "https://auth.locali.app",
	Audience: "authenticated",
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  sub,
		"iss":  testJWT.Issuer,
		"aud":  testJWT.Audience,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"role": "admin",
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := service.NewAuthService(testJWT)
	userID := uuid.New()

	claims, err := svc.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testJWT.Secret), validClaims(userID.String())))

	require.NoError(t, err)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_ValidateToken_DefaultsToCreator(t *testing.T) {
	svc := service.NewAuthService(testJWT)
	c := validClaims(uuid.NewString())
	c["role"] = "authenticated"

	claims, err := svc.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testJWT.Secret), c))

	require.NoError(t, err)
	assert.Equal(t, domain.RoleCreator, claims.Role)
}

func TestAuthService_ValidateToken_Rejects(t *testing.T) {
	svc := service.NewAuthService(testJWT)
	key := []byte(testJWT.Secret)

	expired := validClaims(uuid.NewString())
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	wrongAud := validClaims(uuid.NewString())
	wrongAud["aud"] = "anon"

	wrongIss := validClaims(uuid.NewString())
	wrongIss["iss"] = "https://evil.example"

	cases := map[string]string{
		"expired":        signToken(t, jwt.SigningMethodHS256, key, expired),
		"wrong audience": signToken(t, jwt.SigningMethodHS256, key, wrongAud),
		"wrong issuer":   signToken(t, jwt.SigningMethodHS256, key, wrongIss),
		"wrong secret":   signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims(uuid.NewString())),
		"wrong method":   signToken(t, jwt.SigningMethodHS512, key, validClaims(uuid.NewString())),
		"bad subject":    signToken(t, jwt.SigningMethodHS256, key, validClaims("not-a-uuid")),
		"garbage":        "not.a.jwt",
	}
	for name, token := range cases {
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, name)
	}
}
