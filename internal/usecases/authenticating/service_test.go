package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims domain.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func validClaims(role, businessID string) domain.Claims {
	return domain.Claims{
		UserID:     "user-1",
		UserName:   "Ana",
		BusinessID: businessID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(testSecret)

	expired := validClaims(domain.RoleOwner, "biz-1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{
			name:  "Token válido de proprietário",
			token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(domain.RoleOwner, "biz-1")),
		},
		{
			name:  "Administrador sem negócio",
			token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(domain.RoleAdmin, "")),
		},
		{
			name:        "Assinado com outra chave",
			token:       signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims(domain.RoleOwner, "biz-1")),
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "Algoritmo diferente de HS256",
			token:       signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims(domain.RoleOwner, "biz-1")),
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "Token expirado",
			token:       signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "Papel desconhecido",
			token:       signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("guest", "biz-1")),
			expectedErr: ErrUnknownRole,
		},
		{
			name:        "Gerente sem negócio",
			token:       signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(domain.RoleManager, "")),
			expectedErr: ErrMissingBusiness,
		},
		{
			name:        "Token malformado",
			token:       "not-a-token",
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)

			if tt.expectedErr != nil {
				assert.Nil(t, claims)
				assert.True(t, errors.Is(err, tt.expectedErr), "erro inesperado: %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.UserID)
		})
	}
}

func TestService_ValidateTokenWithoutSecret(t *testing.T) {
	service := NewService("")

	_, err := service.ValidateToken("anything")

	assert.True(t, errors.Is(err, ErrMissingSecretKey))
}
