package authenticating

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/apiErrors"
)

// Authenticator valida tokens emitidos pelo provedor de autenticação externo
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secretKey []byte
}

func NewService(secretKey string) Authenticator {
	return &Service{
		secretKey: []byte(secretKey),
	}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if len(s.secretKey) == 0 {
		return nil, NewAuthError(ErrMissingSecretKey, apiErrors.ErrInternalServer, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedSigning, token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		logrus.WithError(err).Debug("Falha ao validar token")
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if !isKnownRole(claims.Role) {
		authErr := NewAuthError(ErrUnknownRole, apiErrors.ErrInsufficientPrivilege, claims.Role)
		authErr.UserID = claims.UserID
		return nil, authErr
	}

	// Administradores operam sem tenant; os demais papéis precisam de um negócio
	if claims.BusinessID == "" && claims.Role != domain.RoleAdmin {
		authErr := NewAuthError(ErrMissingBusiness, apiErrors.ErrMissingBusiness, "")
		authErr.UserID = claims.UserID
		return nil, authErr
	}

	return claims, nil
}

func isKnownRole(role string) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleOwner, domain.RoleManager, domain.RoleStaff:
		return true
	}
	return false
}
