package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken      = errors.New("token inválido")
	ErrExpiredToken      = errors.New("token expirado")
	ErrMissingBusiness   = errors.New("token sem negócio associado")
	ErrUnknownRole       = errors.New("papel desconhecido")
	ErrMissingSecretKey  = errors.New("chave de assinatura não configurada")
	ErrUnexpectedSigning = errors.New("método de assinatura inesperado")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	UserID  string // Usuário do token (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(err error, code string, details string) *AuthError {
	return &AuthError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
