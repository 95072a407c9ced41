package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrBusinessIDRequired = errors.New("business ID is required")
	ErrBusinessNotFound   = errors.New("business not found")
	ErrInvalidMonths      = errors.New("invalid projection horizon")
	ErrLoadRecords        = errors.New("error loading financial records")
)

// ReportError é um erro com contexto adicional do relatório solicitado
type ReportError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	BusinessID string // Negócio envolvido (quando aplicável)
	Details    string // Detalhes adicionais
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, businessID string, details string) *ReportError {
	return &ReportError{
		Err:        err,
		Code:       code,
		BusinessID: businessID,
		Details:    details,
	}
}
