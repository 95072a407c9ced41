package automating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStage = errors.New("estágio do negócio inválido")
)

// StageError identifica o negócio cujo estágio não pôde ser avaliado
type StageError struct {
	BusinessID string
	Stage      string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%v: negócio %s com estágio %q", ErrInvalidStage, e.BusinessID, e.Stage)
}

func (e *StageError) Unwrap() error {
	return ErrInvalidStage
}
