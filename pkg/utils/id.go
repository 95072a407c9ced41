package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	IDLength   = 10
)

// GenerateID gera identificadores curtos alfanuméricos
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, IDLength)
}

// NewRunID identifica uma execução de job agendado no formato <job>-<id>.
// Se o gerador falhar usa o timestamp em nanossegundos.
func NewRunID(job string) string {
	id, err := GenerateID()
	if err != nil {
		id = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return job + "-" + id
}
