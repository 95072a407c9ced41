package utils

import (
	"fmt"
	"time"
)

const MonthLayout = "2006-01"

// ParseMonth converte um rótulo yyyy-mm para o primeiro dia do mês
func ParseMonth(label string) (time.Time, error) {
	month, err := time.Parse(MonthLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("mês inválido %q: esperado formato yyyy-mm", label)
	}

	return month, nil
}

// FirstDayOfMonth normaliza a data para meia-noite do primeiro dia do mês
func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
