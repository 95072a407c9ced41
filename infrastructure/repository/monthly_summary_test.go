package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

func TestMonthlySumQuery(t *testing.T) {
	since := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := monthlySumQuery(salesTable, "s", "s.sold_at", "biz-1", since, until)

	require.NoError(t, err)
	assert.Contains(t, query, "FROM sales s")
	assert.Contains(t, query, "s.sold_at >= $2")
	assert.Contains(t, query, "s.sold_at < $3")
	assert.Contains(t, query, "GROUP BY month")
	assert.Equal(t, []interface{}{"biz-1", since, until}, args)
}

func TestMergeMonthly(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		revenues map[string]float64
		expenses map[string]float64
		since    time.Time
		expected []domain.HistoricalMonth
	}{
		{
			name:     "Meses sem movimento entram zerados",
			revenues: map[string]float64{"2024-01": 1000, "2024-04": 1200},
			expenses: map[string]float64{"2024-01": 600, "2024-02": 300},
			since:    since,
			expected: []domain.HistoricalMonth{
				{Month: "2024-01", Revenue: 1000, Expenses: 600},
				{Month: "2024-02", Revenue: 0, Expenses: 300},
				{Month: "2024-03", Revenue: 0, Expenses: 0},
				{Month: "2024-04", Revenue: 1200, Expenses: 0},
			},
		},
		{
			name:     "since no meio do mês começa no primeiro dia",
			revenues: map[string]float64{"2024-03": 500},
			expenses: map[string]float64{},
			since:    time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
			expected: []domain.HistoricalMonth{
				{Month: "2024-03", Revenue: 500},
				{Month: "2024-04"},
			},
		},
		{
			name:     "Intervalo vazio",
			revenues: map[string]float64{},
			expenses: map[string]float64{},
			since:    until,
			expected: []domain.HistoricalMonth{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mergeMonthly(tt.revenues, tt.expenses, tt.since, until))
		})
	}
}
