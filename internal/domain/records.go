// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Sale é uma venda registrada com receita bruta e custo da mercadoria vendida
type Sale struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Cost   float64   `json:"cost"`
}

func (s Sale) OccurredAt() time.Time {
	return s.Date
}

type Expense struct {
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
}

func (e Expense) OccurredAt() time.Time {
	return e.Date
}

// StockItem é usado apenas para valorização do estoque e detecção de estoque parado
type StockItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrentStock float64   `json:"current_stock"`
	PricePerUnit float64   `json:"price_per_unit"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Value retorna o valor do item em estoque
func (i StockItem) Value() float64 {
	return i.CurrentStock * i.PricePerUnit
}

// HistoricalMonth é o agregado mensal informado pelo chamador (mês no formato yyyy-mm)
type HistoricalMonth struct {
	Month    string  `json:"month" validate:"required"`
	Revenue  float64 `json:"revenue" validate:"gte=0"`
	Expenses float64 `json:"expenses" validate:"gte=0"`
}
