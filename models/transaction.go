package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction è una riga della tabella transazioni. Importo negativo = spesa,
// positivo = entrata.
type Transaction struct {
	ID          int             `json:"id" db:"id"`
	UserID      int64           `json:"user_id" db:"user_id"`
	Description string          `json:"descrizione" db:"descrizione"`
	Amount      decimal.Decimal `json:"importo" db:"importo"`
	Date        time.Time       `json:"data" db:"data"`
	CategoryID  *int            `json:"categoria_id" db:"categoria_id"`
	CardID      *int            `json:"metodo_pagamento" db:"metodopagamento"`
}

// IsExpense riporta true se la transazione è una spesa.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
