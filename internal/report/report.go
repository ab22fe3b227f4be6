// Package report calcola viste aggregate e pure su liste di transazioni.
// Nessuna funzione modifica le righe in ingresso o il loro ordine.
package report

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// ErrNoTransactions segnala che non c'è nulla da riepilogare: il chiamante
// deve distinguerlo da un riepilogo con totale zero.
var ErrNoTransactions = errors.New("nessuna transazione")

// Kind seleziona il filtro di una vista parziale.
type Kind int

const (
	Expenses Kind = iota
	Income
)

// Overview è un riepilogo: le righe considerate e il totale firmato.
type Overview struct {
	Rows  []models.Transaction
	Total decimal.Decimal
}

// BuildOverview somma tutte le righe. Lista vuota: ErrNoTransactions.
func BuildOverview(rows []models.Transaction) (Overview, error) {
	if len(rows) == 0 {
		return Overview{}, ErrNoTransactions
	}

	total := decimal.Zero
	for _, t := range rows {
		total = total.Add(t.Amount)
	}
	return Overview{Rows: rows, Total: total}, nil
}

// BuildFiltered limita il riepilogo alle sole spese o alle sole entrate.
// Nessuna riga supera il filtro: ErrNoTransactions.
func BuildFiltered(rows []models.Transaction, kind Kind) (Overview, error) {
	var filtered []models.Transaction
	total := decimal.Zero
	for _, t := range rows {
		if kind == Expenses && !t.Amount.IsNegative() {
			continue
		}
		if kind == Income && !t.Amount.IsPositive() {
			continue
		}
		filtered = append(filtered, t)
		total = total.Add(t.Amount)
	}

	if len(filtered) == 0 {
		return Overview{}, ErrNoTransactions
	}
	return Overview{Rows: filtered, Total: total}, nil
}

// CategoryTotal è il subtotale di una categoria.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// ByCategory raggruppa le righe per categoria e ne calcola i subtotali,
// ordinati per totale crescente. names risolve gli id di categoria; le righe
// senza categoria (o con categoria sconosciuta) finiscono sotto
// "Senza Categoria".
func ByCategory(rows []models.Transaction, names map[int]string) ([]CategoryTotal, error) {
	if len(rows) == 0 {
		return nil, ErrNoTransactions
	}

	totals := make(map[string]decimal.Decimal)
	for _, t := range rows {
		name := "Senza Categoria"
		if t.CategoryID != nil {
			if n, ok := names[*t.CategoryID]; ok {
				name = n
			}
		}
		totals[name] = totals[name].Add(t.Amount)
	}

	grouped := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		grouped = append(grouped, CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(grouped, func(i, j int) bool {
		if !grouped[i].Total.Equal(grouped[j].Total) {
			return grouped[i].Total.LessThan(grouped[j].Total)
		}
		return grouped[i].Name < grouped[j].Name
	})
	return grouped, nil
}

// Series è l'andamento cumulato di spese ed entrate su bucket temporali
// allineati. Expenses contiene valori assoluti. Le tre slice hanno la stessa
// lunghezza.
type Series struct {
	Times    []time.Time
	Expenses []float64
	Income   []float64
}

// CumulativeSeries costruisce la serie cumulata delle righe non più vecchie
// di window rispetto a now, un punto per bucket. Nessuna riga nella finestra:
// ErrNoTransactions.
func CumulativeSeries(rows []models.Transaction, now time.Time, bucket, window time.Duration) (Series, error) {
	start := now.Add(-window).Truncate(bucket)

	var inWindow []models.Transaction
	for _, t := range rows {
		if !t.Date.Before(start) && !t.Date.After(now) {
			inWindow = append(inWindow, t)
		}
	}
	if len(inWindow) == 0 {
		return Series{}, ErrNoTransactions
	}

	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].Date.Before(inWindow[j].Date)
	})

	var series Series
	expenses, income := decimal.Zero, decimal.Zero
	next := 0
	for ts := start; !ts.After(now); ts = ts.Add(bucket) {
		edge := ts.Add(bucket)
		for next < len(inWindow) && inWindow[next].Date.Before(edge) {
			amount := inWindow[next].Amount
			if amount.IsNegative() {
				expenses = expenses.Add(amount.Abs())
			} else {
				income = income.Add(amount)
			}
			next++
		}
		series.Times = append(series.Times, ts)
		series.Expenses = append(series.Expenses, expenses.InexactFloat64())
		series.Income = append(series.Income, income.InexactFloat64())
	}
	return series, nil
}
