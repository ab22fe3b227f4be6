package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/chart"
	"github.com/Akuma-39/botTelegramPortafoglio/internal/export"
	"github.com/Akuma-39/botTelegramPortafoglio/internal/report"
	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

const defaultSummaryDays = 30

// trendBucket e trendWindow definiscono la serie dell'andamento: totali
// cumulati per minuto sulle ultime 24 ore.
const (
	trendBucket = time.Minute
	trendWindow = 24 * time.Hour
)

// summaryMenu gestisce /riepilogo [giorni]: memorizza la finestra scelta e
// propone i quattro tipi di riepilogo.
func (e *Engine) summaryMenu(userID int64, args string) Response {
	days := defaultSummaryDays
	if trimmed := strings.TrimSpace(args); trimmed != "" {
		if n, err := strconv.Atoi(trimmed); err == nil && n > 0 {
			days = n
		}
	}

	e.sessions.Put(userID, &Session{SummaryDays: days})

	return Response{
		Text: "Scegli il tipo di riepilogo che vuoi visualizzare:",
		Keyboard: [][]Button{
			{{Label: "📊 Tutte", Token: "riepilogo_generale"}},
			{{Label: "📊 Categoria", Token: "riepilogo_categorie"}},
			{{Label: "📉 Spese", Token: "riepilogo_spese"}},
			{{Label: "📈 Entrate", Token: "riepilogo_entrate"}},
		},
	}
}

// summaryWindow calcola l'inizio della finestra di riepilogo dell'utente.
func (e *Engine) summaryWindow(userID int64) time.Time {
	days := e.sessions.Get(userID).SummaryDays
	if days <= 0 {
		days = defaultSummaryDays
	}
	return time.Now().AddDate(0, 0, -days)
}

func (e *Engine) summaryAll(ctx context.Context, userID int64, _ string) Response {
	rows, err := e.store.ListTransactionsSince(ctx, userID, e.summaryWindow(userID))
	if err != nil {
		return storeError(err)
	}

	overview, err := report.BuildOverview(rows)
	if err != nil {
		if errors.Is(err, report.ErrNoTransactions) {
			return text("📂 Nessuna transazione trovata.")
		}
		return storeError(err)
	}
	return text(fmt.Sprintf("📊 Tutte le transazioni:\n\n%s\nTotale: %s €",
		formatRows(overview.Rows), eur(overview.Total)))
}

func (e *Engine) summaryExpenses(ctx context.Context, userID int64, _ string) Response {
	rows, err := e.store.ListTransactionsSince(ctx, userID, e.summaryWindow(userID))
	if err != nil {
		return storeError(err)
	}

	overview, err := report.BuildFiltered(rows, report.Expenses)
	if err != nil {
		if errors.Is(err, report.ErrNoTransactions) {
			return text("📉 Nessuna spesa trovata.")
		}
		return storeError(err)
	}
	return text(fmt.Sprintf("📉 Solo spese:\n\n%s\nTotale spese: %s €",
		formatRows(overview.Rows), eur(overview.Total)))
}

func (e *Engine) summaryIncome(ctx context.Context, userID int64, _ string) Response {
	rows, err := e.store.ListTransactionsSince(ctx, userID, e.summaryWindow(userID))
	if err != nil {
		return storeError(err)
	}

	overview, err := report.BuildFiltered(rows, report.Income)
	if err != nil {
		if errors.Is(err, report.ErrNoTransactions) {
			return text("📈 Nessuna entrata trovata.")
		}
		return storeError(err)
	}
	return text(fmt.Sprintf("📈 Solo entrate:\n\n%s\nTotale entrate: %s €",
		formatRows(overview.Rows), eur(overview.Total)))
}

func (e *Engine) summaryCategoryMenu(ctx context.Context, userID int64, _ string) Response {
	categories, err := e.store.ListCategories(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	if len(categories) == 0 {
		return text("📂 Non hai ancora creato categorie.")
	}

	return Response{
		Text:     "📋 Scegli una categoria:",
		Keyboard: categoryKeyboard(categories, "riepilogo_categoria_"),
	}
}

func (e *Engine) summaryForCategory(ctx context.Context, userID int64, arg string) Response {
	categoryID, err := strconv.Atoi(arg)
	if err != nil {
		return text("⚠️ Errore: Formato del callback non valido.")
	}

	rows, err := e.store.ListTransactionsByCategory(ctx, userID, categoryID)
	if err != nil {
		return storeError(err)
	}

	overview, err := report.BuildOverview(rows)
	if err != nil {
		if errors.Is(err, report.ErrNoTransactions) {
			return text("📋 Nessuna transazione trovata per questa categoria.")
		}
		return storeError(err)
	}
	return text(fmt.Sprintf("📋 Transazioni per questa categoria:\n\n%s\nTotale categoria: %s €",
		formatRows(overview.Rows), eur(overview.Total)))
}

func (e *Engine) chartMenu(userID int64) Response {
	e.sessions.Clear(userID)

	return Response{
		Text: "Scegli il tipo di grafico che vuoi visualizzare:",
		Keyboard: [][]Button{
			{{Label: "📊 Generale", Token: "grafico_generale"}},
			{{Label: "📉 Solo Spese", Token: "grafico_spese"}},
			{{Label: "📈 Solo Entrate", Token: "grafico_entrate"}},
			{{Label: "📈 Andamento", Token: "grafico_andamento"}},
		},
	}
}

// chartOverall disegna la torta spese totali contro entrate totali.
func (e *Engine) chartOverall(ctx context.Context, userID int64, _ string) Response {
	rows, err := e.store.ListTransactions(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	if len(rows) == 0 {
		return text("📊 Nessuna transazione trovata per generare il grafico.")
	}

	expenses, income := decimal.Zero, decimal.Zero
	for _, t := range rows {
		if t.Amount.IsNegative() {
			expenses = expenses.Add(t.Amount.Abs())
		} else {
			income = income.Add(t.Amount)
		}
	}

	png, err := chart.Pie("Andamento delle Finanze", map[string]decimal.Decimal{
		"Spese":   expenses,
		"Entrate": income,
	})
	if err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return text("📊 Nessuna transazione trovata per generare il grafico.")
		}
		return storeError(err)
	}
	return Response{Photo: &File{Name: "grafico.png", Data: png, Caption: "📊 Ecco il grafico delle tue finanze!"}}
}

// chartExpenses disegna la torta delle spese raggruppate per categoria.
func (e *Engine) chartExpenses(ctx context.Context, userID int64, _ string) Response {
	return e.chartByCategory(ctx, userID, report.Expenses,
		"Spese per Categoria",
		"📉 Nessuna spesa trovata per generare il grafico.",
		"📉 Ecco il grafico delle tue spese per categoria!")
}

func (e *Engine) chartIncome(ctx context.Context, userID int64, _ string) Response {
	return e.chartByCategory(ctx, userID, report.Income,
		"Entrate per Categoria",
		"📈 Nessuna entrata trovata per generare il grafico.",
		"📈 Ecco il grafico delle tue entrate per categoria!")
}

// chartByCategory filtra le righe dell'utente, le raggruppa per categoria con
// la vista pura di report e le disegna a torta.
func (e *Engine) chartByCategory(ctx context.Context, userID int64, kind report.Kind, title, emptyMessage, caption string) Response {
	rows, err := e.store.ListTransactions(ctx, userID)
	if err != nil {
		return storeError(err)
	}

	overview, err := report.BuildFiltered(rows, kind)
	if err != nil {
		if errors.Is(err, report.ErrNoTransactions) {
			return text(emptyMessage)
		}
		return storeError(err)
	}

	names, err := e.categoryNames(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	grouped, err := report.ByCategory(overview.Rows, names)
	if err != nil {
		return storeError(err)
	}

	totals := make(map[string]decimal.Decimal, len(grouped))
	for _, g := range grouped {
		totals[g.Name] = g.Total
	}
	png, err := chart.Pie(title, totals)
	if err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return text(emptyMessage)
		}
		return storeError(err)
	}
	return Response{Photo: &File{Name: "grafico.png", Data: png, Caption: caption}}
}

func (e *Engine) categoryNames(ctx context.Context, userID int64) (map[int]string, error) {
	categories, err := e.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// chartTrend disegna l'andamento cumulato di spese ed entrate nelle ultime
// 24 ore.
func (e *Engine) chartTrend(ctx context.Context, userID int64, _ string) Response {
	now := time.Now()
	rows, err := e.store.ListTransactionsSince(ctx, userID, now.Add(-trendWindow))
	if err != nil {
		return storeError(err)
	}

	series, err := report.CumulativeSeries(rows, now, trendBucket, trendWindow)
	if err != nil {
		if errors.Is(err, report.ErrNoTransactions) {
			return text("📈 Nessuna transazione recente per generare l'andamento.")
		}
		return storeError(err)
	}

	png, err := chart.CumulativeLines(series)
	if err != nil {
		return storeError(err)
	}
	return Response{Photo: &File{Name: "andamento.png", Data: png, Caption: "📈 Ecco l'andamento delle tue finanze nelle ultime 24 ore!"}}
}

// export produce il CSV delle transazioni dell'utente.
func (e *Engine) export(ctx context.Context, userID int64) Response {
	rows, err := e.store.ListTransactions(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	if len(rows) == 0 {
		return text("📂 Nessuna transazione da esportare.")
	}

	data, err := export.TransactionsCSV(rows)
	if err != nil {
		return storeError(err)
	}
	return Response{Document: &File{
		Name:    export.FileName,
		Data:    data,
		Caption: "📤 Ecco il tuo file CSV con le transazioni",
	}}
}

func formatRows(rows []models.Transaction) string {
	var sb strings.Builder
	for _, t := range rows {
		sb.WriteString(fmt.Sprintf("• %s: %s € (%s)\n", t.Description, eur(t.Amount), t.Date.Format("02/01/2006")))
	}
	return sb.String()
}
