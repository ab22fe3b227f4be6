// Package chart disegna i grafici del bot come immagini PNG.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/report"
)

// ErrNoData segnala che non c'è nulla da disegnare.
var ErrNoData = errors.New("nessun dato per il grafico")

// Pie disegna un grafico a torta dai totali per etichetta. I valori vengono
// presi in valore assoluto; le voci a zero vengono scartate.
func Pie(title string, totals map[string]decimal.Decimal) ([]byte, error) {
	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	values := make([]gochart.Value, 0, len(totals))
	for _, label := range labels {
		v := totals[label].Abs().InexactFloat64()
		if v == 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%s €)", label, totals[label].Abs().StringFixed(2)),
			Value: v,
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := gochart.PieChart{
		Title:  title,
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("errore durante il disegno del grafico a torta: %w", err)
	}
	return buf.Bytes(), nil
}

// CumulativeLines disegna l'andamento cumulato di spese ed entrate nel tempo.
func CumulativeLines(series report.Series) ([]byte, error) {
	if len(series.Times) == 0 {
		return nil, ErrNoData
	}

	graph := gochart.Chart{
		Title:  "Andamento delle Finanze",
		Width:  800,
		Height: 500,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat("02/01 15:04"),
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "Spese",
				XValues: series.Times,
				YValues: series.Expenses,
				Style: gochart.Style{
					StrokeColor: gochart.ColorRed,
					FillColor:   gochart.ColorRed.WithAlpha(40),
				},
			},
			gochart.TimeSeries{
				Name:    "Entrate",
				XValues: series.Times,
				YValues: series.Income,
				Style: gochart.Style{
					StrokeColor: gochart.ColorGreen,
					FillColor:   gochart.ColorGreen.WithAlpha(40),
				},
			},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("errore durante il disegno del grafico: %w", err)
	}
	return buf.Bytes(), nil
}
