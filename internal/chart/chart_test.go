package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/report"
)

// pngHeader è la firma con cui inizia ogni file PNG.
var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestPie(t *testing.T) {
	png, err := Pie("Spese per Categoria", map[string]decimal.Decimal{
		"Cibo":      decimal.RequireFromString("-70"),
		"Trasporti": decimal.RequireFromString("-30"),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestPieSkipsZeroEntries(t *testing.T) {
	png, err := Pie("Spese per Categoria", map[string]decimal.Decimal{
		"Cibo":  decimal.RequireFromString("-70"),
		"Vuota": decimal.Zero,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestPieWithoutData(t *testing.T) {
	_, err := Pie("Vuoto", map[string]decimal.Decimal{"Vuota": decimal.Zero})
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Pie("Vuoto", nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestCumulativeLines(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	series := report.Series{
		Times:    []time.Time{start, start.Add(time.Minute), start.Add(2 * time.Minute)},
		Expenses: []float64{0, 50, 52},
		Income:   []float64{0, 0, 100},
	}

	png, err := CumulativeLines(series)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestCumulativeLinesWithoutData(t *testing.T) {
	_, err := CumulativeLines(report.Series{})
	assert.ErrorIs(t, err, ErrNoData)
}
