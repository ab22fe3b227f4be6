package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CountTransactionsToday conta le transazioni di oggi separando entrate e
// uscite. Le chiavi della mappa sono "entrate" e "uscite".
func CountTransactionsToday(ctx context.Context, pool *pgxpool.Pool) (map[string]int, error) {
	query := `
		SELECT
			CASE WHEN importo < 0 THEN 'uscite' ELSE 'entrate' END AS tipo,
			COUNT(*) AS conteggio
		FROM transazioni
		WHERE DATE(data) = CURRENT_DATE
		GROUP BY tipo`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("errore durante il conteggio delle transazioni di oggi: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tipo string
		var n int
		if err := rows.Scan(&tipo, &n); err != nil {
			return nil, fmt.Errorf("errore durante la scansione del conteggio: %w", err)
		}
		counts[tipo] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("errore durante il conteggio delle transazioni di oggi: %w", err)
	}
	return counts, nil
}

// ActiveUsersToday conta gli utenti distinti con almeno una transazione oggi.
func ActiveUsersToday(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT user_id)
		FROM transazioni
		WHERE DATE(data) = CURRENT_DATE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("errore durante il conteggio degli utenti attivi: %w", err)
	}
	return n, nil
}

// TotalUsers conta gli utenti distinti con almeno una transazione.
func TotalUsers(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `SELECT COUNT(DISTINCT user_id) FROM transazioni`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("errore durante il conteggio degli utenti: %w", err)
	}
	return n, nil
}

// UserGrowthPercent calcola la crescita percentuale degli utenti attivi del
// mese corrente rispetto al mese precedente. Senza utenti nel mese precedente
// il risultato è nil.
func UserGrowthPercent(ctx context.Context, pool *pgxpool.Pool) (*float64, error) {
	query := `
		WITH utenti_corrente AS (
			SELECT COUNT(DISTINCT user_id) AS totale
			FROM transazioni
			WHERE DATE_PART('month', data) = DATE_PART('month', CURRENT_DATE)
		),
		utenti_precedente AS (
			SELECT COUNT(DISTINCT user_id) AS totale
			FROM transazioni
			WHERE DATE_PART('month', data) = DATE_PART('month', CURRENT_DATE) - 1
		)
		SELECT
			(utenti_corrente.totale - utenti_precedente.totale) * 100.0 / NULLIF(utenti_precedente.totale, 0)
		FROM utenti_corrente, utenti_precedente`

	var growth *float64
	if err := pool.QueryRow(ctx, query).Scan(&growth); err != nil {
		return nil, fmt.Errorf("errore durante il calcolo della crescita utenti: %w", err)
	}
	return growth, nil
}
