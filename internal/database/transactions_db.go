package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		INSERT INTO transazioni (user_id, descrizione, importo, categoria_id, metodopagamento)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, data`

	err := pool.QueryRow(ctx, query,
		transaction.UserID,
		transaction.Description,
		transaction.Amount,
		transaction.CategoryID,
		transaction.CardID).Scan(&transaction.ID, &transaction.Date)
	if err != nil {
		return fmt.Errorf("errore durante l'inserimento della transazione: %w", classify(err))
	}
	return nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, transactionID int) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, descrizione, importo, data, categoria_id, metodopagamento
		FROM transazioni
		WHERE id = $1`

	transaction := &models.Transaction{}
	err := pool.QueryRow(ctx, query, transactionID).Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.Description,
		&transaction.Amount,
		&transaction.Date,
		&transaction.CategoryID,
		&transaction.CardID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("errore durante la lettura della transazione: %w", err)
	}

	return transaction, nil
}

// ListTransactions restituisce tutte le transazioni dell'utente, dalla più
// recente alla più vecchia.
func ListTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, descrizione, importo, data, categoria_id, metodopagamento
		FROM transazioni
		WHERE user_id = $1
		ORDER BY data DESC`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("errore durante la lettura delle transazioni: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListTransactionsSince restituisce le transazioni dell'utente non più vecchie
// di since, dalla più recente alla più vecchia.
func ListTransactionsSince(ctx context.Context, pool *pgxpool.Pool, userID int64, since time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, descrizione, importo, data, categoria_id, metodopagamento
		FROM transazioni
		WHERE user_id = $1 AND data >= $2
		ORDER BY data DESC`

	rows, err := pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("errore durante la lettura delle transazioni: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListTransactionsByCategory restituisce le transazioni dell'utente per una
// singola categoria, dalla più recente alla più vecchia.
func ListTransactionsByCategory(ctx context.Context, pool *pgxpool.Pool, userID int64, categoryID int) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, descrizione, importo, data, categoria_id, metodopagamento
		FROM transazioni
		WHERE user_id = $1 AND categoria_id = $2
		ORDER BY data DESC`

	rows, err := pool.Query(ctx, query, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("errore durante la lettura delle transazioni per categoria: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &t.Date, &t.CategoryID, &t.CardID); err != nil {
			return nil, fmt.Errorf("errore durante la scansione della transazione: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("errore durante la lettura delle transazioni: %w", err)
	}
	return transactions, nil
}

// UpdateTransactionAmount aggiorna il solo importo della transazione.
func UpdateTransactionAmount(ctx context.Context, pool *pgxpool.Pool, transactionID int, amount decimal.Decimal) error {
	result, err := pool.Exec(ctx, `UPDATE transazioni SET importo = $1 WHERE id = $2`, amount, transactionID)
	if err != nil {
		return fmt.Errorf("errore durante l'aggiornamento dell'importo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTransaction aggiorna descrizione e importo della transazione.
func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, transactionID int, description string, amount decimal.Decimal) error {
	result, err := pool.Exec(ctx,
		`UPDATE transazioni SET descrizione = $1, importo = $2 WHERE id = $3`,
		description, amount, transactionID)
	if err != nil {
		return fmt.Errorf("errore durante l'aggiornamento della transazione: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, transactionID int) error {
	result, err := pool.Exec(ctx, `DELETE FROM transazioni WHERE id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("errore durante l'eliminazione della transazione: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
