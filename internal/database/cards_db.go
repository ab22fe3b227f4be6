package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// CreateCard inserisce un nuovo metodo di pagamento. Restituisce
// ErrDuplicateName se l'utente ha già una carta con lo stesso nome.
func CreateCard(ctx context.Context, pool *pgxpool.Pool, card *models.Card) error {
	query := `INSERT INTO carte (user_id, nome) VALUES ($1, $2) RETURNING id`

	err := pool.QueryRow(ctx, query, card.UserID, card.Name).Scan(&card.ID)
	if err != nil {
		if err = classify(err); errors.Is(err, ErrDuplicateName) {
			return ErrDuplicateName
		}
		return fmt.Errorf("errore durante l'inserimento della carta: %w", err)
	}
	return nil
}

func GetCardByID(ctx context.Context, pool *pgxpool.Pool, cardID int) (*models.Card, error) {
	query := `SELECT id, user_id, nome FROM carte WHERE id = $1`

	card := &models.Card{}
	err := pool.QueryRow(ctx, query, cardID).Scan(&card.ID, &card.UserID, &card.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("errore durante la lettura della carta: %w", err)
	}

	return card, nil
}

// ListCards restituisce i metodi di pagamento dell'utente in ordine alfabetico.
func ListCards(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Card, error) {
	query := `SELECT id, user_id, nome FROM carte WHERE user_id = $1 ORDER BY nome`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("errore durante la lettura delle carte: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, fmt.Errorf("errore durante la scansione della carta: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("errore durante la lettura delle carte: %w", err)
	}
	return cards, nil
}
