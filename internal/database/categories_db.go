package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// CreateCategory inserisce una nuova categoria. Restituisce ErrDuplicateName
// se l'utente ha già una categoria con lo stesso nome.
func CreateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) error {
	query := `INSERT INTO categorie (user_id, nome) VALUES ($1, $2) RETURNING id`

	err := pool.QueryRow(ctx, query, category.UserID, category.Name).Scan(&category.ID)
	if err != nil {
		if err = classify(err); errors.Is(err, ErrDuplicateName) {
			return ErrDuplicateName
		}
		return fmt.Errorf("errore durante l'inserimento della categoria: %w", err)
	}
	return nil
}

func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, categoryID int) (*models.Category, error) {
	query := `SELECT id, user_id, nome FROM categorie WHERE id = $1`

	category := &models.Category{}
	err := pool.QueryRow(ctx, query, categoryID).Scan(&category.ID, &category.UserID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("errore durante la lettura della categoria: %w", err)
	}

	return category, nil
}

// ListCategories restituisce le categorie dell'utente in ordine alfabetico.
func ListCategories(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Category, error) {
	query := `SELECT id, user_id, nome FROM categorie WHERE user_id = $1 ORDER BY nome`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("errore durante la lettura delle categorie: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, fmt.Errorf("errore durante la scansione della categoria: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("errore durante la lettura delle categorie: %w", err)
	}
	return categories, nil
}

// RenameCategory cambia il nome della categoria. Il vincolo di unicità resta
// valido: un nome già usato dall'utente produce ErrDuplicateName.
func RenameCategory(ctx context.Context, pool *pgxpool.Pool, userID int64, categoryID int, name string) error {
	result, err := pool.Exec(ctx,
		`UPDATE categorie SET nome = $1 WHERE id = $2 AND user_id = $3`,
		name, categoryID, userID)
	if err != nil {
		if err = classify(err); errors.Is(err, ErrDuplicateName) {
			return ErrDuplicateName
		}
		return fmt.Errorf("errore durante la modifica della categoria: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory elimina la categoria per id. Se la categoria è ancora
// referenziata da transazioni restituisce ErrCategoryInUse e la riga resta
// intatta.
func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, categoryID int) error {
	result, err := pool.Exec(ctx, `DELETE FROM categorie WHERE id = $1`, categoryID)
	if err != nil {
		if err = classify(err); errors.Is(err, ErrCategoryInUse) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("errore durante l'eliminazione della categoria: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategoryByName elimina la categoria dell'utente con il nome indicato.
func DeleteCategoryByName(ctx context.Context, pool *pgxpool.Pool, userID int64, name string) error {
	result, err := pool.Exec(ctx,
		`DELETE FROM categorie WHERE user_id = $1 AND nome = $2`,
		userID, name)
	if err != nil {
		if err = classify(err); errors.Is(err, ErrCategoryInUse) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("errore durante l'eliminazione della categoria: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
