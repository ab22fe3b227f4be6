package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// Store incapsula il pool dietro i metodi attesi dal motore conversazionale.
// Ogni metodo delega alle funzioni di questo pacchetto.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return CreateTransaction(ctx, s.Pool, t)
}

func (s *Store) ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	return ListTransactions(ctx, s.Pool, userID)
}

func (s *Store) ListTransactionsSince(ctx context.Context, userID int64, since time.Time) ([]models.Transaction, error) {
	return ListTransactionsSince(ctx, s.Pool, userID, since)
}

func (s *Store) ListTransactionsByCategory(ctx context.Context, userID int64, categoryID int) ([]models.Transaction, error) {
	return ListTransactionsByCategory(ctx, s.Pool, userID, categoryID)
}

func (s *Store) UpdateTransactionAmount(ctx context.Context, transactionID int, amount decimal.Decimal) error {
	return UpdateTransactionAmount(ctx, s.Pool, transactionID, amount)
}

func (s *Store) UpdateTransaction(ctx context.Context, transactionID int, description string, amount decimal.Decimal) error {
	return UpdateTransaction(ctx, s.Pool, transactionID, description, amount)
}

func (s *Store) DeleteTransaction(ctx context.Context, transactionID int) error {
	return DeleteTransaction(ctx, s.Pool, transactionID)
}

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return CreateCategory(ctx, s.Pool, c)
}

func (s *Store) GetCategoryByID(ctx context.Context, categoryID int) (*models.Category, error) {
	return GetCategoryByID(ctx, s.Pool, categoryID)
}

func (s *Store) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	return ListCategories(ctx, s.Pool, userID)
}

func (s *Store) RenameCategory(ctx context.Context, userID int64, categoryID int, name string) error {
	return RenameCategory(ctx, s.Pool, userID, categoryID, name)
}

func (s *Store) DeleteCategory(ctx context.Context, categoryID int) error {
	return DeleteCategory(ctx, s.Pool, categoryID)
}

func (s *Store) DeleteCategoryByName(ctx context.Context, userID int64, name string) error {
	return DeleteCategoryByName(ctx, s.Pool, userID, name)
}

func (s *Store) CreateCard(ctx context.Context, c *models.Card) error {
	return CreateCard(ctx, s.Pool, c)
}

func (s *Store) ListCards(ctx context.Context, userID int64) ([]models.Card, error) {
	return ListCards(ctx, s.Pool, userID)
}
