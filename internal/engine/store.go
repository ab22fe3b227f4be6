package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// Store è la vista del motore sullo strato di persistenza. L'implementazione
// di produzione è database.Store; i test usano un finto store in memoria.
type Store interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error)
	ListTransactionsSince(ctx context.Context, userID int64, since time.Time) ([]models.Transaction, error)
	ListTransactionsByCategory(ctx context.Context, userID int64, categoryID int) ([]models.Transaction, error)
	UpdateTransactionAmount(ctx context.Context, transactionID int, amount decimal.Decimal) error
	UpdateTransaction(ctx context.Context, transactionID int, description string, amount decimal.Decimal) error
	DeleteTransaction(ctx context.Context, transactionID int) error

	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategoryByID(ctx context.Context, categoryID int) (*models.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]models.Category, error)
	RenameCategory(ctx context.Context, userID int64, categoryID int, name string) error
	DeleteCategory(ctx context.Context, categoryID int) error
	DeleteCategoryByName(ctx context.Context, userID int64, name string) error

	CreateCard(ctx context.Context, c *models.Card) error
	ListCards(ctx context.Context, userID int64) ([]models.Card, error)
}
