package engine

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/database"
	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// fakeStore è l'implementazione in memoria di Store usata dai test del
// motore. Replica i vincoli dello schema reale: unicità di (utente, nome) su
// categorie e carte, divieto di eliminare categorie referenziate.
type fakeStore struct {
	transactions []models.Transaction
	categories   []models.Category
	cards        []models.Card

	nextTransactionID int
	nextCategoryID    int
	nextCardID        int

	// forcedErr, se valorizzato, viene restituito da ogni chiamata.
	forcedErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextTransactionID: 1, nextCategoryID: 1, nextCardID: 1}
}

func (f *fakeStore) addCategory(userID int64, name string) models.Category {
	c := models.Category{ID: f.nextCategoryID, UserID: userID, Name: name}
	f.nextCategoryID++
	f.categories = append(f.categories, c)
	return c
}

func (f *fakeStore) addCard(userID int64, name string) models.Card {
	c := models.Card{ID: f.nextCardID, UserID: userID, Name: name}
	f.nextCardID++
	f.cards = append(f.cards, c)
	return c
}

func (f *fakeStore) addTransaction(userID int64, description string, amount string, at time.Time) models.Transaction {
	t := models.Transaction{
		ID:          f.nextTransactionID,
		UserID:      userID,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Date:        at,
	}
	f.nextTransactionID++
	f.transactions = append(f.transactions, t)
	return t
}

func (f *fakeStore) CreateTransaction(_ context.Context, t *models.Transaction) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	t.ID = f.nextTransactionID
	f.nextTransactionID++
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	f.transactions = append(f.transactions, *t)
	return nil
}

func (f *fakeStore) ListTransactions(_ context.Context, userID int64) ([]models.Transaction, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeStore) ListTransactionsSince(ctx context.Context, userID int64, since time.Time) ([]models.Transaction, error) {
	all, err := f.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []models.Transaction
	for _, t := range all {
		if !t.Date.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) ListTransactionsByCategory(ctx context.Context, userID int64, categoryID int) ([]models.Transaction, error) {
	all, err := f.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []models.Transaction
	for _, t := range all {
		if t.CategoryID != nil && *t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateTransactionAmount(_ context.Context, transactionID int, amount decimal.Decimal) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for i := range f.transactions {
		if f.transactions[i].ID == transactionID {
			f.transactions[i].Amount = amount
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeStore) UpdateTransaction(_ context.Context, transactionID int, description string, amount decimal.Decimal) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for i := range f.transactions {
		if f.transactions[i].ID == transactionID {
			f.transactions[i].Description = description
			f.transactions[i].Amount = amount
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeStore) DeleteTransaction(_ context.Context, transactionID int) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for i := range f.transactions {
		if f.transactions[i].ID == transactionID {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeStore) CreateCategory(_ context.Context, c *models.Category) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for _, existing := range f.categories {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return database.ErrDuplicateName
		}
	}
	c.ID = f.nextCategoryID
	f.nextCategoryID++
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeStore) GetCategoryByID(_ context.Context, categoryID int) (*models.Category, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for _, c := range f.categories {
		if c.ID == categoryID {
			category := c
			return &category, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) ListCategories(_ context.Context, userID int64) ([]models.Category, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	var out []models.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) RenameCategory(_ context.Context, userID int64, categoryID int, name string) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for _, existing := range f.categories {
		if existing.UserID == userID && existing.Name == name && existing.ID != categoryID {
			return database.ErrDuplicateName
		}
	}
	for i := range f.categories {
		if f.categories[i].ID == categoryID && f.categories[i].UserID == userID {
			f.categories[i].Name = name
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeStore) DeleteCategory(_ context.Context, categoryID int) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for _, t := range f.transactions {
		if t.CategoryID != nil && *t.CategoryID == categoryID {
			return database.ErrCategoryInUse
		}
	}
	for i := range f.categories {
		if f.categories[i].ID == categoryID {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeStore) DeleteCategoryByName(ctx context.Context, userID int64, name string) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for _, c := range f.categories {
		if c.UserID == userID && c.Name == name {
			return f.DeleteCategory(ctx, c.ID)
		}
	}
	return database.ErrNotFound
}

func (f *fakeStore) CreateCard(_ context.Context, c *models.Card) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for _, existing := range f.cards {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return database.ErrDuplicateName
		}
	}
	c.ID = f.nextCardID
	f.nextCardID++
	f.cards = append(f.cards, *c)
	return nil
}

func (f *fakeStore) ListCards(_ context.Context, userID int64) ([]models.Card, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	var out []models.Card
	for _, c := range f.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
