package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/database"
	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// addCategory gestisce /aggiungi_categoria. Con un argomento la categoria
// viene creata subito, senza si apre la conversazione che chiede il nome.
func (e *Engine) addCategory(ctx context.Context, userID int64, args string) Response {
	if name := strings.TrimSpace(args); name != "" {
		e.sessions.Clear(userID)
		return e.insertCategory(ctx, userID, name)
	}

	e.sessions.Put(userID, &Session{State: StateAwaitingCategoryName})
	return text("✏️ Scrivi il nome della categoria che vuoi aggiungere:")
}

func (e *Engine) createCategory(ctx context.Context, userID int64, input string) Response {
	e.sessions.Clear(userID)

	name := strings.TrimSpace(input)
	if name == "" {
		return text("⚠️ Nome della categoria non valido. Riprova.")
	}
	return e.insertCategory(ctx, userID, name)
}

// insertCategory inserisce la categoria. Un duplicato viene riportato come
// conflitto e la conversazione termina: per riprovare serve un nuovo comando.
func (e *Engine) insertCategory(ctx context.Context, userID int64, name string) Response {
	category := &models.Category{UserID: userID, Name: name}
	if err := e.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			return text(fmt.Sprintf("⚠️ La categoria '%s' esiste già.", name))
		}
		return storeError(err)
	}
	return text(fmt.Sprintf("✅ Categoria '%s' aggiunta con successo!", name))
}

func (e *Engine) listCategories(ctx context.Context, userID int64) Response {
	categories, err := e.store.ListCategories(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	if len(categories) == 0 {
		return text("📂 Non hai ancora creato categorie.")
	}

	var sb strings.Builder
	sb.WriteString("📋 Le tue categorie:\n\n")
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("• %s\n", c.Name))
	}
	return text(sb.String())
}

// deleteCategoryByName gestisce /elimina_categoria <nome>.
func (e *Engine) deleteCategoryByName(ctx context.Context, userID int64, args string) Response {
	name := strings.TrimSpace(args)
	if name == "" {
		return text("❌ Per favore, specifica il nome della categoria da eliminare. Esempio: /elimina_categoria Viaggi")
	}

	if err := e.store.DeleteCategoryByName(ctx, userID, name); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return text(fmt.Sprintf("⚠️ La categoria '%s' non esiste.", name))
		case errors.Is(err, database.ErrCategoryInUse):
			return text("⚠️ Errore: Non puoi eliminare una categoria associata a transazioni.")
		}
		return storeError(err)
	}
	return text(fmt.Sprintf("✅ Categoria '%s' eliminata con successo!", name))
}

func (e *Engine) addCard(userID int64) Response {
	e.sessions.Put(userID, &Session{State: StateAwaitingCardName})
	return text("✏️ Scrivi il nome della carta che vuoi aggiungere:")
}

func (e *Engine) createCard(ctx context.Context, userID int64, input string) Response {
	e.sessions.Clear(userID)

	name := strings.TrimSpace(input)
	if name == "" {
		return text("⚠️ Nome della carta non valido. Riprova.")
	}

	card := &models.Card{UserID: userID, Name: name}
	if err := e.store.CreateCard(ctx, card); err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			return text(fmt.Sprintf("⚠️ La carta '%s' esiste già.", name))
		}
		return storeError(err)
	}
	return text(fmt.Sprintf("✅ Carta '%s' aggiunta con successo!", name))
}

func (e *Engine) listCards(ctx context.Context, userID int64) Response {
	cards, err := e.store.ListCards(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	if len(cards) == 0 {
		return text("📂 Non hai ancora aggiunto metodi di pagamento.")
	}

	var sb strings.Builder
	sb.WriteString("💳 I tuoi metodi di pagamento:\n\n")
	for _, c := range cards {
		sb.WriteString(fmt.Sprintf("• %s\n", c.Name))
	}
	return text(sb.String())
}
