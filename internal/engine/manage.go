package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/database"
)

// manageTransactions fotografa le transazioni dell'utente (dalla più recente)
// e le propone come bottoni. L'indice nel token vale solo contro questo
// snapshot: un bottone premuto dopo che lo snapshot è sparito fallisce.
func (e *Engine) manageTransactions(ctx context.Context, userID int64) Response {
	transactions, err := e.store.ListTransactions(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	if len(transactions) == 0 {
		return text("📂 Non ci sono transazioni da gestire.")
	}

	e.sessions.Put(userID, &Session{Snapshot: transactions})

	keyboard := make([][]Button, 0, len(transactions))
	for i, t := range transactions {
		label := fmt.Sprintf("%s: %s €", t.Description, formatListed(t.Amount))
		keyboard = append(keyboard, []Button{{Label: label, Token: fmt.Sprintf("gestisci_%d", i)}})
	}
	return Response{
		Text:     "🛠️ Seleziona una transazione da gestire:",
		Keyboard: keyboard,
	}
}

// selectTransaction risolve l'indice contenuto nel token contro lo snapshot
// corrente. Indice fuori range o snapshot assente (sessione scaduta, bottone
// di una lista precedente) terminano la conversazione senza toccare nulla.
func (e *Engine) selectTransaction(_ context.Context, userID int64, arg string) Response {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return text("⚠️ Errore: Formato del callback non valido.")
	}

	session := e.sessions.Get(userID)
	if index < 0 || index >= len(session.Snapshot) {
		e.sessions.Clear(userID)
		return text("⚠️ Errore: transazione non trovata.")
	}

	selected := session.Snapshot[index]
	session.Selection = &Selection{
		TransactionID:  selected.ID,
		OriginalAmount: selected.Amount,
	}
	e.sessions.Put(userID, session)

	return Response{
		Text: fmt.Sprintf("🔍 Hai selezionato:\n• %s: %s €\n\nCosa vuoi fare?",
			selected.Description, formatListed(selected.Amount)),
		Keyboard: [][]Button{{
			{Label: "✏️ Modifica", Token: "modifica_transazione"},
			{Label: "🗑️ Elimina", Token: "elimina_transazione"},
		}},
	}
}

func (e *Engine) startTransactionEdit(_ context.Context, userID int64, _ string) Response {
	session := e.sessions.Get(userID)
	if session.Selection == nil {
		e.sessions.Clear(userID)
		return text("❌ Errore: Nessuna transazione selezionata per la modifica.")
	}

	session.State = StateAwaitingEditInput
	e.sessions.Put(userID, session)
	return text("✏️ Scrivi la nuova descrizione e il nuovo importo (o solo il nuovo importo) separati da uno spazio")
}

// applyTransactionEdit interpreta l'input di modifica: un solo token è il
// nuovo importo, con due o più token l'ultimo è l'importo e i precedenti la
// nuova descrizione. Il segno viene sempre ereditato dall'importo originale
// della transazione selezionata, mai dall'input.
func (e *Engine) applyTransactionEdit(ctx context.Context, userID int64, session *Session, input string) Response {
	if session.Selection == nil {
		e.sessions.Clear(userID)
		return text("❌ Errore: Nessuna transazione selezionata per la modifica.")
	}

	description, magnitude, hasDescription, err := parseEditInput(input)
	if err != nil {
		// La selezione resta attiva: l'utente può riprovare subito.
		return text("❌ Formato non valido. Scrivi:\n" +
			"• Solo l'importo (es. 50)\n" +
			"• Oppure descrizione e importo separati da uno spazio (es. Cena 50)")
	}

	amount := magnitude.Abs()
	if session.Selection.OriginalAmount.IsNegative() {
		amount = amount.Neg()
	}

	if hasDescription {
		if err := e.store.UpdateTransaction(ctx, session.Selection.TransactionID, description, amount); err != nil {
			e.sessions.Clear(userID)
			if errors.Is(err, database.ErrNotFound) {
				return text("⚠️ Errore: transazione non trovata.")
			}
			return storeError(err)
		}
		e.sessions.Clear(userID)
		return text(fmt.Sprintf("✅ Transazione aggiornata: %s %s €", description, eur(amount)))
	}

	if err := e.store.UpdateTransactionAmount(ctx, session.Selection.TransactionID, amount); err != nil {
		e.sessions.Clear(userID)
		if errors.Is(err, database.ErrNotFound) {
			return text("⚠️ Errore: transazione non trovata.")
		}
		return storeError(err)
	}
	e.sessions.Clear(userID)
	return text(fmt.Sprintf("✅ Importo aggiornato: %s €", eur(amount)))
}

// deleteSelectedTransaction elimina subito la riga selezionata. Non è
// annullabile dopo la pressione del bottone.
func (e *Engine) deleteSelectedTransaction(ctx context.Context, userID int64, _ string) Response {
	session := e.sessions.Get(userID)
	if session.Selection == nil {
		e.sessions.Clear(userID)
		return text("❌ Errore: Nessuna transazione selezionata per l'eliminazione.")
	}

	transactionID := session.Selection.TransactionID
	e.sessions.Clear(userID)

	if err := e.store.DeleteTransaction(ctx, transactionID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return text("⚠️ Errore: transazione non trovata.")
		}
		return storeError(err)
	}
	return text("🗑️ Transazione eliminata con successo!")
}

// manageCategories propone le categorie dell'utente come bottoni. Qui la
// selezione avviene per id persistito, non per indice.
func (e *Engine) manageCategories(ctx context.Context, userID int64) Response {
	categories, err := e.store.ListCategories(ctx, userID)
	if err != nil {
		return storeError(err)
	}
	if len(categories) == 0 {
		return text("📂 Non hai ancora creato categorie. Usa il comando /aggiungi_categoria per crearne una!")
	}

	e.sessions.Put(userID, &Session{})

	return Response{
		Text:     "🛠️ Seleziona una categoria da gestire:",
		Keyboard: categoryKeyboard(categories, "gestisci_categoria_"),
	}
}

func (e *Engine) selectCategoryToManage(ctx context.Context, userID int64, arg string) Response {
	categoryID, err := strconv.Atoi(arg)
	if err != nil {
		return text("⚠️ Errore: Formato del callback non valido.")
	}

	category, err := e.store.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			e.sessions.Clear(userID)
			return text("⚠️ Categoria non trovata.")
		}
		return storeError(err)
	}
	if category.UserID != userID {
		e.sessions.Clear(userID)
		return text("⚠️ Categoria non trovata.")
	}

	session := e.sessions.Get(userID)
	session.CategoryID = category.ID
	e.sessions.Put(userID, session)

	return Response{
		Text: fmt.Sprintf("🔍 Hai selezionato la categoria: %s\n\nCosa vuoi fare?", category.Name),
		Keyboard: [][]Button{{
			{Label: "✏️ Modifica", Token: "modifica_categoria"},
			{Label: "🗑️ Elimina", Token: "elimina_categoria"},
		}},
	}
}

func (e *Engine) startCategoryRename(_ context.Context, userID int64, _ string) Response {
	session := e.sessions.Get(userID)
	if session.CategoryID == 0 {
		e.sessions.Clear(userID)
		return text("⚠️ Errore: Nessuna categoria selezionata per la modifica.")
	}

	session.State = StateAwaitingCategoryRename
	e.sessions.Put(userID, session)
	return text("✏️ Scrivi il nuovo nome della categoria:")
}

func (e *Engine) applyCategoryRename(ctx context.Context, userID int64, session *Session, input string) Response {
	if session.CategoryID == 0 {
		e.sessions.Clear(userID)
		return text("⚠️ Errore: Nessuna categoria selezionata per la modifica.")
	}

	name := strings.TrimSpace(input)
	categoryID := session.CategoryID
	e.sessions.Clear(userID)

	if err := e.store.RenameCategory(ctx, userID, categoryID, name); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicateName):
			return text(fmt.Sprintf("⚠️ La categoria con nome '%s' esiste già, scegli un altro nome.", name))
		case errors.Is(err, database.ErrNotFound):
			return text("⚠️ Categoria non trovata.")
		}
		return storeError(err)
	}
	return text(fmt.Sprintf("✅ Categoria aggiornata con successo, nuovo nome: %s", name))
}

// deleteSelectedCategory elimina la categoria selezionata. Una categoria
// ancora referenziata da transazioni non viene toccata: il conflitto viene
// riportato all'utente.
func (e *Engine) deleteSelectedCategory(ctx context.Context, userID int64, _ string) Response {
	session := e.sessions.Get(userID)
	if session.CategoryID == 0 {
		e.sessions.Clear(userID)
		return text("⚠️ Errore: Nessuna categoria selezionata per l'eliminazione.")
	}

	categoryID := session.CategoryID
	e.sessions.Clear(userID)

	if err := e.store.DeleteCategory(ctx, categoryID); err != nil {
		switch {
		case errors.Is(err, database.ErrCategoryInUse):
			return text("⚠️ Errore: Non puoi eliminare una categoria associata a transazioni.")
		case errors.Is(err, database.ErrNotFound):
			return text("⚠️ Categoria non trovata.")
		}
		return storeError(err)
	}
	return text("🗑️ Categoria eliminata con successo!")
}

// parseEditInput spezza l'input sugli spazi: zero token o ultimo token non
// numerico sono un errore di formato.
func parseEditInput(input string) (description string, magnitude decimal.Decimal, hasDescription bool, err error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", decimal.Zero, false, fmt.Errorf("input vuoto")
	}

	magnitude, err = parseAmount(fields[len(fields)-1])
	if err != nil {
		return "", decimal.Zero, false, err
	}

	if len(fields) == 1 {
		return "", magnitude, false, nil
	}
	return strings.Join(fields[:len(fields)-1], " "), magnitude, true, nil
}

// formatListed replica il formato delle liste del bot: segno davanti solo per
// le spese, valore assoluto con due decimali.
func formatListed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + eur(d.Abs())
	}
	return eur(d.Abs())
}
