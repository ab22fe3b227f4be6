package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// startDraft apre il flusso di creazione di una transazione. Qualunque
// conversazione in sospeso viene scartata.
func (e *Engine) startDraft(userID int64, kind TransactionType) Response {
	e.sessions.Put(userID, &Session{
		State: StateAwaitingDescription,
		Draft: &Draft{Type: kind},
	})

	if kind == TypeExpense {
		return text("Scrivi la descrizione della spesa 🤑")
	}
	return text("Scrivi la descrizione dell'entrata 💵")
}

func (e *Engine) draftDescription(userID int64, session *Session, input string) Response {
	session.Draft.Description = strings.TrimSpace(input)
	session.State = StateAwaitingAmount
	e.sessions.Put(userID, session)
	return text("Scrivi l'importo")
}

// draftAmount applica la regola del segno: per una spesa l'importo salvato è
// -|importo|, per una entrata +|importo|, qualunque segno abbia digitato
// l'utente. Il segno è fissato qui e non cambia più.
func (e *Engine) draftAmount(ctx context.Context, userID int64, session *Session, input string) Response {
	amount, err := parseAmount(input)
	if err != nil {
		// Stato invariato: l'utente può riprovare.
		return text("Importo non valido. Per favore, scrivi un numero.")
	}

	if session.Draft.Type == TypeExpense {
		session.Draft.Amount = amount.Abs().Neg()
	} else {
		session.Draft.Amount = amount.Abs()
	}

	categories, err := e.store.ListCategories(ctx, userID)
	if err != nil {
		e.sessions.Clear(userID)
		return storeError(err)
	}
	if len(categories) == 0 {
		e.sessions.Clear(userID)
		return text("⚠️ Non hai ancora creato categorie. Usa il comando /aggiungi_categoria per crearne una e riprovare.")
	}

	session.State = StateAwaitingCategory
	e.sessions.Put(userID, session)

	return Response{
		Text:     "Seleziona una categoria per questa transazione:",
		Keyboard: categoryKeyboard(categories, "categoria_"),
	}
}

// pickCategory aggancia la categoria scelta alla bozza e propone le carte.
func (e *Engine) pickCategory(ctx context.Context, userID int64, arg string) Response {
	session := e.sessions.Get(userID)
	if session.State != StateAwaitingCategory || session.Draft == nil {
		return text("⚠️ Errore: nessuna transazione in corso. Usa /spesa o /entrata per iniziare.")
	}

	categoryID, err := strconv.Atoi(arg)
	if err != nil {
		return text("⚠️ Errore: Formato del callback non valido.")
	}
	session.Draft.CategoryID = categoryID

	cards, err := e.store.ListCards(ctx, userID)
	if err != nil {
		e.sessions.Clear(userID)
		return storeError(err)
	}
	if len(cards) == 0 {
		e.sessions.Clear(userID)
		return text("⚠️ Non hai ancora aggiunto metodi di pagamento. Usa il comando /aggiungi_carta per crearne uno.")
	}

	session.State = StateAwaitingCard
	e.sessions.Put(userID, session)

	keyboard := make([][]Button, 0, len(cards))
	for _, c := range cards {
		keyboard = append(keyboard, []Button{{Label: c.Name, Token: fmt.Sprintf("carta_%d", c.ID)}})
	}
	return Response{
		Text:     "Seleziona una carta per questa transazione:",
		Keyboard: keyboard,
	}
}

// pickCard chiude il flusso: è l'unico punto in cui la bozza tocca il
// database. Stato terminale, la sessione viene azzerata.
func (e *Engine) pickCard(ctx context.Context, userID int64, arg string) Response {
	session := e.sessions.Get(userID)
	if session.State != StateAwaitingCard || session.Draft == nil {
		return text("⚠️ Errore: nessuna transazione in corso. Usa /spesa o /entrata per iniziare.")
	}

	cardID, err := strconv.Atoi(arg)
	if err != nil {
		return text("⚠️ Errore: Formato del callback non valido.")
	}

	draft := session.Draft
	categoryID := draft.CategoryID
	transaction := &models.Transaction{
		UserID:      userID,
		Description: draft.Description,
		Amount:      draft.Amount,
		CategoryID:  &categoryID,
		CardID:      &cardID,
	}

	if err := e.store.CreateTransaction(ctx, transaction); err != nil {
		e.sessions.Clear(userID)
		return storeError(err)
	}

	e.sessions.Clear(userID)

	label := "Entrata"
	if draft.Type == TypeExpense {
		label = "Spesa"
	}
	return text(fmt.Sprintf("✅ %s aggiunta: %s %s €", label, draft.Description, signed(draft.Amount)))
}

// parseAmount interpreta il testo come numero decimale. Accetta la virgola
// come separatore.
func parseAmount(input string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	return decimal.NewFromString(normalized)
}

// signed formatta l'importo con il segno esplicito anche quando positivo.
func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return eur(d)
	}
	return "+" + eur(d)
}

func categoryKeyboard(categories []models.Category, prefix string) [][]Button {
	keyboard := make([][]Button, 0, len(categories))
	for _, c := range categories {
		keyboard = append(keyboard, []Button{{Label: c.Name, Token: fmt.Sprintf("%s%d", prefix, c.ID)}})
	}
	return keyboard
}
