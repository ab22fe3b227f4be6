package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTransactions(store *fakeStore) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store.addTransaction(testUser, "Cena", "-50", base)
	store.addTransaction(testUser, "Stipendio", "1000", base.Add(time.Hour))
	store.addTransaction(testUser, "Benzina", "-30", base.Add(2*time.Hour))
}

func TestManageListsNewestFirst(t *testing.T) {
	e, store := newTestEngine(t)
	seedTransactions(store)

	resp := e.HandleCommand(context.Background(), testUser, "gestisci", "")
	require.Len(t, resp.Keyboard, 3)
	assert.Equal(t, "Benzina: -30.00 €", resp.Keyboard[0][0].Label)
	assert.Equal(t, "gestisci_0", resp.Keyboard[0][0].Token)
	assert.Equal(t, "Stipendio: 1000.00 €", resp.Keyboard[1][0].Label)
	assert.Equal(t, "Cena: -50.00 €", resp.Keyboard[2][0].Label)
}

func TestManageWithoutTransactions(t *testing.T) {
	e, _ := newTestEngine(t)
	resp := e.HandleCommand(context.Background(), testUser, "gestisci", "")
	assert.Contains(t, resp.Text, "Non ci sono transazioni da gestire")
}

func TestSelectTransactionShowsActions(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	e.HandleCommand(ctx, testUser, "gestisci", "")
	resp := e.HandleCallback(ctx, testUser, "gestisci_2")
	assert.Contains(t, resp.Text, "Cena")
	require.Len(t, resp.Keyboard, 1)
	assert.Equal(t, "modifica_transazione", resp.Keyboard[0][0].Token)
	assert.Equal(t, "elimina_transazione", resp.Keyboard[0][1].Token)
}

// Un indice fuori dai limiti dello snapshot (bottone stantio) fallisce
// esplicitamente senza toccare il database.
func TestStaleSelectionIndexOutOfRange(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	e.HandleCommand(ctx, testUser, "gestisci", "")
	resp := e.HandleCallback(ctx, testUser, "gestisci_5")
	assert.Equal(t, "⚠️ Errore: transazione non trovata.", resp.Text)
	assert.Len(t, store.transactions, 3)
}

// Un bottone premuto senza snapshot in sessione (sessione scaduta o mai
// creata) fallisce esplicitamente.
func TestSelectionWithoutSnapshot(t *testing.T) {
	e, store := newTestEngine(t)
	seedTransactions(store)

	resp := e.HandleCallback(context.Background(), testUser, "gestisci_0")
	assert.Equal(t, "⚠️ Errore: transazione non trovata.", resp.Text)
	assert.Len(t, store.transactions, 3)
}

func selectForEdit(t *testing.T, e *Engine, token string) {
	t.Helper()
	ctx := context.Background()
	e.HandleCommand(ctx, testUser, "gestisci", "")
	e.HandleCallback(ctx, testUser, token)
	resp := e.HandleCallback(ctx, testUser, "modifica_transazione")
	require.Contains(t, resp.Text, "Scrivi la nuova descrizione")
}

// La modifica di solo importo eredita il segno dalla transazione originale.
func TestEditAmountOnlyPreservesSign(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	selectForEdit(t, e, "gestisci_2") // Cena, -50

	resp := e.HandleText(ctx, testUser, "80")
	assert.Equal(t, "✅ Importo aggiornato: -80.00 €", resp.Text)
	assert.Equal(t, "-80", store.transactions[0].Amount.String())
	assert.Equal(t, "Cena", store.transactions[0].Description)
}

func TestEditAmountOnlyPreservesPositiveSign(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	selectForEdit(t, e, "gestisci_1") // Stipendio, +1000

	e.HandleText(ctx, testUser, "-1200")
	assert.Equal(t, "1200", store.transactions[1].Amount.String())
}

func TestEditDescriptionAndAmount(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	selectForEdit(t, e, "gestisci_2") // Cena, -50

	resp := e.HandleText(ctx, testUser, "Cena fuori 65")
	assert.Equal(t, "✅ Transazione aggiornata: Cena fuori -65.00 €", resp.Text)
	assert.Equal(t, "Cena fuori", store.transactions[0].Description)
	assert.Equal(t, "-65", store.transactions[0].Amount.String())
}

// Un input di modifica non valido ripropone lo stesso stato senza perdere la
// selezione attiva.
func TestEditInvalidInputKeepsSelection(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	selectForEdit(t, e, "gestisci_2")

	resp := e.HandleText(ctx, testUser, "Cena senza importo")
	assert.Contains(t, resp.Text, "Formato non valido")
	assert.Equal(t, "-50", store.transactions[0].Amount.String())

	// La selezione è ancora attiva: il secondo tentativo va a buon fine.
	e.HandleText(ctx, testUser, "70")
	assert.Equal(t, "-70", store.transactions[0].Amount.String())
}

// Una transazione sparita tra la selezione e la modifica viene riportata come
// non trovata, in entrambe le forme di modifica.
func TestEditAfterTransactionDeleted(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	selectForEdit(t, e, "gestisci_2") // Cena, id 1
	require.NoError(t, store.DeleteTransaction(ctx, 1))

	resp := e.HandleText(ctx, testUser, "80")
	assert.Equal(t, "⚠️ Errore: transazione non trovata.", resp.Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUser).State)
}

func TestEditDescriptionAfterTransactionDeleted(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	selectForEdit(t, e, "gestisci_0") // Benzina, id 3
	require.NoError(t, store.DeleteTransaction(ctx, 3))

	resp := e.HandleText(ctx, testUser, "Benzina verde 40")
	assert.Equal(t, "⚠️ Errore: transazione non trovata.", resp.Text)
	assert.Equal(t, StateIdle, e.sessions.Get(testUser).State)
}

func TestDeleteTransaction(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	seedTransactions(store)

	e.HandleCommand(ctx, testUser, "gestisci", "")
	e.HandleCallback(ctx, testUser, "gestisci_0") // Benzina
	resp := e.HandleCallback(ctx, testUser, "elimina_transazione")
	assert.Equal(t, "🗑️ Transazione eliminata con successo!", resp.Text)
	assert.Len(t, store.transactions, 2)
	for _, tr := range store.transactions {
		assert.NotEqual(t, "Benzina", tr.Description)
	}
}

func TestDeleteWithoutSelection(t *testing.T) {
	e, store := newTestEngine(t)
	seedTransactions(store)

	resp := e.HandleCallback(context.Background(), testUser, "elimina_transazione")
	assert.Contains(t, resp.Text, "Nessuna transazione selezionata")
	assert.Len(t, store.transactions, 3)
}

func TestManageCategoryRename(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	category := store.addCategory(testUser, "Viaggi")

	e.HandleCommand(ctx, testUser, "gestisci_categoria", "")
	resp := e.HandleCallback(ctx, testUser, "gestisci_categoria_1")
	assert.Contains(t, resp.Text, "Viaggi")

	resp = e.HandleCallback(ctx, testUser, "modifica_categoria")
	assert.Contains(t, resp.Text, "nuovo nome")

	resp = e.HandleText(ctx, testUser, "Vacanze")
	assert.Contains(t, resp.Text, "nuovo nome: Vacanze")
	got, err := store.GetCategoryByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vacanze", got.Name)
}

// Rinominare una categoria con un nome già esistente viene riportato come
// conflitto di unicità e la conversazione termina.
func TestCategoryRenameDuplicate(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	store.addCategory(testUser, "Viaggi")
	store.addCategory(testUser, "Cibo")

	e.HandleCommand(ctx, testUser, "gestisci_categoria", "")
	e.HandleCallback(ctx, testUser, "gestisci_categoria_1")
	e.HandleCallback(ctx, testUser, "modifica_categoria")

	resp := e.HandleText(ctx, testUser, "Cibo")
	assert.Contains(t, resp.Text, "esiste già")

	got, err := store.GetCategoryByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Viaggi", got.Name)
}

// Una categoria referenziata da transazioni non può essere eliminata: il
// conflitto viene riportato e la riga resta intatta.
func TestDeleteReferencedCategoryRefused(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	category := store.addCategory(testUser, "Cibo")
	store.addTransaction(testUser, "Cena", "-50", time.Now())
	store.transactions[0].CategoryID = &category.ID

	e.HandleCommand(ctx, testUser, "gestisci_categoria", "")
	e.HandleCallback(ctx, testUser, "gestisci_categoria_1")
	resp := e.HandleCallback(ctx, testUser, "elimina_categoria")
	assert.Contains(t, resp.Text, "Non puoi eliminare una categoria associata a transazioni")
	assert.Len(t, store.categories, 1)
}

func TestDeleteUnreferencedCategory(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	store.addCategory(testUser, "Cibo")
	store.addCategory(testUser, "Viaggi")

	e.HandleCommand(ctx, testUser, "gestisci_categoria", "")
	e.HandleCallback(ctx, testUser, "gestisci_categoria_2")
	resp := e.HandleCallback(ctx, testUser, "elimina_categoria")
	assert.Equal(t, "🗑️ Categoria eliminata con successo!", resp.Text)
	assert.Len(t, store.categories, 1)
	assert.Equal(t, "Cibo", store.categories[0].Name)
}

// La categoria di un altro utente non è gestibile.
func TestManageCategoryOfAnotherUser(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	store.addCategory(99, "Privata")

	resp := e.HandleCallback(ctx, testUser, "gestisci_categoria_1")
	assert.Contains(t, resp.Text, "Categoria non trovata")
}

func TestParseEditInput(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		wantDesc string
		wantAmt  string
		hasDesc  bool
		wantErr  bool
	}{
		{name: "solo importo", input: "50", wantAmt: "50"},
		{name: "descrizione e importo", input: "Cena 50", wantDesc: "Cena", wantAmt: "50", hasDesc: true},
		{name: "descrizione multi parola", input: "Cena  con  amici 42.5", wantDesc: "Cena con amici", wantAmt: "42.5", hasDesc: true},
		{name: "virgola decimale", input: "12,50", wantAmt: "12.5"},
		{name: "vuoto", input: "   ", wantErr: true},
		{name: "importo non numerico", input: "Cena cinquanta", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc, amount, hasDesc, err := parseEditInput(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDesc, desc)
			assert.Equal(t, tc.wantAmt, amount.String())
			assert.Equal(t, tc.hasDesc, hasDesc)
		})
	}
}
