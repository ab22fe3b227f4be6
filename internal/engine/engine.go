package engine

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
)

// Engine è la macchina a stati conversazionale. Una sola istanza serve tutti
// gli utenti: lo stato per utente vive nel SessionManager, mai nell'Engine.
// Ogni evento in ingresso (comando, testo libero, callback) produce
// esattamente una Response.
type Engine struct {
	store    Store
	sessions *SessionManager
	router   *callbackRouter
}

func New(store Store) *Engine {
	e := &Engine{
		store:    store,
		sessions: NewSessionManager(),
		router:   &callbackRouter{},
	}

	e.router.handle("gestisci_categoria_", e.selectCategoryToManage)
	e.router.handle("gestisci_", e.selectTransaction)
	e.router.handle("categoria_", e.pickCategory)
	e.router.handle("carta_", e.pickCard)
	e.router.handle("modifica_transazione", e.startTransactionEdit)
	e.router.handle("elimina_transazione", e.deleteSelectedTransaction)
	e.router.handle("modifica_categoria", e.startCategoryRename)
	e.router.handle("elimina_categoria", e.deleteSelectedCategory)
	e.router.handle("riepilogo_categoria_", e.summaryForCategory)
	e.router.handle("riepilogo_categorie", e.summaryCategoryMenu)
	e.router.handle("riepilogo_generale", e.summaryAll)
	e.router.handle("riepilogo_spese", e.summaryExpenses)
	e.router.handle("riepilogo_entrate", e.summaryIncome)
	e.router.handle("grafico_generale", e.chartOverall)
	e.router.handle("grafico_spese", e.chartExpenses)
	e.router.handle("grafico_entrate", e.chartIncome)
	e.router.handle("grafico_andamento", e.chartTrend)

	return e
}

// HandleCommand gestisce un comando con eventuale testo argomento. Ogni punto
// di ingresso di una conversazione azzera la sessione corrente: iniziare un
// nuovo flusso mentre un altro è in sospeso scarta la bozza precedente.
func (e *Engine) HandleCommand(ctx context.Context, userID int64, name, args string) Response {
	switch name {
	case "start":
		return e.start()
	case "spesa":
		return e.startDraft(userID, TypeExpense)
	case "entrata":
		return e.startDraft(userID, TypeIncome)
	case "annulla":
		return e.cancel(userID)
	case "riepilogo":
		return e.summaryMenu(userID, args)
	case "gestisci":
		return e.manageTransactions(ctx, userID)
	case "gestisci_categoria":
		return e.manageCategories(ctx, userID)
	case "aggiungi_categoria":
		return e.addCategory(ctx, userID, args)
	case "categorie":
		return e.listCategories(ctx, userID)
	case "aggiungi_carta":
		return e.addCard(userID)
	case "carte":
		return e.listCards(ctx, userID)
	case "elimina_categoria":
		return e.deleteCategoryByName(ctx, userID, args)
	case "grafico":
		return e.chartMenu(userID)
	case "esporta":
		return e.export(ctx, userID)
	}
	return text("❌ Comando non riconosciuto!\nUsa un comando valido come /spesa, /entrata o /riepilogo.")
}

// HandleText gestisce un messaggio di testo libero in base allo stato della
// conversazione dell'utente.
func (e *Engine) HandleText(ctx context.Context, userID int64, input string) Response {
	session := e.sessions.Get(userID)

	switch session.State {
	case StateAwaitingDescription:
		return e.draftDescription(userID, session, input)
	case StateAwaitingAmount:
		return e.draftAmount(ctx, userID, session, input)
	case StateAwaitingEditInput:
		return e.applyTransactionEdit(ctx, userID, session, input)
	case StateAwaitingCategoryRename:
		return e.applyCategoryRename(ctx, userID, session, input)
	case StateAwaitingCategoryName:
		return e.createCategory(ctx, userID, input)
	case StateAwaitingCardName:
		return e.createCard(ctx, userID, input)
	}
	return text("⚠️ --- Non ho capito. Usa un comando come /spesa, /entrata o /riepilogo --- ⚠️")
}

// HandleCallback gestisce la pressione di un bottone inline.
func (e *Engine) HandleCallback(ctx context.Context, userID int64, token string) Response {
	resp, ok := e.router.dispatch(ctx, userID, token)
	if !ok {
		log.Printf("callback non riconosciuto da %d: %q", userID, token)
		return text("⚠️ Errore: Formato del callback non valido.")
	}
	return resp
}

func (e *Engine) start() Response {
	return text("👋 Benvenuto nel Bot di Gestione Finanziaria! 💰\n\n" +
		"Ecco cosa puoi fare:\n" +
		"• /spesa - Aggiungi una spesa\n" +
		"• /entrata - Aggiungi un'entrata\n" +
		"• /riepilogo [giorni] - Mostra il riepilogo delle tue transazioni negli ultimi [giorni] (se non specificato 30gg)\n" +
		"• /gestisci - Modifica o elimina una transazione\n" +
		"• /esporta - Esporta le tue transazioni\n\n" +
		"• /grafico - Visualizza il grafico delle tue finanze\n\n" +
		"• /categorie - Per visualizzare tutte le categorie presenti\n\n" +
		"Inizia subito a gestire le tue finanze! 🚀")
}

// cancel chiude qualunque conversazione attiva e scarta la bozza.
func (e *Engine) cancel(userID int64) Response {
	e.sessions.Clear(userID)
	return text("Operazione annullata.")
}

// eur formatta un importo con due decimali.
func eur(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// storeError logga l'errore e produce l'unica risposta visibile per l'evento
// fallito. Nessun retry: la gestione dei tentativi non appartiene al motore.
func storeError(err error) Response {
	log.Printf("errore dal database: %v", err)
	return text("❌ Si è verificato un errore, riprova più tardi.")
}
