package engine

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// State è lo stato corrente della conversazione di un utente.
type State string

const (
	// StateIdle: nessuna conversazione attiva.
	StateIdle State = ""
	// Flusso di creazione transazione (/spesa, /entrata).
	StateAwaitingDescription State = "awaiting_description"
	StateAwaitingAmount      State = "awaiting_amount"
	StateAwaitingCategory    State = "awaiting_category"
	StateAwaitingCard        State = "awaiting_card"
	// Flusso di gestione (/gestisci, /gestisci_categoria).
	StateAwaitingEditInput      State = "awaiting_edit_input"
	StateAwaitingCategoryRename State = "awaiting_category_rename"
	// Flusso di creazione anagrafiche (/aggiungi_categoria, /aggiungi_carta).
	StateAwaitingCategoryName State = "awaiting_category_name"
	StateAwaitingCardName     State = "awaiting_card_name"
)

// TransactionType distingue spesa da entrata e fissa il segno dell'importo.
type TransactionType string

const (
	TypeExpense TransactionType = "spesa"
	TypeIncome  TransactionType = "entrata"
)

// Draft è la transazione in corso di composizione, non ancora persistita.
// L'importo è già firmato: il segno viene applicato una sola volta, al
// momento dell'inserimento dell'importo.
type Draft struct {
	Type        TransactionType
	Description string
	Amount      decimal.Decimal
	CategoryID  int
}

// Selection è la transazione scelta da uno snapshot di /gestisci. Conserva
// l'importo originale perché una modifica di solo importo ne eredita il segno.
type Selection struct {
	TransactionID  int
	OriginalAmount decimal.Decimal
}

// Session è lo stato transiente di conversazione di un singolo utente. Non
// viene mai persistito né condiviso tra utenti.
type Session struct {
	State State
	Draft *Draft
	// Snapshot è la lista ordinata di transazioni mostrata dall'ultimo
	// /gestisci; gli indici nei token dei bottoni valgono solo contro
	// questa lista.
	Snapshot  []models.Transaction
	Selection *Selection
	// CategoryID della categoria selezionata in /gestisci_categoria.
	CategoryID int
	// SummaryDays è la finestra, in giorni, scelta con /riepilogo.
	SummaryDays int
}

// SessionManager tiene le sessioni per utente. Una sessione nasce alla prima
// scrittura e viene rimossa quando la conversazione raggiunge uno stato
// terminale o viene annullata.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[int64]*Session)}
}

// Get restituisce la sessione dell'utente, o una sessione vuota in StateIdle
// se non ne esiste una.
func (m *SessionManager) Get(userID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}
	return &Session{State: StateIdle}
}

// Put salva la sessione dell'utente.
func (m *SessionManager) Put(userID int64, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

// Clear rimuove la sessione dell'utente riportandolo in StateIdle.
func (m *SessionManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
