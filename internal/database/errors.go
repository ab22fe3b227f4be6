package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateName indica la violazione del vincolo UNIQUE(user_id, nome).
	ErrDuplicateName = errors.New("nome già esistente")
	// ErrCategoryInUse indica che la categoria è referenziata da transazioni.
	ErrCategoryInUse = errors.New("categoria associata a transazioni")
	// ErrNotFound indica che la riga richiesta non esiste.
	ErrNotFound = errors.New("riga non trovata")
)

// classify traduce gli errori Postgres sui vincoli nei sentinel del pacchetto,
// lasciando passare tutto il resto invariato.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ErrDuplicateName
	case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
		return ErrCategoryInUse
	}
	return err
}
