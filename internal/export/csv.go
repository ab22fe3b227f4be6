// Package export serializza le transazioni dell'utente in CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/Akuma-39/botTelegramPortafoglio/models"
)

// FileName è il nome del file proposto all'utente.
const FileName = "transazioni.csv"

// TransactionsCSV produce il CSV delle transazioni con intestazione fissa
// Descrizione, Importo, Data. Le righe mantengono l'ordine di ingresso.
func TransactionsCSV(transactions []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Descrizione", "Importo", "Data"}); err != nil {
		return nil, fmt.Errorf("errore durante la scrittura dell'intestazione CSV: %w", err)
	}

	for _, t := range transactions {
		record := []string{
			t.Description,
			t.Amount.StringFixed(2),
			t.Date.Format("2006-01-02 15:04"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("errore durante la scrittura della riga CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("errore durante la scrittura del CSV: %w", err)
	}
	return buf.Bytes(), nil
}
