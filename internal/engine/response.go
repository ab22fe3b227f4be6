package engine

// Button è un bottone inline: Label è il testo mostrato, Token il callback
// data che torna indietro alla pressione.
type Button struct {
	Label string
	Token string
}

// File è un allegato in uscita (documento o immagine).
type File struct {
	Name    string
	Data    []byte
	Caption string
}

// Response è l'unica risposta visibile prodotta per ogni evento in ingresso.
// Al massimo uno tra Document e Photo è valorizzato.
type Response struct {
	Text     string
	Keyboard [][]Button
	Document *File
	Photo    *File
}

func text(s string) Response {
	return Response{Text: s}
}
