package models

// Category è una categoria di transazione. (UserID, Name) è unico: ogni utente
// può avere categorie con nomi distinti.
type Category struct {
	ID     int    `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}
