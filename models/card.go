package models

// Card è un metodo di pagamento. Stessa unicità di Category su (UserID, Name).
type Card struct {
	ID     int    `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}
