package models

// Driver is a store-managed delivery driver account.
type Driver struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
	Plate   string `json:"plate"`
	Status  string `json:"status"`
}
