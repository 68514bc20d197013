package models

import "fmt"

// Role gates which parts of the app a signed-in user can reach.
type Role string

const (
	RoleClient   Role = "client"
	RoleStore    Role = "store"
	RoleDelivery Role = "delivery"
	RoleAdmin    Role = "admin"
)

// User is the authenticated account as returned by /login and /clients/me.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Photo     *string   `json:"photo,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
}

// Address is one of a user's saved delivery addresses.
type Address struct {
	ID           int    `json:"id"`
	Label        string `json:"label"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Note         string `json:"note,omitempty"`
}

// Format renders the address as the single line the delivery-fee endpoint
// expects: "street, number - neighborhood, city - state, cep".
func (a Address) Format() string {
	return fmt.Sprintf("%s, %s - %s, %s - %s, %s",
		a.Street, a.Number, a.Neighborhood, a.City, a.State, a.CEP)
}
