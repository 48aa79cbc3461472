package store

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFashion     Category = "fashion"
	CategoryFood        Category = "food"
	CategoryHome        Category = "home"
	CategoryArt         Category = "art"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryFood,
	CategoryHome,
	CategoryArt,
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", &ValidationError{Message: fmt.Sprintf("invalid category %q", s)}
}

// PaymentMethod is a digital payment channel a store can accept.
type PaymentMethod string

const (
	PaymentChapa    PaymentMethod = "chapa"
	PaymentTelebirr PaymentMethod = "telebirr"
	PaymentMpesa    PaymentMethod = "mpesa"
)

var PaymentMethods = []PaymentMethod{PaymentChapa, PaymentTelebirr, PaymentMpesa}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PaymentMethods {
		if m == known {
			return m, nil
		}
	}
	return "", &ValidationError{Message: fmt.Sprintf("invalid payment method %q", s)}
}

const DefaultPrimaryColor = "#000000"

type Store struct {
	ID              int64             `json:"id"`
	OwnerID         int64             `json:"owner"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Category        Category          `json:"category"`
	Address         string            `json:"address"`
	Latitude        *float64          `json:"latitude"`
	Longitude       *float64          `json:"longitude"`
	PrimaryColor    string            `json:"primary_color"`
	IsActive        bool              `json:"is_active"`
	PaymentMethods  []PaymentMethod   `json:"payment_methods"`
	PaymentAccounts map[string]string `json:"payment_accounts"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (s Store) Coordinates() (*float64, *float64) {
	return s.Latitude, s.Longitude
}

// Accepts reports whether the store takes the method and has an account for it.
func (s Store) Accepts(method string) bool {
	for _, m := range s.PaymentMethods {
		if string(m) == method {
			return strings.TrimSpace(s.PaymentAccounts[method]) != ""
		}
	}
	return false
}

// View is a store together with its distance from a geo query, when one
// was given.
type View struct {
	Store
	Distance *float64 `json:"distance"`
}

type CreateInput struct {
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Category        string            `json:"category"`
	Address         string            `json:"address"`
	Latitude        *float64          `json:"latitude"`
	Longitude       *float64          `json:"longitude"`
	PrimaryColor    string            `json:"primary_color"`
	PaymentMethods  []string          `json:"payment_methods"`
	PaymentAccounts map[string]string `json:"payment_accounts"`
}

// UpdateInput only changes the fields that are set. The slug is not
// updatable.
type UpdateInput struct {
	Name            *string            `json:"name"`
	Category        *string            `json:"category"`
	Address         *string            `json:"address"`
	Latitude        *float64           `json:"latitude"`
	Longitude       *float64           `json:"longitude"`
	ClearLocation   bool               `json:"clear_location"`
	PrimaryColor    *string            `json:"primary_color"`
	IsActive        *bool              `json:"is_active"`
	PaymentMethods  *[]string          `json:"payment_methods"`
	PaymentAccounts *map[string]string `json:"payment_accounts"`
}
