package models

import "time"

// Ticket is an unauthenticated bearer capability granting catalog access.
// The code is the only thing a holder ever presents; admin tickets are
// provisioned out-of-band and never created by the invite flow.
type Ticket struct {
	ID        string    `json:"id"`
	Code      string    `json:"ticket_code"`
	OwnerName string    `json:"user_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Claimed reports whether a holder has attached a display name.
func (t Ticket) Claimed() bool {
	return t.OwnerName != ""
}

type Plant struct {
	ID            string    `json:"id"`
	CommonName    string    `json:"common_name"`
	BotanicalName string    `json:"botanical_name"`
	Category      string    `json:"category"`
	SubCategory   string    `json:"sub_category"`
	Height        string    `json:"height"`
	Width         string    `json:"width"`
	ImageURL      string    `json:"image_url"`
	Notes         string    `json:"description"`
	ColourTags    []string  `json:"colour_tags"`
	CreatedAt     time.Time `json:"created_at"`
}

// Favourite associates one ticket with one plant. The pair is unique and
// cascades away when either side is deleted.
type Favourite struct {
	TicketID string `json:"ticket_id"`
	PlantID  string `json:"plant_id"`
}
