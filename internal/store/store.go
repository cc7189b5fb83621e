package store

import (
	"context"
	"time"

	"plantsel/internal/models"
)

type CreateTicketInput struct {
	Code      string
	OwnerName string
	IsAdmin   bool
	CreatedAt time.Time
}

type PlantInput struct {
	CommonName    string
	BotanicalName string
	Category      string
	SubCategory   string
	Height        string
	Width         string
	ImageURL      string
	Notes         string
	ColourTags    []string
}

// TicketStore owns the access-ticket rows.
type TicketStore interface {
	CreateTicket(ctx context.Context, input CreateTicketInput) (models.Ticket, error)
	GetTicketByCode(ctx context.Context, code string) (models.Ticket, error)
	GetTicketByID(ctx context.Context, id string) (models.Ticket, error)
	UpdateOwnerName(ctx context.Context, id, name string) error
	ListNonAdminTickets(ctx context.Context) ([]models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// PlantStore owns the catalog rows. ListPlants returns newest first.
type PlantStore interface {
	CreatePlant(ctx context.Context, input PlantInput) (models.Plant, error)
	ListPlants(ctx context.Context) ([]models.Plant, error)
	UpdatePlant(ctx context.Context, id string, input PlantInput) error
	DeletePlant(ctx context.Context, id string) error
}

// FavouriteStore owns the (ticket, plant) join rows.
type FavouriteStore interface {
	AddFavourite(ctx context.Context, ticketID, plantID string) error
	RemoveFavourite(ctx context.Context, ticketID, plantID string) error
	RemoveFavouritesByTicket(ctx context.Context, ticketID string) error
	RemoveFavouritesByPlant(ctx context.Context, plantID string) error
	ListFavourites(ctx context.Context, ticketID string) ([]string, error)
}

// Store is the full row-store surface the application depends on.
type Store interface {
	TicketStore
	PlantStore
	FavouriteStore
}
