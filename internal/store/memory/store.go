// Package memory is an in-process Store used by tests. It mirrors the
// sentinel-error semantics of the remote implementations, including the
// unique constraint on ticket codes.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"plantsel/internal/models"
	"plantsel/internal/store"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.Mutex
	seq        int
	tickets    map[string]models.Ticket
	ticketSeq  map[string]int
	plants     map[string]models.Plant
	plantSeq   map[string]int
	favourites map[models.Favourite]struct{}
}

func NewStore() *Store {
	return &Store{
		tickets:    make(map[string]models.Ticket),
		ticketSeq:  make(map[string]int),
		plants:     make(map[string]models.Plant),
		plantSeq:   make(map[string]int),
		favourites: make(map[models.Favourite]struct{}),
	}
}

func (s *Store) CreateTicket(ctx context.Context, input store.CreateTicketInput) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tickets {
		if t.Code == input.Code {
			return models.Ticket{}, store.ErrCodeTaken
		}
	}
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	ticket := models.Ticket{
		ID:        uuid.NewString(),
		Code:      input.Code,
		OwnerName: input.OwnerName,
		IsAdmin:   input.IsAdmin,
		CreatedAt: createdAt,
	}
	s.seq++
	s.tickets[ticket.ID] = ticket
	s.ticketSeq[ticket.ID] = s.seq
	return ticket, nil
}

func (s *Store) GetTicketByCode(ctx context.Context, code string) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tickets {
		if t.Code == code {
			return t, nil
		}
	}
	return models.Ticket{}, store.ErrTicketNotFound
}

func (s *Store) GetTicketByID(ctx context.Context, id string) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return models.Ticket{}, store.ErrTicketNotFound
	}
	return ticket, nil
}

func (s *Store) UpdateOwnerName(ctx context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return store.ErrTicketNotFound
	}
	ticket.OwnerName = name
	s.tickets[id] = ticket
	return nil
}

func (s *Store) ListNonAdminTickets(ctx context.Context) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tickets []models.Ticket
	for _, t := range s.tickets {
		if !t.IsAdmin {
			tickets = append(tickets, t)
		}
	}
	sort.Slice(tickets, func(i, j int) bool {
		return s.ticketSeq[tickets[i].ID] > s.ticketSeq[tickets[j].ID]
	})
	return tickets, nil
}

func (s *Store) DeleteTicket(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[id]; !ok {
		return store.ErrTicketNotFound
	}
	delete(s.tickets, id)
	delete(s.ticketSeq, id)
	return nil
}

func (s *Store) CreatePlant(ctx context.Context, input store.PlantInput) (models.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plant := models.Plant{
		ID:            uuid.NewString(),
		CommonName:    input.CommonName,
		BotanicalName: input.BotanicalName,
		Category:      input.Category,
		SubCategory:   input.SubCategory,
		Height:        input.Height,
		Width:         input.Width,
		ImageURL:      input.ImageURL,
		Notes:         input.Notes,
		ColourTags:    append([]string(nil), input.ColourTags...),
		CreatedAt:     time.Now().UTC(),
	}
	s.seq++
	s.plants[plant.ID] = plant
	s.plantSeq[plant.ID] = s.seq
	return plant, nil
}

func (s *Store) ListPlants(ctx context.Context) ([]models.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plants := make([]models.Plant, 0, len(s.plants))
	for _, p := range s.plants {
		plants = append(plants, p)
	}
	sort.Slice(plants, func(i, j int) bool {
		return s.plantSeq[plants[i].ID] > s.plantSeq[plants[j].ID]
	})
	return plants, nil
}

func (s *Store) UpdatePlant(ctx context.Context, id string, input store.PlantInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plant, ok := s.plants[id]
	if !ok {
		return store.ErrPlantNotFound
	}
	plant.CommonName = input.CommonName
	plant.BotanicalName = input.BotanicalName
	plant.Category = input.Category
	plant.SubCategory = input.SubCategory
	plant.Height = input.Height
	plant.Width = input.Width
	plant.ImageURL = input.ImageURL
	plant.Notes = input.Notes
	plant.ColourTags = append([]string(nil), input.ColourTags...)
	s.plants[id] = plant
	return nil
}

func (s *Store) DeletePlant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plants[id]; !ok {
		return store.ErrPlantNotFound
	}
	delete(s.plants, id)
	delete(s.plantSeq, id)
	return nil
}

func (s *Store) AddFavourite(ctx context.Context, ticketID, plantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favourites[models.Favourite{TicketID: ticketID, PlantID: plantID}] = struct{}{}
	return nil
}

func (s *Store) RemoveFavourite(ctx context.Context, ticketID, plantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.favourites, models.Favourite{TicketID: ticketID, PlantID: plantID})
	return nil
}

func (s *Store) RemoveFavouritesByTicket(ctx context.Context, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for f := range s.favourites {
		if f.TicketID == ticketID {
			delete(s.favourites, f)
		}
	}
	return nil
}

func (s *Store) RemoveFavouritesByPlant(ctx context.Context, plantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for f := range s.favourites {
		if f.PlantID == plantID {
			delete(s.favourites, f)
		}
	}
	return nil
}

func (s *Store) ListFavourites(ctx context.Context, ticketID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var plantIDs []string
	for f := range s.favourites {
		if f.TicketID == ticketID {
			plantIDs = append(plantIDs, f.PlantID)
		}
	}
	sort.Strings(plantIDs)
	return plantIDs, nil
}
