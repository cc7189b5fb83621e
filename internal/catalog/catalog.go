// Package catalog holds the session's in-memory catalog state and
// mediates every mutation through the row store. All remote calls apply
// to local state only after the store confirms them; a failed call
// leaves the local view exactly as it was.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"plantsel/internal/access"
	"plantsel/internal/models"
	"plantsel/internal/session"
	"plantsel/internal/store"
)

// ErrNotPermitted is returned when an operation is attempted outside
// the role that unlocks it.
var ErrNotPermitted = errors.New("operation not permitted")

// inviteRetries bounds retry-on-collision for invite code generation.
// With a 32^8 code space a single retry is already unlikely.
const inviteRetries = 5

// View selects between the filtered browse sequence and the favourites
// sequence.
type View int

const (
	ViewBrowse View = iota
	ViewFavourites
)

// ViewModel owns the plant list, the active ticket's favourite set and,
// for admin sessions, the roster. One ViewModel exists per session.
type ViewModel struct {
	store  store.Store
	ticket *models.Ticket

	adminView  bool
	plants     []models.Plant
	favourites map[string]struct{}
	roster     []models.Ticket
}

func New(st store.Store, ticket *models.Ticket) *ViewModel {
	return &ViewModel{
		store:      st,
		ticket:     ticket,
		favourites: make(map[string]struct{}),
	}
}

// Role is recomputed from session state on every call; the admin-view
// toggle is local and never grants anything to a non-admin ticket.
func (vm *ViewModel) Role() access.Role {
	return access.RoleFor(vm.ticket, vm.adminView)
}

// SetAdminView flips the local admin-view toggle. It reports whether
// the toggle applied; non-admin tickets cannot turn it on.
func (vm *ViewModel) SetAdminView(on bool) bool {
	if on && (vm.ticket == nil || !vm.ticket.IsAdmin) {
		return false
	}
	vm.adminView = on
	return true
}

func (vm *ViewModel) AdminView() bool {
	return vm.adminView
}

func (vm *ViewModel) Ticket() *models.Ticket {
	return vm.ticket
}

// Load fetches the plant list, the favourite set scoped to the active
// ticket, and (for admin tickets) the non-admin roster. Guests load
// nothing.
func (vm *ViewModel) Load(ctx context.Context) error {
	role := vm.Role()
	if !role.CanBrowse() {
		return ErrNotPermitted
	}

	plants, err := vm.store.ListPlants(ctx)
	if err != nil {
		return fmt.Errorf("load plants: %w", err)
	}

	plantIDs, err := vm.store.ListFavourites(ctx, vm.ticket.ID)
	if err != nil {
		return fmt.Errorf("load favourites: %w", err)
	}
	favourites := make(map[string]struct{}, len(plantIDs))
	for _, id := range plantIDs {
		favourites[id] = struct{}{}
	}

	var roster []models.Ticket
	if role.CanViewRoster() {
		roster, err = vm.store.ListNonAdminTickets(ctx)
		if err != nil {
			return fmt.Errorf("load roster: %w", err)
		}
	}

	vm.plants = plants
	vm.favourites = favourites
	vm.roster = roster
	return nil
}

func (vm *ViewModel) Plants() []models.Plant {
	return vm.plants
}

// Visible produces the plant sequence for the given view. The
// favourites view ignores all filter state and keeps the base ordering.
func (vm *ViewModel) Visible(view View, filters Filters) []models.Plant {
	if view == ViewFavourites {
		return vm.FavouritePlants()
	}
	return Apply(vm.plants, filters)
}

func (vm *ViewModel) IsFavourite(plantID string) bool {
	_, ok := vm.favourites[plantID]
	return ok
}

func (vm *ViewModel) FavouriteCount() int {
	return len(vm.favourites)
}

// FavouritePlants returns the favourited plants in base list order.
func (vm *ViewModel) FavouritePlants() []models.Plant {
	var result []models.Plant
	for _, plant := range vm.plants {
		if vm.IsFavourite(plant.ID) {
			result = append(result, plant)
		}
	}
	return result
}

// ToggleFavourite flips the (ticket, plant) row. The store call runs
// first and the local set changes only on success, so a failed toggle
// never desyncs the local view from the backend. Returns whether the
// plant is favourited afterwards.
func (vm *ViewModel) ToggleFavourite(ctx context.Context, plantID string) (bool, error) {
	if vm.ticket == nil {
		return false, session.ErrNoSession
	}

	if vm.IsFavourite(plantID) {
		if err := vm.store.RemoveFavourite(ctx, vm.ticket.ID, plantID); err != nil {
			return true, fmt.Errorf("remove favourite: %w", err)
		}
		delete(vm.favourites, plantID)
		return false, nil
	}

	if err := vm.store.AddFavourite(ctx, vm.ticket.ID, plantID); err != nil {
		return false, fmt.Errorf("add favourite: %w", err)
	}
	vm.favourites[plantID] = struct{}{}
	return true, nil
}

// CreatePlant inserts a catalog entry and prepends it locally, matching
// the newest-first ordering.
func (vm *ViewModel) CreatePlant(ctx context.Context, input store.PlantInput) (models.Plant, error) {
	if !vm.Role().CanMutateCatalog() {
		return models.Plant{}, ErrNotPermitted
	}
	input = normalizePlantInput(input)
	if err := validatePlantInput(input); err != nil {
		return models.Plant{}, err
	}

	plant, err := vm.store.CreatePlant(ctx, input)
	if err != nil {
		return models.Plant{}, fmt.Errorf("create plant: %w", err)
	}
	vm.plants = append([]models.Plant{plant}, vm.plants...)
	return plant, nil
}

// UpdatePlant replaces all mutable fields of a catalog entry.
func (vm *ViewModel) UpdatePlant(ctx context.Context, id string, input store.PlantInput) error {
	if !vm.Role().CanMutateCatalog() {
		return ErrNotPermitted
	}
	input = normalizePlantInput(input)
	if err := validatePlantInput(input); err != nil {
		return err
	}

	if err := vm.store.UpdatePlant(ctx, id, input); err != nil {
		return fmt.Errorf("update plant: %w", err)
	}
	for i, plant := range vm.plants {
		if plant.ID != id {
			continue
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
		vm.plants[i] = plant
		break
	}
	return nil
}

// DeletePlant removes a catalog entry. Dependent favourite rows go
// first so the cascade is idempotent and retryable; the plant row
// follows. Every ticket's favourite set loses the plant, including the
// local one.
func (vm *ViewModel) DeletePlant(ctx context.Context, id string) error {
	if !vm.Role().CanMutateCatalog() {
		return ErrNotPermitted
	}

	if err := vm.store.RemoveFavouritesByPlant(ctx, id); err != nil {
		return fmt.Errorf("cascade favourites: %w", err)
	}
	if err := vm.store.DeletePlant(ctx, id); err != nil {
		return fmt.Errorf("delete plant: %w", err)
	}

	for i, plant := range vm.plants {
		if plant.ID == id {
			vm.plants = append(vm.plants[:i], vm.plants[i+1:]...)
			break
		}
	}
	delete(vm.favourites, id)
	return nil
}

// GenerateInvite mints a fresh non-admin ticket and returns it with the
// shareable address. Collisions against the code uniqueness constraint
// are retried with a new code.
func (vm *ViewModel) GenerateInvite(ctx context.Context, baseAddress string) (models.Ticket, string, error) {
	if !vm.Role().CanViewRoster() {
		return models.Ticket{}, "", ErrNotPermitted
	}

	var lastErr error
	for attempt := 0; attempt < inviteRetries; attempt++ {
		code := NewInviteCode()
		ticket, err := vm.store.CreateTicket(ctx, store.CreateTicketInput{
			Code:      code,
			IsAdmin:   false,
			CreatedAt: time.Now().UTC(),
		})
		if errors.Is(err, store.ErrCodeTaken) {
			lastErr = err
			continue
		}
		if err != nil {
			return models.Ticket{}, "", fmt.Errorf("create invite: %w", err)
		}
		vm.roster = append([]models.Ticket{ticket}, vm.roster...)
		return ticket, session.InviteAddress(baseAddress, code), nil
	}
	return models.Ticket{}, "", fmt.Errorf("create invite: %w", lastErr)
}

func (vm *ViewModel) Roster() []models.Ticket {
	return vm.roster
}

// ClaimedCount tallies roster tickets whose holder has set a name.
func (vm *ViewModel) ClaimedCount() int {
	count := 0
	for _, ticket := range vm.roster {
		if ticket.Claimed() {
			count++
		}
	}
	return count
}

// RenameRosterTicket sets a roster ticket's owner name. Empty input is
// a silent no-op, same rule as the holder's own claim.
func (vm *ViewModel) RenameRosterTicket(ctx context.Context, id, name string) error {
	if !vm.Role().CanMutateCatalog() {
		return ErrNotPermitted
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	if err := vm.store.UpdateOwnerName(ctx, id, name); err != nil {
		return fmt.Errorf("rename ticket: %w", err)
	}
	for i, ticket := range vm.roster {
		if ticket.ID == id {
			ticket.OwnerName = name
			vm.roster[i] = ticket
			break
		}
	}
	return nil
}

// DeleteRosterTicket removes a ticket and its favourites, dependents
// first. The claimed tally drops by one when the ticket had an owner.
func (vm *ViewModel) DeleteRosterTicket(ctx context.Context, id string) error {
	if !vm.Role().CanMutateCatalog() {
		return ErrNotPermitted
	}

	if err := vm.store.RemoveFavouritesByTicket(ctx, id); err != nil {
		return fmt.Errorf("cascade favourites: %w", err)
	}
	if err := vm.store.DeleteTicket(ctx, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}

	for i, ticket := range vm.roster {
		if ticket.ID == id {
			vm.roster = append(vm.roster[:i], vm.roster[i+1:]...)
			break
		}
	}
	return nil
}

func normalizePlantInput(input store.PlantInput) store.PlantInput {
	input.CommonName = strings.TrimSpace(input.CommonName)
	input.BotanicalName = strings.TrimSpace(input.BotanicalName)
	return input
}

func validatePlantInput(input store.PlantInput) error {
	if input.CommonName == "" || input.BotanicalName == "" {
		return fmt.Errorf("%w: common and botanical names are required", store.ErrInvalidInput)
	}
	if input.Category != "" && !models.ValidCategory(input.Category) {
		return fmt.Errorf("%w: unknown category %q", store.ErrInvalidInput, input.Category)
	}
	if !models.ValidSubCategory(input.Category, input.SubCategory) {
		return fmt.Errorf("%w: %q is not a subcategory of %q", store.ErrInvalidInput, input.SubCategory, input.Category)
	}
	return nil
}
