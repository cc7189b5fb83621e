// Package session resolves the active access ticket at startup and owns
// the name-claim flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"plantsel/internal/models"
	"plantsel/internal/store"
)

var ErrNoSession = errors.New("no active session")

// Slot is the single locally persisted ticket-code value.
type Slot interface {
	Load() string
	Store(code string) error
	Clear() error
}

// Session is the resolved authorization context. Ticket is nil for
// unauthenticated sessions.
type Session struct {
	Ticket *models.Ticket
	// NeedsClaim is set when the resolved ticket has no owner name yet.
	// Claiming is prompted before other interaction but never blocks
	// read access.
	NeedsClaim bool
}

func (s Session) Authenticated() bool {
	return s.Ticket != nil
}

type Resolver struct {
	tickets store.TicketStore
	slot    Slot
}

func NewResolver(tickets store.TicketStore, slot Slot) *Resolver {
	return &Resolver{tickets: tickets, slot: slot}
}

// Resolve determines the session ticket once at startup. The candidate
// code comes from the address's ticket parameter first, then the
// persisted slot. On success the code is persisted and, when it arrived
// via the address, stripped from the returned address. A stale code
// clears the slot and leaves the session unauthenticated; no further
// store calls are made for unauthenticated sessions.
func (r *Resolver) Resolve(ctx context.Context, address string) (Session, string, error) {
	candidate, fromAddress := CodeFromAddress(address)
	if !fromAddress {
		candidate = r.slot.Load()
	}
	if candidate == "" {
		return Session{}, address, nil
	}

	ticket, err := r.tickets.GetTicketByCode(ctx, candidate)
	if errors.Is(err, store.ErrTicketNotFound) {
		if clearErr := r.slot.Clear(); clearErr != nil {
			return Session{}, address, fmt.Errorf("clear ticket slot: %w", clearErr)
		}
		return Session{}, address, nil
	}
	if err != nil {
		return Session{}, address, fmt.Errorf("resolve ticket: %w", err)
	}

	if err := r.slot.Store(ticket.Code); err != nil {
		return Session{}, address, fmt.Errorf("persist ticket slot: %w", err)
	}
	if fromAddress {
		address = StripTicketCode(address)
	}
	return Session{Ticket: &ticket, NeedsClaim: !ticket.Claimed()}, address, nil
}

// Claim attaches a display name to the session ticket. Empty or
// whitespace-only input is a silent no-op. Claiming is idempotent and
// may overwrite an earlier name.
func (r *Resolver) Claim(ctx context.Context, sess *Session, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if !sess.Authenticated() {
		return ErrNoSession
	}
	if err := r.tickets.UpdateOwnerName(ctx, sess.Ticket.ID, name); err != nil {
		return fmt.Errorf("claim ticket: %w", err)
	}
	sess.Ticket.OwnerName = name
	sess.NeedsClaim = false
	return nil
}
